package tui

import (
	"context"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/yoimerdr/ludens-sub001/internal/keyevent"
	"github.com/yoimerdr/ludens-sub001/internal/player"
	"github.com/yoimerdr/ludens-sub001/internal/settings"
)

// Fallback canvas size until the first WindowSizeMsg.
const (
	defaultWidth  = 60
	defaultHeight = 16
)

// alphaStep is the overlay opacity change per AlphaUp/AlphaDown press.
const alphaStep = 0.1

type settingsMsg settings.Settings

type toolsMsg settings.ToolSettings

// Model is the Bubble Tea model of the control overlay. It forwards
// terminal keys to the player ports and draws the overlay from the
// current settings.
type Model struct {
	ctx      context.Context
	controls *player.Controls
	repo     *settings.Repository
	logger   *log.Logger
	keys     KeyMap
	help     help.Model
	hold     time.Duration
	title    string
	now      func() time.Time

	current    settings.Settings
	settingsCh <-chan settings.Settings
	toolsCh    <-chan settings.ToolSettings

	held       map[keyevent.Direction]time.Time // Direction -> release deadline
	flash      settings.ControlType
	flashUntil time.Time

	width    int
	height   int
	status   string
	quitting bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithKeyMap replaces the default bindings.
func WithKeyMap(k KeyMap) ModelOption {
	return func(m *Model) { m.keys = k }
}

// WithHoldWindow sets how long a direction stays held without repeats.
func WithHoldWindow(d time.Duration) ModelOption {
	return func(m *Model) {
		if d > 0 {
			m.hold = d
		}
	}
}

// WithTitle sets the overlay title.
func WithTitle(title string) ModelOption {
	return func(m *Model) { m.title = title }
}

// WithSize sets the canvas size used until the first WindowSizeMsg.
func WithSize(width, height int) ModelOption {
	return func(m *Model) {
		m.width, m.height = width, height
		m.help.Width = width
	}
}

// WithLogger sets the model logger.
func WithLogger(logger *log.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewModel creates an overlay driving controls. Settings streams are
// subscribed for the lifetime of ctx.
func NewModel(ctx context.Context, controls *player.Controls, repo *settings.Repository, opts ...ModelOption) Model {
	h := help.New()
	h.ShowAll = false

	m := Model{
		ctx:      ctx,
		controls: controls,
		repo:     repo,
		logger:   log.New(io.Discard),
		keys:     DefaultKeyMap(),
		help:     h,
		hold:     DefaultHoldWindow,
		title:    "ludens",
		now:      time.Now,
		current:  repo.Current(),
		held:     make(map[keyevent.Direction]time.Time),
		flash:    -1,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.settingsCh = repo.Subscribe(ctx)
	m.toolsCh = repo.Tools(ctx)
	return m
}

// Init starts listening for settings changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitSettings(m.settingsCh), waitTools(m.toolsCh))
}

func waitSettings(ch <-chan settings.Settings) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return settingsMsg(s)
	}
}

func waitTools(ch <-chan settings.ToolSettings) tea.Cmd {
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return toolsMsg(t)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case releaseMsg:
		return m.handleRelease(time.Time(msg))

	case settingsMsg:
		m.current = settings.Settings(msg)
		return m, waitSettings(m.settingsCh)

	case toolsMsg:
		// Persisted tool state is the source of truth for the game.
		m.controls.Audio.SetMuted(msg.IsMuted)
		m.controls.FPS.SetVisible(msg.ShowFPS)
		return m, waitTools(m.toolsCh)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.controls.Movements.Release()
		m.held = map[keyevent.Direction]time.Time{}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Mute):
		cur := m.repo.Current()
		return m.persist(m.repo.SetMuted(m.ctx, !cur.Tools.IsMuted))

	case key.Matches(msg, m.keys.ShowFPS):
		cur := m.repo.Current()
		return m.persist(m.repo.SetShowFPS(m.ctx, !cur.Tools.ShowFPS))

	case key.Matches(msg, m.keys.Overlay):
		cur := m.repo.Current()
		return m.persist(m.repo.SetControlsEnabled(m.ctx, !cur.Controls.Enabled))

	case key.Matches(msg, m.keys.AlphaUp), key.Matches(msg, m.keys.AlphaDown):
		step := alphaStep
		if key.Matches(msg, m.keys.AlphaDown) {
			step = -alphaStep
		}
		v := m.repo.Current().Controls.Alpha.Float() + step
		v = math.Round(v*10) / 10
		return m.persist(m.repo.SetControlsAlpha(m.ctx, settings.CoerceAlpha(v)))
	}

	if d, ok := m.keys.Direction(msg); ok {
		return m.press(d)
	}
	if t, ok := m.keys.Button(msg); ok {
		return m.tap(t)
	}
	if code, ok := m.keys.Graphics(msg); ok {
		m.controls.Graphics.Input(code, true)
		return m, nil
	}
	return m, nil
}

// persist records the outcome of a settings change.
func (m Model) persist(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.logger.Warn("cannot save settings", "error", err)
		m.status = "cannot save settings: " + err.Error()
		return m, nil
	}
	m.status = ""
	m.current = m.repo.Current()
	return m, nil
}

// press holds d until its key stops repeating. Holding a direction
// releases its opposite.
func (m Model) press(d keyevent.Direction) (tea.Model, tea.Cmd) {
	if it, ok := m.current.Controls.Item(settings.ControlJoystick); !ok || !it.Enabled {
		return m, nil
	}

	held := make(map[keyevent.Direction]time.Time, len(m.held)+1)
	for k, v := range m.held {
		held[k] = v
	}
	_, already := held[d]
	held[d] = m.now().Add(m.hold)

	opp := opposite(d)
	_, hadOpposite := held[opp]
	delete(held, opp)

	m.held = held
	if !already || hadOpposite {
		m.controls.Movements.Move(m.Held(), true)
	}
	return m, releaseCmd(m.hold)
}

// tap sends a button tap using the key code bound in settings.
func (m Model) tap(t settings.ControlType) (tea.Model, tea.Cmd) {
	it, ok := m.current.Controls.Item(t)
	if !ok || !it.Enabled || it.Code == 0 {
		return m, nil
	}
	m.controls.Buttons.Tap(it.Code)
	m.flash = t
	m.flashUntil = m.now().Add(m.hold)
	return m, releaseCmd(m.hold)
}

// handleRelease drops directions whose deadline has passed.
func (m Model) handleRelease(now time.Time) (tea.Model, tea.Cmd) {
	if m.flash >= 0 && !now.Before(m.flashUntil) {
		m.flash = -1
	}

	if len(m.held) == 0 {
		return m, nil
	}

	held := make(map[keyevent.Direction]time.Time, len(m.held))
	for d, deadline := range m.held {
		if now.Before(deadline) {
			held[d] = deadline
		}
	}
	if len(held) == len(m.held) {
		return m, nil
	}

	m.held = held
	if len(held) == 0 {
		m.controls.Movements.Release()
	} else {
		m.controls.Movements.Move(m.Held(), true)
	}
	return m, nil
}

func opposite(d keyevent.Direction) keyevent.Direction {
	switch d {
	case keyevent.DirectionUp:
		return keyevent.DirectionDown
	case keyevent.DirectionDown:
		return keyevent.DirectionUp
	case keyevent.DirectionLeft:
		return keyevent.DirectionRight
	default:
		return keyevent.DirectionLeft
	}
}

// Held returns the held directions in keyevent.Directions order.
func (m Model) Held() []keyevent.Direction {
	var out []keyevent.Direction
	for _, d := range keyevent.Directions {
		if _, ok := m.held[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Settings returns the settings the overlay is drawn from.
func (m Model) Settings() settings.Settings {
	return m.current
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// View renders the overlay.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w, h := m.width, m.height
	if w <= 0 || h <= 0 {
		w, h = defaultWidth, defaultHeight
	}

	helpView := m.help.View(m.keys)
	reserved := 1 + strings.Count(helpView, "\n") + 1
	c := newCanvas(w, max(h-reserved, joystickH+1))

	c.put(1, 0, m.title, styleTitle)

	cs := m.current.Controls
	if cs.Enabled {
		m.renderControls(c, cs)
	}
	m.renderDock(c, cs)

	var b strings.Builder
	b.WriteString(c.String())
	b.WriteString("\n")
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(helpView))
	return b.String()
}

func (m Model) renderControls(c *canvas, cs settings.ControlSettings) {
	if style, ok := itemStyle(cs, settings.ControlJoystick, false); ok {
		p, _ := cs.Position(settings.PositionJoystick)
		x, y := anchor(p, c.w, c.h, joystickW, joystickH)
		held := make(map[string]bool, len(m.held))
		for d := range m.held {
			held[d.Name()] = true
		}
		renderJoystick(c, x, y, style, held)
	}

	p, _ := cs.Position(settings.PositionButtons)
	bx, by := anchor(p, c.w, c.h, buttonsW, buttonsH)
	for _, bc := range buttonCells {
		style, ok := itemStyle(cs, bc.t, m.flash == bc.t)
		if !ok {
			continue
		}
		c.put(bx+bc.x, by+bc.y, buttonLabel[bc.t], style)
	}
}

func (m Model) renderDock(c *canvas, cs settings.ControlSettings) {
	tools := m.current.Tools

	sound, soundStyle := "sound", styleOn
	if tools.IsMuted {
		sound, soundStyle = "muted", styleMuted
	}
	fps, fpsStyle := "fps off", styleFaint
	if tools.ShowFPS {
		fps, fpsStyle = "fps on", styleOn
	}
	overlay := "overlay " + cs.Alpha.String()
	if !cs.Enabled {
		overlay = "overlay off"
	}

	width := len(sound) + len(fps) + len(overlay) + 4
	p, _ := cs.Position(settings.PositionDock)
	x, y := anchor(p, c.w, c.h, width, 1)
	if y == 0 {
		// Keep the title row free.
		y = min(1, c.h-1)
	}

	c.put(x, y, sound, soundStyle)
	x += len(sound) + 2
	c.put(x, y, fps, fpsStyle)
	x += len(fps) + 2
	c.put(x, y, overlay, styleItem)
}

// Run starts the Bubble Tea program for the overlay and blocks until the
// user quits or ctx is done.
func Run(ctx context.Context, controls *player.Controls, repo *settings.Repository, opts ...ModelOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctx, controls, repo, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
