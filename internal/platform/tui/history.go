package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yoimerdr/ludens-sub001/internal/settings"
	"github.com/yoimerdr/ludens-sub001/internal/storage"
)

// maxSnapshots is how many snapshots the history screen loads.
const maxSnapshots = 100

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Restore key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Restore, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Restore, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Restore: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter/r", "restore"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model listing stored settings snapshots.
// Restoring a snapshot saves it again as the newest one.
type HistoryModel struct {
	ctx       context.Context
	store     *storage.Store
	repo      *settings.Repository
	snapshots []storage.Snapshot
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	status    string
	quitting  bool
}

// NewHistoryModel creates a history screen over store. repo must use store
// as its backend.
func NewHistoryModel(ctx context.Context, store *storage.Store, repo *settings.Repository, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		ctx:    ctx,
		store:  store,
		repo:   repo,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadSnapshots()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Saved", Width: 14},
		{Title: "Sound", Width: 7},
		{Title: "FPS", Width: 5},
		{Title: "Overlay", Width: 8},
		{Title: "Locale", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-6, 3)), // Leave room for title, help and status
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadSnapshots reloads the snapshot list.
func (m *HistoryModel) loadSnapshots() {
	snapshots, err := m.store.History(m.ctx, maxSnapshots)
	if err != nil {
		m.status = err.Error()
		m.snapshots = nil
	} else {
		m.snapshots = snapshots
	}
	m.table.SetRows(SnapshotRows(m.snapshots))
	m.table.GotoTop()
}

// SnapshotRows summarizes snapshots as table rows. Undecodable snapshots
// are listed as unreadable.
func SnapshotRows(snapshots []storage.Snapshot) []table.Row {
	rows := make([]table.Row, len(snapshots))
	for i, snap := range snapshots {
		row := table.Row{
			fmt.Sprintf("%d", snap.ID),
			snap.CreatedAt.Format("Jan 02 15:04"),
		}
		s, err := settings.Decode(snap.Data)
		if err != nil {
			rows[i] = append(row, "unreadable", "", "", "")
			continue
		}

		sound := "on"
		if s.Tools.IsMuted {
			sound = "muted"
		}
		fps := "off"
		if s.Tools.ShowFPS {
			fps = "on"
		}
		overlay := "off"
		if s.Controls.Enabled {
			overlay = s.Controls.Alpha.String()
		}
		rows[i] = append(row, sound, fps, overlay, s.System.Locale)
	}
	return rows
}

// restore makes the selected snapshot current.
func (m *HistoryModel) restore() {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.snapshots) {
		return
	}
	snap := m.snapshots[i]

	s, err := settings.Decode(snap.Data)
	if err != nil {
		m.status = fmt.Sprintf("snapshot %d is unreadable", snap.ID)
		return
	}
	if _, err := m.repo.Update(m.ctx, func(settings.Settings) settings.Settings {
		return settings.Complete(s, m.repo.Defaults())
	}); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("restored snapshot %d", snap.ID)
	m.loadSnapshots()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Restore):
			m.restore()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(SnapshotRows(m.snapshots))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("SETTINGS HISTORY"))
	b.WriteString("\n\n")

	if len(m.snapshots) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
		b.WriteString(emptyStyle.Render("No settings saved yet."))
	} else {
		tableStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Status returns the last status message.
func (m HistoryModel) Status() string {
	return m.status
}

// RunHistory runs the history screen.
func RunHistory(ctx context.Context, store *storage.Store, repo *settings.Repository, width, height int) error {
	model := NewHistoryModel(ctx, store, repo, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
