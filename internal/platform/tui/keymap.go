package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yoimerdr/ludens-sub001/internal/keyevent"
	"github.com/yoimerdr/ludens-sub001/internal/settings"
)

// KeyMap defines the overlay key bindings. Terminal keys select a control;
// the key code sent to the game comes from the control's settings.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	A      key.Binding
	B      key.Binding
	X      key.Binding
	Y      key.Binding
	L      key.Binding
	R      key.Binding
	Start  key.Binding
	Select key.Binding

	FPSMeter   key.Binding
	Stretch    key.Binding
	Fullscreen key.Binding

	Mute      key.Binding
	ShowFPS   key.Binding
	Overlay   key.Binding
	AlphaUp   key.Binding
	AlphaDown key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.A, k.B, k.Start, k.Mute, k.ShowFPS, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.A, k.B, k.X, k.Y},
		{k.L, k.R, k.Start, k.Select},
		{k.FPSMeter, k.Stretch, k.Fullscreen},
		{k.Mute, k.ShowFPS, k.Overlay, k.AlphaUp, k.AlphaDown},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default overlay bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		A: key.NewBinding(
			key.WithKeys("z", "j"),
			key.WithHelp("z/j", "A"),
		),
		B: key.NewBinding(
			key.WithKeys("x", "k"),
			key.WithHelp("x/k", "B"),
		),
		X: key.NewBinding(
			key.WithKeys("c", "u"),
			key.WithHelp("c/u", "X"),
		),
		Y: key.NewBinding(
			key.WithKeys("v", "i"),
			key.WithHelp("v/i", "Y"),
		),
		L: key.NewBinding(
			key.WithKeys("pgup", "["),
			key.WithHelp("[", "L"),
		),
		R: key.NewBinding(
			key.WithKeys("pgdown", "]"),
			key.WithHelp("]", "R"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Select: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "select"),
		),
		FPSMeter: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "fps meter"),
		),
		Stretch: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "stretch"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("f4"),
			key.WithHelp("F4", "fullscreen"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		ShowFPS: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fps"),
		),
		Overlay: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "overlay"),
		),
		AlphaUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "opacity up"),
		),
		AlphaDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "opacity down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Direction maps a key message to a joystick direction.
func (k KeyMap) Direction(msg tea.KeyMsg) (keyevent.Direction, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return keyevent.DirectionUp, true
	case key.Matches(msg, k.Down):
		return keyevent.DirectionDown, true
	case key.Matches(msg, k.Left):
		return keyevent.DirectionLeft, true
	case key.Matches(msg, k.Right):
		return keyevent.DirectionRight, true
	}
	return 0, false
}

// Button maps a key message to an overlay button.
func (k KeyMap) Button(msg tea.KeyMsg) (settings.ControlType, bool) {
	switch {
	case key.Matches(msg, k.A):
		return settings.ControlA, true
	case key.Matches(msg, k.B):
		return settings.ControlB, true
	case key.Matches(msg, k.X):
		return settings.ControlX, true
	case key.Matches(msg, k.Y):
		return settings.ControlY, true
	case key.Matches(msg, k.L):
		return settings.ControlL, true
	case key.Matches(msg, k.R):
		return settings.ControlR, true
	case key.Matches(msg, k.Start):
		return settings.ControlStart, true
	case key.Matches(msg, k.Select):
		return settings.ControlSelect, true
	}
	return 0, false
}

// Graphics maps a key message to a graphics key code.
func (k KeyMap) Graphics(msg tea.KeyMsg) (int, bool) {
	switch {
	case key.Matches(msg, k.FPSMeter):
		return keyevent.CodeF2, true
	case key.Matches(msg, k.Stretch):
		return keyevent.CodeF3, true
	case key.Matches(msg, k.Fullscreen):
		return keyevent.CodeF4, true
	}
	return 0, false
}
