package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yoimerdr/ludens-sub001/internal/keyevent"
	"github.com/yoimerdr/ludens-sub001/internal/settings"
)

func TestKeyMapDirections(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want keyevent.Direction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, keyevent.DirectionUp},
		{runes("w"), keyevent.DirectionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, keyevent.DirectionDown},
		{runes("a"), keyevent.DirectionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, keyevent.DirectionRight},
	}
	for _, tt := range tests {
		got, ok := km.Direction(tt.msg)
		if !ok || got != tt.want {
			t.Errorf("Direction(%q) = %v, %v; want %v", tt.msg.String(), got, ok, tt.want)
		}
	}

	if _, ok := km.Direction(runes("z")); ok {
		t.Error("z should not be a direction")
	}
}

func TestKeyMapButtons(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want settings.ControlType
	}{
		{runes("z"), settings.ControlA},
		{runes("x"), settings.ControlB},
		{runes("c"), settings.ControlX},
		{runes("v"), settings.ControlY},
		{runes("["), settings.ControlL},
		{runes("]"), settings.ControlR},
		{tea.KeyMsg{Type: tea.KeyEnter}, settings.ControlStart},
		{tea.KeyMsg{Type: tea.KeyEsc}, settings.ControlSelect},
	}
	for _, tt := range tests {
		got, ok := km.Button(tt.msg)
		if !ok || got != tt.want {
			t.Errorf("Button(%q) = %v, %v; want %v", tt.msg.String(), got, ok, tt.want)
		}
	}
}

func TestKeyMapGraphics(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyF2}, keyevent.CodeF2},
		{tea.KeyMsg{Type: tea.KeyF3}, keyevent.CodeF3},
		{tea.KeyMsg{Type: tea.KeyF4}, keyevent.CodeF4},
	}
	for _, tt := range tests {
		got, ok := km.Graphics(tt.msg)
		if !ok || got != tt.want {
			t.Errorf("Graphics(%q) = %d, %v; want %d", tt.msg.String(), got, ok, tt.want)
		}
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp() is empty")
	}
	total := 0
	for _, col := range km.FullHelp() {
		total += len(col)
	}
	if total < 20 {
		t.Errorf("FullHelp() lists %d bindings, want every binding", total)
	}
}
