// Package tui provides the Bubble Tea control overlay for a hosted game.
// It maps terminal keys onto the player ports, renders the overlay from the
// user settings and serves it over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultHoldWindow is how long a direction stays held after its last key
// repeat. Terminals report no key-up, so a key that stops repeating counts
// as released.
const DefaultHoldWindow = 250 * time.Millisecond

// releaseMsg asks the model to drop expired directions and button flashes.
type releaseMsg time.Time

// releaseCmd schedules a releaseMsg after d.
func releaseCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return releaseMsg(t)
	})
}
