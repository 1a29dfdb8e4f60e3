// Package player exposes the high-level controls ("move up", "press A",
// "toggle FPS") and translates them into scripts for the hosted game.
package player

import (
	"github.com/yoimerdr/ludens-sub001/internal/keyevent"
	"github.com/yoimerdr/ludens-sub001/internal/keyscript"
)

// Movements drives the four directional keys.
type Movements struct {
	evaluator *keyscript.Evaluator
}

// NewMovements creates a movement port.
func NewMovements(e *keyscript.Evaluator) *Movements {
	return &Movements{evaluator: e}
}

// Move applies an active direction set (zero, one or two directions) in a
// single script. Every direction outside the set is released first, then the
// active ones receive Down when pressed and Up otherwise.
//
// Releasing the inactive directions first keeps a gesture that slides from
// one diagonal straight into another from leaving a key engaged.
func (m *Movements) Move(active []keyevent.Direction, pressed bool) {
	t := keyevent.Up
	if pressed {
		t = keyevent.Down
	}

	in := make(map[keyevent.Direction]bool, len(active))
	for _, d := range active {
		in[d] = true
	}

	for _, d := range keyevent.Directions {
		if !in[d] {
			m.evaluator.Prepare(keyevent.Up, keyevent.MovementOf(d.Code()))
		}
	}
	for _, d := range keyevent.Directions {
		if in[d] {
			m.evaluator.Prepare(t, keyevent.MovementOf(d.Code()))
		}
	}
	m.evaluator.EvaluateKeyEventScript(nil)
}

// Release releases every direction.
func (m *Movements) Release() {
	m.Move(nil, false)
}
