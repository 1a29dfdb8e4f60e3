package player

import (
	"github.com/yoimerdr/ludens-sub001/internal/keyevent"
	"github.com/yoimerdr/ludens-sub001/internal/keyscript"
)

// Buttons drives discrete keys (letters, enter, escape, modifiers).
type Buttons struct {
	evaluator *keyscript.Evaluator
}

// NewButtons creates a button port.
func NewButtons(e *keyscript.Evaluator) *Buttons {
	return &Buttons{evaluator: e}
}

// Input sends a key press. When pressed is true the key goes down and stays
// down until Release. When pressed is false the call is a tap: the key goes
// down and is released after the evaluator's release timeout.
func (b *Buttons) Input(code int, pressed bool) {
	b.evaluator.EvaluateKeyEvent(keyevent.Down, !pressed, keyevent.InputOf(code))
}

// Tap is Input(code, false).
func (b *Buttons) Tap(code int) {
	b.Input(code, false)
}

// Release sends the key up.
func (b *Buttons) Release(code int) {
	b.evaluator.Evaluate(keyevent.Up, keyevent.InputOf(code))
}
