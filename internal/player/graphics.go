package player

import (
	"github.com/yoimerdr/ludens-sub001/internal/keyevent"
	"github.com/yoimerdr/ludens-sub001/internal/keyscript"
)

// Graphics drives the graphics toggle keys (F2 fps meter, F3 stretch, F4
// fullscreen).
type Graphics struct {
	evaluator *keyscript.Evaluator
}

// NewGraphics creates a graphics port.
func NewGraphics(e *keyscript.Evaluator) *Graphics {
	return &Graphics{evaluator: e}
}

// Input triggers the key. Graphics keys are momentary, so pressed is
// ignored and a Down event is always sent.
func (g *Graphics) Input(code int, pressed bool) {
	g.evaluator.Evaluate(keyevent.Down, keyevent.GraphicsOf(code))
}
