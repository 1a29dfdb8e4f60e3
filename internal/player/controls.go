package player

import (
	"github.com/charmbracelet/log"

	"github.com/yoimerdr/ludens-sub001/internal/keyscript"
	"github.com/yoimerdr/ludens-sub001/internal/scripthost"
)

// DefaultNamespace is the plugin namespace of the hosted game.
const DefaultNamespace = "Ludens"

// Config holds the settings shared by every port.
type Config struct {
	// Namespace is the global object exposing audio and fps commands.
	Namespace string

	// ReleaseTimeout is the auto-release delay for taps, in milliseconds.
	ReleaseTimeout int

	Logger *log.Logger
}

// DefaultConfig returns a config with the default namespace and timeout.
func DefaultConfig() Config {
	return Config{
		Namespace:      DefaultNamespace,
		ReleaseTimeout: keyscript.DefaultReleaseTimeout,
	}
}

// Controls bundles every port over one host. The key ports share a single
// evaluator, so all of them must be driven from the same goroutine.
type Controls struct {
	Movements *Movements
	Buttons   *Buttons
	Graphics  *Graphics
	Audio     *Audio
	FPS       *FPS

	evaluator *keyscript.Evaluator
}

// NewControls wires every port to host.
func NewControls(host scripthost.Host, cfg Config) *Controls {
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	if cfg.ReleaseTimeout <= 0 {
		cfg.ReleaseTimeout = keyscript.DefaultReleaseTimeout
	}

	e := keyscript.NewEvaluator(host,
		keyscript.WithReleaseTimeout(cfg.ReleaseTimeout),
		keyscript.WithLogger(cfg.Logger),
	)
	return &Controls{
		Movements: NewMovements(e),
		Buttons:   NewButtons(e),
		Graphics:  NewGraphics(e),
		Audio:     NewAudio(host, cfg.Namespace),
		FPS:       NewFPS(host, cfg.Namespace),
		evaluator: e,
	}
}

// Evaluator returns the evaluator shared by the key ports.
func (c *Controls) Evaluator() *keyscript.Evaluator {
	return c.evaluator
}
