package keyscript

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/yoimerdr/ludens-sub001/internal/keyevent"
	"github.com/yoimerdr/ludens-sub001/internal/scripthost"
)

// DefaultReleaseTimeout is the delay, in milliseconds, after which an
// automatically scheduled release fires.
const DefaultReleaseTimeout = 150

// Evaluator prepares key events into a pending batch and flushes the batch
// to a script host in a single call.
//
// Like Builder, an Evaluator is meant for a single goroutine.
type Evaluator struct {
	builder *Builder
	host    scripthost.Host
	timeout int
	logger  *log.Logger
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithReleaseTimeout sets the auto-release delay in milliseconds.
func WithReleaseTimeout(ms int) EvaluatorOption {
	return func(e *Evaluator) { e.timeout = ms }
}

// WithLogger sets the evaluator logger.
func WithLogger(logger *log.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEvaluator creates an evaluator sending scripts to host.
func NewEvaluator(host scripthost.Host, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		host:    host,
		timeout: DefaultReleaseTimeout,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.builder = NewBuilder(e.logger)
	return e
}

// Host returns the script host the evaluator writes to.
func (e *Evaluator) Host() scripthost.Host {
	return e.host
}

// ReleaseTimeout returns the auto-release delay in milliseconds.
func (e *Evaluator) ReleaseTimeout() int {
	return e.timeout
}

// Pending returns the number of prepared, unflushed events.
func (e *Evaluator) Pending() int {
	return e.builder.Len()
}

// EvaluateKeyEventScript flushes every prepared event to the host as one
// script. cb may be nil.
func (e *Evaluator) EvaluateKeyEventScript(cb scripthost.Callback) {
	script := e.builder.Drain()
	e.logger.Debug("evaluating key script", "script", script)
	e.host.Evaluate(script, cb)
}

// PrepareKeyEvent adds f(t, no timeout) to the batch. With timeout set, it
// also adds the opposite transition delayed by the release timeout, so a
// single call models a tap.
func (e *Evaluator) PrepareKeyEvent(t keyevent.Type, timeout bool, f keyevent.Factory) {
	e.builder.Add(f(t, keyevent.NoTimeout))
	if timeout {
		e.builder.Add(f(t.Opposite(), keyevent.After(e.timeout)))
	}
}

// Prepare is PrepareKeyEvent without timeout.
func (e *Evaluator) Prepare(t keyevent.Type, f keyevent.Factory) {
	e.PrepareKeyEvent(t, false, f)
}

// EvaluateKeyEvent prepares one event and flushes immediately.
func (e *Evaluator) EvaluateKeyEvent(t keyevent.Type, timeout bool, f keyevent.Factory) {
	e.PrepareKeyEvent(t, timeout, f)
	e.EvaluateKeyEventScript(nil)
}

// Evaluate is EvaluateKeyEvent without timeout.
func (e *Evaluator) Evaluate(t keyevent.Type, f keyevent.Factory) {
	e.EvaluateKeyEvent(t, false, f)
}

// EvaluateEvent adds a fully formed event and flushes.
func (e *Evaluator) EvaluateEvent(ev keyevent.Event) {
	e.builder.Add(ev)
	e.EvaluateKeyEventScript(nil)
}
