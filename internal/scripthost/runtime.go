package scripthost

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"
)

// DefaultBridgeName is the global object the game uses to talk back.
const DefaultBridgeName = "LudensBridge"

// Runtime is an embedded JavaScript engine hosting the game.
//
// The engine is owned by a single loop goroutine. Evaluate, Exec and Load
// queue work onto that loop; callbacks and timers run on it too, so they
// must not block.
type Runtime struct {
	vm     *goja.Runtime
	logger *log.Logger
	bridge string

	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
	done  chan struct{}
	exit  chan struct{}

	closeOnce sync.Once
	loaded    atomic.Bool

	// Loop-owned.
	timers    map[int64]*time.Timer
	nextTimer int64

	pluginMu  sync.Mutex
	plugin    PluginState
	listeners []func(PluginState)
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithLogger sets the runtime logger. Console output from the game is
// forwarded to it.
func WithLogger(logger *log.Logger) RuntimeOption {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithBridgeName sets the name of the global bridge object.
func WithBridgeName(name string) RuntimeOption {
	return func(r *Runtime) {
		if name != "" {
			r.bridge = name
		}
	}
}

// NewRuntime creates a runtime and starts its loop. Call Close to stop it.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	r := &Runtime{
		vm:     goja.New(),
		logger: log.New(io.Discard),
		bridge: DefaultBridgeName,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		exit:   make(chan struct{}),
		timers: make(map[int64]*time.Timer),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.installGlobals()
	go r.loop()
	return r
}

func (r *Runtime) installGlobals() {
	r.vm.Set("setTimeout", r.setTimeout)
	r.vm.Set("clearTimeout", r.clearTimeout)

	console := r.vm.NewObject()
	console.Set("log", r.consoleFunc(log.InfoLevel))
	console.Set("info", r.consoleFunc(log.InfoLevel))
	console.Set("debug", r.consoleFunc(log.DebugLevel))
	console.Set("warn", r.consoleFunc(log.WarnLevel))
	console.Set("error", r.consoleFunc(log.ErrorLevel))
	r.vm.Set("console", console)

	bridge := r.vm.NewObject()
	bridge.Set("onPluginLoaded", r.onPluginLoaded)
	r.vm.Set(r.bridge, bridge)
}

// post queues fn onto the loop. It never blocks.
func (r *Runtime) post(fn func()) bool {
	select {
	case <-r.done:
		return false
	default:
	}

	r.mu.Lock()
	r.queue = append(r.queue, fn)
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
	return true
}

func (r *Runtime) loop() {
	defer close(r.exit)
	for {
		select {
		case <-r.done:
			return
		case <-r.wake:
		}

		for {
			r.mu.Lock()
			if len(r.queue) == 0 {
				r.mu.Unlock()
				break
			}
			fn := r.queue[0]
			r.queue[0] = nil
			r.queue = r.queue[1:]
			r.mu.Unlock()

			select {
			case <-r.done:
				return
			default:
			}
			fn()
		}
	}
}

// Load runs the game source. Scripts evaluated before Load succeeds are
// dropped.
func (r *Runtime) Load(ctx context.Context, name, src string) error {
	errc := make(chan error, 1)
	ok := r.post(func() {
		_, err := r.vm.RunScript(name, src)
		errc <- err
	})
	if !ok {
		return ErrClosed
	}

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("scripthost: cannot load %s: %w", name, err)
		}
		r.loaded.Store(true)
		r.logger.Debug("game loaded", "name", name)
		return nil
	case <-r.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Loaded reports whether a game has been loaded.
func (r *Runtime) Loaded() bool {
	return r.loaded.Load()
}

// Evaluate implements Host. Failures are logged and otherwise ignored.
func (r *Runtime) Evaluate(script string, cb Callback) {
	if !r.loaded.Load() {
		r.logger.Debug("dropping script, game not loaded", "script", script)
		return
	}
	ok := r.post(func() {
		v, err := r.vm.RunString(script)
		if err != nil {
			r.logger.Debug("script failed", "script", script, "error", err)
			return
		}
		if cb != nil {
			cb(resultString(v))
		}
	})
	if !ok {
		r.logger.Debug("dropping script, runtime closed", "script", script)
	}
}

// Exec evaluates script and waits for its result, reporting failures that
// Evaluate swallows.
func (r *Runtime) Exec(ctx context.Context, script string) (string, error) {
	if !r.loaded.Load() {
		return "", ErrNotLoaded
	}

	type outcome struct {
		result string
		err    error
	}
	out := make(chan outcome, 1)
	ok := r.post(func() {
		v, err := r.vm.RunString(script)
		if err != nil {
			out <- outcome{err: fmt.Errorf("scripthost: %w", err)}
			return
		}
		out <- outcome{result: resultString(v)}
	})
	if !ok {
		return "", ErrClosed
	}

	select {
	case o := <-out:
		return o.result, o.err
	case <-r.done:
		return "", ErrClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// OnPlugin registers fn to be called with every handshake the game sends.
func (r *Runtime) OnPlugin(fn func(PluginState)) {
	r.pluginMu.Lock()
	defer r.pluginMu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Plugin returns the last reported plugin state, Disabled if none.
func (r *Runtime) Plugin() PluginState {
	r.pluginMu.Lock()
	defer r.pluginMu.Unlock()
	return r.plugin
}

// Close stops the loop and pending timers. Running scripts are interrupted.
func (r *Runtime) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
		r.vm.Interrupt(ErrClosed)
		<-r.exit
		for id, t := range r.timers {
			t.Stop()
			delete(r.timers, id)
		}
	})
	return nil
}

func (r *Runtime) setTimeout(call goja.FunctionCall) goja.Value {
	fn, ok := goja.AssertFunction(call.Argument(0))
	if !ok {
		return goja.Undefined()
	}
	delay := call.Argument(1).ToInteger()
	if delay < 0 {
		delay = 0
	}
	var args []goja.Value
	if len(call.Arguments) > 2 {
		args = call.Arguments[2:]
	}

	r.nextTimer++
	id := r.nextTimer
	r.timers[id] = time.AfterFunc(time.Duration(delay)*time.Millisecond, func() {
		r.post(func() {
			if _, live := r.timers[id]; !live {
				return
			}
			delete(r.timers, id)
			if _, err := fn(goja.Undefined(), args...); err != nil {
				r.logger.Debug("timer callback failed", "id", id, "error", err)
			}
		})
	})
	return r.vm.ToValue(id)
}

func (r *Runtime) clearTimeout(call goja.FunctionCall) goja.Value {
	id := call.Argument(0).ToInteger()
	if t, ok := r.timers[id]; ok {
		t.Stop()
		delete(r.timers, id)
	}
	return goja.Undefined()
}

func (r *Runtime) consoleFunc(level log.Level) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}
		r.logger.Log(level, strings.Join(parts, " "), "source", "game")
		return goja.Undefined()
	}
}

func (r *Runtime) onPluginLoaded(call goja.FunctionCall) goja.Value {
	arg := call.Argument(0)
	var payload string
	if !goja.IsUndefined(arg) && !goja.IsNull(arg) {
		if s, ok := arg.Export().(string); ok {
			payload = s
		} else if b, err := json.Marshal(arg.Export()); err == nil {
			payload = string(b)
		}
	}

	state := ParsePluginState(payload)
	r.logger.Info("plugin handshake", "enabled", state.IsEnabled, "loading", state.IsLoading)

	r.pluginMu.Lock()
	r.plugin = state
	listeners := make([]func(PluginState), len(r.listeners))
	copy(listeners, r.listeners)
	r.pluginMu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
	return goja.Undefined()
}

// resultString renders a script result the way web views report it: JSON
// text, "null" for undefined.
func resultString(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return "null"
	}
	b, err := json.Marshal(v.Export())
	if err != nil {
		return v.String()
	}
	return string(b)
}

var _ Host = (*Runtime)(nil)
