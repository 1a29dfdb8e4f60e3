package scripthost

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newDemoRuntime(t *testing.T) *Runtime {
	t.Helper()
	r := NewRuntime()
	t.Cleanup(func() { r.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Load(ctx, "game.js", DemoGame); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return r
}

func exec(t *testing.T, r *Runtime, script string) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	got, err := r.Exec(ctx, script)
	if err != nil {
		t.Fatalf("Exec(%q) failed: %v", script, err)
	}
	return got
}

func TestRuntimeDropsScriptsBeforeLoad(t *testing.T) {
	r := NewRuntime()
	defer r.Close()

	called := make(chan string, 1)
	r.Evaluate("1 + 1", func(result string) { called <- result })

	select {
	case got := <-called:
		t.Errorf("callback fired before load with %q", got)
	case <-time.After(30 * time.Millisecond):
	}

	if _, err := r.Exec(context.Background(), "1"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Exec() before load error = %v, want ErrNotLoaded", err)
	}
}

func TestRuntimeEvaluateCallback(t *testing.T) {
	r := newDemoRuntime(t)

	got, err := Await(context.Background(), r, "Ludens.fps.isVisible")
	if err != nil {
		t.Fatalf("Await() failed: %v", err)
	}
	if got != "false" {
		t.Errorf("isVisible = %q, want false", got)
	}

	r.Evaluate("Ludens.fps.show();", nil)
	if got := exec(t, r, "Ludens.fps.isVisible"); got != "true" {
		t.Errorf("isVisible after show = %q, want true", got)
	}
}

func TestRuntimeResultEncoding(t *testing.T) {
	r := newDemoRuntime(t)

	tests := []struct {
		script string
		want   string
	}{
		{"undefined", "null"},
		{"null", "null"},
		{"1 + 2", "3"},
		{"'abc'", `"abc"`},
		{"true", "true"},
	}
	for _, tt := range tests {
		if got := exec(t, r, tt.script); got != tt.want {
			t.Errorf("Exec(%q) = %q, want %q", tt.script, got, tt.want)
		}
	}
}

func TestRuntimeScriptErrorIsSilentForEvaluate(t *testing.T) {
	r := newDemoRuntime(t)

	called := make(chan struct{}, 1)
	r.Evaluate("Missing.call();", func(string) { called <- struct{}{} })

	// A later script still runs.
	if got := exec(t, r, "1"); got != "1" {
		t.Errorf("Exec() = %q, want 1", got)
	}
	select {
	case <-called:
		t.Error("callback fired for failing script")
	default:
	}

	if _, err := r.Exec(context.Background(), "Missing.call();"); err == nil {
		t.Error("Exec() should report script errors")
	}
}

func TestRuntimeSetTimeout(t *testing.T) {
	r := newDemoRuntime(t)

	r.Evaluate("setTimeout(function(){Input._currentState['up'] = true;}, 100);", nil)
	if got := exec(t, r, "Input.isPressed('up')"); got != "false" {
		t.Errorf("state before timer = %q, want false", got)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if exec(t, r, "Input.isPressed('up')") == "true" {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("timer callback never ran")
}

func TestRuntimeClearTimeout(t *testing.T) {
	r := newDemoRuntime(t)

	exec(t, r, "var id = setTimeout(function(){Input._currentState['left'] = true;}, 10); clearTimeout(id);")
	time.Sleep(40 * time.Millisecond)
	if got := exec(t, r, "Input.isPressed('left')"); got != "false" {
		t.Errorf("cleared timer ran, state = %q", got)
	}
}

func TestRuntimePluginHandshake(t *testing.T) {
	r := NewRuntime()
	defer r.Close()

	states := make(chan PluginState, 1)
	r.OnPlugin(func(s PluginState) { states <- s })

	if err := r.Load(context.Background(), "game.js", DemoGame); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	select {
	case s := <-states:
		if !s.Ready() {
			t.Errorf("handshake state = %+v, want ready", s)
		}
	case <-time.After(time.Second):
		t.Fatal("no handshake received")
	}
	if !r.Plugin().IsEnabled {
		t.Error("Plugin() should report enabled after handshake")
	}
}

func TestRuntimePluginHandshakeWithoutPayload(t *testing.T) {
	r := NewRuntime(WithBridgeName("Bridge"))
	defer r.Close()

	if err := r.Load(context.Background(), "boot.js", "Bridge.onPluginLoaded();"); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if r.Plugin() != Disabled {
		t.Errorf("Plugin() = %+v, want Disabled", r.Plugin())
	}
}

func TestRuntimeLoadError(t *testing.T) {
	r := NewRuntime()
	defer r.Close()

	if err := r.Load(context.Background(), "bad.js", "this is not javascript"); err == nil {
		t.Fatal("Load() should fail on a syntax error")
	}
	if r.Loaded() {
		t.Error("runtime should not be marked loaded after a failed load")
	}
}

func TestRuntimeClosed(t *testing.T) {
	r := newDemoRuntime(t)
	r.Close()

	if err := r.Load(context.Background(), "game.js", DemoGame); !errors.Is(err, ErrClosed) {
		t.Errorf("Load() after Close error = %v, want ErrClosed", err)
	}
	if _, err := r.Exec(context.Background(), "1"); !errors.Is(err, ErrClosed) {
		t.Errorf("Exec() after Close error = %v, want ErrClosed", err)
	}
	// Must not panic or block.
	r.Evaluate("1", nil)
	r.Close()
}
