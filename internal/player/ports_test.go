package player

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yoimerdr/ludens-sub001/internal/keyevent"
	"github.com/yoimerdr/ludens-sub001/internal/keyscript"
	"github.com/yoimerdr/ludens-sub001/internal/scripthost"
)

const preventDefault = "'preventDefault': function(){return true;}"

func TestButtonsInput(t *testing.T) {
	rec := scripthost.NewRecorder()
	b := NewButtons(keyscript.NewEvaluator(rec))

	b.Input(keyevent.CodeEnter, true)
	want := "Input._onKeyDown({'keyCode': 13, " + preventDefault + "});"
	if got := rec.Last(); got != want {
		t.Errorf("pressed: script = %q, want %q", got, want)
	}

	b.Input(keyevent.CodeEnter, false)
	want = "Input._onKeyDown({'keyCode': 13, " + preventDefault + "});" +
		" setTimeout(function(){Input._onKeyUp({'keyCode': 13, " + preventDefault + "});}, 150);"
	if got := rec.Last(); got != want {
		t.Errorf("tap: script = %q, want %q", got, want)
	}

	b.Release(keyevent.CodeEnter)
	want = "Input._onKeyUp({'keyCode': 13, " + preventDefault + "});"
	if got := rec.Last(); got != want {
		t.Errorf("release: script = %q, want %q", got, want)
	}
}

func TestGraphicsIgnoresPressed(t *testing.T) {
	rec := scripthost.NewRecorder()
	g := NewGraphics(keyscript.NewEvaluator(rec))

	want := "Graphics._onKeyDown({'keyCode': 113, " + preventDefault + "});"
	for _, pressed := range []bool{true, false} {
		g.Input(keyevent.CodeF2, pressed)
		if got := rec.Last(); got != want {
			t.Errorf("pressed=%v: script = %q, want %q", pressed, got, want)
		}
	}
}

func TestAudioCommands(t *testing.T) {
	rec := scripthost.NewRecorder()
	a := NewAudio(rec, "Ludens")

	a.Mute()
	a.Unmute()
	a.SetVolume(CoerceVolume(70))
	a.SetMuted(true)

	want := []string{
		"Ludens.audio.mute();",
		"Ludens.audio.unmute();",
		"Ludens.audio.setVolume(70);",
		"Ludens.audio.mute();",
	}
	got := rec.Scripts()
	if len(got) != len(want) {
		t.Fatalf("scripts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("script[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFPSCommands(t *testing.T) {
	rec := scripthost.NewRecorder()
	f := NewFPS(rec, "Game")

	f.Show()
	f.Hide()
	f.Toggle()
	f.SetVisible(true)

	want := []string{"Game.fps.show();", "Game.fps.hide();", "Game.fps.toggle();", "Game.fps.show();"}
	got := rec.Scripts()
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("scripts = %v, want %v", got, want)
		}
	}
}

func TestQueriesParseResult(t *testing.T) {
	rec := scripthost.NewRecorder().
		Respond("Ludens.audio.isMuted", "true").
		Respond("Ludens.fps.isVisible", "false")

	a := NewAudio(rec, "Ludens")
	f := NewFPS(rec, "Ludens")

	if !a.IsMuted(context.Background()) {
		t.Error("IsMuted() = false, want true")
	}
	if f.IsVisible(context.Background()) {
		t.Error("IsVisible() = true, want false")
	}

	var muted bool
	a.IsMutedFunc(func(m bool) { muted = m })
	if !muted {
		t.Error("IsMutedFunc callback got false, want true")
	}
}

func TestQueriesDefaultToFalse(t *testing.T) {
	rec := scripthost.NewRecorder()
	a := NewAudio(rec, "Ludens")
	f := NewFPS(rec, "Ludens")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if a.IsMuted(ctx) {
		t.Error("IsMuted() without answer should be false")
	}
	if f.IsVisible(ctx) {
		t.Error("IsVisible() without answer should be false")
	}

	called := false
	f.IsVisibleFunc(func(bool) { called = true })
	if called {
		t.Error("IsVisibleFunc callback should not run without an answer")
	}
}

func TestVolume(t *testing.T) {
	if _, err := NewVolume(101); !errors.Is(err, ErrVolumeRange) {
		t.Errorf("NewVolume(101) error = %v, want ErrVolumeRange", err)
	}
	if _, err := NewVolume(-1); !errors.Is(err, ErrVolumeRange) {
		t.Errorf("NewVolume(-1) error = %v, want ErrVolumeRange", err)
	}
	v, err := NewVolume(40)
	if err != nil || v.Int() != 40 {
		t.Errorf("NewVolume(40) = %v, %v", v, err)
	}
	if CoerceVolume(-5) != CoerceVolume(0) {
		t.Error("CoerceVolume(-5) should equal CoerceVolume(0)")
	}
	if CoerceVolume(500).Int() != 100 {
		t.Errorf("CoerceVolume(500) = %d, want 100", CoerceVolume(500).Int())
	}
}

func TestControlsAgainstRuntime(t *testing.T) {
	rt := scripthost.NewRuntime()
	defer rt.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rt.Load(ctx, "game.js", scripthost.DemoGame); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	c := NewControls(rt, DefaultConfig())

	c.Movements.Move([]keyevent.Direction{keyevent.DirectionUp, keyevent.DirectionLeft}, true)
	if got, _ := rt.Exec(ctx, "Input.isPressed('up') && Input.isPressed('left') && !Input.isPressed('down')"); got != "true" {
		t.Errorf("diagonal state = %q, want true", got)
	}

	c.Movements.Move(nil, true)
	if got, _ := rt.Exec(ctx, "Input.isPressed('up') || Input.isPressed('left')"); got != "false" {
		t.Errorf("state after release = %q, want false", got)
	}

	c.Graphics.Input(keyevent.CodeF2, false)
	if !c.FPS.IsVisible(ctx) {
		t.Error("F2 should show the fps meter")
	}
	c.FPS.Hide()
	if c.FPS.IsVisible(ctx) {
		t.Error("Hide() should hide the fps meter")
	}

	c.Audio.Mute()
	if !c.Audio.IsMuted(ctx) {
		t.Error("Mute() should mute")
	}
	c.Audio.SetVolume(CoerceVolume(30))
	if got, _ := rt.Exec(ctx, "Ludens.audio.volume"); got != "30" {
		t.Errorf("volume = %q, want 30", got)
	}

	c.Buttons.Input(keyevent.CodeShift, true)
	if got, _ := rt.Exec(ctx, "Input.isPressed('shift')"); got != "true" {
		t.Errorf("shift held = %q, want true", got)
	}
	c.Buttons.Release(keyevent.CodeShift)
	if got, _ := rt.Exec(ctx, "Input.isPressed('shift')"); got != "false" {
		t.Errorf("shift released = %q, want false", got)
	}
}
