package keyscript

import (
	"strings"
	"testing"

	"github.com/yoimerdr/ludens-sub001/internal/keyevent"
)

const inputDown13 = "Input._onKeyDown({'keyCode': 13, 'preventDefault': function(){return true;}});"

func TestStatement(t *testing.T) {
	tests := []struct {
		name  string
		event keyevent.Event
		want  string
	}{
		{
			name:  "movement down",
			event: keyevent.Movement{Key: keyevent.Key{Code: keyevent.CodeUp, Type: keyevent.Down}},
			want:  "Input._currentState['up'] = true;",
		},
		{
			name:  "movement up",
			event: keyevent.Movement{Key: keyevent.Key{Code: keyevent.CodeRight, Type: keyevent.Up}},
			want:  "Input._currentState['right'] = false;",
		},
		{
			name:  "input down",
			event: keyevent.Input{Key: keyevent.Key{Code: 13, Type: keyevent.Down}},
			want:  inputDown13,
		},
		{
			name:  "input up",
			event: keyevent.Input{Key: keyevent.Key{Code: 27, Type: keyevent.Up}},
			want:  "Input._onKeyUp({'keyCode': 27, 'preventDefault': function(){return true;}});",
		},
		{
			name:  "graphics ignores type",
			event: keyevent.Graphics{Key: keyevent.Key{Code: 113, Type: keyevent.Up}},
			want:  "Graphics._onKeyDown({'keyCode': 113, 'preventDefault': function(){return true;}});",
		},
		{
			name:  "timeout wraps statement",
			event: keyevent.Input{Key: keyevent.Key{Code: 13, Type: keyevent.Up, Timeout: keyevent.After(150)}},
			want:  "setTimeout(function(){Input._onKeyUp({'keyCode': 13, 'preventDefault': function(){return true;}});}, 150);",
		},
		{
			name:  "movement with timeout",
			event: keyevent.Movement{Key: keyevent.Key{Code: keyevent.CodeLeft, Type: keyevent.Up, Timeout: keyevent.After(0)}},
			want:  "setTimeout(function(){Input._currentState['left'] = false;}, 0);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Statement(tt.event)
			if !ok {
				t.Fatal("Statement() reported no script form")
			}
			if got != tt.want {
				t.Errorf("Statement() =\n  %q\nwant\n  %q", got, tt.want)
			}
		})
	}
}

func TestStatementRejectsNonArrowMovement(t *testing.T) {
	e := keyevent.Movement{Key: keyevent.Key{Code: keyevent.CodeEnter, Type: keyevent.Down}}
	if _, ok := Statement(e); ok {
		t.Error("movement with a non-arrow code should have no script form")
	}
}

func TestBuilderKeepsInsertionOrder(t *testing.T) {
	b := NewBuilder(nil)
	b.Add(keyevent.Movement{Key: keyevent.Key{Code: keyevent.CodeDown, Type: keyevent.Up}}).
		Add(keyevent.Movement{Key: keyevent.Key{Code: keyevent.CodeUp, Type: keyevent.Down}}).
		Add(keyevent.Input{Key: keyevent.Key{Code: 13, Type: keyevent.Down}})

	got := b.Build()
	want := "Input._currentState['down'] = false; Input._currentState['up'] = true; " + inputDown13
	if got != want {
		t.Errorf("Build() =\n  %q\nwant\n  %q", got, want)
	}
}

func TestBuildClearsBuffer(t *testing.T) {
	b := NewBuilder(nil)
	b.Add(keyevent.Input{Key: keyevent.Key{Code: 13, Type: keyevent.Down}})

	if got := b.Build(); got != inputDown13 {
		t.Errorf("first Build() = %q, want %q", got, inputDown13)
	}
	if b.Len() != 0 {
		t.Errorf("Len() after Build = %d, want 0", b.Len())
	}
	if got := b.Build(); got != "" {
		t.Errorf("second Build() = %q, want empty", got)
	}
}

func TestBuilderRestart(t *testing.T) {
	b := NewBuilder(nil)
	b.Add(keyevent.Input{Key: keyevent.Key{Code: 13, Type: keyevent.Down}}).Restart()

	if got := b.Drain(); got != "" {
		t.Errorf("Drain() after Restart = %q, want empty", got)
	}
}

func TestBuilderAddFunc(t *testing.T) {
	var b Builder
	b.Add(keyevent.Input{Key: keyevent.Key{Code: 13, Type: keyevent.Down}})
	b.AddFunc(func(b *Builder) keyevent.Event {
		// Release whatever the batch pressed last.
		events := b.Events()
		last := events[len(events)-1]
		return keyevent.Copy(last, keyevent.WithType(keyevent.Up))
	})

	got := b.Drain()
	if !strings.HasPrefix(got, inputDown13+" ") || !strings.HasSuffix(got, "Input._onKeyUp({'keyCode': 13, 'preventDefault': function(){return true;}});") {
		t.Errorf("Drain() = %q", got)
	}
}

func TestBuilderSkipsUnserializableEvents(t *testing.T) {
	var b Builder
	b.Add(keyevent.Movement{Key: keyevent.Key{Code: 999, Type: keyevent.Down}}).
		Add(keyevent.Input{Key: keyevent.Key{Code: 13, Type: keyevent.Down}})

	if got := b.Drain(); got != inputDown13 {
		t.Errorf("Drain() = %q, want %q", got, inputDown13)
	}
}

func TestBuilderEventsIsCopy(t *testing.T) {
	var b Builder
	b.Add(keyevent.Input{Key: keyevent.Key{Code: 13, Type: keyevent.Down}})

	events := b.Events()
	events[0] = keyevent.Graphics{Key: keyevent.Key{Code: 113}}
	if _, ok := b.Events()[0].(keyevent.Input); !ok {
		t.Error("mutating Events() result changed the builder")
	}
}
