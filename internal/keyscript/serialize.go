package keyscript

import (
	"fmt"

	"github.com/yoimerdr/ludens-sub001/internal/keyevent"
)

// Targets on the game side. These are a wire contract with the hosted
// scripts and must not change.
const (
	movementState   = "Input._currentState"
	inputKeyDown    = "Input._onKeyDown"
	inputKeyUp      = "Input._onKeyUp"
	graphicsKeyDown = "Graphics._onKeyDown"
)

// Statement renders a single event as one script statement, terminated by
// a semicolon. It reports false for events that have no script form
// (movement events whose code is not an arrow key).
func Statement(e keyevent.Event) (string, bool) {
	stmt, ok := call(e)
	if !ok {
		return "", false
	}
	if ms, ok := e.KeyTimeout().Millis(); ok {
		return fmt.Sprintf("setTimeout(function(){%s;}, %d);", stmt, ms), true
	}
	return stmt + ";", true
}

func call(e keyevent.Event) (string, bool) {
	switch ev := e.(type) {
	case keyevent.Movement:
		dir, ok := keyevent.DirectionOf(ev.Code)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s['%s'] = %t", movementState, dir.Name(), ev.Type == keyevent.Down), true
	case keyevent.Input:
		fn := inputKeyDown
		if ev.Type == keyevent.Up {
			fn = inputKeyUp
		}
		return invoke(fn, ev.Code), true
	case keyevent.Graphics:
		// Graphics keys only have a down handler.
		return invoke(graphicsKeyDown, ev.Code), true
	}
	return "", false
}

func invoke(fn string, code int) string {
	return fmt.Sprintf("%s(%s)", fn, keyevent.Literal(keyevent.Properties(code)))
}
