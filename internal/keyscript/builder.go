// Package keyscript turns key events into the script text executed inside
// the hosted game, and batches them so that logically simultaneous keys are
// applied in one round-trip.
package keyscript

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yoimerdr/ludens-sub001/internal/keyevent"
)

// Builder accumulates key events in insertion order. The zero value is ready
// to use.
//
// A Builder is not safe for concurrent use; it belongs to whichever
// goroutine drives the controls.
type Builder struct {
	events []keyevent.Event
	logger *log.Logger
}

// NewBuilder creates an empty builder. A nil logger discards output.
func NewBuilder(logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Builder{logger: logger}
}

// Add appends an event.
func (b *Builder) Add(e keyevent.Event) *Builder {
	b.events = append(b.events, e)
	return b
}

// AddFunc appends the event produced by fn. fn receives the builder so it can
// inspect or extend the pending batch before returning its own event.
func (b *Builder) AddFunc(fn func(b *Builder) keyevent.Event) *Builder {
	return b.Add(fn(b))
}

// Restart discards every pending event.
func (b *Builder) Restart() *Builder {
	b.events = b.events[:0]
	return b
}

// Len returns the number of pending events.
func (b *Builder) Len() int {
	return len(b.events)
}

// Events returns a copy of the pending events.
func (b *Builder) Events() []keyevent.Event {
	out := make([]keyevent.Event, len(b.events))
	copy(out, b.events)
	return out
}

// Drain serializes the pending events in order, separated by a single space,
// and empties the builder. A second Drain with nothing added returns "".
func (b *Builder) Drain() string {
	stmts := make([]string, 0, len(b.events))
	for _, e := range b.events {
		stmt, ok := Statement(e)
		if !ok {
			if b.logger != nil {
				b.logger.Debug("skipping key event without script form", "event", e)
			}
			continue
		}
		stmts = append(stmts, stmt)
	}
	b.Restart()
	return strings.Join(stmts, " ")
}

// Build is Drain.
func (b *Builder) Build() string {
	return b.Drain()
}
