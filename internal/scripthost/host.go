// Package scripthost defines the boundary with the embedded game runtime:
// something that executes a script string and may report a textual result.
package scripthost

import (
	"context"
	"errors"
)

var (
	// ErrClosed is returned by operations on a closed runtime.
	ErrClosed = errors.New("scripthost: runtime closed")

	// ErrNotLoaded is returned when the game has not been loaded yet.
	ErrNotLoaded = errors.New("scripthost: game not loaded")
)

// Callback receives the textual result of a script.
type Callback func(result string)

// Host executes scripts against the hosted content.
//
// Evaluate never blocks on the script and never reports failure: if the
// content is not ready the script is dropped and cb is not called. When cb
// is non-nil and the script runs, cb is invoked exactly once, asynchronously
// relative to Evaluate.
type Host interface {
	Evaluate(script string, cb Callback)
}

// HostFunc adapts a function to the Host interface.
type HostFunc func(script string, cb Callback)

// Evaluate calls f(script, cb).
func (f HostFunc) Evaluate(script string, cb Callback) {
	f(script, cb)
}

// Await evaluates script and waits for its result.
//
// The result resolves once. There is no timeout of its own: if the host
// never invokes the callback, Await returns only when ctx is done. Cancelling
// ctx stops the wait, not the script.
func Await(ctx context.Context, h Host, script string) (string, error) {
	done := make(chan string, 1)
	h.Evaluate(script, func(result string) {
		select {
		case done <- result:
		default:
		}
	})

	select {
	case result := <-done:
		return result, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
