// Package keyevent describes the simulated key presses and releases that the
// native controls send into the hosted game.
//
// Events are small immutable values. Three variants exist (Movement, Input and
// Graphics) that share the same shape but are serialized to different calls
// on the game side, so code that needs to know which one it holds switches on
// the concrete type.
package keyevent

import "fmt"

// Type is the direction of a key transition.
type Type int

const (
	Down Type = iota
	Up
)

// Opposite returns Up for Down and Down for Up.
func (t Type) Opposite() Type {
	if t == Down {
		return Up
	}
	return Down
}

// String returns a human-readable name for the type.
func (t Type) String() string {
	switch t {
	case Down:
		return "Down"
	case Up:
		return "Up"
	default:
		return "Unknown"
	}
}

// Timeout is an optional delay in milliseconds. When set, the event is
// scheduled to fire after the delay instead of immediately.
//
// The zero value means no timeout.
type Timeout struct {
	ms  int
	set bool
}

// NoTimeout is the absent timeout.
var NoTimeout = Timeout{}

// After returns a timeout of ms milliseconds. The value is not clamped.
func After(ms int) Timeout {
	return Timeout{ms: ms, set: true}
}

// Millis returns the delay and whether it is set.
func (t Timeout) Millis() (int, bool) {
	return t.ms, t.set
}

// IsSet reports whether a delay is present.
func (t Timeout) IsSet() bool {
	return t.set
}

func (t Timeout) String() string {
	if !t.set {
		return "none"
	}
	return fmt.Sprintf("%dms", t.ms)
}

// Key holds the fields common to every event variant.
type Key struct {
	Code    int
	Type    Type
	Timeout Timeout
}

// KeyCode returns the platform key code.
func (k Key) KeyCode() int { return k.Code }

// KeyType returns whether the key goes down or up.
func (k Key) KeyType() Type { return k.Type }

// KeyTimeout returns the optional scheduling delay.
func (k Key) KeyTimeout() Timeout { return k.Timeout }

// Event is implemented by Movement, Input and Graphics only.
//
// Two events are equal (==) when they have the same variant and the same
// code, type and timeout.
type Event interface {
	KeyCode() int
	KeyType() Type
	KeyTimeout() Timeout

	// With returns an event of the same variant carrying k.
	With(k Key) Event

	isKeyEvent()
}

// Movement is a directional key. The game tracks these as continuous state
// rather than through key callbacks.
type Movement struct{ Key }

// Input is a generic key routed through the game's key handlers.
type Input struct{ Key }

// Graphics is a key handled by the game's graphics layer (fps meter,
// stretch and fullscreen toggles). Graphics keys are momentary triggers.
type Graphics struct{ Key }

func (Movement) isKeyEvent() {}
func (Input) isKeyEvent()    {}
func (Graphics) isKeyEvent() {}

func (Movement) With(k Key) Event { return Movement{k} }
func (Input) With(k Key) Event    { return Input{k} }
func (Graphics) With(k Key) Event { return Graphics{k} }

func (e Movement) String() string { return describe("Movement", e.Key) }
func (e Input) String() string    { return describe("Input", e.Key) }
func (e Graphics) String() string { return describe("Graphics", e.Key) }

func describe(variant string, k Key) string {
	return fmt.Sprintf("%s(code=%d, type=%s, timeout=%s)", variant, k.Code, k.Type, k.Timeout)
}

// Option changes one field of a copied event.
type Option func(*Key)

// WithCode replaces the key code.
func WithCode(code int) Option {
	return func(k *Key) { k.Code = code }
}

// WithType replaces the key type.
func WithType(t Type) Option {
	return func(k *Key) { k.Type = t }
}

// WithTimeout replaces the timeout. Pass NoTimeout to clear it.
func WithTimeout(t Timeout) Option {
	return func(k *Key) { k.Timeout = t }
}

// Copy returns a new event of the same variant as e with opts applied.
func Copy(e Event, opts ...Option) Event {
	k := Key{Code: e.KeyCode(), Type: e.KeyType(), Timeout: e.KeyTimeout()}
	for _, opt := range opts {
		opt(&k)
	}
	return e.With(k)
}

// Factory builds an event of a fixed variant and code for the given type
// and timeout.
type Factory func(t Type, timeout Timeout) Event

// MovementOf returns a factory for movement events with the given code.
func MovementOf(code int) Factory {
	return func(t Type, timeout Timeout) Event {
		return Movement{Key{Code: code, Type: t, Timeout: timeout}}
	}
}

// InputOf returns a factory for input events with the given code.
func InputOf(code int) Factory {
	return func(t Type, timeout Timeout) Event {
		return Input{Key{Code: code, Type: t, Timeout: timeout}}
	}
}

// GraphicsOf returns a factory for graphics events with the given code.
func GraphicsOf(code int) Factory {
	return func(t Type, timeout Timeout) Event {
		return Graphics{Key{Code: code, Type: t, Timeout: timeout}}
	}
}
