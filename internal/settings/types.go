package settings

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is returned when a persisted type code has no enum member.
var ErrUnknownType = errors.New("settings: unknown type code")

// ControlType identifies an on-screen control. Values are persisted; never
// renumber them.
type ControlType int

const (
	ControlJoystick ControlType = iota
	ControlA
	ControlB
	ControlX
	ControlY
	ControlL
	ControlR
	ControlStart
	ControlSelect
)

// ControlTypes lists every control type.
var ControlTypes = []ControlType{
	ControlJoystick,
	ControlA,
	ControlB,
	ControlX,
	ControlY,
	ControlL,
	ControlR,
	ControlStart,
	ControlSelect,
}

func (t ControlType) String() string {
	switch t {
	case ControlJoystick:
		return "joystick"
	case ControlA:
		return "a"
	case ControlB:
		return "b"
	case ControlX:
		return "x"
	case ControlY:
		return "y"
	case ControlL:
		return "l"
	case ControlR:
		return "r"
	case ControlStart:
		return "start"
	case ControlSelect:
		return "select"
	default:
		return fmt.Sprintf("control(%d)", int(t))
	}
}

// MarshalYAML renders the type by name.
func (t ControlType) MarshalYAML() (any, error) {
	return t.String(), nil
}

// ControlTypeOf looks up a persisted code.
func ControlTypeOf(code int) (ControlType, error) {
	for _, t := range ControlTypes {
		if int(t) == code {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: control %d", ErrUnknownType, code)
}

// ParseControlType accepts the names returned by String, case-insensitively.
func ParseControlType(name string) (ControlType, error) {
	for _, t := range ControlTypes {
		if strings.EqualFold(t.String(), name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: control %q", ErrUnknownType, name)
}

// PositionType identifies a movable group of controls. Values are
// persisted.
type PositionType int

const (
	PositionJoystick PositionType = iota
	PositionButtons
	PositionDock
)

// PositionTypes lists every position type.
var PositionTypes = []PositionType{PositionJoystick, PositionButtons, PositionDock}

func (t PositionType) String() string {
	switch t {
	case PositionJoystick:
		return "joystick"
	case PositionButtons:
		return "buttons"
	case PositionDock:
		return "dock"
	default:
		return fmt.Sprintf("position(%d)", int(t))
	}
}

// MarshalYAML renders the type by name.
func (t PositionType) MarshalYAML() (any, error) {
	return t.String(), nil
}

// PositionTypeOf looks up a persisted code.
func PositionTypeOf(code int) (PositionType, error) {
	for _, t := range PositionTypes {
		if int(t) == code {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: position %d", ErrUnknownType, code)
}

// ParsePositionType accepts the names returned by String.
func ParsePositionType(name string) (PositionType, error) {
	for _, t := range PositionTypes {
		if strings.EqualFold(t.String(), name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: position %q", ErrUnknownType, name)
}
