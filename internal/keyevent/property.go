package keyevent

import (
	"fmt"
	"strings"
)

// Property is one entry of the object literal passed to the game's key
// handlers.
type Property struct {
	Name  string
	Value any

	// Strict emits a string value as-is instead of quoting it. Used for
	// code values such as function literals.
	Strict bool
}

// String renders the property as 'name': value.
func (p Property) String() string {
	if s, ok := p.Value.(string); ok && !p.Strict {
		return fmt.Sprintf("'%s': '%s'", p.Name, s)
	}
	return fmt.Sprintf("'%s': %v", p.Name, p.Value)
}

// PreventDefault is the no-op preventDefault member every synthetic key
// event carries.
var PreventDefault = Property{Name: "preventDefault", Value: "function(){return true;}", Strict: true}

// Properties returns the object literal members for a key code.
func Properties(code int) []Property {
	return []Property{
		{Name: "keyCode", Value: code},
		PreventDefault,
	}
}

// Literal joins properties into an object literal.
func Literal(props []Property) string {
	parts := make([]string, len(props))
	for i, p := range props {
		parts[i] = p.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
