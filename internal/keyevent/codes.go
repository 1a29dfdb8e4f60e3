package keyevent

// Key codes understood by the hosted input layer. These are DOM keyCode
// values.
const (
	CodeTab      = 9
	CodeEnter    = 13
	CodeShift    = 16
	CodeControl  = 17
	CodeAlt      = 18
	CodeEscape   = 27
	CodeSpace    = 32
	CodePageUp   = 33
	CodePageDown = 34
	CodeLeft     = 37
	CodeUp       = 38
	CodeRight    = 39
	CodeDown     = 40
	CodeInsert   = 45
	CodeQ        = 81
	CodeW        = 87
	CodeX        = 88
	CodeZ        = 90
	CodeF2       = 113 // fps meter
	CodeF3       = 114 // stretch mode
	CodeF4       = 115 // fullscreen
)

// Direction is one of the four movement directions.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

// Directions lists every direction in a fixed order.
var Directions = []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

// Name returns the state key the game uses for the direction.
func (d Direction) Name() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return ""
	}
}

func (d Direction) String() string { return d.Name() }

// Code returns the arrow key code for the direction.
func (d Direction) Code() int {
	switch d {
	case DirectionUp:
		return CodeUp
	case DirectionDown:
		return CodeDown
	case DirectionLeft:
		return CodeLeft
	case DirectionRight:
		return CodeRight
	default:
		return 0
	}
}

// DirectionOf maps an arrow key code back to its direction.
func DirectionOf(code int) (Direction, bool) {
	switch code {
	case CodeUp:
		return DirectionUp, true
	case CodeDown:
		return DirectionDown, true
	case CodeLeft:
		return DirectionLeft, true
	case CodeRight:
		return DirectionRight, true
	}
	return 0, false
}

// ParseDirection accepts the state key names ("up", "down", "left", "right").
func ParseDirection(name string) (Direction, bool) {
	for _, d := range Directions {
		if d.Name() == name {
			return d, true
		}
	}
	return 0, false
}
