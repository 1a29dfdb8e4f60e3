package player

import (
	"math"

	"github.com/yoimerdr/ludens-sub001/internal/keyevent"
)

// Resolve maps a virtual joystick offset onto the active direction set.
// dx grows to the right and dy grows downwards, as on screen. Offsets whose
// length is below deadZone resolve to no direction; otherwise the plane is cut
// into eight 45 degree sectors, four cardinal and four diagonal.
func Resolve(dx, dy, deadZone float64) []keyevent.Direction {
	if math.Hypot(dx, dy) < deadZone || (dx == 0 && dy == 0) {
		return nil
	}

	angle := math.Atan2(-dy, dx) * 180 / math.Pi
	sector := int(math.Round(angle/45)) % 8
	if sector < 0 {
		sector += 8
	}

	switch sector {
	case 0:
		return []keyevent.Direction{keyevent.DirectionRight}
	case 1:
		return []keyevent.Direction{keyevent.DirectionUp, keyevent.DirectionRight}
	case 2:
		return []keyevent.Direction{keyevent.DirectionUp}
	case 3:
		return []keyevent.Direction{keyevent.DirectionUp, keyevent.DirectionLeft}
	case 4:
		return []keyevent.Direction{keyevent.DirectionLeft}
	case 5:
		return []keyevent.Direction{keyevent.DirectionDown, keyevent.DirectionLeft}
	case 6:
		return []keyevent.Direction{keyevent.DirectionDown}
	default:
		return []keyevent.Direction{keyevent.DirectionDown, keyevent.DirectionRight}
	}
}
