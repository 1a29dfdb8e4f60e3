package settings

import (
	"errors"
	"fmt"
	"math"
)

// ErrAlphaRange is returned for opacities outside [0, 1].
var ErrAlphaRange = errors.New("settings: alpha out of range")

// Alpha is an opacity in [0, 1]. The zero value is fully transparent.
type Alpha struct {
	v float64
}

// NewAlpha rejects values outside [0, 1] and NaN.
func NewAlpha(v float64) (Alpha, error) {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return Alpha{}, fmt.Errorf("%w: %v", ErrAlphaRange, v)
	}
	return Alpha{v: v}, nil
}

// CoerceAlpha clamps v into [0, 1]. NaN becomes 0.
func CoerceAlpha(v float64) Alpha {
	if math.IsNaN(v) {
		return Alpha{}
	}
	return Alpha{v: math.Max(0, math.Min(1, v))}
}

// Float returns the opacity.
func (a Alpha) Float() float64 {
	return a.v
}

func (a Alpha) String() string {
	return fmt.Sprintf("%.2f", a.v)
}

// MarshalYAML renders the alpha as a plain number.
func (a Alpha) MarshalYAML() (any, error) {
	return a.v, nil
}
