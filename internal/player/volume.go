package player

import (
	"errors"
	"fmt"
)

// ErrVolumeRange is returned for volumes outside [MinVolume, MaxVolume].
var ErrVolumeRange = errors.New("player: volume out of range")

const (
	MinVolume = 0
	MaxVolume = 100
)

// Volume is an audio level in [0, 100].
type Volume struct {
	v int
}

// NewVolume rejects out-of-range values.
func NewVolume(v int) (Volume, error) {
	if v < MinVolume || v > MaxVolume {
		return Volume{}, fmt.Errorf("%w: %d", ErrVolumeRange, v)
	}
	return Volume{v: v}, nil
}

// CoerceVolume clamps v into range.
func CoerceVolume(v int) Volume {
	return Volume{v: min(max(v, MinVolume), MaxVolume)}
}

// Int returns the level.
func (v Volume) Int() int {
	return v.v
}
