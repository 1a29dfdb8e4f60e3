package settings

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Record is the persisted form of Settings. Field keys are small integers
// and must stay stable; new fields take new keys.
type Record struct {
	Tools    ToolsRecord    `cbor:"1,keyasint"`
	Controls ControlsRecord `cbor:"2,keyasint"`
	System   SystemRecord   `cbor:"3,keyasint"`
}

// ToolsRecord is the persisted form of ToolSettings.
type ToolsRecord struct {
	IsMuted bool `cbor:"1,keyasint"`
	ShowFPS bool `cbor:"2,keyasint"`
}

// ControlsRecord is the persisted form of ControlSettings.
type ControlsRecord struct {
	Enabled   bool             `cbor:"1,keyasint"`
	Alpha     float64          `cbor:"2,keyasint"`
	Items     []ItemRecord     `cbor:"3,keyasint"`
	Positions []PositionRecord `cbor:"4,keyasint"`
}

// ItemRecord is the persisted form of ControlItem.
type ItemRecord struct {
	Type    int     `cbor:"1,keyasint"`
	Enabled bool    `cbor:"2,keyasint"`
	Alpha   float64 `cbor:"3,keyasint"`
	Code    int     `cbor:"4,keyasint,omitempty"`
}

// PositionRecord is the persisted form of PositionableItem.
type PositionRecord struct {
	Type int     `cbor:"1,keyasint"`
	X    float64 `cbor:"2,keyasint"`
	Y    float64 `cbor:"3,keyasint"`
}

// SystemRecord is the persisted form of SystemSettings.
type SystemRecord struct {
	Locale string `cbor:"1,keyasint,omitempty"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
	encMode, decMode = em, dm
}

// ToRecord converts settings to their persisted form.
func ToRecord(s Settings) Record {
	r := Record{
		Tools: ToolsRecord{
			IsMuted: s.Tools.IsMuted,
			ShowFPS: s.Tools.ShowFPS,
		},
		Controls: ControlsRecord{
			Enabled: s.Controls.Enabled,
			Alpha:   s.Controls.Alpha.Float(),
		},
		System: SystemRecord{Locale: s.System.Locale},
	}
	for _, it := range s.Controls.Items {
		r.Controls.Items = append(r.Controls.Items, ItemRecord{
			Type:    int(it.Type),
			Enabled: it.Enabled,
			Alpha:   it.Alpha.Float(),
			Code:    it.Code,
		})
	}
	for _, p := range s.Controls.Positions {
		r.Controls.Positions = append(r.Controls.Positions, PositionRecord{
			Type: int(p.Type),
			X:    p.X,
			Y:    p.Y,
		})
	}
	return r
}

// ToDomain converts a persisted record back to settings. Alphas are
// clamped; a type code without enum member fails with ErrUnknownType.
func ToDomain(r Record) (Settings, error) {
	s := Settings{
		Tools: ToolSettings{
			IsMuted: r.Tools.IsMuted,
			ShowFPS: r.Tools.ShowFPS,
		},
		Controls: ControlSettings{
			Enabled: r.Controls.Enabled,
			Alpha:   CoerceAlpha(r.Controls.Alpha),
		},
		System: SystemSettings{Locale: r.System.Locale},
	}
	for _, ir := range r.Controls.Items {
		t, err := ControlTypeOf(ir.Type)
		if err != nil {
			return Settings{}, err
		}
		s.Controls.Items = append(s.Controls.Items, ControlItem{
			Type:    t,
			Enabled: ir.Enabled,
			Alpha:   CoerceAlpha(ir.Alpha),
			Code:    ir.Code,
		})
	}
	for _, pr := range r.Controls.Positions {
		t, err := PositionTypeOf(pr.Type)
		if err != nil {
			return Settings{}, err
		}
		s.Controls.Positions = append(s.Controls.Positions, PositionableItem{
			Type: t,
			X:    pr.X,
			Y:    pr.Y,
		})
	}
	return s, nil
}

// Encode serializes settings into the binary record format.
func Encode(s Settings) ([]byte, error) {
	b, err := encMode.Marshal(ToRecord(s))
	if err != nil {
		return nil, fmt.Errorf("settings: cannot encode: %w", err)
	}
	return b, nil
}

// Decode parses the binary record format.
func Decode(data []byte) (Settings, error) {
	var r Record
	if err := decMode.Unmarshal(data, &r); err != nil {
		return Settings{}, fmt.Errorf("settings: cannot decode: %w", err)
	}
	s, err := ToDomain(r)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: cannot decode: %w", err)
	}
	return s, nil
}
