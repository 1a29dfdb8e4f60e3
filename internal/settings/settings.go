// Package settings holds the persisted user preferences: control overlay
// layout, tool toggles and system options.
//
// Values are treated as immutable. Changes go through Repository.Update,
// which copies the current value, applies the change, persists it and
// notifies subscribers.
package settings

// ControlItem is one on-screen control.
type ControlItem struct {
	Type    ControlType `yaml:"type"`
	Enabled bool        `yaml:"enabled"`
	Alpha   Alpha       `yaml:"alpha"`

	// Code is the key code the control sends; 0 for controls without one
	// (the joystick).
	Code int `yaml:"code,omitempty"`
}

// PositionableItem places a group of controls. X and Y are fractions of the
// screen size.
type PositionableItem struct {
	Type PositionType `yaml:"type"`
	X    float64      `yaml:"x"`
	Y    float64      `yaml:"y"`
}

// ControlSettings configures the control overlay.
type ControlSettings struct {
	Enabled   bool               `yaml:"enabled"`
	Alpha     Alpha              `yaml:"alpha"`
	Items     []ControlItem      `yaml:"items"`
	Positions []PositionableItem `yaml:"positions"`
}

// Item returns the item for t.
func (c ControlSettings) Item(t ControlType) (ControlItem, bool) {
	for _, it := range c.Items {
		if it.Type == t {
			return it, true
		}
	}
	return ControlItem{}, false
}

// Position returns the position for t.
func (c ControlSettings) Position(t PositionType) (PositionableItem, bool) {
	for _, p := range c.Positions {
		if p.Type == t {
			return p, true
		}
	}
	return PositionableItem{}, false
}

// ItemAlpha is the effective opacity of an item: its own alpha scaled by
// the overlay alpha.
func (c ControlSettings) ItemAlpha(t ControlType) Alpha {
	it, ok := c.Item(t)
	if !ok {
		return Alpha{}
	}
	return CoerceAlpha(it.Alpha.Float() * c.Alpha.Float())
}

// Visible reports whether the overlay is enabled and the item is enabled.
func (c ControlSettings) Visible(t ControlType) bool {
	it, ok := c.Item(t)
	return ok && c.Enabled && it.Enabled
}

// ToolSettings holds the quick-action dock toggles.
type ToolSettings struct {
	IsMuted bool `yaml:"muted"`
	ShowFPS bool `yaml:"show_fps"`
}

// SystemSettings holds app-wide options.
type SystemSettings struct {
	Locale string `yaml:"locale"`
}

// Settings aggregates every preference.
type Settings struct {
	Tools    ToolSettings    `yaml:"tools"`
	Controls ControlSettings `yaml:"controls"`
	System   SystemSettings  `yaml:"system"`
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	out := s
	out.Controls.Items = append([]ControlItem(nil), s.Controls.Items...)
	out.Controls.Positions = append([]PositionableItem(nil), s.Controls.Positions...)
	return out
}

// withItem returns s with the item of type t replaced by fn(item). Unknown
// types are appended.
func (s Settings) withItem(t ControlType, fn func(ControlItem) ControlItem) Settings {
	out := s.Clone()
	for i, it := range out.Controls.Items {
		if it.Type == t {
			out.Controls.Items[i] = fn(it)
			return out
		}
	}
	out.Controls.Items = append(out.Controls.Items, fn(ControlItem{Type: t}))
	return out
}

func (s Settings) withPosition(t PositionType, fn func(PositionableItem) PositionableItem) Settings {
	out := s.Clone()
	for i, p := range out.Controls.Positions {
		if p.Type == t {
			out.Controls.Positions[i] = fn(p)
			return out
		}
	}
	out.Controls.Positions = append(out.Controls.Positions, fn(PositionableItem{Type: t}))
	return out
}
