package settings

import "github.com/yoimerdr/ludens-sub001/internal/keyevent"

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

// DefaultAlpha is the initial opacity of the overlay and its items.
var DefaultAlpha = CoerceAlpha(0.7)

// DefaultCode returns the key code bound to a control by default.
func DefaultCode(t ControlType) int {
	switch t {
	case ControlA:
		return keyevent.CodeZ
	case ControlB:
		return keyevent.CodeX
	case ControlX:
		return keyevent.CodeShift
	case ControlY:
		return keyevent.CodeControl
	case ControlL:
		return keyevent.CodePageUp
	case ControlR:
		return keyevent.CodePageDown
	case ControlStart:
		return keyevent.CodeEnter
	case ControlSelect:
		return keyevent.CodeEscape
	default:
		return 0
	}
}

func defaultPosition(t PositionType) PositionableItem {
	switch t {
	case PositionJoystick:
		return PositionableItem{Type: t, X: 0.15, Y: 0.75}
	case PositionButtons:
		return PositionableItem{Type: t, X: 0.85, Y: 0.75}
	default:
		return PositionableItem{Type: t, X: 0.5, Y: 0.05}
	}
}

// Defaults returns the factory settings, with one item per ControlType and
// one position per PositionType. An empty locale selects DefaultLocale.
func Defaults(locale string) Settings {
	if locale == "" {
		locale = DefaultLocale
	}

	items := make([]ControlItem, 0, len(ControlTypes))
	for _, t := range ControlTypes {
		items = append(items, ControlItem{
			Type:    t,
			Enabled: true,
			Alpha:   CoerceAlpha(1),
			Code:    DefaultCode(t),
		})
	}

	positions := make([]PositionableItem, 0, len(PositionTypes))
	for _, t := range PositionTypes {
		positions = append(positions, defaultPosition(t))
	}

	return Settings{
		Controls: ControlSettings{
			Enabled:   true,
			Alpha:     DefaultAlpha,
			Items:     items,
			Positions: positions,
		},
		System: SystemSettings{Locale: locale},
	}
}

// Complete returns s with exactly one item per ControlType and one position
// per PositionType. Missing entries are taken from defaults and duplicates
// keep their first occurrence.
func Complete(s, defaults Settings) Settings {
	out := s.Clone()

	seenItems := make(map[ControlType]bool, len(ControlTypes))
	items := out.Controls.Items[:0]
	for _, it := range out.Controls.Items {
		if seenItems[it.Type] {
			continue
		}
		seenItems[it.Type] = true
		items = append(items, it)
	}
	for _, it := range defaults.Controls.Items {
		if !seenItems[it.Type] {
			seenItems[it.Type] = true
			items = append(items, it)
		}
	}
	out.Controls.Items = items

	seenPos := make(map[PositionType]bool, len(PositionTypes))
	positions := out.Controls.Positions[:0]
	for _, p := range out.Controls.Positions {
		if seenPos[p.Type] {
			continue
		}
		seenPos[p.Type] = true
		positions = append(positions, p)
	}
	for _, p := range defaults.Controls.Positions {
		if !seenPos[p.Type] {
			seenPos[p.Type] = true
			positions = append(positions, p)
		}
	}
	out.Controls.Positions = positions

	if out.System.Locale == "" {
		out.System.Locale = defaults.System.Locale
	}
	return out
}
