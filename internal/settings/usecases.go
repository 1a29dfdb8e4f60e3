package settings

import "context"

// SetControlsEnabled shows or hides the whole overlay.
func (r *Repository) SetControlsEnabled(ctx context.Context, enabled bool) error {
	_, err := r.Update(ctx, func(s Settings) Settings {
		s.Controls.Enabled = enabled
		return s
	})
	return err
}

// SetControlsAlpha sets the overlay opacity.
func (r *Repository) SetControlsAlpha(ctx context.Context, alpha Alpha) error {
	_, err := r.Update(ctx, func(s Settings) Settings {
		s.Controls.Alpha = alpha
		return s
	})
	return err
}

// SetItemEnabled shows or hides one control.
func (r *Repository) SetItemEnabled(ctx context.Context, t ControlType, enabled bool) error {
	_, err := r.Update(ctx, func(s Settings) Settings {
		return s.withItem(t, func(it ControlItem) ControlItem {
			it.Enabled = enabled
			return it
		})
	})
	return err
}

// SetItemAlpha sets the opacity of one control.
func (r *Repository) SetItemAlpha(ctx context.Context, t ControlType, alpha Alpha) error {
	_, err := r.Update(ctx, func(s Settings) Settings {
		return s.withItem(t, func(it ControlItem) ControlItem {
			it.Alpha = alpha
			return it
		})
	})
	return err
}

// SetItemCode binds a control to a key code.
func (r *Repository) SetItemCode(ctx context.Context, t ControlType, code int) error {
	_, err := r.Update(ctx, func(s Settings) Settings {
		return s.withItem(t, func(it ControlItem) ControlItem {
			it.Code = code
			return it
		})
	})
	return err
}

// MoveItem places a control group at (x, y), as fractions of the screen.
func (r *Repository) MoveItem(ctx context.Context, t PositionType, x, y float64) error {
	_, err := r.Update(ctx, func(s Settings) Settings {
		return s.withPosition(t, func(p PositionableItem) PositionableItem {
			p.X, p.Y = x, y
			return p
		})
	})
	return err
}

// SetMuted stores the mute toggle.
func (r *Repository) SetMuted(ctx context.Context, muted bool) error {
	_, err := r.Update(ctx, func(s Settings) Settings {
		s.Tools.IsMuted = muted
		return s
	})
	return err
}

// SetShowFPS stores the FPS overlay toggle.
func (r *Repository) SetShowFPS(ctx context.Context, show bool) error {
	_, err := r.Update(ctx, func(s Settings) Settings {
		s.Tools.ShowFPS = show
		return s
	})
	return err
}

// SetLocale stores the interface locale.
func (r *Repository) SetLocale(ctx context.Context, locale string) error {
	_, err := r.Update(ctx, func(s Settings) Settings {
		s.System.Locale = locale
		return s
	})
	return err
}

// Reset restores the factory defaults.
func (r *Repository) Reset(ctx context.Context) error {
	_, err := r.Update(ctx, func(Settings) Settings {
		return r.defaults.Clone()
	})
	return err
}
