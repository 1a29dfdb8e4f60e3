package player

import (
	"context"
	"strings"

	"github.com/yoimerdr/ludens-sub001/internal/scripthost"
)

// FPS controls the game's FPS overlay through the plugin namespace.
type FPS struct {
	host      scripthost.Host
	namespace string
}

// NewFPS creates an FPS port for the plugin namespace.
func NewFPS(host scripthost.Host, namespace string) *FPS {
	return &FPS{host: host, namespace: namespace}
}

// Show displays the overlay.
func (f *FPS) Show() {
	f.host.Evaluate(f.namespace+".fps.show();", nil)
}

// Hide removes the overlay.
func (f *FPS) Hide() {
	f.host.Evaluate(f.namespace+".fps.hide();", nil)
}

// Toggle flips the overlay.
func (f *FPS) Toggle() {
	f.host.Evaluate(f.namespace+".fps.toggle();", nil)
}

// SetVisible calls Show or Hide.
func (f *FPS) SetVisible(visible bool) {
	if visible {
		f.Show()
		return
	}
	f.Hide()
}

// IsVisibleFunc queries the overlay state. fn is not called if the game
// never answers.
func (f *FPS) IsVisibleFunc(fn func(visible bool)) {
	f.host.Evaluate(f.namespace+".fps.isVisible", func(result string) {
		fn(parseBool(result))
	})
}

// IsVisible waits for the overlay state, false when the game does not
// respond before ctx is done.
func (f *FPS) IsVisible(ctx context.Context) bool {
	result, err := scripthost.Await(ctx, f.host, f.namespace+".fps.isVisible")
	return err == nil && parseBool(result)
}

func parseBool(result string) bool {
	return strings.TrimSpace(result) == "true"
}
