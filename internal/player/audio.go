package player

import (
	"context"
	"fmt"

	"github.com/yoimerdr/ludens-sub001/internal/scripthost"
)

// Audio controls the game's audio through the plugin namespace. It does not
// go through key events.
type Audio struct {
	host      scripthost.Host
	namespace string
}

// NewAudio creates an audio port for the plugin namespace (for example
// "Ludens").
func NewAudio(host scripthost.Host, namespace string) *Audio {
	return &Audio{host: host, namespace: namespace}
}

// Mute silences the game.
func (a *Audio) Mute() {
	a.host.Evaluate(a.namespace+".audio.mute();", nil)
}

// Unmute restores audio.
func (a *Audio) Unmute() {
	a.host.Evaluate(a.namespace+".audio.unmute();", nil)
}

// SetMuted calls Mute or Unmute.
func (a *Audio) SetMuted(muted bool) {
	if muted {
		a.Mute()
		return
	}
	a.Unmute()
}

// SetVolume sets the master volume.
func (a *Audio) SetVolume(v Volume) {
	a.host.Evaluate(fmt.Sprintf("%s.audio.setVolume(%d);", a.namespace, v.Int()), nil)
}

// IsMutedFunc queries the mute state. fn is not called if the game never
// answers.
func (a *Audio) IsMutedFunc(fn func(muted bool)) {
	a.host.Evaluate(a.namespace+".audio.isMuted", func(result string) {
		fn(parseBool(result))
	})
}

// IsMuted waits for the mute state. The answer is best effort: it is false
// when the game does not respond before ctx is done.
func (a *Audio) IsMuted(ctx context.Context) bool {
	result, err := scripthost.Await(ctx, a.host, a.namespace+".audio.isMuted")
	return err == nil && parseBool(result)
}
