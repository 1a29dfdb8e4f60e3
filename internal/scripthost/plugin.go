package scripthost

import (
	"encoding/json"
	"strings"
)

// PluginState is reported by the game once its boot sequence completes.
type PluginState struct {
	IsEnabled bool `json:"isEnabled"`
	IsLoading bool `json:"isLoading"`
}

// Disabled is the state assumed when the game reports nothing usable.
var Disabled = PluginState{}

// ParsePluginState decodes the handshake payload. An empty or malformed
// payload yields Disabled.
func ParsePluginState(payload string) PluginState {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return Disabled
	}
	var state PluginState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return Disabled
	}
	return state
}

// Ready reports whether the plugin is enabled and finished loading.
func (s PluginState) Ready() bool {
	return s.IsEnabled && !s.IsLoading
}
