package config

import (
	_ "embed"
)

//go:embed defaults/ludens.yaml
var defaultAppYAML []byte

// DefaultApp returns the hardcoded default configuration.
func DefaultApp() App {
	return App{
		Game: GameConfig{
			Namespace: "Ludens",
			Bridge:    "LudensBridge",
		},
		Evaluator: EvaluatorConfig{
			TimeoutMS: 150,
		},
		Settings: SettingsConfig{
			Backend: BackendFile,
			Path:    "~/.ludens/settings.cbor",
			DB:      "~/.ludens/ludens.db",
			Keep:    50,
		},
		Log: LogConfig{
			Level: "info",
		},
		Serve: ServeConfig{
			Host:    "localhost",
			Port:    2323,
			HostKey: "~/.ludens/ssh_host_ed25519",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultAppYAML
}
