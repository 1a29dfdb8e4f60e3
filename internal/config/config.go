// Package config provides YAML-based application configuration loading.
package config

import (
	"fmt"
	"time"
)

// App contains all configuration for the ludens tools.
type App struct {
	Game      GameConfig      `yaml:"game"`
	Evaluator EvaluatorConfig `yaml:"evaluator"`
	Settings  SettingsConfig  `yaml:"settings"`
	System    SystemConfig    `yaml:"system"`
	Log       LogConfig       `yaml:"log"`
	Serve     ServeConfig     `yaml:"serve"`
}

// GameConfig locates the hosted game and its script surface.
type GameConfig struct {
	Path      string `yaml:"path"`      // Empty runs the bundled demo
	Namespace string `yaml:"namespace"` // Global object holding audio/fps helpers
	Bridge    string `yaml:"bridge"`    // Global object receiving the plugin handshake
}

// EvaluatorConfig tunes the key event evaluator.
type EvaluatorConfig struct {
	TimeoutMS int `yaml:"timeout_ms"` // Delay before auto-releasing a key
}

// ReleaseTimeout returns the delay as a duration.
func (e EvaluatorConfig) ReleaseTimeout() time.Duration {
	return time.Duration(e.TimeoutMS) * time.Millisecond
}

// Backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// SettingsConfig selects where user settings are persisted.
type SettingsConfig struct {
	Backend string `yaml:"backend"` // "file" or "sqlite"
	Path    string `yaml:"path"`    // File backend location
	DB      string `yaml:"db"`      // SQLite backend location
	Keep    int    `yaml:"keep"`    // Snapshots kept by the sqlite backend, 0 keeps all
}

// SystemConfig holds app-wide options.
type SystemConfig struct {
	Locale string `yaml:"locale"` // Empty resolves from the environment
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ServeConfig configures the SSH overlay server.
type ServeConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	HostKey string `yaml:"host_key"`
}

// Validate reports the first invalid field.
func (a App) Validate() error {
	if a.Evaluator.TimeoutMS <= 0 {
		return fmt.Errorf("config: evaluator.timeout_ms must be positive, got %d", a.Evaluator.TimeoutMS)
	}
	switch a.Settings.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown settings backend %q", a.Settings.Backend)
	}
	if a.Game.Namespace == "" {
		return fmt.Errorf("config: game.namespace must not be empty")
	}
	if a.Settings.Keep < 0 {
		return fmt.Errorf("config: settings.keep must not be negative")
	}
	return nil
}
