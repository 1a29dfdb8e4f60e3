package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadApp loads the application configuration.
// Search order: customPath -> ~/.ludens/config.yaml -> ./configs/ludens.yaml -> embedded default
//
// Files are decoded over DefaultApp, so omitted keys keep their defaults.
// The locale is resolved from the environment when left empty.
func LoadApp(customPath string) (App, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}
	if cfg.System.Locale == "" {
		cfg.System.Locale = EnvLocale()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load(customPath string) (App, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultApp(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultApp(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/ludens.yaml"); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultAppYAML)
	if err != nil {
		return DefaultApp(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (App, error) {
	cfg := DefaultApp()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultApp(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ludens", filename)
}

// EnvLocale derives a locale tag from LC_ALL, LC_MESSAGES or LANG, e.g.
// "es_MX.UTF-8" becomes "es-MX". It returns "" when none is set or the
// value is the POSIX locale.
func EnvLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v == "C" || v == "POSIX" || v == "" {
			return ""
		}
		return strings.ReplaceAll(v, "_", "-")
	}
	return ""
}
