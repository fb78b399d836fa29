package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Load loads the game configuration and applies LADDERS_* environment overrides.
// Search order: customPath -> ~/.ladders/configs/game.yaml -> ./configs/game.yaml -> embedded default
//
// Files are layered over the embedded defaults, so a config only needs the
// keys it changes.
func Load(customPath string) (GameConfig, error) {
	return load(customPath, nil)
}

func load(customPath string, environ map[string]string) (GameConfig, error) {
	cfg := embeddedDefaults()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return applyEnv(cfg, environ)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("game.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			layered := cfg
			if err := yaml.Unmarshal(data, &layered); err == nil {
				return applyEnv(layered, environ)
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/game.yaml"); err == nil {
		layered := cfg
		if err := yaml.Unmarshal(data, &layered); err == nil {
			return applyEnv(layered, environ)
		}
	}

	return applyEnv(cfg, environ)
}

// embeddedDefaults parses the embedded YAML, falling back to the hardcoded defaults.
func embeddedDefaults() GameConfig {
	var cfg GameConfig
	if err := yaml.Unmarshal(defaultGameYAML, &cfg); err != nil {
		return DefaultGameConfig()
	}
	return cfg
}

// applyEnv overlays environment variables. A nil environ reads the process environment.
func applyEnv(cfg GameConfig, environ map[string]string) (GameConfig, error) {
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ladders", "configs", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
