package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "battleship.yaml"

// LoadBattleship loads battleship configuration.
// Search order: customPath -> ~/.battleship/configs/battleship.yaml -> ./configs/battleship.yaml -> embedded default
//
// Files only need to set the keys they change; the rest keeps the default.
func LoadBattleship(customPath string) (BattleshipConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return DefaultBattleshipConfig(), err
		}
		if err := cfg.Validate(); err != nil {
			return DefaultBattleshipConfig(), fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultBattleshipConfig()
	if err := yaml.Unmarshal(defaultBattleshipYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultBattleshipConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// loadFile reads a YAML file over the default configuration.
func loadFile(path string) (BattleshipConfig, error) {
	cfg := DefaultBattleshipConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DataDir returns ~/.battleship, or .battleship in the working directory when
// the home directory is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".battleship"
	}
	return filepath.Join(home, ".battleship")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".battleship", "configs", filename)
}
