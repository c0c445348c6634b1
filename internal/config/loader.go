package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration.
// Search order: customPath -> ~/.screwsort/configs/screwsort.yaml -> ./configs/screwsort.yaml -> embedded default
func Load(customPath string) (Config, error) {
	var cfg Config

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return normalize(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("screwsort.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return normalize(cfg), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/screwsort.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return normalize(cfg), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return normalize(cfg), nil
}

// userConfigPath returns the path to the user config file, or empty if
// home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".screwsort", "configs", filename)
}

// normalize fills unset fields from the hardcoded defaults so a partial
// config file stays usable.
func normalize(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Animation.RemovalTicks <= 0 {
		cfg.Animation.RemovalTicks = def.Animation.RemovalTicks
	}
	if cfg.Animation.TransferTicks <= 0 {
		cfg.Animation.TransferTicks = def.Animation.TransferTicks
	}
	if cfg.Animation.HideTicks <= 0 {
		cfg.Animation.HideTicks = def.Animation.HideTicks
	}
	if cfg.Animation.ShiftTicks <= 0 {
		cfg.Animation.ShiftTicks = def.Animation.ShiftTicks
	}
	if cfg.Animation.RevealTicks <= 0 {
		cfg.Animation.RevealTicks = def.Animation.RevealTicks
	}
	if cfg.Autoplay.Strategy == "" {
		cfg.Autoplay.Strategy = def.Autoplay.Strategy
	}
	if cfg.Autoplay.MaxTicks <= 0 {
		cfg.Autoplay.MaxTicks = def.Autoplay.MaxTicks
	}
	if cfg.UI.TickRate <= 0 {
		cfg.UI.TickRate = def.UI.TickRate
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = def.Server.Host
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = def.Server.Port
	}
	return cfg
}
