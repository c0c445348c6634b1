package config

import (
	_ "embed"
)

//go:embed defaults/screwsort.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded default configuration, used when
// even the embedded YAML fails to parse.
func DefaultConfig() Config {
	return Config{
		Animation: AnimationConfig{
			RemovalTicks:  6,
			TransferTicks: 4,
			HideTicks:     5,
			ShiftTicks:    3,
			RevealTicks:   5,
		},
		Autoplay: AutoplayConfig{
			Strategy: "eager",
			MaxTicks: 100000,
		},
		UI: UIConfig{
			TickRate: 30,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 23235,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultYAML
}
