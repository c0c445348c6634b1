// Package config provides YAML-based configuration loading for the
// screwsort binary: animation pacing, autoplay behavior, and the
// terminal/SSH frontends.
package config

// Config is the root configuration.
type Config struct {
	Animation AnimationConfig `yaml:"animation"`
	Autoplay  AutoplayConfig  `yaml:"autoplay"`
	UI        UIConfig        `yaml:"ui"`
	Server    ServerConfig    `yaml:"server"`
}

// AnimationConfig defines how many simulator ticks each animated move
// takes before its completion is delivered to the engine.
type AnimationConfig struct {
	RemovalTicks  int `yaml:"removal_ticks"`
	TransferTicks int `yaml:"transfer_ticks"`
	HideTicks     int `yaml:"hide_ticks"`
	ShiftTicks    int `yaml:"shift_ticks"`
	RevealTicks   int `yaml:"reveal_ticks"`
}

// AutoplayConfig defines the strategy the headless player uses.
type AutoplayConfig struct {
	// Strategy is "eager" (always tap the first movable screw) or
	// "random" (tap a uniformly chosen movable screw).
	Strategy string `yaml:"strategy"`

	// MaxTicks aborts a run that has not reached a verdict; a guard
	// against levels that park screws in the buffer forever.
	MaxTicks int `yaml:"max_ticks"`
}

// UIConfig defines terminal frontend parameters.
type UIConfig struct {
	// TickRate is the frame rate of the watch view in ticks per second.
	TickRate int `yaml:"tick_rate"`
}

// ServerConfig defines the SSH server endpoint.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}
