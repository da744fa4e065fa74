package config

import (
	_ "embed"
)

//go:embed defaults/snake-arena.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Size: 20,
			Mode: "bounded",
		},
		Timing: TimingConfig{
			InitialIntervalMs: 150,
			SpeedStepMs:       2,
			MinIntervalMs:     50,
			FrameRate:         60,
		},
		Scoring: ScoringConfig{
			FoodReward: 10,
		},
		Spectator: SpectatorConfig{
			RestartDelayMs: 2000,
		},
		Server: ServerConfig{
			Address:            ":2222",
			HostKeyPath:        ".ssh/snake_arena_ed25519",
			IdleTimeoutMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
