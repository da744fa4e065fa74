package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // Configured start speed, no speed-up
)

// Presets lists the difficulty presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset parses a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DifficultyNormal, nil
	}
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", s)
}

// InitialIntervalForPreset returns the starting step interval in milliseconds,
// or 0 when the preset keeps the configured value.
func InitialIntervalForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 200
	case DifficultyNormal:
		return 150
	case DifficultyHard:
		return 100
	default:
		return 0
	}
}

// ApplyPreset modifies the timing section for a difficulty preset.
// The minimum interval is lowered if needed so the config stays valid.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Timing.SpeedStepMs = 0
		return
	}
	if iv := InitialIntervalForPreset(preset); iv > 0 {
		cfg.Timing.InitialIntervalMs = iv
		cfg.Timing.MinIntervalMs = min(cfg.Timing.MinIntervalMs, iv)
	}
}
