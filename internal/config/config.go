// Package config provides YAML-based configuration loading and difficulty
// presets for snake-arena.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/vovakirdan/snake-arena/internal/snake"
)

// Config is the full snake-arena configuration.
type Config struct {
	Board     BoardConfig     `yaml:"board"`
	Timing    TimingConfig    `yaml:"timing"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Spectator SpectatorConfig `yaml:"spectator"`
	Storage   StorageConfig   `yaml:"storage"`
	Server    ServerConfig    `yaml:"server"`
}

// BoardConfig defines the playfield.
type BoardConfig struct {
	Size int    `yaml:"size"` // Cells per side
	Mode string `yaml:"mode"` // "bounded" or "wrapping"
}

// TimingConfig defines step pacing and display refresh.
type TimingConfig struct {
	InitialIntervalMs int `yaml:"initial_interval_ms"`
	SpeedStepMs       int `yaml:"speed_step_ms"` // Interval reduction per food eaten
	MinIntervalMs     int `yaml:"min_interval_ms"`
	FrameRate         int `yaml:"frame_rate"` // Display refreshes per second
}

// ScoringConfig defines score rewards.
type ScoringConfig struct {
	FoodReward int `yaml:"food_reward"`
}

// SpectatorConfig defines spectator mode behavior.
type SpectatorConfig struct {
	RestartDelayMs int `yaml:"restart_delay_ms"` // Pause before the AI starts a new run
}

// StorageConfig defines where scores are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"` // Empty means ~/.snake-arena/scores.db
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address            string `yaml:"address"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Board.Size < snake.MinBoardSize {
		errs = append(errs, fmt.Errorf("board.size must be at least %d, got %d", snake.MinBoardSize, c.Board.Size))
	}
	if _, err := snake.ParseMode(c.Board.Mode); err != nil {
		errs = append(errs, fmt.Errorf("board.mode: %w", err))
	}
	if c.Timing.InitialIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("timing.initial_interval_ms must be positive, got %d", c.Timing.InitialIntervalMs))
	}
	if c.Timing.MinIntervalMs <= 0 || c.Timing.MinIntervalMs > c.Timing.InitialIntervalMs {
		errs = append(errs, fmt.Errorf("timing.min_interval_ms must be in (0, %d], got %d", c.Timing.InitialIntervalMs, c.Timing.MinIntervalMs))
	}
	if c.Timing.SpeedStepMs < 0 {
		errs = append(errs, fmt.Errorf("timing.speed_step_ms must not be negative, got %d", c.Timing.SpeedStepMs))
	}
	if c.Timing.FrameRate <= 0 || c.Timing.FrameRate > 240 {
		errs = append(errs, fmt.Errorf("timing.frame_rate must be in (0, 240], got %d", c.Timing.FrameRate))
	}
	if c.Scoring.FoodReward < 0 {
		errs = append(errs, fmt.Errorf("scoring.food_reward must not be negative, got %d", c.Scoring.FoodReward))
	}
	if c.Spectator.RestartDelayMs < 0 {
		errs = append(errs, fmt.Errorf("spectator.restart_delay_ms must not be negative, got %d", c.Spectator.RestartDelayMs))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Mode returns the configured boundary mode, falling back to bounded.
func (c Config) Mode() snake.BoundaryMode {
	m, err := snake.ParseMode(c.Board.Mode)
	if err != nil {
		return snake.Bounded
	}
	return m
}

// Rules converts the timing and scoring sections to engine rules.
func (c Config) Rules() snake.Rules {
	return snake.Rules{
		FoodReward:      c.Scoring.FoodReward,
		InitialInterval: ms(c.Timing.InitialIntervalMs),
		SpeedStep:       ms(c.Timing.SpeedStepMs),
		MinInterval:     ms(c.Timing.MinIntervalMs),
	}
}

// FrameInterval returns the display refresh period.
func (c Config) FrameInterval() time.Duration {
	if c.Timing.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Timing.FrameRate)
}

// RestartDelay returns the spectator auto-restart delay.
func (c Config) RestartDelay() time.Duration {
	return ms(c.Spectator.RestartDelayMs)
}

// IdleTimeout returns the SSH idle timeout.
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.Server.IdleTimeoutMinutes) * time.Minute
}

// ScoresPath returns the scores database path, defaulting to the data dir.
func (c Config) ScoresPath() string {
	if c.Storage.DBPath != "" {
		return c.Storage.DBPath
	}
	return filepath.Join(DataDir(), "scores.db")
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
