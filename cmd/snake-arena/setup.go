package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/platform/tui"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

// loadConfig loads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("difficulty") {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return config.Config{}, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flags.Changed("mode") {
		cfg.Board.Mode = flagMode
	}
	if flags.Changed("size") {
		cfg.Board.Size = flagSize
	}
	if flags.Changed("fps") {
		cfg.Timing.FrameRate = flagFPS
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// runtimeConfig sizes the view to the current terminal.
func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.FrameRate = cfg.Timing.FrameRate
	rt.Seed = flagSeed
	return rt
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// openStore opens the leaderboard. Failure is not fatal: the game still
// works, it just doesn't record scores.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.ScoresPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", cfg.ScoresPath(), "error", err)
		return nil
	}
	return store
}

// newLogger returns the logger for local TUI commands. The alt screen owns
// the terminal, so logs go to a file with --debug and nowhere otherwise.
func newLogger() (*log.Logger, func()) {
	if !flagDebug {
		return log.New(io.Discard), func() {}
	}

	path := filepath.Join(config.DataDir(), "snake-arena.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log dir: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake-arena",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }
}

// newDeps wires the shared collaborators of a local session.
func newDeps(cmd *cobra.Command) (tui.Deps, core.RuntimeConfig, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return tui.Deps{}, core.RuntimeConfig{}, nil, err
	}

	logger, closeLog := newLogger()
	store := openStore(cfg, logger)

	deps := tui.Deps{
		Config:      cfg,
		Store:       store,
		Player:      playerName(),
		Screenshots: true,
		Logger:      logger,
	}
	cleanup := func() {
		if store != nil {
			store.Close()
		}
		closeLog()
	}
	return deps, runtimeConfig(cfg), cleanup, nil
}
