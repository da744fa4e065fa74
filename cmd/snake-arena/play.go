package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a single run",
	Long: `Start a run straight away, skipping the menu.

Controls:
  Arrows/WASD/hjkl - Steer
  P/Space          - Pause
  R                - Restart (after game over)
  B/Esc            - Leave (when paused or over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 200ms per step at start
  normal - 150ms per step at start
  hard   - 100ms per step at start
  fixed  - No speed-up as the snake grows

Examples:
  snake-arena play
  snake-arena play --mode wrapping
  snake-arena play --difficulty hard --size 15
  snake-arena play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGame(cmd, false)
	},
}

var spectateCmd = &cobra.Command{
	Use:   "spectate",
	Short: "Watch the AI play",
	Long: `Watch a greedy AI chase food. A new run starts automatically a
moment after each game over. Spectator runs are not recorded.

Examples:
  snake-arena spectate
  snake-arena spectate --mode wrapping --size 12
  snake-arena spectate --seed 42`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGame(cmd, true)
	},
}

func runGame(cmd *cobra.Command, spectate bool) error {
	deps, rt, cleanup, err := newDeps(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.RunGame(deps, rt, deps.Config.Mode(), spectate)
}

func runMenu(cmd *cobra.Command, _ []string) error {
	deps, rt, cleanup, err := newDeps(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.RunSession(deps, rt)
}
