// snake-arena is a terminal snake game with an AI spectator mode, a shared
// leaderboard and an SSH server for remote play.
//
// Usage:
//
//	snake-arena                  - Start the interactive menu
//	snake-arena play             - Play a single run
//	snake-arena spectate         - Watch the AI play
//	snake-arena serve            - Start SSH server for remote play
//	snake-arena scores [mode]    - Show or clear high scores
//	snake-arena simulate         - Run AI games headless and summarize them
//
// Global flags:
//
//	--config <path>      - Config file (default search path otherwise)
//	--difficulty <name>  - easy, normal, hard or fixed
//	--mode <mode>        - bounded or wrapping
//	--size <n>           - Board size in cells
//	--fps <rate>         - Display refresh rate
//	--seed <value>       - RNG seed for reproducible runs
//	--db <path>          - Scores database (default: ~/.snake-arena/scores.db)
//	--player <name>      - Name used on the leaderboard
//	--debug              - Write a debug log to ~/.snake-arena/snake-arena.log
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagMode       string
	flagSize       int
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagPlayer     string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake-arena",
	Short: "Snake Arena - classic snake in your terminal",
	Long: `Snake Arena is a terminal snake game. Eat food to grow, avoid
walls and your own body, and climb the leaderboard. Watch the AI play in
spectator mode, or host the whole thing over SSH.

Available commands:
  play      - Play a single run
  spectate  - Watch the AI play
  serve     - Start SSH server for remote play
  scores    - View or clear high scores
  simulate  - Run AI games headless

Examples:
  snake-arena
  snake-arena play --mode wrapping --difficulty hard
  snake-arena spectate --size 12
  snake-arena serve
  snake-arena scores bounded`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagMode, "mode", "", "Boundary mode: bounded or wrapping")
	pf.IntVar(&flagSize, "size", 0, "Board size in cells")
	pf.IntVar(&flagFPS, "fps", 0, "Display refresh rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "", "Path to scores database")
	pf.StringVar(&flagPlayer, "player", "", "Player name for the leaderboard (default: $USER)")
	pf.BoolVar(&flagDebug, "debug", false, "Write a debug log to ~/.snake-arena/snake-arena.log")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(spectateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}
