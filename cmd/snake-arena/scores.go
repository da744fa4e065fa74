package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/platform/tui"
	"github.com/vovakirdan/snake-arena/internal/snake"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the best score of each player for a mode. Without a mode,
every mode is listed.

Examples:
  snake-arena scores
  snake-arena scores wrapping --limit 20
  snake-arena scores --tui
  snake-arena scores bounded --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the mode")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	modes := snake.Modes
	if len(args) == 1 {
		mode, err := snake.ParseMode(args[0])
		if err != nil {
			return err
		}
		modes = []snake.BoundaryMode{mode}
	}

	store, err := storage.Open(cfg.ScoresPath())
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if len(args) == 0 {
			return fmt.Errorf("--clear needs a mode, one of %v", snake.Modes)
		}
		if err := store.ClearScores(string(modes[0])); err != nil {
			return err
		}
		fmt.Printf("Cleared %s scores.\n", modes[0].Title())
		return nil
	}

	if flagScoresTUI {
		return tui.RunScoreboard(store, modes[0], playerName(), runtimeConfig(cfg))
	}

	for i, mode := range modes {
		if i > 0 {
			fmt.Println()
		}
		if err := printScores(store, mode); err != nil {
			return err
		}
	}
	return nil
}

func printScores(store *storage.Store, mode snake.BoundaryMode) error {
	scores, err := store.TopScores(string(mode), flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", mode.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'snake-arena play --mode %s' to set the first high score!\n", mode)
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %-5s  %s\n", "Rank", "Player", "Score", "Board", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %-5s  %s\n", "----", "------", "-----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-16s  %-8d  %-5d  %s\n",
			i+1, entry.Player, entry.Score, entry.BoardSize, entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	if stats, err := store.ModeStats(string(mode)); err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("%d runs by %d players, average %.1f\n", stats.Runs, stats.Players, stats.AvgScore)
	}
	return nil
}
