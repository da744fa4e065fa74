package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/ai"
	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/loop"
	"github.com/vovakirdan/snake-arena/internal/snake"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

// aiPlayer is the leaderboard name for recorded simulator runs.
const aiPlayer = "ai"

var (
	flagSimRuns     int
	flagSimMaxSteps uint64
	flagSimRecord   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run AI games headless and summarize them",
	Long: `Play the greedy AI against itself without a display, as fast as the
CPU allows, and print a summary per mode. Runs are reproducible with --seed.

Examples:
  snake-arena simulate
  snake-arena simulate --runs 500 --mode wrapping
  snake-arena simulate --seed 42 --size 10
  snake-arena simulate --record`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 100, "Runs per mode")
	simulateCmd.Flags().Uint64Var(&flagSimMaxSteps, "max-steps", 100_000, "Stop a run after this many steps (0 = no limit)")
	simulateCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Submit results to the leaderboard as player \"ai\"")
}

// simSummary aggregates the runs of one mode.
type simSummary struct {
	Mode      snake.BoundaryMode
	Runs      int
	Best      int
	TotalScr  int
	TotalLen  int
	TotalStep uint64
	Filled    int // Runs that covered the whole board
	Capped    int // Runs stopped by --max-steps
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	if flagSimRuns <= 0 {
		return fmt.Errorf("--runs must be positive, got %d", flagSimRuns)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "simulate",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	modes := snake.Modes
	if cmd.Flags().Changed("mode") {
		modes = []snake.BoundaryMode{cfg.Mode()}
	}

	var store *storage.Store
	if flagSimRecord {
		store, err = storage.Open(cfg.ScoresPath())
		if err != nil {
			return fmt.Errorf("opening scores database: %w", err)
		}
		defer store.Close()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("simulating", "runs", flagSimRuns, "size", cfg.Board.Size, "seed", seed)

	start := time.Now()
	summaries := make([]simSummary, 0, len(modes))
	for _, mode := range modes {
		sum := simSummary{Mode: mode}
		for i := 0; i < flagSimRuns; i++ {
			res, err := simulateRun(cfg, mode, seed+int64(i)*2, logger)
			if err != nil {
				return err
			}
			sum.add(res)

			if store != nil && res.score > 0 {
				if _, err := store.SubmitScore(aiPlayer, string(mode), res.score, cfg.Board.Size); err != nil {
					logger.Warn("could not record run", "mode", mode, "error", err)
				}
			}
		}
		logger.Debug("mode done", "mode", mode, "best", sum.Best)
		summaries = append(summaries, sum)
	}

	printSummaries(summaries, time.Since(start))
	return nil
}

type simResult struct {
	score  int
	length int
	steps  uint64
	over   bool
	filled bool
}

// simulateRun plays one AI game on a virtual clock.
func simulateRun(cfg config.Config, mode snake.BoundaryMode, seed int64, logger *log.Logger) (res simResult, err error) {
	frames := loop.NewManualFrames(time.Unix(0, 0))
	l, err := loop.New(loop.Config{
		Size:   cfg.Board.Size,
		Mode:   mode,
		Rules:  cfg.Rules(),
		Rand:   rand.New(rand.NewSource(seed)),
		Clock:  frames,
		Frames: frames,
		Policy: ai.NewGreedy(rand.New(rand.NewSource(seed + 1))),
		Logger: logger.WithPrefix("loop"),
	})
	if err != nil {
		return simResult{}, err
	}

	// Eating the last free cell leaves nowhere to put food, which the engine
	// treats as a broken invariant. For the simulator it is a perfect run.
	cells := cfg.Board.Size * cfg.Board.Size
	defer func() {
		if r := recover(); r != nil {
			last := l.State()
			if last.Len() != cells-1 {
				panic(r)
			}
			res = simResult{
				score:  last.Score + last.Rules.FoodReward,
				length: cells,
				steps:  l.Steps() + 1,
				over:   true,
				filled: true,
			}
		}
	}()

	s := loop.RunHeadless(l, frames, flagSimMaxSteps)
	return simResult{score: s.Score, length: s.Len(), steps: l.Steps(), over: s.GameOver}, nil
}

func (s *simSummary) add(r simResult) {
	s.Runs++
	s.Best = max(s.Best, r.score)
	s.TotalScr += r.score
	s.TotalLen += r.length
	s.TotalStep += r.steps
	switch {
	case r.filled:
		s.Filled++
	case !r.over:
		s.Capped++
	}
}

func printSummaries(summaries []simSummary, elapsed time.Duration) {
	fmt.Printf("  %-10s  %-6s  %-6s  %-10s  %-10s  %-10s  %s\n",
		"Mode", "Runs", "Best", "Avg score", "Avg length", "Avg steps", "Notes")
	fmt.Printf("  %-10s  %-6s  %-6s  %-10s  %-10s  %-10s  %s\n",
		"----", "----", "----", "---------", "----------", "---------", "-----")

	for _, s := range summaries {
		n := float64(s.Runs)
		notes := ""
		if s.Filled > 0 {
			notes += fmt.Sprintf("%d filled ", s.Filled)
		}
		if s.Capped > 0 {
			notes += fmt.Sprintf("%d capped", s.Capped)
		}
		fmt.Printf("  %-10s  %-6d  %-6d  %-10.1f  %-10.1f  %-10.1f  %s\n",
			s.Mode, s.Runs, s.Best,
			float64(s.TotalScr)/n, float64(s.TotalLen)/n, float64(s.TotalStep)/n, notes)
	}

	fmt.Println()
	fmt.Printf("Done in %s\n", elapsed.Round(time.Millisecond))
}
