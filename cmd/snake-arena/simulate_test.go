package main

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/snake"
)

func TestSimulateRunIsReproducible(t *testing.T) {
	cfg := config.Default()
	cfg.Board.Size = 8
	logger := log.New(io.Discard)

	for _, mode := range snake.Modes {
		a, err := simulateRun(cfg, mode, 42, logger)
		if err != nil {
			t.Fatalf("simulateRun(%s): %v", mode, err)
		}
		b, err := simulateRun(cfg, mode, 42, logger)
		if err != nil {
			t.Fatalf("simulateRun(%s): %v", mode, err)
		}
		if a != b {
			t.Errorf("%s: same seed gave %+v and %+v", mode, a, b)
		}
		if !a.over {
			t.Errorf("%s: run did not finish in %d steps", mode, a.steps)
		}
		if a.length < 3 || a.score%cfg.Scoring.FoodReward != 0 {
			t.Errorf("%s: implausible result %+v", mode, a)
		}
	}
}

func TestSimSummary(t *testing.T) {
	var s simSummary
	s.add(simResult{score: 30, length: 6, steps: 40, over: true})
	s.add(simResult{score: 10, length: 4, steps: 20})
	s.add(simResult{score: 90, length: 12, steps: 200, over: true, filled: true})

	if s.Runs != 3 || s.Best != 90 || s.TotalScr != 130 || s.TotalLen != 22 || s.TotalStep != 260 {
		t.Errorf("summary = %+v", s)
	}
	if s.Filled != 1 || s.Capped != 1 {
		t.Errorf("Filled = %d, Capped = %d; expected 1 and 1", s.Filled, s.Capped)
	}
}
