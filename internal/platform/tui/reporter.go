package tui

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/loop"
	"github.com/vovakirdan/snake-arena/internal/snake"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

// scoreReporter submits finished human runs to the leaderboard.
// It keeps the last submission so the game-over overlay can show the rank.
type scoreReporter struct {
	store  *storage.Store
	player string
	size   int
	log    *log.Logger

	last    storage.Submission
	hasLast bool
}

var _ loop.Reporter = (*scoreReporter)(nil)

// ReportRun implements loop.Reporter. Empty runs are not recorded.
func (r *scoreReporter) ReportRun(score int, mode snake.BoundaryMode) {
	r.hasLast = false
	if r.store == nil || score <= 0 {
		return
	}
	sub, err := r.store.SubmitScore(r.player, string(mode), score, r.size)
	if err != nil {
		r.log.Warn("could not save score", "player", r.player, "mode", mode, "score", score, "error", err)
		return
	}
	r.last, r.hasLast = sub, true
	r.log.Info("score saved",
		"player", r.player,
		"mode", mode,
		"score", score,
		"rank", sub.Rank,
		"new_best", sub.IsNewBest,
	)
}

// Banner describes the last submission, or "" if nothing was saved.
func (r *scoreReporter) Banner() string {
	if r == nil || !r.hasLast {
		return ""
	}
	switch {
	case r.last.IsNewBest && r.last.PreviousBest > 0:
		return fmt.Sprintf(" New best! Rank #%d (was %d) ", r.last.Rank, r.last.PreviousBest)
	case r.last.IsNewBest:
		return fmt.Sprintf(" New best! Rank #%d ", r.last.Rank)
	default:
		return fmt.Sprintf(" Rank #%d  Best %d ", r.last.Rank, r.last.PreviousBest)
	}
}
