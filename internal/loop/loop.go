// Package loop drives the snake engine from a host refresh callback.
// It turns a stream of refresh timestamps into discrete engine steps at the
// run's current tick interval, folds in human or AI direction changes, and
// reports the final score once per run.
//
// A Loop is not safe for concurrent use. The host calls every method, and
// delivers every frame, from a single goroutine.
package loop

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/snake"
)

// Policy chooses a direction for runs without a human controller.
type Policy interface {
	Choose(s snake.State) snake.Direction
}

// Reporter receives the result of a finished run.
type Reporter interface {
	ReportRun(score int, mode snake.BoundaryMode)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(score int, mode snake.BoundaryMode)

// ReportRun calls f.
func (f ReporterFunc) ReportRun(score int, mode snake.BoundaryMode) { f(score, mode) }

// Config wires a Loop to its collaborators.
type Config struct {
	Size  int
	Mode  snake.BoundaryMode
	Rules snake.Rules
	Rand  snake.Rand

	Clock  Clock
	Frames FrameSource

	// Policy drives the run when set; human Turn requests are then ignored.
	Policy Policy

	// OnStep receives every newly published snapshot.
	OnStep func(snake.State)

	// Reporter is told the final score exactly once per run.
	Reporter Reporter

	Logger *log.Logger
}

// Loop owns the latest snapshot of a run and schedules its steps.
type Loop struct {
	cfg   Config
	log   *log.Logger
	state snake.State

	lastStep time.Time
	frame    FrameID
	gen      uint64 // invalidates callbacks from cancelled registrations

	pendingDir snake.Direction
	hasPending bool
	reported   bool
	steps      uint64
}

// New creates a loop with a fresh run. The loop is idle until Start.
func New(cfg Config) (*Loop, error) {
	if cfg.Frames == nil {
		return nil, errors.New("loop: frame source is required")
	}
	if cfg.Rand == nil {
		return nil, errors.New("loop: random source is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	l := &Loop{cfg: cfg, log: logger}
	if err := l.newRun(cfg.Mode); err != nil {
		return nil, err
	}
	return l, nil
}

// State returns the latest snapshot.
func (l *Loop) State() snake.State {
	return l.state
}

// Running reports whether a frame is registered.
func (l *Loop) Running() bool {
	return l.frame != 0
}

// Steps returns how many engine steps ran in the current run.
func (l *Loop) Steps() uint64 {
	return l.steps
}

// Spectating reports whether a policy drives the run.
func (l *Loop) Spectating() bool {
	return l.cfg.Policy != nil
}

// Start registers the next frame. It does nothing if the loop is already
// running or the run is paused or over.
func (l *Loop) Start() {
	if l.frame != 0 || !l.state.Active() {
		return
	}
	l.lastStep = l.cfg.Clock.Now()
	l.schedule()
}

// Stop cancels the pending frame. No step runs after Stop returns.
func (l *Loop) Stop() {
	if l.frame != 0 {
		l.cfg.Frames.CancelFrame(l.frame)
		l.frame = 0
	}
	l.gen++
}

// Turn queues a direction for the next step. Only the latest request
// between two steps is applied. Requests after game over are dropped.
func (l *Loop) Turn(d snake.Direction) {
	if l.state.GameOver || l.cfg.Policy != nil {
		return
	}
	l.pendingDir = d
	l.hasPending = true
}

// TogglePause flips the paused flag and publishes the new snapshot right away
// instead of waiting for the next step. Pausing cancels the pending frame;
// resuming restarts the loop. Ignored after game over.
func (l *Loop) TogglePause() {
	if l.state.GameOver {
		return
	}
	s := l.state
	s.Paused = !s.Paused
	l.publish(s)

	if s.Paused {
		l.Stop()
		l.log.Debug("run paused", "score", s.Score)
		return
	}
	l.log.Debug("run resumed", "score", s.Score)
	l.Start()
}

// Reset discards the current run and starts a fresh one in mode.
func (l *Loop) Reset(mode snake.BoundaryMode) error {
	l.Stop()
	if err := l.newRun(mode); err != nil {
		return err
	}
	l.Start()
	return nil
}

func (l *Loop) newRun(mode snake.BoundaryMode) error {
	s, err := snake.NewState(l.cfg.Size, mode, l.cfg.Rules, l.cfg.Rand)
	if err != nil {
		return err
	}
	l.cfg.Mode = mode
	l.hasPending = false
	l.reported = false
	l.steps = 0
	l.log.Debug("run started", "mode", mode, "size", l.cfg.Size, "ai", l.cfg.Policy != nil)
	l.publish(s)
	return nil
}

func (l *Loop) schedule() {
	l.gen++
	gen := l.gen
	l.frame = l.cfg.Frames.RequestFrame(func(now time.Time) {
		l.onFrame(gen, now)
	})
}

// onFrame runs at most one step per refresh, however late the refresh is.
func (l *Loop) onFrame(gen uint64, now time.Time) {
	if gen != l.gen || l.frame == 0 {
		return
	}
	l.frame = 0

	if now.Sub(l.lastStep) >= l.state.TickInterval {
		l.step(now)
	}

	if l.state.Active() {
		l.schedule()
	}
}

func (l *Loop) step(now time.Time) {
	s := l.state
	switch {
	case l.cfg.Policy != nil:
		s = snake.Turn(s, l.cfg.Policy.Choose(s))
	case l.hasPending:
		s = snake.Turn(s, l.pendingDir)
	}
	l.hasPending = false

	s = snake.Advance(s, l.cfg.Rand)
	l.lastStep = now
	l.steps++
	l.publish(s)

	if s.GameOver && !l.reported {
		l.reported = true
		l.log.Debug("run over", "score", s.Score, "mode", s.Mode, "length", s.Len(), "steps", l.steps)
		if l.cfg.Reporter != nil {
			l.cfg.Reporter.ReportRun(s.Score, s.Mode)
		}
	}
}

func (l *Loop) publish(s snake.State) {
	l.state = s
	if l.cfg.OnStep != nil {
		l.cfg.OnStep(s)
	}
}

// RunHeadless drives l on frames, one tick interval per frame, until the run
// ends or maxSteps steps have run (0 means no limit).
func RunHeadless(l *Loop, frames *ManualFrames, maxSteps uint64) snake.State {
	l.Start()
	for frames.Pending() {
		if maxSteps > 0 && l.Steps() >= maxSteps {
			break
		}
		frames.Advance(l.State().TickInterval)
	}
	l.Stop()
	return l.State()
}
