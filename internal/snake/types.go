// Package snake implements the snake simulation engine.
// Every operation is a pure function over State values: no I/O, no shared
// mutable memory. Randomness is injected through Rand so runs are reproducible.
package snake

import (
	"fmt"
	"time"
)

// MinBoardSize is the smallest board that fits the initial snake with room to move.
const MinBoardSize = 5

// Direction represents the snake's movement direction.
type Direction int

const (
	Right Direction = iota
	Down
	Left
	Up
)

// Directions lists all four directions in a stable order.
var Directions = [4]Direction{Up, Down, Left, Right}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Delta returns the unit displacement for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// BoundaryMode decides what happens when the head crosses the grid edge.
type BoundaryMode string

const (
	// Bounded makes the grid edge a fatal wall.
	Bounded BoundaryMode = "bounded"
	// Wrapping teleports the head to the opposite edge.
	Wrapping BoundaryMode = "wrapping"
)

// Modes lists the supported boundary modes.
var Modes = []BoundaryMode{Bounded, Wrapping}

// Title returns a display name for the mode.
func (m BoundaryMode) Title() string {
	switch m {
	case Bounded:
		return "Walls"
	case Wrapping:
		return "Pass-through"
	default:
		return string(m)
	}
}

// ParseMode converts a user-facing name into a BoundaryMode.
// The legacy names "walls" and "pass-through" are accepted too.
func ParseMode(s string) (BoundaryMode, error) {
	switch s {
	case "bounded", "walls":
		return Bounded, nil
	case "wrapping", "pass-through", "wrap":
		return Wrapping, nil
	default:
		return "", fmt.Errorf("snake: unknown mode %q (want bounded or wrapping)", s)
	}
}

// Position is a cell on the board.
type Position struct {
	X, Y int
}

// Manhattan returns the taxicab distance between two positions.
func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Rules holds the tuning constants of a run.
type Rules struct {
	FoodReward      int           // Score added per food
	InitialInterval time.Duration // Tick interval at run start
	SpeedStep       time.Duration // Interval decrease per food
	MinInterval     time.Duration // Interval floor
}

// DefaultRules returns the classic tuning: +10 per food, 150ms start,
// 2ms faster per food, never below 50ms.
func DefaultRules() Rules {
	return Rules{
		FoodReward:      10,
		InitialInterval: 150 * time.Millisecond,
		SpeedStep:       2 * time.Millisecond,
		MinInterval:     50 * time.Millisecond,
	}
}

// State is an immutable snapshot of a run.
// Operations never write into Snake; they build a new slice instead, so a
// State can be shared freely once published.
type State struct {
	Snake        []Position // Head at index 0
	Food         Position
	Direction    Direction
	Score        int
	GameOver     bool
	Paused       bool
	Mode         BoundaryMode
	TickInterval time.Duration
	Size         int // Board is Size x Size
	Rules        Rules
}

// Head returns the head position.
func (s State) Head() Position {
	return s.Snake[0]
}

// Len returns the snake length.
func (s State) Len() int {
	return len(s.Snake)
}

// Active reports whether steps still have an effect.
func (s State) Active() bool {
	return !s.GameOver && !s.Paused
}

// Equal reports whether two snapshots describe the same run state.
func (s State) Equal(o State) bool {
	if len(s.Snake) != len(o.Snake) {
		return false
	}
	for i := range s.Snake {
		if s.Snake[i] != o.Snake[i] {
			return false
		}
	}
	return s.Food == o.Food &&
		s.Direction == o.Direction &&
		s.Score == o.Score &&
		s.GameOver == o.GameOver &&
		s.Paused == o.Paused &&
		s.Mode == o.Mode &&
		s.TickInterval == o.TickInterval &&
		s.Size == o.Size &&
		s.Rules == o.Rules
}
