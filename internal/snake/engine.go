package snake

import (
	"fmt"
)

// Rand is the randomness the engine needs. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// NewState creates a fresh run: a 3-segment snake centered on the board
// heading right, score 0, and food on a free cell.
func NewState(size int, mode BoundaryMode, rules Rules, rng Rand) (State, error) {
	if size < MinBoardSize {
		return State{}, fmt.Errorf("snake: board size %d is below minimum %d", size, MinBoardSize)
	}
	if mode != Bounded && mode != Wrapping {
		return State{}, fmt.Errorf("snake: unknown mode %q", mode)
	}

	cx, cy := size/2, size/2
	body := []Position{
		{X: cx, Y: cy}, // Head
		{X: cx - 1, Y: cy},
		{X: cx - 2, Y: cy},
	}

	food, err := PlaceFood(body, size, rng)
	if err != nil {
		return State{}, err
	}

	return State{
		Snake:        body,
		Food:         food,
		Direction:    Right,
		Mode:         mode,
		TickInterval: rules.InitialInterval,
		Size:         size,
		Rules:        rules,
	}, nil
}

// Project returns the cell one step from p in direction d.
// In Wrapping mode both axes are folded back into [0, size); in Bounded mode
// out-of-range coordinates are returned as-is for the wall check.
func Project(p Position, d Direction, mode BoundaryMode, size int) Position {
	dx, dy := d.Delta()
	next := Position{X: p.X + dx, Y: p.Y + dy}
	if mode == Wrapping {
		next.X = wrap(next.X, size)
		next.Y = wrap(next.Y, size)
	}
	return next
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}

// HitsWall reports whether p lies outside a size x size board.
func HitsWall(p Position, size int) bool {
	return p.X < 0 || p.X >= size || p.Y < 0 || p.Y >= size
}

// Occupies reports whether any segment of body is at p.
func Occupies(body []Position, p Position) bool {
	for _, seg := range body {
		if seg == p {
			return true
		}
	}
	return false
}

// Collides reports whether moving the head to next ends the run:
// a wall in Bounded mode, or any cell of the current body (tail included).
func Collides(s State, next Position) bool {
	if s.Mode == Bounded && HitsWall(next, s.Size) {
		return true
	}
	return Occupies(s.Snake, next)
}

// Advance performs one simulation tick and returns the next snapshot.
// Terminal and paused states are returned unchanged.
func Advance(s State, rng Rand) State {
	if s.GameOver || s.Paused {
		return s
	}

	head := Project(s.Head(), s.Direction, s.Mode, s.Size)

	if Collides(s, head) {
		s.GameOver = true
		return s
	}

	if head == s.Food {
		grown := make([]Position, 0, len(s.Snake)+1)
		grown = append(grown, head)
		grown = append(grown, s.Snake...)

		food, err := PlaceFood(grown, s.Size, rng)
		if err != nil {
			// The snake fills the whole board; there is no valid next state.
			panic(fmt.Errorf("snake: advance: %w", err))
		}

		s.Snake = grown
		s.Food = food
		s.Score += s.Rules.FoodReward
		s.TickInterval = max(s.Rules.MinInterval, s.TickInterval-s.Rules.SpeedStep)
		return s
	}

	moved := make([]Position, 0, len(s.Snake))
	moved = append(moved, head)
	moved = append(moved, s.Snake[:len(s.Snake)-1]...)
	s.Snake = moved
	return s
}

// Turn requests a new heading. A reversal onto the snake's own neck is
// ignored. Flags are not inspected; gating input is the caller's job.
func Turn(s State, d Direction) State {
	if d == s.Direction.Opposite() {
		return s
	}
	s.Direction = d
	return s
}
