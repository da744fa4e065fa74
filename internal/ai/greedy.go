// Package ai provides the autonomous direction policy used in spectator mode.
// The policy never mutates state; it only advises which direction to turn
// before the next engine step.
package ai

import (
	"github.com/vovakirdan/snake-arena/internal/snake"
)

// Greedy steers toward the food while avoiding moves that die on the next
// step. Ties are broken with the injected random source.
type Greedy struct {
	rng snake.Rand
}

// NewGreedy creates a greedy policy drawing tie-breaks from rng.
func NewGreedy(rng snake.Rand) *Greedy {
	return &Greedy{rng: rng}
}

// Choose picks the direction for the next step.
// With no safe move left it keeps the current heading.
func (g *Greedy) Choose(s snake.State) snake.Direction {
	safe := Safe(s)
	if len(safe) == 0 {
		return s.Direction
	}

	if closer := Closer(s, safe); len(closer) > 0 {
		return closer[g.rng.Intn(len(closer))]
	}
	return safe[g.rng.Intn(len(safe))]
}

// Candidates returns every direction except the reversal of the current one.
func Candidates(s snake.State) []snake.Direction {
	out := make([]snake.Direction, 0, 3)
	for _, d := range snake.Directions {
		if d != s.Direction.Opposite() {
			out = append(out, d)
		}
	}
	return out
}

// Safe filters Candidates down to moves that do not collide on the next step.
func Safe(s snake.State) []snake.Direction {
	var out []snake.Direction
	for _, d := range Candidates(s) {
		next := snake.Project(s.Head(), d, s.Mode, s.Size)
		if !snake.Collides(s, next) {
			out = append(out, d)
		}
	}
	return out
}

// Closer keeps the directions whose projected head strictly reduces the
// Manhattan distance to the food.
func Closer(s snake.State, dirs []snake.Direction) []snake.Direction {
	head := s.Head()
	current := snake.Manhattan(head, s.Food)

	var out []snake.Direction
	for _, d := range dirs {
		next := snake.Project(head, d, s.Mode, s.Size)
		if snake.Manhattan(next, s.Food) < current {
			out = append(out, d)
		}
	}
	return out
}
