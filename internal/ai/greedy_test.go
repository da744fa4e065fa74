package ai

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/snake-arena/internal/snake"
)

func running(mode snake.BoundaryMode, dir snake.Direction, food snake.Position, body ...snake.Position) snake.State {
	rules := snake.DefaultRules()
	return snake.State{
		Snake:        body,
		Food:         food,
		Direction:    dir,
		Mode:         mode,
		TickInterval: rules.InitialInterval,
		Size:         20,
		Rules:        rules,
	}
}

// Heading right with food up and to the right: only Up and Right close in.
func TestChooseGreedyPair(t *testing.T) {
	s := running(snake.Bounded, snake.Right, snake.Position{X: 15, Y: 5},
		snake.Position{X: 10, Y: 10}, snake.Position{X: 9, Y: 10}, snake.Position{X: 8, Y: 10})

	seen := map[snake.Direction]int{}
	for seed := int64(0); seed < 200; seed++ {
		g := NewGreedy(rand.New(rand.NewSource(seed)))
		seen[g.Choose(s)]++
	}

	if seen[snake.Left] > 0 {
		t.Error("Policy proposed a reversal")
	}
	if seen[snake.Down] > 0 {
		t.Error("Policy moved away from food while closer moves existed")
	}
	if seen[snake.Up] == 0 || seen[snake.Right] == 0 {
		t.Errorf("Expected both Up and Right to be chosen, got %v", seen)
	}
}

func TestCandidatesExcludeReversal(t *testing.T) {
	for _, d := range snake.Directions {
		s := running(snake.Wrapping, d, snake.Position{}, snake.Position{X: 5, Y: 5})
		c := Candidates(s)
		if len(c) != 3 {
			t.Errorf("Expected 3 candidates for %v, got %d", d, len(c))
		}
		for _, cd := range c {
			if cd == d.Opposite() {
				t.Errorf("Candidates for %v include reversal", d)
			}
		}
	}
}

func TestSafeAvoidsWallsAndBody(t *testing.T) {
	// Top-left corner heading up: Up and Left are walls, Right is body.
	s := running(snake.Bounded, snake.Up, snake.Position{X: 10, Y: 10},
		snake.Position{X: 0, Y: 0}, snake.Position{X: 0, Y: 1}, snake.Position{X: 1, Y: 1}, snake.Position{X: 1, Y: 0}, snake.Position{X: 2, Y: 0})

	safe := Safe(s)
	if len(safe) != 0 {
		t.Errorf("Expected no safe moves, got %v", safe)
	}

	g := NewGreedy(rand.New(rand.NewSource(1)))
	if got := g.Choose(s); got != snake.Up {
		t.Errorf("Boxed-in snake should keep current direction, got %v", got)
	}
}

func TestSafeWrappingEdgeIsNotAWall(t *testing.T) {
	s := running(snake.Wrapping, snake.Up, snake.Position{X: 10, Y: 10},
		snake.Position{X: 0, Y: 0}, snake.Position{X: 0, Y: 1}, snake.Position{X: 0, Y: 2})

	safe := Safe(s)
	want := map[snake.Direction]bool{snake.Up: true, snake.Left: true, snake.Right: true}
	if len(safe) != len(want) {
		t.Fatalf("Expected %d safe moves, got %v", len(want), safe)
	}
	for _, d := range safe {
		if !want[d] {
			t.Errorf("Unexpected safe direction %v", d)
		}
	}
}

func TestChooseFallsBackToAnySafeMove(t *testing.T) {
	// Food directly behind the snake: no candidate gets closer.
	s := running(snake.Bounded, snake.Right, snake.Position{X: 5, Y: 10},
		snake.Position{X: 10, Y: 10}, snake.Position{X: 9, Y: 10}, snake.Position{X: 8, Y: 10})

	if c := Closer(s, Safe(s)); len(c) != 0 {
		t.Fatalf("Test setup: expected no closer moves, got %v", c)
	}

	for seed := int64(0); seed < 50; seed++ {
		g := NewGreedy(rand.New(rand.NewSource(seed)))
		got := g.Choose(s)
		if got == snake.Left {
			t.Fatal("Policy proposed a reversal")
		}
	}
}

func TestChooseDoesNotMutateState(t *testing.T) {
	s := running(snake.Bounded, snake.Right, snake.Position{X: 15, Y: 5},
		snake.Position{X: 10, Y: 10}, snake.Position{X: 9, Y: 10}, snake.Position{X: 8, Y: 10})
	before := s
	before.Snake = append([]snake.Position(nil), s.Snake...)

	NewGreedy(rand.New(rand.NewSource(3))).Choose(s)

	if !s.Equal(before) {
		t.Error("Choose mutated its input")
	}
}

// An AI-driven run only ends by being boxed in, never by a reversal or an
// avoidable wall.
func TestGreedyRunStaysAlive(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	s, err := snake.NewState(20, snake.Bounded, snake.DefaultRules(), rng)
	if err != nil {
		t.Fatalf("NewState() failed: %v", err)
	}
	g := NewGreedy(rng)

	for i := 0; i < 500 && !s.GameOver; i++ {
		hadSafe := len(Safe(s)) > 0
		s = snake.Advance(snake.Turn(s, g.Choose(s)), rng)
		if s.GameOver && hadSafe {
			t.Fatalf("Snake died at step %d despite having a safe move", i)
		}
	}
	if s.Score == 0 {
		t.Error("Greedy policy never reached any food")
	}
}
