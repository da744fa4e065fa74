package snake

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

// stateAt builds a running state with the given body and food on a 20x20 board.
func stateAt(mode BoundaryMode, dir Direction, food Position, body ...Position) State {
	rules := DefaultRules()
	return State{
		Snake:        body,
		Food:         food,
		Direction:    dir,
		Mode:         mode,
		TickInterval: rules.InitialInterval,
		Size:         20,
		Rules:        rules,
	}
}

func TestNewState(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s, err := NewState(20, Wrapping, DefaultRules(), rng)
	if err != nil {
		t.Fatalf("NewState() failed: %v", err)
	}

	want := []Position{{10, 10}, {9, 10}, {8, 10}}
	if s.Len() != len(want) {
		t.Fatalf("Expected snake length %d, got %d", len(want), s.Len())
	}
	for i, p := range want {
		if s.Snake[i] != p {
			t.Errorf("Segment %d: expected %v, got %v", i, p, s.Snake[i])
		}
	}
	if s.Direction != Right {
		t.Errorf("Expected initial direction Right, got %v", s.Direction)
	}
	if s.Score != 0 || s.GameOver || s.Paused {
		t.Errorf("Expected clean state, got score=%d over=%v paused=%v", s.Score, s.GameOver, s.Paused)
	}
	if s.TickInterval != 150*time.Millisecond {
		t.Errorf("Expected 150ms interval, got %v", s.TickInterval)
	}
	if Occupies(s.Snake, s.Food) || HitsWall(s.Food, s.Size) {
		t.Errorf("Initial food misplaced at %v", s.Food)
	}
}

func TestNewStateRejectsBadInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := NewState(MinBoardSize-1, Bounded, DefaultRules(), rng); err == nil {
		t.Error("Expected error for undersized board")
	}
	if _, err := NewState(20, BoundaryMode("spiral"), DefaultRules(), rng); err == nil {
		t.Error("Expected error for unknown mode")
	}
}

func TestProject(t *testing.T) {
	const n = 20
	tests := []struct {
		name string
		from Position
		dir  Direction
		mode BoundaryMode
		want Position
	}{
		{"up", Position{10, 10}, Up, Bounded, Position{10, 9}},
		{"down", Position{10, 10}, Down, Bounded, Position{10, 11}},
		{"left", Position{10, 10}, Left, Bounded, Position{9, 10}},
		{"right", Position{10, 10}, Right, Bounded, Position{11, 10}},
		{"bounded keeps left overflow", Position{0, 10}, Left, Bounded, Position{-1, 10}},
		{"bounded keeps right overflow", Position{19, 10}, Right, Bounded, Position{20, 10}},
		{"wrap left edge", Position{0, 10}, Left, Wrapping, Position{19, 10}},
		{"wrap right edge", Position{19, 10}, Right, Wrapping, Position{0, 10}},
		{"wrap top edge", Position{10, 0}, Up, Wrapping, Position{10, 19}},
		{"wrap bottom edge", Position{10, 19}, Down, Wrapping, Position{10, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Project(tc.from, tc.dir, tc.mode, n)
			if got != tc.want {
				t.Errorf("Project(%v, %v, %s) = %v, expected %v", tc.from, tc.dir, tc.mode, got, tc.want)
			}
		})
	}
}

// Head at the right edge in bounded mode dies; snake and score stay frozen.
func TestAdvanceBoundedWall(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := stateAt(Bounded, Right, Position{0, 0}, Position{19, 10}, Position{18, 10}, Position{17, 10})
	s.Score = 30

	next := Advance(s, rng)

	if !next.GameOver {
		t.Fatal("Expected game over after hitting the right wall")
	}
	if next.Score != 30 {
		t.Errorf("Score changed on death: %d", next.Score)
	}
	frozen := s
	frozen.GameOver = true
	if !next.Equal(frozen) {
		t.Errorf("Terminal state should only flip GameOver, got %+v", next)
	}
}

// Same input in wrapping mode comes out on the left edge.
func TestAdvanceWrapping(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := stateAt(Wrapping, Right, Position{0, 0}, Position{19, 10}, Position{18, 10}, Position{17, 10})

	next := Advance(s, rng)

	if next.GameOver {
		t.Fatal("Wrapping move should not end the game")
	}
	if next.Head() != (Position{0, 10}) {
		t.Errorf("Expected head at (0,10), got %v", next.Head())
	}
	if next.Len() != 3 {
		t.Errorf("Expected length 3, got %d", next.Len())
	}
}

func TestAdvanceEatsFood(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	s := stateAt(Bounded, Right, Position{11, 10}, Position{10, 10}, Position{9, 10}, Position{8, 10})

	next := Advance(s, rng)

	want := []Position{{11, 10}, {10, 10}, {9, 10}, {8, 10}}
	if next.Len() != len(want) {
		t.Fatalf("Expected length %d, got %d", len(want), next.Len())
	}
	for i, p := range want {
		if next.Snake[i] != p {
			t.Errorf("Segment %d: expected %v, got %v", i, p, next.Snake[i])
		}
	}
	if next.Score != s.Score+10 {
		t.Errorf("Expected score +10, got %d", next.Score)
	}
	if Occupies(want, next.Food) {
		t.Errorf("New food %v placed on snake", next.Food)
	}
	if next.TickInterval != s.TickInterval-2*time.Millisecond {
		t.Errorf("Expected interval to drop by 2ms, got %v", next.TickInterval)
	}
}

func TestAdvanceIntervalFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := stateAt(Bounded, Right, Position{11, 10}, Position{10, 10}, Position{9, 10}, Position{8, 10})
	s.TickInterval = 51 * time.Millisecond

	next := Advance(s, rng)

	if next.TickInterval != 50*time.Millisecond {
		t.Errorf("Expected interval floored at 50ms, got %v", next.TickInterval)
	}
}

func TestAdvanceSelfCollision(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	// Hook shape: moving up from (5,5) runs into (5,4).
	s := stateAt(Bounded, Up, Position{0, 0},
		Position{5, 5}, Position{6, 5}, Position{6, 4}, Position{5, 4}, Position{4, 4})

	next := Advance(s, rng)

	if !next.GameOver {
		t.Error("Expected self collision to end the game")
	}
	if next.Len() != s.Len() {
		t.Errorf("Snake changed on death: %d vs %d", next.Len(), s.Len())
	}
}

// The tail cell counts as occupied even though it would move this tick.
func TestAdvanceTailCellIsFatal(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s := stateAt(Wrapping, Up, Position{0, 0},
		Position{5, 5}, Position{6, 5}, Position{6, 4}, Position{5, 4})

	if next := Advance(s, rng); !next.GameOver {
		t.Error("Expected moving into the tail cell to end the game")
	}
}

func TestAdvanceNormalMoveKeepsLength(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	s := stateAt(Bounded, Down, Position{0, 0}, Position{3, 3}, Position{3, 2}, Position{3, 1})

	next := Advance(s, rng)

	if next.Len() != s.Len() {
		t.Errorf("Length changed: %d -> %d", s.Len(), next.Len())
	}
	if next.Head() != (Position{3, 4}) {
		t.Errorf("Expected head at (3,4), got %v", next.Head())
	}
	if next.Snake[next.Len()-1] != (Position{3, 2}) {
		t.Errorf("Tail should have been dropped, got %v", next.Snake[next.Len()-1])
	}
	if next.Food != s.Food || next.Score != s.Score {
		t.Error("Normal move should not touch food or score")
	}
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	body := []Position{{3, 3}, {3, 2}, {3, 1}}
	s := stateAt(Bounded, Down, Position{3, 4}, body...)
	before := append([]Position(nil), s.Snake...)

	Advance(s, rng)
	Advance(stateAt(Bounded, Down, Position{0, 0}, body...), rng)

	for i := range before {
		if s.Snake[i] != before[i] {
			t.Fatalf("Input snake mutated at %d: %v -> %v", i, before[i], s.Snake[i])
		}
	}
}

func TestAdvanceTerminalIsFixedPoint(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := stateAt(Bounded, Right, Position{0, 0}, Position{19, 10}, Position{18, 10}, Position{17, 10})

	over := Advance(s, rng)
	for i := 0; i < 5; i++ {
		again := Advance(over, rng)
		if !again.Equal(over) {
			t.Fatalf("Advance on terminal state changed it at iteration %d", i)
		}
	}
}

func TestAdvancePausedIsNoop(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := stateAt(Bounded, Right, Position{0, 0}, Position{5, 5}, Position{4, 5}, Position{3, 5})
	s.Paused = true

	if next := Advance(s, rng); !next.Equal(s) {
		t.Errorf("Paused state should not advance, got head %v", next.Head())
	}
}

func TestTurn(t *testing.T) {
	s := stateAt(Bounded, Right, Position{0, 0}, Position{5, 5}, Position{4, 5}, Position{3, 5})

	for _, d := range Directions {
		got := Turn(s, d)
		if d == Left {
			if !got.Equal(s) {
				t.Error("Reversal should leave state unchanged")
			}
			continue
		}
		if got.Direction != d {
			t.Errorf("Turn(%v) left direction %v", d, got.Direction)
		}
	}
}

func TestTurnReversalInvariant(t *testing.T) {
	base := stateAt(Wrapping, Up, Position{0, 0}, Position{5, 5}, Position{5, 6}, Position{5, 7})
	for _, d := range Directions {
		s := base
		s.Direction = d
		if got := Turn(s, d.Opposite()); !got.Equal(s) {
			t.Errorf("Turn(%v, %v) changed state", d, d.Opposite())
		}
	}
}

func TestTurnIgnoresFlags(t *testing.T) {
	s := stateAt(Bounded, Right, Position{0, 0}, Position{5, 5}, Position{4, 5}, Position{3, 5})
	s.GameOver = true
	if got := Turn(s, Up); got.Direction != Up {
		t.Error("Turn should not inspect the game over flag")
	}
}

func TestDeterminism(t *testing.T) {
	// Two runs with the same seed and inputs produce identical snapshots.
	run := func() State {
		rng := rand.New(rand.NewSource(12345))
		s, err := NewState(20, Wrapping, DefaultRules(), rng)
		if err != nil {
			t.Fatalf("NewState() failed: %v", err)
		}
		for i := 0; i < 200; i++ {
			switch i % 40 {
			case 10:
				s = Turn(s, Down)
			case 20:
				s = Turn(s, Left)
			case 30:
				s = Turn(s, Up)
			case 0:
				s = Turn(s, Right)
			}
			s = Advance(s, rng)
		}
		return s
	}

	a, b := run(), run()
	if !a.Equal(b) {
		t.Errorf("Runs diverged: score %d vs %d, head %v vs %v", a.Score, b.Score, a.Head(), b.Head())
	}
}

func TestAdvancePanicsWhenBoardFills(t *testing.T) {
	// 5x5 board filled except the food cell in front of the head.
	var body []Position
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if y%2 == 0 {
				body = append(body, Position{4 - x, y})
			} else {
				body = append(body, Position{x, y})
			}
		}
	}
	// Reverse so the head sits at the end of the serpentine.
	for i, j := 0, len(body)-1; i < j; i, j = i+1, j-1 {
		body[i], body[j] = body[j], body[i]
	}
	food := body[0]
	body = body[1:]

	s := State{
		Snake:        body,
		Food:         food,
		Direction:    Left,
		Mode:         Bounded,
		TickInterval: time.Second,
		Size:         5,
		Rules:        DefaultRules(),
	}
	if Project(s.Head(), s.Direction, s.Mode, s.Size) != food {
		t.Fatalf("Test setup: head %v does not face food %v", s.Head(), food)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Expected panic when no free cell remains")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrBoardFull) {
			t.Errorf("Expected ErrBoardFull panic, got %v", r)
		}
	}()
	Advance(s, rand.New(rand.NewSource(1)))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want BoundaryMode
		ok   bool
	}{
		{"bounded", Bounded, true},
		{"walls", Bounded, true},
		{"wrapping", Wrapping, true},
		{"pass-through", Wrapping, true},
		{"torus", "", false},
	}
	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		if (err == nil) != tc.ok || got != tc.want {
			t.Errorf("ParseMode(%q) = %q, %v", tc.in, got, err)
		}
	}
}
