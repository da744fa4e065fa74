package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/snake"
)

func TestPlayersCursorStaysInRange(t *testing.T) {
	reg := arena.NewRegistry()
	self := reg.Join("tester", snake.Bounded)
	ann := reg.Join("ann", snake.Bounded)
	bo := reg.Join("bo", snake.Wrapping)
	reg.Join("cy", snake.Wrapping)

	m := NewPlayersModel(reg, self, snake.Bounded, testRuntime())
	t.Cleanup(m.Close)

	for range 2 {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(PlayersModel)
	}
	if got := m.table.Cursor(); got != 2 {
		t.Fatalf("Cursor = %d, expected 2", got)
	}

	reg.Leave(ann)
	reg.Leave(bo)
	next, _ := m.Update(playersChangedMsg{})
	m = next.(PlayersModel)

	if len(m.players) != 1 {
		t.Fatalf("players = %+v, expected one left", m.players)
	}
	if got := m.table.Cursor(); got != 0 {
		t.Errorf("Cursor = %d, expected it clamped to the last row", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(PlayersModel)
	if chosen := m.Chosen(); chosen == nil || *chosen != snake.Wrapping {
		t.Errorf("Chosen = %v, expected cy's mode", chosen)
	}
}
