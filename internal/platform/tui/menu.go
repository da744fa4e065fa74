package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/snake"
)

// MenuChoice is what the user picked in the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceSpectate
	ChoiceScores
	ChoiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Title  string
	Choice MenuChoice
	Mode   snake.BoundaryMode
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	keys     KeyMap
	player   string
	online   int
	selected *MenuItem
	quitting bool
}

// DefaultMenuItems lists a play entry per mode, then spectate, scores and quit.
func DefaultMenuItems(spectateMode snake.BoundaryMode) []MenuItem {
	items := make([]MenuItem, 0, len(snake.Modes)+3)
	for _, mode := range snake.Modes {
		items = append(items, MenuItem{Title: "Play - " + mode.Title(), Choice: ChoicePlay, Mode: mode})
	}
	return append(items,
		MenuItem{Title: "Watch the AI", Choice: ChoiceSpectate, Mode: spectateMode},
		MenuItem{Title: "High Scores", Choice: ChoiceScores},
		MenuItem{Title: "Quit", Choice: ChoiceQuit},
	)
}

// NewMenuModel creates a new menu model.
func NewMenuModel(items []MenuItem, rt core.RuntimeConfig, player string, online int) MenuModel {
	return MenuModel{
		items:  items,
		width:  rt.ScreenW,
		height: rt.ScreenH,
		keys:   DefaultKeyMap(),
		player: player,
		online: online,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit, core.ActionBack:
		m.quitting = true
		return m, tea.Quit

	case core.ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case core.ActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case core.ActionConfirm, core.ActionPause:
		if len(m.items) == 0 {
			return m, nil
		}
		selected := m.items[m.cursor]
		if selected.Choice == ChoiceQuit {
			m.quitting = true
			return m, tea.Quit
		}
		m.selected = &selected
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S N A K E   A R E N A"), m.width))
	b.WriteString("\n\n")

	sub := "Eat, grow, don't bite yourself"
	if m.player != "" {
		sub = "Welcome, " + m.player
	}
	if m.online > 1 {
		sub += fmt.Sprintf("  ·  %d online", m.online)
	}
	b.WriteString(centerText(subtitleStyle.Render(sub), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = selectedStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("↑/↓: navigate  enter: select  q: quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}
