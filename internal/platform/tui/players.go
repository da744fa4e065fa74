package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/snake"
)

// playersChangedMsg is sent when the arena registry changes.
type playersChangedMsg struct{}

// waitForPlayers blocks until the registry signals a change or the watch is stopped.
func waitForPlayers(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return playersChangedMsg{}
	}
}

// PlayersModel lists the other connected players. Picking one starts an AI
// spectator run in that player's mode.
type PlayersModel struct {
	registry *arena.Registry
	self     arena.SessionID
	fallback snake.BoundaryMode
	players  []arena.Player
	table    table.Model
	keys     KeyMap
	help     help.Model
	width    int
	height   int

	watch     <-chan struct{}
	stopWatch func()

	chosen    *snake.BoundaryMode
	goingBack bool
	quitting  bool
}

// NewPlayersModel creates the picker. fallback is the mode used when nobody
// else is online.
func NewPlayersModel(reg *arena.Registry, self arena.SessionID, fallback snake.BoundaryMode, rt core.RuntimeConfig) PlayersModel {
	m := PlayersModel{
		registry: reg,
		self:     self,
		fallback: fallback,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		width:    rt.ScreenW,
		height:   rt.ScreenH,
	}
	m.watch, m.stopWatch = reg.Watch()
	m.table = m.createTable()
	m.refresh()
	return m
}

func (m *PlayersModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Player", Width: 16},
		{Title: "Mode", Width: 13},
		{Title: "Doing", Width: 11},
		{Title: "Score", Width: 7},
		{Title: "Best", Width: 7},
	}

	return newTable(columns, m.height-9)
}

// refresh reloads the player list, keeping the cursor in range.
func (m *PlayersModel) refresh() {
	all := m.registry.List()
	m.players = make([]arena.Player, 0, len(all))
	for _, p := range all {
		if p.ID != m.self {
			m.players = append(m.players, p)
		}
	}

	rows := make([]table.Row, len(m.players))
	for i, p := range m.players {
		rows[i] = table.Row{
			p.Username,
			p.Mode.Title(),
			p.Activity.String(),
			fmt.Sprintf("%d", p.Score),
			fmt.Sprintf("%d", p.Best),
		}
	}
	cursor := m.table.Cursor()
	m.table.SetRows(rows)
	m.table.SetCursor(core.Clamp(cursor, 0, max(0, len(rows)-1)))
}

// Init starts watching the registry.
func (m PlayersModel) Init() tea.Cmd {
	return waitForPlayers(m.watch)
}

// Update handles messages for the picker.
func (m PlayersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case playersChangedMsg:
		m.refresh()
		return m, waitForPlayers(m.watch)

	case tea.KeyMsg:
		switch m.keys.Action(msg) {
		case core.ActionQuit:
			m.Close()
			m.quitting = true
			return m, tea.Quit

		case core.ActionBack:
			m.Close()
			m.goingBack = true
			return m, nil

		case core.ActionConfirm:
			mode := m.fallback
			if i := m.table.Cursor(); i >= 0 && i < len(m.players) {
				mode = m.players[i].Mode
			}
			m.Close()
			m.chosen = &mode
			return m, nil

		case core.ActionUp:
			m.table.MoveUp(1)
			return m, nil

		case core.ActionDown:
			m.table.MoveDown(1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.refresh()
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// View renders the picker.
func (m PlayersModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("WATCH THE AI"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(subtitleStyle.Render("Pick a player to watch the AI in their mode"), m.width))
	b.WriteString("\n\n")

	if len(m.players) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4).
			Render(fmt.Sprintf("Nobody else is online.\nPress enter to watch in %s mode.", m.fallback.Title()))
		b.WriteString(panelStyle.Render(empty))
	} else {
		b.WriteString(panelStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.ShortHelpView([]key.Binding{m.keys.Up, m.keys.Down, m.keys.Confirm, m.keys.Back})))
	return b.String()
}

// Close stops watching the registry. Safe to call more than once.
func (m PlayersModel) Close() {
	if m.stopWatch != nil {
		m.stopWatch()
	}
}

// Chosen returns the mode to spectate, or nil if nothing was picked yet.
func (m PlayersModel) Chosen() *snake.BoundaryMode {
	return m.chosen
}

// IsGoingBack returns true if user wants to go back to menu.
func (m PlayersModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m PlayersModel) IsQuitting() bool {
	return m.quitting
}
