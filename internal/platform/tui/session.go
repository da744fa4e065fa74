package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/snake"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

// Deps carries what every screen of a session needs.
type Deps struct {
	Config config.Config
	Store  *storage.Store // may be nil, scores are then not recorded

	// Arena is set for SSH sessions so players can see each other.
	Arena     *arena.Registry
	SessionID arena.SessionID

	Player      string
	Screenshots bool
	Logger      *log.Logger

	// Live, when set, always holds the newest model of the session.
	Live *LiveSession
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}

// LiveSession tracks the newest SessionModel of a running program so the
// owner can release it after the program has exited.
type LiveSession struct {
	mu     sync.Mutex
	model  SessionModel
	ok     bool
	closed bool
}

func (l *LiveSession) store(m SessionModel) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.model, l.ok = m, true
	}
}

// Close releases the newest model. Later calls do nothing.
func (l *LiveSession) Close() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	if l.ok {
		l.model.Close()
	}
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
	screenPlayers
)

// SessionModel manages the full session flow: menu -> game/scores/players -> menu.
// It is the top-level model for both local and SSH sessions.
type SessionModel struct {
	deps     Deps
	rt       core.RuntimeConfig
	screen   sessionScreen
	menu     MenuModel
	game     GameModel
	scores   ScoreboardModel
	players  PlayersModel
	quitting bool
}

// NewSessionModel creates a new session model starting at the menu.
func NewSessionModel(deps Deps, rt core.RuntimeConfig) SessionModel {
	m := SessionModel{deps: deps, rt: rt}
	m.menu = m.newMenu()
	deps.Live.store(m)
	return m
}

func (m SessionModel) newMenu() MenuModel {
	online := 0
	if m.deps.Arena != nil {
		online = m.deps.Arena.Count()
	}
	return NewMenuModel(DefaultMenuItems(m.deps.Config.Mode()), m.rt, m.deps.Player, online)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.route(msg)
	if sm, ok := next.(SessionModel); ok {
		sm.deps.Live.store(sm)
	}
	return next, cmd
}

func (m SessionModel) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.rt.ScreenW = wsm.Width
		m.rt.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenPlayers:
		return m.updatePlayers(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	switch selected.Choice {
	case ChoicePlay:
		return m.startGame(selected.Mode, false)

	case ChoiceSpectate:
		if m.deps.Arena == nil {
			return m.startGame(selected.Mode, true)
		}
		m.players = NewPlayersModel(m.deps.Arena, m.deps.SessionID, selected.Mode, m.rt)
		m.screen = screenPlayers
		return m, m.players.Init()

	case ChoiceScores:
		m.scores = NewScoreboardModel(m.deps.Store, m.deps.Config.Mode(), m.deps.Player, m.rt.ScreenW, m.rt.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()
	}

	return m, cmd
}

func (m SessionModel) startGame(mode snake.BoundaryMode, spectate bool) (tea.Model, tea.Cmd) {
	game, err := NewGameModel(m.deps, m.rt, mode, spectate)
	if err != nil {
		m.deps.logger().Error("could not start game", "mode", mode, "error", err)
		return m.backToMenu()
	}
	m.game = game
	m.screen = screenGame
	return m, m.game.Init()
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	if m.deps.Arena != nil && m.deps.SessionID != "" {
		m.deps.Arena.SetActivity(m.deps.SessionID, arena.ActivityMenu, m.deps.Config.Mode())
	}
	m.screen = screenMenu
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game.Close()
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scores = sm
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updatePlayers(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.players.Update(msg)
	if pm, ok := next.(PlayersModel); ok {
		m.players = pm
	}

	if m.players.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.players.IsGoingBack() {
		return m.backToMenu()
	}
	if mode := m.players.Chosen(); mode != nil {
		return m.startGame(*mode, true)
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	case screenPlayers:
		return m.players.View()
	default:
		return m.menu.View()
	}
}

// Close releases whatever the active screen holds.
func (m SessionModel) Close() {
	switch m.screen {
	case screenGame:
		m.game.Close()
	case screenPlayers:
		m.players.Close()
	}
}

// RunSession runs the interactive menu locally until the user quits.
func RunSession(deps Deps, rt core.RuntimeConfig) error {
	p := tea.NewProgram(NewSessionModel(deps, rt), tea.WithAltScreen())
	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok {
		sm.Close()
	}
	return err
}

// RunScoreboard shows the scoreboard on its own.
func RunScoreboard(store *storage.Store, mode snake.BoundaryMode, player string, rt core.RuntimeConfig) error {
	model := NewScoreboardModel(store, mode, player, rt.ScreenW, rt.ScreenH)
	model.exitOnBack = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
