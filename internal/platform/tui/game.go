package tui

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-arena/internal/ai"
	"github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/loop"
	"github.com/vovakirdan/snake-arena/internal/snake"
)

// restartMsg starts the next spectator run after the restart delay.
type restartMsg struct {
	source uint64
	run    int
}

var screenshotKey = key.NewBinding(key.WithKeys("ctrl+s"))

// GameModel runs one snake loop inside Bubble Tea, either driven by the
// player's keys or, when spectating, by the greedy AI.
type GameModel struct {
	deps     Deps
	rt       core.RuntimeConfig
	mode     snake.BoundaryMode
	spectate bool

	loop     *loop.Loop
	frames   *teaFrames
	reporter *scoreReporter
	screen   *core.Screen
	keys     KeyMap
	help     help.Model

	best             int
	run              int
	restartScheduled bool
	exitOnBack       bool
	quitting         bool
	backToMenu       bool
}

// NewGameModel creates a game view for mode. The loop starts in Init.
func NewGameModel(deps Deps, rt core.RuntimeConfig, mode snake.BoundaryMode, spectate bool) (GameModel, error) {
	seed := rt.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := deps.logger()

	m := GameModel{
		deps:     deps,
		rt:       rt,
		mode:     mode,
		spectate: spectate,
		frames:   newTeaFrames(deps.Config.FrameInterval()),
		screen:   core.NewScreen(rt.ScreenW, rt.ScreenH-1),
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
	m.help.Width = rt.ScreenW

	cfg := loop.Config{
		Size:   deps.Config.Board.Size,
		Mode:   mode,
		Rules:  deps.Config.Rules(),
		Rand:   rand.New(rand.NewSource(seed)),
		Frames: m.frames,
		Logger: logger.WithPrefix("loop"),
	}
	if spectate {
		cfg.Policy = ai.NewGreedy(rand.New(rand.NewSource(seed + 1)))
	} else {
		m.reporter = &scoreReporter{
			store:  deps.Store,
			player: deps.Player,
			size:   deps.Config.Board.Size,
			log:    logger,
		}
		cfg.Reporter = m.reporter
		if deps.Store != nil {
			if best, err := deps.Store.BestScore(deps.Player, string(mode)); err == nil {
				m.best = best
			}
		}
	}
	if deps.Arena != nil && deps.SessionID != "" {
		reg, id := deps.Arena, deps.SessionID
		cfg.OnStep = func(s snake.State) { reg.Update(id, s.Score) }
	}

	l, err := loop.New(cfg)
	if err != nil {
		return GameModel{}, fmt.Errorf("tui: cannot start game: %w", err)
	}
	m.loop = l
	m.markActivity()
	return m, nil
}

func (m GameModel) markActivity() {
	if m.deps.Arena == nil || m.deps.SessionID == "" {
		return
	}
	activity := arena.ActivityPlaying
	if m.spectate {
		activity = arena.ActivitySpectating
	}
	m.deps.Arena.SetActivity(m.deps.SessionID, activity, m.mode)
}

// Init starts the loop.
func (m GameModel) Init() tea.Cmd {
	m.loop.Start()
	return m.frames.Cmd()
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.rt.ScreenW = msg.Width
		m.rt.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		if !m.frames.Deliver(msg) {
			return m, nil
		}
		return m.afterFrame()

	case restartMsg:
		if msg.source == m.frames.source && msg.run == m.run && m.loop.State().GameOver {
			m.restart()
		}
		return m, m.frames.Cmd()
	}

	return m, nil
}

func (m GameModel) afterFrame() (tea.Model, tea.Cmd) {
	s := m.loop.State()
	m.best = max(m.best, s.Score)

	cmds := []tea.Cmd{m.frames.Cmd()}
	if s.GameOver && m.spectate && !m.restartScheduled {
		m.restartScheduled = true
		source, run := m.frames.source, m.run
		cmds = append(cmds, tea.Tick(m.deps.Config.RestartDelay(), func(time.Time) tea.Msg {
			return restartMsg{source: source, run: run}
		}))
	}
	return m, tea.Batch(cmds...)
}

func (m *GameModel) restart() {
	if err := m.loop.Reset(m.mode); err != nil {
		m.deps.logger().Error("could not restart run", "error", err)
		return
	}
	m.run++
	m.restartScheduled = false
	m.markActivity()
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, screenshotKey) && m.deps.Screenshots {
		m.saveScreenshot()
		return m, nil
	}

	s := m.loop.State()
	action := m.keys.Action(msg)

	switch action {
	case core.ActionQuit:
		m.loop.Stop()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if s.GameOver || s.Paused || m.spectate {
			m.loop.Stop()
			if m.exitOnBack {
				m.quitting = true
				return m, tea.Quit
			}
			m.backToMenu = true
			return m, nil
		}

	case core.ActionPause:
		m.loop.TogglePause()

	case core.ActionRestart:
		if s.GameOver {
			m.restart()
		}

	default:
		if d, ok := DirectionFor(action); ok {
			m.loop.Turn(d)
		}
	}

	return m, m.frames.Cmd()
}

// saveScreenshot writes the current board as plain text.
func (m *GameModel) saveScreenshot() {
	DrawBoard(m.screen, m.loop.State(), m.boardView())

	dir := filepath.Join(config.DataDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.deps.logger().Warn("could not create screenshot dir", "error", err)
		return
	}

	name := fmt.Sprintf("snake_%s_%s.txt", m.mode, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.deps.logger().Warn("could not save screenshot", "error", err)
		return
	}
	m.deps.logger().Info("screenshot saved", "path", path)
}

func (m GameModel) boardView() BoardView {
	v := BoardView{Title: "Snake", Best: m.best, Spectate: m.spectate}
	if m.deps.Player != "" && !m.spectate {
		v.Title = m.deps.Player
	}
	if m.reporter != nil {
		v.Banner = m.reporter.Banner()
	}
	return v
}

// View renders the board and a help line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	DrawBoard(m.screen, m.loop.State(), m.boardView())

	var bindings []key.Binding
	if m.spectate {
		bindings = m.keys.SpectatorHelp()
	} else {
		bindings = m.keys.ShortHelp()
	}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.ShortHelpView(bindings))
}

// State returns the latest snapshot of the running loop.
func (m GameModel) State() snake.State {
	return m.loop.State()
}

// Close stops the loop.
func (m GameModel) Close() {
	m.loop.Stop()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunGame runs a single play or spectate session until the user quits.
func RunGame(deps Deps, rt core.RuntimeConfig, mode snake.BoundaryMode, spectate bool) error {
	model, err := NewGameModel(deps, rt, mode, spectate)
	if err != nil {
		return err
	}
	model.exitOnBack = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
