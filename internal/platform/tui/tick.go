// Package tui provides the Bubble Tea host for snake-arena: the play and
// spectate views, menus, the scoreboard and the Wish SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-arena/internal/loop"
)

// FrameMsg is the display refresh for one frame registration.
type FrameMsg struct {
	Source uint64
	ID     loop.FrameID
	Time   time.Time
}

var frameSources atomic.Uint64

// teaFrames adapts Bubble Tea's timer to loop.FrameSource.
// A registration becomes a tea.Tick command; the tick comes back through
// Update as a FrameMsg and fires the callback only if it is still current.
// Everything runs on the program's Update goroutine.
type teaFrames struct {
	source    uint64
	interval  time.Duration
	nextID    loop.FrameID
	pending   loop.FrameID
	scheduled loop.FrameID
	fn        loop.FrameFunc
}

func newTeaFrames(interval time.Duration) *teaFrames {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &teaFrames{source: frameSources.Add(1), interval: interval}
}

// RequestFrame implements loop.FrameSource.
func (f *teaFrames) RequestFrame(fn loop.FrameFunc) loop.FrameID {
	f.nextID++
	f.pending = f.nextID
	f.fn = fn
	return f.pending
}

// CancelFrame implements loop.FrameSource.
func (f *teaFrames) CancelFrame(id loop.FrameID) {
	if id != 0 && id == f.pending {
		f.pending = 0
		f.fn = nil
	}
}

// Cmd returns the tick command for a registration that has none yet.
func (f *teaFrames) Cmd() tea.Cmd {
	if f.pending == 0 || f.pending == f.scheduled {
		return nil
	}
	id, source := f.pending, f.source
	f.scheduled = id
	return tea.Tick(f.interval, func(t time.Time) tea.Msg {
		return FrameMsg{Source: source, ID: id, Time: t}
	})
}

// Deliver fires the registration named by msg. Stale and foreign frames are
// dropped. It reports whether a callback ran.
func (f *teaFrames) Deliver(msg FrameMsg) bool {
	if msg.Source != f.source || msg.ID == 0 || msg.ID != f.pending {
		return false
	}
	fn := f.fn
	f.pending = 0
	f.fn = nil
	fn(msg.Time)
	return true
}
