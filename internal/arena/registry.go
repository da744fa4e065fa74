// Package arena tracks the players connected to a shared snake-arena server
// so other sessions can list them and spectate in their mode.
package arena

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/snake-arena/internal/snake"
)

// SessionID uniquely identifies a connected session.
type SessionID string

// NewSessionID returns a fresh random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// Activity describes what a session is currently doing.
type Activity int

const (
	ActivityMenu Activity = iota
	ActivityPlaying
	ActivitySpectating
)

// String returns a human-readable name for the activity.
func (a Activity) String() string {
	switch a {
	case ActivityMenu:
		return "in menu"
	case ActivityPlaying:
		return "playing"
	case ActivitySpectating:
		return "spectating"
	default:
		return "unknown"
	}
}

// Player is a snapshot of one connected session.
type Player struct {
	ID       SessionID
	Username string
	Mode     snake.BoundaryMode
	Activity Activity
	Score    int // Score of the current or last run
	Best     int // Best score this session
	JoinedAt time.Time
}

// Registry tracks active sessions.
// Thread-safe for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	players  map[SessionID]*Player
	watchers map[chan struct{}]struct{}
	now      func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		players:  make(map[SessionID]*Player),
		watchers: make(map[chan struct{}]struct{}),
		now:      time.Now,
	}
}

// Join registers a new session and returns its ID.
func (r *Registry) Join(username string, mode snake.BoundaryMode) SessionID {
	id := NewSessionID()

	r.mu.Lock()
	r.players[id] = &Player{
		ID:       id,
		Username: username,
		Mode:     mode,
		JoinedAt: r.now(),
	}
	r.mu.Unlock()

	r.notify()
	return id
}

// SetActivity records what the session is doing and in which mode.
// A new run resets the current score.
func (r *Registry) SetActivity(id SessionID, activity Activity, mode snake.BoundaryMode) {
	r.mu.Lock()
	p, ok := r.players[id]
	if ok {
		if activity == ActivityPlaying {
			p.Score = 0
		}
		p.Activity = activity
		p.Mode = mode
	}
	r.mu.Unlock()

	if ok {
		r.notify()
	}
}

// Update records the current score of a session's run.
func (r *Registry) Update(id SessionID, score int) {
	r.mu.Lock()
	p, ok := r.players[id]
	changed := ok && p.Score != score
	if changed {
		p.Score = score
		p.Best = max(p.Best, score)
	}
	r.mu.Unlock()

	if changed {
		r.notify()
	}
}

// Leave removes a session. Unknown IDs are ignored.
func (r *Registry) Leave(id SessionID) {
	r.mu.Lock()
	_, ok := r.players[id]
	delete(r.players, id)
	r.mu.Unlock()

	if ok {
		r.notify()
	}
}

// Get returns a snapshot of one session.
func (r *Registry) Get(id SessionID) (Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// List returns snapshots of all sessions, highest score first.
// Ties are ordered by join time, then username.
func (r *Registry) List() []Player {
	r.mu.RLock()
	out := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, *p)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].Username < out[j].Username
	})
	return out
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// Watch returns a channel that receives a signal after registry changes,
// and a function that stops watching and closes the channel. Signals
// coalesce: a slow reader sees at most one pending signal.
func (r *Registry) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	r.mu.Lock()
	r.watchers[ch] = struct{}{}
	r.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.watchers, ch)
			r.mu.Unlock()
			close(ch)
		})
	}
}

func (r *Registry) notify() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for ch := range r.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
