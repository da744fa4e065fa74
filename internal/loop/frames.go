package loop

import "time"

// Clock supplies wall-clock time to the loop.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// FrameFunc is invoked once per display refresh with the refresh timestamp.
type FrameFunc func(now time.Time)

// FrameID identifies a frame registration so it can be cancelled.
// The zero value never refers to a live registration.
type FrameID uint64

// FrameSource is the host's "call me again next refresh" capability.
// A registration fires at most once; the loop re-registers after each frame.
type FrameSource interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

// ManualFrames is a virtual clock and frame source driven by the caller.
// Tests use it as a fake display; the headless simulator uses it to run
// games as fast as the CPU allows.
type ManualFrames struct {
	now     time.Time
	nextID  FrameID
	pending FrameID
	fn      FrameFunc
}

// NewManualFrames creates a manual frame source starting at start.
func NewManualFrames(start time.Time) *ManualFrames {
	return &ManualFrames{now: start}
}

// Now returns the virtual time.
func (m *ManualFrames) Now() time.Time { return m.now }

// RequestFrame registers fn for the next Advance, replacing any earlier registration.
func (m *ManualFrames) RequestFrame(fn FrameFunc) FrameID {
	m.nextID++
	m.pending = m.nextID
	m.fn = fn
	return m.pending
}

// CancelFrame drops the registration if it is still pending.
func (m *ManualFrames) CancelFrame(id FrameID) {
	if id != 0 && id == m.pending {
		m.pending = 0
		m.fn = nil
	}
}

// Pending reports whether a frame registration is waiting.
func (m *ManualFrames) Pending() bool {
	return m.pending != 0
}

// Advance moves virtual time forward by d and fires the pending frame, if any.
// It reports whether a frame fired.
func (m *ManualFrames) Advance(d time.Duration) bool {
	m.now = m.now.Add(d)
	if m.pending == 0 {
		return false
	}
	fn := m.fn
	m.pending = 0
	m.fn = nil
	fn(m.now)
	return true
}
