package engine

import (
	"sync"
	"time"
)

// PausableClock measures game time as wall time with every pause cut out
// Safe for concurrent use: the front-end pauses while the loop reads
type PausableClock struct {
	mu       sync.Mutex
	provider TimeProvider
	origin   time.Time

	pausedAt time.Time     // Zero while running
	frozen   time.Duration // Sum of completed pauses
	pauses   int
}

// NewPausableClock creates a clock reading the real monotonic time
func NewPausableClock() *PausableClock {
	return NewPausableClockWith(NewMonotonicTimeProvider())
}

// NewPausableClockWith creates a clock reading from provider
func NewPausableClockWith(provider TimeProvider) *PausableClock {
	return &PausableClock{provider: provider, origin: provider.Now()}
}

// Elapsed returns game time since creation; it does not move while paused
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	now := pc.pausedAt
	if now.IsZero() {
		now = pc.provider.Now()
	}
	return now.Sub(pc.origin) - pc.frozen
}

// Pause freezes game time; repeated calls are ignored
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.pausedAt.IsZero() {
		pc.pausedAt = pc.provider.Now()
		pc.pauses++
	}
}

// Resume restarts game time from where it froze
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.pausedAt.IsZero() {
		pc.frozen += pc.provider.Now().Sub(pc.pausedAt)
		pc.pausedAt = time.Time{}
	}
}

// IsPaused reports whether game time is frozen
func (pc *PausableClock) IsPaused() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return !pc.pausedAt.IsZero()
}

// TotalPauseDuration returns all time spent paused, including an open pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	total := pc.frozen
	if !pc.pausedAt.IsZero() {
		total += pc.provider.Now().Sub(pc.pausedAt)
	}
	return total
}

// Pauses returns how many times the clock was paused
func (pc *PausableClock) Pauses() int {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.pauses
}
