package engine

import (
	"sync"
	"time"
)

// PausableClock is game time layered on a TimeProvider
// The loop derives tick deltas from it, so while paused the session gets
// zero-length ticks and scheduled callbacks stay put
type PausableClock struct {
	mu       sync.Mutex
	source   TimeProvider
	start    time.Time
	pausedAt time.Time // Zero while running
	paused   time.Duration
}

// NewPausableClock runs on the monotonic system clock
func NewPausableClock() *PausableClock {
	return NewPausableClockWith(NewMonotonicTimeProvider())
}

func NewPausableClockWith(source TimeProvider) *PausableClock {
	return &PausableClock{source: source, start: source.Now()}
}

// Elapsed is game time since creation, excluding pauses
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.elapsedLocked()
}

func (pc *PausableClock) elapsedLocked() time.Duration {
	now := pc.source.Now()
	if !pc.pausedAt.IsZero() {
		now = pc.pausedAt
	}
	return now.Sub(pc.start) - pc.paused
}

// Now is the creation time plus Elapsed
func (pc *PausableClock) Now() time.Time {
	return pc.start.Add(pc.Elapsed())
}

// Pause freezes game time, a no-op while paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.pausedAt.IsZero() {
		pc.pausedAt = pc.source.Now()
	}
}

// Resume restarts game time, a no-op while running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.pausedAt.IsZero() {
		pc.paused += pc.source.Now().Sub(pc.pausedAt)
		pc.pausedAt = time.Time{}
	}
}

// Toggle flips the pause state and returns true when now paused
func (pc *PausableClock) Toggle() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	now := pc.source.Now()
	if pc.pausedAt.IsZero() {
		pc.pausedAt = now
		return true
	}
	pc.paused += now.Sub(pc.pausedAt)
	pc.pausedAt = time.Time{}
	return false
}

func (pc *PausableClock) IsPaused() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return !pc.pausedAt.IsZero()
}

// GetTotalPauseDuration includes the pause in progress
func (pc *PausableClock) GetTotalPauseDuration() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	total := pc.paused
	if !pc.pausedAt.IsZero() {
		total += pc.source.Now().Sub(pc.pausedAt)
	}
	return total
}
