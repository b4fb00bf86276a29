package engine

import (
	"context"
	"time"
)

// TickFunc advances the game by dt of game time, returns false to stop the loop
type TickFunc func(dt time.Duration) bool

// Loop drives a TickFunc on a fixed real-time interval
// Deltas are measured on the pausable clock so pause freezes simulation
type Loop struct {
	clock    *PausableClock
	interval time.Duration
	tick     TickFunc

	lastGame  time.Duration
	tickCount uint64
}

// NewLoop creates a frame loop
func NewLoop(clock *PausableClock, interval time.Duration, tick TickFunc) *Loop {
	return &Loop{
		clock:    clock,
		interval: interval,
		tick:     tick,
	}
}

// Run blocks until ctx is done or the tick function returns false
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.lastGame = l.clock.Elapsed()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !l.Step() {
				return nil
			}
		}
	}
}

// Step runs one tick with the game time elapsed since the previous step
func (l *Loop) Step() bool {
	now := l.clock.Elapsed()
	dt := now - l.lastGame
	l.lastGame = now
	if dt < 0 {
		dt = 0
	}
	l.tickCount++
	return l.tick(dt)
}

// TickCount returns the number of completed steps
func (l *Loop) TickCount() uint64 {
	return l.tickCount
}
