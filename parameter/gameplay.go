package parameter

import "time"

// Round timing
const (
	// ShowWordDuration is how long the word is presented before input opens
	ShowWordDuration = 2000 * time.Millisecond

	// MissTimeout advances the round when a launched word never touches the building
	MissTimeout = 3000 * time.Millisecond

	// SettleDelay is the wait after an impact before the building is evaluated
	SettleDelay = 2500 * time.Millisecond

	// ThresholdDelay is the wait between a polled threshold crossing and level completion
	ThresholdDelay = 600 * time.Millisecond

	// LevelCompleteDelay precedes the transition to the next building
	LevelCompleteDelay = 1200 * time.Millisecond

	// VictoryDelay precedes the final game complete state
	VictoryDelay = 2000 * time.Millisecond

	// CameraPanDuration is the slide time between buildings
	CameraPanDuration = 1000 * time.Millisecond

	// ClearCleanupDelay lets cleared letters tumble off before removal
	ClearCleanupDelay = 1500 * time.Millisecond

	// RetireDelay is the lifetime of a spent projectile after impact or miss
	RetireDelay = 4000 * time.Millisecond

	// HearAgainReveal is how long the word is shown again on request
	HearAgainReveal = 800 * time.Millisecond

	// FeedbackDuration is how long the wrong-answer feedback stays visible
	FeedbackDuration = 1200 * time.Millisecond
)

// Aim sweep around the configured angle, in degrees and per-millisecond phase
const (
	AimSweepSpan = 10.0
	AimSweepRate = 0.0025
)

// Session limits
const (
	MinSessionLength     = 4
	MaxSessionLength     = 24
	DefaultSessionLength = 8

	MinTier = 1
	MaxTier = 5

	// DefaultBonusStreak is the clean-round streak at which the bonus applies
	DefaultBonusStreak = 3
)
