package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering and simulation tick interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond
)

// Event Queue Limits
const (
	// EventQueueSize is the event queue capacity, a power of two
	// One tick emits a handful of session events, the rest is headroom for pasted keys between ticks
	EventQueueSize = 256
)
