package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// GameUpdateInterval is the simulation tick interval
	GameUpdateInterval = 16 * time.Millisecond

	// MaxTickDelta caps a single Advance step so a stalled loop cannot tunnel objects off screen
	MaxTickDelta = 100 * time.Millisecond

	// SubmitQueueSize is the buffered capacity of the loop work channel
	SubmitQueueSize = 256
)

// Event Queue Limits
const (
	// EventQueueSize caps pending notifications between loop dispatches
	EventQueueSize = 2048
)

// Persistence
const (
	// StoreTimeout bounds every persistence shim call made by the engine
	StoreTimeout = 2 * time.Second

	// DefaultPlayerID keys persisted records when no player is configured
	DefaultPlayerID = "local"
)
