package event

import "time"

// EventType represents the type of game notification
type EventType int

const (
	// EventTick is reserved for automatic FSM transitions
	EventTick EventType = iota

	// === Scoring ===

	// EventScoreChanged reports the new total score
	// Trigger: Slice batch, bonus ladder hit, spectacular bonus
	// Consumer: HUD, feed | Payload: *ScoreChangedPayload
	EventScoreChanged

	// EventLivesChanged reports the remaining life count
	// Trigger: Unsliced item left the playfield, round start
	// Consumer: HUD, audio | Payload: *LivesChangedPayload
	EventLivesChanged

	// EventComboChanged reports the windowed combo counter
	// Trigger: Slice batch, combo window expiry, life loss
	// Consumer: HUD | Payload: *ComboChangedPayload
	EventComboChanged

	// EventStreakChanged reports the consecutive slice streak
	// Trigger: Slice, bonus ladder hit, life loss
	// Consumer: HUD | Payload: *StreakChangedPayload
	EventStreakChanged

	// EventSliceQuality classifies a single sliced object
	// Trigger: Slice resolver, once per ordinary object
	// Consumer: HUD, audio | Payload: *SliceQualityPayload
	EventSliceQuality

	// EventSpectacularSlice reports a large single-segment batch
	// Trigger: Batch size at or above the spectacular threshold
	// Consumer: HUD, audio | Payload: *SpectacularPayload
	EventSpectacularSlice

	// EventNearMiss reports an object the blade passed close to
	// Trigger: Pointer move with no hits
	// Consumer: HUD | Payload: *NearMissPayload
	EventNearMiss

	// === Round Lifecycle ===

	// EventRoundStarted marks a fresh round
	// Trigger: Engine construction, restart
	// Consumer: HUD, feed | Payload: *RoundStartedPayload
	EventRoundStarted

	// EventRoundOver is emitted exactly once per round
	// Trigger: Lives exhausted, hazard sliced
	// Consumer: HUD, feed, audio | Payload: *RoundOverPayload
	EventRoundOver

	// EventObjectSpawned reports a new live object
	// Trigger: Spawn timer
	// Consumer: Feed | Payload: *ObjectPayload
	EventObjectSpawned

	// EventObjectMissed reports an unsliced item that left the playfield
	// Trigger: Lifecycle bounds check
	// Consumer: HUD, audio | Payload: *ObjectPayload
	EventObjectMissed

	// EventHazardHit reports a sliced hazard
	// Trigger: Slice resolver
	// Consumer: HUD, audio | Payload: *ObjectPayload
	EventHazardHit

	// EventPaused signals the engine stopped advancing
	// Trigger: Engine.Pause | Payload: nil
	EventPaused

	// EventResumed signals the engine advances again
	// Trigger: Engine.Resume | Payload: nil
	EventResumed

	// === Bonus ===

	// EventBonusStarted reports a bonus item entering its hit ladder
	// Trigger: Bonus item sliced during ordinary play
	// Consumer: HUD, audio | Payload: *ObjectPayload
	EventBonusStarted

	// EventBonusProgress reports one ladder hit
	// Trigger: Bonus hit inside the active window
	// Consumer: HUD, audio | Payload: *BonusProgressPayload
	EventBonusProgress

	// EventBonusFinished reports the ladder result
	// Trigger: Ladder complete or window expired
	// Consumer: HUD | Payload: *BonusFinishedPayload
	EventBonusFinished

	// EventAutoSlice reports objects neutralized when a bonus engaged
	// Trigger: Bonus entry | Payload: *AutoSlicePayload
	EventAutoSlice

	// === Difficulty & Modes ===

	// EventModeActivated reports a timed mode switching on
	// Trigger: Combo threshold, perfect streak, probabilistic roll
	// Consumer: HUD, audio | Payload: *ModePayload
	EventModeActivated

	// EventModeDeactivated reports a timed mode expiring
	// Trigger: Mode expiry timer | Payload: *ModePayload
	EventModeDeactivated

	// EventDifficultyIncreased reports a new score level
	// Trigger: Difficulty controller | Payload: *DifficultyPayload
	EventDifficultyIncreased

	// EventTimeDifficultyIncreased reports a new time level
	// Trigger: Difficulty controller | Payload: *DifficultyPayload
	EventTimeDifficultyIncreased
)

// GameEvent is a single outbound notification
// At is the round-relative game time at emission
type GameEvent struct {
	Type    EventType
	Payload any
	At      time.Duration
}

// Emitter receives engine notifications
type Emitter interface {
	Emit(ev GameEvent)
}

// EmitterFunc adapts a function to Emitter
type EmitterFunc func(ev GameEvent)

func (f EmitterFunc) Emit(ev GameEvent) { f(ev) }

// Discard drops every notification
var Discard Emitter = EmitterFunc(func(GameEvent) {})
