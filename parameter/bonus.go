package parameter

import "time"

// Bonus Hit Ladder
const (
	// BonusHitRadius is the pointer distance required for a ladder hit
	BonusHitRadius = 80

	// BonusPointsPerHit is the ladder award for hits 1 through BonusMaxHits
	BonusPointsPerHit = 25

	// BonusMaxHits completes the ladder
	BonusMaxHits = 20

	// BonusHoverDuration is the initial window after the bonus is engaged
	BonusHoverDuration = 3000 * time.Millisecond

	// BonusSliceWindow is the window after the first ladder hit
	BonusSliceWindow = 1500 * time.Millisecond

	// BonusWindowDecrement shrinks the window per subsequent hit
	BonusWindowDecrement = 50 * time.Millisecond

	// BonusMinWindow floors the shrinking window
	BonusMinWindow = 100 * time.Millisecond

	// BonusFinalizeDelay is the pause between ladder end and spawn resumption
	BonusFinalizeDelay = 1500 * time.Millisecond

	// BonusHoverOffsetY lifts the engaged bonus above the screen centre
	BonusHoverOffsetY = 50
)

// Bonus Motion
const (
	// BonusHitsPerPhase advances the motion phase every N hits
	BonusHitsPerPhase = 2

	// BonusMaxPhase is the final motion phase
	BonusMaxPhase = 6

	// BonusMotionRadius bounds every motion phase's displacement from its origin
	BonusMotionRadius = 90
)
