package parameter

import "time"

// Round & World Geometry
const (
	// StartingLives is the life count at round start
	StartingLives = 3

	// ScreenWidth is the logical playfield width in world units
	ScreenWidth = 1280

	// ScreenHeight is the logical playfield height in world units
	ScreenHeight = 720

	// ObjectSize is the nominal sprite size; hit radius derives from it
	ObjectSize = 100

	// HitRadiusFactor converts ObjectSize into the collision radius
	HitRadiusFactor = 0.75

	// BonusSizeFactor enlarges the bonus item relative to ordinary items
	BonusSizeFactor = 1.5

	// FallMargin is how far below the bottom edge an object may travel before removal
	FallMargin = 50

	// SideMargin is how far beyond either side an object may travel before removal
	SideMargin = 250

	// TopLimit is the y coordinate above which an object is removed
	TopLimit = -600
)

// Blade
const (
	// BladeWidth widens every collision radius by half its value
	BladeWidth = 20

	// BladeTrailLength is the bounded sample count kept for the blade trail
	BladeTrailLength = 10

	// NearMissMargin is the distance beyond the effective radius still reported as a near miss
	NearMissMargin = 15
)

// Physics
const (
	// Gravity is the base downward acceleration in units/s²
	Gravity = 900

	// GravityIncrease is the per-level relative gravity growth
	GravityIncrease = 0.03

	// SpeedIncrease is the per-level relative launch speed growth
	SpeedIncrease = 0.05

	// SpeedCap bounds the launch speed multiplier
	SpeedCap = 1.3

	// SpeedBoostChance is the probability of a boosted launch once unlocked
	SpeedBoostChance = 0.1

	// SpeedBoostFactor multiplies launch velocity for boosted objects
	SpeedBoostFactor = 1.25

	// SpeedBoostMinLevel unlocks boosted launches
	SpeedBoostMinLevel = 3

	// AngularVelocityScale maps launch speed to spin (speed/400 * 1.5)
	AngularVelocityScale = 1.5 / 400.0
)

// Scoring
const (
	// ComboTimeWindow resets the combo counter after this idle period
	ComboTimeWindow = 1000 * time.Millisecond

	// ComboMultiplier applies while the combo counter exceeds one
	ComboMultiplier = 1.5

	// PerfectSliceWindow qualifies a slice as perfect when it follows the previous slice this quickly
	PerfectSliceWindow = 150 * time.Millisecond

	// PerfectMultiplier applies to perfect slices
	PerfectMultiplier = 2.0

	// PerfectZoneRadius qualifies a slice as perfect near the screen centre
	PerfectZoneRadius = 200

	// SpectacularThreshold is the batch size that triggers the spectacular bonus
	SpectacularThreshold = 3

	// SpectacularBonus is awarded per object in a spectacular batch
	SpectacularBonus = 50
)

// Timed Modes
const (
	// FrenzyThreshold is the combo count that activates frenzy
	FrenzyThreshold = 10

	// FrenzyDuration is how long frenzy stays active
	FrenzyDuration = 8000 * time.Millisecond

	// FrenzyMultiplier scales slice points during frenzy
	FrenzyMultiplier = 2.0

	// FrenzySpawnFactor scales the spawn interval during frenzy
	FrenzySpawnFactor = 0.6

	// OnFireThreshold is the perfect slice count that activates on-fire
	OnFireThreshold = 5

	// OnFireDuration is how long on-fire stays active
	OnFireDuration = 5000 * time.Millisecond

	// OnFireWindow resets the perfect streak when no perfect slice follows in time
	OnFireWindow = 2000 * time.Millisecond

	// OnFireMultiplier scales slice points while on fire
	OnFireMultiplier = 1.0
)
