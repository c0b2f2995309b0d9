package parameter

import "time"

// Spawn Cadence
const (
	// MinSpawnRate is the spawn interval at level zero
	MinSpawnRate = 2000 * time.Millisecond

	// MaxSpawnRate is the spawn interval at the cap level
	MaxSpawnRate = 700 * time.Millisecond

	// SpawnRateCapLevel is the level where the spawn interval stops shrinking
	SpawnRateCapLevel = 8

	// SpawnRateStep re-arms the spawn timer every N points inside a level
	SpawnRateStep = 50
)

// Spawn Composition
const (
	MinBombChance = 0.05
	MaxBombChance = 0.25
	BombCapLevel  = 6

	GoldenChance = 0.02

	MinMultiChance = 0.1
	MaxMultiChance = 0.6
	MultiCapLevel  = 6
	MaxMultiCount  = 5

	// ChallengingPatternLevel unlocks hazard-laced multi patterns
	ChallengingPatternLevel  = 6
	ChallengingPatternChance = 0.3

	// ChaosPatternMinCount is the object count used by chaos patterns
	ChaosPatternMinCount = 5

	RapidBurstMin      = 3
	RapidBurstMax      = 6
	RapidBurstInterval = 200 * time.Millisecond
)

// Throw Pattern Progression
const (
	SideThrowStartLevel  = 3
	CrissCrossStartLevel = 6
	MaxChaosLevel        = 9
)

// Level Computation
const (
	// DifficultyInterval is the score span per score level
	DifficultyInterval = 100

	// TimeInterval is the elapsed round time per time level
	TimeInterval = 30000 * time.Millisecond

	// MaxTimeLevel caps the time level
	MaxTimeLevel = 10

	// MaxAnnouncedLevel stops difficulty notifications past this score level
	MaxAnnouncedLevel = 10

	// DifficultyCheckInterval is the controller evaluation period
	DifficultyCheckInterval = 1000 * time.Millisecond

	// GraceDuration is the easing period after a bonus sequence
	GraceDuration = 3000 * time.Millisecond

	// GraceMaxReduction is the level reduction at the start of grace
	GraceMaxReduction = 3
)

// Probabilistic Modes
const (
	BurstMinLevel    = 5
	BurstChance      = 0.02
	BurstDuration    = 10000 * time.Millisecond
	BurstSpawnFactor = 0.4
	RapidFireChance  = 0.5

	ChaosMinLevel    = 8
	ChaosChance      = 0.015
	ChaosDuration    = 15000 * time.Millisecond
	ChaosSpawnFactor = 0.3
	ChaosSpawnChance = 0.5
)
