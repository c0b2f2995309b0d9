package config

import (
	"time"

	"github.com/bearpark/bear-slice/parameter"
)

// Tuning is the validated engine configuration
// Build it with FromMap or Load; the zero value is not usable
type Tuning struct {
	// Round & geometry
	Lives            int
	ScreenWidth      float64
	ScreenHeight     float64
	ObjectSize       float64
	BladeWidth       float64
	BladeTrailLength int
	NearMissMargin   float64
	FallMargin       float64
	SideMargin       float64
	TopLimit         float64

	// Physics
	Gravity            float64
	GravityIncrease    float64
	SpeedIncrease      float64
	SpeedCap           float64
	SpeedBoostChance   float64
	SpeedBoostFactor   float64
	SpeedBoostMinLevel int

	// Spawn cadence & composition
	MinSpawnRate             time.Duration
	MaxSpawnRate             time.Duration
	SpawnRateCapLevel        int
	MinBombChance            float64
	MaxBombChance            float64
	BombCapLevel             int
	GoldenChance             float64
	MinMultiChance           float64
	MaxMultiChance           float64
	MultiCapLevel            int
	MaxMultiCount            int
	ChallengingPatternLevel  int
	ChallengingPatternChance float64
	SideThrowStartLevel      int
	CrissCrossStartLevel     int
	MaxChaosLevel            int

	// Scoring
	ComboTimeWindow      time.Duration
	ComboMultiplier      float64
	PerfectSliceWindow   time.Duration
	PerfectMultiplier    float64
	PerfectZoneRadius    float64
	SpectacularThreshold int
	SpectacularBonus     int

	// Timed modes
	FrenzyThreshold   int
	FrenzyDuration    time.Duration
	FrenzyMultiplier  float64
	FrenzySpawnFactor float64
	OnFireThreshold   int
	OnFireDuration    time.Duration
	OnFireWindow      time.Duration
	OnFireMultiplier  float64
	BurstMinLevel     int
	BurstChance       float64
	BurstDuration     time.Duration
	BurstSpawnFactor  float64
	RapidFireChance   float64
	ChaosMinLevel     int
	ChaosChance       float64
	ChaosDuration     time.Duration
	ChaosSpawnFactor  float64
	ChaosSpawnChance  float64

	// Difficulty
	DifficultyInterval      int
	TimeInterval            time.Duration
	MaxTimeLevel            int
	DifficultyCheckInterval time.Duration
	GraceDuration           time.Duration
	GraceMaxReduction       float64

	// Bonus ladder
	BonusHitRadius       float64
	BonusPointsPerHit    int
	BonusMaxHits         int
	BonusHoverDuration   time.Duration
	BonusSliceWindow     time.Duration
	BonusWindowDecrement time.Duration
	BonusMinWindow       time.Duration
	BonusFinalizeDelay   time.Duration

	Variants []Variant
}

// HitRadius is the collision radius of an ordinary item or hazard
func (t *Tuning) HitRadius() float64 {
	return t.ObjectSize * parameter.HitRadiusFactor
}

// BonusRadius is the collision radius of the bonus item
func (t *Tuning) BonusRadius() float64 {
	return t.HitRadius() * parameter.BonusSizeFactor
}

// Values returns the flat key/value form of the current fields
func (t *Tuning) Values() map[string]float64 {
	out := make(map[string]float64, len(fields))
	for _, f := range fields {
		out[f.key] = f.read(t)
	}
	return out
}

// Value returns a single flat value
func (t *Tuning) Value(key string) (float64, bool) {
	f, ok := fieldIndex[key]
	if !ok {
		return 0, false
	}
	return f.read(t), true
}

// TotalWeight sums the variant weights
func (t *Tuning) TotalWeight() float64 {
	total := 0.0
	for _, v := range t.Variants {
		if v.Weight > 0 {
			total += v.Weight
		}
	}
	return total
}
