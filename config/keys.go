package config

import (
	"math"
	"time"

	"github.com/bearpark/bear-slice/parameter"
)

// rule constrains a single flat value
type rule int

const (
	ruleAny      rule = iota
	ruleNonNeg        // >= 0
	rulePositive      // > 0
	ruleProb          // [0,1]
)

// kind selects how a flat number is stored on Tuning
type kind int

const (
	kindFloat  kind = iota
	kindInt         // whole number
	kindMillis      // milliseconds → time.Duration
)

type field struct {
	key  string
	def  float64
	kind kind
	rule rule
	min  float64 // extra lower bound for ints; ignored when zero

	floatPtr  func(t *Tuning) *float64
	intPtr    func(t *Tuning) *int
	millisPtr func(t *Tuning) *time.Duration
}

func fl(key string, def float64, r rule, p func(t *Tuning) *float64) field {
	return field{key: key, def: def, kind: kindFloat, rule: r, floatPtr: p}
}

func in(key string, def float64, r rule, p func(t *Tuning) *int) field {
	return field{key: key, def: def, kind: kindInt, rule: r, intPtr: p}
}

func ms(key string, def time.Duration, r rule, p func(t *Tuning) *time.Duration) field {
	return field{key: key, def: float64(def / time.Millisecond), kind: kindMillis, rule: r, millisPtr: p}
}

func (f field) withMin(m float64) field {
	f.min = m
	return f
}

// fields is the complete set of flat tuning keys, in documentation order
var fields = []field{
	in("lives", parameter.StartingLives, rulePositive, func(t *Tuning) *int { return &t.Lives }),
	fl("screenWidth", parameter.ScreenWidth, rulePositive, func(t *Tuning) *float64 { return &t.ScreenWidth }),
	fl("screenHeight", parameter.ScreenHeight, rulePositive, func(t *Tuning) *float64 { return &t.ScreenHeight }),
	fl("objectSize", parameter.ObjectSize, rulePositive, func(t *Tuning) *float64 { return &t.ObjectSize }),
	fl("bladeWidth", parameter.BladeWidth, ruleNonNeg, func(t *Tuning) *float64 { return &t.BladeWidth }),
	in("bladeTrailLength", parameter.BladeTrailLength, rulePositive, func(t *Tuning) *int { return &t.BladeTrailLength }).withMin(2),
	fl("nearMissMargin", parameter.NearMissMargin, ruleNonNeg, func(t *Tuning) *float64 { return &t.NearMissMargin }),
	fl("fallMargin", parameter.FallMargin, ruleNonNeg, func(t *Tuning) *float64 { return &t.FallMargin }),
	fl("sideMargin", parameter.SideMargin, ruleNonNeg, func(t *Tuning) *float64 { return &t.SideMargin }),
	fl("topLimit", parameter.TopLimit, ruleAny, func(t *Tuning) *float64 { return &t.TopLimit }),

	fl("gravity", parameter.Gravity, ruleNonNeg, func(t *Tuning) *float64 { return &t.Gravity }),
	fl("gravityIncrease", parameter.GravityIncrease, ruleNonNeg, func(t *Tuning) *float64 { return &t.GravityIncrease }),
	fl("speedIncrease", parameter.SpeedIncrease, ruleNonNeg, func(t *Tuning) *float64 { return &t.SpeedIncrease }),
	fl("speedCap", parameter.SpeedCap, rulePositive, func(t *Tuning) *float64 { return &t.SpeedCap }),
	fl("speedBoostChance", parameter.SpeedBoostChance, ruleProb, func(t *Tuning) *float64 { return &t.SpeedBoostChance }),
	fl("speedBoostFactor", parameter.SpeedBoostFactor, rulePositive, func(t *Tuning) *float64 { return &t.SpeedBoostFactor }),
	in("speedBoostMinLevel", parameter.SpeedBoostMinLevel, ruleNonNeg, func(t *Tuning) *int { return &t.SpeedBoostMinLevel }),

	ms("minSpawnRate", parameter.MinSpawnRate, rulePositive, func(t *Tuning) *time.Duration { return &t.MinSpawnRate }),
	ms("maxSpawnRate", parameter.MaxSpawnRate, rulePositive, func(t *Tuning) *time.Duration { return &t.MaxSpawnRate }),
	in("spawnRateCapLevel", parameter.SpawnRateCapLevel, rulePositive, func(t *Tuning) *int { return &t.SpawnRateCapLevel }),
	fl("minBombChance", parameter.MinBombChance, ruleProb, func(t *Tuning) *float64 { return &t.MinBombChance }),
	fl("maxBombChance", parameter.MaxBombChance, ruleProb, func(t *Tuning) *float64 { return &t.MaxBombChance }),
	in("bombCapLevel", parameter.BombCapLevel, rulePositive, func(t *Tuning) *int { return &t.BombCapLevel }),
	fl("goldenChance", parameter.GoldenChance, ruleProb, func(t *Tuning) *float64 { return &t.GoldenChance }),
	fl("minMultiChance", parameter.MinMultiChance, ruleProb, func(t *Tuning) *float64 { return &t.MinMultiChance }),
	fl("maxMultiChance", parameter.MaxMultiChance, ruleProb, func(t *Tuning) *float64 { return &t.MaxMultiChance }),
	in("multiCapLevel", parameter.MultiCapLevel, rulePositive, func(t *Tuning) *int { return &t.MultiCapLevel }),
	in("maxMultiCount", parameter.MaxMultiCount, rulePositive, func(t *Tuning) *int { return &t.MaxMultiCount }).withMin(2),
	in("challengingPatternLevel", parameter.ChallengingPatternLevel, ruleNonNeg, func(t *Tuning) *int { return &t.ChallengingPatternLevel }),
	fl("challengingPatternChance", parameter.ChallengingPatternChance, ruleProb, func(t *Tuning) *float64 { return &t.ChallengingPatternChance }),
	in("sideThrowStartLevel", parameter.SideThrowStartLevel, ruleNonNeg, func(t *Tuning) *int { return &t.SideThrowStartLevel }),
	in("crissCrossStartLevel", parameter.CrissCrossStartLevel, ruleNonNeg, func(t *Tuning) *int { return &t.CrissCrossStartLevel }),
	in("maxChaosLevel", parameter.MaxChaosLevel, ruleNonNeg, func(t *Tuning) *int { return &t.MaxChaosLevel }),

	ms("comboTimeWindow", parameter.ComboTimeWindow, rulePositive, func(t *Tuning) *time.Duration { return &t.ComboTimeWindow }),
	fl("comboMultiplier", parameter.ComboMultiplier, rulePositive, func(t *Tuning) *float64 { return &t.ComboMultiplier }),
	ms("perfectSliceWindow", parameter.PerfectSliceWindow, ruleNonNeg, func(t *Tuning) *time.Duration { return &t.PerfectSliceWindow }),
	fl("perfectMultiplier", parameter.PerfectMultiplier, rulePositive, func(t *Tuning) *float64 { return &t.PerfectMultiplier }),
	fl("perfectZoneRadius", parameter.PerfectZoneRadius, ruleNonNeg, func(t *Tuning) *float64 { return &t.PerfectZoneRadius }),
	in("spectacularThreshold", parameter.SpectacularThreshold, rulePositive, func(t *Tuning) *int { return &t.SpectacularThreshold }),
	in("spectacularBonus", parameter.SpectacularBonus, ruleNonNeg, func(t *Tuning) *int { return &t.SpectacularBonus }),

	in("frenzyModeThreshold", parameter.FrenzyThreshold, rulePositive, func(t *Tuning) *int { return &t.FrenzyThreshold }),
	ms("frenzyModeDuration", parameter.FrenzyDuration, rulePositive, func(t *Tuning) *time.Duration { return &t.FrenzyDuration }),
	fl("frenzyModeMultiplier", parameter.FrenzyMultiplier, rulePositive, func(t *Tuning) *float64 { return &t.FrenzyMultiplier }),
	fl("frenzySpawnFactor", parameter.FrenzySpawnFactor, rulePositive, func(t *Tuning) *float64 { return &t.FrenzySpawnFactor }),
	in("onFireThreshold", parameter.OnFireThreshold, rulePositive, func(t *Tuning) *int { return &t.OnFireThreshold }),
	ms("onFireDuration", parameter.OnFireDuration, rulePositive, func(t *Tuning) *time.Duration { return &t.OnFireDuration }),
	ms("onFireWindow", parameter.OnFireWindow, rulePositive, func(t *Tuning) *time.Duration { return &t.OnFireWindow }),
	fl("onFireMultiplier", parameter.OnFireMultiplier, rulePositive, func(t *Tuning) *float64 { return &t.OnFireMultiplier }),
	in("burstMinLevel", parameter.BurstMinLevel, ruleNonNeg, func(t *Tuning) *int { return &t.BurstMinLevel }),
	fl("burstChance", parameter.BurstChance, ruleProb, func(t *Tuning) *float64 { return &t.BurstChance }),
	ms("burstDuration", parameter.BurstDuration, rulePositive, func(t *Tuning) *time.Duration { return &t.BurstDuration }),
	fl("burstSpawnFactor", parameter.BurstSpawnFactor, rulePositive, func(t *Tuning) *float64 { return &t.BurstSpawnFactor }),
	fl("rapidFireChance", parameter.RapidFireChance, ruleProb, func(t *Tuning) *float64 { return &t.RapidFireChance }),
	in("chaosMinLevel", parameter.ChaosMinLevel, ruleNonNeg, func(t *Tuning) *int { return &t.ChaosMinLevel }),
	fl("chaosChance", parameter.ChaosChance, ruleProb, func(t *Tuning) *float64 { return &t.ChaosChance }),
	ms("chaosDuration", parameter.ChaosDuration, rulePositive, func(t *Tuning) *time.Duration { return &t.ChaosDuration }),
	fl("chaosSpawnFactor", parameter.ChaosSpawnFactor, rulePositive, func(t *Tuning) *float64 { return &t.ChaosSpawnFactor }),
	fl("chaosSpawnChance", parameter.ChaosSpawnChance, ruleProb, func(t *Tuning) *float64 { return &t.ChaosSpawnChance }),

	in("difficultyInterval", parameter.DifficultyInterval, rulePositive, func(t *Tuning) *int { return &t.DifficultyInterval }),
	ms("timeInterval", parameter.TimeInterval, rulePositive, func(t *Tuning) *time.Duration { return &t.TimeInterval }),
	in("maxTimeLevel", parameter.MaxTimeLevel, ruleNonNeg, func(t *Tuning) *int { return &t.MaxTimeLevel }),
	ms("difficultyCheckInterval", parameter.DifficultyCheckInterval, rulePositive, func(t *Tuning) *time.Duration { return &t.DifficultyCheckInterval }),
	ms("graceDuration", parameter.GraceDuration, ruleNonNeg, func(t *Tuning) *time.Duration { return &t.GraceDuration }),
	fl("graceMaxReduction", parameter.GraceMaxReduction, ruleNonNeg, func(t *Tuning) *float64 { return &t.GraceMaxReduction }),

	fl("bonusHitRadius", parameter.BonusHitRadius, rulePositive, func(t *Tuning) *float64 { return &t.BonusHitRadius }),
	in("bonusPointsPerHit", parameter.BonusPointsPerHit, ruleNonNeg, func(t *Tuning) *int { return &t.BonusPointsPerHit }),
	in("bonusMaxHits", parameter.BonusMaxHits, rulePositive, func(t *Tuning) *int { return &t.BonusMaxHits }),
	ms("bonusHoverDuration", parameter.BonusHoverDuration, rulePositive, func(t *Tuning) *time.Duration { return &t.BonusHoverDuration }),
	ms("bonusSliceWindow", parameter.BonusSliceWindow, rulePositive, func(t *Tuning) *time.Duration { return &t.BonusSliceWindow }),
	ms("bonusWindowDecrement", parameter.BonusWindowDecrement, ruleNonNeg, func(t *Tuning) *time.Duration { return &t.BonusWindowDecrement }),
	ms("bonusMinWindow", parameter.BonusMinWindow, rulePositive, func(t *Tuning) *time.Duration { return &t.BonusMinWindow }),
	ms("bonusFinalizeDelay", parameter.BonusFinalizeDelay, ruleNonNeg, func(t *Tuning) *time.Duration { return &t.BonusFinalizeDelay }),
}

var fieldIndex = func() map[string]field {
	m := make(map[string]field, len(fields))
	for _, f := range fields {
		m[f.key] = f
	}
	return m
}()

// Keys returns every recognised flat key in documentation order
func Keys() []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.key
	}
	return keys
}

// check returns a problem description or empty string
func (f field) check(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "must be a finite number"
	}
	switch f.rule {
	case ruleNonNeg:
		if v < 0 {
			return "must be >= 0"
		}
	case rulePositive:
		if v <= 0 {
			return "must be > 0"
		}
	case ruleProb:
		if v < 0 || v > 1 {
			return "must be within [0,1]"
		}
	}
	if f.kind != kindFloat && v != math.Trunc(v) {
		return "must be a whole number"
	}
	if f.min != 0 && v < f.min {
		return "is below the minimum"
	}
	return ""
}

func (f field) apply(t *Tuning, v float64) {
	switch f.kind {
	case kindFloat:
		*f.floatPtr(t) = v
	case kindInt:
		*f.intPtr(t) = int(v)
	case kindMillis:
		*f.millisPtr(t) = time.Duration(v * float64(time.Millisecond))
	}
}

// read returns the flat form of the value currently stored on t
func (f field) read(t *Tuning) float64 {
	switch f.kind {
	case kindInt:
		return float64(*f.intPtr(t))
	case kindMillis:
		return float64(*f.millisPtr(t)) / float64(time.Millisecond)
	}
	return *f.floatPtr(t)
}
