package system

import (
	"time"

	"github.com/bearpark/bear-slice/component"
	"github.com/bearpark/bear-slice/config"
	"github.com/bearpark/bear-slice/parameter"
	"github.com/bearpark/bear-slice/vmath"
)

// SpawnOrder is one object the selector wants launched
type SpawnOrder struct {
	Index int
	Count int
	Delay time.Duration

	// Kind is honoured only when Forced; otherwise ChooseKind decides at launch
	Kind   component.Kind
	Forced bool

	// Pattern overrides the difficulty-gated throw pattern when set
	Pattern Pattern

	// Group names the batch layout, for notifications and tests
	Group string
}

// Batch layouts
const (
	GroupSingle         = "single"
	GroupMulti          = "multi"
	GroupChaos          = "chaos"
	GroupRapidFire      = "rapid-fire"
	GroupHazardSandwich = "hazard-sandwich"
	GroupHazardCross    = "criss-cross-hazards"
	GroupHazardFlanks   = "hazard-flanks"
)

// SpawnSelector decides what to spawn
// Every decision is a pure function of level, tuning and the RNG stream
type SpawnSelector struct {
	tuning *config.Tuning
	rng    *vmath.FastRand
}

// NewSpawnSelector creates a selector over the world's tuning and RNG
func NewSpawnSelector(w *World) *SpawnSelector {
	return &SpawnSelector{tuning: w.Tuning, rng: w.RNG}
}

// SelectVariant draws one variant with probability proportional to its weight
// Non-positive weights are never selected; ok is false when no weight is positive
func SelectVariant(variants []config.Variant, rng *vmath.FastRand) (v config.Variant, ok bool) {
	total := 0.0
	for _, c := range variants {
		if c.Weight > 0 {
			total += c.Weight
		}
	}
	if total <= 0 {
		return config.Variant{}, false
	}

	draw := rng.Float64() * total
	cumulative := 0.0
	last := -1
	for i, c := range variants {
		if c.Weight <= 0 {
			continue
		}
		cumulative += c.Weight
		last = i
		if cumulative >= draw {
			return c, true
		}
	}
	// Float rounding can leave draw marginally above the final sum
	return variants[last], true
}

// Variant draws from the configured table
func (s *SpawnSelector) Variant() config.Variant {
	v, _ := SelectVariant(s.tuning.Variants, s.rng)
	return v
}

// HazardChance is the per-object hazard probability at level
func (s *SpawnSelector) HazardChance(level int) float64 {
	t := s.tuning
	return vmath.Ease(float64(level), t.MinBombChance, t.MaxBombChance, float64(t.BombCapLevel))
}

// ChooseKind draws the kind of an unforced object
// A single uniform draw is compared against the hazard band, then the bonus band
func (s *SpawnSelector) ChooseKind(level int, bonusAllowed bool) component.Kind {
	hazard := s.HazardChance(level)
	r := s.rng.Float64()
	switch {
	case r < hazard:
		return component.KindHazard
	case r < hazard+s.tuning.GoldenChance && bonusAllowed:
		return component.KindBonus
	default:
		return component.KindItem
	}
}

// BatchSize draws the object count of one spawn tick
func (s *SpawnSelector) BatchSize(level int) int {
	t := s.tuning
	chance := vmath.Ease(float64(level), t.MinMultiChance, t.MaxMultiChance, float64(t.MultiCapLevel))
	maxCount := vmath.ClampInt(2+level/2, 2, t.MaxMultiCount)
	if s.rng.Float64() < chance {
		return s.rng.Between(2, maxCount)
	}
	return 1
}

// PlanBatch lays out one spawn tick
// Priority: chaos pattern, rapid-fire burst, challenging pattern, independent launches
func (s *SpawnSelector) PlanBatch(level int, modes *component.ModeSet) []SpawnOrder {
	t := s.tuning
	count := s.BatchSize(level)

	if modes.Active(component.ModeChaos) && s.rng.Float64() < t.ChaosSpawnChance {
		return s.chaosPattern(count)
	}
	if modes.Active(component.ModeBurst) && s.rng.Float64() < t.RapidFireChance {
		return s.rapidFire()
	}
	if level >= t.ChallengingPatternLevel && count > 1 && s.rng.Float64() < t.ChallengingPatternChance {
		return s.challengingPattern(count)
	}

	group := GroupSingle
	if count > 1 {
		group = GroupMulti
	}
	orders := make([]SpawnOrder, count)
	for i := range orders {
		orders[i] = SpawnOrder{Index: i, Count: count, Group: group}
	}
	return orders
}

func (s *SpawnSelector) chaosPattern(base int) []SpawnOrder {
	count := base
	if count < parameter.ChaosPatternMinCount {
		count = parameter.ChaosPatternMinCount
	}

	var orders []SpawnOrder
	switch s.rng.Intn(4) {
	case 0:
		for i := 0; i < count; i++ {
			orders = append(orders, SpawnOrder{Index: i, Count: count, Delay: time.Duration(i) * 150 * time.Millisecond, Pattern: PatternSpiral, Group: GroupChaos})
		}
	case 1:
		for i := 0; i < count; i++ {
			orders = append(orders, SpawnOrder{Index: i, Count: count, Delay: time.Duration(i) * 100 * time.Millisecond, Pattern: PatternWave, Group: GroupChaos})
		}
	case 2:
		for i := 0; i < count; i++ {
			kind := component.KindItem
			if s.rng.Float64() < 0.3 {
				kind = component.KindHazard
			}
			orders = append(orders, SpawnOrder{Index: i, Count: count, Delay: time.Duration(i) * 120 * time.Millisecond, Kind: kind, Forced: true, Group: GroupChaos})
		}
	default:
		// Pincer: paired launches from both corners
		half := (count + 1) / 2
		for i := 0; i < half; i++ {
			delay := time.Duration(i) * 150 * time.Millisecond
			orders = append(orders,
				SpawnOrder{Index: i, Count: count, Delay: delay, Pattern: PatternLeftToRight, Group: GroupChaos},
				SpawnOrder{Index: i, Count: count, Delay: delay, Pattern: PatternRightToLeft, Group: GroupChaos},
			)
		}
	}
	return orders
}

func (s *SpawnSelector) rapidFire() []SpawnOrder {
	n := s.rng.Between(parameter.RapidBurstMin, parameter.RapidBurstMax)
	orders := make([]SpawnOrder, n)
	for i := range orders {
		orders[i] = SpawnOrder{
			Index:  0,
			Count:  1,
			Delay:  time.Duration(i) * parameter.RapidBurstInterval,
			Kind:   component.KindItem,
			Forced: true,
			Group:  GroupRapidFire,
		}
	}
	return orders
}

func (s *SpawnSelector) challengingPattern(count int) []SpawnOrder {
	orders := make([]SpawnOrder, count)
	switch s.rng.Intn(3) {
	case 0:
		for i := range orders {
			kind := component.KindItem
			if i == count/2 {
				kind = component.KindHazard
			}
			orders[i] = SpawnOrder{Index: i, Count: count, Kind: kind, Forced: true, Group: GroupHazardSandwich}
		}
	case 1:
		for i := range orders {
			kind := component.KindItem
			if i%2 == 0 && s.rng.Float64() < 0.4 {
				kind = component.KindHazard
			}
			orders[i] = SpawnOrder{Index: i, Count: count, Kind: kind, Forced: true, Pattern: PatternCrissCross, Group: GroupHazardCross}
		}
	default:
		for i := range orders {
			kind := component.KindItem
			if (i == 0 || i == count-1) && s.rng.Float64() < 0.5 {
				kind = component.KindHazard
			}
			orders[i] = SpawnOrder{Index: i, Count: count, Kind: kind, Forced: true, Group: GroupHazardFlanks}
		}
	}
	return orders
}
