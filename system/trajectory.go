package system

import (
	"math"
	"time"

	"github.com/bearpark/bear-slice/component"
	"github.com/bearpark/bear-slice/config"
	"github.com/bearpark/bear-slice/parameter"
	"github.com/bearpark/bear-slice/vmath"
)

// Pattern names a throw shape
type Pattern string

const (
	PatternNone        Pattern = ""
	PatternClassic     Pattern = "classic"
	PatternLeftToRight Pattern = "left-to-right"
	PatternRightToLeft Pattern = "right-to-left"
	PatternCrissCross  Pattern = "criss-cross"
	PatternSideThrow   Pattern = "side-throw"
	PatternSpiral      Pattern = "spiral"
	PatternWave        Pattern = "wave"
)

// Launch is the initial kinematic state of one object
type Launch struct {
	Pattern    Pattern
	Pos        vmath.Vec2
	Vel        vmath.Vec2
	Gravity    float64
	AngularVel float64
	SpeedBoost bool
}

// TrajectoryGenerator turns spawn orders into launch states
type TrajectoryGenerator struct {
	tuning *config.Tuning
	rng    *vmath.FastRand
}

// NewTrajectoryGenerator creates a generator over the world's tuning and RNG
func NewTrajectoryGenerator(w *World) *TrajectoryGenerator {
	return &TrajectoryGenerator{tuning: w.Tuning, rng: w.RNG}
}

// PatternFor picks a throw pattern unlocked at level
func (g *TrajectoryGenerator) PatternFor(level, count int) Pattern {
	t := g.tuning
	switch {
	case level < t.SideThrowStartLevel:
		return pick(g.rng, PatternClassic, PatternClassic, PatternLeftToRight)
	case level < t.CrissCrossStartLevel:
		return pick(g.rng, PatternClassic, PatternLeftToRight, PatternRightToLeft, PatternSideThrow)
	case level >= t.MaxChaosLevel && count > 1:
		return pick(g.rng, PatternCrissCross, PatternCrissCross, PatternSideThrow, PatternLeftToRight, PatternRightToLeft)
	}

	pool := []Pattern{PatternClassic, PatternLeftToRight, PatternRightToLeft}
	if level >= t.SideThrowStartLevel {
		pool = append(pool, PatternSideThrow)
	}
	if level >= t.CrissCrossStartLevel {
		pool = append(pool, PatternCrissCross)
	}
	return pick(g.rng, pool...)
}

func pick(rng *vmath.FastRand, options ...Pattern) Pattern {
	return options[rng.Intn(len(options))]
}

// Generate computes the launch for one object
// effective gates the pattern; total scales speed and gravity
func (g *TrajectoryGenerator) Generate(order SpawnOrder, effective, total int) Launch {
	t := g.tuning
	pattern := order.Pattern
	if pattern == PatternNone {
		pattern = g.PatternFor(effective, order.Count)
	}

	pos, vel := g.throw(pattern, order.Index, order.Count)

	boost := false
	if total >= t.SpeedBoostMinLevel && g.rng.Float64() < t.SpeedBoostChance {
		vel = vel.Scale(t.SpeedBoostFactor)
		boost = true
	}

	spin := 1.0
	if vel.X < 0 {
		spin = -1
	}
	angular := vel.Len() * parameter.AngularVelocityScale * spin

	speedMult := math.Min(1+float64(total)*t.SpeedIncrease, t.SpeedCap)
	gravityMult := 1 + float64(total)*t.GravityIncrease

	return Launch{
		Pattern:    pattern,
		Pos:        pos,
		Vel:        vel.Scale(speedMult),
		Gravity:    t.Gravity * gravityMult,
		AngularVel: angular,
		SpeedBoost: boost,
	}
}

func (g *TrajectoryGenerator) throw(p Pattern, index, count int) (pos, vel vmath.Vec2) {
	w, h := g.tuning.ScreenWidth, g.tuning.ScreenHeight
	below := h + g.tuning.FallMargin
	r := g.rng

	switch p {
	case PatternLeftToRight:
		pos = vmath.V2(w*r.Range(0.05, 0.25), below)
		vel = vmath.FromPolar(float64(r.Between(50, 70)), float64(r.Between(750, 950)))

	case PatternRightToLeft:
		pos = vmath.V2(w*r.Range(0.75, 0.95), below)
		vel = vmath.FromPolar(float64(r.Between(110, 130)), float64(r.Between(750, 950)))

	case PatternCrissCross:
		if index%2 == 0 {
			pos = vmath.V2(w*r.Range(0, 0.15), below)
			vel = vmath.FromPolar(float64(r.Between(55, 75)), float64(r.Between(800, 1000)))
		} else {
			pos = vmath.V2(w*r.Range(0.85, 1), below)
			vel = vmath.FromPolar(float64(r.Between(105, 125)), float64(r.Between(800, 1000)))
		}

	case PatternSideThrow:
		y := h * r.Range(0.45, 0.65)
		vy := float64(r.Between(-450, -300))
		if r.Float64() < 0.5 {
			pos = vmath.V2(-g.tuning.FallMargin, y)
			vel = vmath.V2(float64(r.Between(500, 650)), vy)
		} else {
			pos = vmath.V2(w+g.tuning.FallMargin, y)
			vel = vmath.V2(float64(r.Between(-650, -500)), vy)
		}

	default:
		// Classic, and the spread used by spiral and wave layouts
		if count <= 1 {
			pos = vmath.V2(w*r.Range(0.3, 0.7), below)
			vel = vmath.FromPolar(float64(r.Between(80, 100)), float64(r.Between(800, 1000)))
		} else {
			step := (w * 0.6) / float64(max(count-1, 1))
			pos = vmath.V2(w*0.2+step*float64(index), below)
			vel = vmath.FromPolar(float64(r.Between(75, 105)), float64(r.Between(750, 950)))
		}
	}
	return pos, vel
}

// Build assembles a live object from a launch
func Build(t *config.Tuning, kind component.Kind, v config.Variant, l Launch, now time.Duration) *component.Object {
	o := &component.Object{
		Kind:       kind,
		Pattern:    string(l.Pattern),
		Pos:        l.Pos,
		Vel:        l.Vel,
		Gravity:    l.Gravity,
		AngularVel: l.AngularVel,
		Size:       t.ObjectSize,
		Radius:     t.HitRadius(),
		SpeedBoost: l.SpeedBoost,
		CreatedAt:  now,
	}
	switch kind {
	case component.KindItem:
		o.Variant = v.Key
		o.Points = v.Points
		o.Tint = v.Tint
	case component.KindBonus:
		o.Size = t.ObjectSize * parameter.BonusSizeFactor
		o.Radius = t.BonusRadius()
	}
	return o
}
