package system

import (
	"math"
	"time"

	"github.com/bearpark/bear-slice/parameter"
	"github.com/bearpark/bear-slice/vmath"
)

// MotionKind selects the bonus movement generator
type MotionKind uint8

const (
	MotionFloat       MotionKind = iota // Gentle vertical bob
	MotionDrift                         // Fast diagonal sway
	MotionZigzag                        // Rapid short hops
	MotionFigureEight                   // Lissajous loop
	MotionErratic                       // Erratic bursts
	MotionSpeedDemon                    // High-speed random jumps
	MotionNightmare                     // Maximum-chaos random jumps
)

var motionNames = [...]string{"float", "drift", "zigzag", "figure-eight", "erratic", "speed-demon", "nightmare"}

func (k MotionKind) String() string {
	if int(k) < len(motionNames) {
		return motionNames[k]
	}
	return "unknown"
}

// MotionForPhase maps a ladder phase onto its generator, clamped to the last
func MotionForPhase(phase int) MotionKind {
	return MotionKind(vmath.ClampInt(phase, 0, parameter.BonusMaxPhase))
}

// motionProfile parameterizes one generator
type motionProfile struct {
	amp    vmath.Vec2    // Peak offset per axis
	period time.Duration // Yoyo half-period, or hop duration lower bound
	maxHop time.Duration // Hop duration upper bound; zero for smooth kinds
}

var motionProfiles = [...]motionProfile{
	MotionFloat:       {amp: vmath.V2(0, -15), period: 1500 * time.Millisecond},
	MotionDrift:       {amp: vmath.V2(-60, -20), period: 800 * time.Millisecond},
	MotionZigzag:      {amp: vmath.V2(40, 25), period: 300 * time.Millisecond, maxHop: 500 * time.Millisecond},
	MotionFigureEight: {amp: vmath.V2(70, 40)},
	MotionErratic:     {amp: vmath.V2(50, 35), period: 150 * time.Millisecond, maxHop: 300 * time.Millisecond},
	MotionSpeedDemon:  {amp: vmath.V2(60, 40), period: 100 * time.Millisecond, maxHop: 200 * time.Millisecond},
	MotionNightmare:   {amp: vmath.V2(70, 45), period: 80 * time.Millisecond, maxHop: 160 * time.Millisecond},
}

// figureEightRate is radians per millisecond of the loop parameter
const figureEightRate = 0.006

// motionBlend is how long a switched smooth generator takes to absorb the previous offset
const motionBlend = 250 * time.Millisecond

// Motion drives the engaged bonus around its hover origin
// Every kind stays within BonusMotionRadius of Origin
type Motion struct {
	Kind      MotionKind
	Origin    vmath.Vec2
	StartedAt time.Duration

	// Offset left over from the previous generator, fading out over motionBlend
	carry vmath.Vec2

	// Hop state for the random-jump kinds
	from, to  vmath.Vec2
	hopAt     time.Duration
	hopLength time.Duration
}

// NewMotion starts kind at now, continuing from the current offset
func NewMotion(kind MotionKind, origin vmath.Vec2, now time.Duration) *Motion {
	return &Motion{Kind: kind, Origin: origin, StartedAt: now, hopAt: now}
}

// Switch changes generator without a jump: the new one starts from current
func (m *Motion) Switch(kind MotionKind, current vmath.Vec2, now time.Duration) {
	offset := current.Sub(m.Origin)
	m.Kind = kind
	m.StartedAt = now
	m.from = offset
	m.to = offset
	m.hopAt = now
	m.hopLength = 0
	m.carry = vmath.Vec2{}
	if smooth, ok := m.curve(0); ok {
		m.carry = offset.Sub(smooth)
	}
}

// Position computes the bonus position at now
// Random-jump kinds draw their next hop target from rng when a hop completes
func (m *Motion) Position(now time.Duration, rng *vmath.FastRand) vmath.Vec2 {
	elapsed := now - m.StartedAt
	if elapsed < 0 {
		elapsed = 0
	}

	offset, ok := m.curve(elapsed)
	if !ok {
		offset = m.hop(now, motionProfiles[m.Kind], rng)
	} else if elapsed < motionBlend {
		fade := 1 - float64(elapsed)/float64(motionBlend)
		offset = offset.Add(m.carry.Scale(fade))
	}
	return m.Origin.Add(clampRadius(offset, parameter.BonusMotionRadius))
}

// curve returns the smooth generator offset at elapsed; false for random-jump kinds
func (m *Motion) curve(elapsed time.Duration) (vmath.Vec2, bool) {
	prof := motionProfiles[m.Kind]
	switch m.Kind {
	case MotionFloat, MotionDrift:
		return prof.amp.Scale(yoyo(elapsed, prof.period)), true
	case MotionFigureEight:
		p := float64(elapsed.Milliseconds()) * figureEightRate
		return vmath.V2(prof.amp.X*math.Cos(p), prof.amp.Y*math.Sin(2*p)), true
	}
	return vmath.Vec2{}, false
}

func (m *Motion) hop(now time.Duration, prof motionProfile, rng *vmath.FastRand) vmath.Vec2 {
	for m.hopLength <= 0 || now-m.hopAt >= m.hopLength {
		if m.hopLength > 0 {
			m.hopAt += m.hopLength
			m.from = m.to
		}
		m.to = vmath.V2(rng.Range(-prof.amp.X, prof.amp.X), rng.Range(-prof.amp.Y, prof.amp.Y))
		m.hopLength = prof.period + time.Duration(rng.Float64()*float64(prof.maxHop-prof.period))
		if m.hopLength <= 0 {
			m.hopLength = time.Millisecond
		}
		// A long stall collapses into a fresh hop from the current target
		if now-m.hopAt > 4*prof.maxHop {
			m.hopAt = now
		}
	}
	t := float64(now-m.hopAt) / float64(m.hopLength)
	return m.from.Lerp(m.to, vmath.EaseInOutQuad(t))
}

// yoyo runs 0→1→0 with an eased half-period
func yoyo(elapsed, half time.Duration) float64 {
	if half <= 0 {
		return 0
	}
	cycle := elapsed % (2 * half)
	t := float64(cycle) / float64(half)
	if t > 1 {
		t = 2 - t
	}
	return vmath.EaseInOutQuad(t)
}

func clampRadius(v vmath.Vec2, r float64) vmath.Vec2 {
	l := v.Len()
	if l <= r || l == 0 {
		return v
	}
	return v.Scale(r / l)
}
