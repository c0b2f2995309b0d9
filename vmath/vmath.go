package vmath

// --- Easing ---

// EaseInOutQuad maps t in [0,1] onto a symmetric quadratic curve
func EaseInOutQuad(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - 2*(1-t)*(1-t)
}

// Ease interpolates from min to max as level approaches capLevel, then holds at max
// Works in both directions so shrinking intervals use the same curve
func Ease(level, min, max float64, capLevel float64) float64 {
	if capLevel <= 0 {
		return max
	}
	t := level / capLevel
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return min + (max-min)*EaseInOutQuad(t)
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt bounds v to [lo, hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1
func Sign(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}

// --- Randomness ---

// FastRand is a xorshift64 generator; deterministic for a given seed
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a uniform value in [0,1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a uniform value in [lo,hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Between returns a uniform integer in [lo,hi]
func (r *FastRand) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Chance returns true with probability p
func (r *FastRand) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return r.Float64() < p
}

// Sign returns -1 or 1 with equal probability
func (r *FastRand) Sign() float64 {
	if r.Next()&1 == 0 {
		return -1
	}
	return 1
}

// State exposes the generator state for snapshots
func (r *FastRand) State() uint64 { return r.state }
