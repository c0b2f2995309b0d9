package vmath

// ClosestOnSegment returns the point on segment ab nearest to p
// Degenerate segments (a == b) collapse to a
func ClosestOnSegment(a, b, p Vec2) Vec2 {
	ab := b.Sub(a)
	lenSq := ab.LenSq()
	if lenSq == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}

// SegmentDistSq returns the squared distance from p to segment ab
func SegmentDistSq(a, b, p Vec2) float64 {
	return ClosestOnSegment(a, b, p).DistSq(p)
}

// SegmentCircleHit reports whether segment ab touches the circle at c with radius r
// Tangency counts as a hit; symmetric in a and b
func SegmentCircleHit(a, b, c Vec2, r float64) bool {
	if r < 0 {
		return false
	}
	return SegmentDistSq(a, b, c) <= r*r
}
