package system

import (
	"math"

	"github.com/bearpark/bear-slice/component"
	"github.com/bearpark/bear-slice/vmath"
)

// Focus restricts detection while the bonus ladder owns the blade
type Focus struct {
	Engaged bool
	Target  component.ObjectID // Zero while finalizing
}

// NearMiss is an object the blade passed just outside of
type NearMiss struct {
	Object   *component.Object
	Distance float64 // Gap between blade edge and hit circle
}

// CollisionDetector tests the newest blade segment against live objects
type CollisionDetector struct {
	world *World
}

// NewCollisionDetector creates a detector over the world's objects
func NewCollisionDetector(w *World) *CollisionDetector {
	return &CollisionDetector{world: w}
}

// EffectiveRadius is the hit radius widened by half the blade
func (d *CollisionDetector) EffectiveRadius(o *component.Object) float64 {
	return o.Radius + d.world.Tuning.BladeWidth/2
}

// Detect returns every object the segment a→b crosses, in live order
// The object set is read as it stands at call time; nothing is mutated
func (d *CollisionDetector) Detect(a, b vmath.Vec2, focus Focus) []*component.Object {
	var hits []*component.Object
	for _, o := range d.world.Objects.All() {
		if !d.testable(o, focus) {
			continue
		}
		if vmath.SegmentCircleHit(a, b, o.Pos, d.EffectiveRadius(o)) {
			hits = append(hits, o)
		}
	}
	return hits
}

// NearMisses returns objects within margin outside their effective radius
// Only ordinary play reports near misses
func (d *CollisionDetector) NearMisses(a, b vmath.Vec2, focus Focus) []NearMiss {
	margin := d.world.Tuning.NearMissMargin
	if focus.Engaged || margin <= 0 {
		return nil
	}
	var out []NearMiss
	for _, o := range d.world.Objects.All() {
		if o.Sliced || o.Kind == component.KindBonus {
			continue
		}
		r := d.EffectiveRadius(o)
		dist := math.Sqrt(vmath.SegmentDistSq(a, b, o.Pos))
		if dist > r && dist <= r+margin {
			out = append(out, NearMiss{Object: o, Distance: dist - r})
		}
	}
	return out
}

func (d *CollisionDetector) testable(o *component.Object, focus Focus) bool {
	if o.Sliced {
		return false
	}
	if focus.Engaged {
		return focus.Target != 0 && o.ID == focus.Target
	}
	return true
}
