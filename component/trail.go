package component

import (
	"time"

	"github.com/bearpark/bear-slice/vmath"
)

// Sample is one timestamped pointer position
type Sample struct {
	Pos vmath.Vec2
	At  time.Duration
}

// BladeTrail keeps the most recent pointer samples while the pointer is down
// Capacity is fixed; the oldest sample is dropped on overflow
type BladeTrail struct {
	samples  []Sample
	capacity int
	active   bool
}

// NewBladeTrail creates a trail holding at most capacity samples
func NewBladeTrail(capacity int) *BladeTrail {
	if capacity < 2 {
		capacity = 2
	}
	return &BladeTrail{
		samples:  make([]Sample, 0, capacity),
		capacity: capacity,
	}
}

// Begin clears the trail and starts a stroke at s
func (b *BladeTrail) Begin(s Sample) {
	b.samples = b.samples[:0]
	b.samples = append(b.samples, s)
	b.active = true
}

// Push appends s to the active stroke
// Returns false when no stroke is active or s is older than the newest sample
func (b *BladeTrail) Push(s Sample) bool {
	if !b.active {
		return false
	}
	if n := len(b.samples); n > 0 && s.At < b.samples[n-1].At {
		return false
	}
	if len(b.samples) == b.capacity {
		copy(b.samples, b.samples[1:])
		b.samples = b.samples[:b.capacity-1]
	}
	b.samples = append(b.samples, s)
	return true
}

// End finishes the stroke and clears the trail
func (b *BladeTrail) End() {
	b.Clear()
}

// Clear drops all samples and deactivates the stroke
func (b *BladeTrail) Clear() {
	b.samples = b.samples[:0]
	b.active = false
}

// Active reports whether a stroke is in progress
func (b *BladeTrail) Active() bool {
	return b.active
}

// LastSegment returns the two newest samples
func (b *BladeTrail) LastSegment() (from, to Sample, ok bool) {
	n := len(b.samples)
	if n < 2 {
		return Sample{}, Sample{}, false
	}
	return b.samples[n-2], b.samples[n-1], true
}

// Len returns the sample count
func (b *BladeTrail) Len() int {
	return len(b.samples)
}

// Samples returns a copy, oldest first
func (b *BladeTrail) Samples() []Sample {
	return append([]Sample(nil), b.samples...)
}
