package component

import (
	"errors"
	"fmt"
	"time"

	"github.com/bearpark/bear-slice/vmath"
)

// ErrNonFinite rejects objects whose physics state cannot be integrated
var ErrNonFinite = errors.New("non-finite physics state")

// Kind classifies spawnable objects
type Kind uint8

const (
	KindItem   Kind = iota // Ordinary sliceable item
	KindHazard             // Ends the round when sliced
	KindBonus              // Starts the hit ladder when sliced
)

func (k Kind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindHazard:
		return "hazard"
	case KindBonus:
		return "bonus"
	}
	return "unknown"
}

// ObjectID identifies a live object; zero means none
type ObjectID uint64

// Object is a live spawnable in world units
type Object struct {
	ID      ObjectID
	Kind    Kind
	Variant string // Ordinary items only
	Points  int
	Tint    uint32
	Pattern string // Throw pattern that launched it

	// Kinematics
	Pos        vmath.Vec2
	Vel        vmath.Vec2
	Gravity    float64
	AngularVel float64 // rad/s
	Rotation   float64

	Size   float64
	Radius float64

	SpeedBoost bool
	Sliced     bool
	Pinned     bool // Position driven by bonus motion rather than integration

	CreatedAt time.Duration
}

// Integrate advances kinematics by dt (semi-implicit Euler)
func (o *Object) Integrate(dt time.Duration) {
	if o.Pinned {
		return
	}
	s := dt.Seconds()
	o.Vel.Y += o.Gravity * s
	o.Pos = o.Pos.Add(o.Vel.Scale(s))
	o.Rotation += o.AngularVel * s
}

// Finite reports whether every physics field is a usable number
func (o *Object) Finite() bool {
	return o.Pos.IsFinite() && o.Vel.IsFinite() &&
		vmath.IsFinite(o.Gravity) && vmath.IsFinite(o.AngularVel) &&
		vmath.IsFinite(o.Radius) && o.Radius >= 0
}

// Objects is the ordered live object set
// Iteration follows insertion order so simulation stays deterministic
type Objects struct {
	items  []*Object
	nextID ObjectID
}

// NewObjects creates an empty store
func NewObjects() *Objects {
	return &Objects{}
}

// Add assigns an ID and inserts o
func (s *Objects) Add(o *Object) (ObjectID, error) {
	if !o.Finite() {
		return 0, fmt.Errorf("add %s object: %w", o.Kind, ErrNonFinite)
	}
	s.nextID++
	o.ID = s.nextID
	s.items = append(s.items, o)
	return o.ID, nil
}

// Get returns the live object with id
func (s *Objects) Get(id ObjectID) (*Object, bool) {
	if id == 0 {
		return nil, false
	}
	for _, o := range s.items {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// Remove deletes the object with id, preserving order
func (s *Objects) Remove(id ObjectID) bool {
	for i, o := range s.items {
		if o.ID == id {
			copy(s.items[i:], s.items[i+1:])
			s.items[len(s.items)-1] = nil
			s.items = s.items[:len(s.items)-1]
			return true
		}
	}
	return false
}

// RemoveIf deletes every object matching fn and returns them in order
func (s *Objects) RemoveIf(fn func(o *Object) bool) []*Object {
	var removed []*Object
	kept := s.items[:0]
	for _, o := range s.items {
		if fn(o) {
			removed = append(removed, o)
			continue
		}
		kept = append(kept, o)
	}
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = kept
	return removed
}

// All returns the live objects in order; the slice must not be retained across mutations
func (s *Objects) All() []*Object {
	return s.items
}

// Len returns the live object count
func (s *Objects) Len() int {
	return len(s.items)
}

// CountKind returns the number of live objects of kind k
func (s *Objects) CountKind(k Kind) int {
	n := 0
	for _, o := range s.items {
		if o.Kind == k {
			n++
		}
	}
	return n
}

// Clear drops every object; IDs keep increasing
func (s *Objects) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

// Snapshot returns value copies in order
func (s *Objects) Snapshot() []Object {
	out := make([]Object, len(s.items))
	for i, o := range s.items {
		out[i] = *o
	}
	return out
}
