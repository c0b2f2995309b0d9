package system

import (
	"time"

	"github.com/bearpark/bear-slice/component"
	"github.com/bearpark/bear-slice/engine"
	"github.com/bearpark/bear-slice/engine/fsm"
	"github.com/bearpark/bear-slice/event"
	"github.com/bearpark/bear-slice/parameter"
	"github.com/bearpark/bear-slice/vmath"
)

// Bonus sub-engine states
const (
	BonusInactive fsm.StateID = iota + 1
	BonusActive
	BonusFinalizing
)

const (
	triggerEngage fsm.Trigger = iota + 1
	triggerFinish
	triggerSettle
)

// BonusEngine runs the hit ladder for a single engaged bonus object
type BonusEngine struct {
	world    *World
	resolver *SliceResolver
	machine  *fsm.Machine[*BonusEngine]
	motion   *Motion

	timeout engine.TimerID
	settle  engine.TimerID

	// OnFinished runs when the sub-engine returns to inactive
	OnFinished func()
}

// NewBonusEngine builds the ladder state machine
func NewBonusEngine(w *World, resolver *SliceResolver) *BonusEngine {
	b := &BonusEngine{world: w, resolver: resolver}

	m := fsm.NewMachine[*BonusEngine]()
	m.AddState(BonusInactive, "inactive")
	m.AddState(BonusActive, "active").
		Enter((*BonusEngine).enterActive).
		Update((*BonusEngine).follow)
	m.AddState(BonusFinalizing, "finalizing").
		Enter((*BonusEngine).enterFinalizing).
		Exit((*BonusEngine).exitFinalizing)

	m.AddTransition(BonusInactive, fsm.Transition[*BonusEngine]{TargetID: BonusActive, Trigger: triggerEngage})
	m.AddTransition(BonusActive, fsm.Transition[*BonusEngine]{TargetID: BonusFinalizing, Trigger: triggerFinish})
	m.AddTransition(BonusActive, fsm.Transition[*BonusEngine]{
		TargetID: BonusFinalizing,
		Trigger:  fsm.TriggerTick,
		Guard:    (*BonusEngine).lost,
	})
	m.AddTransition(BonusFinalizing, fsm.Transition[*BonusEngine]{TargetID: BonusInactive, Trigger: triggerSettle})

	if err := m.Init(b, BonusInactive); err != nil {
		panic(err)
	}
	b.machine = m
	return b
}

// State returns the current sub-engine state
func (b *BonusEngine) State() fsm.StateID {
	return b.machine.Current()
}

// StateName returns the current state name
func (b *BonusEngine) StateName() string {
	return b.machine.CurrentName()
}

// Engaged reports whether the ladder owns the round (active or finalizing)
func (b *BonusEngine) Engaged() bool {
	return !b.machine.Is(BonusInactive)
}

// Focus is the collision restriction for the current state
func (b *BonusEngine) Focus() Focus {
	if !b.Engaged() {
		return Focus{}
	}
	f := Focus{Engaged: true}
	if b.machine.Is(BonusActive) {
		f.Target = b.world.Bonus.ObjectID
	}
	return f
}

// Motion exposes the active movement generator; nil when idle
func (b *BonusEngine) Motion() *Motion {
	return b.motion
}

// Engage starts the ladder on o; returns false when already engaged or the round is over
func (b *BonusEngine) Engage(o *component.Object) bool {
	w := b.world
	if w.Round.Terminal || b.Engaged() || o.Kind != component.KindBonus {
		return false
	}
	w.Bonus = component.BonusState{
		ObjectID:  o.ID,
		StartedAt: w.Now(),
		Origin:    vmath.V2(w.Tuning.ScreenWidth/2, w.Tuning.ScreenHeight/2-parameter.BonusHoverOffsetY),
	}
	return b.machine.Fire(b, triggerEngage)
}

func (b *BonusEngine) enterActive() {
	w := b.world
	id := w.Bonus.ObjectID

	var cleared, removed int
	w.Objects.RemoveIf(func(o *component.Object) bool {
		if o.ID == id {
			return false
		}
		if o.Kind == component.KindItem && !o.Sliced {
			cleared++
		} else {
			removed++
		}
		return true
	})
	w.Round.Slices += cleared
	w.Stats.Sliced.Add(int64(cleared))
	if cleared+removed > 0 {
		w.Emit(event.EventAutoSlice, &event.AutoSlicePayload{Cleared: cleared, Removed: removed})
	}

	if o, ok := w.Objects.Get(id); ok {
		o.Pos = w.Bonus.Origin
		o.Vel = vmath.Vec2{}
		o.Gravity = 0
		o.Pinned = true
		o.Sliced = false
		w.Emit(event.EventBonusStarted, objectPayload(o))
	}
	b.motion = NewMotion(MotionForPhase(0), w.Bonus.Origin, w.Now())
	b.armTimeout(w.Tuning.BonusHoverDuration)
}

// Window is the finalize timeout armed after the hits-th ladder hit
func (b *BonusEngine) Window(hits int) time.Duration {
	t := b.world.Tuning
	if hits < 1 {
		return t.BonusHoverDuration
	}
	window := t.BonusSliceWindow - time.Duration(hits-1)*t.BonusWindowDecrement
	if window < t.BonusMinWindow {
		window = t.BonusMinWindow
	}
	return window
}

// LadderPoints is the award for the hits-th hit; zero outside the ladder
func LadderPoints(hits, maxHits, perHit int) int {
	if hits < 1 || hits > maxHits || perHit < 0 {
		return 0
	}
	return perHit
}

// Hit registers a blade contact on the bonus at pointer position p
// The pointer must lie within the fixed hit radius of the bonus' current position
func (b *BonusEngine) Hit(p vmath.Vec2) bool {
	w := b.world
	t := w.Tuning
	if w.Round.Terminal || !b.machine.Is(BonusActive) {
		return false
	}
	o, ok := w.Objects.Get(w.Bonus.ObjectID)
	if !ok || p.Dist(o.Pos) > t.BonusHitRadius {
		return false
	}

	hits := vmath.ClampInt(w.Bonus.Hits+1, 0, t.BonusMaxHits)
	points := LadderPoints(hits, t.BonusMaxHits, t.BonusPointsPerHit)
	w.Bonus.Hits = hits
	w.Bonus.Points += points
	w.Bonus.LastHitAt = w.Now()

	w.Round.Score += points
	w.Stats.BonusHits.Add(1)
	w.emitScore(points)
	w.Emit(event.EventBonusProgress, &event.BonusProgressPayload{HitIndex: hits, Points: points, MaxHits: t.BonusMaxHits})
	if b.resolver != nil {
		b.resolver.CountLadderHit()
	}

	phase := min(hits/parameter.BonusHitsPerPhase, parameter.BonusMaxPhase)
	if phase > w.Bonus.Phase {
		w.Bonus.Phase = phase
		b.motion.Switch(MotionForPhase(phase), o.Pos, w.Now())
	}

	if hits >= t.BonusMaxHits {
		b.machine.Fire(b, triggerFinish)
		return true
	}
	b.armTimeout(b.Window(hits))
	return true
}

func (b *BonusEngine) armTimeout(d time.Duration) {
	w := b.world
	w.Timers.Cancel(b.timeout)
	gen := w.Timers.Generation()
	b.timeout = w.Timers.After(d, func() {
		if gen != w.Timers.Generation() {
			return
		}
		b.timeout = 0
		b.machine.Fire(b, triggerFinish)
	})
}

func (b *BonusEngine) enterFinalizing() {
	w := b.world
	w.Timers.Cancel(b.timeout)
	b.timeout = 0
	if o, ok := w.Objects.Get(w.Bonus.ObjectID); ok {
		o.Sliced = true
	}
	w.Emit(event.EventBonusFinished, &event.BonusFinishedPayload{
		Hits:     w.Bonus.Hits,
		Points:   w.Bonus.Points,
		Complete: w.Bonus.Hits >= w.Tuning.BonusMaxHits,
	})

	gen := w.Timers.Generation()
	b.settle = w.Timers.After(w.Tuning.BonusFinalizeDelay, func() {
		if gen != w.Timers.Generation() {
			return
		}
		b.settle = 0
		b.machine.Fire(b, triggerSettle)
	})
}

func (b *BonusEngine) exitFinalizing() {
	w := b.world
	w.Objects.Remove(w.Bonus.ObjectID)
	w.Bonus.Clear()
	b.motion = nil
	if b.OnFinished != nil && !w.Round.Terminal {
		b.OnFinished()
	}
}

// Step runs one tick of the ladder: the engaged bonus follows its generator
// and a ladder whose object vanished finishes early
func (b *BonusEngine) Step() {
	b.machine.Update(b)
}

func (b *BonusEngine) follow() {
	if b.motion == nil {
		return
	}
	if o, ok := b.world.Objects.Get(b.world.Bonus.ObjectID); ok {
		o.Pos = b.motion.Position(b.world.Now(), b.world.RNG)
	}
}

func (b *BonusEngine) lost() bool {
	_, ok := b.world.Objects.Get(b.world.Bonus.ObjectID)
	return !ok
}

// WindowLeft returns the time until an active ladder finalizes without another hit
func (b *BonusEngine) WindowLeft() time.Duration {
	if !b.machine.Is(BonusActive) {
		return 0
	}
	return b.world.Timers.Remaining(b.timeout)
}

// Reset abandons any ladder without notifications
func (b *BonusEngine) Reset() {
	w := b.world
	w.Timers.Cancel(b.timeout)
	w.Timers.Cancel(b.settle)
	b.timeout, b.settle = 0, 0
	b.motion = nil
	w.Bonus.Clear()
	_ = b.machine.Reset(b)
}
