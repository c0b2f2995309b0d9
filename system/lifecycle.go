package system

import (
	"time"

	"github.com/bearpark/bear-slice/component"
	"github.com/bearpark/bear-slice/engine/fsm"
	"github.com/bearpark/bear-slice/event"
)

// Round lifecycle states
const (
	RoundRunning fsm.StateID = iota + 1
	RoundOver
)

const triggerRoundOver fsm.Trigger = 1

// Round-over causes
const (
	CauseLivesExhausted = "lives-exhausted"
	CauseHazard         = "hazard"
)

// LifecycleController tracks lives and the terminal transition
type LifecycleController struct {
	world    *World
	resolver *SliceResolver
	bonus    *BonusEngine
	machine  *fsm.Machine[*LifecycleController]

	cause string

	// OnRoundOver runs once, before the round-over notification
	OnRoundOver func(score int, cause string)

	// Teardown cancels dependent systems when the round ends
	Teardown func()
}

// NewLifecycleController builds the round state machine
func NewLifecycleController(w *World, resolver *SliceResolver, bonus *BonusEngine) *LifecycleController {
	l := &LifecycleController{world: w, resolver: resolver, bonus: bonus}

	m := fsm.NewMachine[*LifecycleController]()
	m.AddState(RoundRunning, "running")
	m.AddState(RoundOver, "game-over").Enter((*LifecycleController).enterOver)
	m.AddTransition(RoundRunning, fsm.Transition[*LifecycleController]{TargetID: RoundOver, Trigger: triggerRoundOver})

	if err := m.Init(l, RoundRunning); err != nil {
		panic(err)
	}
	l.machine = m
	return l
}

// State returns the current lifecycle state
func (l *LifecycleController) State() fsm.StateID {
	return l.machine.Current()
}

// Cause returns why the round ended; empty while running
func (l *LifecycleController) Cause() string {
	return l.cause
}

// Restart returns to running for a fresh round
func (l *LifecycleController) Restart() {
	l.cause = ""
	_ = l.machine.Reset(l)
}

// Step integrates every free object and removes those past the bounds
func (l *LifecycleController) Step(dt time.Duration) {
	w := l.world
	if w.Round.Terminal {
		return
	}
	for _, o := range w.Objects.All() {
		o.Integrate(dt)
	}

	engaged := l.bonus.Engaged()
	var missed []*component.Object
	w.Objects.RemoveIf(func(o *component.Object) bool {
		if o.Pinned || !l.outOfBounds(o) {
			return false
		}
		if o.Kind == component.KindItem && !o.Sliced && !engaged {
			missed = append(missed, o)
		}
		return true
	})
	w.Stats.LiveObjects.Store(int64(w.Objects.Len()))

	for _, o := range missed {
		if w.Round.Terminal {
			break
		}
		w.Round.Missed++
		w.Emit(event.EventObjectMissed, objectPayload(o))
		l.LoseLife()
	}
}

func (l *LifecycleController) outOfBounds(o *component.Object) bool {
	t := l.world.Tuning
	switch {
	case o.Pos.Y > t.ScreenHeight+t.FallMargin:
		return true
	case o.Pos.X < -t.SideMargin, o.Pos.X > t.ScreenWidth+t.SideMargin:
		return true
	case o.Pos.Y < t.TopLimit:
		return true
	}
	return false
}

// LoseLife costs one life, breaking combo and streak; ends the round at zero
func (l *LifecycleController) LoseLife() {
	w := l.world
	if w.Round.Terminal || l.bonus.Engaged() {
		return
	}
	lives := w.Round.LoseLife()
	w.Stats.LivesCurrent.Store(int64(lives))
	w.Emit(event.EventLivesChanged, &event.LivesChangedPayload{Lives: lives})
	l.resolver.BreakCombo()
	if lives <= 0 {
		l.End(CauseLivesExhausted)
	}
}

// End transitions to game over; later calls are no-ops
func (l *LifecycleController) End(cause string) {
	if l.world.Round.Terminal {
		return
	}
	l.cause = cause
	l.machine.Fire(l, triggerRoundOver)
}

func (l *LifecycleController) enterOver() {
	w := l.world
	w.Round.Terminal = true
	w.Timers.CancelAll()
	if l.Teardown != nil {
		l.Teardown()
	}

	score := w.Round.Score
	if l.OnRoundOver != nil {
		l.OnRoundOver(score, l.cause)
	}
	isNewBest := score > w.Round.BestScore
	w.Stats.Rounds.Add(1)
	if isNewBest && int64(score) > w.Stats.Best.Load() {
		w.Stats.Best.Store(int64(score))
	}
	w.Emit(event.EventRoundOver, &event.RoundOverPayload{
		RoundID:    w.Round.ID,
		FinalScore: score,
		IsNewBest:  isNewBest,
	})
}
