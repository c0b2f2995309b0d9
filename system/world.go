package system

import (
	"sync/atomic"
	"time"

	"github.com/bearpark/bear-slice/component"
	"github.com/bearpark/bear-slice/config"
	"github.com/bearpark/bear-slice/engine"
	"github.com/bearpark/bear-slice/event"
	"github.com/bearpark/bear-slice/status"
	"github.com/bearpark/bear-slice/vmath"
)

// World is the single-owner simulation state shared by every system
// All access happens on the loop goroutine
type World struct {
	Tuning *config.Tuning
	RNG    *vmath.FastRand

	Objects *component.Objects
	Trail   *component.BladeTrail
	Round   component.RoundState
	Combo   component.ComboState
	Bonus   component.BonusState
	Modes   *component.ModeSet

	Timers  *engine.Scheduler
	Emitter event.Emitter
	Stats   *Stats
}

// Stats caches metric pointers written on hot paths
type Stats struct {
	Spawned      *atomic.Int64
	Dropped      *atomic.Int64
	Sliced       *atomic.Int64
	Perfect      *atomic.Int64
	BonusHits    *atomic.Int64
	Rounds       *atomic.Int64
	Best         *atomic.Int64
	SpawnRateMs  *status.AtomicFloat
	Level        *atomic.Int64
	LiveObjects  *atomic.Int64
	ModesActive  *atomic.Int64
	LivesCurrent *atomic.Int64
}

// NewStats registers the engine metrics on reg
func NewStats(reg *status.Registry) *Stats {
	return &Stats{
		Spawned:      reg.Ints.Get("spawn.objects"),
		Dropped:      reg.Ints.Get("spawn.dropped"),
		Sliced:       reg.Ints.Get("slice.objects"),
		Perfect:      reg.Ints.Get("slice.perfect"),
		BonusHits:    reg.Ints.Get("bonus.hits"),
		Rounds:       reg.Ints.Get("round.count"),
		Best:         reg.Ints.Get("round.best"),
		SpawnRateMs:  reg.Floats.Get("difficulty.spawn_ms"),
		Level:        reg.Ints.Get("difficulty.level"),
		LiveObjects:  reg.Ints.Get("world.objects"),
		ModesActive:  reg.Ints.Get("modes.active"),
		LivesCurrent: reg.Ints.Get("round.lives"),
	}
}

// NewWorld creates a world for a fresh round
func NewWorld(t *config.Tuning, seed uint64, emitter event.Emitter, reg *status.Registry) *World {
	if emitter == nil {
		emitter = event.Discard
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &World{
		Tuning:  t,
		RNG:     vmath.NewFastRand(seed),
		Objects: component.NewObjects(),
		Trail:   component.NewBladeTrail(t.BladeTrailLength),
		Round:   component.RoundState{Lives: t.Lives},
		Modes:   component.NewModeSet(),
		Timers:  engine.NewScheduler(),
		Emitter: emitter,
		Stats:   NewStats(reg),
	}
}

// Now returns round-relative game time
func (w *World) Now() time.Duration {
	return w.Timers.Now()
}

// Emit stamps and forwards a notification
func (w *World) Emit(t event.EventType, payload any) {
	w.Emitter.Emit(event.GameEvent{Type: t, Payload: payload, At: w.Now()})
}

// Center is the middle of the playfield
func (w *World) Center() vmath.Vec2 {
	return vmath.V2(w.Tuning.ScreenWidth/2, w.Tuning.ScreenHeight/2)
}

func (w *World) emitScore(delta int) {
	w.Emit(event.EventScoreChanged, &event.ScoreChangedPayload{Score: w.Round.Score, Delta: delta})
}

func (w *World) emitCombo() {
	w.Emit(event.EventComboChanged, &event.ComboChangedPayload{Count: w.Combo.Count, Max: w.Combo.Max})
}

func (w *World) emitStreak() {
	w.Emit(event.EventStreakChanged, &event.StreakChangedPayload{Streak: w.Combo.Streak})
}

func objectPayload(o *component.Object) *event.ObjectPayload {
	return &event.ObjectPayload{
		ObjectID: uint64(o.ID),
		Kind:     o.Kind.String(),
		Variant:  o.Variant,
		Pattern:  o.Pattern,
		X:        o.Pos.X,
		Y:        o.Pos.Y,
	}
}
