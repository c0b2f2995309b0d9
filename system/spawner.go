package system

import (
	"log"
	"time"

	"github.com/bearpark/bear-slice/component"
	"github.com/bearpark/bear-slice/engine"
	"github.com/bearpark/bear-slice/event"
)

// Spawner owns the spawn cadence and turns planned orders into live objects
type Spawner struct {
	world      *World
	selector   *SpawnSelector
	trajectory *TrajectoryGenerator
	difficulty *DifficultyController
	bonus      *BonusEngine

	timer    engine.TimerID
	interval time.Duration
	delayed  map[engine.TimerID]struct{}
}

// NewSpawner wires the spawn pipeline
func NewSpawner(w *World, d *DifficultyController, b *BonusEngine) *Spawner {
	return &Spawner{
		world:      w,
		selector:   NewSpawnSelector(w),
		trajectory: NewTrajectoryGenerator(w),
		difficulty: d,
		bonus:      b,
		delayed:    make(map[engine.TimerID]struct{}),
	}
}

// Selector exposes the spawn selector
func (s *Spawner) Selector() *SpawnSelector { return s.selector }

// Interval returns the currently armed cadence
func (s *Spawner) Interval() time.Duration { return s.interval }

// Arm schedules the next spawn tick interval from now, replacing any pending tick
func (s *Spawner) Arm(interval time.Duration) {
	w := s.world
	if w.Round.Terminal {
		return
	}
	w.Timers.Cancel(s.timer)
	s.interval = interval
	gen := w.Timers.Generation()
	s.timer = w.Timers.After(interval, func() {
		if gen != w.Timers.Generation() {
			return
		}
		s.timer = 0
		s.Tick()
		s.Arm(s.difficulty.SpawnInterval(s.difficulty.Level()))
	})
}

// Paused reports whether spawning is suppressed
func (s *Spawner) Paused() bool {
	return s.world.Round.Terminal || s.bonus.Engaged()
}

// Tick plans and launches one batch
func (s *Spawner) Tick() int {
	if s.Paused() {
		return 0
	}
	w := s.world
	lv := s.difficulty.Level()
	orders := s.selector.PlanBatch(lv.Effective, w.Modes)

	launched := 0
	for _, order := range orders {
		if order.Delay <= 0 {
			if s.Launch(order) != nil {
				launched++
			}
			continue
		}
		s.stagger(order)
	}
	return launched
}

func (s *Spawner) stagger(order SpawnOrder) {
	w := s.world
	gen := w.Timers.Generation()
	var id engine.TimerID
	id = w.Timers.After(order.Delay, func() {
		delete(s.delayed, id)
		if gen != w.Timers.Generation() {
			return
		}
		s.Launch(order)
	})
	s.delayed[id] = struct{}{}
}

// Launch creates one object for order; returns nil when suppressed or dropped
func (s *Spawner) Launch(order SpawnOrder) *component.Object {
	if s.Paused() {
		return nil
	}
	w := s.world
	lv := s.difficulty.Level()

	kind := order.Kind
	if !order.Forced {
		bonusAllowed := w.Objects.CountKind(component.KindBonus) == 0
		kind = s.selector.ChooseKind(lv.Effective, bonusAllowed)
	}
	variant := s.selector.Variant()
	launch := s.trajectory.Generate(order, lv.Effective, lv.Total)

	o := Build(w.Tuning, kind, variant, launch, w.Now())
	if _, err := w.Objects.Add(o); err != nil {
		log.Printf("spawn: dropped object: %v", err)
		w.Stats.Dropped.Add(1)
		return nil
	}
	w.Stats.Spawned.Add(1)
	w.Stats.LiveObjects.Store(int64(w.Objects.Len()))
	w.Emit(event.EventObjectSpawned, objectPayload(o))
	return o
}

// Reset cancels the cadence and any staggered launches
func (s *Spawner) Reset() {
	w := s.world
	w.Timers.Cancel(s.timer)
	s.timer = 0
	for id := range s.delayed {
		w.Timers.Cancel(id)
	}
	clear(s.delayed)
}
