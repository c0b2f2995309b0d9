// Package arcade assembles the slicing engine: it owns every piece of round
// state, feeds pointer input to collision and scoring, and advances game time.
package arcade

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/bearpark/bear-slice/component"
	"github.com/bearpark/bear-slice/config"
	"github.com/bearpark/bear-slice/event"
	"github.com/bearpark/bear-slice/parameter"
	"github.com/bearpark/bear-slice/status"
	"github.com/bearpark/bear-slice/store"
	"github.com/bearpark/bear-slice/system"
	"github.com/bearpark/bear-slice/vmath"
)

// ErrClosed is returned by operations on a closed engine
var ErrClosed = errors.New("arcade: engine closed")

// Options configures an engine
type Options struct {
	Seed     uint64
	Store    store.Store      // nil keeps nothing across rounds
	Emitter  event.Emitter    // nil discards notifications
	Registry *status.Registry // nil uses a private registry

	// StoreTimeout bounds each persistence call
	StoreTimeout time.Duration
}

// Engine is the arcade scoring engine
// It is single-owner: every method must be called from the same goroutine
type Engine struct {
	tuning *config.Tuning
	opts   Options
	world  *system.World

	detector   *system.CollisionDetector
	modes      *system.ModeController
	resolver   *system.SliceResolver
	bonus      *system.BonusEngine
	difficulty *system.DifficultyController
	spawner    *system.Spawner
	lifecycle  *system.LifecycleController

	best   int
	paused bool
	closed bool
}

// New validates the tuning as it stands, loads the best score and starts the first round
func New(t *config.Tuning, opts Options) (*Engine, error) {
	if t == nil {
		return nil, errors.New("arcade: nil tuning")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = parameter.StoreTimeout
	}

	e := &Engine{tuning: t, opts: opts}
	e.world = system.NewWorld(t, opts.Seed, opts.Emitter, opts.Registry)
	e.wire()

	if opts.Store != nil {
		ctx, cancel := e.storeContext()
		best, err := store.LoadOrZero(func() (int, error) { return opts.Store.LoadBestScore(ctx) })
		cancel()
		if err != nil {
			log.Printf("arcade: load best score: %v", err)
		}
		e.best = best
	}

	e.startRound()
	return e, nil
}

func (e *Engine) wire() {
	w := e.world
	e.detector = system.NewCollisionDetector(w)
	e.modes = system.NewModeController(w)
	e.resolver = system.NewSliceResolver(w, e.modes, system.SliceHooks{
		Hazard: func(*component.Object) { e.lifecycle.End(system.CauseHazard) },
		Bonus:  func(o *component.Object) { e.bonus.Engage(o) },
		Scored: func() { e.difficulty.Evaluate() },
	})
	e.bonus = system.NewBonusEngine(w, e.resolver)
	e.difficulty = system.NewDifficultyController(w, e.modes)
	e.spawner = system.NewSpawner(w, e.difficulty, e.bonus)
	e.lifecycle = system.NewLifecycleController(w, e.resolver, e.bonus)

	e.modes.OnChange = e.difficulty.RateChanged
	e.difficulty.OnRateChange = e.spawner.Arm
	e.bonus.OnFinished = func() {
		e.difficulty.StartGrace()
		e.difficulty.RateChanged()
	}
	e.lifecycle.Teardown = e.teardown
	e.lifecycle.OnRoundOver = e.persist
}

func (e *Engine) storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), e.opts.StoreTimeout)
}

func (e *Engine) teardown() {
	e.spawner.Reset()
	e.modes.Reset()
	e.resolver.Reset()
	e.bonus.Reset()
	e.difficulty.Reset()
	e.world.Trail.Clear()
}

func (e *Engine) startRound() {
	w := e.world
	w.Timers.CancelAll()
	e.teardown()

	w.Objects.Clear()
	w.Round = component.RoundState{
		ID:        uuid.NewString(),
		Lives:     e.tuning.Lives,
		BestScore: e.best,
	}
	w.Combo = component.ComboState{}
	w.Bonus.Clear()
	e.lifecycle.Restart()

	w.Stats.LivesCurrent.Store(int64(w.Round.Lives))
	w.Stats.LiveObjects.Store(0)
	w.Emit(event.EventRoundStarted, &event.RoundStartedPayload{
		RoundID:   w.Round.ID,
		Lives:     w.Round.Lives,
		BestScore: e.best,
	})
	w.Emit(event.EventLivesChanged, &event.LivesChangedPayload{Lives: w.Round.Lives})

	e.difficulty.Start()
	e.difficulty.RateChanged()
}

// persist runs once per round, before round-over is announced
func (e *Engine) persist(score int, cause string) {
	w := e.world
	log.Printf("arcade: round %s over (%s) score=%d best=%d", w.Round.ID, cause, score, e.best)
	newBest := score > e.best
	if newBest {
		e.best = score
	}

	s := e.opts.Store
	if s == nil {
		return
	}
	ctx, cancel := e.storeContext()
	defer cancel()
	if newBest {
		if err := s.SaveBestScore(ctx, score); err != nil {
			log.Printf("arcade: save best score: %v", err)
		}
	}
	if _, err := store.AddCumulative(ctx, s, store.KeyTotalSliced, w.Round.Slices); err != nil {
		log.Printf("arcade: %v", err)
	}
	if _, err := store.AddCumulative(ctx, s, store.KeyRoundsPlayed, 1); err != nil {
		log.Printf("arcade: %v", err)
	}
}

// HandleInput feeds one pointer event
// Each move tests the newest blade segment once and resolves all hits as one batch
func (e *Engine) HandleInput(in InputEvent) {
	w := e.world
	if e.closed {
		return
	}
	if in.Type == PointerUp {
		w.Trail.End()
		return
	}
	if e.paused || w.Round.Terminal {
		return
	}
	p := vmath.V2(in.X, in.Y)
	if !p.IsFinite() {
		return
	}
	sample := component.Sample{Pos: p, At: in.At}

	switch in.Type {
	case PointerDown:
		w.Trail.Begin(sample)
	case PointerMove:
		if !w.Trail.Active() {
			w.Trail.Begin(sample)
			return
		}
		if !w.Trail.Push(sample) {
			return
		}
		from, to, ok := w.Trail.LastSegment()
		if !ok {
			return
		}
		e.slice(from.Pos, to.Pos)
	}
}

func (e *Engine) slice(a, b vmath.Vec2) {
	w := e.world
	focus := e.bonus.Focus()
	hits := e.detector.Detect(a, b, focus)

	if focus.Engaged {
		if len(hits) > 0 {
			e.bonus.Hit(b)
		}
		return
	}
	if len(hits) == 0 {
		for _, nm := range e.detector.NearMisses(a, b, focus) {
			w.Emit(event.EventNearMiss, &event.NearMissPayload{ObjectID: uint64(nm.Object.ID), Distance: nm.Distance})
		}
		return
	}
	e.resolver.Resolve(hits)
}

// Advance moves game time forward by dt: timers first, then motion and physics
func (e *Engine) Advance(dt time.Duration) {
	w := e.world
	if e.closed || e.paused || w.Round.Terminal || dt <= 0 {
		return
	}
	w.Timers.Advance(dt)
	if w.Round.Terminal {
		return
	}
	e.bonus.Step()
	e.lifecycle.Step(dt)
}

// Pause suspends game time; returns false if already paused
func (e *Engine) Pause() bool {
	if e.closed || e.paused {
		return false
	}
	e.paused = true
	e.world.Trail.End()
	e.world.Emit(event.EventPaused, nil)
	return true
}

// Resume continues game time from where it stopped
func (e *Engine) Resume() bool {
	if e.closed || !e.paused {
		return false
	}
	e.paused = false
	e.world.Emit(event.EventResumed, nil)
	return true
}

// Paused reports whether game time is suspended
func (e *Engine) Paused() bool {
	return e.paused
}

// Restart abandons the current round and starts a fresh one
// An unfinished round is discarded without persistence or round-over
func (e *Engine) Restart() error {
	if e.closed {
		return ErrClosed
	}
	e.paused = false
	e.startRound()
	return nil
}

// Close cancels every timer and releases the store
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.world.Timers.CancelAll()
	e.teardown()
	e.world.Objects.Clear()
	if e.opts.Store != nil {
		return e.opts.Store.Close()
	}
	return nil
}

// Tuning returns the validated tuning the engine runs with
func (e *Engine) Tuning() *config.Tuning {
	return e.tuning
}

// Seed returns the RNG seed
func (e *Engine) Seed() uint64 {
	return e.opts.Seed
}

// Now returns the engine's game time
func (e *Engine) Now() time.Duration {
	return e.world.Now()
}

// Terminal reports whether the current round is over
func (e *Engine) Terminal() bool {
	return e.world.Round.Terminal
}

// BestScore returns the best score known to the engine
func (e *Engine) BestScore() int {
	return e.best
}
