package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/bearpark/bear-slice/event"
	"github.com/bearpark/bear-slice/parameter"
	"github.com/bearpark/bear-slice/status"
)

// StepFunc advances the simulation by dt of game time
type StepFunc func(dt time.Duration)

// Loop owns the simulation goroutine
// Ticks, submitted work and notification dispatch all run on that goroutine,
// so the simulation itself needs no locking
type Loop struct {
	clock        *PausableClock
	step         StepFunc
	router       *event.Router
	tickInterval time.Duration

	lastGameTime     time.Duration // Game time at last step
	nextTickDeadline time.Duration // Next tick deadline in game time for drift correction

	work chan func()

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	tickCount    atomic.Uint64
	statTicks    *atomic.Int64
	statPauses   *atomic.Int64
	statPausedMs *atomic.Int64
}

// NewLoop creates a loop stepping at tickInterval; router may be nil
func NewLoop(clock *PausableClock, tickInterval time.Duration, step StepFunc, router *event.Router, reg *status.Registry) *Loop {
	l := &Loop{
		clock:        clock,
		step:         step,
		router:       router,
		tickInterval: tickInterval,
		work:         make(chan func(), parameter.SubmitQueueSize),
		stopChan:     make(chan struct{}),
	}
	if reg != nil {
		l.statTicks = reg.Ints.Get("engine.ticks")
		l.statPauses = reg.Ints.Get("engine.pauses")
		l.statPausedMs = reg.Ints.Get("engine.paused_ms")
	}
	return l
}

// Start begins the loop goroutine
func (l *Loop) Start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		go l.run()
	}
}

// Stop halts the loop and waits for the goroutine to exit
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
		if l.running.CompareAndSwap(true, false) {
			l.wg.Wait()
		}
	})
}

// Submit queues fn to run on the loop goroutine
// Returns false once the loop is stopped
func (l *Loop) Submit(fn func()) bool {
	select {
	case <-l.stopChan:
		return false
	default:
	}
	select {
	case l.work <- fn:
		return true
	case <-l.stopChan:
		return false
	}
}

// Pause freezes game time; the loop keeps serving submitted work
func (l *Loop) Pause() {
	l.clock.Pause()
	l.publishPauses()
}

// Resume restarts game time
func (l *Loop) Resume() {
	l.clock.Resume()
	l.publishPauses()
}

func (l *Loop) publishPauses() {
	if l.statPauses == nil {
		return
	}
	l.statPauses.Store(int64(l.clock.Pauses()))
	l.statPausedMs.Store(l.clock.TotalPauseDuration().Milliseconds())
}

// Ticks returns the number of steps run
func (l *Loop) Ticks() uint64 {
	return l.tickCount.Load()
}

func (l *Loop) run() {
	defer l.wg.Done()

	l.lastGameTime = l.clock.Elapsed()
	l.nextTickDeadline = l.lastGameTime + l.tickInterval

	timer := time.NewTimer(l.tickInterval)
	defer timer.Stop()

	for {
		select {
		case <-l.stopChan:
			return

		case fn := <-l.work:
			fn()
			l.dispatch()

		case <-timer.C:
			var sleep time.Duration
			if l.clock.IsPaused() {
				// Increase sleep interval while paused to save CPU
				sleep = l.tickInterval * 2
				l.publishPauses()
			} else {
				sleep = l.tick()
			}
			timer.Reset(sleep)
		}
	}
}

// tick steps the simulation if the deadline passed and returns the sleep until the next deadline
func (l *Loop) tick() time.Duration {
	gameNow := l.clock.Elapsed()
	if gameNow < l.nextTickDeadline {
		return l.nextTickDeadline - gameNow
	}

	dt := gameNow - l.lastGameTime
	if dt > parameter.MaxTickDelta {
		dt = parameter.MaxTickDelta
	}
	if dt > 0 {
		l.step(dt)
		l.tickCount.Add(1)
		if l.statTicks != nil {
			l.statTicks.Add(1)
		}
	}
	l.lastGameTime = gameNow
	l.dispatch()

	l.nextTickDeadline += l.tickInterval
	if maxBehind := l.tickInterval * 2; gameNow-l.nextTickDeadline > maxBehind {
		l.nextTickDeadline = gameNow + l.tickInterval
	}

	sleep := l.nextTickDeadline - l.clock.Elapsed()
	if sleep < time.Millisecond {
		sleep = time.Millisecond
	}
	return sleep
}

func (l *Loop) dispatch() {
	if l.router != nil {
		l.router.DispatchAll()
	}
}
