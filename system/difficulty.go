package system

import (
	"time"

	"github.com/bearpark/bear-slice/component"
	"github.com/bearpark/bear-slice/engine"
	"github.com/bearpark/bear-slice/event"
	"github.com/bearpark/bear-slice/parameter"
	"github.com/bearpark/bear-slice/vmath"
)

// Level is the derived difficulty at one instant
type Level struct {
	Score     int // floor(score / interval)
	Time      int // floor(elapsed / interval), capped
	Total     int // Blend of both dimensions
	Effective int // Total reduced during post-bonus grace
}

// BlendLevels combines score and time levels, rewarding progress on both
func BlendLevels(score, time int) int {
	hi, lo := max(score, time), min(score, time)
	return hi + lo/2
}

// DifficultyController derives levels and rolls the probabilistic modes
type DifficultyController struct {
	world *World
	modes *ModeController

	roundStart time.Duration
	graceUntil time.Duration
	grace      bool

	lastScoreLevel int
	lastTimeLevel  int
	lastEffective  int
	lastRateBucket int
	checkTimer     engine.TimerID

	// OnRateChange receives the new spawn interval when it should be re-armed
	OnRateChange func(interval time.Duration)
}

// NewDifficultyController creates a controller
func NewDifficultyController(w *World, modes *ModeController) *DifficultyController {
	return &DifficultyController{world: w, modes: modes}
}

// Start resets level tracking for a round beginning now and arms the periodic check
func (d *DifficultyController) Start() {
	w := d.world
	d.roundStart = w.Now()
	d.grace = false
	d.lastScoreLevel, d.lastTimeLevel, d.lastEffective, d.lastRateBucket = 0, 0, 0, 0

	w.Timers.Cancel(d.checkTimer)
	gen := w.Timers.Generation()
	d.checkTimer = w.Timers.Every(w.Tuning.DifficultyCheckInterval, func() {
		if gen != w.Timers.Generation() || w.Round.Terminal {
			return
		}
		d.Evaluate()
	})
}

// Level computes the difficulty at the current game time
func (d *DifficultyController) Level() Level {
	return d.LevelAt(d.world.Round.Score, d.world.Now())
}

// LevelAt computes the difficulty for score at game time now
func (d *DifficultyController) LevelAt(score int, now time.Duration) Level {
	t := d.world.Tuning
	var lv Level
	if t.DifficultyInterval > 0 && score > 0 {
		lv.Score = score / t.DifficultyInterval
	}
	if elapsed := now - d.roundStart; t.TimeInterval > 0 && elapsed > 0 {
		lv.Time = min(int(elapsed/t.TimeInterval), t.MaxTimeLevel)
	}
	lv.Total = BlendLevels(lv.Score, lv.Time)
	lv.Effective = lv.Total - d.graceReduction(now)
	if lv.Effective < 0 {
		lv.Effective = 0
	}
	return lv
}

func (d *DifficultyController) graceReduction(now time.Duration) int {
	t := d.world.Tuning
	if !d.grace || now >= d.graceUntil || t.GraceDuration <= 0 {
		return 0
	}
	remaining := float64(d.graceUntil-now) / float64(t.GraceDuration)
	return int(remaining * t.GraceMaxReduction)
}

// StartGrace begins the post-bonus reduction window
func (d *DifficultyController) StartGrace() {
	now := d.world.Now()
	d.grace = true
	d.graceUntil = now + d.world.Tuning.GraceDuration
	d.lastEffective = d.LevelAt(d.world.Round.Score, now).Effective
}

// InGrace reports whether the post-bonus window is open
func (d *DifficultyController) InGrace() bool {
	return d.grace && d.world.Now() < d.graceUntil
}

// SpawnInterval is the cadence at lv, folded with active mode factors
func (d *DifficultyController) SpawnInterval(lv Level) time.Duration {
	t := d.world.Tuning
	base := vmath.Ease(float64(lv.Effective), float64(t.MinSpawnRate), float64(t.MaxSpawnRate), float64(t.SpawnRateCapLevel))
	interval := time.Duration(base * d.world.Modes.SpawnFactor())
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	return interval
}

// Evaluate announces level changes, rolls the probabilistic modes and re-arms spawning
func (d *DifficultyController) Evaluate() {
	w := d.world
	if w.Round.Terminal {
		return
	}
	lv := d.Level()
	w.Stats.Level.Store(int64(lv.Effective))

	rearm := false
	if lv.Score > d.lastScoreLevel {
		d.lastScoreLevel = lv.Score
		if lv.Score <= parameter.MaxAnnouncedLevel {
			w.Emit(event.EventDifficultyIncreased, &event.DifficultyPayload{Level: lv.Score})
		}
		rearm = true
	}
	if lv.Time > d.lastTimeLevel {
		d.lastTimeLevel = lv.Time
		w.Emit(event.EventTimeDifficultyIncreased, &event.DifficultyPayload{Level: lv.Time})
		rearm = true
	}
	if lv.Effective != d.lastEffective {
		d.lastEffective = lv.Effective
		rearm = true
	}
	if bucket := w.Round.Score / parameter.SpawnRateStep; bucket != d.lastRateBucket {
		d.lastRateBucket = bucket
		rearm = true
	}

	// Mode activation re-arms through OnChange
	if d.rollModes(lv) {
		return
	}
	if rearm {
		d.RateChanged()
	}
}

// rollModes gives burst and chaos their chance; the two never overlap
func (d *DifficultyController) rollModes(lv Level) bool {
	w := d.world
	t := w.Tuning
	if d.modes.Active(component.ModeBurst) || d.modes.Active(component.ModeChaos) {
		return false
	}
	if lv.Total >= t.ChaosMinLevel && w.RNG.Float64() < t.ChaosChance {
		d.modes.Activate(component.ModeChaos, t.ChaosDuration, 1, t.ChaosSpawnFactor)
		return true
	}
	if lv.Total >= t.BurstMinLevel && w.RNG.Float64() < t.BurstChance {
		d.modes.Activate(component.ModeBurst, t.BurstDuration, 1, t.BurstSpawnFactor)
		return true
	}
	return false
}

// RateChanged pushes the current interval to the spawner
func (d *DifficultyController) RateChanged() {
	interval := d.SpawnInterval(d.Level())
	d.world.Stats.SpawnRateMs.Set(float64(interval) / float64(time.Millisecond))
	if d.OnRateChange != nil {
		d.OnRateChange(interval)
	}
}

// Reset cancels the periodic check
func (d *DifficultyController) Reset() {
	d.world.Timers.Cancel(d.checkTimer)
	d.checkTimer = 0
	d.grace = false
}
