package system

import (
	"math"

	"github.com/bearpark/bear-slice/component"
	"github.com/bearpark/bear-slice/engine"
	"github.com/bearpark/bear-slice/event"
)

// SliceHooks connects the resolver to the systems it hands off to
type SliceHooks struct {
	Hazard func(o *component.Object) // Ends the round
	Bonus  func(o *component.Object) // Starts the ladder
	Scored func()                    // Difficulty feedback after a scoring batch
}

// SliceResult summarizes one resolved batch
type SliceResult struct {
	Sliced  int
	Perfect int
	Points  int
	Hazard  bool
	Bonus   bool
}

// SliceResolver applies scoring and combo rules to one detection batch
type SliceResolver struct {
	world *World
	modes *ModeController
	hooks SliceHooks

	comboTimer   engine.TimerID
	perfectTimer engine.TimerID
}

// NewSliceResolver creates a resolver
func NewSliceResolver(w *World, modes *ModeController, hooks SliceHooks) *SliceResolver {
	return &SliceResolver{world: w, modes: modes, hooks: hooks}
}

// Resolve scores a batch detected by a single blade segment
// A hazard anywhere in the batch ends the round and nothing else is credited
func (r *SliceResolver) Resolve(batch []*component.Object) SliceResult {
	w := r.world
	var res SliceResult
	if w.Round.Terminal || len(batch) == 0 {
		return res
	}

	for _, o := range batch {
		if o.Kind == component.KindHazard {
			o.Sliced = true
			res.Hazard = true
			w.Emit(event.EventHazardHit, objectPayload(o))
			if r.hooks.Hazard != nil {
				r.hooks.Hazard(o)
			}
			return res
		}
	}

	var items []*component.Object
	var bonus *component.Object
	for _, o := range batch {
		switch o.Kind {
		case component.KindItem:
			items = append(items, o)
		case component.KindBonus:
			if bonus == nil {
				bonus = o
			}
		}
	}

	if len(items) > 0 {
		res = r.scoreItems(items)
	}

	if bonus != nil && r.hooks.Bonus != nil {
		res.Bonus = true
		r.hooks.Bonus(bonus)
	}

	if res.Sliced > 0 && r.hooks.Scored != nil {
		r.hooks.Scored()
	}
	return res
}

func (r *SliceResolver) scoreItems(items []*component.Object) SliceResult {
	w := r.world
	t := w.Tuning
	now := w.Now()
	center := w.Center()

	// Multipliers read the state as it stood before this batch
	comboMult := 1.0
	if w.Combo.Count > 1 {
		comboMult = t.ComboMultiplier
	}
	recent := w.Combo.HasSliced && now-w.Combo.LastSliceAt < t.PerfectSliceWindow
	modeMult := w.Modes.Multiplier()

	var res SliceResult
	for _, o := range items {
		o.Sliced = true

		perfect := recent || o.Pos.Dist(center) < t.PerfectZoneRadius
		mult := comboMult * modeMult
		quality := event.QualityNormal
		if perfect {
			mult *= t.PerfectMultiplier
			quality = event.QualityPerfect
			res.Perfect++
		}
		points := int(math.Floor(float64(o.Points) * mult))
		if points < 0 {
			points = 0
		}
		res.Points += points
		res.Sliced++

		w.Emit(event.EventSliceQuality, &event.SliceQualityPayload{
			ObjectID: uint64(o.ID),
			Quality:  quality,
			Points:   points,
			X:        o.Pos.X,
			Y:        o.Pos.Y,
		})
		w.Objects.Remove(o.ID)
	}

	if res.Sliced >= t.SpectacularThreshold && t.SpectacularThreshold > 0 {
		extra := res.Sliced * t.SpectacularBonus
		res.Points += extra
		w.Emit(event.EventSpectacularSlice, &event.SpectacularPayload{Count: res.Sliced, Bonus: extra})
	}

	w.Round.Score += res.Points
	w.Round.Slices += res.Sliced
	w.Round.Perfect += res.Perfect
	w.Stats.Sliced.Add(int64(res.Sliced))
	w.Stats.Perfect.Add(int64(res.Perfect))
	w.emitScore(res.Points)

	w.Combo.Count += res.Sliced
	if w.Combo.Count > w.Combo.Max {
		w.Combo.Max = w.Combo.Count
	}
	w.Combo.Streak += res.Sliced
	w.Combo.LastSliceAt = now
	w.Combo.HasSliced = true
	r.armComboTimer()
	w.emitCombo()
	w.emitStreak()

	if res.Perfect > 0 {
		r.trackPerfect(res.Perfect)
	}
	if w.Combo.Count >= t.FrenzyThreshold && !r.modes.Active(component.ModeFrenzy) {
		r.modes.Activate(component.ModeFrenzy, t.FrenzyDuration, t.FrenzyMultiplier, t.FrenzySpawnFactor)
	}
	return res
}

func (r *SliceResolver) armComboTimer() {
	w := r.world
	w.Timers.Cancel(r.comboTimer)
	gen := w.Timers.Generation()
	r.comboTimer = w.Timers.After(w.Tuning.ComboTimeWindow, func() {
		if gen != w.Timers.Generation() || w.Round.Terminal {
			return
		}
		r.comboTimer = 0
		if w.Combo.Count != 0 {
			w.Combo.Reset()
			w.emitCombo()
		}
	})
}

func (r *SliceResolver) trackPerfect(n int) {
	w := r.world
	t := w.Tuning
	w.Combo.PerfectStreak += n
	if w.Combo.PerfectStreak >= t.OnFireThreshold && !r.modes.Active(component.ModeOnFire) {
		w.Combo.PerfectStreak = 0
		r.modes.Activate(component.ModeOnFire, t.OnFireDuration, t.OnFireMultiplier, 1)
		return
	}

	w.Timers.Cancel(r.perfectTimer)
	gen := w.Timers.Generation()
	r.perfectTimer = w.Timers.After(t.OnFireWindow, func() {
		if gen != w.Timers.Generation() {
			return
		}
		r.perfectTimer = 0
		if !r.modes.Active(component.ModeOnFire) {
			w.Combo.PerfectStreak = 0
		}
	})
}

// CountLadderHit extends the streak for a bonus ladder hit; the combo window is untouched
func (r *SliceResolver) CountLadderHit() {
	w := r.world
	w.Combo.Streak++
	w.emitStreak()
}

// BreakCombo clears combo and streak after a life is lost
func (r *SliceResolver) BreakCombo() {
	w := r.world
	w.Timers.Cancel(r.comboTimer)
	r.comboTimer = 0
	comboChanged := w.Combo.Count != 0
	streakChanged := w.Combo.Streak != 0
	w.Combo.Count = 0
	w.Combo.Streak = 0
	w.Combo.PerfectStreak = 0
	if comboChanged {
		w.emitCombo()
	}
	if streakChanged {
		w.emitStreak()
	}
}

// Reset drops combo timers for teardown
func (r *SliceResolver) Reset() {
	r.world.Timers.Cancel(r.comboTimer)
	r.world.Timers.Cancel(r.perfectTimer)
	r.comboTimer = 0
	r.perfectTimer = 0
}
