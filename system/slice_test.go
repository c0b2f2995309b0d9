package system

import (
	"testing"
	"time"

	"github.com/bearpark/bear-slice/component"
	"github.com/bearpark/bear-slice/event"
)

// quiet disables random spawning and mode rolls so tests control every object
var quiet = map[string]float64{
	"minSpawnRate": 1e9, "maxSpawnRate": 1e9,
	"minBombChance": 0, "maxBombChance": 0, "goldenChance": 0,
	"burstChance": 0, "chaosChance": 0,
}

func with(base map[string]float64, kv ...any) map[string]float64 {
	out := make(map[string]float64, len(base)+len(kv)/2)
	for k, v := range base {
		out[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i].(string)] = kv[i+1].(float64)
	}
	return out
}

func item(t *testing.T, w *World, x, y float64, points int) *component.Object {
	t.Helper()
	o := place(t, w, component.KindItem, x, y)
	o.Points = points
	return o
}

func TestResolveScoresWithoutMultipliers(t *testing.T) {
	r := newRig(t, quiet)
	o := item(t, r.w, 100, 100, 10)
	res := r.resolver.Resolve([]*component.Object{o})
	if res.Points != 10 || res.Perfect != 0 || r.w.Round.Score != 10 {
		t.Fatalf("result %+v score %d", res, r.w.Round.Score)
	}
	if _, ok := r.w.Objects.Get(o.ID); ok {
		t.Error("sliced object still live")
	}
	ev, _ := r.rec.last(event.EventSliceQuality)
	if p := ev.Payload.(*event.SliceQualityPayload); p.Quality != event.QualityNormal || p.Points != 10 {
		t.Errorf("quality payload = %+v", p)
	}
}

func TestResolveBatchIncrementsComboOnce(t *testing.T) {
	r := newRig(t, quiet)
	batch := []*component.Object{
		item(t, r.w, 100, 100, 10),
		item(t, r.w, 250, 100, 10),
		item(t, r.w, 400, 100, 10),
	}
	r.resolver.Resolve(batch)
	if r.w.Combo.Count != 3 || r.w.Combo.Streak != 3 {
		t.Errorf("combo %d streak %d, want 3/3", r.w.Combo.Count, r.w.Combo.Streak)
	}
	if n := r.rec.count(event.EventComboChanged); n != 1 {
		t.Errorf("combo-changed emitted %d times, want 1", n)
	}
	// Spectacular bonus: 3 × 50
	if r.w.Round.Score != 30+150 {
		t.Errorf("score = %d, want 180", r.w.Round.Score)
	}
}

func TestComboMultiplierUsesPreviousCount(t *testing.T) {
	r := newRig(t, with(quiet, "spectacularThreshold", 99.0))
	r.resolver.Resolve([]*component.Object{item(t, r.w, 100, 100, 10), item(t, r.w, 250, 100, 10)})
	if r.w.Round.Score != 20 {
		t.Fatalf("first batch score = %d, want 20", r.w.Round.Score)
	}
	r.w.Timers.Advance(500 * time.Millisecond)
	r.resolver.Resolve([]*component.Object{item(t, r.w, 100, 100, 10)})
	if r.w.Round.Score != 35 {
		t.Errorf("score = %d, want 35 with the 1.5x combo", r.w.Round.Score)
	}
}

func TestPerfectQuality(t *testing.T) {
	t.Run("centre zone", func(t *testing.T) {
		r := newRig(t, quiet)
		c := r.w.Center()
		r.resolver.Resolve([]*component.Object{item(t, r.w, c.X+50, c.Y, 10)})
		if r.w.Round.Score != 20 || r.w.Round.Perfect != 1 {
			t.Errorf("score %d perfect %d", r.w.Round.Score, r.w.Round.Perfect)
		}
	})
	t.Run("quick follow-up", func(t *testing.T) {
		r := newRig(t, quiet)
		r.resolver.Resolve([]*component.Object{item(t, r.w, 100, 100, 10)})
		r.w.Timers.Advance(100 * time.Millisecond)
		r.resolver.Resolve([]*component.Object{item(t, r.w, 100, 100, 10)})
		if r.w.Round.Score != 10+20 {
			t.Errorf("score = %d, want 30", r.w.Round.Score)
		}
	})
	t.Run("first slice is never quick", func(t *testing.T) {
		r := newRig(t, quiet)
		r.resolver.Resolve([]*component.Object{item(t, r.w, 100, 100, 10)})
		if r.w.Round.Perfect != 0 {
			t.Error("first slice rated perfect without a previous slice")
		}
	})
}

func TestComboResetsAfterWindow(t *testing.T) {
	r := newRig(t, quiet)
	r.resolver.Resolve([]*component.Object{item(t, r.w, 100, 100, 10)})
	window := r.w.Tuning.ComboTimeWindow

	r.w.Timers.Advance(window - time.Millisecond)
	if r.w.Combo.Count != 1 {
		t.Fatalf("combo reset early: %d", r.w.Combo.Count)
	}
	r.w.Timers.Advance(time.Millisecond)
	if r.w.Combo.Count != 0 {
		t.Errorf("combo = %d after the window, want 0", r.w.Combo.Count)
	}
	if r.w.Combo.Max != 1 || r.w.Combo.Streak != 1 {
		t.Errorf("max %d streak %d should survive the combo window", r.w.Combo.Max, r.w.Combo.Streak)
	}
}

func TestHazardEndsRoundWithoutCredit(t *testing.T) {
	r := newRig(t, quiet)
	batch := []*component.Object{
		item(t, r.w, 100, 100, 10),
		place(t, r.w, component.KindHazard, 200, 100),
	}
	res := r.resolver.Resolve(batch)
	if !res.Hazard || !r.w.Round.Terminal {
		t.Fatal("hazard did not end the round")
	}
	if r.w.Round.Score != 0 || r.w.Round.Lives != r.w.Tuning.Lives {
		t.Errorf("score %d lives %d after hazard", r.w.Round.Score, r.w.Round.Lives)
	}
	if r.lifecycle.Cause() != CauseHazard || r.rec.count(event.EventRoundOver) != 1 {
		t.Errorf("cause %q round-over %d", r.lifecycle.Cause(), r.rec.count(event.EventRoundOver))
	}
	if res := r.resolver.Resolve([]*component.Object{item(t, r.w, 300, 100, 10)}); res.Sliced != 0 {
		t.Error("terminal round accepted a slice")
	}
}

func TestFrenzyTriggersAtThreshold(t *testing.T) {
	r := newRig(t, with(quiet, "frenzyModeThreshold", 4.0, "spectacularThreshold", 99.0))
	for i := 0; i < 3; i++ {
		r.resolver.Resolve([]*component.Object{item(t, r.w, 100, 100, 10)})
		r.w.Timers.Advance(300 * time.Millisecond)
	}
	if r.modes.Active(component.ModeFrenzy) {
		t.Fatal("frenzy before the threshold")
	}
	r.resolver.Resolve([]*component.Object{item(t, r.w, 100, 100, 10)})
	if !r.modes.Active(component.ModeFrenzy) {
		t.Fatal("frenzy not activated at the threshold")
	}
	ev, _ := r.rec.last(event.EventModeActivated)
	if p := ev.Payload.(*event.ModePayload); p.Name != component.ModeFrenzy || p.Duration != r.w.Tuning.FrenzyDuration {
		t.Errorf("mode payload = %+v", p)
	}

	before := r.w.Round.Score
	r.w.Timers.Advance(300 * time.Millisecond)
	r.resolver.Resolve([]*component.Object{item(t, r.w, 100, 100, 10)})
	// combo 1.5 × frenzy 2
	if got := r.w.Round.Score - before; got != 30 {
		t.Errorf("frenzy slice awarded %d, want 30", got)
	}
}

func TestOnFireFromPerfectSlices(t *testing.T) {
	r := newRig(t, with(quiet, "onFireThreshold", 3.0))
	c := r.w.Center()
	for i := 0; i < 3; i++ {
		r.resolver.Resolve([]*component.Object{item(t, r.w, c.X, c.Y, 10)})
		r.w.Timers.Advance(1500 * time.Millisecond)
	}
	if !r.modes.Active(component.ModeOnFire) {
		t.Error("on-fire not activated after three perfect slices")
	}
}

func TestBreakComboOnLifeLoss(t *testing.T) {
	r := newRig(t, quiet)
	r.resolver.Resolve([]*component.Object{item(t, r.w, 100, 100, 10), item(t, r.w, 300, 100, 10)})
	r.lifecycle.LoseLife()
	if r.w.Combo.Count != 0 || r.w.Combo.Streak != 0 {
		t.Errorf("combo %d streak %d after life loss", r.w.Combo.Count, r.w.Combo.Streak)
	}
	if r.w.Round.Lives != r.w.Tuning.Lives-1 {
		t.Errorf("lives = %d", r.w.Round.Lives)
	}
}
