package system

import (
	"testing"
	"time"

	"github.com/bearpark/bear-slice/component"
	"github.com/bearpark/bear-slice/event"
	"github.com/bearpark/bear-slice/parameter"
	"github.com/bearpark/bear-slice/vmath"
)

// rig wires the systems the way the arcade engine does
type rig struct {
	w          *World
	rec        *recorder
	modes      *ModeController
	resolver   *SliceResolver
	bonus      *BonusEngine
	difficulty *DifficultyController
	spawner    *Spawner
	lifecycle  *LifecycleController
}

func newRig(t *testing.T, overrides map[string]float64) *rig {
	t.Helper()
	w, rec := newWorld(t, overrides)
	r := &rig{w: w, rec: rec}
	r.modes = NewModeController(w)
	r.resolver = NewSliceResolver(w, r.modes, SliceHooks{
		Hazard: func(*component.Object) { r.lifecycle.End(CauseHazard) },
		Bonus:  func(o *component.Object) { r.bonus.Engage(o) },
		Scored: func() { r.difficulty.Evaluate() },
	})
	r.bonus = NewBonusEngine(w, r.resolver)
	r.difficulty = NewDifficultyController(w, r.modes)
	r.spawner = NewSpawner(w, r.difficulty, r.bonus)
	r.lifecycle = NewLifecycleController(w, r.resolver, r.bonus)
	r.modes.OnChange = r.difficulty.RateChanged
	r.difficulty.OnRateChange = r.spawner.Arm
	r.bonus.OnFinished = r.difficulty.StartGrace
	r.lifecycle.Teardown = func() {
		r.spawner.Reset()
		r.modes.Reset()
		r.resolver.Reset()
		r.bonus.Reset()
		r.difficulty.Reset()
	}
	r.difficulty.Start()
	return r
}

func (r *rig) advance(dt time.Duration) {
	r.w.Timers.Advance(dt)
	r.bonus.Step()
	r.lifecycle.Step(dt)
}

func TestBonusWindowShrinks(t *testing.T) {
	r := newRig(t, nil)
	tests := []struct {
		hits int
		want time.Duration
	}{
		{0, 3000 * time.Millisecond},
		{1, 1500 * time.Millisecond},
		{2, 1450 * time.Millisecond},
		{10, 1050 * time.Millisecond},
		{29, 100 * time.Millisecond},
		{40, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := r.bonus.Window(tt.hits); got != tt.want {
			t.Errorf("Window(%d) = %v, want %v", tt.hits, got, tt.want)
		}
	}
}

func TestLadderPoints(t *testing.T) {
	tests := []struct {
		hits, perHit, want int
	}{
		{0, 25, 0},
		{1, 25, 25},
		{20, 25, 25},
		{21, 25, 0},
		{-3, 25, 0},
		{5, -10, 0},
	}
	for _, tt := range tests {
		if got := LadderPoints(tt.hits, 20, tt.perHit); got != tt.want {
			t.Errorf("LadderPoints(%d, 20, %d) = %d, want %d", tt.hits, tt.perHit, got, tt.want)
		}
	}
}

func TestBonusLadderCompletes(t *testing.T) {
	r := newRig(t, nil)
	w := r.w
	other := place(t, w, component.KindItem, 100, 100)
	hazard := place(t, w, component.KindHazard, 900, 100)
	bonus := place(t, w, component.KindBonus, 400, 400)

	if !r.bonus.Engage(bonus) {
		t.Fatal("Engage failed")
	}
	if r.bonus.State() != BonusActive || !r.bonus.Engaged() {
		t.Fatalf("state = %s", r.bonus.StateName())
	}
	if _, ok := w.Objects.Get(other.ID); ok {
		t.Error("ordinary item survived bonus entry")
	}
	if _, ok := w.Objects.Get(hazard.ID); ok {
		t.Error("hazard survived bonus entry")
	}
	if ev, ok := r.rec.last(event.EventAutoSlice); !ok || ev.Payload.(*event.AutoSlicePayload).Cleared != 1 {
		t.Errorf("auto-slice notification = %+v", ev)
	}
	if w.Round.Slices != 1 {
		t.Errorf("slices after auto-clear = %d, want 1", w.Round.Slices)
	}
	if r.bonus.Engage(bonus) {
		t.Error("second Engage succeeded")
	}

	base := w.Round.Score
	if base != 0 {
		t.Errorf("auto-clear scored %d", base)
	}
	for i := 1; i <= 20; i++ {
		r.advance(40 * time.Millisecond)
		o, ok := w.Objects.Get(bonus.ID)
		if !ok {
			t.Fatalf("bonus vanished before hit %d", i)
		}
		if o.Pos.Dist(w.Bonus.Origin) > parameter.BonusMotionRadius+1e-9 {
			t.Fatalf("hit %d: bonus %v strayed from origin %v", i, o.Pos, w.Bonus.Origin)
		}
		if !r.bonus.Hit(o.Pos.Add(vmath.V2(10, 0))) {
			t.Fatalf("hit %d rejected", i)
		}
		wantPhase := min(i/2, 6)
		if w.Bonus.Phase != wantPhase && i < 20 {
			t.Errorf("after %d hits phase = %d, want %d", i, w.Bonus.Phase, wantPhase)
		}
	}
	if got := w.Round.Score - base; got != 500 {
		t.Errorf("ladder awarded %d, want 500", got)
	}
	if r.bonus.State() != BonusFinalizing {
		t.Fatalf("state after 20 hits = %s", r.bonus.StateName())
	}
	if r.bonus.Hit(w.Bonus.Origin) {
		t.Error("hit accepted while finalizing")
	}
	if r.rec.count(event.EventBonusProgress) != 20 {
		t.Errorf("progress notifications = %d", r.rec.count(event.EventBonusProgress))
	}

	r.advance(w.Tuning.BonusFinalizeDelay)
	if r.bonus.Engaged() {
		t.Fatalf("still engaged after finalize delay: %s", r.bonus.StateName())
	}
	if _, ok := w.Objects.Get(bonus.ID); ok {
		t.Error("bonus object not removed after finalizing")
	}
	if !r.difficulty.InGrace() {
		t.Error("grace window not opened after the ladder")
	}
	fin, _ := r.rec.last(event.EventBonusFinished)
	if p := fin.Payload.(*event.BonusFinishedPayload); !p.Complete || p.Points != 500 {
		t.Errorf("finished payload = %+v", p)
	}
}

func TestBonusTimeoutIsNormalExit(t *testing.T) {
	r := newRig(t, nil)
	w := r.w
	bonus := place(t, w, component.KindBonus, 400, 400)
	r.bonus.Engage(bonus)

	r.advance(100 * time.Millisecond)
	o, _ := w.Objects.Get(bonus.ID)
	r.bonus.Hit(o.Pos)
	r.advance(100 * time.Millisecond)
	o, _ = w.Objects.Get(bonus.ID)
	r.bonus.Hit(o.Pos)

	// Window after the second hit is 1450ms
	r.advance(1449 * time.Millisecond)
	if r.bonus.State() != BonusActive {
		t.Fatal("ladder timed out early")
	}
	r.advance(time.Millisecond)
	if r.bonus.State() != BonusFinalizing {
		t.Fatalf("state = %s, want finalizing", r.bonus.StateName())
	}
	fin, _ := r.rec.last(event.EventBonusFinished)
	if p := fin.Payload.(*event.BonusFinishedPayload); p.Complete || p.Hits != 2 || p.Points != 50 {
		t.Errorf("finished payload = %+v", p)
	}
}

func TestBonusHitNeedsProximity(t *testing.T) {
	r := newRig(t, nil)
	bonus := place(t, r.w, component.KindBonus, 400, 400)
	r.bonus.Engage(bonus)
	o, _ := r.w.Objects.Get(bonus.ID)
	if r.bonus.Hit(o.Pos.Add(vmath.V2(r.w.Tuning.BonusHitRadius+1, 0))) {
		t.Error("hit accepted outside the hit radius")
	}
	if r.w.Bonus.Hits != 0 {
		t.Errorf("hits = %d", r.w.Bonus.Hits)
	}
}

func TestBonusBlocksSpawnsAndLifeLoss(t *testing.T) {
	r := newRig(t, map[string]float64{
		"minSpawnRate": 100, "maxSpawnRate": 100,
		"minBombChance": 0, "maxBombChance": 0, "goldenChance": 0,
	})
	w := r.w
	r.spawner.Arm(100 * time.Millisecond)
	bonus := place(t, w, component.KindBonus, 400, 400)
	r.bonus.Engage(bonus)

	before := w.Stats.Spawned.Load()
	r.advance(2 * time.Second)
	if !r.bonus.Engaged() {
		t.Fatal("ladder ended before the check")
	}
	if got := w.Stats.Spawned.Load() - before; got != 0 {
		t.Errorf("%d objects spawned during the ladder", got)
	}

	// A stray unsliced item leaving the field costs nothing while engaged
	stray := place(t, w, component.KindItem, 100, w.Tuning.ScreenHeight+w.Tuning.FallMargin+1)
	r.advance(16 * time.Millisecond)
	if _, ok := w.Objects.Get(stray.ID); ok {
		t.Error("stray item not removed")
	}
	if w.Round.Lives != w.Tuning.Lives {
		t.Errorf("lives = %d during the ladder", w.Round.Lives)
	}
}

func TestMotionStaysBounded(t *testing.T) {
	rng := vmath.NewFastRand(3)
	origin := vmath.V2(640, 310)
	for k := MotionFloat; k <= MotionNightmare; k++ {
		t.Run(k.String(), func(t *testing.T) {
			m := NewMotion(k, origin, 0)
			for now := time.Duration(0); now < 10*time.Second; now += 16 * time.Millisecond {
				p := m.Position(now, rng)
				if !p.IsFinite() || p.Dist(origin) > parameter.BonusMotionRadius+1e-9 {
					t.Fatalf("at %v position %v is %.2f from origin", now, p, p.Dist(origin))
				}
			}
		})
	}
}

func TestMotionSwitchIsContinuous(t *testing.T) {
	origin := vmath.V2(640, 310)
	for k := MotionFloat; k < MotionNightmare; k++ {
		next := k + 1
		t.Run(k.String()+"->"+next.String(), func(t *testing.T) {
			rng := vmath.NewFastRand(7)
			m := NewMotion(k, origin, 0)
			var now time.Duration
			var before vmath.Vec2
			for ; now < 700*time.Millisecond; now += 16 * time.Millisecond {
				before = m.Position(now, rng)
			}
			now -= 16 * time.Millisecond

			m.Switch(next, before, now)
			if at := m.Position(now, rng); at.Dist(before) > 1e-9 {
				t.Fatalf("jumped from %v to %v at the switch", before, at)
			}
			prev := before
			for step := 0; step < 20; step++ {
				now += time.Millisecond
				p := m.Position(now, rng)
				if d := p.Dist(prev); d > 5 {
					t.Fatalf("%v after switch moved %.2f in 1ms", time.Duration(step+1)*time.Millisecond, d)
				}
				prev = p
			}
		})
	}
}

func TestMotionForPhaseClamps(t *testing.T) {
	if MotionForPhase(-1) != MotionFloat || MotionForPhase(3) != MotionFigureEight || MotionForPhase(99) != MotionNightmare {
		t.Error("MotionForPhase does not clamp to the generator table")
	}
}

func TestBonusAutoClearCountsItemsOnly(t *testing.T) {
	tests := []struct {
		name           string
		items, hazards int
		sliced         bool
		wantSlices     int
	}{
		{"items", 3, 0, false, 3},
		{"hazards", 0, 2, false, 0},
		{"mixed", 2, 2, false, 2},
		{"already sliced", 2, 0, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, nil)
			w := r.w
			for i := 0; i < tt.items; i++ {
				o := place(t, w, component.KindItem, 100+float64(i)*50, 100)
				o.Sliced = tt.sliced
			}
			for i := 0; i < tt.hazards; i++ {
				place(t, w, component.KindHazard, 100+float64(i)*50, 300)
			}
			bonus := place(t, w, component.KindBonus, 400, 400)
			if !r.bonus.Engage(bonus) {
				t.Fatal("Engage failed")
			}
			if w.Round.Slices != tt.wantSlices || w.Round.Score != 0 || w.Round.Lives != w.Tuning.Lives {
				t.Errorf("slices %d score %d lives %d", w.Round.Slices, w.Round.Score, w.Round.Lives)
			}
		})
	}
}

func TestBonusWindowLeft(t *testing.T) {
	r := newRig(t, nil)
	w := r.w
	if r.bonus.WindowLeft() != 0 {
		t.Error("idle ladder reports a window")
	}
	bonus := place(t, w, component.KindBonus, 400, 400)
	r.bonus.Engage(bonus)

	r.advance(500 * time.Millisecond)
	if got, want := r.bonus.WindowLeft(), w.Tuning.BonusHoverDuration-500*time.Millisecond; got != want {
		t.Errorf("before first hit WindowLeft = %v, want %v", got, want)
	}
	o, _ := w.Objects.Get(bonus.ID)
	r.bonus.Hit(o.Pos)
	r.advance(200 * time.Millisecond)
	if got, want := r.bonus.WindowLeft(), r.bonus.Window(1)-200*time.Millisecond; got != want {
		t.Errorf("after first hit WindowLeft = %v, want %v", got, want)
	}
}

func TestBonusFinishesWhenObjectVanishes(t *testing.T) {
	r := newRig(t, nil)
	w := r.w
	bonus := place(t, w, component.KindBonus, 400, 400)
	r.bonus.Engage(bonus)

	r.advance(40 * time.Millisecond)
	if r.bonus.State() != BonusActive {
		t.Fatalf("state = %s", r.bonus.StateName())
	}
	w.Objects.Remove(bonus.ID)
	r.advance(10 * time.Millisecond)
	if r.bonus.State() != BonusFinalizing {
		t.Fatalf("state = %s, want finalizing", r.bonus.StateName())
	}
	if r.rec.count(event.EventBonusFinished) != 1 {
		t.Error("missing bonus-finished notification")
	}
	r.advance(w.Tuning.BonusFinalizeDelay)
	if r.bonus.Engaged() {
		t.Errorf("still engaged: %s", r.bonus.StateName())
	}
}
