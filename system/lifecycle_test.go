package system

import (
	"testing"
	"time"

	"github.com/bearpark/bear-slice/component"
	"github.com/bearpark/bear-slice/event"
	"github.com/bearpark/bear-slice/vmath"
)

func TestMissedItemCostsLife(t *testing.T) {
	r := newRig(t, quiet)
	tu := r.w.Tuning
	tests := []struct {
		name string
		pos  vmath.Vec2
	}{
		{"bottom", vmath.V2(400, tu.ScreenHeight+tu.FallMargin+1)},
		{"left", vmath.V2(-tu.SideMargin-1, 300)},
		{"right", vmath.V2(tu.ScreenWidth+tu.SideMargin+1, 300)},
	}
	lives := tu.Lives
	for _, tt := range tests[:2] {
		t.Run(tt.name, func(t *testing.T) {
			place(t, r.w, component.KindItem, tt.pos.X, tt.pos.Y)
			r.advance(time.Millisecond)
			lives--
			if r.w.Round.Lives != lives {
				t.Errorf("lives = %d, want %d", r.w.Round.Lives, lives)
			}
		})
	}
	if r.rec.count(event.EventObjectMissed) != 2 || r.w.Round.Missed != 2 {
		t.Errorf("missed notifications %d, count %d", r.rec.count(event.EventObjectMissed), r.w.Round.Missed)
	}

	place(t, r.w, component.KindItem, tests[2].pos.X, tests[2].pos.Y)
	r.advance(time.Millisecond)
	if !r.w.Round.Terminal || r.w.Round.Lives != 0 {
		t.Fatalf("terminal %v lives %d", r.w.Round.Terminal, r.w.Round.Lives)
	}
	if r.lifecycle.State() != RoundOver || r.lifecycle.Cause() != CauseLivesExhausted {
		t.Errorf("state %d cause %q", r.lifecycle.State(), r.lifecycle.Cause())
	}
}

func TestHazardsAndSlicedItemsLeaveSilently(t *testing.T) {
	r := newRig(t, quiet)
	below := r.w.Tuning.ScreenHeight + r.w.Tuning.FallMargin + 1
	place(t, r.w, component.KindHazard, 100, below)
	place(t, r.w, component.KindBonus, 300, below)
	sliced := place(t, r.w, component.KindItem, 500, below)
	sliced.Sliced = true
	place(t, r.w, component.KindItem, 700, r.w.Tuning.TopLimit-1)
	r.advance(time.Millisecond)

	if r.w.Objects.Len() != 0 {
		t.Errorf("%d objects left", r.w.Objects.Len())
	}
	if r.w.Round.Lives != r.w.Tuning.Lives-1 {
		t.Errorf("lives = %d, want one lost for the item past the top", r.w.Round.Lives)
	}
}

func TestRoundOverOnceAndFrozen(t *testing.T) {
	r := newRig(t, with(quiet, "lives", 1.0))
	r.resolver.Resolve([]*component.Object{item(t, r.w, 100, 100, 10)})
	place(t, r.w, component.KindItem, 100, 5000)
	r.advance(time.Millisecond)
	if !r.w.Round.Terminal {
		t.Fatal("round not over")
	}

	score, lives := r.w.Round.Score, r.w.Round.Lives
	mark := len(r.rec.events)
	r.lifecycle.End(CauseHazard)
	r.lifecycle.LoseLife()
	r.resolver.Resolve([]*component.Object{item(t, r.w, 100, 100, 10)})
	place(t, r.w, component.KindItem, 100, 5000)
	r.advance(10 * time.Second)

	if r.rec.count(event.EventRoundOver) != 1 {
		t.Errorf("round-over emitted %d times", r.rec.count(event.EventRoundOver))
	}
	if r.w.Round.Score != score || r.w.Round.Lives != lives {
		t.Error("round state mutated after round over")
	}
	if extra := r.rec.events[mark:]; len(extra) != 0 {
		t.Errorf("notifications after round over: %v", extra)
	}
	if r.w.Timers.Len() != 0 {
		t.Errorf("%d timers pending after round over", r.w.Timers.Len())
	}
	ev, _ := r.rec.last(event.EventRoundOver)
	if p := ev.Payload.(*event.RoundOverPayload); p.FinalScore != 10 || !p.IsNewBest {
		t.Errorf("round-over payload = %+v", p)
	}
}

func TestSpawnerLaunchesAndDrops(t *testing.T) {
	r := newRig(t, with(quiet, "minSpawnRate", 200.0, "maxSpawnRate", 200.0, "minMultiChance", 0.0, "maxMultiChance", 0.0))
	r.spawner.Arm(200 * time.Millisecond)
	r.w.Timers.Advance(1000 * time.Millisecond)
	if got := r.w.Stats.Spawned.Load(); got != 5 {
		t.Errorf("spawned %d objects in 1s at 200ms, want 5", got)
	}
	if r.rec.count(event.EventObjectSpawned) != 5 {
		t.Errorf("spawn notifications = %d", r.rec.count(event.EventObjectSpawned))
	}
	for _, o := range r.w.Objects.All() {
		if o.Kind != component.KindItem || o.Points <= 0 || o.Variant == "" {
			t.Errorf("unexpected spawn %+v", o)
		}
	}
}
