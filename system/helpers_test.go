package system

import (
	"testing"

	"github.com/bearpark/bear-slice/config"
	"github.com/bearpark/bear-slice/event"
)

type recorder struct {
	events []event.GameEvent
}

func (r *recorder) Emit(ev event.GameEvent) {
	r.events = append(r.events, ev)
}

func (r *recorder) count(t event.EventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func (r *recorder) last(t event.EventType) (event.GameEvent, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == t {
			return r.events[i], true
		}
	}
	return event.GameEvent{}, false
}

func tuning(t *testing.T, overrides map[string]float64) *config.Tuning {
	t.Helper()
	tu, err := config.FromMap(overrides, nil)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	return tu
}

func newWorld(t *testing.T, overrides map[string]float64) (*World, *recorder) {
	t.Helper()
	rec := &recorder{}
	return NewWorld(tuning(t, overrides), 42, rec, nil), rec
}
