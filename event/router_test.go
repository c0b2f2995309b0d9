package event

import "testing"

type recordingHandler struct {
	types []EventType
	got   []GameEvent
}

func (h *recordingHandler) HandleEvent(ev GameEvent) { h.got = append(h.got, ev) }
func (h *recordingHandler) EventTypes() []EventType { return h.types }

func TestRouterDispatchAll(t *testing.T) {
	q := NewEventQueue()
	r := NewRouter(q)

	scores := &recordingHandler{types: []EventType{EventScoreChanged}}
	all := &recordingHandler{}
	r.Register(scores)
	r.Register(all)

	q.Emit(GameEvent{Type: EventScoreChanged, Payload: &ScoreChangedPayload{Score: 10, Delta: 10}})
	q.Emit(GameEvent{Type: EventLivesChanged, Payload: &LivesChangedPayload{Lives: 2}})

	if n := r.DispatchAll(); n != 2 {
		t.Fatalf("DispatchAll() = %d, want 2", n)
	}
	if len(scores.got) != 1 || scores.got[0].Type != EventScoreChanged {
		t.Errorf("typed handler got %v", scores.got)
	}
	if len(all.got) != 2 {
		t.Errorf("catch-all handler got %d events, want 2", len(all.got))
	}
	if r.DispatchAll() != 0 {
		t.Error("queue should be drained")
	}
	if r.HandlerCount(EventScoreChanged) != 2 {
		t.Errorf("HandlerCount = %d, want 2", r.HandlerCount(EventScoreChanged))
	}
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewEventQueue()
	total := 2048 + 10
	for i := 0; i < total; i++ {
		q.Push(GameEvent{Type: EventScoreChanged, Payload: &ScoreChangedPayload{Score: i}})
	}
	got := q.Consume()
	if len(got) != 2048 {
		t.Fatalf("Consume() returned %d events, want 2048", len(got))
	}
	last := got[len(got)-1].Payload.(*ScoreChangedPayload)
	if last.Score != total-1 {
		t.Errorf("last score = %d, want %d", last.Score, total-1)
	}
	if first := got[0].Payload.(*ScoreChangedPayload); first.Score != 10 {
		t.Errorf("first score = %d, want 10", first.Score)
	}
	if q.Dropped() != 10 {
		t.Errorf("Dropped() = %d, want 10", q.Dropped())
	}
}

func TestRegistryNames(t *testing.T) {
	tests := []struct {
		et   EventType
		name string
	}{
		{EventScoreChanged, "score-changed"},
		{EventRoundOver, "round-over"},
		{EventBonusProgress, "bonus-progress"},
		{EventModeActivated, "mode-activated"},
		{EventModeDeactivated, "mode-deactivated"},
	}
	for _, tt := range tests {
		if got := tt.et.String(); got != tt.name {
			t.Errorf("%d.String() = %q, want %q", tt.et, got, tt.name)
		}
		et, ok := LookupType(tt.name)
		if !ok || et != tt.et {
			t.Errorf("LookupType(%q) = %v,%v", tt.name, et, ok)
		}
	}
	if _, ok := LookupType("no-such-event"); ok {
		t.Error("LookupType accepted an unknown name")
	}
}
