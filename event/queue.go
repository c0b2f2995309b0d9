package event

import (
	"sync"

	"github.com/bearpark/bear-slice/parameter"
)

// EventQueue buffers notifications between the engine and the router
// Producers may run on any goroutine; Consume belongs to the loop
// When full the oldest pending notification is dropped and counted
type EventQueue struct {
	mu      sync.Mutex
	pending []GameEvent
	spare   []GameEvent
	limit   int
	dropped uint64
}

func NewEventQueue() *EventQueue {
	return NewEventQueueSize(parameter.EventQueueSize)
}

// NewEventQueueSize creates a queue holding at most limit pending notifications
func NewEventQueueSize(limit int) *EventQueue {
	if limit < 1 {
		limit = 1
	}
	return &EventQueue{limit: limit, pending: make([]GameEvent, 0, 64)}
}

// Emit satisfies Emitter
func (eq *EventQueue) Emit(ev GameEvent) {
	eq.Push(ev)
}

// Push appends ev, evicting the oldest entry on overflow
func (eq *EventQueue) Push(ev GameEvent) {
	eq.mu.Lock()
	if len(eq.pending) >= eq.limit {
		copy(eq.pending, eq.pending[1:])
		eq.pending = eq.pending[:len(eq.pending)-1]
		eq.dropped++
	}
	eq.pending = append(eq.pending, ev)
	eq.mu.Unlock()
}

// Consume returns every pending notification in emission order
// The returned slice is valid until the next Consume
func (eq *EventQueue) Consume() []GameEvent {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	if len(eq.pending) == 0 {
		return nil
	}
	out := eq.pending
	eq.pending, eq.spare = eq.spare[:0], out
	return out
}

// Len returns the pending count
func (eq *EventQueue) Len() int {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return len(eq.pending)
}

// Dropped returns how many notifications overflow discarded
func (eq *EventQueue) Dropped() uint64 {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return eq.dropped
}
