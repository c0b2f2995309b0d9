package engine

import (
	"container/heap"
	"time"
)

// TimerID identifies a scheduled callback; zero is never issued
type TimerID uint64

type timer struct {
	id     TimerID
	due    time.Duration
	seq    uint64
	period time.Duration
	gen    uint64
	fn     func()
	index  int
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Scheduler runs callbacks on game time
// Time only moves through Advance, so pauses never skew deadlines
// Callbacks fire in (due, registration) order on the caller's goroutine
// Not safe for concurrent use
type Scheduler struct {
	now    time.Duration
	seq    uint64
	nextID TimerID
	gen    uint64

	queue timerHeap
	byID  map[TimerID]*timer
}

// NewScheduler creates an empty scheduler at time zero
func NewScheduler() *Scheduler {
	return &Scheduler{byID: make(map[TimerID]*timer)}
}

// Now returns the current game time
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Generation changes on every CancelAll
func (s *Scheduler) Generation() uint64 {
	return s.gen
}

// After schedules fn once, d from now
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	return s.add(d, 0, fn)
}

// Every schedules fn repeatedly with period d; d must be positive
func (s *Scheduler) Every(d time.Duration, fn func()) TimerID {
	if d <= 0 {
		d = time.Millisecond
	}
	return s.add(d, d, fn)
}

func (s *Scheduler) add(d, period time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.seq++
	t := &timer{
		id:     s.nextID,
		due:    s.now + d,
		seq:    s.seq,
		period: period,
		gen:    s.gen,
		fn:     fn,
	}
	heap.Push(&s.queue, t)
	s.byID[t.id] = t
	return t.id
}

// Cancel removes a pending timer; returns false if it already fired or was cancelled
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
	return true
}

// CancelAll drops every pending timer and invalidates callbacks already in flight
func (s *Scheduler) CancelAll() {
	s.gen++
	for _, t := range s.queue {
		t.index = -1
	}
	s.queue = s.queue[:0]
	clear(s.byID)
}

// Pending reports whether id is still scheduled
func (s *Scheduler) Pending(id TimerID) bool {
	_, ok := s.byID[id]
	return ok
}

// Remaining returns the time until id fires, zero if not pending
func (s *Scheduler) Remaining(id TimerID) time.Duration {
	if t, ok := s.byID[id]; ok {
		return t.due - s.now
	}
	return 0
}

// Len returns the number of pending timers
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// Advance moves game time forward by dt, firing every timer due on the way
// Timers scheduled by callbacks fire in the same call when they fall inside the window
// Returns the number of callbacks run
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	fired := 0

	for len(s.queue) > 0 && s.queue[0].due <= target {
		t := heap.Pop(&s.queue).(*timer)
		if t.due > s.now {
			s.now = t.due
		}
		if t.gen != s.gen {
			delete(s.byID, t.id)
			continue
		}

		if t.period > 0 {
			s.seq++
			t.due += t.period
			t.seq = s.seq
			heap.Push(&s.queue, t)
		} else {
			delete(s.byID, t.id)
		}

		t.fn()
		fired++
	}

	s.now = target
	return fired
}
