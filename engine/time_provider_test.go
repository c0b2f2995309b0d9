package engine

import (
	"testing"
	"time"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(5 * time.Millisecond)
	t2 := provider.Now()

	if diff := t2.Sub(t1); diff < 5*time.Millisecond {
		t.Errorf("Expected at least 5ms difference, got %v", diff)
	}
}

func TestPausableClockExcludesPauses(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	clock := NewPausableClockWith(mock)

	mock.Advance(2 * time.Second)
	if got := clock.Elapsed(); got != 2*time.Second {
		t.Fatalf("Elapsed() = %v, want 2s", got)
	}

	clock.Pause()
	mock.Advance(10 * time.Second)
	if got := clock.Elapsed(); got != 2*time.Second {
		t.Errorf("Elapsed() while paused = %v, want 2s", got)
	}
	if got := clock.TotalPauseDuration(); got != 10*time.Second {
		t.Errorf("TotalPauseDuration() = %v, want 10s", got)
	}

	clock.Resume()
	mock.Advance(500 * time.Millisecond)
	if got := clock.Elapsed(); got != 2500*time.Millisecond {
		t.Errorf("Elapsed() after resume = %v, want 2.5s", got)
	}

	// Double pause/resume are no-ops
	clock.Resume()
	clock.Pause()
	clock.Pause()
	mock.Advance(time.Second)
	clock.Resume()
	if got := clock.Elapsed(); got != 2500*time.Millisecond {
		t.Errorf("Elapsed() after repeated pause = %v, want 2.5s", got)
	}
	if clock.IsPaused() {
		t.Error("clock should not be paused")
	}
}
