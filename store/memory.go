package store

import (
	"context"
	"sync"
)

// Memory keeps values for the life of the process
type Memory struct {
	mu      sync.RWMutex
	best    int
	hasBest bool
	counts  map[string]int
}

// NewMemory creates an empty store
func NewMemory() *Memory {
	return &Memory{counts: make(map[string]int)}
}

func (m *Memory) LoadBestScore(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.hasBest {
		return 0, ErrNotFound
	}
	return m.best, nil
}

func (m *Memory) SaveBestScore(ctx context.Context, score int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.best, m.hasBest = score, true
	m.mu.Unlock()
	return nil
}

func (m *Memory) LoadCumulativeCount(ctx context.Context, key string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.counts[key]
	if !ok {
		return 0, ErrNotFound
	}
	return n, nil
}

func (m *Memory) SaveCumulativeCount(ctx context.Context, key string, n int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.counts[key] = n
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }
