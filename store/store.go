// Package store persists the two integers the arcade engine keeps across rounds:
// the best score and named cumulative counters.
package store

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a value was never saved
var ErrNotFound = errors.New("store: not found")

// Cumulative counter keys written at round over
const (
	KeyTotalSliced  = "totalSliced"
	KeyRoundsPlayed = "roundsPlayed"
)

// Store is the persistence shim; implementations are scoped to one player
type Store interface {
	LoadBestScore(ctx context.Context) (int, error)
	SaveBestScore(ctx context.Context, score int) error
	LoadCumulativeCount(ctx context.Context, key string) (int, error)
	SaveCumulativeCount(ctx context.Context, key string, n int) error
	Close() error
}

// LoadOrZero reads a value treating ErrNotFound as zero
func LoadOrZero(load func() (int, error)) (int, error) {
	n, err := load()
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	return n, err
}

// AddCumulative increments key by delta and returns the new total
func AddCumulative(ctx context.Context, s Store, key string, delta int) (int, error) {
	cur, err := LoadOrZero(func() (int, error) { return s.LoadCumulativeCount(ctx, key) })
	if err != nil {
		return 0, errors.Wrapf(err, "load %s", key)
	}
	next := cur + delta
	if err := s.SaveCumulativeCount(ctx, key, next); err != nil {
		return cur, errors.Wrapf(err, "save %s", key)
	}
	return next, nil
}
