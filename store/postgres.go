package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// Schema creates the tables the Postgres store reads and writes
const Schema = `
CREATE TABLE IF NOT EXISTS arcade_best_scores (
	player_id  TEXT PRIMARY KEY,
	best_score BIGINT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS arcade_counters (
	player_id  TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      BIGINT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (player_id, key)
);`

// Postgres keeps values in a shared database, one row per player and key
type Postgres struct {
	db     *pgxpool.Pool
	player string
	owned  bool
}

// OpenPostgres connects to dsn and ensures the schema exists
func OpenPostgres(ctx context.Context, dsn, player string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "store: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "store: ping")
	}
	if _, err := pool.Exec(ctx, Schema); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "store: migrate")
	}
	p, err := NewPostgres(pool, player)
	if err != nil {
		pool.Close()
		return nil, err
	}
	p.owned = true
	return p, nil
}

// NewPostgres wraps an existing pool; the caller keeps ownership
func NewPostgres(db *pgxpool.Pool, player string) (*Postgres, error) {
	if player == "" {
		return nil, errors.New("store: empty player id")
	}
	return &Postgres{db: db, player: player}, nil
}

func (p *Postgres) LoadBestScore(ctx context.Context) (int, error) {
	var best int64
	err := p.db.QueryRow(ctx, `
		SELECT best_score
		FROM arcade_best_scores
		WHERE player_id = $1
	`, p.player).Scan(&best)
	if err == pgx.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, errors.Wrap(err, "store: load best score")
	}
	return int(best), nil
}

func (p *Postgres) SaveBestScore(ctx context.Context, score int) error {
	_, err := p.db.Exec(ctx, `
		INSERT INTO arcade_best_scores (player_id, best_score)
		VALUES ($1, $2)
		ON CONFLICT (player_id) DO UPDATE
		SET best_score = EXCLUDED.best_score, updated_at = now()
	`, p.player, int64(score))
	return errors.Wrap(err, "store: save best score")
}

func (p *Postgres) LoadCumulativeCount(ctx context.Context, key string) (int, error) {
	var n int64
	err := p.db.QueryRow(ctx, `
		SELECT value
		FROM arcade_counters
		WHERE player_id = $1 AND key = $2
	`, p.player, key).Scan(&n)
	if err == pgx.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, errors.Wrapf(err, "store: load %s", key)
	}
	return int(n), nil
}

func (p *Postgres) SaveCumulativeCount(ctx context.Context, key string, n int) error {
	_, err := p.db.Exec(ctx, `
		INSERT INTO arcade_counters (player_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
	`, p.player, key, int64(n))
	return errors.Wrapf(err, "store: save %s", key)
}

// Close releases the pool when this store opened it
func (p *Postgres) Close() error {
	if p.owned {
		p.db.Close()
	}
	return nil
}
