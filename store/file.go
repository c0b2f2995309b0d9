package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// fileDoc is the on-disk layout, one table per player
type fileDoc struct {
	Players map[string]*fileRecord `toml:"players"`
}

type fileRecord struct {
	BestScore *int           `toml:"best_score,omitempty"`
	Counts    map[string]int `toml:"counts,omitempty"`
}

// File keeps values in a TOML document rewritten atomically on every save
type File struct {
	mu     sync.Mutex
	path   string
	player string
}

// NewFile opens the store at path for player; the file is created on first save
func NewFile(path, player string) (*File, error) {
	if path == "" {
		return nil, errors.New("store: empty file path")
	}
	if player == "" {
		return nil, errors.New("store: empty player id")
	}
	f := &File{path: path, player: player}
	if _, err := f.read(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) read() (*fileDoc, error) {
	doc := &fileDoc{}
	if _, err := toml.DecodeFile(f.path, doc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &fileDoc{Players: make(map[string]*fileRecord)}, nil
		}
		return nil, errors.Wrapf(err, "store: decode %s", f.path)
	}
	if doc.Players == nil {
		doc.Players = make(map[string]*fileRecord)
	}
	return doc, nil
}

func (f *File) write(doc *fileDoc) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "store: create directory")
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "store: create temp file")
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(doc); err != nil {
		tmp.Close()
		return errors.Wrap(err, "store: encode")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "store: close temp file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), f.path), "store: replace file")
}

func (f *File) record(doc *fileDoc) *fileRecord {
	rec, ok := doc.Players[f.player]
	if !ok {
		rec = &fileRecord{}
		doc.Players[f.player] = rec
	}
	if rec.Counts == nil {
		rec.Counts = make(map[string]int)
	}
	return rec
}

func (f *File) LoadBestScore(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return 0, err
	}
	rec, ok := doc.Players[f.player]
	if !ok || rec.BestScore == nil {
		return 0, ErrNotFound
	}
	return *rec.BestScore, nil
}

func (f *File) SaveBestScore(ctx context.Context, score int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return err
	}
	f.record(doc).BestScore = &score
	return f.write(doc)
}

func (f *File) LoadCumulativeCount(ctx context.Context, key string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return 0, err
	}
	rec, ok := doc.Players[f.player]
	if !ok {
		return 0, ErrNotFound
	}
	n, ok := rec.Counts[key]
	if !ok {
		return 0, ErrNotFound
	}
	return n, nil
}

func (f *File) SaveCumulativeCount(ctx context.Context, key string, n int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return err
	}
	f.record(doc).Counts[key] = n
	return f.write(doc)
}

func (f *File) Close() error { return nil }
