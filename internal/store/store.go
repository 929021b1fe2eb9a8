// Package store persists snapshots behind a small key/value interface with a
// file backend and an SQLite backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"polydock/internal/geom"
	"polydock/internal/shape"
)

var ErrNotFound = errors.New("key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ============================================================
// File Store
// ============================================================

// FileStore keeps each key in its own <key>.json file under Dir.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir store dir: %w", err)
	}
	return &FileStore{Dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.Dir, key+".json")
}

func (f *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return b, nil
}

// Set writes through a temporary file so a crash never leaves half a blob.
func (f *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

func (f *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }

// ============================================================
// Load & Save
// ============================================================

// Loaded is the result of Load. Stored reports whether a valid snapshot was
// found; when it is false Snapshot holds the defaults.
type Loaded struct {
	Snapshot Snapshot
	Stored   bool
}

// Load reads the snapshot under Key. A missing or invalid blob gives a fresh
// buffer from generate, an empty work zone and no coordinates; an invalid blob
// is also deleted.
func Load(ctx context.Context, s Store, generate func() []shape.Shape) (Loaded, error) {
	fallback := Loaded{Snapshot: Snapshot{
		BufferZonePolygons: generate(),
		WorkZonePolygons:   []shape.Shape{},
		PolygonsCoords:     map[int]geom.Point{},
	}}

	blob, err := s.Get(ctx, Key)
	if errors.Is(err, ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("load snapshot: %w", err)
	}

	snap, err := Decode(blob)
	if err != nil {
		slog.Warn("Discarding stored snapshot", "error", err, "bytes", len(blob))
		if derr := s.Delete(ctx, Key); derr != nil {
			return fallback, fmt.Errorf("delete invalid snapshot: %w", derr)
		}
		return fallback, nil
	}
	snap.Prune()
	slog.Info("Snapshot loaded",
		"buffer", len(snap.BufferZonePolygons),
		"work", len(snap.WorkZonePolygons))
	return Loaded{Snapshot: snap, Stored: true}, nil
}

func Save(ctx context.Context, s Store, snap Snapshot) error {
	b, err := snap.Marshal()
	if err != nil {
		return err
	}
	if err := s.Set(ctx, Key, b); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	slog.Info("Snapshot saved",
		"buffer", len(snap.BufferZonePolygons),
		"work", len(snap.WorkZonePolygons))
	return nil
}
