package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"polydock/internal/shape"
	"polydock/internal/store"
)

func openStore(ctx context.Context, cfg *Config) (store.Store, error) {
	if cfg.Storage == "sqlite" {
		db, err := store.OpenSQLite(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
	fs, err := store.NewFileStore(cfg.SaveDirectory)
	if err != nil {
		return nil, err
	}
	return fs, nil
}

func (m *model) generate() []shape.Shape {
	return shape.GenerateSet(m.rng, shape.DefaultGenConfig(m.ws.style), nil)
}

// loadState fills the zones from storage, falling back to a generated buffer.
func (m *model) loadState() {
	loaded, err := store.Load(m.ctx, m.store, m.generate)
	if err != nil {
		slog.Error("Load failed", "error", err)
		m.errorMessage = err.Error()
	}
	m.ws.restore(loaded.Snapshot)
	m.stored = loaded.Stored
	m.storedEmpty = loaded.Snapshot.Empty()
}

func (m *model) saveState() {
	if !m.changed {
		m.successMessage = "Nothing to save"
		return
	}
	snap := m.ws.snapshot()
	if err := store.Save(m.ctx, m.store, snap); err != nil {
		slog.Error("Save failed", "error", err)
		m.errorMessage = err.Error()
		return
	}
	m.stored = true
	m.storedEmpty = snap.Empty()
	m.changed = false
	m.successMessage = "Saved"
}

// canClear mirrors the clear control: only with a valid stored snapshot and
// something on screen.
func (m *model) canClear() bool {
	return m.stored && !m.ws.empty()
}

func (m *model) clearState() {
	before := m.ws.snapshot()
	m.ws.restore(store.Snapshot{})
	m.recordAction(ActionClear, m.ws.snapshot(), before)
	m.changed = true
	m.successMessage = "Cleared"

	if m.storedEmpty {
		return
	}
	if err := store.Save(m.ctx, m.store, store.Snapshot{}); err != nil {
		slog.Error("Clearing storage failed", "error", err)
		m.errorMessage = err.Error()
		return
	}
	m.storedEmpty = true
	m.successMessage = "Cleared and removed from storage"
}

func (m *model) generateState() {
	before := m.ws.snapshot()
	m.ws.restore(store.Snapshot{BufferZonePolygons: m.generate()})
	m.recordAction(ActionGenerate, m.ws.snapshot(), before)
	m.changed = true
	m.successMessage = fmt.Sprintf("Generated %d shapes", len(m.ws.buffer.Nodes()))
	slog.Info("Generated shapes", "count", len(m.ws.buffer.Nodes()))
}

// readImport parses a snapshot from the clipboard without applying it.
func (m *model) readImport() (store.Snapshot, error) {
	text, err := readClipboardText()
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("read clipboard: %w", err)
	}
	snap, err := store.Decode([]byte(cleanClipboardText(text)))
	if errors.Is(err, store.ErrInvalid) {
		slog.Warn("Rejected clipboard import", "error", err)
		return store.Snapshot{}, errors.New("clipboard does not hold a valid snapshot")
	}
	return snap, err
}

func (m *model) importState(snap store.Snapshot) {
	before := m.ws.snapshot()
	m.ws.restore(snap)
	m.recordAction(ActionImport, m.ws.snapshot(), before)
	m.changed = true
	m.successMessage = "Imported from clipboard"
	slog.Info("Imported snapshot",
		"buffer", len(snap.BufferZonePolygons),
		"work", len(snap.WorkZonePolygons))
}

func (m *model) copyState() {
	b, err := m.ws.snapshot().Marshal()
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	if err := writeClipboardText(string(b)); err != nil {
		slog.Error("Clipboard write failed", "error", err)
		m.errorMessage = fmt.Sprintf("copy: %v", err)
		return
	}
	m.successMessage = "Snapshot copied to clipboard"
}
