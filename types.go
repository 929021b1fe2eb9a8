package main

import (
	"context"
	"math/rand/v2"

	"polydock/internal/dnd"
	"polydock/internal/store"
)

type model struct {
	ctx    context.Context
	width  int
	height int
	mode   Mode
	help   bool

	helpScroll    int
	confirmAction ConfirmAction

	ws        *workspace
	undoStack []Action
	redoStack []Action

	store       store.Store
	stored      bool // a valid snapshot is in storage
	storedEmpty bool // and it holds no shapes
	changed     bool

	bufferScroll int

	// pointer tracking
	hoverZone dnd.Source
	hoverID   int
	hovering  bool
	pointerX  int
	pointerY  int

	// drag in flight
	dragBefore  store.Snapshot
	pendingSnap *store.Snapshot

	errorMessage   string
	successMessage string
	config         *Config
	rng            *rand.Rand
}

// Action is one undoable step. Data is the state after the step and Inverse
// the state before it.
type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}
