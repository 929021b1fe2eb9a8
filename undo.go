package main

import (
	"log/slog"

	"polydock/internal/store"
)

func (m *model) recordAction(actionType ActionType, data, inverse store.Snapshot) {
	action := Action{
		Type:    actionType,
		Data:    data.Clone(),
		Inverse: inverse.Clone(),
	}
	m.undoStack = append(m.undoStack, action)
	m.redoStack = m.redoStack[:0]
}

func (m *model) undo() {
	if len(m.undoStack) == 0 {
		m.successMessage = "Nothing to undo"
		return
	}

	lastIndex := len(m.undoStack) - 1
	action := m.undoStack[lastIndex]
	m.undoStack = m.undoStack[:lastIndex]

	m.ws.restore(action.Inverse.(store.Snapshot))
	m.ws.takeEvents()
	m.changed = true
	m.redoStack = append(m.redoStack, action)
	m.successMessage = "Undid " + action.Type.String()
	slog.Debug("Undo", "action", action.Type.String())
}

func (m *model) redo() {
	if len(m.redoStack) == 0 {
		m.successMessage = "Nothing to redo"
		return
	}

	lastIndex := len(m.redoStack) - 1
	action := m.redoStack[lastIndex]
	m.redoStack = m.redoStack[:lastIndex]

	m.ws.restore(action.Data.(store.Snapshot))
	m.ws.takeEvents()
	m.changed = true
	m.undoStack = append(m.undoStack, action)
	m.successMessage = "Redid " + action.Type.String()
	slog.Debug("Redo", "action", action.Type.String())
}
