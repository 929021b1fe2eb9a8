package main

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"polydock/internal/dnd"
	"polydock/internal/geom"
	"polydock/internal/shape"
	"polydock/internal/store"
	"polydock/internal/zone"
)

func (m *model) handleMouse(msg tea.MouseMsg) {
	m.pointerX, m.pointerY = msg.X, msg.Y
	if m.mode == ModeConfirm || m.help {
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.mousePress(msg.X, msg.Y)
		case tea.MouseButtonWheelUp:
			m.mouseWheel(msg.X, msg.Y, 1)
		case tea.MouseButtonWheelDown:
			m.mouseWheel(msg.X, msg.Y, -1)
		}
	case tea.MouseActionMotion:
		m.mouseMotion(msg.X, msg.Y)
	case tea.MouseActionRelease:
		m.mouseRelease(msg.X, msg.Y)
	}
}

// mousePress starts an item drag when a shape is under the pointer and a
// canvas pan when the work zone's background is.
func (m *model) mousePress(x, y int) {
	src, p, ok := m.zoneAt(x, y)
	if !ok || m.ws.work.Gestures().Dragging() {
		return
	}
	z := m.ws.zone(src)
	if id, hit := z.ShapeAt(p); hit {
		m.startDrag(z, id, p)
		return
	}
	if src == dnd.WorkZone {
		m.ws.work.Gestures().MouseDown(p)
		m.mode = ModePan
	}
}

func (m *model) startDrag(z zone.Zone, id int, p geom.Point) {
	var node zone.Node
	for _, n := range z.Nodes() {
		if n.ShapeID == id {
			node = n
		}
	}
	grab := p
	if z.ID() == dnd.WorkZone {
		grab = m.ws.work.ToLogical(p)
	}
	grab = grab.Sub(node.Box.Min())

	// an item drag cancels any canvas pan
	m.ws.work.Gestures().MouseUp()
	m.dragBefore = m.ws.snapshot()
	if err := m.ws.drag.Start(node.Shape, z.ID(), grab, m.ws.style.Padding); err != nil {
		slog.Error("Drag start failed", "shape", id, "error", err)
		m.errorMessage = err.Error()
		return
	}
	z.Pointer(id, shape.DragStart)
	m.mode = ModeDrag
	slog.Debug("Drag started", "shape", id, "origin", z.ID())
}

func (m *model) mouseMotion(x, y int) {
	switch m.mode {
	case ModePan:
		m.ws.work.Gestures().MouseMove(m.clampToWork(x, y))
	case ModeDrag:
		// the ghost follows pointerX/pointerY
	default:
		m.updateHover(x, y)
	}
}

// clampToWork keeps a pan going when the pointer strays out of the canvas by
// pinning the vertical position to its nearest edge.
func (m *model) clampToWork(x, y int) geom.Point {
	top := m.workTop()
	bottom := top + m.workRows() - 1
	if y < top {
		y = top
	} else if y > bottom {
		y = bottom
	}
	return m.workPoint(x, y)
}

func (m *model) updateHover(x, y int) {
	src, p, ok := m.zoneAt(x, y)
	var id int
	var hit bool
	if ok {
		id, hit = m.ws.zone(src).ShapeAt(p)
	}
	if hit && m.hovering && src == m.hoverZone && id == m.hoverID {
		return
	}
	m.clearHover()
	if hit {
		m.ws.zone(src).Pointer(id, shape.PointerEnter)
		m.hovering, m.hoverZone, m.hoverID = true, src, id
	}
}

func (m *model) clearHover() {
	if m.hovering {
		if z := m.ws.zone(m.hoverZone); z != nil {
			z.Pointer(m.hoverID, shape.PointerLeave)
		}
	}
	m.hovering = false
}

func (m *model) mouseRelease(x, y int) {
	switch m.mode {
	case ModePan:
		m.ws.work.Gestures().MouseUp()
		m.mode = ModeNormal
	case ModeDrag:
		m.drop(x, y)
	}
}

// drop releases the dragged shape over whatever is under the pointer. Outside
// both zones the drag simply ends.
func (m *model) drop(x, y int) {
	data := m.ws.drag.Data()
	id := m.ws.drag.ShapeID()
	defer m.endDrag(id)

	src, p, ok := m.zoneAt(x, y)
	if !ok {
		return
	}
	z := m.ws.zone(src)
	if target, hit := z.ShapeAt(p); hit {
		z.DropOnItem(data, target, p)
	} else {
		z.DropOnBackground(data, p)
	}
}

// endDrag returns the dragged shape to rest in its origin zone. A shape that
// moved across was already reset by the zone that admitted it.
func (m *model) endDrag(id int) {
	if z := m.ws.zone(m.ws.drag.Origin()); z != nil {
		z.Pointer(id, shape.DragEnd)
	}
	m.ws.drag.End()
	m.mode = ModeNormal
	m.hovering = false
	m.commitEvents(m.dragBefore)
}

// cancelDrag abandons a drag without dropping.
func (m *model) cancelDrag() {
	if m.mode != ModeDrag {
		return
	}
	m.endDrag(m.ws.drag.ShapeID())
	m.successMessage = "Drag cancelled"
}

// commitEvents turns the zone events raised since the last call into an undo
// step and the unsaved-changes flag.
func (m *model) commitEvents(before store.Snapshot) {
	events := m.ws.takeEvents()
	kind, changed := ActionReorder, false
	for _, ev := range events {
		switch ev.Kind {
		case zone.MovedAcross:
			kind, changed = ActionMoveAcross, true
		case zone.PositionsChanged:
			if kind != ActionMoveAcross && ev.Target == dnd.WorkZone {
				kind = ActionReposition
			}
			changed = true
		}
	}
	if !changed {
		return
	}
	m.changed = true
	m.recordAction(kind, m.ws.snapshot(), before)
	m.errorMessage, m.successMessage = "", ""
}

func (m *model) mouseWheel(x, y int, delta float64) {
	src, p, ok := m.zoneAt(x, y)
	if !ok {
		return
	}
	switch src {
	case dnd.WorkZone:
		m.ws.work.Gestures().WheelAt(delta, p, m.ws.work.Screen())
	case dnd.BufferZone:
		m.bufferScroll -= int(delta)
		m.clampBufferScroll()
	}
}
