package main

import (
	"log/slog"

	"polydock/internal/dnd"
	"polydock/internal/geom"
	"polydock/internal/shape"
	"polydock/internal/store"
	"polydock/internal/zone"
)

// workspace owns the two zones and reacts to their events. It lives behind a
// pointer so the callbacks handed to the zones survive Bubble Tea copying the
// model on every update.
type workspace struct {
	buffer *zone.Flow
	work   *zone.Free
	style  shape.Style
	drag   dnd.Session

	events []zone.Event
}

func newWorkspace(cfg *Config) *workspace {
	ws := &workspace{style: cfg.Style()}
	ws.buffer = zone.NewFlow(dnd.BufferZone, zone.FlowConfig{
		Width: cfg.CanvasWidth,
		Gap:   bufferGap,
		Style: ws.style,
	}, ws.onEvent)
	ws.work = zone.NewFree(dnd.WorkZone, zone.FreeConfig{
		Width:    cfg.CanvasWidth,
		Height:   cfg.CanvasHeight,
		MinScale: cfg.MinScale,
		Style:    ws.style,
	}, ws.onEvent)
	return ws
}

func (w *workspace) zone(src dnd.Source) zone.Zone {
	switch src {
	case dnd.BufferZone:
		return w.buffer
	case dnd.WorkZone:
		return w.work
	}
	return nil
}

// onEvent keeps membership exclusive: whatever arrives in one zone leaves the
// other.
func (w *workspace) onEvent(ev zone.Event) {
	slog.Debug("Zone event", "kind", ev.Kind.String(), "shape", ev.ShapeID,
		"origin", ev.Origin, "target", ev.Target, "droppedOn", ev.DroppedOnID)
	w.events = append(w.events, ev)
	if ev.Kind != zone.MovedAcross {
		return
	}
	if z := w.zone(ev.Origin); z != nil && z != w.zone(ev.Target) {
		z.Dispatch(zone.Remove(ev.ShapeID))
	}
	slog.Info("Shape moved", "shape", ev.ShapeID, "from", ev.Origin, "to", ev.Target)
}

// takeEvents returns the events since the last call.
func (w *workspace) takeEvents() []zone.Event {
	ev := w.events
	w.events = nil
	return ev
}

// snapshot captures both zones with every shape at its rest stroke width.
func (w *workspace) snapshot() store.Snapshot {
	rest := func(seq []shape.Shape) []shape.Shape {
		for i := range seq {
			seq[i].StrokeWidth = w.style.StrokeWidth
		}
		return seq
	}
	return store.Snapshot{
		BufferZonePolygons: rest(w.buffer.Sequence()),
		WorkZonePolygons:   rest(w.work.Sequence()),
		PolygonsCoords:     w.work.Coords(),
	}
}

func (w *workspace) restore(s store.Snapshot) {
	s = s.Clone()
	s.Prune()
	w.drag.End()
	w.buffer.SetSequence(s.BufferZonePolygons)
	w.work.SetSequence(s.WorkZonePolygons)
	w.work.SetCoords(s.PolygonsCoords)
}

func (w *workspace) empty() bool {
	return len(w.buffer.Nodes()) == 0 && len(w.work.Nodes()) == 0
}

// ============================================================
// Screen layout
// ============================================================

func (m *model) bufferTop() int { return headerRows }

func (m *model) bufferRows() int { return m.config.BufferRows }

func (m *model) workTop() int { return headerRows + m.bufferRows() + separatorRows }

func (m *model) workRows() int {
	rows := m.height - m.workTop() - statusRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *model) cols() int {
	if m.width < 1 {
		return 1
	}
	return m.width
}

// bufferCell is the size of one terminal cell in the buffer strip's layout
// units. A full-height generated shape spans every row of the strip.
func (m *model) bufferCell() geom.Size {
	gen := shape.DefaultGenConfig(m.ws.style)
	h := (gen.ViewHeight + m.ws.style.Padding) / float64(m.bufferRows())
	return geom.Size{W: h / 2, H: h}
}

// workCell is the size of one terminal cell in the work zone's screen units.
func (m *model) workCell() geom.Size {
	s := m.ws.work.Screen()
	return geom.Size{W: s.W / float64(m.cols()), H: s.H / float64(m.workRows())}
}

func (m *model) bufferPoint(x, y int) geom.Point {
	c := m.bufferCell()
	return geom.Point{
		X: (float64(x) + 0.5) * c.W,
		Y: (float64(y-m.bufferTop()+m.bufferScroll) + 0.5) * c.H,
	}
}

func (m *model) workPoint(x, y int) geom.Point {
	c := m.workCell()
	return geom.Point{
		X: (float64(x) + 0.5) * c.W,
		Y: (float64(y-m.workTop()) + 0.5) * c.H,
	}
}

// zoneAt maps a terminal cell to the zone under it and the zone-local point.
func (m *model) zoneAt(x, y int) (dnd.Source, geom.Point, bool) {
	switch {
	case y >= m.bufferTop() && y < m.bufferTop()+m.bufferRows():
		return dnd.BufferZone, m.bufferPoint(x, y), true
	case y >= m.workTop() && y < m.workTop()+m.workRows():
		return dnd.WorkZone, m.workPoint(x, y), true
	}
	return "", geom.Point{}, false
}

// layout pushes the terminal size into the zones.
func (m *model) layout() {
	m.ws.buffer.SetWidth(float64(m.cols()) * m.bufferCell().W)
	m.clampBufferScroll()
}

func (m *model) clampBufferScroll() {
	maxScroll := int(m.ws.buffer.Height()/m.bufferCell().H) - m.bufferRows() + 1
	if m.bufferScroll > maxScroll {
		m.bufferScroll = maxScroll
	}
	if m.bufferScroll < 0 {
		m.bufferScroll = 0
	}
}
