// Package zone implements the two shape containers: Flow, a wrapping list
// where only order matters, and Free, a pannable canvas where every shape has
// its own position. Both speak the drag-and-drop protocol from package dnd and
// report membership changes through a Notify callback instead of mutating
// each other.
package zone

import (
	"log/slog"
	"slices"

	"polydock/internal/dnd"
	"polydock/internal/geom"
	"polydock/internal/shape"
)

type ActionKind int

const (
	ActionAdd ActionKind = iota
	ActionRemove
)

// Action is a structural edit requested from outside the zone.
type Action struct {
	Kind    ActionKind
	Shape   shape.Shape
	ShapeID int
}

func Add(s shape.Shape) Action { return Action{Kind: ActionAdd, Shape: s} }
func Remove(id int) Action { return Action{Kind: ActionRemove, ShapeID: id} }

type EventKind int

const (
	// MovedAcross: a shape from Origin now lives in Target and must be
	// removed from Origin.
	MovedAcross EventKind = iota
	// PositionsChanged: order or placement changed inside Target.
	PositionsChanged
	// ItemDropped: a shape was released on top of DroppedOnID.
	ItemDropped
)

func (k EventKind) String() string {
	switch k {
	case MovedAcross:
		return "moved-across"
	case PositionsChanged:
		return "positions-changed"
	case ItemDropped:
		return "item-dropped"
	}
	return "unknown"
}

type Event struct {
	Kind        EventKind
	ShapeID     int
	Origin      dnd.Source
	Target      dnd.Source
	DroppedOnID int
}

type Notify func(Event)

// Node is one rendered child: a shape and the box it occupies in the zone's
// layout space.
type Node struct {
	ShapeID int
	Box     geom.Rect
	Shape   shape.Shape
}

type Zone interface {
	ID() dnd.Source
	Sequence() []shape.Shape
	SetSequence(seq []shape.Shape)
	Dispatch(a Action)

	// Render rebuilds the node list from the current state.
	Render() []Node
	Nodes() []Node
	// ShapeAt returns the topmost shape under a zone-local screen point.
	ShapeAt(p geom.Point) (int, bool)

	// DropOnBackground and DropOnItem take the session's transfer data and
	// report whether the drop had any effect.
	DropOnBackground(data string, at geom.Point) bool
	DropOnItem(data string, targetID int, at geom.Point) bool

	// Pointer feeds the highlight state machine of one shape and reports
	// whether a re-render happened.
	Pointer(id int, ev shape.PointerEvent) bool
	Highlight(id int) shape.Highlight
}

func decode(z dnd.Source, data string) (dnd.Payload, bool) {
	p, err := dnd.Decode(data)
	if err != nil {
		slog.Debug("Drop ignored", "zone", z, "error", err)
		return dnd.Payload{}, false
	}
	return p, true
}

// itemDropped builds the drop-on-item event for a payload aimed at a shape.
func itemDropped(p dnd.Payload, target dnd.Source) Event {
	d, _ := p.ItemDrop()
	return Event{Kind: ItemDropped, ShapeID: d.DraggedID, DroppedOnID: d.DroppedOnID, Origin: p.Origin, Target: target}
}

// admit prepares a shape arriving from another zone: every shape in the
// receiving zone goes back to its rest width.
func admit(seq []shape.Shape, s shape.Shape, st shape.Style) shape.Shape {
	s = s.Clone()
	s.StrokeWidth = st.StrokeWidth
	for i := range seq {
		seq[i].StrokeWidth = st.StrokeWidth
	}
	return s
}

func without(seq []shape.Shape, id int) []shape.Shape {
	return slices.DeleteFunc(slices.Clone(seq), func(s shape.Shape) bool { return s.ID == id })
}

func topmost(nodes []Node, hit func(Node) bool) (int, bool) {
	for i := len(nodes) - 1; i >= 0; i-- {
		if hit(nodes[i]) {
			return nodes[i].ShapeID, true
		}
	}
	return 0, false
}

func pointer(seq []shape.Shape, states map[int]shape.Highlight, id int, ev shape.PointerEvent, st shape.Style) bool {
	i := shape.IndexOf(seq, id)
	if i < 0 {
		return false
	}
	next, changed := shape.Transition(&seq[i], states[id], ev, st)
	if next == shape.Rest {
		delete(states, id)
	} else {
		states[id] = next
	}
	return changed
}
