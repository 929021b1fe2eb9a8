package zone

import (
	"math"
	"slices"

	"polydock/internal/dnd"
	"polydock/internal/geom"
	"polydock/internal/shape"
)

type FlowConfig struct {
	Width float64
	Gap   float64
	Style shape.Style
}

// Flow lays shapes out left to right, wrapping at Width. No positions are
// stored; only the order of the sequence matters.
type Flow struct {
	id     dnd.Source
	seq    []shape.Shape
	states map[int]shape.Highlight
	width  float64
	gap    float64
	style  shape.Style
	notify Notify

	nodes   []Node
	height  float64
	renders int
}

func NewFlow(id dnd.Source, cfg FlowConfig, notify Notify) *Flow {
	if notify == nil {
		notify = func(Event) {}
	}
	f := &Flow{
		id:     id,
		states: make(map[int]shape.Highlight),
		width:  cfg.Width,
		gap:    cfg.Gap,
		style:  cfg.Style,
		notify: notify,
	}
	f.Render()
	return f
}

func (f *Flow) ID() dnd.Source { return f.id }

func (f *Flow) Sequence() []shape.Shape { return slices.Clone(f.seq) }

func (f *Flow) SetSequence(seq []shape.Shape) {
	f.seq = slices.Clone(seq)
	clear(f.states)
	f.Render()
}

func (f *Flow) SetWidth(w float64) {
	if w == f.width {
		return
	}
	f.width = w
	f.Render()
}

// Height is the extent of the laid-out content after the last render.
func (f *Flow) Height() float64 { return f.height }

func (f *Flow) Renders() int { return f.renders }

func (f *Flow) Dispatch(a Action) {
	switch a.Kind {
	case ActionAdd:
		f.seq = append(f.seq, a.Shape.Clone())
	case ActionRemove:
		f.seq = without(f.seq, a.ShapeID)
		delete(f.states, a.ShapeID)
	}
	f.Render()
}

func (f *Flow) Render() []Node {
	nodes := make([]Node, 0, len(f.seq))
	var x, y, rowH float64
	for _, s := range f.seq {
		box := s.BoxSize(f.style.Padding)
		if x > 0 && x+box.W > f.width {
			x = 0
			y += rowH + f.gap
			rowH = 0
		}
		nodes = append(nodes, Node{
			ShapeID: s.ID,
			Box:     geom.Rect{X: x, Y: y, W: box.W, H: box.H},
			Shape:   s,
		})
		x += box.W + f.gap
		rowH = math.Max(rowH, box.H)
	}
	f.nodes = nodes
	f.height = y + rowH
	f.renders++
	return nodes
}

func (f *Flow) Nodes() []Node { return f.nodes }

func (f *Flow) ShapeAt(p geom.Point) (int, bool) {
	return topmost(f.nodes, func(n Node) bool { return n.Box.Contains(p) })
}

// DropOnBackground accepts shapes from the other zone by appending them.
// Dropping a shape on its own zone's background changes nothing.
func (f *Flow) DropOnBackground(data string, at geom.Point) bool {
	p, ok := decode(f.id, data)
	if !ok || p.Origin == f.id || shape.IndexOf(f.seq, p.Shape.ID) >= 0 {
		return false
	}
	f.seq = append(f.seq, admit(f.seq, p.Shape, f.style))
	clear(f.states)
	f.notify(Event{Kind: MovedAcross, ShapeID: p.Shape.ID, Origin: p.Origin, Target: f.id})
	f.Render()
	return true
}

// DropOnItem moves the dragged shape to the target's index. A shape coming
// from the other zone is inserted there.
func (f *Flow) DropOnItem(data string, targetID int, at geom.Point) bool {
	p, ok := decode(f.id, data)
	if !ok {
		return false
	}
	to := shape.IndexOf(f.seq, targetID)
	if to < 0 {
		return false
	}
	p.Target(targetID)
	from := shape.IndexOf(f.seq, p.Shape.ID)

	switch {
	case p.Origin == f.id && from >= 0:
		f.seq = dnd.ShiftIndexes(f.seq, from, to)
		f.notify(itemDropped(p, f.id))
		if from != to {
			f.notify(Event{Kind: PositionsChanged, ShapeID: p.Shape.ID, Origin: p.Origin, Target: f.id})
		}
	case p.Origin != f.id && from < 0:
		s := admit(f.seq, p.Shape, f.style)
		f.seq = slices.Insert(f.seq, to, s)
		clear(f.states)
		f.notify(Event{Kind: MovedAcross, ShapeID: p.Shape.ID, Origin: p.Origin, Target: f.id})
		f.notify(itemDropped(p, f.id))
	default:
		return false
	}
	f.Render()
	return true
}

func (f *Flow) Pointer(id int, ev shape.PointerEvent) bool {
	if !pointer(f.seq, f.states, id, ev, f.style) {
		return false
	}
	f.Render()
	return true
}

func (f *Flow) Highlight(id int) shape.Highlight { return f.states[id] }
