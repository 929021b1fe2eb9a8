package zone

import (
	"maps"
	"slices"

	"polydock/internal/dnd"
	"polydock/internal/geom"
	"polydock/internal/shape"
	"polydock/internal/viewport"
)

type FreeConfig struct {
	// Canvas size in logical units.
	Width, Height float64
	MinScale      float64
	Style         shape.Style
}

// Free places every shape at its own logical coordinate on a canvas seen
// through a zoomable, pannable viewport.
type Free struct {
	id       dnd.Source
	seq      []shape.Shape
	coords   map[int]geom.Point
	states   map[int]shape.Highlight
	vp       *viewport.Viewport
	gestures *viewport.Gestures
	screen   geom.Size
	style    shape.Style
	notify   Notify

	nodes   []Node
	renders int
}

func NewFree(id dnd.Source, cfg FreeConfig, notify Notify) *Free {
	if notify == nil {
		notify = func(Event) {}
	}
	vp := viewport.New(cfg.Width, cfg.Height, cfg.MinScale)
	f := &Free{
		id:       id,
		coords:   make(map[int]geom.Point),
		states:   make(map[int]shape.Highlight),
		vp:       vp,
		gestures: viewport.NewGestures(vp),
		screen:   geom.Size{W: cfg.Width, H: cfg.Height},
		style:    cfg.Style,
		notify:   notify,
	}
	f.Render()
	return f
}

func (f *Free) ID() dnd.Source { return f.id }
func (f *Free) Viewport() *viewport.Viewport { return f.vp }
func (f *Free) Gestures() *viewport.Gestures { return f.gestures }
func (f *Free) Screen() geom.Size { return f.screen }
func (f *Free) Renders() int { return f.renders }

func (f *Free) Sequence() []shape.Shape { return slices.Clone(f.seq) }

func (f *Free) SetSequence(seq []shape.Shape) {
	f.seq = slices.Clone(seq)
	clear(f.states)
	f.Render()
}

// Coords returns a copy of the coordinate map.
func (f *Free) Coords() map[int]geom.Point { return maps.Clone(f.coords) }

func (f *Free) SetCoords(c map[int]geom.Point) {
	f.coords = maps.Clone(c)
	if f.coords == nil {
		f.coords = make(map[int]geom.Point)
	}
	f.Render()
}

// Coord is the placement of id; shapes without an entry sit at the origin.
func (f *Free) Coord(id int) geom.Point { return f.coords[id] }

func (f *Free) Dispatch(a Action) {
	switch a.Kind {
	case ActionAdd:
		f.seq = append(f.seq, a.Shape.Clone())
	case ActionRemove:
		f.seq = without(f.seq, a.ShapeID)
		delete(f.coords, a.ShapeID)
		delete(f.states, a.ShapeID)
	}
	f.Render()
}

// BringToFront moves id to the end of the sequence so it is drawn on top.
// Coordinates are untouched.
func (f *Free) BringToFront(id int) bool {
	if !dnd.MoveToEnd(f.seq, func(s shape.Shape) bool { return s.ID == id }) {
		return false
	}
	f.Render()
	return true
}

func (f *Free) Render() []Node {
	nodes := make([]Node, 0, len(f.seq))
	for _, s := range f.seq {
		c := f.coords[s.ID]
		box := s.BoxSize(f.style.Padding)
		nodes = append(nodes, Node{
			ShapeID: s.ID,
			Box:     geom.Rect{X: c.X, Y: c.Y, W: box.W, H: box.H},
			Shape:   s,
		})
	}
	f.nodes = nodes
	f.renders++
	return nodes
}

func (f *Free) Nodes() []Node { return f.nodes }

// ToLogical converts a zone-local screen point to canvas coordinates.
func (f *Free) ToLogical(p geom.Point) geom.Point {
	return f.vp.Rescale(p, f.screen)
}

func (f *Free) ShapeAt(p geom.Point) (int, bool) {
	l := f.ToLogical(p)
	return topmost(f.nodes, func(n Node) bool { return n.Box.Contains(l) })
}

// DropPoint is where a shape released at screen point at ends up: centred
// under the cursor, shifted back by the grab offset, and clamped so its padded
// box stays inside the visible window and the canvas.
func (f *Free) DropPoint(p dnd.Payload, at geom.Point) geom.Point {
	l := f.ToLogical(at)
	box := p.Shape.BoxSize(f.style.Padding)
	x := l.X - box.W/2 - p.Offset.X
	y := l.Y - box.H/2 - p.Offset.Y

	win := f.vp.VisibleWindow()
	size := f.vp.Size()
	x = clampBox(x, win.X, win.X+win.W-box.W)
	y = clampBox(y, win.Y, win.Y+win.H-box.H)
	x = clampBox(x, 0, size.W-box.W)
	y = clampBox(y, 0, size.H-box.H)
	return geom.Point{X: x, Y: y}
}

func clampBox(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return geom.Clamp(v, lo, hi)
}

// DropOnBackground places the shape at the drop point. A shape from the other
// zone joins the sequence; one from this zone only moves.
func (f *Free) DropOnBackground(data string, at geom.Point) bool {
	p, ok := decode(f.id, data)
	if !ok {
		return false
	}
	return f.place(p, at)
}

// DropOnItem positions by point like a background drop. A shape already in
// this zone is also brought to the top.
func (f *Free) DropOnItem(data string, targetID int, at geom.Point) bool {
	p, ok := decode(f.id, data)
	if !ok || shape.IndexOf(f.seq, targetID) < 0 {
		return false
	}
	p.Target(targetID)
	if !f.place(p, at) {
		return false
	}
	if p.Origin == f.id {
		f.BringToFront(p.Shape.ID)
	}
	f.notify(itemDropped(p, f.id))
	return true
}

func (f *Free) place(p dnd.Payload, at geom.Point) bool {
	id := p.Shape.ID
	present := shape.IndexOf(f.seq, id) >= 0

	switch {
	case p.Origin == f.id && !present:
		// stale payload for a shape that has already left
		return false
	case p.Origin != f.id && !present:
		f.coords[id] = f.DropPoint(p, at)
		f.seq = append(f.seq, admit(f.seq, p.Shape, f.style))
		clear(f.states)
		f.notify(Event{Kind: MovedAcross, ShapeID: id, Origin: p.Origin, Target: f.id})
	default:
		f.coords[id] = f.DropPoint(p, at)
		f.notify(Event{Kind: PositionsChanged, ShapeID: id, Origin: p.Origin, Target: f.id})
	}
	f.Render()
	return true
}

func (f *Free) Pointer(id int, ev shape.PointerEvent) bool {
	if !pointer(f.seq, f.states, id, ev, f.style) {
		return false
	}
	f.Render()
	return true
}

func (f *Free) Highlight(id int) shape.Highlight { return f.states[id] }
