package zone

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"

	"polydock/internal/dnd"
	"polydock/internal/geom"
	"polydock/internal/shape"
)

// 40x20 polygon, 48x28 once padded.
func square(id int) shape.Shape {
	s, _ := shape.New(id, []geom.Point{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 20}, {X: 0, Y: 20}}, "#A00", "#111", 2)
	return s
}

// payload encodes s as if grabbed at the centre of its padded box.
func payload(t *testing.T, s shape.Shape, origin dnd.Source) string {
	t.Helper()
	var ss dnd.Session
	if err := ss.Start(s, origin, geom.Point{X: 24, Y: 14}, shape.DefaultStyle().Padding); err != nil {
		t.Fatal(err)
	}
	return ss.Data()
}

// pair wires a buffer and a work zone the way the application does: a shape
// that arrives in one zone is removed from the other.
type pair struct {
	buffer *Flow
	work   *Free
	events []Event
}

func newPair() *pair {
	p := &pair{}
	notify := func(ev Event) {
		p.events = append(p.events, ev)
		if ev.Kind != MovedAcross {
			return
		}
		switch ev.Origin {
		case dnd.BufferZone:
			p.buffer.Dispatch(Remove(ev.ShapeID))
		case dnd.WorkZone:
			p.work.Dispatch(Remove(ev.ShapeID))
		}
	}
	st := shape.DefaultStyle()
	p.buffer = NewFlow(dnd.BufferZone, FlowConfig{Width: 200, Gap: 4, Style: st}, notify)
	p.work = NewFree(dnd.WorkZone, FreeConfig{Width: 800, Height: 400, MinScale: 0.3, Style: st}, notify)
	return p
}

func (p *pair) check(t *testing.T) {
	t.Helper()
	seen := map[int]int{}
	for _, id := range shape.IDs(p.buffer.Sequence()) {
		seen[id]++
	}
	for _, id := range shape.IDs(p.work.Sequence()) {
		seen[id]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("shape %d present %d times", id, n)
		}
	}
	for id := range p.work.Coords() {
		if shape.IndexOf(p.work.Sequence(), id) < 0 {
			t.Errorf("coordinate kept for absent shape %d", id)
		}
	}
}

func ids(seq []shape.Shape) []int { return shape.IDs(seq) }

func TestFlowLayoutWraps(t *testing.T) {
	f := NewFlow(dnd.BufferZone, FlowConfig{Width: 200, Gap: 4, Style: shape.DefaultStyle()}, nil)
	f.SetSequence([]shape.Shape{square(1), square(2), square(3), square(4)})

	want := []geom.Rect{
		{X: 0, Y: 0, W: 48, H: 28},
		{X: 52, Y: 0, W: 48, H: 28},
		{X: 104, Y: 0, W: 48, H: 28},
		{X: 0, Y: 32, W: 48, H: 28},
	}
	for i, n := range f.Nodes() {
		if n.Box != want[i] {
			t.Errorf("node %d box = %+v, want %+v", i, n.Box, want[i])
		}
	}
	if f.Height() != 60 {
		t.Errorf("height = %v, want 60", f.Height())
	}
	if id, ok := f.ShapeAt(geom.Point{X: 60, Y: 10}); !ok || id != 2 {
		t.Errorf("ShapeAt = %d, %v", id, ok)
	}
	if _, ok := f.ShapeAt(geom.Point{X: 160, Y: 40}); ok {
		t.Error("hit in empty space")
	}
}

func TestFlowReorder(t *testing.T) {
	var events []Event
	f := NewFlow(dnd.BufferZone, FlowConfig{Width: 400, Gap: 4, Style: shape.DefaultStyle()}, func(ev Event) {
		events = append(events, ev)
	})
	f.SetSequence([]shape.Shape{square(1), square(2), square(3), square(4)})

	if !f.DropOnItem(payload(t, square(1), dnd.BufferZone), 3, geom.Point{}) {
		t.Fatal("drop rejected")
	}
	if got := ids(f.Sequence()); !reflect.DeepEqual(got, []int{2, 3, 1, 4}) {
		t.Errorf("order = %v", got)
	}
	if len(events) != 2 || events[0].Kind != ItemDropped || events[0].DroppedOnID != 3 || events[1].Kind != PositionsChanged {
		t.Errorf("events = %+v", events)
	}

	events = nil
	f.DropOnItem(payload(t, square(2), dnd.BufferZone), 2, geom.Point{})
	if len(events) != 1 || events[0].Kind != ItemDropped {
		t.Errorf("drop on itself: events = %+v", events)
	}
	if got := ids(f.Sequence()); !reflect.DeepEqual(got, []int{2, 3, 1, 4}) {
		t.Errorf("drop on itself changed order: %v", got)
	}

	if f.DropOnBackground(payload(t, square(4), dnd.BufferZone), geom.Point{}) {
		t.Error("own-zone background drop should be a no-op")
	}
}

func TestBufferToWork(t *testing.T) {
	p := newPair()
	p.buffer.SetSequence([]shape.Shape{square(1)})

	if !p.work.DropOnBackground(payload(t, square(1), dnd.BufferZone), geom.Point{X: 50, Y: 50}) {
		t.Fatal("drop rejected")
	}
	if n := len(p.buffer.Sequence()); n != 0 {
		t.Errorf("buffer still holds %d shapes", n)
	}
	if got := ids(p.work.Sequence()); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("work = %v", got)
	}
	if c := p.work.Coord(1); c != (geom.Point{X: 26, Y: 36}) {
		t.Errorf("coord = %v, want {26 36}", c)
	}
	p.check(t)
}

func TestWorkToBuffer(t *testing.T) {
	p := newPair()
	p.buffer.SetSequence([]shape.Shape{square(1), square(2)})
	p.work.SetSequence([]shape.Shape{square(3)})
	p.work.SetCoords(map[int]geom.Point{3: {X: 100, Y: 100}})

	// onto shape 2: inserted in front of it
	if !p.buffer.DropOnItem(payload(t, square(3), dnd.WorkZone), 2, geom.Point{}) {
		t.Fatal("drop rejected")
	}
	if got := ids(p.buffer.Sequence()); !reflect.DeepEqual(got, []int{1, 3, 2}) {
		t.Errorf("buffer = %v", got)
	}
	if n := len(p.work.Sequence()); n != 0 {
		t.Errorf("work still holds %d shapes", n)
	}
	if len(p.work.Coords()) != 0 {
		t.Error("coordinate not removed")
	}
	p.check(t)
}

func TestCrossDropResetsStroke(t *testing.T) {
	p := newPair()
	st := shape.DefaultStyle()
	p.work.SetSequence([]shape.Shape{square(1)})
	p.work.Pointer(1, shape.PointerEnter)
	if w := p.work.Sequence()[0].StrokeWidth; w != st.StrokeWidthActive {
		t.Fatalf("hover width = %v", w)
	}

	hot := square(2)
	hot.StrokeWidth = st.StrokeWidthActive
	p.work.DropOnBackground(payload(t, hot, dnd.BufferZone), geom.Point{X: 300, Y: 200})
	for _, s := range p.work.Sequence() {
		if s.StrokeWidth != st.StrokeWidth {
			t.Errorf("shape %d width = %v", s.ID, s.StrokeWidth)
		}
	}
	if p.work.Highlight(1) != shape.Rest {
		t.Error("highlight state survived the drop")
	}
}

func TestWorkMoveAndBringToFront(t *testing.T) {
	p := newPair()
	p.work.SetSequence([]shape.Shape{square(1), square(2), square(3)})
	p.work.SetCoords(map[int]geom.Point{1: {X: 10, Y: 10}, 2: {X: 200, Y: 200}, 3: {X: 400, Y: 10}})

	if !p.work.DropOnItem(payload(t, square(1), dnd.WorkZone), 2, geom.Point{X: 224, Y: 214}) {
		t.Fatal("drop rejected")
	}
	if got := ids(p.work.Sequence()); !reflect.DeepEqual(got, []int{2, 3, 1}) {
		t.Errorf("order = %v", got)
	}
	if c := p.work.Coord(1); c != (geom.Point{X: 200, Y: 200}) {
		t.Errorf("coord = %v", c)
	}
	if id, ok := p.work.ShapeAt(geom.Point{X: 210, Y: 210}); !ok || id != 1 {
		t.Errorf("topmost = %d, %v", id, ok)
	}

	var kinds []EventKind
	for _, ev := range p.events {
		kinds = append(kinds, ev.Kind)
	}
	if !reflect.DeepEqual(kinds, []EventKind{PositionsChanged, ItemDropped}) {
		t.Errorf("events = %v", kinds)
	}
}

func TestDropClampsToCanvas(t *testing.T) {
	tests := []struct {
		name string
		at   geom.Point
		want geom.Point
	}{
		{"top left", geom.Point{X: 0, Y: 0}, geom.Point{X: 0, Y: 0}},
		{"bottom right", geom.Point{X: 799, Y: 399}, geom.Point{X: 752, Y: 372}},
		{"inside", geom.Point{X: 400, Y: 200}, geom.Point{X: 376, Y: 186}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPair()
			p.work.DropOnBackground(payload(t, square(1), dnd.BufferZone), tt.at)
			if c := p.work.Coord(1); c != tt.want {
				t.Errorf("coord = %v, want %v", c, tt.want)
			}
		})
	}
}

func TestDropClampsToVisibleWindow(t *testing.T) {
	p := newPair()
	p.work.Viewport().Set(0.5, geom.Point{})
	p.work.DropOnBackground(payload(t, square(1), dnd.BufferZone), geom.Point{X: 0, Y: 0})
	if c := p.work.Coord(1); c != (geom.Point{X: 200, Y: 100}) {
		t.Errorf("coord = %v, want {200 100}", c)
	}
}

func TestDropStaysInside(t *testing.T) {
	const eps = 1e-9
	f := func(sx, sy, ox, oy, gx, gy float64, zoom uint8) bool {
		p := newPair()
		vp := p.work.Viewport()
		vp.Set(0.3+float64(zoom%8)/10, geom.Point{X: math.Mod(ox, 400), Y: math.Mod(oy, 200)})

		s := square(1)
		grab := geom.Point{X: math.Mod(math.Abs(gx), 48), Y: math.Mod(math.Abs(gy), 28)}
		var ss dnd.Session
		if err := ss.Start(s, dnd.BufferZone, grab, 8); err != nil {
			return false
		}
		at := geom.Point{X: math.Mod(sx, 1000), Y: math.Mod(sy, 500)}
		if !p.work.DropOnBackground(ss.Data(), at) {
			return false
		}
		c := p.work.Coord(1)
		win := vp.VisibleWindow()
		return c.X >= win.X-eps && c.Y >= win.Y-eps &&
			c.X+48 <= win.X+win.W+eps && c.Y+28 <= win.Y+win.H+eps &&
			c.X >= 0 && c.Y >= 0 && c.X+48 <= 800+eps && c.Y+28 <= 400+eps
	}
	cfg := &quick.Config{MaxCount: 500, Rand: rand.New(rand.NewSource(1))}
	if err := quick.Check(f, cfg); err != nil {
		t.Error(err)
	}
}

func TestMalformedDropIsIgnored(t *testing.T) {
	p := newPair()
	p.buffer.SetSequence([]shape.Shape{square(1)})
	before := p.work.Renders()
	for _, data := range []string{"", "text/plain", `{"data":{}}`} {
		if p.work.DropOnBackground(data, geom.Point{X: 10, Y: 10}) {
			t.Errorf("drop of %q accepted", data)
		}
		if p.buffer.DropOnItem(data, 1, geom.Point{}) {
			t.Errorf("item drop of %q accepted", data)
		}
	}
	if p.work.Renders() != before || len(p.events) != 0 {
		t.Error("malformed drop had side effects")
	}
}

func TestStaleSameZoneDrop(t *testing.T) {
	p := newPair()
	if p.work.DropOnBackground(payload(t, square(7), dnd.WorkZone), geom.Point{X: 10, Y: 10}) {
		t.Error("drop of a shape the zone does not hold was accepted")
	}
	if len(p.work.Sequence()) != 0 {
		t.Error("shape appeared")
	}
}

func TestDispatchAdd(t *testing.T) {
	p := newPair()
	zones := []Zone{p.buffer, p.work}
	for _, z := range zones {
		t.Run(string(z.ID()), func(t *testing.T) {
			z.SetSequence([]shape.Shape{square(1)})
			renders := rendersOf(z)

			s := square(5)
			z.Dispatch(Add(s))
			if got := ids(z.Sequence()); !reflect.DeepEqual(got, []int{1, 5}) {
				t.Errorf("sequence = %v", got)
			}
			if rendersOf(z) != renders+1 {
				t.Errorf("renders = %d, want %d", rendersOf(z), renders+1)
			}
			nodes := z.Nodes()
			if len(nodes) != 2 || nodes[1].ShapeID != 5 {
				t.Errorf("nodes = %+v", nodes)
			}

			s.Points[0] = geom.Point{X: -100, Y: -100}
			if got := z.Sequence()[1].Points[0]; got != (geom.Point{}) {
				t.Errorf("added shape shares points with the caller: %v", got)
			}
		})
	}
}

func rendersOf(z Zone) int {
	switch z := z.(type) {
	case *Flow:
		return z.Renders()
	case *Free:
		return z.Renders()
	}
	return -1
}

func TestItemDropCarriesTarget(t *testing.T) {
	p := newPair()
	p.buffer.SetSequence([]shape.Shape{square(1), square(2)})
	p.work.SetSequence([]shape.Shape{square(3), square(4)})
	p.work.SetCoords(map[int]geom.Point{3: {X: 100, Y: 100}, 4: {X: 300, Y: 100}})

	if !p.work.DropOnItem(payload(t, square(1), dnd.BufferZone), 4, geom.Point{X: 324, Y: 114}) {
		t.Fatal("drop on canvas shape rejected")
	}
	if !p.buffer.DropOnItem(payload(t, square(3), dnd.WorkZone), 2, geom.Point{}) {
		t.Fatal("drop on buffer shape rejected")
	}

	var drops []Event
	for _, ev := range p.events {
		if ev.Kind == ItemDropped {
			drops = append(drops, ev)
		}
	}
	want := []Event{
		{Kind: ItemDropped, ShapeID: 1, DroppedOnID: 4, Origin: dnd.BufferZone, Target: dnd.WorkZone},
		{Kind: ItemDropped, ShapeID: 3, DroppedOnID: 2, Origin: dnd.WorkZone, Target: dnd.BufferZone},
	}
	if !reflect.DeepEqual(drops, want) {
		t.Errorf("item drops = %+v", drops)
	}
	p.check(t)
}

func TestRemoveMissingIsHarmless(t *testing.T) {
	p := newPair()
	p.buffer.SetSequence([]shape.Shape{square(1)})
	p.buffer.Dispatch(Remove(99))
	p.work.Dispatch(Remove(99))
	if got := ids(p.buffer.Sequence()); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("buffer = %v", got)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	p := newPair()
	p.work.SetSequence([]shape.Shape{square(1), square(2)})
	p.work.SetCoords(map[int]geom.Point{2: {X: 30, Y: 40}})
	a := p.work.Render()
	b := p.work.Render()
	if !reflect.DeepEqual(a, b) {
		t.Error("render output differs between calls")
	}
	if a[0].Box.Min() != (geom.Point{}) {
		t.Errorf("shape without coordinate at %v", a[0].Box.Min())
	}
}

func TestRoundTripKeepsMembershipExclusive(t *testing.T) {
	p := newPair()
	p.buffer.SetSequence([]shape.Shape{square(1), square(2), square(3)})
	rng := rand.New(rand.NewSource(7))
	for range 200 {
		id := 1 + rng.Intn(3)
		at := geom.Point{X: rng.Float64() * 800, Y: rng.Float64() * 400}
		if shape.IndexOf(p.buffer.Sequence(), id) >= 0 {
			p.work.DropOnBackground(payload(t, square(id), dnd.BufferZone), at)
		} else {
			p.buffer.DropOnBackground(payload(t, square(id), dnd.WorkZone), at)
		}
		p.check(t)
	}
	if n := len(p.buffer.Sequence()) + len(p.work.Sequence()); n != 3 {
		t.Errorf("total shapes = %d, want 3", n)
	}
}
