package shape

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"testing"

	"polydock/internal/geom"
)

func triangle(id int) Shape {
	s, err := New(id, []geom.Point{{X: 10, Y: 20}, {X: 50, Y: 5}, {X: 30, Y: 60}}, "#A00", "#111", 2)
	if err != nil {
		panic(err)
	}
	return s
}

func TestNewComputesBounds(t *testing.T) {
	s := triangle(1)
	want := Sizes{MinX: 10, MinY: 5, Width: 40, Height: 55}
	if s.Sizes != want {
		t.Fatalf("Sizes = %+v, want %+v", s.Sizes, want)
	}
	for _, p := range s.Points {
		if p.X < s.Sizes.MinX || p.X > s.Sizes.MinX+s.Sizes.Width ||
			p.Y < s.Sizes.MinY || p.Y > s.Sizes.MinY+s.Sizes.Height {
			t.Errorf("point %v outside bounds", p)
		}
	}
	// winding order is kept
	if s.Points[1] != (geom.Point{X: 50, Y: 5}) {
		t.Errorf("points reordered: %v", s.Points)
	}
}

func TestNewRejectsDegenerate(t *testing.T) {
	_, err := New(1, []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, "", "", 1)
	if !errors.Is(err, ErrTooFewPoints) {
		t.Fatalf("err = %v, want ErrTooFewPoints", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := triangle(1)
	c := s.Clone()
	c.Points[0].X = 999
	if s.Points[0].X == 999 {
		t.Error("Clone shares point storage")
	}
}

func TestHit(t *testing.T) {
	s, _ := New(1, []geom.Point{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 40}, {X: 0, Y: 40}}, "", "", 2)
	const pad = 8
	tests := []struct {
		name           string
		p              geom.Point
		inside, stroke bool
	}{
		{"middle", geom.Point{X: 24, Y: 24}, true, false},
		{"near edge", geom.Point{X: 4.5, Y: 24}, true, true},
		{"padding", geom.Point{X: 1, Y: 1}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, st := s.Hit(tt.p, pad, 0)
			if in != tt.inside || st != tt.stroke {
				t.Errorf("Hit(%v) = %v,%v want %v,%v", tt.p, in, st, tt.inside, tt.stroke)
			}
		})
	}
}

func TestTransition(t *testing.T) {
	st := DefaultStyle()
	s := triangle(1)

	h, changed := Transition(&s, Rest, PointerEnter, st)
	if h != Hovered || !changed || s.StrokeWidth != st.StrokeWidthActive {
		t.Fatalf("enter: state %v changed %v width %v", h, changed, s.StrokeWidth)
	}
	h, changed = Transition(&s, h, PointerEnter, st)
	if changed {
		t.Error("second enter should not request a render")
	}
	h, changed = Transition(&s, h, DragStart, st)
	if h != Dragging || changed || s.StrokeWidth != st.StrokeWidthActive {
		t.Errorf("drag start: state %v changed %v width %v", h, changed, s.StrokeWidth)
	}
	h, changed = Transition(&s, h, DragEnd, st)
	if h != Rest || !changed || s.StrokeWidth != st.StrokeWidth {
		t.Errorf("drag end: state %v changed %v width %v", h, changed, s.StrokeWidth)
	}
	_, changed = Transition(&s, h, PointerLeave, st)
	if changed {
		t.Error("leave at rest should not request a render")
	}
}

func TestGenerateSet(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	cfg := DefaultGenConfig(DefaultStyle())
	taken := map[int]bool{}
	set := GenerateSet(rng, cfg, taken)
	if len(set) < cfg.MinCount || len(set) > cfg.MaxCount {
		t.Fatalf("got %d shapes", len(set))
	}
	seen := map[int]bool{}
	for _, s := range set {
		if seen[s.ID] {
			t.Fatalf("duplicate id %d", s.ID)
		}
		seen[s.ID] = true
		if len(s.Points) < cfg.MinSides || len(s.Points) > cfg.MaxSides {
			t.Errorf("shape %d has %d points", s.ID, len(s.Points))
		}
		if s.Sizes != Bounds(s.Points) {
			t.Errorf("shape %d has stale sizes", s.ID)
		}
	}
}

func TestIsRecord(t *testing.T) {
	raw, _ := json.Marshal(triangle(7))
	var good any
	if err := json.Unmarshal(raw, &good); err != nil {
		t.Fatal(err)
	}
	if !IsRecord(good) {
		t.Fatal("marshalled shape should validate")
	}

	tests := []struct {
		name string
		json string
	}{
		{"not object", `[1,2]`},
		{"string id", `{"id":"1","points":[],"fill":"","stroke":"","strokeWidth":1,"sizes":{"minX":0,"minY":0,"width":0,"height":0}}`},
		{"fractional id", `{"id":1.5,"points":[],"fill":"","stroke":"","strokeWidth":1,"sizes":{"minX":0,"minY":0,"width":0,"height":0}}`},
		{"bad point", `{"id":1,"points":[{"x":1}],"fill":"","stroke":"","strokeWidth":1,"sizes":{"minX":0,"minY":0,"width":0,"height":0}}`},
		{"missing sizes", `{"id":1,"points":[],"fill":"","stroke":"","strokeWidth":1}`},
		{"null sizes", `{"id":1,"points":[],"fill":"","stroke":"","strokeWidth":1,"sizes":null}`},
		{"numeric fill", `{"id":1,"points":[],"fill":3,"stroke":"","strokeWidth":1,"sizes":{"minX":0,"minY":0,"width":0,"height":0}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v any
			if err := json.Unmarshal([]byte(tt.json), &v); err != nil {
				t.Fatal(err)
			}
			if IsRecord(v) {
				t.Error("IsRecord = true, want false")
			}
		})
	}
}
