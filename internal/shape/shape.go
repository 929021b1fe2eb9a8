// Package shape defines the polygon record that moves between zones.
package shape

import (
	"errors"
	"fmt"
	"math"

	"polydock/internal/geom"
)

var ErrTooFewPoints = errors.New("polygon needs at least 3 points")

// Sizes is the bounding box of a shape's points, computed once at creation.
type Sizes struct {
	MinX   float64 `json:"minX"`
	MinY   float64 `json:"minY"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Shape struct {
	ID          int          `json:"id"`
	Points      []geom.Point `json:"points"`
	Fill        string       `json:"fill"`
	Stroke      string       `json:"stroke"`
	StrokeWidth float64      `json:"strokeWidth"`
	Sizes       Sizes        `json:"sizes"`
}

// Style holds the rendering constants every shape shares.
type Style struct {
	Fill              string
	Stroke            string
	StrokeWidth       float64
	StrokeWidthActive float64
	Padding           float64
}

func DefaultStyle() Style {
	return Style{
		Fill:              "#A00",
		Stroke:            "#111",
		StrokeWidth:       2,
		StrokeWidthActive: 4,
		Padding:           8,
	}
}

func New(id int, points []geom.Point, fill, stroke string, strokeWidth float64) (Shape, error) {
	if len(points) < 3 {
		return Shape{}, fmt.Errorf("shape %d: %w", id, ErrTooFewPoints)
	}
	pts := make([]geom.Point, len(points))
	copy(pts, points)
	return Shape{
		ID:          id,
		Points:      pts,
		Fill:        fill,
		Stroke:      stroke,
		StrokeWidth: strokeWidth,
		Sizes:       Bounds(pts),
	}, nil
}

func Bounds(points []geom.Point) Sizes {
	if len(points) == 0 {
		return Sizes{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Sizes{MinX: minX, MinY: minY, Width: maxX - minX, Height: maxY - minY}
}

// Clone returns a copy that shares no memory with s.
func (s Shape) Clone() Shape {
	c := s
	c.Points = make([]geom.Point, len(s.Points))
	copy(c.Points, s.Points)
	return c
}

// BoxSize is the size of the shape's padded bounding box, which is the area it
// occupies when rendered.
func (s Shape) BoxSize(padding float64) geom.Size {
	return geom.Size{W: s.Sizes.Width + padding, H: s.Sizes.Height + padding}
}

// Local converts a point relative to the padded box's top-left corner into
// the shape's own coordinates.
func (s Shape) Local(p geom.Point, padding float64) geom.Point {
	return geom.Point{
		X: p.X + s.Sizes.MinX - padding/2,
		Y: p.Y + s.Sizes.MinY - padding/2,
	}
}

// Hit classifies a point given in padded-box coordinates. tolerance widens
// the stroke band, typically by half a rendered cell.
func (s Shape) Hit(p geom.Point, padding, tolerance float64) (inside, onStroke bool) {
	local := s.Local(p, padding)
	d := geom.EdgeDistance(s.Points, local)
	band := s.StrokeWidth/2 + tolerance
	if geom.PolygonContains(s.Points, local) {
		return true, d <= band
	}
	if d <= s.StrokeWidth/2 {
		return true, true
	}
	return false, false
}

func IDs(seq []Shape) []int {
	ids := make([]int, len(seq))
	for i, s := range seq {
		ids[i] = s.ID
	}
	return ids
}

func IndexOf(seq []Shape, id int) int {
	for i, s := range seq {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func CloneAll(seq []Shape) []Shape {
	out := make([]Shape, len(seq))
	for i, s := range seq {
		out[i] = s.Clone()
	}
	return out
}
