// Package geom holds the small 2D helpers the viewport and the zones share.
package geom

import "math"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Size struct {
	W, H float64
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Vector returns the displacement from a to b.
func Vector(a, b Point) Point {
	return Point{X: b.X - a.X, Y: b.Y - a.Y}
}

func Dot(a, b Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Abs is the euclidean length of v.
func Abs(v Point) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func Multiply(k float64, v Point) Point {
	return Point{X: k * v.X, Y: k * v.Y}
}

// Touch is one active contact of a touch sequence in screen coordinates.
type Touch struct {
	ID      int
	ClientX float64
	ClientY float64
}

func TouchPoint(t Touch) Point {
	return Point{X: t.ClientX, Y: t.ClientY}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Finite reports whether both coordinates are real numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
