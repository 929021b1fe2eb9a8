package geom

import "math"

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Min() Point { return Point{r.X, r.Y} }

func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains is inclusive on the top/left edge and exclusive on the bottom/right one,
// so neighbouring rects never both claim a point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// PolygonContains is an even-odd ray cast. Winding order does not matter.
func PolygonContains(pts []Point, p Point) bool {
	n := len(pts)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// EdgeDistance returns the distance from p to the closest edge of the closed polygon.
func EdgeDistance(pts []Point, p Point) float64 {
	best := math.Inf(1)
	n := len(pts)
	for i := 0; i < n; i++ {
		d := segmentDistance(pts[i], pts[(i+1)%n], p)
		if d < best {
			best = d
		}
	}
	return best
}

func segmentDistance(a, b, p Point) float64 {
	ab := Vector(a, b)
	l2 := Dot(ab, ab)
	if l2 == 0 {
		return Abs(Vector(a, p))
	}
	t := Clamp(Dot(Vector(a, p), ab)/l2, 0, 1)
	return Abs(Vector(a.Add(Multiply(t, ab)), p))
}
