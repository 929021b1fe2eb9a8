package viewport

import (
	"polydock/internal/geom"
)

// Gestures drives a Viewport from raw pointer input. It never renders; callers
// read the viewport after each event. All positions are in screen units.
type Gestures struct {
	vp *Viewport

	dragging bool
	last     geom.Point

	// last sampled finger positions, nil outside a touch sequence
	touch  *geom.Point
	touch1 *geom.Point
	touch2 *geom.Point
}

func NewGestures(vp *Viewport) *Gestures {
	return &Gestures{vp: vp}
}

func (g *Gestures) Viewport() *Viewport { return g.vp }

// Dragging reports whether a canvas pan is in progress. Item drags must not
// start while it is.
func (g *Gestures) Dragging() bool { return g.dragging }

// Wheel zooms once per event; only the sign of deltaY matters. Positive means
// wheel up and zooms in, the opposite of a browser's deltaY.
func (g *Gestures) Wheel(deltaY float64) {
	g.vp.ApplyZoom(deltaY)
}

// WheelAt zooms keeping the point under the pointer in place.
func (g *Gestures) WheelAt(deltaY float64, at geom.Point, screen geom.Size) {
	g.vp.ZoomAt(deltaY, at, screen)
}

func (g *Gestures) MouseDown(p geom.Point) {
	g.dragging = true
	g.last = p
}

// MouseMove pans by the distance travelled since the last sample. It reports
// whether the viewport was touched.
func (g *Gestures) MouseMove(p geom.Point) bool {
	if !g.dragging {
		return false
	}
	d := geom.Vector(g.last, p)
	g.vp.ApplyPan(d.X, d.Y)
	g.last = p
	return true
}

// MouseUp ends a pan. It also serves mouse-leave and the start of an item drag.
func (g *Gestures) MouseUp() {
	g.dragging = false
}

// TouchStart seeds finger memory from the current contacts.
func (g *Gestures) TouchStart(touches []geom.Touch) {
	g.remember(touches)
}

// TouchMove applies a one- or two-finger gesture and re-samples the fingers.
// Any other contact count only re-samples.
func (g *Gestures) TouchMove(touches []geom.Touch) bool {
	applied := false
	switch len(touches) {
	case 1:
		if g.touch != nil {
			d := geom.Vector(*g.touch, geom.TouchPoint(touches[0]))
			g.vp.ApplyPan(d.X, d.Y)
			applied = true
		}
	case 2:
		if g.touch1 != nil && g.touch2 != nil {
			scale, move, ok := Pinch(*g.touch1, *g.touch2, geom.TouchPoint(touches[0]), geom.TouchPoint(touches[1]))
			if ok {
				g.vp.scale = geom.Clamp(g.vp.scale/scale, g.vp.minScale, 1)
			}
			g.vp.ApplyPan(move.X, move.Y)
			applied = true
		}
	}
	g.remember(touches)
	return applied
}

// TouchEnd is called with the contacts still down. When none are left the
// sequence is over and finger memory is cleared; otherwise the remaining
// fingers are re-sampled so the next move does not jump.
func (g *Gestures) TouchEnd(remaining []geom.Touch) {
	if len(remaining) == 0 {
		g.touch, g.touch1, g.touch2 = nil, nil, nil
		return
	}
	g.remember(remaining)
}

func (g *Gestures) remember(touches []geom.Touch) {
	g.touch, g.touch1, g.touch2 = nil, nil, nil
	switch len(touches) {
	case 1:
		p := geom.TouchPoint(touches[0])
		g.touch = &p
	case 2:
		p1 := geom.TouchPoint(touches[0])
		p2 := geom.TouchPoint(touches[1])
		g.touch1, g.touch2 = &p1, &p2
	}
}

// Pinch splits the motion of two fingers into a zoom factor and a pan.
//
// Each finger's displacement is projected onto the axis pointing from that
// finger toward the other one ("scroll distance"), so spreading gives
// negative distances. The zoom factor is
// (distance - s1 - s2) / distance, so fingers spreading apart give a factor
// above 1. What is left of each displacement after removing the axial part is
// averaged into the pan. ok is false when the factor is unusable (fingers on
// top of each other or crossing); the pan is still valid then.
func Pinch(prev1, prev2, cur1, cur2 geom.Point) (factor float64, move geom.Point, ok bool) {
	d1 := geom.Vector(prev1, cur1)
	d2 := geom.Vector(prev2, cur2)

	axis := geom.Vector(cur1, cur2)
	dist := geom.Abs(axis)
	if dist == 0 {
		return 1, geom.Multiply(0.5, d1.Add(d2)), false
	}
	unit1 := geom.Multiply(1/dist, axis)
	unit2 := geom.Multiply(-1, unit1)

	s1 := geom.Dot(d1, unit1)
	s2 := geom.Dot(d2, unit2)

	r1 := d1.Sub(geom.Multiply(s1, unit1))
	r2 := d2.Sub(geom.Multiply(s2, unit2))
	move = geom.Multiply(0.5, r1.Add(r2))

	factor = (dist - s1 - s2) / dist
	if factor <= 0 || !move.Finite() {
		return 1, move, false
	}
	return factor, move, true
}
