// Package viewport keeps the zoom and pan state of the work canvas and turns
// wheel, mouse and touch gestures into changes of that state.
//
// Logical space is the canvas coordinate system, W x H units. Screen space is
// whatever the caller renders into; at scale 1 one screen unit maps to one
// logical unit. Smaller scales zoom in.
package viewport

import (
	"polydock/internal/geom"
)

const (
	ZoomStep        = 0.075
	DefaultMinScale = 0.3
)

type Viewport struct {
	w, h     float64
	minScale float64
	scale    float64
	offset   geom.Point
}

func New(width, height, minScale float64) *Viewport {
	if minScale <= 0 || minScale > 1 {
		minScale = DefaultMinScale
	}
	return &Viewport{
		w:        width,
		h:        height,
		minScale: minScale,
		scale:    1,
	}
}

func (v *Viewport) Size() geom.Size { return geom.Size{W: v.w, H: v.h} }
func (v *Viewport) Scale() float64 { return v.scale }
func (v *Viewport) MinScale() float64 { return v.minScale }
func (v *Viewport) Offset() geom.Point { return v.offset }

// Set restores a previously read state, clamping it into range.
func (v *Viewport) Set(scale float64, offset geom.Point) {
	v.scale = geom.Clamp(scale, v.minScale, 1)
	v.offset = offset
	v.ApplyPan(0, 0)
}

func (v *Viewport) Reset() {
	v.scale = 1
	v.offset = geom.Point{}
}

// ApplyZoom changes the scale by 7.5% of its current value in the direction
// opposite to the sign of delta, keeping the window centred where it was.
func (v *Viewport) ApplyZoom(delta float64) {
	v.scale = geom.Clamp(v.scale-geom.Sign(delta)*v.scale*ZoomStep, v.minScale, 1)
	v.ApplyPan(0, 0)
}

// ZoomAt zooms like ApplyZoom but keeps the logical point under anchor fixed
// on screen, within what the pan bounds allow.
func (v *Viewport) ZoomAt(delta float64, anchor geom.Point, screen geom.Size) {
	if screen.W <= 0 || screen.H <= 0 {
		v.ApplyZoom(delta)
		return
	}
	before := v.Rescale(anchor, screen)
	v.ApplyZoom(delta)
	after := v.Rescale(anchor, screen)
	v.offset = v.offset.Add(before.Sub(after))
	v.ApplyPan(0, 0)
}

// ApplyPan moves the window by a screen-space delta. Dragging right reveals
// content on the left, so the logical delta is inverted.
func (v *Viewport) ApplyPan(dx, dy float64) {
	v.offset = Offset(v.Size(), v.offset, v.scale, dx, dy)
}

// Offset computes the clamped offset produced by panning by (dx, dy) at scale.
func Offset(size geom.Size, offset geom.Point, scale, dx, dy float64) geom.Point {
	maxX := size.W * (1 - scale) / 2
	maxY := size.H * (1 - scale) / 2
	return geom.Point{
		X: geom.Clamp(offset.X-dx*scale, -maxX, maxX),
		Y: geom.Clamp(offset.Y-dy*scale, -maxY, maxY),
	}
}

// VisibleWindow is the logical rectangle currently on screen.
func (v *Viewport) VisibleWindow() geom.Rect {
	return geom.Rect{
		X: v.w/2*(1-v.scale) + v.offset.X,
		Y: v.h/2*(1-v.scale) + v.offset.Y,
		W: v.w * v.scale,
		H: v.h * v.scale,
	}
}

// Rescale maps a point on a screen of the given size into logical space.
func (v *Viewport) Rescale(p geom.Point, screen geom.Size) geom.Point {
	return Rescale(p, screen, v.VisibleWindow())
}

// Rescale maps p from a screen rectangle of size screen onto window.
func Rescale(p geom.Point, screen geom.Size, window geom.Rect) geom.Point {
	if screen.W <= 0 || screen.H <= 0 {
		return window.Min()
	}
	return geom.Point{
		X: window.X + p.X*window.W/screen.W,
		Y: window.Y + p.Y*window.H/screen.H,
	}
}
