package dnd

import (
	"polydock/internal/geom"
	"polydock/internal/shape"
)

// Session is the one drag that may be in flight. It plays the part of the
// platform's transfer object: the source writes serialised data into it at
// drag start and the target reads it back on drop.
type Session struct {
	active bool
	id     int
	origin Source
	data   string
}

// Start begins a drag of s from origin. grab is the pointer position relative
// to the top-left corner of the shape's padded box, in shape units.
func (ss *Session) Start(s shape.Shape, origin Source, grab geom.Point, padding float64) error {
	box := s.BoxSize(padding)
	p := Payload{
		Shape:  s.Clone(),
		Origin: origin,
		Offset: geom.Point{X: grab.X - box.W/2, Y: grab.Y - box.H/2},
	}
	data, err := p.Encode()
	if err != nil {
		return err
	}
	ss.active = true
	ss.id = s.ID
	ss.origin = origin
	ss.data = data
	return nil
}

func (ss *Session) Active() bool   { return ss.active }
func (ss *Session) ShapeID() int   { return ss.id }
func (ss *Session) Origin() Source { return ss.origin }

// Data is the transfer text a drop target receives.
func (ss *Session) Data() string {
	if !ss.active {
		return ""
	}
	return ss.data
}

// End clears the session whether or not a drop happened.
func (ss *Session) End() {
	*ss = Session{}
}
