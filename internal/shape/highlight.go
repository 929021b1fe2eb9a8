package shape

// Highlight is the pointer state of one rendered shape.
type Highlight int

const (
	Rest Highlight = iota
	Hovered
	Dragging
)

func (h Highlight) String() string {
	switch h {
	case Rest:
		return "rest"
	case Hovered:
		return "hovered"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

type PointerEvent int

const (
	PointerEnter PointerEvent = iota
	PointerLeave
	DragStart
	DragEnd
)

// Transition moves s to the state that follows ev and sets its stroke width
// accordingly. changed is true only when the stroke width actually moved, which
// is the only case that needs a re-render.
func Transition(s *Shape, from Highlight, ev PointerEvent, st Style) (next Highlight, changed bool) {
	width := s.StrokeWidth
	switch ev {
	case PointerEnter:
		next, width = Hovered, st.StrokeWidthActive
	case PointerLeave, DragEnd:
		next, width = Rest, st.StrokeWidth
	case DragStart:
		// looks the same until the drop or cancel
		next = Dragging
	default:
		return from, false
	}
	if s.StrokeWidth == width {
		return next, false
	}
	s.StrokeWidth = width
	return next, true
}
