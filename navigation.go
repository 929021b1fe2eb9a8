package main

// handlePan moves the work canvas by speed steps. Directions follow the view,
// not the content: "l" shows what lies to the right.
func (m *model) handlePan(key string, speed int) {
	c := m.workCell()
	dx := float64(panStep*speed) * c.W
	dy := float64(panStep*speed) * c.H
	vp := m.ws.work.Viewport()
	switch key {
	case "h", "left", "H", "shift+left":
		vp.ApplyPan(dx, 0)
	case "l", "right", "L", "shift+right":
		vp.ApplyPan(-dx, 0)
	case "k", "up", "K", "shift+up":
		vp.ApplyPan(0, dy)
	case "j", "down", "J", "shift+down":
		vp.ApplyPan(0, -dy)
	}
}

// handleZoom zooms around the centre of the view. Positive steps zoom in.
func (m *model) handleZoom(key string) {
	vp := m.ws.work.Viewport()
	switch key {
	case "+", "=":
		vp.ApplyZoom(1)
	case "-", "_":
		vp.ApplyZoom(-1)
	case "0":
		vp.Reset()
	}
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}
