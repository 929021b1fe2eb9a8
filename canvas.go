package main

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"polydock/internal/geom"
	"polydock/internal/zone"
)

var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	gridFg    = lipgloss.Color("#374151")

	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
	statusStyle = lipgloss.NewStyle().Foreground(baseFg)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// cell is one terminal character of a rendered zone. Empty colours mean the
// terminal default.
type cell struct {
	r  rune
	fg string
	bg string
}

type grid [][]cell

func newGrid(cols, rows int) grid {
	g := make(grid, rows)
	for y := range g {
		g[y] = make([]cell, cols)
		for x := range g[y] {
			g[y][x] = cell{r: ' '}
		}
	}
	return g
}

func (g grid) put(x, y int, c cell) {
	if y < 0 || y >= len(g) || x < 0 || x >= len(g[y]) {
		return
	}
	g[y][x] = c
}

func (g grid) text(x, y int, s, fg string) {
	for i, r := range []rune(s) {
		g.put(x+i, y, cell{r: r, fg: fg})
	}
}

func (g grid) plain() []string {
	lines := make([]string, len(g))
	for y, row := range g {
		var b strings.Builder
		for _, c := range row {
			b.WriteRune(c.r)
		}
		lines[y] = b.String()
	}
	return lines
}

// styled renders every row, grouping runs of equally coloured cells so each
// run goes through lipgloss once.
func (g grid) styled() []string {
	styles := make(map[[2]string]lipgloss.Style)
	style := func(fg, bg string) lipgloss.Style {
		key := [2]string{fg, bg}
		if s, ok := styles[key]; ok {
			return s
		}
		s := lipgloss.NewStyle()
		if fg != "" {
			s = s.Foreground(lipgloss.Color(fg))
		}
		if bg != "" {
			s = s.Background(lipgloss.Color(bg))
		}
		styles[key] = s
		return s
	}

	lines := make([]string, len(g))
	for y, row := range g {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].fg == row[start].fg && row[x].bg == row[start].bg {
				continue
			}
			run := make([]rune, 0, x-start)
			for _, c := range row[start:x] {
				run = append(run, c.r)
			}
			if row[start].fg == "" && row[start].bg == "" {
				b.WriteString(string(run))
			} else {
				b.WriteString(style(row[start].fg, row[start].bg).Render(string(run)))
			}
			start = x
		}
		lines[y] = b.String()
	}
	return lines
}

// sample paints the cell at (x, y) if one of nodes covers point p. Nodes are
// tested from the top of the stack down; a point inside a node's box but
// outside its polygon falls through to the nodes below. tol is half a cell in
// the nodes' units.
func sample(g grid, x, y int, nodes []zone.Node, p geom.Point, padding, tol float64) bool {
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if !n.Box.Contains(p) {
			continue
		}
		inside, onStroke := n.Shape.Hit(p.Sub(n.Box.Min()), padding, tol)
		if !inside {
			continue
		}
		if onStroke {
			g.put(x, y, cell{r: '▓', fg: n.Shape.Stroke, bg: n.Shape.Fill})
		} else {
			g.put(x, y, cell{r: '█', fg: n.Shape.Fill})
		}
		return true
	}
	return false
}

// renderBuffer draws the visible rows of the buffer strip.
func (m *model) renderBuffer(cols int) grid {
	rows := m.bufferRows()
	g := newGrid(cols, rows)
	c := m.bufferCell()
	nodes := m.ws.buffer.Nodes()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			sample(g, x, y, nodes, m.bufferPoint(x, y+m.bufferTop()), m.ws.style.Padding, c.W/2)
		}
	}
	if len(nodes) == 0 {
		g.text(1, rows/2, "buffer is empty: drop shapes here or press g", string(gridFg))
	}
	return g
}

// renderWork draws the visible window of the work canvas with its grid and
// axis labels. Y labels count up from the bottom edge of the canvas.
func (m *model) renderWork(cols, rows int) grid {
	g := newGrid(cols, rows)
	work := m.ws.work
	win := work.Viewport().VisibleWindow()
	cw, ch := win.W/float64(cols), win.H/float64(rows)
	nodes := work.Nodes()
	size := work.Viewport().Size()

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			l := work.ToLogical(m.workPoint(x, y+m.workTop()))
			if sample(g, x, y, nodes, l, m.ws.style.Padding, cw/2) {
				continue
			}
			if gridLine(l.X, cw) && gridLine(l.Y, ch) {
				g.put(x, y, cell{r: '·', fg: string(gridFg)})
			}
		}
	}

	// x labels along the bottom row
	for x := 0; x < cols; x++ {
		lx := win.X + (float64(x)+0.5)*cw
		if v, ok := gridValue(lx, cw); ok && v > 0 {
			g.text(x, rows-1, strconv.Itoa(int(v)), baseDimFg.Dark)
		}
	}
	// y labels down the left edge
	for y := 0; y < rows; y++ {
		ly := win.Y + (float64(y)+0.5)*ch
		if v, ok := gridValue(ly, ch); ok && v < size.H {
			g.text(0, y, strconv.Itoa(int(size.H-v)), baseDimFg.Dark)
		}
	}

	if m.mode == ModeDrag {
		if y := m.pointerY - m.workTop(); y >= 0 && y < rows {
			g.put(m.pointerX, y, cell{r: dragGhostRune, fg: string(accentFg)})
		}
	}
	return g
}

// gridLine reports whether a multiple of axisStep falls inside the cell
// centred on v with width w.
func gridLine(v, w float64) bool {
	_, ok := gridValue(v, w)
	return ok
}

func gridValue(v, w float64) (float64, bool) {
	k := math.Floor((v+w/2)/axisStep) * axisStep
	return k, k >= v-w/2
}

func (m *model) bufferGhost(g grid) {
	if m.mode != ModeDrag {
		return
	}
	if y := m.pointerY - m.bufferTop(); y >= 0 && y < len(g) {
		g.put(m.pointerX, y, cell{r: dragGhostRune, fg: string(accentFg)})
	}
}
