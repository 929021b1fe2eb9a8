package main

import (
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"polydock/internal/shape"
	"polydock/internal/zone"
)

// axisMargin is the room left of and below the canvas for axis labels, in
// pixels.
const axisMargin = 40.0

// exportPNG draws the whole work canvas at scale 1, independent of the
// current zoom, with its grid, axes and every placed shape.
func (m *model) exportPNG(filename string) error {
	work := m.ws.work
	size := work.Viewport().Size()
	nodes := work.Nodes()

	imageWidth := int(size.W + axisMargin*1.5)
	imageHeight := int(size.H + axisMargin*1.5)

	// Create drawing context
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()

	// Load font for axis labels
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    11,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	ox, oy := axisMargin, axisMargin/2
	drawAxesPNG(dc, ox, oy, size.W, size.H)

	for _, n := range nodes {
		drawShapePNG(dc, n, ox, oy, m.ws.style)
	}

	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}

func drawAxesPNG(dc *gg.Context, ox, oy, w, h float64) {
	dc.SetLineWidth(1)
	dc.SetRGB(0.85, 0.85, 0.85)
	for x := axisStep; x < w; x += axisStep {
		dc.DrawLine(ox+x, oy, ox+x, oy+h)
	}
	for y := axisStep; y < h; y += axisStep {
		dc.DrawLine(ox, oy+y, ox+w, oy+y)
	}
	dc.Stroke()

	dc.SetRGB(0.2, 0.2, 0.2)
	dc.DrawRectangle(ox, oy, w, h)
	dc.Stroke()

	for x := 0.0; x <= w; x += axisStep {
		dc.DrawStringAnchored(strconv.Itoa(int(x)), ox+x, oy+h+4, 0.5, 1)
	}
	// y counts up from the bottom edge
	for y := 0.0; y <= h; y += axisStep {
		dc.DrawStringAnchored(strconv.Itoa(int(y)), ox-4, oy+h-y, 1, 0.35)
	}
}

func drawShapePNG(dc *gg.Context, n zone.Node, ox, oy float64, st shape.Style) {
	s := n.Shape
	if len(s.Points) < 3 {
		return
	}
	// shape coordinates are relative to its bounding box inset by half the padding
	dx := ox + n.Box.X + st.Padding/2 - s.Sizes.MinX
	dy := oy + n.Box.Y + st.Padding/2 - s.Sizes.MinY

	dc.NewSubPath()
	for i, p := range s.Points {
		if i == 0 {
			dc.MoveTo(dx+p.X, dy+p.Y)
		} else {
			dc.LineTo(dx+p.X, dy+p.Y)
		}
	}
	dc.ClosePath()
	dc.SetHexColor(s.Fill)
	dc.FillPreserve()
	dc.SetHexColor(s.Stroke)
	dc.SetLineWidth(st.StrokeWidth)
	dc.Stroke()
}

// exportVisualTXT writes the buffer strip and the work canvas as they appear
// on screen, without colours.
func (m *model) exportVisualTXT(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	cols := m.cols()
	for _, line := range m.renderBuffer(cols).plain() {
		fmt.Fprintln(file, line)
	}
	fmt.Fprintln(file, separatorLine(cols))
	for _, line := range m.renderWork(cols, m.workRows()).plain() {
		fmt.Fprintln(file, line)
	}
	return nil
}
