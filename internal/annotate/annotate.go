// Package annotate draws analysis results onto a rendered page image
// for visual debugging of detection output.
package annotate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/local/layoutmd/internal/analyzer"
	"github.com/local/layoutmd/internal/geom"
)

// Overlay colors, one per element class.
var (
	colorLineBased = color.RGBA{R: 0, G: 180, B: 0, A: 255}
	colorEdgeBased = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	colorCell      = color.RGBA{R: 0, G: 90, B: 220, A: 255}
	colorSpan      = color.RGBA{R: 220, G: 0, B: 0, A: 255}
	colorGridLine  = color.RGBA{R: 170, G: 0, B: 170, A: 255}
)

// Annotator renders a page layout as colored outlines over the source
// image. Regions get thick outlines with labels, cells and spans thin
// ones, grid lines run across the full page.
type Annotator struct {
	drawLabels bool
}

func New() *Annotator {
	return &Annotator{drawLabels: true}
}

// SetLabels toggles the text labels next to region outlines.
func (a *Annotator) SetLabels(enabled bool) {
	a.drawLabels = enabled
}

// Render copies src and draws the layout over it. The source image is
// never modified.
func (a *Annotator) Render(src image.Image, layout *analyzer.PageLayout) *image.RGBA {
	bounds := src.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, src, bounds.Min, draw.Src)
	if layout == nil {
		return out
	}

	for _, y := range layout.HLines {
		drawHLine(out, y, colorGridLine)
	}
	for _, x := range layout.VLines {
		drawVLine(out, x, colorGridLine)
	}
	for _, cell := range layout.Cells {
		drawRect(out, cell, colorCell, 1)
	}
	for _, s := range layout.Spans {
		drawRect(out, geom.Region{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}, colorSpan, 1)
	}
	for i, r := range layout.Regions {
		c := colorLineBased
		if r.Kind == geom.KindEdgeBased {
			c = colorEdgeBased
		}
		drawRect(out, r, c, 2)
		if a.drawLabels {
			drawLabel(out, r.X+3, r.Y+13, fmt.Sprintf("%d:%s", i, r.Kind), c)
		}
	}

	log.Debug().
		Int("regions", len(layout.Regions)).
		Int("cells", len(layout.Cells)).
		Int("spans", len(layout.Spans)).
		Msg("annotated page image")
	return out
}

// drawRect outlines a region, clamped to the image bounds.
func drawRect(img *image.RGBA, r geom.Region, c color.RGBA, thickness int) {
	for t := 0; t < thickness; t++ {
		x1, y1 := r.X+t, r.Y+t
		x2, y2 := r.X2()-1-t, r.Y2()-1-t
		if x2 <= x1 || y2 <= y1 {
			return
		}
		for x := x1; x <= x2; x++ {
			setClamped(img, x, y1, c)
			setClamped(img, x, y2, c)
		}
		for y := y1; y <= y2; y++ {
			setClamped(img, x1, y, c)
			setClamped(img, x2, y, c)
		}
	}
}

func drawHLine(img *image.RGBA, y int, c color.RGBA) {
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		setClamped(img, x, y, c)
	}
}

func drawVLine(img *image.RGBA, x int, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		setClamped(img, x, y, c)
	}
}

func setClamped(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

func drawLabel(img *image.RGBA, x, y int, text string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
