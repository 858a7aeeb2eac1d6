package annotate

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/local/layoutmd/internal/analyzer"
	"github.com/local/layoutmd/internal/geom"
)

func whiteRGBA(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return img
}

func TestRenderDrawsRegionOutline(t *testing.T) {
	layout := &analyzer.PageLayout{
		Regions: []geom.Region{{X: 10, Y: 10, Width: 40, Height: 30, Kind: geom.KindLineBased}},
	}

	a := New()
	a.SetLabels(false)
	out := a.Render(whiteRGBA(100, 80), layout)

	assert.Equal(t, colorLineBased, out.RGBAAt(10, 10))
	assert.Equal(t, colorLineBased, out.RGBAAt(49, 39))
	assert.Equal(t, colorLineBased, out.RGBAAt(11, 11)) // second ring of the 2px outline
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, out.RGBAAt(30, 25))
}

func TestRenderDrawsGridAndCells(t *testing.T) {
	layout := &analyzer.PageLayout{
		HLines: []int{20},
		VLines: []int{30},
		Cells:  []geom.Region{{X: 5, Y: 5, Width: 20, Height: 10, Kind: geom.KindTableCell}},
	}

	a := New()
	a.SetLabels(false)
	out := a.Render(whiteRGBA(60, 40), layout)

	assert.Equal(t, colorGridLine, out.RGBAAt(0, 20))
	assert.Equal(t, colorGridLine, out.RGBAAt(59, 20))
	assert.Equal(t, colorGridLine, out.RGBAAt(30, 0))
	assert.Equal(t, colorCell, out.RGBAAt(5, 5))
	assert.Equal(t, colorCell, out.RGBAAt(24, 14))
}

func TestRenderLeavesSourceUntouched(t *testing.T) {
	src := whiteRGBA(50, 50)
	layout := &analyzer.PageLayout{
		Regions: []geom.Region{{X: 0, Y: 0, Width: 50, Height: 50, Kind: geom.KindEdgeBased}},
	}

	a := New()
	a.SetLabels(false)
	out := a.Render(src, layout)

	require.NotSame(t, src, out)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, src.RGBAAt(0, 0))
	assert.Equal(t, colorEdgeBased, out.RGBAAt(0, 0))
}

func TestRenderNilLayout(t *testing.T) {
	out := New().Render(whiteRGBA(10, 10), nil)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, out.RGBAAt(5, 5))
}

func TestRenderClampsOutOfBoundsRegion(t *testing.T) {
	layout := &analyzer.PageLayout{
		Regions: []geom.Region{{X: -5, Y: -5, Width: 200, Height: 200, Kind: geom.KindLineBased}},
	}

	a := New()
	a.SetLabels(false)
	assert.NotPanics(t, func() { a.Render(whiteRGBA(20, 20), layout) })
}
