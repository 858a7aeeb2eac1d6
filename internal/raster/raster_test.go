package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blank returns a white grayscale page.
func blank(w, h int) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		g.Pix[i] = 255
	}
	return g
}

// drawRectOutline paints a dark rectangle outline on a grayscale page.
func drawRectOutline(g *image.Gray, x, y, w, h, thickness int) {
	for t := 0; t < thickness; t++ {
		for dx := x; dx < x+w; dx++ {
			g.SetGray(dx, y+t, color.Gray{Y: 0})
			g.SetGray(dx, y+h-1-t, color.Gray{Y: 0})
		}
		for dy := y; dy < y+h; dy++ {
			g.SetGray(x+t, dy, color.Gray{Y: 0})
			g.SetGray(x+w-1-t, dy, color.Gray{Y: 0})
		}
	}
}

func TestThresholdInv(t *testing.T) {
	g := blank(4, 1)
	g.SetGray(1, 0, color.Gray{Y: 10})
	g.SetGray(2, 0, color.Gray{Y: 199})

	bin := ThresholdInv(g, 200)

	assert.Equal(t, BG, bin.GrayAt(0, 0).Y)
	assert.Equal(t, FG, bin.GrayAt(1, 0).Y)
	assert.Equal(t, FG, bin.GrayAt(2, 0).Y)
	assert.Equal(t, BG, bin.GrayAt(3, 0).Y)
}

func TestOpenHorizontalKeepsLongRuns(t *testing.T) {
	bin := image.NewGray(image.Rect(0, 0, 20, 3))
	for x := 0; x < 10; x++ {
		bin.SetGray(x, 0, grayFG) // long run
	}
	for x := 0; x < 4; x++ {
		bin.SetGray(x, 1, grayFG) // short run
	}

	out := OpenHorizontal(bin, 8)

	for x := 0; x < 10; x++ {
		assert.Equal(t, FG, out.GrayAt(x, 0).Y)
	}
	for x := 0; x < 4; x++ {
		assert.Equal(t, BG, out.GrayAt(x, 1).Y)
	}
}

func TestOpenVerticalKeepsLongRuns(t *testing.T) {
	bin := image.NewGray(image.Rect(0, 0, 3, 20))
	for y := 0; y < 12; y++ {
		bin.SetGray(0, y, grayFG)
	}
	for y := 0; y < 5; y++ {
		bin.SetGray(1, y, grayFG)
	}

	out := OpenVertical(bin, 10)

	for y := 0; y < 12; y++ {
		assert.Equal(t, FG, out.GrayAt(0, y).Y)
	}
	assert.Equal(t, BG, out.GrayAt(1, 0).Y)
}

func TestUnionAndDilate(t *testing.T) {
	a := image.NewGray(image.Rect(0, 0, 10, 10))
	b := image.NewGray(image.Rect(0, 0, 10, 10))
	a.SetGray(2, 2, grayFG)
	b.SetGray(7, 7, grayFG)

	u := Union(a, b)
	assert.Equal(t, FG, u.GrayAt(2, 2).Y)
	assert.Equal(t, FG, u.GrayAt(7, 7).Y)
	assert.Equal(t, BG, u.GrayAt(5, 5).Y)

	d := Dilate(u, 2, 1)
	assert.Equal(t, FG, d.GrayAt(0, 0).Y)
	assert.Equal(t, FG, d.GrayAt(4, 4).Y)
	assert.Equal(t, BG, d.GrayAt(5, 2).Y)
}

func TestDetectEdgesOnStep(t *testing.T) {
	g := blank(20, 20)
	// dark block on the right half produces a vertical edge
	for y := 0; y < 20; y++ {
		for x := 10; x < 20; x++ {
			g.SetGray(x, y, color.Gray{Y: 0})
		}
	}

	edges := DetectEdges(g, 50, 150)

	hit := false
	for y := 1; y < 19; y++ {
		for x := 8; x <= 11; x++ {
			if edges.GrayAt(x, y).Y == FG {
				hit = true
			}
		}
	}
	assert.True(t, hit, "expected edge pixels around the step")
	assert.Equal(t, BG, edges.GrayAt(2, 10).Y)
	assert.Equal(t, BG, edges.GrayAt(17, 10).Y)
}

func TestDetectEdgesTinyImage(t *testing.T) {
	g := blank(2, 2)
	edges := DetectEdges(g, 50, 150)
	assert.Equal(t, BG, edges.GrayAt(0, 0).Y)
}

func TestFindContoursExternal(t *testing.T) {
	bin := image.NewGray(image.Rect(0, 0, 30, 30))
	for y := 2; y < 8; y++ {
		for x := 2; x < 10; x++ {
			bin.SetGray(x, y, grayFG)
		}
	}
	for y := 15; y < 25; y++ {
		for x := 20; x < 28; x++ {
			bin.SetGray(x, y, grayFG)
		}
	}

	boxes := FindContours(bin, External)
	require.Len(t, boxes, 2)
	assert.Equal(t, Box{X: 2, Y: 2, Width: 8, Height: 6}, boxes[0])
	assert.Equal(t, Box{X: 20, Y: 15, Width: 8, Height: 10}, boxes[1])
}

func TestFindContoursTreeReportsNestedHoles(t *testing.T) {
	// a hollow frame: the enclosed hole must surface at level 1
	bin := image.NewGray(image.Rect(0, 0, 40, 40))
	for y := 5; y < 35; y++ {
		for x := 5; x < 35; x++ {
			if x < 8 || x >= 32 || y < 8 || y >= 32 {
				bin.SetGray(x, y, grayFG)
			}
		}
	}

	boxes := FindContours(bin, Tree)
	require.Len(t, boxes, 2)

	assert.Equal(t, Box{X: 5, Y: 5, Width: 30, Height: 30, Level: 0}, boxes[0])
	assert.Equal(t, Box{X: 8, Y: 8, Width: 24, Height: 24, Level: 1}, boxes[1])
}

func TestFindContoursEmpty(t *testing.T) {
	bin := image.NewGray(image.Rect(0, 0, 10, 10))
	assert.Empty(t, FindContours(bin, Tree))
	assert.Empty(t, FindContours(image.NewGray(image.Rect(0, 0, 0, 0)), External))
}

func TestProjections(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 4, 3))
	g.SetGray(0, 1, grayFG)
	g.SetGray(3, 1, grayFG)
	g.SetGray(3, 2, grayFG)

	assert.Equal(t, []int{0, 510, 255}, RowSums(g))
	assert.Equal(t, []int{255, 0, 0, 510}, ColSums(g))
}

func TestHorizontalSegments(t *testing.T) {
	edges := image.NewGray(image.Rect(0, 0, 40, 5))
	// run of 15, gap of 3, run of 10 -> joined with maxGap 5
	for x := 0; x < 15; x++ {
		edges.SetGray(x, 2, grayFG)
	}
	for x := 18; x < 28; x++ {
		edges.SetGray(x, 2, grayFG)
	}
	// short isolated run
	for x := 0; x < 4; x++ {
		edges.SetGray(x, 4, grayFG)
	}

	segs := HorizontalSegments(edges, 20, 5)
	require.Len(t, segs, 1)
	assert.Equal(t, Segment{Pos: 2, Start: 0, End: 27}, segs[0])

	// with a tight gap limit the two runs stay separate and are too short
	assert.Empty(t, HorizontalSegments(edges, 20, 1))
}

func TestVerticalSegments(t *testing.T) {
	edges := image.NewGray(image.Rect(0, 0, 5, 40))
	for y := 0; y < 30; y++ {
		edges.SetGray(1, y, grayFG)
	}

	segs := VerticalSegments(edges, 25, 3)
	require.Len(t, segs, 1)
	assert.Equal(t, Segment{Pos: 1, Start: 0, End: 29}, segs[0])
	assert.Equal(t, 30, segs[0].Length())
}

func TestToGrayPassthroughAndConvert(t *testing.T) {
	g := blank(3, 3)
	assert.Same(t, g, ToGray(g))

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 1))
	rgba.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	rgba.Set(1, 0, color.RGBA{A: 255})
	out := ToGray(rgba)
	assert.Equal(t, uint8(255), out.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0), out.GrayAt(1, 0).Y)
}

func TestDrawRectOutlineHelper(t *testing.T) {
	g := blank(20, 20)
	drawRectOutline(g, 2, 2, 10, 10, 1)
	bin := ThresholdInv(g, 200)

	boxes := FindContours(bin, Tree)
	require.Len(t, boxes, 2)
	assert.Equal(t, 0, boxes[0].Level)
	assert.Equal(t, 1, boxes[1].Level)
}
