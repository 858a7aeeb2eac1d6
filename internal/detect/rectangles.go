// Package detect finds structural layout regions and table grids in a
// rendered page image.
package detect

import (
	"image"

	"github.com/rs/zerolog/log"

	"github.com/local/layoutmd/internal/geom"
	"github.com/local/layoutmd/internal/raster"
)

// RectangleConfig controls size and shape filtering of detected
// regions. Ratios are relative to the page dimensions.
type RectangleConfig struct {
	MinWidthRatio   float64 // minimum width as ratio of page width
	MinHeightRatio  float64 // minimum height as ratio of page height
	MinAreaRatio    float64 // minimum area as ratio of page area
	MaxAreaRatio    float64 // maximum area as ratio of page area
	MaxAspectRatio  float64 // rejects single text lines misread as rectangles
	BinaryThreshold uint8   // global threshold separating ink from paper
	EdgeLow         int     // hysteresis low threshold for edge detection
	EdgeHigh        int     // hysteresis high threshold for edge detection
}

// DefaultRectangleConfig returns the documented defaults.
func DefaultRectangleConfig() RectangleConfig {
	return RectangleConfig{
		MinWidthRatio:   0.05,
		MinHeightRatio:  0.025,
		MinAreaRatio:    0.02,
		MaxAreaRatio:    0.95,
		MaxAspectRatio:  15.0,
		BinaryThreshold: 200,
		EdgeLow:         50,
		EdgeHigh:        150,
	}
}

// RectangleDetector finds structural regions (form sections, table
// outlines) by combining a line-based and an edge-based strategy over
// the same grayscale raster.
type RectangleDetector struct {
	cfg RectangleConfig
}

// NewRectangleDetector creates a detector with the given config.
func NewRectangleDetector(cfg RectangleConfig) *RectangleDetector {
	return &RectangleDetector{cfg: cfg}
}

// Detect returns the filtered, deduplicated regions of both strategies
// in reading order. An empty or degenerate image yields no regions.
func (d *RectangleDetector) Detect(img image.Image) []geom.Region {
	gray := raster.ToGray(img)
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	lim := d.limits(width, height)

	regions := d.detectFromLines(gray, lim)

	// Edge-based candidates only survive when they do not repeat a
	// line-based hit.
	for _, r := range d.detectFromEdges(gray, lim) {
		if !isDuplicate(r, regions) {
			regions = append(regions, r)
		}
	}

	geom.SortRegions(regions)

	log.Debug().
		Int("width", width).
		Int("height", height).
		Int("regions", len(regions)).
		Msg("rectangle detection finished")

	return regions
}

type sizeLimits struct {
	minWidth  int
	minHeight int
	minArea   int
	maxArea   int
	maxAspect float64
}

func (d *RectangleDetector) limits(width, height int) sizeLimits {
	area := width * height
	return sizeLimits{
		minWidth:  int(float64(width) * d.cfg.MinWidthRatio),
		minHeight: int(float64(height) * d.cfg.MinHeightRatio),
		minArea:   int(float64(area) * d.cfg.MinAreaRatio),
		maxArea:   int(float64(area) * d.cfg.MaxAreaRatio),
		maxAspect: d.cfg.MaxAspectRatio,
	}
}

// detectFromLines binarizes with an inverted global threshold so
// structural lines become foreground, isolates long horizontal and
// vertical strokes, bridges small gaps and extracts the contour tree.
func (d *RectangleDetector) detectFromLines(gray *image.Gray, lim sizeLimits) []geom.Region {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	bin := raster.ThresholdInv(gray, d.cfg.BinaryThreshold)
	hMask := raster.OpenHorizontal(bin, width/8)
	vMask := raster.OpenVertical(bin, height/8)

	structure := raster.Dilate(raster.Union(hMask, vMask), 2, 2)

	var regions []geom.Region
	for _, box := range raster.FindContours(structure, raster.Tree) {
		if !lim.valid(box.Width, box.Height) {
			continue
		}
		regions = append(regions, geom.Region{
			X:      box.X,
			Y:      box.Y,
			Width:  box.Width,
			Height: box.Height,
			Level:  box.Level,
			Kind:   geom.KindLineBased,
		})
	}
	return regions
}

// detectFromEdges runs edge detection with coarser directional kernels
// and a stronger dilation, keeping only outer boundaries.
func (d *RectangleDetector) detectFromEdges(gray *image.Gray, lim sizeLimits) []geom.Region {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	edges := raster.DetectEdges(gray, d.cfg.EdgeLow, d.cfg.EdgeHigh)
	hMask := raster.OpenHorizontal(edges, width/5)
	vMask := raster.OpenVertical(edges, height/5)

	mask := raster.Dilate(raster.Union(hMask, vMask), 2, 3)

	var regions []geom.Region
	for _, box := range raster.FindContours(mask, raster.External) {
		if !lim.valid(box.Width, box.Height) {
			continue
		}
		regions = append(regions, geom.Region{
			X:      box.X,
			Y:      box.Y,
			Width:  box.Width,
			Height: box.Height,
			Kind:   geom.KindEdgeBased,
		})
	}
	return regions
}

func (l sizeLimits) valid(w, h int) bool {
	if w < l.minWidth || h < l.minHeight {
		return false
	}
	area := w * h
	if area < l.minArea || area > l.maxArea {
		return false
	}
	aspect := 0.0
	if h > 0 {
		aspect = float64(w) / float64(h)
	}
	return aspect <= l.maxAspect
}

// isDuplicate reports whether r overlaps an accepted region by more
// than half of the smaller region's area.
func isDuplicate(r geom.Region, accepted []geom.Region) bool {
	for _, a := range accepted {
		overlap := r.OverlapArea(a)
		if 2*overlap > min(r.Area(), a.Area()) {
			return true
		}
	}
	return false
}
