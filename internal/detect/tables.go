package detect

import (
	"image"

	"github.com/rs/zerolog/log"

	"github.com/local/layoutmd/internal/geom"
	"github.com/local/layoutmd/internal/raster"
)

// TableConfig controls grid-line detection and cell synthesis.
type TableConfig struct {
	MinLineLengthRatio float64 // minimum line length as ratio of the dimension
	LineGap            int     // maximum gap between joined segments
	ClusterThreshold   int     // pixel distance for clustering nearby lines
	BoundaryMargin     int     // distance from the page edge that still counts as a boundary
	EdgeLow            int
	EdgeHigh           int
}

// DefaultTableConfig returns the documented defaults.
func DefaultTableConfig() TableConfig {
	return TableConfig{
		MinLineLengthRatio: 0.1,
		LineGap:            10,
		ClusterThreshold:   15,
		BoundaryMargin:     20,
		EdgeLow:            50,
		EdgeHigh:           150,
	}
}

// LineStrategy detects grid lines in a page image. Both strategies
// share one contract: ordered Y positions of horizontal lines and
// ordered X positions of vertical lines.
type LineStrategy interface {
	DetectLines(img image.Image) (hLines, vLines []int)
}

// ProjectionStrategy finds grid lines by summing directional edge
// masks along each row and column and keeping positions whose
// projection exceeds 10% of the theoretical maximum.
type ProjectionStrategy struct {
	cfg TableConfig
}

// NewProjectionStrategy creates the default line strategy.
func NewProjectionStrategy(cfg TableConfig) *ProjectionStrategy {
	return &ProjectionStrategy{cfg: cfg}
}

// DetectLines implements LineStrategy.
func (s *ProjectionStrategy) DetectLines(img image.Image) ([]int, []int) {
	gray := raster.ToGray(img)
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, nil
	}

	edges := raster.DetectEdges(gray, s.cfg.EdgeLow, s.cfg.EdgeHigh)
	hMask := raster.OpenHorizontal(edges, width/8)
	vMask := raster.OpenVertical(edges, height/8)

	hThreshold := int(float64(width) * 0.1 * 255)
	vThreshold := int(float64(height) * 0.1 * 255)

	var hPositions, vPositions []int
	for y, sum := range raster.RowSums(hMask) {
		if sum > hThreshold {
			hPositions = append(hPositions, y)
		}
	}
	for x, sum := range raster.ColSums(vMask) {
		if sum > vThreshold {
			vPositions = append(vPositions, x)
		}
	}

	return geom.ClusterPositions(hPositions, s.cfg.ClusterThreshold),
		geom.ClusterPositions(vPositions, s.cfg.ClusterThreshold)
}

// SegmentStrategy is the alternative line strategy: it extracts
// axis-aligned line segments with minimum-length and maximum-gap
// constraints, reduces each to its midpoint position and clusters.
// The vertical clustering threshold is doubled to avoid over-splitting
// close columns.
type SegmentStrategy struct {
	cfg TableConfig
}

// NewSegmentStrategy creates the segment-based line strategy.
func NewSegmentStrategy(cfg TableConfig) *SegmentStrategy {
	return &SegmentStrategy{cfg: cfg}
}

// DetectLines implements LineStrategy.
func (s *SegmentStrategy) DetectLines(img image.Image) ([]int, []int) {
	gray := raster.ToGray(img)
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, nil
	}

	edges := raster.DetectEdges(gray, s.cfg.EdgeLow, s.cfg.EdgeHigh)

	var hPositions, vPositions []int
	for _, seg := range raster.HorizontalSegments(edges, int(float64(width)*s.cfg.MinLineLengthRatio), s.cfg.LineGap) {
		hPositions = append(hPositions, seg.Pos)
	}
	for _, seg := range raster.VerticalSegments(edges, int(float64(height)*s.cfg.MinLineLengthRatio), s.cfg.LineGap) {
		vPositions = append(vPositions, seg.Pos)
	}

	return geom.ClusterPositions(hPositions, s.cfg.ClusterThreshold),
		geom.ClusterPositions(vPositions, s.cfg.ClusterThreshold*2)
}

// TableDetector detects a table grid and synthesizes its cells.
type TableDetector struct {
	cfg      TableConfig
	strategy LineStrategy
}

// NewTableDetector creates a detector using the given line strategy;
// a nil strategy falls back to projection-based detection.
func NewTableDetector(cfg TableConfig, strategy LineStrategy) *TableDetector {
	if strategy == nil {
		strategy = NewProjectionStrategy(cfg)
	}
	return &TableDetector{cfg: cfg, strategy: strategy}
}

// Structure returns the detected grid lines and the synthesized cells.
func (t *TableDetector) Structure(img image.Image) (hLines, vLines []int, cells []geom.Region) {
	hLines, vLines = t.strategy.DetectLines(img)
	bounds := img.Bounds()
	cells = GenerateCells(hLines, vLines, bounds.Dx(), bounds.Dy(), t.cfg.BoundaryMargin)

	log.Debug().
		Int("h_lines", len(hLines)).
		Int("v_lines", len(vLines)).
		Int("cells", len(cells)).
		Msg("table detection finished")

	return hLines, vLines, cells
}

// GenerateCells synthesizes table cells as the cartesian product of
// consecutive row bands and column bands. A synthetic boundary is
// prepended at 0 (or appended at the far edge) when the first (last)
// detected line is farther than margin from the page edge, handled
// independently for each axis. No lines on either axis means no cells.
func GenerateCells(hLines, vLines []int, width, height, margin int) []geom.Region {
	if len(hLines) == 0 || len(vLines) == 0 {
		return nil
	}

	h := completeBoundaries(hLines, height, margin)
	v := completeBoundaries(vLines, width, margin)

	cells := make([]geom.Region, 0, (len(h)-1)*(len(v)-1))
	for row := 0; row < len(h)-1; row++ {
		for col := 0; col < len(v)-1; col++ {
			cells = append(cells, geom.Region{
				X:        v[col],
				Y:        h[row],
				Width:    v[col+1] - v[col],
				Height:   h[row+1] - h[row],
				Kind:     geom.KindTableCell,
				Metadata: map[string]any{"row": row, "col": col},
			})
		}
	}
	return cells
}

// completeBoundaries ensures the line sequence starts near 0 and ends
// near the far edge, adding synthetic boundaries when it does not.
func completeBoundaries(lines []int, farEdge, margin int) []int {
	out := make([]int, 0, len(lines)+2)
	if lines[0] > margin {
		out = append(out, 0)
	}
	out = append(out, lines...)
	if out[len(out)-1] < farEdge-margin {
		out = append(out, farEdge)
	}
	return out
}
