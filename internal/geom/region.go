package geom

import "sort"

// Region kinds assigned by the detectors.
const (
	KindLineBased = "line_based"
	KindEdgeBased = "edge_based"
	KindTableCell = "table_cell"
	KindGeneric   = "generic"
)

// Region is an axis-aligned rectangular area of interest: a detected
// structural block or a synthesized table cell. Width and Height are
// never negative. Regions are values; methods return new Regions.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int

	// Level is the nesting depth from the contour hierarchy, 0 = outermost.
	Level int

	// Kind tags the origin of the region (line_based, edge_based, table_cell, ...).
	Kind string

	// Metadata carries extra attributes, e.g. "row" and "col" for table cells.
	Metadata map[string]any
}

// X2 returns the right edge.
func (r Region) X2() int { return r.X + r.Width }

// Y2 returns the bottom edge.
func (r Region) Y2() int { return r.Y + r.Height }

// Area returns width*height.
func (r Region) Area() int { return r.Width * r.Height }

// CenterX returns the X coordinate of the center point.
func (r Region) CenterX() int { return r.X + r.Width/2 }

// CenterY returns the Y coordinate of the center point.
func (r Region) CenterY() int { return r.Y + r.Height/2 }

// AspectRatio returns width/height, or 0 for a zero-height region.
func (r Region) AspectRatio() float64 {
	if r.Height <= 0 {
		return 0
	}
	return float64(r.Width) / float64(r.Height)
}

// OverlapArea returns the intersection area with other.
func (r Region) OverlapArea(other Region) int {
	xo := min(r.X2(), other.X2()) - max(r.X, other.X)
	yo := min(r.Y2(), other.Y2()) - max(r.Y, other.Y)
	if xo <= 0 || yo <= 0 {
		return 0
	}
	return xo * yo
}

// IoU returns intersection area over union area, in [0, 1].
func (r Region) IoU(other Region) float64 {
	inter := r.OverlapArea(other)
	union := r.Area() + other.Area() - inter
	if union <= 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Contains reports whether other lies fully inside r, allowing margin
// pixels of slack on every edge.
func (r Region) Contains(other Region, margin int) bool {
	return other.X >= r.X-margin && other.Y >= r.Y-margin &&
		other.X2() <= r.X2()+margin && other.Y2() <= r.Y2()+margin
}

// ContainsSpan reports whether the span's box lies fully inside r.
func (r Region) ContainsSpan(s TextSpan) bool {
	return s.X >= r.X && s.Y >= r.Y && s.X2() <= r.X2() && s.Y2() <= r.Y2()
}

// Merge returns the bounding union of r and other. The result keeps
// r's kind, the shallower level, and the combined metadata (other wins
// on key collisions).
func (r Region) Merge(other Region) Region {
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	x2 := max(r.X2(), other.X2())
	y2 := max(r.Y2(), other.Y2())

	var md map[string]any
	if len(r.Metadata) > 0 || len(other.Metadata) > 0 {
		md = make(map[string]any, len(r.Metadata)+len(other.Metadata))
		for k, v := range r.Metadata {
			md[k] = v
		}
		for k, v := range other.Metadata {
			md[k] = v
		}
	}

	return Region{
		X:        x,
		Y:        y,
		Width:    x2 - x,
		Height:   y2 - y,
		Level:    min(r.Level, other.Level),
		Kind:     r.Kind,
		Metadata: md,
	}
}

// Expand returns a copy grown by padding pixels on every side.
func (r Region) Expand(padding int) Region {
	out := r
	out.X -= padding
	out.Y -= padding
	out.Width += 2 * padding
	out.Height += 2 * padding
	return out
}

// SortRegions orders regions in reading order: top to bottom, then
// left to right.
func SortRegions(regions []Region) {
	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].Y != regions[j].Y {
			return regions[i].Y < regions[j].Y
		}
		return regions[i].X < regions[j].X
	})
}
