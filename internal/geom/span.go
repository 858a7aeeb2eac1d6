package geom

import "sort"

// TextSpan is a positioned piece of extracted text. Coordinates are in
// the same pixel space as the rendered page raster. Spans are created
// once by the extractor and never mutated.
type TextSpan struct {
	X      int
	Y      int
	Width  int
	Height int

	// Text is the span content, trimmed and non-empty.
	Text string

	// FontSize is the source font size in points.
	FontSize float64

	// Metadata carries extractor-specific attributes (font name, flags, ...).
	Metadata map[string]any
}

// X2 returns the right edge.
func (s TextSpan) X2() int { return s.X + s.Width }

// Y2 returns the bottom edge.
func (s TextSpan) Y2() int { return s.Y + s.Height }

// Area returns width*height.
func (s TextSpan) Area() int { return s.Width * s.Height }

// CenterX returns the X coordinate of the center point.
func (s TextSpan) CenterX() int { return s.X + s.Width/2 }

// CenterY returns the Y coordinate of the center point.
func (s TextSpan) CenterY() int { return s.Y + s.Height/2 }

// SortSpans orders spans in reading order: top to bottom, then left
// to right.
func SortSpans(spans []TextSpan) {
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Y != spans[j].Y {
			return spans[i].Y < spans[j].Y
		}
		return spans[i].X < spans[j].X
	})
}
