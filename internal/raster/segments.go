package raster

import "image"

// Segment is a detected axis-aligned line segment. For horizontal
// segments Pos is the row and Start/End are columns; for vertical
// segments Pos is the column and Start/End are rows.
type Segment struct {
	Pos   int
	Start int
	End   int
}

// Length returns the segment length in pixels.
func (s Segment) Length() int { return s.End - s.Start + 1 }

// HorizontalSegments extracts horizontal line segments from an edge
// mask. A segment is a run of foreground pixels along one row; runs
// separated by at most maxGap background pixels are joined, and only
// segments at least minLen long are kept. Rows are scanned top to
// bottom, so output order is deterministic.
func HorizontalSegments(edges *image.Gray, minLen, maxGap int) []Segment {
	bounds := edges.Bounds()
	var segs []Segment

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		start, last := -1, -1
		for x := bounds.Min.X; x <= bounds.Max.X; x++ {
			fg := x < bounds.Max.X && edges.GrayAt(x, y).Y == FG
			if fg {
				if start < 0 {
					start = x
				}
				last = x
				continue
			}
			if start >= 0 && x-last > maxGap {
				if last-start+1 >= minLen {
					segs = append(segs, Segment{Pos: y - bounds.Min.Y, Start: start - bounds.Min.X, End: last - bounds.Min.X})
				}
				start, last = -1, -1
			}
		}
		if start >= 0 && last-start+1 >= minLen {
			segs = append(segs, Segment{Pos: y - bounds.Min.Y, Start: start - bounds.Min.X, End: last - bounds.Min.X})
		}
	}
	return segs
}

// VerticalSegments is the column-wise counterpart of HorizontalSegments.
func VerticalSegments(edges *image.Gray, minLen, maxGap int) []Segment {
	bounds := edges.Bounds()
	var segs []Segment

	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		start, last := -1, -1
		for y := bounds.Min.Y; y <= bounds.Max.Y; y++ {
			fg := y < bounds.Max.Y && edges.GrayAt(x, y).Y == FG
			if fg {
				if start < 0 {
					start = y
				}
				last = y
				continue
			}
			if start >= 0 && y-last > maxGap {
				if last-start+1 >= minLen {
					segs = append(segs, Segment{Pos: x - bounds.Min.X, Start: start - bounds.Min.Y, End: last - bounds.Min.Y})
				}
				start, last = -1, -1
			}
		}
		if start >= 0 && last-start+1 >= minLen {
			segs = append(segs, Segment{Pos: x - bounds.Min.X, Start: start - bounds.Min.Y, End: last - bounds.Min.Y})
		}
	}
	return segs
}
