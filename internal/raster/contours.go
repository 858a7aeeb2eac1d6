package raster

import "image"

// Box is the bounding box of one contour, with its nesting level.
type Box struct {
	X      int
	Y      int
	Width  int
	Height int
	Level  int
}

// Contour retrieval modes.
type ContourMode int

const (
	// External keeps only outer boundaries of foreground components.
	External ContourMode = iota
	// Tree also reports enclosed background holes as nested contours
	// with their nesting depth.
	Tree
)

// FindContours extracts contour bounding boxes from a binary mask.
//
// In External mode each 4-connected foreground component contributes
// its bounding box at level 0. In Tree mode background components that
// do not touch the image border (holes inside structures) are reported
// too; every box's level is the number of other boxes that fully
// enclose it, so a cell inside a table outline gets level 1.
func FindContours(bin *image.Gray, mode ContourMode) []Box {
	bounds := bin.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	visited := make([]bool, w*h)
	boxes := flood(bin, visited, FG)

	if mode == Tree {
		holes := flood(bin, make([]bool, w*h), BG)
		for _, hole := range holes {
			// Holes touching the border are the page background.
			if hole.X == 0 || hole.Y == 0 || hole.X+hole.Width == w || hole.Y+hole.Height == h {
				continue
			}
			boxes = append(boxes, hole)
		}
		assignLevels(boxes)
	}

	return boxes
}

// flood labels 4-connected components of the given pixel value and
// returns their bounding boxes in scan order.
func flood(bin *image.Gray, visited []bool, value uint8) []Box {
	bounds := bin.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var boxes []Box
	var stack []image.Point

	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			if visited[sy*w+sx] || bin.GrayAt(bounds.Min.X+sx, bounds.Min.Y+sy).Y != value {
				continue
			}

			minX, minY, maxX, maxY := sx, sy, sx, sy
			stack = append(stack[:0], image.Point{X: sx, Y: sy})
			visited[sy*w+sx] = true

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				if p.X < minX {
					minX = p.X
				}
				if p.X > maxX {
					maxX = p.X
				}
				if p.Y < minY {
					minY = p.Y
				}
				if p.Y > maxY {
					maxY = p.Y
				}

				for _, n := range [4]image.Point{
					{X: p.X + 1, Y: p.Y}, {X: p.X - 1, Y: p.Y},
					{X: p.X, Y: p.Y + 1}, {X: p.X, Y: p.Y - 1},
				} {
					if n.X < 0 || n.X >= w || n.Y < 0 || n.Y >= h {
						continue
					}
					idx := n.Y*w + n.X
					if visited[idx] || bin.GrayAt(bounds.Min.X+n.X, bounds.Min.Y+n.Y).Y != value {
						continue
					}
					visited[idx] = true
					stack = append(stack, n)
				}
			}

			boxes = append(boxes, Box{
				X:      minX,
				Y:      minY,
				Width:  maxX - minX + 1,
				Height: maxY - minY + 1,
			})
		}
	}
	return boxes
}

// assignLevels sets each box's level to the number of other boxes that
// fully enclose it.
func assignLevels(boxes []Box) {
	for i := range boxes {
		level := 0
		for j := range boxes {
			if i == j {
				continue
			}
			if encloses(boxes[j], boxes[i]) {
				level++
			}
		}
		boxes[i].Level = level
	}
}

func encloses(outer, inner Box) bool {
	if outer.Width*outer.Height <= inner.Width*inner.Height {
		return false
	}
	return outer.X <= inner.X && outer.Y <= inner.Y &&
		outer.X+outer.Width >= inner.X+inner.Width &&
		outer.Y+outer.Height >= inner.Y+inner.Height
}
