package raster

import "image"

// DetectEdges produces a binary edge mask from a grayscale image using
// Sobel gradients with double-threshold hysteresis: pixels whose
// gradient magnitude reaches high are edges, and pixels above low are
// kept when connected to one.
func DetectEdges(g *image.Gray, low, high int) *image.Gray {
	bounds := g.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(bounds)
	if w < 3 || h < 3 {
		return out
	}

	mag := make([]int, w*h)
	at := func(x, y int) int {
		return int(g.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)
			if gx < 0 {
				gx = -gx
			}
			if gy < 0 {
				gy = -gy
			}
			mag[y*w+x] = gx + gy
		}
	}

	// Seed from strong pixels, then flood through weak neighbors.
	accepted := make([]bool, w*h)
	var stack []image.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mag[y*w+x] >= high {
				accepted[y*w+x] = true
				stack = append(stack, image.Point{X: x, Y: y})
			}
		}
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				idx := ny*w + nx
				if accepted[idx] || mag[idx] < low {
					continue
				}
				accepted[idx] = true
				stack = append(stack, image.Point{X: nx, Y: ny})
			}
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if accepted[y*w+x] {
				out.SetGray(bounds.Min.X+x, bounds.Min.Y+y, grayFG)
			}
		}
	}
	return out
}
