package raster

import "image"

// OpenHorizontal applies a morphological opening with a 1×k horizontal
// kernel: only horizontal runs of foreground at least k pixels long
// survive. This isolates long horizontal strokes.
func OpenHorizontal(bin *image.Gray, k int) *image.Gray {
	bounds := bin.Bounds()
	out := image.NewGray(bounds)
	if k <= 0 {
		k = 1
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		runStart := -1
		for x := bounds.Min.X; x <= bounds.Max.X; x++ {
			fg := x < bounds.Max.X && bin.GrayAt(x, y).Y == FG
			if fg {
				if runStart < 0 {
					runStart = x
				}
				continue
			}
			if runStart >= 0 && x-runStart >= k {
				for rx := runStart; rx < x; rx++ {
					out.SetGray(rx, y, grayFG)
				}
			}
			runStart = -1
		}
	}
	return out
}

// OpenVertical is the vertical counterpart of OpenHorizontal: only
// vertical runs at least k pixels long survive.
func OpenVertical(bin *image.Gray, k int) *image.Gray {
	bounds := bin.Bounds()
	out := image.NewGray(bounds)
	if k <= 0 {
		k = 1
	}

	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		runStart := -1
		for y := bounds.Min.Y; y <= bounds.Max.Y; y++ {
			fg := y < bounds.Max.Y && bin.GrayAt(x, y).Y == FG
			if fg {
				if runStart < 0 {
					runStart = y
				}
				continue
			}
			if runStart >= 0 && y-runStart >= k {
				for ry := runStart; ry < y; ry++ {
					out.SetGray(x, ry, grayFG)
				}
			}
			runStart = -1
		}
	}
	return out
}

// Union returns the pixel-wise union of two binary masks.
func Union(a, b *image.Gray) *image.Gray {
	bounds := a.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if a.GrayAt(x, y).Y == FG || b.GrayAt(x, y).Y == FG {
				out.SetGray(x, y, grayFG)
			}
		}
	}
	return out
}

// Dilate grows foreground by radius pixels in both axes, repeated
// iterations times. A radius of 2 matches a 5×5 box kernel.
func Dilate(bin *image.Gray, radius, iterations int) *image.Gray {
	out := bin
	for i := 0; i < iterations; i++ {
		out = dilateVertical(dilateHorizontal(out, radius), radius)
	}
	return out
}

func dilateHorizontal(bin *image.Gray, radius int) *image.Gray {
	bounds := bin.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if bin.GrayAt(x, y).Y != FG {
				continue
			}
			lo := max(x-radius, bounds.Min.X)
			hi := min(x+radius, bounds.Max.X-1)
			for dx := lo; dx <= hi; dx++ {
				out.SetGray(dx, y, grayFG)
			}
		}
	}
	return out
}

func dilateVertical(bin *image.Gray, radius int) *image.Gray {
	bounds := bin.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if bin.GrayAt(x, y).Y != FG {
				continue
			}
			lo := max(y-radius, bounds.Min.Y)
			hi := min(y+radius, bounds.Max.Y-1)
			for dy := lo; dy <= hi; dy++ {
				out.SetGray(x, dy, grayFG)
			}
		}
	}
	return out
}
