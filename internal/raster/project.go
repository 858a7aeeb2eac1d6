package raster

import "image"

// RowSums returns the sum of pixel intensities along each row.
func RowSums(g *image.Gray) []int {
	bounds := g.Bounds()
	sums := make([]int, bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		total := 0
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			total += int(g.GrayAt(x, y).Y)
		}
		sums[y-bounds.Min.Y] = total
	}
	return sums
}

// ColSums returns the sum of pixel intensities along each column.
func ColSums(g *image.Gray) []int {
	bounds := g.Bounds()
	sums := make([]int, bounds.Dx())
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		total := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			total += int(g.GrayAt(x, y).Y)
		}
		sums[x-bounds.Min.X] = total
	}
	return sums
}
