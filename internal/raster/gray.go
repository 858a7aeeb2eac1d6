// Package raster holds the low-level image operations the layout
// detectors are built from. All binary masks are *image.Gray with
// foreground pixels at 255 and background at 0.
package raster

import (
	"image"
	"image/color"
)

// Foreground and background values used in binary masks.
const (
	FG uint8 = 255
	BG uint8 = 0
)

var grayFG = color.Gray{Y: FG}

// ToGray converts any image to 8-bit grayscale.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}

	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

// ThresholdInv binarizes a grayscale image so that dark content
// becomes foreground: pixels below cutoff map to FG, the rest to BG.
func ThresholdInv(g *image.Gray, cutoff uint8) *image.Gray {
	bounds := g.Bounds()
	bin := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if g.GrayAt(x, y).Y < cutoff {
				bin.SetGray(x, y, color.Gray{Y: FG})
			}
		}
	}
	return bin
}
