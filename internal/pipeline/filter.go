package pipeline

import "github.com/local/layoutmd/internal/geom"

// FilterStage drops regions outside the configured area bounds. The
// minimum can be absolute or relative to the page area from the
// context; the relative bound wins when the context carries page
// dimensions.
type FilterStage struct {
	minArea      int
	maxArea      int // 0 means no upper bound
	minAreaRatio float64
}

// NewFilterStage creates the filter stage.
func NewFilterStage(minArea, maxArea int, minAreaRatio float64) *FilterStage {
	return &FilterStage{minArea: minArea, maxArea: maxArea, minAreaRatio: minAreaRatio}
}

// Name implements Stage.
func (f *FilterStage) Name() string { return "filter" }

// Process implements Stage.
func (f *FilterStage) Process(regions []geom.Region, ctx Context) []geom.Region {
	if len(regions) == 0 {
		return nil
	}

	minArea := f.minArea
	if f.minAreaRatio > 0 && ctx.Width > 0 && ctx.Height > 0 {
		minArea = int(float64(ctx.Width*ctx.Height) * f.minAreaRatio)
	}

	out := make([]geom.Region, 0, len(regions))
	for _, r := range regions {
		if r.Area() < minArea {
			continue
		}
		if f.maxArea > 0 && r.Area() > f.maxArea {
			continue
		}
		out = append(out, r)
	}
	return out
}
