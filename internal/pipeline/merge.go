package pipeline

import "github.com/local/layoutmd/internal/geom"

// MergeStage grows regions to absorb the text spans they contain and
// then joins adjacent regions in a single left-to-right pass.
//
// The pass is deliberately not iterated to a fixed point: a region
// merges with every qualifying partner found later in the same sweep,
// but a pair that only becomes adjacent through an earlier merge stays
// separate. Downstream behavior depends on this exact single-pass
// semantics.
type MergeStage struct {
	maxGap  int
	padding int
}

// NewMergeStage creates the merge stage.
func NewMergeStage(maxGap, padding int) *MergeStage {
	return &MergeStage{maxGap: maxGap, padding: padding}
}

// Name implements Stage.
func (m *MergeStage) Name() string { return "merge" }

// Process implements Stage.
func (m *MergeStage) Process(regions []geom.Region, ctx Context) []geom.Region {
	if len(regions) == 0 {
		return nil
	}
	return m.mergeNearby(m.absorbText(regions, ctx.Spans))
}

// absorbText replaces each region with the padded bounding union of
// the region and the spans lying within its padded box.
func (m *MergeStage) absorbText(regions []geom.Region, spans []geom.TextSpan) []geom.Region {
	out := make([]geom.Region, 0, len(regions))
	for _, r := range regions {
		padded := r.Expand(m.padding)

		grown := r
		hit := false
		for _, s := range spans {
			if !padded.ContainsSpan(s) {
				continue
			}
			hit = true
			grown = grown.Merge(geom.Region{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height, Kind: r.Kind, Level: r.Level})
		}
		if hit {
			grown = grown.Expand(m.padding)
		}
		out = append(out, grown)
	}
	return out
}

// mergeNearby performs one left-to-right sweep: each region not yet
// consumed merges with every later qualifying region.
func (m *MergeStage) mergeNearby(regions []geom.Region) []geom.Region {
	used := make([]bool, len(regions))
	out := make([]geom.Region, 0, len(regions))

	for i, r := range regions {
		if used[i] {
			continue
		}
		merged := r
		for j := i + 1; j < len(regions); j++ {
			if used[j] {
				continue
			}
			if m.shouldMerge(r, regions[j]) {
				merged = merged.Merge(regions[j])
				used[j] = true
			}
		}
		out = append(out, merged)
	}
	return out
}

// shouldMerge reports whether two regions are vertically stacked or
// horizontally adjacent closely enough to be one block: at least 50%
// overlap of the narrower dimension, with the gap on the other axis
// below maxGap.
func (m *MergeStage) shouldMerge(a, b geom.Region) bool {
	hGap := max(a.X, b.X) - min(a.X2(), b.X2())
	vGap := max(a.Y, b.Y) - min(a.Y2(), b.Y2())
	xOverlap := min(a.X2(), b.X2()) - max(a.X, b.X)
	yOverlap := min(a.Y2(), b.Y2()) - max(a.Y, b.Y)

	if 2*xOverlap > min(a.Width, b.Width) && vGap < m.maxGap {
		return true
	}
	if 2*yOverlap > min(a.Height, b.Height) && hGap < m.maxGap {
		return true
	}
	return false
}
