package pipeline

import (
	"sort"

	"github.com/local/layoutmd/internal/geom"
)

// NMSStage applies non-maximum suppression: regions are considered in
// descending area order, and a region is rejected when it overlaps an
// already-kept region above the IoU threshold or lies fully inside
// one. The containment check catches nested regions whose IoU alone
// would be too small to trigger suppression.
type NMSStage struct {
	iouThreshold float64
}

// NewNMSStage creates the suppression stage.
func NewNMSStage(iouThreshold float64) *NMSStage {
	return &NMSStage{iouThreshold: iouThreshold}
}

// Name implements Stage.
func (n *NMSStage) Name() string { return "nms" }

// Process implements Stage. Area ties keep their input order.
func (n *NMSStage) Process(regions []geom.Region, ctx Context) []geom.Region {
	if len(regions) == 0 {
		return nil
	}

	byArea := make([]geom.Region, len(regions))
	copy(byArea, regions)
	sort.SliceStable(byArea, func(i, j int) bool {
		return byArea[i].Area() > byArea[j].Area()
	})

	keep := make([]geom.Region, 0, len(byArea))
	for _, r := range byArea {
		suppressed := false
		for _, k := range keep {
			if r.IoU(k) > n.iouThreshold || k.Contains(r, 0) {
				suppressed = true
				break
			}
		}
		if !suppressed {
			keep = append(keep, r)
		}
	}
	return keep
}
