package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusterPositions(t *testing.T) {
	tests := []struct {
		name      string
		positions []int
		threshold int
		want      []int
	}{
		{
			name:      "two clusters with truncated means",
			positions: []int{10, 12, 50, 52, 53},
			threshold: 15,
			want:      []int{11, 51},
		},
		{
			name:      "unsorted input",
			positions: []int{53, 10, 52, 12, 50},
			threshold: 15,
			want:      []int{11, 51},
		},
		{
			name:      "gap equal to threshold starts a new cluster",
			positions: []int{0, 15},
			threshold: 15,
			want:      []int{0, 15},
		},
		{
			name:      "single position",
			positions: []int{42},
			threshold: 15,
			want:      []int{42},
		},
		{
			name:      "empty input",
			positions: nil,
			threshold: 15,
			want:      nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClusterPositions(tc.positions, tc.threshold))
		})
	}
}

func TestRegionDerivedMeasures(t *testing.T) {
	r := Region{X: 10, Y: 20, Width: 100, Height: 40}

	assert.Equal(t, 110, r.X2())
	assert.Equal(t, 60, r.Y2())
	assert.Equal(t, 4000, r.Area())
	assert.Equal(t, 60, r.CenterX())
	assert.Equal(t, 40, r.CenterY())
	assert.InDelta(t, 2.5, r.AspectRatio(), 1e-9)

	flat := Region{X: 0, Y: 0, Width: 100, Height: 0}
	assert.Equal(t, 0.0, flat.AspectRatio())
}

func TestRegionIoU(t *testing.T) {
	a := Region{X: 0, Y: 0, Width: 100, Height: 100}
	b := Region{X: 50, Y: 0, Width: 100, Height: 100}

	// intersection 50*100=5000, union 20000-5000=15000
	assert.InDelta(t, 1.0/3.0, a.IoU(b), 1e-9)
	assert.InDelta(t, a.IoU(b), b.IoU(a), 1e-9)

	far := Region{X: 500, Y: 500, Width: 10, Height: 10}
	assert.Equal(t, 0.0, a.IoU(far))

	assert.InDelta(t, 1.0, a.IoU(a), 1e-9)
}

func TestRegionContains(t *testing.T) {
	outer := Region{X: 0, Y: 0, Width: 100, Height: 100}
	inner := Region{X: 10, Y: 10, Width: 20, Height: 20}

	assert.True(t, outer.Contains(inner, 0))
	assert.False(t, inner.Contains(outer, 0))

	edge := Region{X: -3, Y: 0, Width: 50, Height: 50}
	assert.False(t, outer.Contains(edge, 0))
	assert.True(t, outer.Contains(edge, 5))
}

func TestRegionMerge(t *testing.T) {
	a := Region{X: 0, Y: 0, Width: 10, Height: 10, Level: 1, Kind: KindLineBased,
		Metadata: map[string]any{"row": 0}}
	b := Region{X: 20, Y: 5, Width: 10, Height: 10, Level: 0, Kind: KindEdgeBased,
		Metadata: map[string]any{"col": 2}}

	m := a.Merge(b)
	assert.Equal(t, Region{X: 0, Y: 0, Width: 30, Height: 15, Level: 0, Kind: KindLineBased,
		Metadata: map[string]any{"row": 0, "col": 2}}, m)

	// inputs untouched
	assert.Equal(t, 10, a.Width)
	require.Len(t, a.Metadata, 1)
}

func TestRegionExpand(t *testing.T) {
	r := Region{X: 10, Y: 10, Width: 20, Height: 20, Kind: KindTableCell}
	e := r.Expand(5)

	assert.Equal(t, Region{X: 5, Y: 5, Width: 30, Height: 30, Kind: KindTableCell}, e)
	assert.Equal(t, Region{X: 10, Y: 10, Width: 20, Height: 20, Kind: KindTableCell}, r)
}

func TestSortRegionsReadingOrder(t *testing.T) {
	regions := []Region{
		{X: 50, Y: 10},
		{X: 0, Y: 40},
		{X: 10, Y: 10},
	}
	SortRegions(regions)

	assert.Equal(t, []Region{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 0, Y: 40}}, regions)
}

func TestSortSpansReadingOrder(t *testing.T) {
	spans := []TextSpan{
		{X: 5, Y: 100, Text: "c"},
		{X: 90, Y: 0, Text: "b"},
		{X: 10, Y: 0, Text: "a"},
	}
	SortSpans(spans)

	assert.Equal(t, "a", spans[0].Text)
	assert.Equal(t, "b", spans[1].Text)
	assert.Equal(t, "c", spans[2].Text)
}

func TestSpanDerivedMeasures(t *testing.T) {
	s := TextSpan{X: 4, Y: 6, Width: 10, Height: 8, Text: "x"}

	assert.Equal(t, 14, s.X2())
	assert.Equal(t, 14, s.Y2())
	assert.Equal(t, 80, s.Area())
	assert.Equal(t, 9, s.CenterX())
	assert.Equal(t, 10, s.CenterY())
}
