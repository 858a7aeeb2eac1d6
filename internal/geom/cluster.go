package geom

import "sort"

// ClusterPositions collapses nearby scalar positions into one
// representative per cluster. Positions are sorted ascending; a new
// cluster starts whenever the gap to the last member of the current
// cluster reaches threshold. Each cluster collapses to the truncated
// mean of its members. Empty input yields empty output.
func ClusterPositions(positions []int, threshold int) []int {
	if len(positions) == 0 {
		return nil
	}

	sorted := make([]int, len(positions))
	copy(sorted, positions)
	sort.Ints(sorted)

	var out []int
	sum, count, last := sorted[0], 1, sorted[0]

	for _, pos := range sorted[1:] {
		if pos-last < threshold {
			sum += pos
			count++
			last = pos
			continue
		}
		out = append(out, sum/count)
		sum, count, last = pos, 1, pos
	}
	out = append(out, sum/count)

	return out
}
