package pdf

import (
	"regexp"
	"sort"

	"github.com/rs/zerolog/log"
)

// textProbeThreshold is the non-whitespace rune count across sampled
// pages above which a document counts as having a text layer.
const textProbeThreshold = 300

var whitespacePattern = regexp.MustCompile(`\s+`)

// HasTextLayer reports whether the document carries enough extractable
// text to trust span extraction. Scanned documents fail this probe and
// produce geometry-only output downstream. A few spread-out pages are
// sampled instead of reading the whole file.
func (d *Document) HasTextLayer() bool {
	total := 0
	for _, idx := range probeIndices(d.pages) {
		text, err := d.doc.Text(idx)
		if err != nil {
			log.Warn().Err(err).Int("page", idx+1).Msg("text probe failed for page")
			continue
		}
		total += countInk(text)
		if total >= textProbeThreshold {
			break
		}
	}

	log.Debug().Int("chars", total).Int("threshold", textProbeThreshold).Msg("text layer probed")
	return total >= textProbeThreshold
}

// probeIndices picks 0-based sample pages: first, middle and last for
// larger documents, every page for small ones.
func probeIndices(pages int) []int {
	if pages <= 0 {
		return nil
	}
	if pages <= 3 {
		out := make([]int, pages)
		for i := range out {
			out[i] = i
		}
		return out
	}

	seen := map[int]bool{}
	var out []int
	for _, idx := range []int{0, pages / 2, pages - 1} {
		if !seen[idx] {
			seen[idx] = true
			out = append(out, idx)
		}
	}
	sort.Ints(out)
	return out
}

// countInk counts non-whitespace runes.
func countInk(text string) int {
	return len([]rune(whitespacePattern.ReplaceAllString(text, "")))
}
