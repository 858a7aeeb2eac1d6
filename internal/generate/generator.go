// Package generate renders page layouts as markdown-like text. Three
// interchangeable strategies consume the same analysis result.
package generate

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/local/layoutmd/internal/analyzer"
	"github.com/local/layoutmd/internal/geom"
)

// Generator renders extracted spans, optionally informed by the page
// layout, into text. An empty span list yields an empty string.
type Generator interface {
	Generate(spans []geom.TextSpan, layout *analyzer.PageLayout) string
}

// Strategy names accepted by ForStrategy.
const (
	StrategySpatial     = "spatial"
	StrategyStructured  = "structured"
	StrategyFixedFormat = "fixed"
)

// ForStrategy returns the generator for a configured strategy name.
func ForStrategy(name string, dpi int) (Generator, error) {
	switch name {
	case StrategySpatial:
		return NewSpatial(dpi), nil
	case StrategyStructured:
		return NewStructured(dpi), nil
	case StrategyFixedFormat:
		return NewFixedFormat(dpi), nil
	default:
		return nil, fmt.Errorf("unknown generator strategy %q", name)
	}
}

// visualRow is a cluster of spans judged to lie on the same text line.
type visualRow struct {
	y     int
	spans []geom.TextSpan
}

// groupRows buckets spans into visual rows. A span joins the first
// existing bucket whose key Y is within tolerance (buckets are checked
// in creation order and keys are never re-centered); otherwise it
// opens a new bucket at its own Y. Rows are returned sorted by key.
func groupRows(spans []geom.TextSpan, tolerance int) []visualRow {
	var rows []visualRow
	for _, s := range spans {
		matched := false
		for i := range rows {
			if abs(s.Y-rows[i].y) <= tolerance {
				rows[i].spans = append(rows[i].spans, s)
				matched = true
				break
			}
		}
		if !matched {
			rows = append(rows, visualRow{y: s.Y, spans: []geom.TextSpan{s}})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y < rows[j].y })
	return rows
}

// byX returns the row's spans ordered left to right.
func (r visualRow) byX() []geom.TextSpan {
	out := make([]geom.TextSpan, len(r.spans))
	copy(out, r.spans)
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

// charWidth estimates the average glyph width from up to the first 100
// spans: total box width over total glyph count, floored at 1.0. With
// no usable spans it falls back to a DPI-proportional default.
func charWidth(spans []geom.TextSpan, dpi int) float64 {
	limit := min(len(spans), 100)
	totalWidth, totalChars := 0, 0
	for _, s := range spans[:limit] {
		if s.Text == "" {
			continue
		}
		totalWidth += s.Width
		totalChars += utf8.RuneCountInString(s.Text)
	}
	if totalChars == 0 {
		return float64(dpi) / 72.0 * 7.0
	}
	return math.Max(float64(totalWidth)/float64(totalChars), 1.0)
}

// buildLine reconstructs one text line from x-sorted spans, converting
// each horizontal gap into a proportional whitespace count.
func buildLine(spans []geom.TextSpan, width float64) string {
	var b strings.Builder
	currentX := 0.0
	for _, s := range spans {
		gap := float64(s.X) - currentX
		// half-glyph ties round up
		if n := int(math.Round(gap / width)); n > 0 {
			b.WriteString(strings.Repeat(" ", n))
		}
		b.WriteString(s.Text)
		currentX = float64(s.X) + float64(utf8.RuneCountInString(s.Text))*width
	}
	return strings.TrimRight(b.String(), " ")
}

// spatialLayout renders all rows of a page with gap-preserving spacing.
func spatialLayout(spans []geom.TextSpan, width float64, tolerance int) string {
	var lines []string
	for _, row := range groupRows(spans, tolerance) {
		if line := buildLine(row.byX(), width); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// Section names produced by splitSections, in output order.
const (
	sectionHeader = "Header"
	sectionBody   = "Body"
	sectionFooter = "Footer"
)

type section struct {
	name  string
	spans []geom.TextSpan
}

// splitSections partitions spans by normalized page-Y position alone:
// top 20% is Header, bottom 15% Footer, the rest Body. Detected
// regions play no part in this.
func splitSections(spans []geom.TextSpan) []section {
	if len(spans) == 0 {
		return nil
	}

	pageHeight := 0
	for _, s := range spans {
		if s.Y2() > pageHeight {
			pageHeight = s.Y2()
		}
	}

	sorted := make([]geom.TextSpan, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y < sorted[j].Y })

	out := []section{{name: sectionHeader}, {name: sectionBody}, {name: sectionFooter}}
	for _, s := range sorted {
		switch {
		case float64(s.Y) < float64(pageHeight)*0.2:
			out[0].spans = append(out[0].spans, s)
		case float64(s.Y) > float64(pageHeight)*0.85:
			out[2].spans = append(out[2].spans, s)
		default:
			out[1].spans = append(out[1].spans, s)
		}
	}
	return out
}

// isTabular judges whether spans form a table: at least 2 visual rows
// and at least 3 distinct 50px X buckets that each recur.
func isTabular(spans []geom.TextSpan, tolerance int) bool {
	if len(spans) < 6 { // needs at least 2 rows x 3 columns
		return false
	}

	rows := groupRows(spans, tolerance)
	if len(rows) < 2 {
		return false
	}

	counts := map[int]int{}
	for _, row := range rows {
		for _, s := range row.spans {
			bucket := int(math.Round(float64(s.X)/50.0)) * 50
			counts[bucket]++
		}
	}

	recurring := 0
	for _, c := range counts {
		if c >= 2 {
			recurring++
		}
	}
	return recurring >= 3
}

// tableRows converts visual rows into trimmed cell text, padded so
// every row has the same column count.
func tableRows(spans []geom.TextSpan, tolerance int) [][]string {
	rows := groupRows(spans, tolerance)
	if len(rows) == 0 {
		return nil
	}

	out := make([][]string, 0, len(rows))
	maxCols := 0
	for _, row := range rows {
		var cells []string
		for _, s := range row.byX() {
			cells = append(cells, strings.TrimSpace(s.Text))
		}
		if len(cells) > maxCols {
			maxCols = len(cells)
		}
		out = append(out, cells)
	}
	for i := range out {
		for len(out[i]) < maxCols {
			out[i] = append(out[i], "")
		}
	}
	return out
}

// markdownTable renders rows as a lightweight table with the first row
// as header.
func markdownTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	cols := len(rows[0])
	b.WriteString("| " + strings.Join(rows[0], " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---|", cols) + "\n")
	for _, row := range rows[1:] {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

var keyValuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^([A-Z][A-Za-z\s]+)\s*:\s*(.+)$`),
	regexp.MustCompile(`^([A-Z][A-Za-z\s]+)\s*-\s*(.+)$`),
}

type keyValue struct {
	key   string
	value string
}

// extractKeyValues collects "Key: Value" / "Key - Value" pairs from
// span texts. Keys are ordered by first occurrence; a repeated key
// keeps its position but takes the latest value. Keys longer than 50
// or values longer than 200 characters are noise.
func extractKeyValues(spans []geom.TextSpan) []keyValue {
	var pairs []keyValue
	index := map[string]int{}

	for _, s := range spans {
		text := strings.TrimSpace(s.Text)
		for _, pattern := range keyValuePatterns {
			m := pattern.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			key := strings.TrimSpace(m[1])
			value := strings.TrimSpace(m[2])
			if len(key) < 50 && len(value) < 200 {
				if i, ok := index[key]; ok {
					pairs[i].value = value
				} else {
					index[key] = len(pairs)
					pairs = append(pairs, keyValue{key: key, value: value})
				}
			}
			break
		}
	}
	return pairs
}

// structuredText renders rows as joined text with key-value keys
// emphasized.
func structuredText(spans []geom.TextSpan, tolerance int) string {
	var lines []string
	for _, row := range groupRows(spans, tolerance) {
		var parts []string
		for _, s := range row.byX() {
			text := strings.TrimSpace(s.Text)
			if k, v, ok := strings.Cut(text, ":"); ok {
				parts = append(parts, "**"+strings.TrimSpace(k)+":** "+strings.TrimSpace(v))
			} else {
				parts = append(parts, text)
			}
		}
		if len(parts) > 0 {
			lines = append(lines, strings.Join(parts, "  "))
		}
	}
	return strings.Join(lines, "\n")
}

// yTolerance is the DPI-proportional visual row tolerance.
func yTolerance(dpi int) int {
	return int(float64(dpi) / 72.0 * 3.0)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
