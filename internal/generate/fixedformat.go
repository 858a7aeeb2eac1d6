package generate

import (
	"strings"

	"github.com/local/layoutmd/internal/analyzer"
	"github.com/local/layoutmd/internal/geom"
)

// FixedFormatGenerator renders tabular sections as HTML tables and the
// rest as plain structured text, without frontmatter or headings. The
// HTML tables survive markdown renderers that mangle pipe tables.
type FixedFormatGenerator struct {
	dpi int
}

func NewFixedFormat(dpi int) *FixedFormatGenerator {
	return &FixedFormatGenerator{dpi: dpi}
}

func (g *FixedFormatGenerator) Generate(spans []geom.TextSpan, _ *analyzer.PageLayout) string {
	if len(spans) == 0 {
		return ""
	}

	tolerance := yTolerance(g.dpi)
	var lines []string
	for _, sec := range splitSections(spans) {
		if len(sec.spans) == 0 {
			continue
		}
		if isTabular(sec.spans, tolerance) {
			lines = append(lines, htmlTable(tableRows(sec.spans, tolerance)))
		} else {
			lines = append(lines, structuredText(sec.spans, tolerance))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// htmlTable renders rows as an HTML table with the first row as header.
func htmlTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<table>\n<thead>\n<tr>")
	for _, cell := range rows[0] {
		b.WriteString("<th>" + cell + "</th>")
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range rows[1:] {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>" + cell + "</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>")
	return b.String()
}
