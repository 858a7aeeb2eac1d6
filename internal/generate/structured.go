package generate

import (
	"strings"

	"github.com/local/layoutmd/internal/analyzer"
	"github.com/local/layoutmd/internal/geom"
	"github.com/rs/zerolog/log"
)

// StructuredGenerator emits a full markdown document: YAML-style
// frontmatter with extracted key fields, per-section content with
// tables where the spans warrant one, and a raw spatial appendix.
type StructuredGenerator struct {
	dpi int
}

func NewStructured(dpi int) *StructuredGenerator {
	return &StructuredGenerator{dpi: dpi}
}

func (g *StructuredGenerator) Generate(spans []geom.TextSpan, _ *analyzer.PageLayout) string {
	if len(spans) == 0 {
		return ""
	}

	tolerance := yTolerance(g.dpi)
	width := charWidth(spans, g.dpi)

	var lines []string
	lines = append(lines, g.frontmatter(spans)...)
	lines = append(lines, "# Document Content", "")

	sections := splitSections(spans)
	for _, sec := range sections {
		if len(sec.spans) == 0 {
			continue
		}
		lines = append(lines, "## "+sec.name, "")
		if isTabular(sec.spans, tolerance) {
			lines = append(lines, markdownTable(tableRows(sec.spans, tolerance)))
		} else {
			lines = append(lines, structuredText(sec.spans, tolerance))
		}
		lines = append(lines, "")
	}

	lines = append(lines,
		"## Raw Spatial Layout", "",
		"```",
		spatialLayout(spans, width, tolerance),
		"```", "")

	log.Debug().
		Int("spans", len(spans)).
		Int("sections", len(sections)).
		Msg("structured document rendered")
	return strings.Join(lines, "\n")
}

// frontmatter lists up to ten extracted key fields.
func (g *StructuredGenerator) frontmatter(spans []geom.TextSpan) []string {
	lines := []string{"---", "document_type: document"}

	pairs := extractKeyValues(spans)
	if len(pairs) > 0 {
		lines = append(lines, "key_fields:")
		limit := min(len(pairs), 10)
		for _, kv := range pairs[:limit] {
			lines = append(lines, "  "+kv.key+": "+kv.value)
		}
	}
	return append(lines, "---", "")
}
