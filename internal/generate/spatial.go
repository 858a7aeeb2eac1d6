package generate

import (
	"github.com/local/layoutmd/internal/analyzer"
	"github.com/local/layoutmd/internal/geom"
	"github.com/rs/zerolog/log"
)

// SpatialGenerator reproduces the page as monospaced text, mapping
// horizontal gaps between spans to whitespace runs.
type SpatialGenerator struct {
	dpi          int
	useCodeBlock bool
}

// NewSpatial returns a spatial generator that fences its output in a
// code block so downstream markdown keeps the alignment.
func NewSpatial(dpi int) *SpatialGenerator {
	return &SpatialGenerator{dpi: dpi, useCodeBlock: true}
}

// SetCodeBlock toggles the code fence around the rendered layout.
func (g *SpatialGenerator) SetCodeBlock(enabled bool) {
	g.useCodeBlock = enabled
}

// Generate renders spans line by line. The layout argument is unused
// here; spacing is derived from span geometry alone.
func (g *SpatialGenerator) Generate(spans []geom.TextSpan, _ *analyzer.PageLayout) string {
	if len(spans) == 0 {
		return ""
	}

	width := charWidth(spans, g.dpi)
	body := spatialLayout(spans, width, yTolerance(g.dpi))
	log.Debug().
		Int("spans", len(spans)).
		Float64("char_width", width).
		Msg("spatial layout rendered")

	if g.useCodeBlock {
		return "```\n" + body + "\n```"
	}
	return body
}
