// Package analyzer combines detection and post-processing into one
// immutable per-page layout result.
package analyzer

import (
	"image"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/local/layoutmd/internal/detect"
	"github.com/local/layoutmd/internal/geom"
	"github.com/local/layoutmd/internal/pipeline"
)

// PageLayout is the result of analyzing one page. It is constructed
// once per Analyze call and never mutated afterwards.
type PageLayout struct {
	// Regions are the structural regions surviving the pipeline, in
	// reading order.
	Regions []geom.Region

	// Cells are the synthesized table cells in grid order.
	Cells []geom.Region

	// CellSpans maps a cell index to the spans it owns.
	CellSpans map[int][]geom.TextSpan

	// HLines and VLines are the grid line positions the cells came from.
	HLines []int
	VLines []int

	// Spans is the full ordered span list for the page.
	Spans []geom.TextSpan

	// Uncategorized holds spans owned by no cell.
	Uncategorized []geom.TextSpan

	// Width and Height are the page pixel dimensions.
	Width  int
	Height int
}

// Analyzer orchestrates rectangle detection, the post-processing
// pipeline, table detection and text-to-cell association.
type Analyzer struct {
	rects  *detect.RectangleDetector
	tables *detect.TableDetector
	pipe   *pipeline.Pipeline
}

// New creates an analyzer from its three collaborators.
func New(rects *detect.RectangleDetector, tables *detect.TableDetector, pipe *pipeline.Pipeline) *Analyzer {
	return &Analyzer{rects: rects, tables: tables, pipe: pipe}
}

// Analyze runs the full per-page flow over a rendered raster and its
// extracted spans. The two detectors have no data dependency and run
// concurrently; the pipeline runs after rectangle detection. The
// result is a pure function of (img, spans, configuration).
func (a *Analyzer) Analyze(img image.Image, spans []geom.TextSpan) PageLayout {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var (
		wg      sync.WaitGroup
		regions []geom.Region
		hLines  []int
		vLines  []int
		cells   []geom.Region
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		detected := a.rects.Detect(img)
		ctx := pipeline.Context{Spans: spans, Width: width, Height: height}
		regions = a.pipe.Process(detected, ctx)
	}()
	go func() {
		defer wg.Done()
		hLines, vLines, cells = a.tables.Structure(img)
	}()
	wg.Wait()

	cellSpans, uncategorized := associate(cells, spans)

	log.Debug().
		Int("regions", len(regions)).
		Int("cells", len(cells)).
		Int("spans", len(spans)).
		Int("uncategorized", len(uncategorized)).
		Msg("page analyzed")

	return PageLayout{
		Regions:       regions,
		Cells:         cells,
		CellSpans:     cellSpans,
		HLines:        hLines,
		VLines:        vLines,
		Spans:         spans,
		Uncategorized: uncategorized,
		Width:         width,
		Height:        height,
	}
}

// associate assigns every span to the first cell, in cell iteration
// order, whose box fully contains it. A span geometrically inside more
// than one cell goes only to the first; this first-match rule is kept
// as observed legacy behavior, not a resolved choice. Spans matched by
// no cell are uncategorized.
func associate(cells []geom.Region, spans []geom.TextSpan) (map[int][]geom.TextSpan, []geom.TextSpan) {
	cellSpans := make(map[int][]geom.TextSpan, len(cells))
	var uncategorized []geom.TextSpan

	for _, span := range spans {
		owner := -1
		for i, cell := range cells {
			if cell.ContainsSpan(span) {
				owner = i
				break
			}
		}
		if owner < 0 {
			uncategorized = append(uncategorized, span)
			continue
		}
		cellSpans[owner] = append(cellSpans[owner], span)
	}
	return cellSpans, uncategorized
}
