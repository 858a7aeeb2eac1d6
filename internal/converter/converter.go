// Package converter drives the page loop: render, analyze, generate,
// and join per-page markdown into one document.
package converter

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/local/layoutmd/internal/analyzer"
	"github.com/local/layoutmd/internal/annotate"
	"github.com/local/layoutmd/internal/generate"
	"github.com/local/layoutmd/internal/geom"
	"github.com/local/layoutmd/internal/metrics"
)

// pageSeparator joins per-page markdown in the final document.
const pageSeparator = "\n\n---\n\n"

// Source is one open document. Page numbers are 1-based.
type Source interface {
	PageCount() int
	Render(page, dpi int) (image.Image, error)
	ExtractSpans(page, dpi int) ([]geom.TextSpan, error)
}

// Options controls the conversion run.
type Options struct {
	DPI      int
	Strategy string
	Workers  int
	DebugDir string // when set, annotated page images land here as PNG
}

// Converter converts documents page by page with a bounded worker
// pool. Safe for concurrent use.
type Converter struct {
	analyzer  *analyzer.Analyzer
	generator generate.Generator
	annotator *annotate.Annotator
	opts      Options
	semaphore chan struct{}
}

func New(a *analyzer.Analyzer, g generate.Generator, opts Options) *Converter {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.DPI < 1 {
		opts.DPI = 300
	}
	return &Converter{
		analyzer:  a,
		generator: g,
		annotator: annotate.New(),
		opts:      opts,
		semaphore: make(chan struct{}, opts.Workers),
	}
}

type pageResult struct {
	markdown string
	err      error
}

// Convert processes every page of src and returns the joined markdown.
// Pages run concurrently up to the worker limit; output order always
// follows page order. The first page error fails the whole document.
func (c *Converter) Convert(ctx context.Context, src Source) (string, error) {
	runID := uuid.New().String()[:8]
	pages := src.PageCount()
	if pages == 0 {
		return "", nil
	}

	start := time.Now()
	log.Info().Str("run_id", runID).Int("pages", pages).Str("strategy", c.opts.Strategy).Msg("conversion started")

	results := make([]pageResult, pages)
	var wg sync.WaitGroup
	for page := 1; page <= pages; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()

			select {
			case c.semaphore <- struct{}{}:
				defer func() { <-c.semaphore }()
			case <-ctx.Done():
				results[page-1].err = ctx.Err()
				return
			}

			md, err := c.convertPage(runID, page, src)
			results[page-1] = pageResult{markdown: md, err: err}
		}(page)
	}
	wg.Wait()

	parts := make([]string, 0, pages)
	for i, res := range results {
		if res.err != nil {
			metrics.IncDocument("error")
			return "", fmt.Errorf("page %d: %w", i+1, res.err)
		}
		parts = append(parts, res.markdown)
	}

	metrics.IncDocument("success")
	log.Info().
		Str("run_id", runID).
		Int("pages", pages).
		Dur("elapsed", time.Since(start)).
		Msg("conversion finished")
	return strings.Join(parts, pageSeparator), nil
}

func (c *Converter) convertPage(runID string, page int, src Source) (string, error) {
	img, err := src.Render(page, c.opts.DPI)
	if err != nil {
		metrics.IncPage("error")
		return "", err
	}

	spans, err := src.ExtractSpans(page, c.opts.DPI)
	if err != nil {
		metrics.IncPage("error")
		return "", err
	}

	analyzeStart := time.Now()
	layout := c.analyzer.Analyze(img, spans)
	metrics.ObserveAnalyze(time.Since(analyzeStart))
	for _, r := range layout.Regions {
		metrics.AddRegions(r.Kind, 1)
	}
	metrics.AddCells(len(layout.Cells))

	markdown := c.generator.Generate(spans, &layout)
	metrics.IncGenerator(c.opts.Strategy)
	metrics.IncPage("success")

	log.Debug().
		Str("run_id", runID).
		Int("page", page).
		Int("regions", len(layout.Regions)).
		Int("cells", len(layout.Cells)).
		Int("spans", len(spans)).
		Msg("page converted")

	if c.opts.DebugDir != "" {
		if err := c.writeDebugImage(page, img, &layout); err != nil {
			log.Warn().Err(err).Int("page", page).Msg("failed to write debug image")
		}
	}
	return markdown, nil
}

func (c *Converter) writeDebugImage(page int, img image.Image, layout *analyzer.PageLayout) error {
	if err := os.MkdirAll(c.opts.DebugDir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(c.opts.DebugDir, fmt.Sprintf("page-%03d.png", page))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, c.annotator.Render(img, layout))
}
