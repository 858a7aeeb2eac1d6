// Package pdf opens documents, rasterizes pages and extracts
// positioned text spans for layout analysis.
package pdf

import (
	"fmt"
	"image"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog/log"

	"github.com/local/layoutmd/internal/geom"
)

// Document is an open PDF ready for per-page rendering and text
// extraction. Page numbers are 1-based throughout.
type Document struct {
	path  string
	doc   *fitz.Document
	pages int
}

// Open validates the file and opens it for rendering. The content type
// is sniffed rather than trusted from the extension, and the page
// count is cross-checked before MuPDF touches the file.
func Open(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}
	if !mime.Is("application/pdf") {
		return nil, fmt.Errorf("%w: %s is %s", ErrUnsupportedInput, path, mime.String())
	}

	pages, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdf validation failed: %w", err)
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	log.Debug().Str("path", path).Int("pages", pages).Msg("opened document")
	return &Document{path: path, doc: doc, pages: pages}, nil
}

func (d *Document) PageCount() int {
	return d.pages
}

func (d *Document) Path() string {
	return d.path
}

func (d *Document) Close() error {
	return d.doc.Close()
}

// Render rasterizes one page at the given DPI.
func (d *Document) Render(page, dpi int) (image.Image, error) {
	if page < 1 || page > d.pages {
		return nil, fmt.Errorf("%w: page %d out of range (document has %d pages)", ErrRender, page, d.pages)
	}

	// go-fitz uses 0-based indexing
	img, err := d.doc.ImageDPI(page-1, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("%w: page %d: %v", ErrRender, page, err)
	}

	bounds := img.Bounds()
	log.Debug().
		Int("page", page).
		Int("dpi", dpi).
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Msg("rendered page")
	return img, nil
}

// ExtractSpans returns the page's text spans with pixel coordinates
// matching a render at the given DPI.
func (d *Document) ExtractSpans(page, dpi int) ([]geom.TextSpan, error) {
	if page < 1 || page > d.pages {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", page, d.pages)
	}

	src, err := d.doc.HTML(page-1, false)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from page %d: %w", page, err)
	}

	spans, err := parseSpans(src, float64(dpi)/72.0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %d text layout: %w", page, err)
	}

	log.Debug().Int("page", page).Int("spans", len(spans)).Msg("extracted text spans")
	return spans, nil
}
