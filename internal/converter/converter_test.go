package converter

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/local/layoutmd/internal/analyzer"
	"github.com/local/layoutmd/internal/detect"
	"github.com/local/layoutmd/internal/generate"
	"github.com/local/layoutmd/internal/geom"
	"github.com/local/layoutmd/internal/pipeline"
)

type fakeSource struct {
	pages     int
	failPage  int
	renderErr error
}

func (f *fakeSource) PageCount() int { return f.pages }

func (f *fakeSource) Render(page, _ int) (image.Image, error) {
	if page == f.failPage {
		return nil, f.renderErr
	}
	img := image.NewGray(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img, nil
}

func (f *fakeSource) ExtractSpans(page, _ int) ([]geom.TextSpan, error) {
	text := fmt.Sprintf("Page %d", page)
	return []geom.TextSpan{{X: 0, Y: 10, Width: len(text) * 5, Height: 10, Text: text}}, nil
}

func newConverter(opts Options) *Converter {
	a := analyzer.New(
		detect.NewRectangleDetector(detect.DefaultRectangleConfig()),
		detect.NewTableDetector(detect.DefaultTableConfig(), nil),
		pipeline.Default(pipeline.DefaultConfig()),
	)
	g := generate.NewSpatial(opts.DPI)
	g.SetCodeBlock(false)
	return New(a, g, opts)
}

func TestConvertJoinsPagesInOrder(t *testing.T) {
	c := newConverter(Options{DPI: 300, Strategy: "spatial", Workers: 4})

	got, err := c.Convert(context.Background(), &fakeSource{pages: 3})
	require.NoError(t, err)

	parts := strings.Split(got, pageSeparator)
	require.Len(t, parts, 3)
	for i, part := range parts {
		assert.Equal(t, fmt.Sprintf("Page %d", i+1), part)
	}
}

func TestConvertEmptyDocument(t *testing.T) {
	c := newConverter(Options{DPI: 300, Strategy: "spatial"})

	got, err := c.Convert(context.Background(), &fakeSource{pages: 0})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestConvertReportsFailingPage(t *testing.T) {
	renderErr := errors.New("render blew up")
	c := newConverter(Options{DPI: 300, Strategy: "spatial", Workers: 2})

	_, err := c.Convert(context.Background(), &fakeSource{pages: 3, failPage: 2, renderErr: renderErr})
	require.Error(t, err)
	assert.ErrorIs(t, err, renderErr)
	assert.Contains(t, err.Error(), "page 2")
}

func TestConvertCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newConverter(Options{DPI: 300, Strategy: "spatial", Workers: 1})
	// Fill the only worker slot so queued pages see the cancelled context.
	c.semaphore <- struct{}{}
	defer func() { <-c.semaphore }()

	_, err := c.Convert(ctx, &fakeSource{pages: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvertWritesDebugImages(t *testing.T) {
	dir := t.TempDir()
	c := newConverter(Options{DPI: 300, Strategy: "spatial", Workers: 1, DebugDir: dir})

	_, err := c.Convert(context.Background(), &fakeSource{pages: 2})
	require.NoError(t, err)

	for _, name := range []string{"page-001.png", "page-002.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestNewDefaultsWorkerCount(t *testing.T) {
	c := newConverter(Options{})
	assert.Equal(t, 1, cap(c.semaphore))
	assert.Equal(t, 300, c.opts.DPI)
}
