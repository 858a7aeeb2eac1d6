package pdf

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageHTML = `<html><body>
<div id="page0">
<p style="top:100pt;left:36pt;line-height:12pt">World</p>
<p style="top:72pt;left:36pt"><span style="font-family:Helvetica;font-size:10pt">Hello</span></p>
<p style="top:200pt;left:50pt">   </p>
</div>
</body></html>`

func TestParseSpans(t *testing.T) {
	spans, err := parseSpans(pageHTML, 1.0)
	require.NoError(t, err)
	require.Len(t, spans, 2)

	// Sorted top to bottom regardless of document order.
	assert.Equal(t, "Hello", spans[0].Text)
	assert.Equal(t, 36, spans[0].X)
	assert.Equal(t, 72, spans[0].Y)
	assert.Equal(t, 25, spans[0].Width) // 5 glyphs at 10pt
	assert.Equal(t, 12, spans[0].Height)
	assert.InDelta(t, 10.0, spans[0].FontSize, 0.001)

	assert.Equal(t, "World", spans[1].Text)
	assert.Equal(t, 100, spans[1].Y)
	assert.Equal(t, 30, spans[1].Width) // default 12pt font
}

func TestParseSpansScalesToDPI(t *testing.T) {
	spans, err := parseSpans(pageHTML, 300.0/72.0)
	require.NoError(t, err)
	require.Len(t, spans, 2)

	assert.Equal(t, 150, spans[0].X)
	assert.Equal(t, 300, spans[0].Y)
	assert.InDelta(t, 10.0*300.0/72.0, spans[0].FontSize, 0.001)
}

func TestParseSpansEmptyDocument(t *testing.T) {
	spans, err := parseSpans("<html><body></body></html>", 1.0)
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestParseStyle(t *testing.T) {
	style := parseStyle("top:72.5pt; left:36pt;font-size:10pt")
	v, ok := stylePt(style, "top")
	require.True(t, ok)
	assert.InDelta(t, 72.5, v, 0.001)

	_, ok = stylePt(style, "bottom")
	assert.False(t, ok)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenRejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text pretending"), 0o644))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrUnsupportedInput)
}

func TestResolveLocalPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	got, cleanup, err := Resolve(context.Background(), path)
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, path, got)
}

func TestResolveFileScheme(t *testing.T) {
	got, cleanup, err := Resolve(context.Background(), "file:///tmp/some.pdf")
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, "/tmp/some.pdf", got)
}

func TestResolveMissingLocalPath(t *testing.T) {
	_, _, err := Resolve(context.Background(), filepath.Join(t.TempDir(), "gone.pdf"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveHTTPDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("pdf bytes"))
	}))
	defer srv.Close()

	path, cleanup, err := Resolve(context.Background(), srv.URL+"/doc.pdf")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))

	cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestResolveHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, _, err := Resolve(context.Background(), srv.URL+"/doc.pdf")
	assert.Error(t, err)
}

func TestProbeIndices(t *testing.T) {
	assert.Nil(t, probeIndices(0))
	assert.Equal(t, []int{0}, probeIndices(1))
	assert.Equal(t, []int{0, 1, 2}, probeIndices(3))
	assert.Equal(t, []int{0, 5, 9}, probeIndices(10))
	assert.Equal(t, []int{0, 2, 3}, probeIndices(4))
}

func TestCountInk(t *testing.T) {
	assert.Equal(t, 0, countInk(" \n\t "))
	assert.Equal(t, 10, countInk("Hello\nWorld "))
}

func TestSplitS3(t *testing.T) {
	bucket, key, err := splitS3("s3://docs/in/scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, "docs", bucket)
	assert.Equal(t, "in/scan.pdf", key)

	_, _, err = splitS3("s3://docs")
	assert.Error(t, err)

	_, _, err = splitS3("s3://docs/")
	assert.Error(t, err)
}
