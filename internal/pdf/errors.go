package pdf

import "errors"

var (
	// ErrNotFound means the referenced document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrUnsupportedInput means the input is not a PDF.
	ErrUnsupportedInput = errors.New("unsupported input type")

	// ErrRender means a page could not be rasterized.
	ErrRender = errors.New("page render failed")
)
