package pdf

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/local/layoutmd/internal/geom"
)

const defaultFontSizePt = 12.0

// parseSpans turns MuPDF's per-page HTML into text spans. Each
// positioned paragraph (a node styled with top and left offsets in
// points) becomes one span; the box is estimated from the glyph count
// and font size, and everything is scaled into render pixels.
func parseSpans(src string, scale float64) ([]geom.TextSpan, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}

	var spans []geom.TextSpan
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			style := parseStyle(attr(n, "style"))
			if top, okTop := stylePt(style, "top"); okTop {
				if left, okLeft := stylePt(style, "left"); okLeft {
					if s, ok := buildSpan(n, top, left, scale); ok {
						spans = append(spans, s)
					}
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	geom.SortSpans(spans)
	return spans, nil
}

// buildSpan flattens one positioned node into a span. Font size comes
// from the first styled descendant that declares one.
func buildSpan(n *html.Node, topPt, leftPt, scale float64) (geom.TextSpan, bool) {
	fontPt := defaultFontSizePt
	var text strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		if n.Type == html.ElementNode {
			if size, ok := stylePt(parseStyle(attr(n, "style")), "font-size"); ok && fontPt == defaultFontSizePt {
				fontPt = size
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	trimmed := strings.TrimSpace(text.String())
	if trimmed == "" {
		return geom.TextSpan{}, false
	}

	fontPx := fontPt * scale
	runes := utf8.RuneCountInString(trimmed)
	return geom.TextSpan{
		X:        int(leftPt * scale),
		Y:        int(topPt * scale),
		Width:    int(float64(runes) * fontPx * 0.5),
		Height:   int(fontPx * 1.2),
		Text:     trimmed,
		FontSize: fontPx,
	}, true
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// parseStyle splits an inline style attribute into property pairs.
func parseStyle(style string) map[string]string {
	out := map[string]string{}
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

// stylePt reads a point-valued style property such as "72.5pt".
func stylePt(style map[string]string, key string) (float64, bool) {
	raw, ok := style[key]
	if !ok {
		return 0, false
	}
	raw = strings.TrimSuffix(raw, "pt")
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
