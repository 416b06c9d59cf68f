package httpapi

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// Both are safe for concurrent use once built.
var (
	previewMarkdown = goldmark.New()
	previewPolicy   = bluemonday.UGCPolicy()
)

// renderHTML turns a section into sanitised HTML for on-screen display.
// Raw HTML in model output is stripped.
func renderHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := previewMarkdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return previewPolicy.Sanitize(buf.String()), nil
}
