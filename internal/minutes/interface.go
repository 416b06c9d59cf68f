package minutes

import (
	"bytes"
	"context"

	"github.com/nguyentantai21042004/meeting-minutes/internal/markup"
	"github.com/nguyentantai21042004/meeting-minutes/internal/sections"
)

// Pipeline turns one recording into a meeting record.
type Pipeline interface {
	Run(ctx context.Context, a Audio) (*Result, error)
	Sections() []Section
}

// Audio is the recording submitted for one request.
type Audio struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Result holds everything recovered from one upstream response. Document is
// nil when no exportable section had content.
type Result struct {
	ID         string
	Sections   sections.Extracted
	Present    []string
	Transcript string
	Outline    string
	Blocks     []markup.Block
	Document   *bytes.Reader
}
