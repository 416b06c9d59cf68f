package minutes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/meeting-minutes/internal/document"
	"github.com/nguyentantai21042004/meeting-minutes/internal/markup"
	"github.com/nguyentantai21042004/meeting-minutes/internal/sections"
	"github.com/nguyentantai21042004/meeting-minutes/internal/upstream"
)

// Run calls the upstream service once, recovers the sections and assembles
// the document from the exportable ones. Missing sections are tolerated as
// long as at least one section has content.
func (p *implPipeline) Run(ctx context.Context, a Audio) (*Result, error) {
	if len(a.Data) == 0 {
		return nil, ErrNoAudio
	}

	id := uuid.NewString()
	startTime := time.Now()
	p.logger.Info(ctx, "[%s] Generating minutes for %s (%d bytes, %s)", id, a.Filename, len(a.Data), a.MIMEType)

	raw, err := p.gen.Generate(ctx, upstream.Request{
		Instruction: p.instruction,
		Audio:       a.Data,
		MIMEType:    a.MIMEType,
		Filename:    a.Filename,

		TranscriptSection: p.transcriptID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyTranscription
	}

	extracted := sections.Extract(raw, p.ids)
	if extracted.AllEmpty() {
		p.logger.Error(ctx, "[%s] No expected section found in %d byte response", id, len(raw))
		p.logger.Debug(ctx, "[%s] Raw response: %s", id, raw)
		return nil, &ParseError{Raw: raw}
	}
	for _, sid := range p.ids {
		if extracted[sid] == "" {
			p.logger.Warn(ctx, "[%s] Section %q missing from response", id, sid)
		}
	}

	res := &Result{
		ID:       id,
		Sections: extracted,
		Present:  extracted.Present(p.ids),
	}
	for _, s := range p.sections {
		switch s.Route {
		case RouteDiagram:
			res.Outline = extracted[s.ID]
		case RoutePlainText:
			res.Transcript = extracted[s.ID]
		}
	}

	res.Blocks = p.render(extracted)
	if len(res.Blocks) > 0 {
		doc, err := document.Assemble(res.Blocks, p.opts.Style)
		if err != nil {
			return nil, fmt.Errorf("assemble document: %w", err)
		}
		res.Document = doc
	}

	p.logger.Info(ctx, "[%s] Recovered sections %v in %s", id, res.Present, time.Since(startTime))
	return res, nil
}

// render builds the document blocks from the non-empty document sections,
// prefixed by the optional title. Each section gets its own heading when
// more than one is exported.
func (p *implPipeline) render(extracted sections.Extracted) []markup.Block {
	var exported []Section
	for _, s := range p.sections {
		if s.Route == RouteDocument && extracted[s.ID] != "" {
			exported = append(exported, s)
		}
	}
	if len(exported) == 0 {
		return nil
	}

	var blocks []markup.Block
	if p.opts.Title != "" {
		blocks = append(blocks,
			markup.Heading(0, p.opts.Title),
			markup.Paragraph(p.opts.Now().Format("2006-01-02 15:04")),
		)
	}
	for _, s := range exported {
		if len(exported) > 1 {
			blocks = append(blocks, markup.Heading(1, s.Title))
		}
		blocks = append(blocks, markup.Render(extracted[s.ID])...)
	}
	return blocks
}
