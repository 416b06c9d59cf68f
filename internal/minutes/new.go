package minutes

import (
	"fmt"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/document"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/upstream"
)

// Options is the explicit configuration of a Pipeline.
type Options struct {
	Variant  string
	Language string
	Title    string
	Style    document.Style
	Now      func() time.Time
}

// OptionsFromConfig maps the loaded configuration onto pipeline options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Variant:  cfg.Minutes.Variant,
		Language: cfg.Minutes.Language,
		Title:    cfg.Document.Title,
		Style: document.Style{
			FontFamily: cfg.Document.FontFamily,
			FontSize:   cfg.Document.FontSize,
		},
	}
}

type implPipeline struct {
	opts         Options
	sections     []Section
	ids          []string
	transcriptID string
	instruction  string
	gen          upstream.Generator
	logger       logger.Logger
}

// New creates a Pipeline that calls gen once per Run.
func New(opts Options, gen upstream.Generator, log logger.Logger) (Pipeline, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Language == "" {
		opts.Language = "English"
	}

	secs := SectionsFor(opts.Variant)
	instruction, err := buildInstruction(opts.Language, secs)
	if err != nil {
		return nil, fmt.Errorf("build instruction: %w", err)
	}

	p := &implPipeline{
		opts:        opts,
		sections:    secs,
		ids:         sectionIDs(secs),
		instruction: instruction,
		gen:         gen,
		logger:      log,
	}
	for _, s := range secs {
		if s.Route == RoutePlainText {
			p.transcriptID = s.ID
			break
		}
	}
	return p, nil
}

func (p *implPipeline) Sections() []Section {
	out := make([]Section, len(p.sections))
	copy(out, p.sections)
	return out
}
