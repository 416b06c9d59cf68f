package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/audio"
	"github.com/nguyentantai21042004/meeting-minutes/internal/document"
	"github.com/nguyentantai21042004/meeting-minutes/internal/minutes"
)

const (
	transcriptFile = "transcript.txt"
	outlineFile    = "outline.mmd"
	followupFile   = "followup.txt"
	rawFile        = "response.raw.txt"
)

// Process exports the recording into the output folder and archives it
func (p *implProcessor) Process(ctx context.Context, path string) error {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting recording: %s", path)
	p.logger.Info(ctx, "========================================")

	out, err := p.Export(ctx, path, p.cfg.Paths.Output)
	if err != nil {
		return err
	}

	if _, err := p.archive(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move recording to archived folder: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Output folder: %s", out.Dir)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")
	return nil
}

// Export runs the pipeline for one recording and writes every non-empty
// output into destDir/<name>/.
func (p *implProcessor) Export(ctx context.Context, path, destDir string) (Outputs, error) {
	if !audio.IsSupported(path) {
		return Outputs{}, fmt.Errorf("unsupported recording %s", filepath.Base(path))
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := Outputs{Dir: filepath.Join(destDir, name)}

	audioPath := path
	mimeType, _ := audio.Detect(path)
	if audio.IsVideo(path) {
		extracted, err := p.extractAudio(ctx, path)
		if err != nil {
			return out, fmt.Errorf("extract audio: %w", err)
		}
		defer p.removeTemp(ctx, extracted)
		audioPath, mimeType = extracted, "audio/wav"
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return out, fmt.Errorf("read recording: %w", err)
	}

	res, err := p.pipeline.Run(ctx, minutes.Audio{
		Filename: filepath.Base(audioPath),
		MIMEType: mimeType,
		Data:     data,
	})
	if err != nil {
		var pe *minutes.ParseError
		if errors.As(err, &pe) {
			if out.Raw, err = p.writeText(out.Dir, rawFile, pe.Raw); err != nil {
				p.logger.Warn(ctx, "Failed to save raw response: %v", err)
			}
			return out, pe
		}
		return out, err
	}

	if err := p.writeResult(res, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (p *implProcessor) writeResult(res *minutes.Result, out *Outputs) error {
	var err error
	if res.Document != nil {
		if out.Document, err = p.writeFile(out.Dir, document.Filename(), res.Document); err != nil {
			return err
		}
	}
	if out.Transcript, err = p.writeText(out.Dir, transcriptFile, res.Transcript); err != nil {
		return err
	}
	if out.Outline, err = p.writeText(out.Dir, outlineFile, res.Outline); err != nil {
		return err
	}
	if out.Followup, err = p.writeText(out.Dir, followupFile, res.Sections.Get(minutes.SectionFollowup)); err != nil {
		return err
	}
	return nil
}

// writeText writes content to dir/name; empty content is skipped.
func (p *implProcessor) writeText(dir, name, content string) (string, error) {
	if content == "" {
		return "", nil
	}
	return p.writeFile(dir, name, strings.NewReader(content+"\n"))
}

func (p *implProcessor) writeFile(dir, name string, r io.Reader) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return path, nil
}
