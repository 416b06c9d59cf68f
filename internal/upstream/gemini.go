package upstream

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"google.golang.org/genai"
)

const (
	filePollInterval = 2 * time.Second
	filePollAttempts = 60
)

type geminiGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
	inlineLimit int64
	tempDir     string
	logger      logger.Logger
}

// NewGemini creates a Generator backed by the Gemini API. Audio larger than
// cfg.InlineLimitBytes is uploaded through the Files API.
func NewGemini(ctx context.Context, cfg config.UpstreamConfig, tempDir string, log logger.Logger) (Generator, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	return &geminiGenerator{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.SamplingTemperature(),
		inlineLimit: cfg.InlineLimitBytes,
		tempDir:     tempDir,
		logger:      log,
	}, nil
}

// Generate sends the instruction and audio in a single GenerateContent call.
func (g *geminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	var audioPart *genai.Part
	if g.inlineLimit <= 0 || int64(len(req.Audio)) <= g.inlineLimit {
		audioPart = genai.NewPartFromBytes(req.Audio, req.MIMEType)
	} else {
		file, err := g.upload(ctx, req)
		if err != nil {
			return "", err
		}
		defer g.deleteRemote(file.Name)
		audioPart = genai.NewPartFromURI(file.URI, file.MIMEType)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(req.Instruction),
			audioPart,
		}, genai.RoleUser),
	}

	g.logger.Debug(ctx, "Calling %s with %d bytes of %s", g.model, len(req.Audio), req.MIMEType)
	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return responseText(result), nil
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text
}

// upload stages the payload on disk, uploads it and waits until the service
// has finished processing it. The staged file is removed before returning.
func (g *geminiGenerator) upload(ctx context.Context, req Request) (*genai.File, error) {
	path, err := stage(g.tempDir, req)
	if err != nil {
		return nil, fmt.Errorf("stage audio: %w", err)
	}
	defer unstage(ctx, g.logger, path)

	g.logger.Info(ctx, "Uploading %d bytes of audio via Files API", len(req.Audio))
	file, err := g.client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{
		MIMEType:    req.MIMEType,
		DisplayName: req.Filename,
	})
	if err != nil {
		return nil, fmt.Errorf("upload audio: %w", err)
	}

	name := file.Name
	for i := 0; file.State != genai.FileStateActive; i++ {
		if file.State == genai.FileStateFailed || i >= filePollAttempts {
			g.deleteRemote(name)
			return nil, fmt.Errorf("uploaded audio %s not usable (state %s)", name, file.State)
		}
		select {
		case <-ctx.Done():
			g.deleteRemote(name)
			return nil, ctx.Err()
		case <-time.After(filePollInterval):
		}
		if file, err = g.client.Files.Get(ctx, name, nil); err != nil {
			g.deleteRemote(name)
			return nil, fmt.Errorf("poll uploaded audio: %w", err)
		}
	}
	return file, nil
}

// deleteRemote removes an uploaded file; it uses a fresh context so it runs
// even after the request context is done.
func (g *geminiGenerator) deleteRemote(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := g.client.Files.Delete(ctx, name, nil); err != nil {
		g.logger.Warn(ctx, "Failed to delete uploaded audio %s: %v", name, err)
	}
}
