package upstream

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/sashabaranov/go-openai"
)

type openAIGenerator struct {
	client             *openai.Client
	model              string
	transcriptionModel string
	language           string
	hint               string
	temperature        float32
	logger             logger.Logger
}

// NewOpenAI creates a Generator that transcribes with Whisper and then asks a
// chat model to produce the sections from the transcript.
func NewOpenAI(cfg config.UpstreamConfig, log logger.Logger) Generator {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}

	return &openAIGenerator{
		client:             openai.NewClientWithConfig(oc),
		model:              cfg.Model,
		transcriptionModel: cfg.TranscriptionModel,
		language:           cfg.TranscriptionLang,
		hint:               cfg.TranscriptionHint,
		temperature:        cfg.SamplingTemperature(),
		logger:             log,
	}
}

func (o *openAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	filename := req.Filename
	if filename == "" {
		filename = "input.wav"
	}

	o.logger.Debug(ctx, "Transcribing %d bytes with %s", len(req.Audio), o.transcriptionModel)
	tr, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.transcriptionModel,
		FilePath: filename,
		Reader:   bytes.NewReader(req.Audio),
		Language: o.language,
		Prompt:   o.hint,
	})
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	if strings.TrimSpace(tr.Text) == "" {
		return "", nil
	}

	instruction := req.Instruction
	if req.TranscriptSection != "" {
		instruction += fmt.Sprintf("\nThe <%s> section is already available. Do not write it.\n", req.TranscriptSection)
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instruction},
			{Role: openai.ChatMessageRoleUser, Content: tr.Text},
		},
		Temperature: chatTemperature(o.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	var content string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}
	if req.TranscriptSection == "" {
		return content, nil
	}
	// The transcript goes first so it wins over any copy the model wrote anyway.
	return fmt.Sprintf("<%[1]s>\n%[2]s\n</%[1]s>\n%[3]s", req.TranscriptSection, strings.TrimSpace(tr.Text), content), nil
}

// chatTemperature maps 0 to the smallest positive value; the client omits a
// zero temperature and the service then applies its own default.
func chatTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}
