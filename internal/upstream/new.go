package upstream

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

// New creates the Generator selected by cfg.Provider. tempDir is where large
// payloads are staged before upload.
func New(ctx context.Context, cfg config.UpstreamConfig, tempDir string, log logger.Logger) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini, "":
		return NewGemini(ctx, cfg, tempDir, log)
	case config.ProviderOpenAI:
		return NewOpenAI(cfg, log), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}
