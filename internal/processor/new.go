package processor

import (
	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/minutes"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

type implProcessor struct {
	cfg      *config.Config
	pipeline minutes.Pipeline
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, pipeline minutes.Pipeline, exec executor.Executor, log logger.Logger) Processor {
	return &implProcessor{
		cfg:      cfg,
		pipeline: pipeline,
		executor: exec,
		logger:   log,
	}
}
