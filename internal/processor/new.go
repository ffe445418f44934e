package processor

import (
	"github.com/nguyentantai21042004/podcast-flow/internal/config"
	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
	"github.com/nguyentantai21042004/podcast-flow/internal/speaker"
	"github.com/nguyentantai21042004/podcast-flow/internal/transcriber"
	"github.com/nguyentantai21042004/podcast-flow/internal/translator"
	"github.com/nguyentantai21042004/podcast-flow/pkg/executor"
)

// Stages are the collaborators a run is composed of.
type Stages struct {
	Transcriber transcriber.Provider
	Aggregator  speaker.Aggregator
	Translator  translator.Translator
}

type implProcessor struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
	stages   Stages
}

// New creates a new Processor instance
func New(cfg *config.Config, exec executor.Executor, log logger.Logger, stages Stages) Processor {
	return &implProcessor{
		cfg:      cfg,
		executor: exec,
		logger:   log,
		stages:   stages,
	}
}
