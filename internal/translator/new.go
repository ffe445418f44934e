package translator

import (
	"time"

	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
)

// Options bounds the batch. Workers below one means sequential.
type Options struct {
	Workers int
	// Timeout bounds each provider call; zero means no limit.
	Timeout time.Duration
}

type implTranslator struct {
	provider Provider
	logger   logger.Logger
	opts     Options
}

// New creates a new Translator instance
func New(provider Provider, log logger.Logger, opts Options) Translator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &implTranslator{
		provider: provider,
		logger:   log,
		opts:     opts,
	}
}
