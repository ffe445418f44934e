package speaker

import (
	"time"

	"github.com/nguyentantai21042004/podcast-flow/internal/acoustic"
	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
)

// Options tunes classification and extraction. Zero fields take the defaults, so a
// threshold or fallback pitch of exactly 0 cannot be configured; all three are
// physical quantities where 0 is meaningless.
type Options struct {
	PitchThreshold float64
	TempoThreshold float64
	FallbackPitch  float64
	// Workers bounds concurrent feature extraction.
	Workers int
	// Timeout bounds one segment's extraction; zero means no limit.
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.PitchThreshold == 0 {
		o.PitchThreshold = DefaultPitchThreshold
	}
	if o.TempoThreshold == 0 {
		o.TempoThreshold = DefaultTempoThreshold
	}
	if o.FallbackPitch == 0 {
		o.FallbackPitch = DefaultFallbackPitch
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	return o
}

type implAggregator struct {
	extractor acoustic.Extractor
	logger    logger.Logger
	opts      Options
}

// New creates a new Aggregator instance
func New(extractor acoustic.Extractor, log logger.Logger, opts Options) Aggregator {
	return &implAggregator{
		extractor: extractor,
		logger:    log,
		opts:      opts.withDefaults(),
	}
}
