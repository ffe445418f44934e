// Package acoustic extracts per-segment pitch, tempo and timbre descriptors from raw samples.
package acoustic

import (
	"context"
	"errors"
)

var (
	ErrTooShort = errors.New("segment shorter than one analysis frame")
	ErrSilent   = errors.New("segment has no signal energy")
)

// Features describes one audio slice.
type Features struct {
	// Pitch holds one f0 estimate in Hz per frame; NaN marks unvoiced frames.
	Pitch []float64
	// Tempo holds candidate tempi in BPM. Backends may return more than one.
	Tempo            []float64
	SpectralCentroid float64
}

// Extractor computes Features for a mono sample slice.
type Extractor interface {
	Extract(ctx context.Context, samples []float64, sampleRate int) (Features, error)
}
