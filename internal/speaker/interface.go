// Package speaker builds per-speaker acoustic style profiles from a diarized transcript.
package speaker

import (
	"context"

	"github.com/nguyentantai21042004/podcast-flow/internal/transcript"
)

// Aggregator turns audio plus transcript into one Profile per contributing speaker.
type Aggregator interface {
	Aggregate(ctx context.Context, samples []float64, sampleRate int, t transcript.Transcript) map[transcript.SpeakerID]Profile
}
