package processor

import (
	"context"

	"github.com/nguyentantai21042004/podcast-flow/internal/speaker"
	"github.com/nguyentantai21042004/podcast-flow/internal/transcript"
	"github.com/nguyentantai21042004/podcast-flow/internal/translator"
)

// Processor runs the podcast pipeline on one audio file.
type Processor interface {
	Process(ctx context.Context, audioPath string, info *translator.PodcastInfo) (*Result, error)
	// Handle processes a file picked up by the watcher and archives it on success.
	Handle(ctx context.Context, audioPath string) error
}

// Result is everything one run produces.
type Result struct {
	RunID              string                                   `json:"run_id"`
	Transcript         transcript.Transcript                    `json:"transcript"`
	SpeakerData        map[transcript.SpeakerID]speaker.Profile `json:"speaker_data"`
	TranslatedSegments []translator.Segment                     `json:"translated_segments"`
}
