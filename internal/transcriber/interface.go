// Package transcriber produces diarized transcripts from audio files.
package transcriber

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/podcast-flow/internal/transcript"
)

var ErrAudioNotFound = errors.New("audio file not found")

// Request describes one transcription job.
type Request struct {
	AudioPath   string
	Language    string
	MinSpeakers int
	MaxSpeakers int
}

// Provider transcribes and diarizes an audio file. Any error is fatal for the run.
type Provider interface {
	Transcribe(ctx context.Context, req Request) (transcript.Transcript, error)
}
