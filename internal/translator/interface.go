// Package translator turns a diarized English transcript into style-conditioned Mandarin,
// one provider request per segment with its neighbours as context.
package translator

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/podcast-flow/internal/speaker"
	"github.com/nguyentantai21042004/podcast-flow/internal/transcript"
)

// FailureSentinel replaces the translation of any segment whose provider call failed.
const FailureSentinel = "[Translation error]"

var ErrEmptyResponse = errors.New("empty response from provider")

// PodcastInfo is optional show-level context added to every request.
type PodcastInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Segment is the translated counterpart of transcript.Segment at the same index.
type Segment struct {
	Speaker    transcript.SpeakerID `json:"speaker"`
	Start      float64              `json:"start"`
	End        float64              `json:"end"`
	Original   string               `json:"original"`
	Translated string               `json:"translated"`
}

// Failed reports whether the segment carries the failure sentinel.
func (s Segment) Failed() bool {
	return s.Translated == FailureSentinel
}

// Window is the text surrounding the segment being translated.
type Window struct {
	Prev    string
	Current string
	Next    string
}

// Request is one provider call. Providers only read System and User.
type Request struct {
	System string
	User   string

	Window Window
	Style  speaker.Style
}

// Provider produces target-language text for a request.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Translator translates a whole transcript. The result always has len(t) entries in t's order.
type Translator interface {
	Translate(ctx context.Context, t transcript.Transcript, profiles map[transcript.SpeakerID]speaker.Profile, info *PodcastInfo) []Segment
}
