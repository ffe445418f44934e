// Package transcript holds the timestamped, speaker-labeled segments produced by
// transcription and consumed by speaker analysis and translation.
package transcript

import (
	"encoding/json"
	"fmt"
)

// SpeakerID is an opaque diarization label. It is only meaningful within one run.
type SpeakerID string

// UnknownSpeaker labels segments the diarizer could not attribute.
const UnknownSpeaker SpeakerID = "unknown"

// Segment is one utterance. Duration is derived from Start and End.
type Segment struct {
	Speaker SpeakerID
	Start   float64 // sec
	End     float64 // sec
	Text    string
}

// Duration returns End-Start.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

type segmentJSON struct {
	Speaker  SpeakerID `json:"speaker"`
	Start    float64   `json:"start"`
	End      float64   `json:"end"`
	Text     string    `json:"text"`
	Duration float64   `json:"duration"`
}

func (s Segment) MarshalJSON() ([]byte, error) {
	return json.Marshal(segmentJSON{
		Speaker:  s.Speaker,
		Start:    s.Start,
		End:      s.End,
		Text:     s.Text,
		Duration: s.Duration(),
	})
}

// UnmarshalJSON ignores any duration in the input; it is always recomputed.
func (s *Segment) UnmarshalJSON(b []byte) error {
	var raw segmentJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = Segment{Speaker: raw.Speaker, Start: raw.Start, End: raw.End, Text: raw.Text}
	return nil
}

// Transcript is ordered by Start, non-decreasing.
type Transcript []Segment

// Speakers returns the distinct speaker labels in order of first appearance.
func (t Transcript) Speakers() []SpeakerID {
	seen := make(map[SpeakerID]bool)
	var out []SpeakerID
	for _, s := range t {
		if !seen[s.Speaker] {
			seen[s.Speaker] = true
			out = append(out, s.Speaker)
		}
	}
	return out
}

// Validate reports the first segment that breaks the ordering or boundary contract.
func (t Transcript) Validate() error {
	for i, s := range t {
		if s.End < s.Start {
			return fmt.Errorf("segment %d: end %.3f before start %.3f", i, s.End, s.Start)
		}
		if i > 0 && s.Start < t[i-1].Start {
			return fmt.Errorf("segment %d: start %.3f before previous start %.3f", i, s.Start, t[i-1].Start)
		}
	}
	return nil
}
