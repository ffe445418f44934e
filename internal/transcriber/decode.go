package transcriber

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nguyentantai21042004/podcast-flow/internal/transcript"
)

// response is the segment list returned by both the helper script and the service.
type response struct {
	Language string `json:"language"`
	Segments []struct {
		Speaker string  `json:"speaker"`
		Start   float64 `json:"start"`
		End     float64 `json:"end"`
		Text    string  `json:"text"`
	} `json:"segments"`
}

func decodeResponse(r io.Reader) (transcript.Transcript, error) {
	var resp response
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode transcription: %w", err)
	}

	t := make(transcript.Transcript, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		speaker := transcript.SpeakerID(strings.TrimSpace(s.Speaker))
		if speaker == "" {
			speaker = transcript.UnknownSpeaker
		}
		t = append(t, transcript.Segment{
			Speaker: speaker,
			Start:   s.Start,
			End:     s.End,
			Text:    strings.TrimSpace(s.Text),
		})
	}
	return t, nil
}

func checkAudio(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrAudioNotFound, path)
		}
		return fmt.Errorf("stat audio: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrAudioNotFound, path)
	}
	return nil
}
