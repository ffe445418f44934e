package transcript

import "strings"

// SpeakerStats summarises one speaker's share of a transcript.
type SpeakerStats struct {
	Speaker       SpeakerID
	Segments      int
	TotalDuration float64
	TotalWords    int
	Share         float64 // fraction of all speaking time
}

func (s SpeakerStats) AvgWords() float64 {
	if s.Segments == 0 {
		return 0
	}
	return float64(s.TotalWords) / float64(s.Segments)
}

func (s SpeakerStats) AvgDuration() float64 {
	if s.Segments == 0 {
		return 0
	}
	return s.TotalDuration / float64(s.Segments)
}

// Turn is a maximal run of consecutive segments by the same speaker.
type Turn struct {
	Speaker SpeakerID
	Start   float64
	End     float64
}

func (t Turn) Duration() float64 {
	return t.End - t.Start
}

// Stats holds per-speaker totals in first-appearance order and the speaker turns.
type Stats struct {
	Speakers      []SpeakerStats
	Turns         []Turn
	TotalDuration float64
}

// ComputeStats walks the transcript once.
func ComputeStats(t Transcript) Stats {
	var st Stats
	index := make(map[SpeakerID]int)

	for i, seg := range t {
		idx, ok := index[seg.Speaker]
		if !ok {
			idx = len(st.Speakers)
			index[seg.Speaker] = idx
			st.Speakers = append(st.Speakers, SpeakerStats{Speaker: seg.Speaker})
		}
		sp := &st.Speakers[idx]
		sp.Segments++
		sp.TotalDuration += seg.Duration()
		sp.TotalWords += len(strings.Fields(seg.Text))
		st.TotalDuration += seg.Duration()

		if i == 0 || seg.Speaker != t[i-1].Speaker {
			st.Turns = append(st.Turns, Turn{Speaker: seg.Speaker, Start: seg.Start, End: seg.End})
			continue
		}
		st.Turns[len(st.Turns)-1].End = seg.End
	}

	if st.TotalDuration > 0 {
		for i := range st.Speakers {
			st.Speakers[i].Share = st.Speakers[i].TotalDuration / st.TotalDuration
		}
	}
	return st
}
