package speaker

import "github.com/nguyentantai21042004/podcast-flow/internal/transcript"

// Tone labels a speaker's average pitch.
type Tone string

const (
	ToneHigher  Tone = "higher_pitched"
	ToneLower   Tone = "lower_pitched"
	ToneNeutral Tone = "neutral"
)

// Pace labels a speaker's average tempo.
type Pace string

const (
	PaceFast         Pace = "fast"
	PaceModerateSlow Pace = "moderate_to_slow"
	PaceModerate     Pace = "moderate"
)

const (
	// DefaultPitchThreshold splits higher from lower voices, exclusive on the high side.
	DefaultPitchThreshold = 180.0 // Hz
	// DefaultTempoThreshold splits fast from moderate speech, exclusive on the high side.
	DefaultTempoThreshold = 120.0 // BPM
	// DefaultFallbackPitch stands in for segments where no frame was voiced.
	DefaultFallbackPitch = 160.0 // Hz
)

// Profile is the aggregated acoustic style of one speaker.
// The Avg fields are running means over exactly SampleCount segments.
type Profile struct {
	Speaker             transcript.SpeakerID `json:"speaker"`
	SampleCount         int                  `json:"sample_count"`
	AvgPitch            float64              `json:"avg_pitch"`
	AvgTempo            float64              `json:"avg_tempo"`
	AvgSpectralCentroid float64              `json:"avg_spectral_centroid"`
	Tone                Tone                 `json:"tone"`
	SpeakingPace        Pace                 `json:"speaking_pace"`
}

// Style is the part of a profile the translator conditions on.
type Style struct {
	Tone Tone
	Pace Pace
}

// NeutralStyle is used for speakers that have no profile.
var NeutralStyle = Style{Tone: ToneNeutral, Pace: PaceModerate}

// Style returns the tone and pace the translator conditions on.
func (p Profile) Style() Style {
	return Style{Tone: p.Tone, Pace: p.SpeakingPace}
}

// StyleFor looks up id in profiles and falls back to NeutralStyle.
func StyleFor(profiles map[transcript.SpeakerID]Profile, id transcript.SpeakerID) Style {
	if p, ok := profiles[id]; ok {
		return p.Style()
	}
	return NeutralStyle
}

// Classify derives the tone and pace labels from averaged features.
func Classify(avgPitch, avgTempo, pitchThreshold, tempoThreshold float64) (Tone, Pace) {
	tone := ToneLower
	if avgPitch > pitchThreshold {
		tone = ToneHigher
	}
	pace := PaceModerateSlow
	if avgTempo > tempoThreshold {
		pace = PaceFast
	}
	return tone, pace
}
