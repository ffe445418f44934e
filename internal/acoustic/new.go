package acoustic

const (
	frameLength = 2048
	hopLength   = 512

	minPitchHz   = 75
	maxPitchHz   = 600
	yinThreshold = 0.1

	minBPM = 60
	maxBPM = 200
	// tempo prior is a log-normal centred here, one octave wide
	priorBPM = 120
	// an octave-related peak is reported too when it scores at least this fraction of the best
	runnerUpRatio   = 0.9
	octaveTolerance = 0.05

	// frames quieter than this RMS are treated as silence
	silenceRMS = 1e-4
)

type implExtractor struct{}

// New creates the in-process extractor.
func New() Extractor {
	return &implExtractor{}
}
