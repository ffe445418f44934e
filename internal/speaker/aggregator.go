package speaker

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/nguyentantai21042004/podcast-flow/internal/metrics"
	"github.com/nguyentantai21042004/podcast-flow/internal/transcript"
	"github.com/nguyentantai21042004/podcast-flow/pkg/semaphore"
)

const (
	skipBounds    = "bounds"
	skipPastEnd   = "past_end"
	skipExtract   = "extract_error"
	skipNoTempo   = "no_tempo"
	skipCancelled = "cancelled"
)

// sample is one segment's contribution, or the reason it has none.
type sample struct {
	pitch    float64
	tempo    float64
	centroid float64
	skip     string
}

// runningMean keeps (count, mean) and updates in the Welford form so large counts never
// multiply back up into a sum.
type runningMean struct {
	n    int
	mean float64
}

func (r *runningMean) add(x float64) {
	r.n++
	r.mean += (x - r.mean) / float64(r.n)
}

type accumulator struct {
	pitch, tempo, centroid runningMean
}

func (a *accumulator) merge(s sample) {
	a.pitch.add(s.pitch)
	a.tempo.add(s.tempo)
	a.centroid.add(s.centroid)
}

// Aggregate extracts features per segment (bounded by Options.Workers), then merges them
// in transcript order and classifies each speaker once.
func (a *implAggregator) Aggregate(ctx context.Context, samples []float64, sampleRate int, t transcript.Transcript) map[transcript.SpeakerID]Profile {
	results := a.extractAll(ctx, samples, sampleRate, t)

	acc := make(map[transcript.SpeakerID]*accumulator)
	for i, r := range results {
		seg := t[i]
		if r.skip != "" {
			metrics.SegmentsSkipped.WithLabelValues(r.skip).Inc()
			continue
		}
		sa, ok := acc[seg.Speaker]
		if !ok {
			sa = &accumulator{}
			acc[seg.Speaker] = sa
		}
		sa.merge(r)
		metrics.SegmentsAggregated.Inc()
	}

	profiles := make(map[transcript.SpeakerID]Profile, len(acc))
	for id, sa := range acc {
		tone, pace := Classify(sa.pitch.mean, sa.tempo.mean, a.opts.PitchThreshold, a.opts.TempoThreshold)
		profiles[id] = Profile{
			Speaker:             id,
			SampleCount:         sa.pitch.n,
			AvgPitch:            sa.pitch.mean,
			AvgTempo:            sa.tempo.mean,
			AvgSpectralCentroid: sa.centroid.mean,
			Tone:                tone,
			SpeakingPace:        pace,
		}
	}

	a.logger.Info(ctx, "Speaker analysis complete: %d segments, %d speakers", len(t), len(profiles))
	return profiles
}

func (a *implAggregator) extractAll(ctx context.Context, samples []float64, sampleRate int, t transcript.Transcript) []sample {
	results := make([]sample, len(t))
	sem := semaphore.New(a.opts.Workers)
	var wg sync.WaitGroup

	for i, seg := range t {
		lo, hi, reason := bounds(seg, sampleRate, len(samples))
		if reason != "" {
			a.logger.Debug(ctx, "Skipping segment %d (%s): %.2f-%.2fs", i, reason, seg.Start, seg.End)
			results[i].skip = reason
			continue
		}

		if err := acquire(ctx, sem); err != nil {
			for j := i; j < len(t); j++ {
				if results[j].skip == "" {
					results[j].skip = skipCancelled
				}
			}
			break
		}
		wg.Add(1)
		go func(i int, seg transcript.Segment, slice []float64) {
			defer wg.Done()
			defer sem.Release()
			results[i] = a.extract(ctx, i, seg, slice, sampleRate)
		}(i, seg, samples[lo:hi])
	}

	wg.Wait()
	return results
}

func acquire(ctx context.Context, sem *semaphore.Semaphore) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return sem.Acquire(ctx)
}

// bounds converts segment times to a sample range, or returns why the segment is unusable.
func bounds(seg transcript.Segment, sampleRate, total int) (int, int, string) {
	lo := int(math.Floor(seg.Start * float64(sampleRate)))
	hi := int(math.Floor(seg.End * float64(sampleRate)))
	if hi <= lo || lo < 0 {
		return 0, 0, skipBounds
	}
	if hi > total {
		return 0, 0, skipPastEnd
	}
	return lo, hi, ""
}

func (a *implAggregator) extract(ctx context.Context, i int, seg transcript.Segment, slice []float64, sampleRate int) sample {
	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}

	f, err := a.extractor.Extract(ctx, slice, sampleRate)
	if err != nil {
		a.logger.Warn(ctx, "Error analyzing segment %d for speaker %s: %v", i, seg.Speaker, err)
		return sample{skip: skipExtract}
	}

	tempo, ok := collapseTempo(f.Tempo)
	if !ok {
		a.logger.Warn(ctx, "No tempo estimate for segment %d (speaker %s)", i, seg.Speaker)
		return sample{skip: skipNoTempo}
	}

	return sample{
		pitch:    resolvePitch(f.Pitch, a.opts.FallbackPitch),
		tempo:    tempo,
		centroid: f.SpectralCentroid,
	}
}

// resolvePitch averages the defined estimates, or returns fallback when none are defined.
func resolvePitch(estimates []float64, fallback float64) float64 {
	var sum float64
	var n int
	for _, p := range estimates {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			continue
		}
		sum += p
		n++
	}
	if n == 0 {
		return fallback
	}
	return sum / float64(n)
}

// collapseTempo reduces multi-valued tempo estimates to their median.
func collapseTempo(candidates []float64) (float64, bool) {
	valid := make([]float64, 0, len(candidates))
	for _, c := range candidates {
		if c > 0 && !math.IsInf(c, 0) {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		return 0, false
	}
	sort.Float64s(valid)
	mid := len(valid) / 2
	if len(valid)%2 == 1 {
		return valid[mid], true
	}
	return (valid[mid-1] + valid[mid]) / 2, true
}
