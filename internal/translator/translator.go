package translator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/nguyentantai21042004/podcast-flow/internal/metrics"
	"github.com/nguyentantai21042004/podcast-flow/internal/speaker"
	"github.com/nguyentantai21042004/podcast-flow/internal/transcript"
	"github.com/nguyentantai21042004/podcast-flow/pkg/semaphore"
)

// Translate fills a slot per source index. Workers write only their own slot and profiles
// is only read, so any worker count yields the same ordering.
func (tr *implTranslator) Translate(ctx context.Context, t transcript.Transcript, profiles map[transcript.SpeakerID]speaker.Profile, info *PodcastInfo) []Segment {
	out := make([]Segment, len(t))
	sem := semaphore.New(tr.opts.Workers)
	var wg sync.WaitGroup

	for i, seg := range t {
		out[i] = Segment{
			Speaker:  seg.Speaker,
			Start:    seg.Start,
			End:      seg.End,
			Original: seg.Text,
		}

		req := BuildRequest(info, speaker.StyleFor(profiles, seg.Speaker), contextWindow(t, i))

		if ctx.Err() != nil {
			out[i].Translated = FailureSentinel
			metrics.TranslationFailures.WithLabelValues("cancelled").Inc()
			continue
		}
		if err := sem.Acquire(ctx); err != nil {
			out[i].Translated = FailureSentinel
			metrics.TranslationFailures.WithLabelValues("cancelled").Inc()
			continue
		}

		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			defer sem.Release()
			out[i].Translated = tr.translateOne(ctx, i, req)
		}(i, req)
	}

	wg.Wait()

	failed := 0
	for _, s := range out {
		if s.Failed() {
			failed++
		}
	}
	tr.logger.Info(ctx, "Translation complete for %d segments (%d failed)", len(out), failed)
	return out
}

// translateOne never returns an error: any failure becomes FailureSentinel.
func (tr *implTranslator) translateOne(ctx context.Context, i int, req Request) string {
	if tr.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, tr.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := tr.provider.Complete(ctx, req)
	metrics.TranslationDuration.Observe(time.Since(start).Seconds())

	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		tr.logger.Error(ctx, "Error translating segment %d: %v", i, err)
		metrics.TranslationFailures.WithLabelValues(failureReason(err)).Inc()
		return FailureSentinel
	}

	return strings.TrimSpace(text)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, ErrEmptyResponse):
		return "empty"
	default:
		return "provider"
	}
}
