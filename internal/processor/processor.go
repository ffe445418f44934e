package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
	"github.com/nguyentantai21042004/podcast-flow/internal/metrics"
	"github.com/nguyentantai21042004/podcast-flow/internal/speaker"
	"github.com/nguyentantai21042004/podcast-flow/internal/transcriber"
	"github.com/nguyentantai21042004/podcast-flow/internal/transcript"
	"github.com/nguyentantai21042004/podcast-flow/internal/translator"
)

// Process runs transcription, speaker analysis and translation on one file.
// Only missing input, missing credentials, transcription and audio decoding are fatal;
// per-segment analysis and translation failures are absorbed by their stages, and an
// export failure is logged while the result is still returned.
func (p *implProcessor) Process(ctx context.Context, audioPath string, info *translator.PodcastInfo) (res *Result, err error) {
	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)
	startTime := time.Now()

	exportFailed := false
	defer func() {
		outcome := "success"
		switch {
		case err != nil:
			outcome = "failure"
		case exportFailed:
			outcome = "partial"
		}
		metrics.RunsTotal.WithLabelValues(outcome).Inc()
	}()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting podcast processing: %s", audioPath)
	p.logger.Info(ctx, "========================================")

	if _, err := os.Stat(audioPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", transcriber.ErrAudioNotFound, audioPath)
		}
		return nil, fmt.Errorf("stat audio: %w", err)
	}
	if err := p.cfg.CheckCredentials(); err != nil {
		return nil, err
	}

	// Step 1: Transcribe and diarize
	var t transcript.Transcript
	err = p.stage("transcribe", func() error {
		var terr error
		t, terr = p.stages.Transcriber.Transcribe(ctx, transcriber.Request{
			AudioPath:   audioPath,
			Language:    p.cfg.Transcription.Language,
			MinSpeakers: p.cfg.Transcription.MinSpeakers,
			MaxSpeakers: p.cfg.Transcription.MaxSpeakers,
		})
		return terr
	})
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	if verr := t.Validate(); verr != nil {
		p.logger.Warn(ctx, "Transcript failed validation, continuing: %v", verr)
	}
	p.logStats(ctx, t)

	// Step 2: Speaker profiles
	var profiles map[transcript.SpeakerID]speaker.Profile
	err = p.stage("analyze", func() error {
		buf, lerr := p.loadAudio(ctx, audioPath)
		if lerr != nil {
			return lerr
		}
		profiles = p.stages.Aggregator.Aggregate(ctx, buf.Samples, buf.SampleRate, t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("analyze speakers: %w", err)
	}
	for _, id := range t.Speakers() {
		if prof, ok := profiles[id]; ok {
			p.logger.Info(ctx, "Speaker %s: %d samples, pitch %.1f Hz, tempo %.1f BPM -> %s, %s",
				id, prof.SampleCount, prof.AvgPitch, prof.AvgTempo, prof.Tone, prof.SpeakingPace)
		} else {
			p.logger.Warn(ctx, "Speaker %s has no usable audio, translating with neutral style", id)
		}
	}

	// Step 3: Translate
	var translated []translator.Segment
	p.observe("translate", func() {
		translated = p.stages.Translator.Translate(ctx, t, profiles, info)
	})

	res = &Result{
		RunID:              runID,
		Transcript:         t,
		SpeakerData:        profiles,
		TranslatedSegments: translated,
	}

	// Step 4: Export
	outputs, xerr := p.export(ctx, audioPath, info, res)
	if xerr != nil {
		exportFailed = true
		p.logger.Error(ctx, "Export failed, result kept in memory only: %v", xerr)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Segments: %d, speakers profiled: %d", len(t), len(profiles))
	for _, o := range outputs {
		p.logger.Info(ctx, "Output: %s", o)
	}
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return res, nil
}

// Handle adapts Process to the watcher. The source is archived only after a successful run.
func (p *implProcessor) Handle(ctx context.Context, audioPath string) error {
	if _, err := p.Process(ctx, audioPath, nil); err != nil {
		return err
	}
	if err := p.moveToArchived(ctx, audioPath); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}
	return nil
}

func (p *implProcessor) stage(name string, fn func() error) error {
	var err error
	p.observe(name, func() { err = fn() })
	return err
}

// observe times a stage that cannot fail.
func (p *implProcessor) observe(name string, fn func()) {
	start := time.Now()
	fn()
	metrics.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}

func (p *implProcessor) logStats(ctx context.Context, t transcript.Transcript) {
	st := transcript.ComputeStats(t)
	p.logger.Info(ctx, "Transcript: %d segments, %d speakers, %d turns", len(t), len(st.Speakers), len(st.Turns))
	for _, s := range st.Speakers {
		p.logger.Info(ctx, "Speaker %s: %d segments, %.2fs (%.1f%%), %d words, %.1f words/segment, %.2fs/segment",
			s.Speaker, s.Segments, s.TotalDuration, s.Share*100, s.TotalWords, s.AvgWords(), s.AvgDuration())
	}
}
