package transcriber

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
	"github.com/nguyentantai21042004/podcast-flow/internal/transcript"
	"github.com/nguyentantai21042004/podcast-flow/pkg/executor"
)

//go:embed assets/whisperx_transcribe.py
var whisperxScript []byte

// WhisperXOptions configures the embedded whisperx helper.
type WhisperXOptions struct {
	Python      string
	Model       string
	Device      string // auto | cpu | cuda
	ComputeType string
	BatchSize   int
	HFToken     string
	TempDir     string
}

// WhisperX runs transcription, diarization and speaker assignment in a python helper.
type WhisperX struct {
	executor executor.Executor
	logger   logger.Logger
	opts     WhisperXOptions
}

func NewWhisperX(exec executor.Executor, log logger.Logger, opts WhisperXOptions) *WhisperX {
	if opts.Python == "" {
		opts.Python = "python3"
	}
	if opts.Device == "" {
		opts.Device = "auto"
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 16
	}
	return &WhisperX{executor: exec, logger: log, opts: opts}
}

func (w *WhisperX) Transcribe(ctx context.Context, req Request) (transcript.Transcript, error) {
	if err := checkAudio(req.AudioPath); err != nil {
		return nil, err
	}

	if w.opts.TempDir != "" {
		if err := os.MkdirAll(w.opts.TempDir, 0755); err != nil {
			return nil, fmt.Errorf("create temp dir: %w", err)
		}
	}
	script, err := os.CreateTemp(w.opts.TempDir, "whisperx-*.py")
	if err != nil {
		return nil, fmt.Errorf("create helper script: %w", err)
	}
	defer os.Remove(script.Name())
	if _, err := script.Write(whisperxScript); err != nil {
		script.Close()
		return nil, fmt.Errorf("write helper script: %w", err)
	}
	if err := script.Close(); err != nil {
		return nil, fmt.Errorf("write helper script: %w", err)
	}

	w.logger.Info(ctx, "Transcribing %s with whisperx (model %s, language %s, speakers %d-%d)",
		req.AudioPath, w.opts.Model, req.Language, req.MinSpeakers, req.MaxSpeakers)

	args := []string{
		script.Name(),
		"--audio", req.AudioPath,
		"--model", w.opts.Model,
		"--device", w.opts.Device,
		"--compute-type", w.opts.ComputeType,
		"--batch-size", strconv.Itoa(w.opts.BatchSize),
		"--language", req.Language,
		"--min-speakers", strconv.Itoa(req.MinSpeakers),
		"--max-speakers", strconv.Itoa(req.MaxSpeakers),
	}

	out, err := w.executor.Run(ctx, executor.Command{
		Name: w.opts.Python,
		Args: args,
		Env:  []string{"HF_TOKEN=" + w.opts.HFToken},
	})
	if err != nil {
		return nil, fmt.Errorf("whisperx: %w", err)
	}

	t, err := decodeResponse(strings.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("whisperx: %w", err)
	}
	w.logger.Info(ctx, "Transcription completed. Found %d segments.", len(t))
	return t, nil
}
