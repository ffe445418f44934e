package main

import (
	"fmt"

	"github.com/nguyentantai21042004/podcast-flow/internal/acoustic"
	"github.com/nguyentantai21042004/podcast-flow/internal/config"
	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
	"github.com/nguyentantai21042004/podcast-flow/internal/processor"
	"github.com/nguyentantai21042004/podcast-flow/internal/speaker"
	"github.com/nguyentantai21042004/podcast-flow/internal/transcriber"
	"github.com/nguyentantai21042004/podcast-flow/internal/translator"
	"github.com/nguyentantai21042004/podcast-flow/pkg/executor"
)

// buildProcessor assembles the pipeline stages selected in cfg.
func buildProcessor(cfg *config.Config, log logger.Logger) (processor.Processor, error) {
	exec := executor.New()

	var tr transcriber.Provider
	switch cfg.Transcription.Provider {
	case "service":
		tr = transcriber.NewService(cfg.Transcription.ServiceURL, log)
	default:
		tr = transcriber.NewWhisperX(exec, log, transcriber.WhisperXOptions{
			Python:      cfg.Transcription.Python,
			Model:       cfg.Transcription.Model,
			Device:      cfg.Transcription.Device,
			ComputeType: cfg.Transcription.ComputeType,
			BatchSize:   cfg.Transcription.BatchSize,
			HFToken:     cfg.Credentials.HFToken,
			TempDir:     cfg.Paths.Temp,
		})
	}

	agg := speaker.New(acoustic.New(), log, speaker.Options{
		PitchThreshold: cfg.Analysis.PitchThreshold,
		TempoThreshold: cfg.Analysis.TempoThreshold,
		FallbackPitch:  cfg.Analysis.FallbackPitch,
		Workers:        cfg.Analysis.Workers,
		Timeout:        cfg.Analysis.Timeout(),
	})

	backends := make(map[string]translator.Provider)
	if cfg.Credentials.OpenAIKey != "" {
		backends["openai"] = translator.NewOpenAI(cfg.Credentials.OpenAIKey, cfg.Translation.OpenAIBaseURL, cfg.Translation.OpenAIModel)
	}
	if len(cfg.Credentials.GeminiKeys) > 0 {
		backends["gemini"] = translator.NewGemini(cfg.Credentials.GeminiKeys, cfg.Translation.GeminiModel, log)
	}
	router, err := translator.NewRouter(backends, cfg.Translation.Engine, cfg.Translation.FallbackEngine, log)
	if err != nil {
		return nil, fmt.Errorf("translation: %w: %v", config.ErrMissingCredentials, err)
	}

	tl := translator.New(router, log, translator.Options{
		Workers: cfg.Translation.Workers,
		Timeout: cfg.Translation.Timeout(),
	})

	return processor.New(cfg, exec, log, processor.Stages{
		Transcriber: tr,
		Aggregator:  agg,
		Translator:  tl,
	}), nil
}
