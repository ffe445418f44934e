package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Paths: PathsConfig{Input: "data/input", Output: "data/output"},
			},
			wantErr: false,
		},
		{
			name: "missing paths",
			config: Config{
				Paths: PathsConfig{},
			},
			wantErr: true,
		},
		{
			name: "negative pitch threshold",
			config: Config{
				Analysis: AnalysisConfig{PitchThreshold: -1},
				Paths:    PathsConfig{Input: "in", Output: "out"},
			},
			wantErr: true,
		},
		{
			name: "service provider without url",
			config: Config{
				Transcription: TranscriptionConfig{Provider: "service"},
				Paths:         PathsConfig{Input: "in", Output: "out"},
			},
			wantErr: true,
		},
		{
			name: "unknown translation engine",
			config: Config{
				Translation: TranslationConfig{Engine: "babelfish"},
				Paths:       PathsConfig{Input: "in", Output: "out"},
			},
			wantErr: true,
		},
		{
			name: "inverted speaker range",
			config: Config{
				Transcription: TranscriptionConfig{MinSpeakers: 3, MaxSpeakers: 2},
				Paths:         PathsConfig{Input: "in", Output: "out"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Paths: PathsConfig{Input: "in", Output: "out"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Analysis.PitchThreshold != 180 {
		t.Errorf("PitchThreshold = %v, want 180", cfg.Analysis.PitchThreshold)
	}
	if cfg.Analysis.TempoThreshold != 120 {
		t.Errorf("TempoThreshold = %v, want 120", cfg.Analysis.TempoThreshold)
	}
	if cfg.Analysis.FallbackPitch != 160 {
		t.Errorf("FallbackPitch = %v, want 160", cfg.Analysis.FallbackPitch)
	}
	if cfg.Transcription.MinSpeakers != 2 || cfg.Transcription.MaxSpeakers != 2 {
		t.Errorf("speaker range = [%d,%d], want [2,2]", cfg.Transcription.MinSpeakers, cfg.Transcription.MaxSpeakers)
	}
	if cfg.Translation.Engine != "openai" || cfg.Translation.OpenAIModel != "gpt-4o" {
		t.Errorf("translation = %+v", cfg.Translation)
	}
	if cfg.Audio.SampleRate != 22050 {
		t.Errorf("SampleRate = %d, want 22050", cfg.Audio.SampleRate)
	}
}

func TestCheckCredentials(t *testing.T) {
	cfg := Config{Paths: PathsConfig{Input: "in", Output: "out"}}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if err := cfg.CheckCredentials(); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("CheckCredentials() error = %v, want ErrMissingCredentials", err)
	}

	cfg.Credentials = Credentials{OpenAIKey: "sk-test", HFToken: "hf_test"}
	if err := cfg.CheckCredentials(); err != nil {
		t.Errorf("CheckCredentials() error = %v", err)
	}

	cfg.Translation.Engine = "gemini"
	if err := cfg.CheckCredentials(); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("gemini without keys: error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
transcription:
  provider: "whisperx"
  language: "en"
  min_speakers: 2
  max_speakers: 3

translation:
  engine: "gemini"
  workers: 4

paths:
  input: "data/input"
  output: "data/output"

logging:
  level: "debug"
  format: "json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("GEMINI_API_KEYS", "key-a, key-b,,")
	t.Setenv("HF_TOKEN", "hf_x")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.Input != "data/input" {
		t.Errorf("Input = %v, want %v", cfg.Paths.Input, "data/input")
	}
	if cfg.Transcription.MaxSpeakers != 3 {
		t.Errorf("MaxSpeakers = %d, want 3", cfg.Transcription.MaxSpeakers)
	}
	if cfg.Translation.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Translation.Workers)
	}
	if len(cfg.Credentials.GeminiKeys) != 2 || cfg.Credentials.GeminiKeys[1] != "key-b" {
		t.Errorf("GeminiKeys = %v", cfg.Credentials.GeminiKeys)
	}
	if err := cfg.CheckCredentials(); err != nil {
		t.Errorf("CheckCredentials() error = %v", err)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
