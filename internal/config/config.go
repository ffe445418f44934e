package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingCredentials is returned when the selected providers have no API key.
var ErrMissingCredentials = errors.New("missing credentials")

type Config struct {
	Transcription TranscriptionConfig `yaml:"transcription"`
	Audio         AudioConfig         `yaml:"audio"`
	Analysis      AnalysisConfig      `yaml:"analysis"`
	Translation   TranslationConfig   `yaml:"translation"`
	Paths         PathsConfig         `yaml:"paths"`
	Export        ExportConfig        `yaml:"export"`
	Logging       LoggingConfig       `yaml:"logging"`
	Metrics       MetricsConfig       `yaml:"metrics"`
	Performance   PerformanceConfig   `yaml:"performance"`

	Credentials Credentials `yaml:"-"`
}

type TranscriptionConfig struct {
	Provider    string `yaml:"provider"` // whisperx | service
	ServiceURL  string `yaml:"service_url"`
	Python      string `yaml:"python"`
	Model       string `yaml:"model"`
	Device      string `yaml:"device"`
	ComputeType string `yaml:"compute_type"`
	BatchSize   int    `yaml:"batch_size"`
	Language    string `yaml:"language"`
	MinSpeakers int    `yaml:"min_speakers"`
	MaxSpeakers int    `yaml:"max_speakers"`
}

type AudioConfig struct {
	SampleRate int    `yaml:"sample_rate"`
	FFmpegPath string `yaml:"ffmpeg_path"`
}

// AnalysisConfig values of 0 mean "use the default"; thresholds and the fallback pitch
// must be positive.
type AnalysisConfig struct {
	PitchThreshold float64 `yaml:"pitch_threshold"`
	TempoThreshold float64 `yaml:"tempo_threshold"`
	FallbackPitch  float64 `yaml:"fallback_pitch"`
	Workers        int     `yaml:"workers"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

type TranslationConfig struct {
	Engine         string `yaml:"engine"` // openai | gemini
	FallbackEngine string `yaml:"fallback_engine"`
	OpenAIModel    string `yaml:"openai_model"`
	OpenAIBaseURL  string `yaml:"openai_base_url"`
	GeminiModel    string `yaml:"gemini_model"`
	Workers        int    `yaml:"workers"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type ExportConfig struct {
	JSON bool `yaml:"json"`
	Docx bool `yaml:"docx"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Credentials are read from the environment only, never from the YAML file.
type Credentials struct {
	OpenAIKey  string
	GeminiKeys []string
	HFToken    string
}

func (c *Config) Validate() error {
	switch c.Transcription.Provider {
	case "":
		c.Transcription.Provider = "whisperx"
	case "whisperx":
	case "service":
		if c.Transcription.ServiceURL == "" {
			return fmt.Errorf("transcription.service_url is required for the service provider")
		}
	default:
		return fmt.Errorf("transcription.provider %q is not supported", c.Transcription.Provider)
	}

	switch c.Translation.Engine {
	case "":
		c.Translation.Engine = "openai"
	case "openai", "gemini":
	default:
		return fmt.Errorf("translation.engine %q is not supported", c.Translation.Engine)
	}

	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Transcription.MinSpeakers < 0 || c.Transcription.MaxSpeakers < 0 {
		return fmt.Errorf("transcription speaker range must not be negative")
	}
	if c.Transcription.MinSpeakers == 0 {
		c.Transcription.MinSpeakers = 2
	}
	if c.Transcription.MaxSpeakers == 0 {
		c.Transcription.MaxSpeakers = c.Transcription.MinSpeakers
	}
	if c.Transcription.MaxSpeakers < c.Transcription.MinSpeakers {
		return fmt.Errorf("transcription.max_speakers must be >= min_speakers")
	}

	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Transcription.Python == "" {
		c.Transcription.Python = "python3"
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = "large-v2"
	}
	if c.Transcription.Device == "" {
		c.Transcription.Device = "auto"
	}
	if c.Transcription.ComputeType == "" {
		c.Transcription.ComputeType = "float32"
	}
	if c.Transcription.BatchSize == 0 {
		c.Transcription.BatchSize = 16
	}
	if c.Transcription.Language == "" {
		c.Transcription.Language = "en"
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 22050
	}
	if c.Audio.FFmpegPath == "" {
		c.Audio.FFmpegPath = "ffmpeg"
	}
	if c.Analysis.PitchThreshold < 0 || c.Analysis.TempoThreshold < 0 || c.Analysis.FallbackPitch < 0 {
		return fmt.Errorf("analysis thresholds and fallback_pitch must be positive")
	}
	if c.Analysis.PitchThreshold == 0 {
		c.Analysis.PitchThreshold = 180
	}
	if c.Analysis.TempoThreshold == 0 {
		c.Analysis.TempoThreshold = 120
	}
	if c.Analysis.FallbackPitch == 0 {
		c.Analysis.FallbackPitch = 160
	}
	if c.Analysis.Workers == 0 {
		c.Analysis.Workers = 1
	}
	if c.Analysis.TimeoutSeconds == 0 {
		c.Analysis.TimeoutSeconds = 30
	}
	if c.Translation.OpenAIModel == "" {
		c.Translation.OpenAIModel = "gpt-4o"
	}
	if c.Translation.GeminiModel == "" {
		c.Translation.GeminiModel = "gemini-2.5-flash"
	}
	if c.Translation.Workers == 0 {
		c.Translation.Workers = 1
	}
	if c.Translation.TimeoutSeconds == 0 {
		c.Translation.TimeoutSeconds = 60
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}

// CheckCredentials verifies the providers selected in c have the keys they need.
func (c *Config) CheckCredentials() error {
	switch c.Translation.Engine {
	case "openai":
		if c.Credentials.OpenAIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrMissingCredentials)
		}
	case "gemini":
		if len(c.Credentials.GeminiKeys) == 0 {
			return fmt.Errorf("%w: GEMINI_API_KEYS is not set", ErrMissingCredentials)
		}
	}
	if c.Transcription.Provider == "whisperx" && c.Credentials.HFToken == "" {
		return fmt.Errorf("%w: HF_TOKEN is required for diarization", ErrMissingCredentials)
	}
	return nil
}

func (a AnalysisConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

func (t TranslationConfig) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}
