package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path, applies defaults and pulls credentials from the environment.
func Load(path string) (*Config, error) {
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		path = env
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	cfg.Credentials = credentialsFromEnv()
	return &cfg, nil
}

func credentialsFromEnv() Credentials {
	creds := Credentials{
		OpenAIKey: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		HFToken:   strings.TrimSpace(os.Getenv("HF_TOKEN")),
	}
	for _, k := range strings.Split(os.Getenv("GEMINI_API_KEYS"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			creds.GeminiKeys = append(creds.GeminiKeys, k)
		}
	}
	return creds
}
