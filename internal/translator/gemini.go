package translator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
)

type generateFunc func(ctx context.Context, apiKey string, req Request) (string, error)

// Gemini calls the Gemini API, rotating through API keys on 429 / quota errors.
type Gemini struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	clients    map[string]*genai.Client
	model      string
	logger     logger.Logger
	generate   generateFunc
}

// NewGemini creates a provider that rotates through the supplied Gemini API keys.
func NewGemini(apiKeys []string, model string, log logger.Logger) *Gemini {
	g := &Gemini{
		apiKeys: apiKeys,
		clients: make(map[string]*genai.Client),
		model:   model,
		logger:  log,
	}
	g.generate = g.callGemini
	return g
}

func (g *Gemini) Complete(ctx context.Context, req Request) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("gemini: no API keys configured")
	}

	var lastErr error
	for range len(g.apiKeys) {
		idx, key := g.key()

		text, err := g.generate(ctx, key, req)
		if err == nil {
			if strings.TrimSpace(text) == "" {
				return "", ErrEmptyResponse
			}
			return text, nil
		}
		if !isRateLimited(err) {
			return "", fmt.Errorf("generate content: %w", err)
		}

		g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
		g.rotateFrom(idx)
		lastErr = err
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *Gemini) callGemini(ctx context.Context, apiKey string, req Request) (string, error) {
	client, err := g.client(ctx, apiKey)
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(req.User), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
	})
	if err != nil {
		return "", err
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part != nil && part.Text != "" {
				text += part.Text
			}
		}
		return text, nil
	}

	return "", ErrEmptyResponse
}

func (g *Gemini) client(ctx context.Context, apiKey string) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.clients[apiKey]; ok {
		return c, nil
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	g.clients[apiKey] = c
	return c, nil
}

func (g *Gemini) key() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

// rotateFrom advances past idx unless another worker already rotated.
func (g *Gemini) rotateFrom(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
