package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/v2/option"
)

func TestOpenAIComplete(t *testing.T) {
	var body struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":" 你好，欢迎收听 "}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAI("sk-test", srv.URL, "gpt-4o", option.WithMaxRetries(0))
	got, err := p.Complete(context.Background(), Request{System: "sys", User: "hello and welcome"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "你好，欢迎收听" {
		t.Errorf("Complete() = %q", got)
	}

	if body.Model != "gpt-4o" || len(body.Messages) != 2 {
		t.Fatalf("request body = %+v", body)
	}
	if body.Messages[0].Role != "system" || body.Messages[0].Content != "sys" {
		t.Errorf("system message = %+v", body.Messages[0])
	}
	if body.Messages[1].Role != "user" || body.Messages[1].Content != "hello and welcome" {
		t.Errorf("user message = %+v", body.Messages[1])
	}
}

func TestOpenAIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`},
		{"no choices", http.StatusOK, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o","choices":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewOpenAI("sk-test", srv.URL, "gpt-4o", option.WithMaxRetries(0))
			if _, err := p.Complete(context.Background(), Request{User: "x"}); err == nil {
				t.Error("Complete() should fail")
			}
		})
	}
}
