package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/custodia-labs/docfinder/internal/core/domain"
)

func TestNewOpenAIGenerator_RequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIGenerator("", "gpt-4o-mini", "", 0)
	if !errors.Is(err, domain.ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNewOpenAIGenerator_Defaults(t *testing.T) {
	gen, err := NewOpenAIGenerator("sk-test", "", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gen.model != "gpt-4o-mini" {
		t.Errorf("expected default model gpt-4o-mini, got %s", gen.model)
	}
	if gen.baseURL != "https://api.openai.com/v1" {
		t.Errorf("expected default base URL, got %s", gen.baseURL)
	}
	if gen.client.Timeout <= 0 {
		t.Error("expected a client timeout")
	}
}

func TestNewOpenAIGenerator_CustomBaseURL(t *testing.T) {
	gen, err := NewOpenAIGenerator("sk-test", "gpt-4o-mini", "https://custom.api.com/v1/", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gen.baseURL != "https://custom.api.com/v1" {
		t.Errorf("expected trimmed custom base URL, got %s", gen.baseURL)
	}
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("expected bearer token, got %s", r.Header.Get("Authorization"))
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Model != "gpt-4o-mini" {
			t.Errorf("expected model gpt-4o-mini, got %s", req.Model)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "hello" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"  hi there  "},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	gen, err := NewOpenAIGenerator("sk-test", "gpt-4o-mini", server.URL, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer gen.Close()

	text, err := gen.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hi there" {
		t.Errorf("expected 'hi there', got %q", text)
	}
	if gen.Model() != "gpt-4o-mini" {
		t.Errorf("expected model gpt-4o-mini, got %s", gen.Model())
	}
}

func TestOpenAIGenerator_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API key","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer server.Close()

	gen, _ := NewOpenAIGenerator("sk-bad", "", server.URL, 0)

	_, err := gen.Generate(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Invalid API key") {
		t.Errorf("expected API error message, got %v", err)
	}
}

func TestOpenAIGenerator_NonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	gen, _ := NewOpenAIGenerator("sk-test", "", server.URL, 0)

	_, err := gen.Generate(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Errorf("expected status 502 error, got %v", err)
	}
}

func TestOpenAIGenerator_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	gen, _ := NewOpenAIGenerator("sk-test", "", server.URL, 0)

	if _, err := gen.Generate(context.Background(), "hello"); err == nil {
		t.Error("expected error for empty choices")
	}
}
