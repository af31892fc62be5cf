package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"luxestandard/internal/config"
)

func testConfig(endpoint string) config.LLMConfig {
	return config.LLMConfig{
		Endpoint:    endpoint,
		Model:       "gpt-4o-mini",
		APIKey:      "test-key",
		MaxTokens:   2048,
		Temperature: 0.75,
	}
}

func TestCompleteSendsChatPayload(t *testing.T) {
	t.Parallel()

	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "generated text"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	out, err := client.Complete(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if out != "generated text" {
		t.Fatalf("unexpected completion: %q", out)
	}

	if got["model"] != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %v", got["model"])
	}
	messages, ok := got["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %v", got["messages"])
	}
	first := messages[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "system prompt" {
		t.Fatalf("unexpected system message: %v", first)
	}
}

func TestCompleteSurfacesAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	if _, err := client.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected an error for a 429 response")
	}
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	if _, err := client.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected an error for an empty choices list")
	}
}

func TestCompleteRequiresConfiguration(t *testing.T) {
	t.Parallel()

	client := NewClient(config.LLMConfig{})
	if _, err := client.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected a misconfiguration error")
	}
}
