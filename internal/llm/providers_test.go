package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
)

const wordListJSON = `{"words":[{"text":"comet","definition":"an icy body that orbits the sun","example":"We saw a comet.","emoji":"☄️"}]}`

func jsonHandler(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func newTestAnthropic(t *testing.T, h http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func anthropicReply(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropicProvider_Generate(t *testing.T) {
	p := newTestAnthropic(t, jsonHandler(http.StatusOK, anthropicReply(wordListJSON, "end_turn")))
	if p.ModelID() != "claude-haiku-4-5-20251001" {
		t.Fatalf("ModelID() = %q, alias not resolved", p.ModelID())
	}

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write words for young children.",
		Messages:  []Message{{Role: RoleUser, Content: "Theme: space"}},
		Schema:    wordListSchema(),
		MaxTokens: 512,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Usage.TotalTokens != 80 {
		t.Errorf("TotalTokens = %d, want 80", resp.Usage.TotalTokens)
	}
	if resp.StopReason != StopEnd {
		t.Errorf("StopReason = %q, want %q", resp.StopReason, StopEnd)
	}
}

func TestAnthropicProvider_SchemaMismatch(t *testing.T) {
	p := newTestAnthropic(t, jsonHandler(http.StatusOK, anthropicReply(`{"words":"none"}`, "end_turn")))
	_, err := p.Generate(context.Background(), Request{Schema: wordListSchema(), MaxTokens: 64})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestAnthropicProvider_Truncated(t *testing.T) {
	p := newTestAnthropic(t, jsonHandler(http.StatusOK, anthropicReply(`{"words":[`, "max_tokens")))
	_, err := p.Generate(context.Background(), Request{Schema: wordListSchema(), MaxTokens: 8})
	var truncated *ErrMaxTokensExceeded
	if !errors.As(err, &truncated) {
		t.Fatalf("error = %v, want ErrMaxTokensExceeded", err)
	}
}

func TestAnthropicProvider_ErrorStatus(t *testing.T) {
	body := map[string]any{"type": "error", "error": map[string]any{"type": "api_error", "message": "nope"}}
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusTooManyRequests, func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) }},
		{http.StatusInternalServerError, func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }},
	}
	for _, tt := range tests {
		p := newTestAnthropic(t, jsonHandler(tt.status, body))
		_, err := p.Generate(context.Background(), Request{MaxTokens: 16})
		if !tt.check(err) {
			t.Errorf("status %d: unexpected error %T (%v)", tt.status, err, err)
		}
	}
}

func TestNewAnthropicProvider_RequiresKey(t *testing.T) {
	if _, err := NewAnthropicProvider(AnthropicConfig{}); err == nil {
		t.Fatal("expected error without API key")
	}
}

func newTestOpenAI(t *testing.T, h http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func openaiReply(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1741597200,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	var got map[string]any
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		jsonHandler(http.StatusOK, openaiReply(wordListJSON, "stop"))(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write words for young children.",
		Messages:  []Message{{Role: RoleUser, Content: "Theme: space"}},
		Schema:    wordListSchema(),
		MaxTokens: 512,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Errorf("Usage = %+v", resp.Usage)
	}
	if msgs, _ := got["messages"].([]any); len(msgs) != 2 {
		t.Errorf("sent %d messages, want system + user", len(msgs))
	}
	if format, _ := got["response_format"].(map[string]any); format["type"] != "json_schema" {
		t.Errorf("response_format = %v, want json_schema", got["response_format"])
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	reply := openaiReply("", "stop")
	reply["choices"] = []any{}
	p := newTestOpenAI(t, jsonHandler(http.StatusOK, reply))

	_, err := p.Generate(context.Background(), Request{})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	p := newTestOpenAI(t, jsonHandler(http.StatusTooManyRequests, map[string]any{
		"error": map[string]any{"message": "slow down", "type": "rate_limit_exceeded"},
	}))
	_, err := p.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("error = %T (%v), want ErrRateLimit", err, err)
	}
}

func TestNewOpenRouterProvider(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "anthropic/claude-3-haiku" {
		t.Errorf("ModelID() = %q, model ids pass through unchanged", p.ModelID())
	}

	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x"}); err == nil {
		t.Error("expected error without API key")
	}
}

func TestToGeminiSchema(t *testing.T) {
	s := toGeminiSchema(wordListSchema().Definition)

	if s.Type != "OBJECT" {
		t.Fatalf("Type = %s, want OBJECT", s.Type)
	}
	list := s.Properties["words"]
	if list == nil || list.Type != "ARRAY" {
		t.Fatalf("words = %+v, want ARRAY", list)
	}
	if list.MinItems == nil || *list.MinItems != 1 {
		t.Errorf("MinItems = %v, want 1", list.MinItems)
	}
	item := list.Items
	if item.Properties["text"].Type != "STRING" {
		t.Errorf("text type = %s", item.Properties["text"].Type)
	}
	if len(item.Required) != 3 {
		t.Errorf("Required = %v, want text, definition, example", item.Required)
	}
	if got := resolveModel("gemini-flash", geminiAliases); got != "gemini-2.0-flash" {
		t.Errorf("resolveModel(gemini-flash) = %q", got)
	}
}
