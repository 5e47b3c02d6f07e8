package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func openaiAgainst(t *testing.T, srv *httptest.Server) *OpenAIProvider {
	t.Helper()
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-mini", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 20, "completion_tokens": 8, "total_tokens": 28},
	}
}

func TestOpenAIProvider_StructuredOutput(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, chatCompletion(`{"symbol":"b","dominant":false}`, "stop"))
	p := openaiAgainst(t, srv)
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}

	resp, err := p.Generate(context.Background(), Request{
		System:   "You are a genetics tutor.",
		Messages: UserMessage("Name a recessive allele."),
		Schema:   alleleSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.TotalTokens != 28 || resp.StopReason != "end" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestOpenAIProvider_SchemaMismatch(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, chatCompletion(`{"symbol":"b"}`, "stop"))
	_, err := openaiAgainst(t, srv).Generate(context.Background(), Request{
		Messages: UserMessage("x"), Schema: alleleSchema(),
	})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	body := chatCompletion("", "stop")
	body["choices"] = []any{}
	srv := serveJSON(t, http.StatusOK, body)
	_, err := openaiAgainst(t, srv).Generate(context.Background(), Request{Messages: UserMessage("x")})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusTooManyRequests, func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) }},
		{http.StatusBadGateway, func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }},
	}
	for _, tt := range tests {
		srv := serveJSON(t, tt.status, map[string]any{
			"error": map[string]any{"type": "server_error", "message": "nope"},
		})
		_, err := openaiAgainst(t, srv).Generate(context.Background(), Request{Messages: UserMessage("x")})
		if err == nil || !tt.check(err) {
			t.Errorf("status %d: got %T (%v)", tt.status, err, err)
		}
	}
}
