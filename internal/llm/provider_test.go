package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func alleleSchema() *Schema {
	return &Schema{
		Name: "test-allele",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"symbol":   map[string]any{"type": "string"},
				"dominant": map[string]any{"type": "boolean"},
			},
			"required":             []string{"symbol", "dominant"},
			"additionalProperties": false,
		},
	}
}

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: newUsage(10, 5)},
		MockJSON(map[string]int{"b": 2}),
	)

	first, err := mock.Generate(context.Background(), Request{Messages: UserMessage("first")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first.Content) != `{"a":1}` || first.Usage.TotalTokens != 15 {
		t.Fatalf("first = %s %+v", first.Content, first.Usage)
	}

	second, err := mock.Generate(context.Background(), Request{Messages: UserMessage("second")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(second.Content) != `{"b":2}` {
		t.Fatalf("second = %s", second.Content)
	}

	last, ok := mock.LastCall()
	if !ok || last.Messages[0].Content != "second" {
		t.Fatalf("LastCall = %+v, %v", last, ok)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("CallCount = %d", mock.CallCount())
	}
}

func TestMockProvider_DrainedQueueIsUnavailable(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T", err)
	}
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"symbol":"A"}`)},
		MockResponse{Content: json.RawMessage(`{"symbol":"A","dominant":true}`)},
	)
	req := Request{Schema: alleleSchema()}

	_, err := mock.Generate(context.Background(), req)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}

	resp, err := mock.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got struct {
		Symbol   string `json:"symbol"`
		Dominant bool   `json:"dominant"`
	}
	if err := resp.Decode(&got); err != nil || got.Symbol != "A" || !got.Dominant {
		t.Fatalf("Decode = %+v, %v", got, err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("PurposeFrom(empty) = %q", p)
	}
	if p := PurposeFrom(WithPurpose(ctx, PurposeHint)); p != PurposeHint {
		t.Fatalf("PurposeFrom = %q, want %q", p, PurposeHint)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "k"}}, false},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"unknown provider", Config{Provider: "llama"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MENTORLY_LLM_PROVIDER", "MENTORLY_LLM_TIMEOUT",
		"MENTORLY_ANTHROPIC_API_KEY", "MENTORLY_OPENAI_API_KEY",
		"MENTORLY_GEMINI_API_KEY", "MENTORLY_OPENROUTER_API_KEY",
		"MENTORLY_GEMINI_MODEL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestResolveConfig(t *testing.T) {
	t.Run("nothing configured", func(t *testing.T) {
		clearLLMEnv(t)
		_, ok, err := ResolveConfig()
		if ok || err != nil {
			t.Fatalf("ResolveConfig = ok %v, err %v", ok, err)
		}
		if _, err := NewProviderFromEnv(context.Background(), nil, nil); !errors.Is(err, ErrNoProvider) {
			t.Fatalf("NewProviderFromEnv error = %v", err)
		}
	})

	t.Run("explicit provider wins", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("MENTORLY_LLM_PROVIDER", "openai")
		t.Setenv("MENTORLY_OPENAI_API_KEY", "sk-explicit")
		t.Setenv("GEMINI_API_KEY", "g-key")
		t.Setenv("MENTORLY_LLM_TIMEOUT", "5s")
		cfg, ok, err := ResolveConfig()
		if err != nil || !ok {
			t.Fatalf("ResolveConfig = ok %v, err %v", ok, err)
		}
		if cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "sk-explicit" {
			t.Fatalf("cfg = %+v", cfg)
		}
		if cfg.Timeout.Seconds() != 5 {
			t.Fatalf("timeout = %s", cfg.Timeout)
		}
	})

	t.Run("explicit provider missing key", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("MENTORLY_LLM_PROVIDER", "anthropic")
		if _, _, err := ResolveConfig(); err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("discovered vendor key keeps model override", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("GEMINI_API_KEY", "g-key")
		t.Setenv("MENTORLY_GEMINI_MODEL", "gemini-pro")
		cfg, ok, err := ResolveConfig()
		if err != nil || !ok {
			t.Fatalf("ResolveConfig = ok %v, err %v", ok, err)
		}
		if cfg.Provider != ProviderGemini || cfg.Gemini.Model != "gemini-pro" {
			t.Fatalf("cfg = %+v", cfg)
		}
	})

	t.Run("mock provider", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("MENTORLY_LLM_PROVIDER", "mock")
		p, err := NewProviderFromEnv(context.Background(), nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "mock" {
			t.Fatalf("ModelID = %q", p.ModelID())
		}
	})
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("Cost = %f, want 0.75", got)
	}
	if LookupCost("google/gemini-2.0-flash-001") == nil {
		t.Fatal("expected OpenRouter slug to resolve")
	}
	if LookupCost("no-such-model") != nil {
		t.Fatal("expected nil for unknown model")
	}
}
