package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type":        "object",
		"description": "a practice problem",
		"properties": map[string]any{
			"question":   map[string]any{"type": "string"},
			"difficulty": map[string]any{"type": "integer"},
			"kind":       map[string]any{"type": "string", "enum": []string{"punnett", "pedigree"}},
			"hints": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"question", "difficulty"},
	}

	s := geminiSchema(def)
	if s.Type != genai.TypeObject || s.Description != "a practice problem" {
		t.Fatalf("root = %+v", s)
	}
	if len(s.Properties) != 4 {
		t.Fatalf("properties = %d", len(s.Properties))
	}
	if s.Properties["difficulty"].Type != genai.TypeInteger {
		t.Errorf("difficulty type = %s", s.Properties["difficulty"].Type)
	}
	if got := s.Properties["kind"].Enum; len(got) != 2 || got[1] != "pedigree" {
		t.Errorf("enum = %v", got)
	}
	if s.Properties["hints"].Items.Type != genai.TypeString {
		t.Errorf("items type = %s", s.Properties["hints"].Items.Type)
	}
	if len(s.Required) != 2 {
		t.Errorf("required = %v", s.Required)
	}
}

func TestGeminiSchema_UnknownTypeIsString(t *testing.T) {
	if s := geminiSchema(map[string]any{"type": "null"}); s.Type != genai.TypeString {
		t.Fatalf("type = %s", s.Type)
	}
}
