package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func punnettSchema() *Schema {
	return &Schema{
		Name: "test-punnett",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"cross": map[string]any{"type": "string"},
				"ratio": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "integer", "minimum": 0},
				},
				"pattern": map[string]any{"type": "string", "enum": []string{"complete", "incomplete", "codominant"}},
			},
			"required": []string{"cross", "ratio"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"cross":"Aa x Aa","ratio":[1,2,1],"pattern":"complete"}`, false},
		{"optional omitted", `{"cross":"Aa x aa","ratio":[1,1]}`, false},
		{"missing required", `{"cross":"Aa x Aa"}`, true},
		{"wrong item type", `{"cross":"Aa x Aa","ratio":["one"]}`, true},
		{"negative item", `{"cross":"Aa x Aa","ratio":[-1]}`, true},
		{"enum violation", `{"cross":"Aa x Aa","ratio":[3,1],"pattern":"blended"}`, true},
		{"malformed", `{cross}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(punnettSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			var inv *ErrInvalidResponse
			if err != nil && !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %T", err)
			}
		})
	}
}

func TestValidateResponse_NilSchemaAcceptsAnything(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`plain text`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_CachesCompiledSchema(t *testing.T) {
	s := punnettSchema()
	s.Name = "test-punnett-cache"
	if err := validateResponse(s, json.RawMessage(`{"cross":"x","ratio":[]}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := compiled.Load(s.Name); !ok {
		t.Fatal("expected compiled schema to be cached")
	}
}
