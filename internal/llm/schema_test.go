package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return MustSchema("test-advisory", "A sensei line", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": "string"},
			"mood": map[string]any{"type": "string", "enum": []any{"peaceful", "strict", "proud"}},
			"step": map[string]any{"type": "integer", "minimum": 1},
		},
		"required": []any{"text", "mood"},
	})
}

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"text":"Good.","mood":"proud","step":3}`, false},
		{"optional omitted", `{"text":"Breathe.","mood":"peaceful"}`, false},
		{"missing required", `{"text":"Again."}`, true},
		{"wrong type", `{"text":"Again.","mood":"strict","step":"two"}`, true},
		{"below minimum", `{"text":"Again.","mood":"strict","step":0}`, true},
		{"unknown mood", `{"text":"Again.","mood":"angry"}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}

	s := testSchema()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate(json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			var inv *ErrInvalidResponse
			if err != nil && !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got: %T", err)
			}
		})
	}
}

func TestSchemaNilAcceptsAnything(t *testing.T) {
	var s *Schema
	if err := s.Validate(json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("nil schema should accept anything, got: %v", err)
	}
}

func TestSchemaLiteralCompilesLazily(t *testing.T) {
	s := &Schema{Name: "lazy", Definition: map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "integer"},
	}}
	if err := s.Validate(json.RawMessage(`[1,2,3]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Validate(json.RawMessage(`["a"]`)); err == nil {
		t.Fatal("expected error for wrong item type")
	}
}

func TestNewSchemaRejectsBadDefinition(t *testing.T) {
	_, err := NewSchema("broken", "", map[string]any{"type": 42})
	if err == nil {
		t.Fatal("expected a compile error")
	}
}

func TestSchemaDecode(t *testing.T) {
	var out struct {
		Text string `json:"text"`
		Mood string `json:"mood"`
	}
	s := testSchema()

	if err := s.Decode(json.RawMessage(`{"text":"Still water.","mood":"peaceful"}`), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Text != "Still water." || out.Mood != "peaceful" {
		t.Errorf("decoded %+v", out)
	}

	if err := s.Decode(json.RawMessage(`{"text":"x"}`), &out); err == nil {
		t.Fatal("decode should validate first")
	}
}
