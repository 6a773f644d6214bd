package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is the JSON Schema a structured reply must satisfy. It compiles
// once, on first use or eagerly through NewSchema.
type Schema struct {
	// Name is sent as the schema name to providers that take one.
	// Kebab-case, e.g. "sensei-advisory".
	Name        string
	Description string
	Definition  map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// NewSchema builds a Schema and compiles it immediately.
func NewSchema(name, description string, def map[string]any) (*Schema, error) {
	s := &Schema{Name: name, Description: description, Definition: def}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustSchema is NewSchema for package-level schemas. It panics on an
// invalid definition.
func MustSchema(name, description string, def map[string]any) *Schema {
	s, err := NewSchema(name, description, def)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) compile() error {
	s.once.Do(func() {
		// The compiler wants a decoded JSON value, not Go maps with typed
		// slices, so round-trip the definition.
		raw, err := json.Marshal(s.Definition)
		if err != nil {
			s.err = fmt.Errorf("marshal schema %q: %w", s.Name, err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			s.err = fmt.Errorf("parse schema %q: %w", s.Name, err)
			return
		}
		c := jsonschema.NewCompiler()
		url := fmt.Sprintf("schema://%s.json", s.Name)
		if err := c.AddResource(url, doc); err != nil {
			s.err = fmt.Errorf("add schema %q: %w", s.Name, err)
			return
		}
		s.compiled, s.err = c.Compile(url)
		if s.err != nil {
			s.err = fmt.Errorf("compile schema %q: %w", s.Name, s.err)
		}
	})
	return s.err
}

// Validate checks raw against the schema. A nil Schema accepts anything.
// Failures are *ErrInvalidResponse.
func (s *Schema) Validate(raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := s.compile(); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := s.compiled.Validate(parsed); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

// Decode validates raw and unmarshals it into v.
func (s *Schema) Decode(raw json.RawMessage, v any) error {
	if err := s.Validate(raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	return nil
}
