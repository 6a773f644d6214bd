package llm

import (
	"context"
	"encoding/json"
)

// Provider answers a single prompt with structured JSON.
type Provider interface {
	// Generate sends req and returns the reply. When req.Schema is set the
	// reply has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request is one single-turn exchange: a system prompt and a user prompt.
// Advisories never carry conversation history.
type Request struct {
	System string
	Prompt string

	// Schema, when set, switches the provider to its native structured
	// output mode. When nil the reply is raw text.
	Schema *Schema

	MaxTokens int

	// Temperature in 0.0 - 1.0. Zero leaves the provider default.
	Temperature float64
}

// Response holds the LLM's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request, which may differ
	// from ModelID for routed providers.
	Model string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

type purposeKey struct{}

// WithPurpose labels requests made with ctx in the event log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unlabelled".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unlabelled"
}
