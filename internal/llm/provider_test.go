package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestMockProvider_ServesRepliesInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	first, err := mock.Generate(context.Background(), Request{Prompt: "first"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first.Content) != `{"a":1}` || first.Usage.Total() != 15 || first.Model != "mock" {
		t.Fatalf("unexpected first reply %+v", first)
	}

	second, err := mock.Generate(context.Background(), Request{Prompt: "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(second.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", second.Content)
	}

	calls := mock.Calls()
	if len(calls) != 2 || calls[0].Prompt != "first" || calls[1].Prompt != "second" {
		t.Fatalf("unexpected calls %+v", calls)
	}
}

func TestMockProvider_EmptyQueueIsUnavailable(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_ConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"text":"Hm.","mood":"sleepy"}`)})
	_, err := mock.Generate(context.Background(), Request{Schema: testSchema()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}
}

func TestMockProvider_StallEndsWithContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Stall: true})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := mock.Generate(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unlabelled" {
		t.Fatalf("expected 'unlabelled', got %q", p)
	}
	if p := PurposeFrom(WithPurpose(ctx, "sensei-advisory")); p != "sensei-advisory" {
		t.Fatalf("expected 'sensei-advisory', got %q", p)
	}
}

func TestFromStatus(t *testing.T) {
	cause := errors.New("boom")

	var rl *ErrRateLimit
	if !errors.As(fromStatus(429, cause), &rl) {
		t.Error("429 should be a rate limit")
	}
	for _, status := range []int{401, 403} {
		var unauth *ErrUnauthorized
		if !errors.As(fromStatus(status, cause), &unauth) {
			t.Errorf("%d should be unauthorized", status)
		}
	}
	for _, status := range []int{0, 500, 503} {
		var unavail *ErrProviderUnavailable
		err := fromStatus(status, cause)
		if !errors.As(err, &unavail) || !errors.Is(err, cause) {
			t.Errorf("%d should be unavailable wrapping the cause, got %v", status, err)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
