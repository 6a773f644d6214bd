package llm

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/dojo/internal/store"
)

// ErrNotConfigured is returned when no provider credentials can be found.
var ErrNotConfigured = errors.New("no LLM provider configured")

// NewProvider creates a Provider from configuration, wrapped with retry and
// logging middleware: caller → retry → logging → base.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, eventRepo, log)
	return WithRetry(logged, cfg.Retry, log), nil
}

// NewProviderFromEnv resolves configuration from DOJO_ variables, falling
// back to the vendors' standard API key variables. Returns ErrNotConfigured
// when neither yields credentials.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, log *zap.Logger) (Provider, Config, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, Config{}, err
	}
	if !cfg.hasKey() {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, Config{}, ErrNotConfigured
		}
		discovered.Timeout = cfg.Timeout
		discovered.Retry = cfg.Retry
		cfg = discovered
	}
	if err := cfg.Validate(); err != nil {
		return nil, Config{}, err
	}

	p, err := NewProvider(ctx, cfg, eventRepo, log)
	if err != nil {
		return nil, Config{}, err
	}
	return p, cfg, nil
}
