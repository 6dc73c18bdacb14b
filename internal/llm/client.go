package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"

	"doc-summarizer/internal/config"
	"doc-summarizer/internal/ratelimit"
	"doc-summarizer/internal/retry"
)

// ErrMissingAPIKey is returned when the selected provider has no credential.
var ErrMissingAPIKey = errors.New("api key required")

// ModelClient gates a Backend behind a token bucket and a fixed retry policy.
// Each instance owns its bucket; share one only when cross-request
// throttling is wanted.
type ModelClient struct {
	backend Backend
	limiter *ratelimit.Limiter
	policy  retry.Policy
	log     *slog.Logger
}

// New selects the backend for cfg.Provider once and wraps it.
func New(cfg config.ProviderConfig, log *slog.Logger) (*ModelClient, error) {
	provider, err := ParseProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}
	if cfg.APIKey.Empty() {
		return nil, fmt.Errorf("%s: %w", provider, ErrMissingAPIKey)
	}

	var backend Backend
	switch provider {
	case ProviderOpenAI:
		backend, err = NewOpenAIBackend(cfg.APIKey.Reveal(), openai.ChatModel(cfg.ModelName), cfg.RequestTimeout)
	case ProviderAnthropic:
		backend, err = NewAnthropicBackend(cfg.APIKey.Reveal(), cfg.ModelName, cfg.RequestTimeout)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s backend: %w", provider, err)
	}
	log.Info("using model provider", "provider", provider.String(), "model", cfg.ModelName)

	return NewModelClient(backend, ratelimit.New(cfg.Rate), retry.Fixed(cfg.RetryAttempts, cfg.RetryDelay), log), nil
}

// NewModelClient wires an already constructed backend.
func NewModelClient(backend Backend, limiter *ratelimit.Limiter, policy retry.Policy, log *slog.Logger) *ModelClient {
	if limiter == nil {
		limiter = ratelimit.Unlimited()
	}
	return &ModelClient{
		backend: backend,
		limiter: limiter,
		policy:  policy,
		log:     log.With("provider", backend.Provider().String()),
	}
}

// Provider reports the selected variant.
func (c *ModelClient) Provider() Provider {
	return c.backend.Provider()
}

// GenerateResponse sends prompt to the provider. Every failure kind is retried
// the same way; once attempts run out the error matches retry.ErrExhausted.
func (c *ModelClient) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	policy := c.policy
	policy.OnError = func(attempt int, err error) {
		if IsTimeout(err) {
			c.log.Warn("model call timed out", "attempt", attempt, "max_attempts", policy.Attempts, "err", err)
			return
		}
		c.log.Error("model call failed", "attempt", attempt, "max_attempts", policy.Attempts, "err", err)
	}

	var out string
	err := policy.Do(ctx, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
		resp, err := c.backend.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		out = resp
		return nil
	})
	if err != nil {
		return "", err
	}
	return out, nil
}
