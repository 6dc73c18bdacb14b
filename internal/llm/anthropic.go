package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
)

const (
	defaultAnthropicModel     = "claude-3-5-haiku-latest"
	defaultAnthropicMaxTokens = 1024
)

// AnthropicBackend calls the Anthropic Messages API through langchaingo.
type AnthropicBackend struct {
	llm     *anthropic.LLM
	timeout time.Duration
}

// NewAnthropicBackend builds a backend for the given model.
func NewAnthropicBackend(apiKey, model string, timeout time.Duration, opts ...anthropic.Option) (*AnthropicBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if model == "" {
		model = defaultAnthropicModel
	}
	if timeout <= 0 {
		timeout = defaultChatTimeout
	}
	opts = append([]anthropic.Option{anthropic.WithToken(apiKey), anthropic.WithModel(model)}, opts...)
	cli, err := anthropic.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}
	return &AnthropicBackend{llm: cli, timeout: timeout}, nil
}

func (b *AnthropicBackend) Provider() Provider { return ProviderAnthropic }

func (b *AnthropicBackend) Generate(ctx context.Context, prompt string) (string, error) {
	if b == nil || b.llm == nil {
		return "", fmt.Errorf("nil anthropic client")
	}
	reqCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	out, err := llms.GenerateFromSinglePrompt(reqCtx, b.llm, prompt,
		llms.WithMaxTokens(defaultAnthropicMaxTokens),
		llms.WithTemperature(defaultChatTemperature),
	)
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("anthropic: %w", ErrEmptyResponse)
	}
	return out, nil
}
