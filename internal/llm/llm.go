package llm

import "context"

// Client is the model contract the summarizer depends on.
type Client interface {
	GenerateResponse(ctx context.Context, prompt string) (string, error)
}

// Backend is a single provider's raw completion call, without throttling
// or retries.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Provider() Provider
}
