package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrExhausted matches every ExhaustedError.
var ErrExhausted = errors.New("retry attempts exhausted")

// ExhaustedError is returned when every attempt failed. It unwraps to the
// last attempt's error.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}

// Policy retries with a fixed number of attempts and a fixed delay between them.
type Policy struct {
	Attempts int
	Delay    time.Duration
	// OnError is called after each failed attempt (1-based).
	OnError func(attempt int, err error)
}

// Fixed returns a policy with the given attempts and delay.
func Fixed(attempts int, delay time.Duration) Policy {
	return Policy{Attempts: attempts, Delay: delay}
}

// Do runs fn until it succeeds or the attempts run out. Context cancellation
// stops retrying and returns the context error.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if p.OnError != nil {
			p.OnError(attempt, lastErr)
		}
		if attempt == attempts {
			break
		}
		if p.Delay > 0 {
			t := time.NewTimer(p.Delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
	}
	return &ExhaustedError{Attempts: attempts, Err: lastErr}
}
