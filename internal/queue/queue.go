package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"doc-summarizer/internal/response"
	"doc-summarizer/internal/retry"
)

// TaskType enumerates supported task categories.
type TaskType string

const (
	TaskTypeSummarize     TaskType = "summarize"
	TaskTypeSummaryResult TaskType = "summary_result"
)

// Task represents a unit of work exchanged over the queue.
type Task struct {
	ID          uuid.UUID
	Type        TaskType
	Payload     []byte
	Attempts    int
	MaxAttempts int
	NotBefore   time.Time
}

// SummarizeRequest is the payload of a summarize task.
type SummarizeRequest struct {
	FilePath    string `json:"file_path" validate:"required"`
	SummaryType string `json:"summary_type"`
}

// SummaryResult is the payload of a summary_result task. RequestID is the ID
// of the summarize task it answers.
type SummaryResult struct {
	RequestID uuid.UUID         `json:"request_id"`
	Response  response.Response `json:"response"`
}

// ErrBadPayload marks a task whose payload cannot be decoded. Such tasks are
// never redelivered.
var ErrBadPayload = errors.New("bad task payload")

// NewTask marshals payload into a task of the given type.
func NewTask(taskType TaskType, payload any) (Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Task{}, fmt.Errorf("failed to encode %s payload: %w", taskType, err)
	}
	return Task{ID: uuid.New(), Type: taskType, Payload: body}, nil
}

// Decode unmarshals the task payload into v.
func (t Task) Decode(v any) error {
	if err := json.Unmarshal(t.Payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}

type Handler func(context.Context, Task) error

// Queue exposes a minimal contract to enqueue and consume tasks.
type Queue interface {
	Enqueue(ctx context.Context, task Task) error
	Worker(ctx context.Context, taskType TaskType, handler Handler) error
}

// EnqueueWithRetry attempts to enqueue with retries and exponential backoff.
func EnqueueWithRetry(ctx context.Context, q Queue, task Task, attempts int, base time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	for attempt := 0; attempt < attempts; attempt++ {
		if err := q.Enqueue(ctx, task); err == nil {
			return nil
		} else if attempt == attempts-1 {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retry.ExponentialBackoff(attempt, base)):
		}
	}
	return nil
}
