package queue

import (
	"context"

	"github.com/stretchr/testify/mock"
)

var _ Queue = (*MockQueue)(nil)

// MockQueue records published tasks for the worker tests.
type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Enqueue(ctx context.Context, task Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// Worker does not consume anything; tests call handlers directly.
func (m *MockQueue) Worker(ctx context.Context, taskType TaskType, handler Handler) error {
	args := m.Called(ctx, taskType, handler)
	return args.Error(0)
}

// Published returns the tasks passed to Enqueue, in call order.
func (m *MockQueue) Published() []Task {
	var tasks []Task
	for _, call := range m.Calls {
		if call.Method == "Enqueue" {
			tasks = append(tasks, call.Arguments.Get(1).(Task))
		}
	}
	return tasks
}
