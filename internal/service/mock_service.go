package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"doc-summarizer/internal/response"
)

// MockDocuments is a mock implementation of Documents using testify/mock.
type MockDocuments struct {
	mock.Mock
}

func (m *MockDocuments) Extract(ctx context.Context, path string) response.Response {
	args := m.Called(ctx, path)
	return args.Get(0).(response.Response)
}

func (m *MockDocuments) Summarize(ctx context.Context, path, summaryType string) response.Response {
	args := m.Called(ctx, path, summaryType)
	return args.Get(0).(response.Response)
}

func (m *MockDocuments) SummarizeText(ctx context.Context, text, summaryType string) response.Response {
	args := m.Called(ctx, text, summaryType)
	return args.Get(0).(response.Response)
}
