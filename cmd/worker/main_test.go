package main

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"doc-summarizer/internal/logger"
	"doc-summarizer/internal/queue"
	"doc-summarizer/internal/response"
	"doc-summarizer/internal/service"
)

func summarizeTask(t *testing.T, req queue.SummarizeRequest) queue.Task {
	t.Helper()
	task, err := queue.NewTask(queue.TaskTypeSummarize, req)
	require.NoError(t, err)
	return task
}

func TestHandleSummarizePublishesResult(t *testing.T) {
	task := summarizeTask(t, queue.SummarizeRequest{FilePath: "/data/a.pdf", SummaryType: "brief"})
	envelope := response.Response{Success: true, Code: http.StatusOK, Message: "Summary generated successfully",
		Data: &response.Data{Status: "success", Summary: "Summary"}}

	docs := new(service.MockDocuments)
	docs.On("Summarize", mock.Anything, "/data/a.pdf", "brief").Return(envelope).Once()

	q := new(queue.MockQueue)
	q.On("Enqueue", mock.Anything, mock.Anything).Return(nil).Once()

	err := handleSummarize(logger.Discard(), docs, q)(context.Background(), task)
	require.NoError(t, err)

	require.Len(t, q.Published(), 1)
	published := q.Published()[0]
	assert.Equal(t, queue.TaskTypeSummaryResult, published.Type)
	var result queue.SummaryResult
	require.NoError(t, published.Decode(&result))
	assert.Equal(t, task.ID, result.RequestID)
	assert.Equal(t, "Summary", result.Response.Data.Summary)
	docs.AssertExpectations(t)
	q.AssertExpectations(t)
}

func TestHandleSummarizePublishesFailures(t *testing.T) {
	task := summarizeTask(t, queue.SummarizeRequest{FilePath: "/missing.pdf"})

	docs := new(service.MockDocuments)
	docs.On("Summarize", mock.Anything, "/missing.pdf", "").
		Return(response.Fail(http.StatusBadRequest, "File not found: /missing.pdf")).Once()
	q := new(queue.MockQueue)
	q.On("Enqueue", mock.Anything, mock.Anything).Return(nil).Once()

	err := handleSummarize(logger.Discard(), docs, q)(context.Background(), task)

	require.NoError(t, err)
	q.AssertExpectations(t)
}

func TestHandleSummarizeBadPayload(t *testing.T) {
	docs := new(service.MockDocuments)
	q := new(queue.MockQueue)
	task := queue.Task{ID: uuid.New(), Type: queue.TaskTypeSummarize, Payload: []byte("not json")}

	err := handleSummarize(logger.Discard(), docs, q)(context.Background(), task)

	assert.ErrorIs(t, err, queue.ErrBadPayload)
	docs.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything, mock.Anything)
	q.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}

func TestHandleSummarizePublishFailure(t *testing.T) {
	task := summarizeTask(t, queue.SummarizeRequest{FilePath: "/data/a.txt"})

	docs := new(service.MockDocuments)
	docs.On("Summarize", mock.Anything, "/data/a.txt", "").Return(response.Fail(http.StatusInternalServerError, "x"))
	q := new(queue.MockQueue)
	q.On("Enqueue", mock.Anything, mock.Anything).Return(errors.New("nats: connection closed"))

	err := handleSummarize(logger.Discard(), docs, q)(context.Background(), task)

	require.Error(t, err)
	q.AssertNumberOfCalls(t, "Enqueue", publishAttempts)
}

func TestHandleSummarizeRejectsMissingFilePath(t *testing.T) {
	docs := new(service.MockDocuments)
	q := new(queue.MockQueue)
	task := summarizeTask(t, queue.SummarizeRequest{SummaryType: "brief"})

	err := handleSummarize(logger.Discard(), docs, q)(context.Background(), task)

	assert.ErrorIs(t, err, queue.ErrBadPayload)
	assert.Contains(t, err.Error(), "file_path is required")
	docs.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, q.Published())
}
