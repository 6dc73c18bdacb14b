package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"doc-summarizer/internal/response"
	"doc-summarizer/internal/service"
)

func fakeBuild(docs service.Documents) buildFunc {
	return func() (service.Documents, func(), error) {
		return docs, func() {}, nil
	}
}

func TestSummarizeCommand(t *testing.T) {
	docs := new(service.MockDocuments)
	docs.On("Summarize", mock.Anything, "report.pdf", "technical").Return(response.Response{
		Success: true, Code: http.StatusOK, Message: "Summary generated successfully",
		Data: &response.Data{Status: "success", Summary: "Key concepts"},
	}).Once()

	var out bytes.Buffer
	err := newApp(fakeBuild(docs), &out).Run([]string{"summarize", "--type", "technical", "report.pdf"})
	require.NoError(t, err)

	var got response.Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.True(t, got.Success)
	assert.Equal(t, "Key concepts", got.Data.Summary)
	assert.Contains(t, out.String(), "\n  \"success\": true")
	docs.AssertExpectations(t)
}

func TestSummarizeCommandDefaultsToBrief(t *testing.T) {
	docs := new(service.MockDocuments)
	docs.On("Summarize", mock.Anything, "notes.txt", "brief").
		Return(response.Response{Success: true, Code: http.StatusOK}).Once()

	err := newApp(fakeBuild(docs), new(bytes.Buffer)).Run([]string{"summarize", "notes.txt"})

	require.NoError(t, err)
	docs.AssertExpectations(t)
}

func TestExtractOnly(t *testing.T) {
	docs := new(service.MockDocuments)
	docs.On("Extract", mock.Anything, "notes.txt").Return(response.Response{
		Success: true, Code: http.StatusOK, Data: &response.Data{Status: "success", Content: "hello"},
	}).Once()

	var out bytes.Buffer
	err := newApp(fakeBuild(docs), &out).Run([]string{"summarize", "--extract-only", "notes.txt"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), `"content": "hello"`)
	docs.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything, mock.Anything)
}

func TestUnsuccessfulEnvelopeFails(t *testing.T) {
	docs := new(service.MockDocuments)
	docs.On("Summarize", mock.Anything, "missing.pdf", "brief").
		Return(response.Fail(http.StatusBadRequest, "File not found: missing.pdf")).Once()

	var out bytes.Buffer
	err := newApp(fakeBuild(docs), &out).Run([]string{"summarize", "missing.pdf"})

	assert.ErrorIs(t, err, errUnsuccessful)
	assert.Contains(t, out.String(), "File not found: missing.pdf")
}

func TestArgumentAndBuildErrors(t *testing.T) {
	docs := new(service.MockDocuments)

	err := newApp(fakeBuild(docs), new(bytes.Buffer)).Run([]string{"summarize"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one FILE")

	failing := func() (service.Documents, func(), error) {
		return nil, nil, errors.New("invalid configuration: OPENAI_API_KEY is required")
	}
	err = newApp(failing, new(bytes.Buffer)).Run([]string{"summarize", "a.txt"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errUnsuccessful)
}
