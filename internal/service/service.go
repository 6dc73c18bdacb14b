// Package service is the single entry point shared by the gateway, the
// worker and the CLI: file path in, response envelope out.
package service

import (
	"context"
	"log/slog"
	"net/http"

	"doc-summarizer/internal/extractor"
	"doc-summarizer/internal/response"
	"doc-summarizer/internal/summary"
)

// Documents is what the surfaces depend on.
type Documents interface {
	Extract(ctx context.Context, path string) response.Response
	Summarize(ctx context.Context, path, summaryType string) response.Response
	SummarizeText(ctx context.Context, text, summaryType string) response.Response
}

type Extractor interface {
	Extract(ctx context.Context, path string) extractor.Result
}

type Summarizer interface {
	GenerateSummary(ctx context.Context, text string, summaryType summary.Type) summary.Outcome
}

// Service runs one summarization at a time so a single model client and its
// token bucket are never shared by concurrent requests. Extraction is not
// serialized. A request whose context ends while waiting for its turn is
// answered without reaching the model.
type Service struct {
	slot       chan struct{}
	extractor  Extractor
	summarizer Summarizer
	log        *slog.Logger
}

func New(ex Extractor, sm Summarizer, log *slog.Logger) *Service {
	return &Service{slot: make(chan struct{}, 1), extractor: ex, summarizer: sm, log: log}
}

func (s *Service) Extract(ctx context.Context, path string) response.Response {
	return response.FromExtraction(s.extractor.Extract(ctx, path))
}

// Summarize extracts path and summarises its text. Extraction failures are
// returned as-is; the model is never called for them.
func (s *Service) Summarize(ctx context.Context, path, summaryType string) response.Response {
	res := s.extractor.Extract(ctx, path)
	if !res.Success {
		return response.FromExtraction(res)
	}

	out := s.summarize(ctx, res.Content, summaryType)
	return response.FromSummary(out).WithFile(res.FilePath, res.FileType)
}

func (s *Service) SummarizeText(ctx context.Context, text, summaryType string) response.Response {
	return response.FromSummary(s.summarize(ctx, text, summaryType))
}

func (s *Service) summarize(ctx context.Context, text, summaryType string) summary.Outcome {
	t, ok := summary.ParseType(summaryType)
	if !ok && summaryType != "" {
		s.log.Warn("unknown summary type, using brief", "summary_type", summaryType)
	}

	select {
	case s.slot <- struct{}{}:
	case <-ctx.Done():
		s.log.Warn("request cancelled while waiting for summarizer", "err", ctx.Err())
		return summary.Outcome{
			Status:  summary.StatusError,
			Errors:  []string{summary.ErrLabelCancelled},
			Message: summary.ErrLabelCancelled,
			Code:    http.StatusInternalServerError,
		}
	}
	defer func() { <-s.slot }()
	return s.summarizer.GenerateSummary(ctx, text, t)
}
