// Package summary splits text into chunks, summarises each chunk through the
// model client and aggregates the results.
package summary

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"doc-summarizer/internal/cache"
	"doc-summarizer/internal/llm"
)

// TextSplitter is satisfied by chunker.Splitter.
type TextSplitter interface {
	SplitText(text string) ([]string, error)
}

// Options configures optional collaborators of a Summarizer.
type Options struct {
	// Cache memoises chunk summaries. Nil disables caching.
	Cache    cache.Cache
	CacheTTL time.Duration
	// Model is folded into cache keys.
	Model string
}

// Summarizer runs the sequential chunk loop.
type Summarizer struct {
	splitter TextSplitter
	client   llm.Client
	cache    cache.Cache
	ttl      time.Duration
	model    string
	log      *slog.Logger
}

func New(splitter TextSplitter, client llm.Client, log *slog.Logger, opts Options) *Summarizer {
	c := opts.Cache
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &Summarizer{
		splitter: splitter,
		client:   client,
		cache:    c,
		ttl:      opts.CacheTTL,
		model:    opts.Model,
		log:      log,
	}
}

// GenerateSummary summarises text chunk by chunk. A failing chunk is recorded
// and the loop moves on; only a chunking failure or cancellation ends it early.
func (s *Summarizer) GenerateSummary(ctx context.Context, text string, summaryType Type) Outcome {
	if strings.TrimSpace(text) == "" {
		return Outcome{Status: StatusError, Message: MsgNoText, Code: http.StatusBadRequest}
	}
	if _, ok := templates[summaryType]; !ok {
		s.log.Warn("unknown summary type, using brief", "summary_type", summaryType)
		summaryType = TypeBrief
	}

	chunks, err := s.splitter.SplitText(text)
	if err != nil {
		s.log.Error("failed to chunk text", "err", err)
		return Outcome{Status: StatusError, Message: MsgChunking, Code: http.StatusInternalServerError}
	}

	log := s.log.With("summary_type", summaryType, "chunks", len(chunks))
	log.Info("summarizing text", "chars", len(text))

	var results, errs []string
	for i, chunk := range chunks {
		if ctx.Err() != nil {
			log.Warn("summarization cancelled", "completed", i, "err", ctx.Err())
			errs = append(errs, ErrLabelCancelled)
			break
		}

		out, err := s.summarizeChunk(ctx, summaryType, chunk)
		if err != nil {
			if ctx.Err() != nil {
				log.Warn("summarization cancelled", "completed", i, "err", err)
				errs = append(errs, ErrLabelCancelled)
				break
			}
			if llm.IsTimeout(err) {
				log.Warn("chunk timed out", "chunk", i, "err", err)
				errs = append(errs, ErrLabelTimeout)
			} else {
				log.Error("chunk failed", "chunk", i, "err", err)
				errs = append(errs, ErrLabelGenerate)
			}
			continue
		}
		results = append(results, out)
	}

	o := classify(results, errs, len(chunks))
	log.Info("summarization finished", "status", o.Status, "failed", len(errs))
	return o
}

func (s *Summarizer) summarizeChunk(ctx context.Context, t Type, chunk string) (string, error) {
	key := cache.Key(s.model, string(t), chunk)
	if cached, ok, err := s.cache.GetSummary(ctx, key); err != nil {
		s.log.Warn("cache lookup failed", "err", err)
	} else if ok {
		return cached, nil
	}

	out, err := s.client.GenerateResponse(ctx, Prompt(t, chunk))
	if err != nil {
		return "", err
	}
	if err := s.cache.SetSummary(ctx, key, out, s.ttl); err != nil {
		s.log.Warn("cache write failed", "err", err)
	}
	return out, nil
}
