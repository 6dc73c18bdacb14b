package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"doc-summarizer/internal/app"
	"doc-summarizer/internal/httputil"
	"doc-summarizer/internal/queue"
	"doc-summarizer/internal/service"
)

const (
	publishAttempts = 3
	publishBackoff  = 200 * time.Millisecond
)

func main() {
	deps, err := app.BuildWorker()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer deps.Close()
	deps.Log.Info("summarize worker starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	// Run queue worker
	g.Go(func() error {
		return deps.Queue.Worker(ctx, queue.TaskTypeSummarize, handleSummarize(deps.Log, deps.Documents, deps.Queue))
	})

	// Run health check server
	g.Go(func() error {
		return httputil.ServeHealth(ctx, deps.Log, deps.Config.Port, "worker")
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("worker stopped", "err", err)
		os.Exit(1)
	}
}

// handleSummarize answers one summarize task with a summary_result task. A
// failed summarization is still a result; only a failed publish is retried
// through redelivery.
func handleSummarize(log *slog.Logger, docs service.Documents, q queue.Queue) queue.Handler {
	return func(ctx context.Context, task queue.Task) error {
		log := log.With("task_id", task.ID)

		var req queue.SummarizeRequest
		if err := task.Decode(&req); err != nil {
			return err
		}
		if err := httputil.Validate(req); err != nil {
			return fmt.Errorf("%w: %v", queue.ErrBadPayload, err)
		}

		resp := docs.Summarize(ctx, req.FilePath, req.SummaryType)
		log.Info("summarize task finished", "file_path", req.FilePath, "success", resp.Success, "code", resp.Code)

		result, err := queue.NewTask(queue.TaskTypeSummaryResult, queue.SummaryResult{
			RequestID: task.ID,
			Response:  resp,
		})
		if err != nil {
			return err
		}
		return queue.EnqueueWithRetry(ctx, q, result, publishAttempts, publishBackoff)
	}
}
