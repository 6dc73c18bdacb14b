package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"doc-summarizer/internal/app"
	"doc-summarizer/internal/extractor"
	"doc-summarizer/internal/httputil"
)

// Long documents take several rate-limited model calls.
const handlerTimeout = 5 * time.Minute

type extractRequest struct {
	FilePath string `json:"file_path" validate:"required"`
}

type summarizeRequest struct {
	FilePath    string `json:"file_path" validate:"required"`
	SummaryType string `json:"summary_type"`
}

type textSummaryRequest struct {
	Text        string `json:"text" validate:"required"`
	SummaryType string `json:"summary_type"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.Port),
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			deps.Log.Error("graceful shutdown failed", "err", err)
		}
	}()

	deps.Log.Info("gateway listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		deps.Log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func newRouter(deps app.Deps) chi.Router {
	r := httputil.NewRouter(deps.Log, handlerTimeout)

	r.Post("/api/documents/extract", extractHandler(deps))
	r.Post("/api/documents/summarize", summarizeHandler(deps))
	r.Post("/api/documents/upload", uploadHandler(deps))
	r.Post("/api/summaries", textSummaryHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))
	return r
}

// maxJSONBody bounds JSON request bodies. Raw text summaries may be large.
func maxJSONBody(deps app.Deps) int64 {
	return deps.Config.MaxUploadSize
}

func extractHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req extractRequest
		if err := httputil.DecodeJSON(r, &req, maxJSONBody(deps)); err != nil {
			httputil.Fail(deps.Log, w, err.Error(), nil, http.StatusBadRequest)
			return
		}
		httputil.WriteEnvelope(w, deps.Documents.Extract(r.Context(), req.FilePath))
	}
}

func summarizeHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req summarizeRequest
		if err := httputil.DecodeJSON(r, &req, maxJSONBody(deps)); err != nil {
			httputil.Fail(deps.Log, w, err.Error(), nil, http.StatusBadRequest)
			return
		}
		httputil.WriteEnvelope(w, deps.Documents.Summarize(r.Context(), req.FilePath, req.SummaryType))
	}
}

func textSummaryHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req textSummaryRequest
		if err := httputil.DecodeJSON(r, &req, maxJSONBody(deps)); err != nil {
			httputil.Fail(deps.Log, w, err.Error(), nil, http.StatusBadRequest)
			return
		}
		httputil.WriteEnvelope(w, deps.Documents.SummarizeText(r.Context(), req.Text, req.SummaryType))
	}
}

// uploadHandler stores the multipart file in a temp file that keeps its
// extension, summarises it, and removes the temp file.
func uploadHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize
	tooLarge := fmt.Sprintf("file too large (max %d bytes)", maxFileSize)

	return func(w http.ResponseWriter, r *http.Request) {
		// Validate file size before parsing
		if r.ContentLength > maxFileSize {
			httputil.Fail(deps.Log, w, tooLarge, nil, http.StatusRequestEntityTooLarge)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.Fail(deps.Log, w, "file is required", err, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > maxFileSize {
			httputil.Fail(deps.Log, w, tooLarge, nil, http.StatusRequestEntityTooLarge)
			return
		}

		ft, ok := extractor.FileTypeFromPath(header.Filename)
		if !ok {
			httputil.Fail(deps.Log, w, extractor.MsgUnsupported, nil, http.StatusBadRequest)
			return
		}

		tmp, err := saveTemp(file, filepath.Ext(header.Filename))
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to store upload", err, http.StatusInternalServerError)
			return
		}
		defer os.Remove(tmp)

		resp := deps.Documents.Summarize(r.Context(), tmp, r.FormValue("summary_type"))
		httputil.WriteEnvelope(w, resp.WithFile(header.Filename, ft))
	}
}

func saveTemp(src io.Reader, ext string) (string, error) {
	f, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
