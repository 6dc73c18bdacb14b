// Package extractor turns PDF, TXT and DOCX files into plain text.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FileType is a supported document format.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeTXT  FileType = "txt"
	FileTypeDOCX FileType = "docx"
)

const (
	MsgExtracted   = "Text extracted successfully"
	MsgNoText      = "No text found in document"
	MsgUnsupported = "Unsupported file format. Only PDF, TXT, and DOCX are allowed."
	MsgFailed      = "Error processing document"
	MsgCancelled   = "Request cancelled"
)

// FileTypeFromPath maps a path's extension to a FileType.
func FileTypeFromPath(path string) (FileType, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FileTypePDF, true
	case ".txt":
		return FileTypeTXT, true
	case ".docx":
		return FileTypeDOCX, true
	default:
		return "", false
	}
}

// Result is the outcome of one extraction. Failures are encoded here rather
// than returned as errors.
type Result struct {
	Success  bool     `json:"success"`
	Code     int      `json:"code"`
	Message  string   `json:"message"`
	Content  string   `json:"content,omitempty"`
	FilePath string   `json:"file_path,omitempty"`
	FileType FileType `json:"file_type,omitempty"`
}

// Loader produces the text segments of a document in reading order.
type Loader interface {
	Load(ctx context.Context, path string) ([]string, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, path string) ([]string, error)

func (f LoaderFunc) Load(ctx context.Context, path string) ([]string, error) {
	return f(ctx, path)
}

// Option customises an Extractor.
type Option func(*Extractor)

// WithLoader replaces the loader used for a file type.
func WithLoader(ft FileType, l Loader) Option {
	return func(e *Extractor) {
		e.loaders[ft] = l
	}
}

// Extractor validates a path and dispatches to the loader for its format.
type Extractor struct {
	loaders map[FileType]Loader
	log     *slog.Logger
}

// New returns an Extractor with the default PDF, TXT and DOCX loaders.
func New(log *slog.Logger, opts ...Option) *Extractor {
	e := &Extractor{
		loaders: map[FileType]Loader{
			FileTypePDF:  PDFLoader{Log: log},
			FileTypeTXT:  TextLoader{},
			FileTypeDOCX: DocxLoader{},
		},
		log: log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads the document at path. Segments are joined with newlines in
// loader order. A document without any text is reported as a 204 failure.
func (e *Extractor) Extract(ctx context.Context, path string) Result {
	log := e.log.With("file_path", path)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("validation failed", "reason", "file not found")
			return failure(http.StatusBadRequest, fmt.Sprintf("File not found: %s", path), path, "")
		}
		log.Error("failed to stat document", "err", err)
		return failure(http.StatusInternalServerError, MsgFailed, path, "")
	}
	if !info.Mode().IsRegular() {
		log.Warn("validation failed", "reason", "not a regular file")
		return failure(http.StatusBadRequest, fmt.Sprintf("Not a regular file: %s", path), path, "")
	}
	ft, ok := FileTypeFromPath(path)
	if !ok {
		log.Warn("validation failed", "reason", "unsupported extension", "ext", filepath.Ext(path))
		return failure(http.StatusBadRequest, MsgUnsupported, path, "")
	}
	loader, ok := e.loaders[ft]
	if !ok {
		return failure(http.StatusBadRequest, MsgUnsupported, path, ft)
	}
	if err := ctx.Err(); err != nil {
		return failure(http.StatusInternalServerError, MsgCancelled, path, ft)
	}

	segments, err := safeLoad(ctx, loader, path)
	if err != nil {
		log.Error("error processing document", "file_type", ft, "err", err)
		return failure(http.StatusInternalServerError, MsgFailed, path, ft)
	}

	content := strings.Join(segments, "\n")
	if strings.TrimSpace(content) == "" {
		log.Warn("no text found in document", "file_type", ft, "segments", len(segments))
		return failure(http.StatusNoContent, MsgNoText, path, ft)
	}

	log.Info("text extracted", "file_type", ft, "segments", len(segments), "chars", len(content))
	return Result{
		Success:  true,
		Code:     http.StatusOK,
		Message:  MsgExtracted,
		Content:  content,
		FilePath: path,
		FileType: ft,
	}
}

// safeLoad converts a loader panic into an error; the PDF parser panics on
// some malformed files.
func safeLoad(ctx context.Context, l Loader, path string) (segments []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("loader panic: %v", rec)
		}
	}()
	return l.Load(ctx, path)
}

func failure(code int, message, path string, ft FileType) Result {
	return Result{
		Success:  false,
		Code:     code,
		Message:  message,
		FilePath: path,
		FileType: ft,
	}
}
