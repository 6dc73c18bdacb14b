package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
)

// PDFLoader returns one segment per page that has a content stream. Pages
// whose text cannot be decoded are logged and skipped.
type PDFLoader struct {
	Log *slog.Logger
}

// errNoReadablePages is returned when pages carry content but none of it
// could be decoded.
var errNoReadablePages = errors.New("no page could be extracted")

func (l PDFLoader) Load(ctx context.Context, path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF file: %w", err)
	}
	defer f.Close()

	return collectPages(ctx, r.NumPage(), func(pageNum int) (string, bool, error) {
		page := r.Page(pageNum)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			return "", false, nil
		}
		text, err := page.GetPlainText(nil)
		return text, true, err
	}, l.logger().With("file_path", path))
}

func (l PDFLoader) logger() *slog.Logger {
	if l.Log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.Log
}

// pageText reports a page's text and whether the page has content at all.
type pageText func(pageNum int) (text string, hasContent bool, err error)

func collectPages(ctx context.Context, numPages int, read pageText, log *slog.Logger) ([]string, error) {
	segments := make([]string, 0, numPages)
	withContent, failed := 0, 0
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, hasContent, err := read(pageNum)
		if !hasContent {
			continue
		}
		withContent++
		if err != nil {
			failed++
			log.Warn("skipping unreadable page", "page", pageNum, "err", err)
			continue
		}
		segments = append(segments, text)
	}
	if withContent > 0 && failed == withContent {
		return nil, fmt.Errorf("%w: %d pages failed", errNoReadablePages, failed)
	}
	return segments, nil
}

// TextLoader returns the whole file as a single segment.
type TextLoader struct{}

var errNotUTF8 = errors.New("file is not valid UTF-8 text")

func (TextLoader) Load(_ context.Context, path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, errNotUTF8
	}
	return []string{string(b)}, nil
}

// DocxLoader returns the document body as a single segment.
type DocxLoader struct{}

func (DocxLoader) Load(_ context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	body, _, err := docconv.ConvertDocx(f)
	if err != nil {
		return nil, fmt.Errorf("failed to convert docx: %w", err)
	}
	return []string{strings.TrimSpace(body)}, nil
}
