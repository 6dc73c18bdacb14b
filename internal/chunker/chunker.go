package chunker

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/tmc/langchaingo/textsplitter"
)

// Separators are tried in order: paragraphs, lines, words, then characters.
var Separators = []string{"\n\n", "\n", " ", ""}

// Options controls how text is chunked. Sizes are measured in characters.
type Options struct {
	ChunkSize int
	Overlap   int
}

// ErrInvalidOptions is returned for a non-positive size or an overlap that
// does not fit inside a chunk.
var ErrInvalidOptions = errors.New("invalid chunk options")

// Chunk represents a slice of the document text.
type Chunk struct {
	Index  int
	Text   string
	Length int
}

// Splitter is a recursive, boundary-aware splitter. Consecutive chunks share
// up to Overlap trailing characters of the previous chunk.
type Splitter struct {
	opts     Options
	splitter textsplitter.RecursiveCharacter
}

// New validates opts and builds a Splitter.
func New(opts Options) (*Splitter, error) {
	if opts.ChunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d", ErrInvalidOptions, opts.ChunkSize)
	}
	if opts.Overlap < 0 || opts.Overlap >= opts.ChunkSize {
		return nil, fmt.Errorf("%w: overlap %d with chunk size %d", ErrInvalidOptions, opts.Overlap, opts.ChunkSize)
	}
	return &Splitter{
		opts: opts,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(opts.ChunkSize),
			textsplitter.WithChunkOverlap(opts.Overlap),
			textsplitter.WithSeparators(Separators),
		),
	}, nil
}

// SplitText returns the chunk texts in document order.
func (s *Splitter) SplitText(text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}
	parts, err := s.splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("split text: %w", err)
	}
	return parts, nil
}

// ChunkText splits text and numbers the chunks.
func (s *Splitter) ChunkText(text string) ([]Chunk, error) {
	parts, err := s.SplitText(text)
	if err != nil {
		return nil, err
	}
	chunks := make([]Chunk, 0, len(parts))
	for _, p := range parts {
		chunks = append(chunks, Chunk{
			Index:  len(chunks),
			Text:   p,
			Length: utf8.RuneCountInString(p),
		})
	}
	return chunks, nil
}

// ChunkText is a one-shot helper around New and Splitter.ChunkText.
func ChunkText(text string, opts Options) ([]Chunk, error) {
	s, err := New(opts)
	if err != nil {
		return nil, err
	}
	return s.ChunkText(text)
}
