package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextSplitsOnSpaces(t *testing.T) {
	chunks, err := ChunkText("Chunk1. Chunk2. Chunk3.", Options{ChunkSize: 8, Overlap: 0})
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	for i, want := range []string{"Chunk1.", "Chunk2.", "Chunk3."} {
		assert.Equal(t, i, chunks[i].Index)
		assert.Equal(t, want, chunks[i].Text)
		assert.Equal(t, 7, chunks[i].Length)
	}
}

func TestChunkTextOverlap(t *testing.T) {
	text := "one two three four five six seven eight nine ten"
	chunks, err := ChunkText(text, Options{ChunkSize: 15, Overlap: 5})
	require.NoError(t, err)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Length > 15 {
			t.Errorf("chunk %d exceeds max length: %q", i, c.Text)
		}
		if i == 0 {
			continue
		}
		prev := strings.Fields(chunks[i-1].Text)
		cur := strings.Fields(c.Text)
		if prev[len(prev)-1] != cur[0] {
			t.Errorf("expected chunk %d to start with %q, got %q", i, prev[len(prev)-1], c.Text)
		}
	}
	for _, word := range strings.Fields(text) {
		found := false
		for _, c := range chunks {
			if strings.Contains(c.Text, word) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("word %q missing from chunks", word)
		}
	}
}

func TestChunkTextPrefersParagraphs(t *testing.T) {
	text := strings.Repeat("a", 30) + "\n\n" + strings.Repeat("b", 30)
	chunks, err := ChunkText(text, Options{ChunkSize: 40, Overlap: 0})
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.Equal(t, strings.Repeat("a", 30), chunks[0].Text)
	assert.Equal(t, strings.Repeat("b", 30), chunks[1].Text)
}

func TestChunkTextHardCutoff(t *testing.T) {
	chunks, err := ChunkText(strings.Repeat("x", 25), Options{ChunkSize: 10, Overlap: 0})
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.LessOrEqual(t, c.Length, 10)
	}
}

func TestChunkTextIsIdempotent(t *testing.T) {
	text := strings.Repeat("Lorem ipsum dolor sit amet, consectetur adipiscing elit.\n", 200)
	s, err := New(Options{ChunkSize: 300, Overlap: 40})
	require.NoError(t, err)

	first, err := s.SplitText(text)
	require.NoError(t, err)
	second, err := s.SplitText(text)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Greater(t, len(first), 1)
}

func TestChunkTextMultibyte(t *testing.T) {
	text := "Bonjour, это тест, こんにちは, مرحباً"
	chunks, err := ChunkText(text, Options{ChunkSize: 2000, Overlap: 100})
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0].Text)
}

func TestChunkTextEmptyInput(t *testing.T) {
	chunks, err := ChunkText("", Options{ChunkSize: 10})
	require.NoError(t, err)
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty input, got %d", len(chunks))
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero size", Options{ChunkSize: 0}},
		{"negative overlap", Options{ChunkSize: 10, Overlap: -1}},
		{"overlap equals size", Options{ChunkSize: 10, Overlap: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			assert.ErrorIs(t, err, ErrInvalidOptions)
		})
	}
}
