package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a b", Normalize("  a \t b  "))
	assert.Equal(t, "a\n\nb", Normalize("a\n\n\n\n\nb"))
	assert.Equal(t, "a\nb", Normalize("a\nb"))
	assert.Equal(t, "", Normalize("   \n \n  "))
}

func TestChunkShortTextReturnsSingleChunk(t *testing.T) {
	c := NewParagraphChunker(100, 20)
	chunks, err := c.Chunk("just  a short   text")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "just a short text", chunks[0])
}

func TestChunkEmptyInput(t *testing.T) {
	c := NewParagraphChunker(100, 20)
	chunks, err := c.Chunk("")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, chunks)
}

func TestChunkParagraphPackingWithOverlap(t *testing.T) {
	c := NewParagraphChunker(5, 2)
	chunks, err := c.Chunk("A. B.\n\nC. D.")
	require.NoError(t, err)
	assert.Equal(t, []string{"A. B.", "B.\n\nC. D."}, chunks)
}

func TestChunkOverlapStrippedReconstructsText(t *testing.T) {
	const overlap = 4
	paragraphs := []string{
		"first paragraph here",
		"second paragraph follows",
		"third one",
		"a fourth paragraph to push past the boundary",
		"and the last",
	}
	text := strings.Join(paragraphs, "\n\n")
	c := NewParagraphChunker(40, overlap)
	chunks, err := c.Chunk(text)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	var b strings.Builder
	b.WriteString(chunks[0])
	for _, ch := range chunks[1:] {
		rs := []rune(ch)
		require.GreaterOrEqual(t, len(rs), overlap)
		b.WriteString(string(rs[overlap:]))
	}
	assert.Equal(t, Normalize(text), b.String())
}

func TestChunkSizeBound(t *testing.T) {
	const size, overlap = 30, 6
	paragraphs := []string{
		"alpha beta gamma",
		"delta epsilon",
		"zeta eta theta iota",
		"kappa lambda mu",
		"nu xi omicron pi",
	}
	c := NewParagraphChunker(size, overlap)
	chunks, err := c.Chunk(strings.Join(paragraphs, "\n\n"))
	require.NoError(t, err)
	for _, ch := range chunks {
		// the seeded overlap and its separator are not counted
		// against the size budget
		assert.LessOrEqual(t, len([]rune(ch)), size+overlap+2)
	}
}

func TestChunkOversizedParagraphKeptWhole(t *testing.T) {
	long := strings.Repeat("x", 50)
	c := NewParagraphChunker(10, 2)
	chunks, err := c.Chunk("short\n\n" + long)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "short", chunks[0])
	assert.True(t, strings.HasSuffix(chunks[1], long))
}
