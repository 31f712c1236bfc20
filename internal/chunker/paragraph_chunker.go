package chunker

import (
	"regexp"
	"strings"
)

// ParagraphChunker splits normalized text into overlapping, size-bounded
// chunks along blank-line paragraph boundaries. Sizes and overlaps are
// measured in runes.
type ParagraphChunker struct {
	chunkSize    int
	chunkOverlap int
}

var (
	spaceRuns   = regexp.MustCompile(`[^\S\n]+`)
	newlineRuns = regexp.MustCompile(`\n{3,}`)
)

func NewParagraphChunker(chunkSize, chunkOverlap int) *ParagraphChunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	return &ParagraphChunker{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// Normalize collapses runs of blank space to single spaces, collapses
// three or more newlines to a blank line, and trims the ends.
func Normalize(text string) string {
	text = spaceRuns.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Chunk greedily packs paragraphs into chunks of at most chunkSize
// runes. When a paragraph would overflow the running chunk, the chunk
// is closed and the next one is seeded with the tail chunkOverlap runes
// of the closed chunk; the seed is not counted against the new chunk's
// size. A single paragraph longer than chunkSize is kept whole.
func (c *ParagraphChunker) Chunk(text string) ([]string, error) {
	text = Normalize(text)
	if runeLen(text) <= c.chunkSize {
		return []string{text}, nil
	}

	paragraphs := strings.Split(text, "\n\n")
	var chunks []string
	var current string
	for _, p := range paragraphs {
		if runeLen(current)+runeLen(p) > c.chunkSize {
			if current != "" {
				chunks = append(chunks, current)
			}
			if len(chunks) > 0 && c.chunkOverlap > 0 {
				current = tailRunes(chunks[len(chunks)-1], c.chunkOverlap) + "\n\n" + p
			} else {
				current = p
			}
			continue
		}
		if current == "" {
			current = p
		} else {
			current += "\n\n" + p
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks, nil
}

func runeLen(s string) int { return len([]rune(s)) }

func tailRunes(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[len(rs)-n:])
}
