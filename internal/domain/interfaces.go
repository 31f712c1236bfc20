package domain

import "context"

// Chunker splits cleaned document text into overlapping retrieval units.
type Chunker interface {
	Chunk(text string) ([]string, error)
}

// Embedder converts a batch of texts into fixed-dimension vectors,
// one per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer covers the text-generation operations used by the pipeline.
type Completer interface {
	ExtractStructuredQuery(ctx context.Context, question string) (string, error)
	SynthesizeAnswer(ctx context.Context, question string, chunks []string) (string, error)
	EvaluateLogic(ctx context.Context, question string, chunks []string) (Evaluation, error)
}

// Index stores embedded texts for one document and supports
// nearest-neighbor retrieval. Implementations must return search
// results nearest-first and tolerate k larger than the entry count.
type Index interface {
	Add(ctx context.Context, texts []string) ([]string, error)
	Search(ctx context.Context, query string, k int) ([]string, error)
	Clear(ctx context.Context) error
}

// Extractor produces plain text from a downloaded document file.
type Extractor interface {
	Extract(path string) (string, error)
}
