package pipeline

import (
	"context"

	"docqa/internal/domain"
)

// Pipeline answers questions against a single document through an
// ephemeral vector index. Each Pipeline owns its index for the duration
// of one request; instances are not reused.
type Pipeline struct {
	chunker   domain.Chunker
	completer domain.Completer
	index     domain.Index
	topK      int
}

func New(chunker domain.Chunker, completer domain.Completer, index domain.Index, topK int) *Pipeline {
	if topK <= 0 {
		topK = 5
	}
	return &Pipeline{chunker: chunker, completer: completer, index: index, topK: topK}
}

// Run answers every question against the document text, in question
// order. The document is chunked and indexed once and the populated
// index is reused across questions; each question then runs
// structured-query extraction, top-k retrieval, and answer synthesis.
// The index is cleared exactly once before returning, success or not.
// Any stage failure aborts the whole batch: no partial answers.
func (p *Pipeline) Run(ctx context.Context, documentText string, questions []string) ([]string, error) {
	if len(questions) == 0 {
		return nil, &domain.ValidationError{Msg: "at least one question is required"}
	}
	if err := p.indexDocument(ctx, documentText); err != nil {
		return nil, err
	}
	defer func() {
		_ = p.index.Clear(context.WithoutCancel(ctx))
	}()

	answers := make([]string, 0, len(questions))
	for _, question := range questions {
		structured, err := p.completer.ExtractStructuredQuery(ctx, question)
		if err != nil {
			return nil, err
		}
		hits, err := p.index.Search(ctx, structured, p.topK)
		if err != nil {
			return nil, err
		}
		answer, err := p.completer.SynthesizeAnswer(ctx, question, hits)
		if err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}
	return answers, nil
}

// Evaluate runs the retrieval stages for one question and asks for a
// structured logic evaluation instead of a free-form answer.
func (p *Pipeline) Evaluate(ctx context.Context, documentText, question string) (domain.Evaluation, error) {
	if question == "" {
		return domain.Evaluation{}, &domain.ValidationError{Msg: "a question is required"}
	}
	if err := p.indexDocument(ctx, documentText); err != nil {
		return domain.Evaluation{}, err
	}
	defer func() {
		_ = p.index.Clear(context.WithoutCancel(ctx))
	}()

	structured, err := p.completer.ExtractStructuredQuery(ctx, question)
	if err != nil {
		return domain.Evaluation{}, err
	}
	hits, err := p.index.Search(ctx, structured, p.topK)
	if err != nil {
		return domain.Evaluation{}, err
	}
	return p.completer.EvaluateLogic(ctx, question, hits)
}

func (p *Pipeline) indexDocument(ctx context.Context, documentText string) error {
	chunks, err := p.chunker.Chunk(documentText)
	if err != nil {
		return err
	}
	_, err = p.index.Add(ctx, chunks)
	return err
}
