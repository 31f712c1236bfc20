package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/domain"
)

type fakeCompleter struct {
	extractCalls     int
	synthesizeCalls  int
	failSynthesizeAt int // 1-based call number that fails; 0 = never
}

func (f *fakeCompleter) ExtractStructuredQuery(_ context.Context, question string) (string, error) {
	f.extractCalls++
	return "sq:" + question, nil
}

func (f *fakeCompleter) SynthesizeAnswer(_ context.Context, question string, chunks []string) (string, error) {
	f.synthesizeCalls++
	if f.failSynthesizeAt != 0 && f.synthesizeCalls == f.failSynthesizeAt {
		return "", &domain.ProviderError{Op: "answer synthesis", Err: errors.New("provider down")}
	}
	return "answer:" + question, nil
}

func (f *fakeCompleter) EvaluateLogic(_ context.Context, question string, chunks []string) (domain.Evaluation, error) {
	return domain.Evaluation{Decision: "yes", Confidence: 0.9}, nil
}

type recordingIndex struct {
	added      [][]string
	searches   []string
	clearCalls int
	addErr     error
}

func (r *recordingIndex) Add(_ context.Context, texts []string) ([]string, error) {
	if r.addErr != nil {
		return nil, r.addErr
	}
	r.added = append(r.added, texts)
	return make([]string, len(texts)), nil
}

func (r *recordingIndex) Search(_ context.Context, query string, k int) ([]string, error) {
	r.searches = append(r.searches, query)
	return []string{"chunk one", "chunk two"}, nil
}

func (r *recordingIndex) Clear(_ context.Context) error {
	r.clearCalls++
	return nil
}

type passthroughChunker struct{}

func (passthroughChunker) Chunk(text string) ([]string, error) { return []string{text}, nil }

func TestRunAnswersInQuestionOrder(t *testing.T) {
	completer := &fakeCompleter{}
	index := &recordingIndex{}
	p := New(passthroughChunker{}, completer, index, 5)

	answers, err := p.Run(context.Background(), "document body", []string{"q1", "q2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"answer:q1", "answer:q2"}, answers)

	// indexed once for the whole batch, cleared once at the end
	assert.Len(t, index.added, 1)
	assert.Equal(t, 1, index.clearCalls)
	// retrieval uses the structured query, not the raw question
	assert.Equal(t, []string{"sq:q1", "sq:q2"}, index.searches)
}

func TestRunFailureAbortsWholeBatch(t *testing.T) {
	completer := &fakeCompleter{failSynthesizeAt: 2}
	index := &recordingIndex{}
	p := New(passthroughChunker{}, completer, index, 5)

	answers, err := p.Run(context.Background(), "document body", []string{"q1", "q2"})
	var perr *domain.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Nil(t, answers)
	// the index is still cleaned up on failure
	assert.Equal(t, 1, index.clearCalls)
}

func TestRunEmptyQuestionsRejected(t *testing.T) {
	p := New(passthroughChunker{}, &fakeCompleter{}, &recordingIndex{}, 5)
	_, err := p.Run(context.Background(), "document body", nil)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestRunIndexFailurePropagates(t *testing.T) {
	index := &recordingIndex{addErr: &domain.IndexError{Op: "add", Err: errors.New("backend down")}}
	p := New(passthroughChunker{}, &fakeCompleter{}, index, 5)
	_, err := p.Run(context.Background(), "document body", []string{"q1"})
	var ierr *domain.IndexError
	require.ErrorAs(t, err, &ierr)
	// nothing was indexed, so nothing to clear
	assert.Equal(t, 0, index.clearCalls)
}

func TestEvaluate(t *testing.T) {
	completer := &fakeCompleter{}
	index := &recordingIndex{}
	p := New(passthroughChunker{}, completer, index, 5)

	ev, err := p.Evaluate(context.Background(), "document body", "is it covered?")
	require.NoError(t, err)
	assert.Equal(t, "yes", ev.Decision)
	assert.Equal(t, 1, index.clearCalls)
}
