package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/domain"
)

func TestFirstJSONObject(t *testing.T) {
	assert.Equal(t, `{"a":1}`, firstJSONObject(`prefix {"a":1} suffix`))
	assert.Equal(t, `{"a":{"b":2}}`, firstJSONObject(`{"a":{"b":2}} {"c":3}`))
	assert.Equal(t, `{"a":"close } brace"}`, firstJSONObject(`note {"a":"close } brace"} end`))
	assert.Equal(t, `{"a":"esc \" quote}"}`, firstJSONObject(`{"a":"esc \" quote}"}`))
	assert.Equal(t, "", firstJSONObject("no json here"))
	assert.Equal(t, "", firstJSONObject(`{"unterminated": true`))
}

func TestParseEvaluation(t *testing.T) {
	raw := `Here is my evaluation:
{
    "relevant_clauses": ["clause 4.2"],
    "decision": "partial",
    "confidence": 0.75,
    "reasoning": "the waiting period applies",
    "conditions": ["after 24 months"],
    "references": ["section 4"]
}
Let me know if you need more detail.`

	ev := parseEvaluation(raw)
	assert.False(t, ev.ParseFailed)
	assert.Equal(t, "partial", ev.Decision)
	assert.InDelta(t, 0.75, ev.Confidence, 1e-9)
	assert.Equal(t, []string{"clause 4.2"}, ev.RelevantClauses)
	assert.Equal(t, []string{"after 24 months"}, ev.Conditions)
}

func TestParseEvaluationFallback(t *testing.T) {
	raw := "I cannot produce JSON for this."
	ev := parseEvaluation(raw)
	assert.True(t, ev.ParseFailed)
	assert.Equal(t, raw, ev.Raw)
	assert.Empty(t, ev.Decision)
}

func TestParseEvaluationMalformedJSONFallsBack(t *testing.T) {
	raw := `{"decision": yes}`
	ev := parseEvaluation(raw)
	assert.True(t, ev.ParseFailed)
	assert.Equal(t, raw, ev.Raw)
}

func TestEmbedEmptyInputFailsFast(t *testing.T) {
	c := NewClient(Config{APIKey: "test"})
	_, err := c.Embed(context.Background(), nil)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}
