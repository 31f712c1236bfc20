package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"docqa/internal/domain"
	"docqa/internal/retry"
)

// Client talks to an OpenAI-compatible provider for both embeddings and
// chat completions. Every remote call runs under the shared retry
// policy; exhausted retries surface as a ProviderError carrying the
// last underlying cause.
type Client struct {
	client     *openai.Client
	chatModel  string
	embedModel string
	policy     retry.Policy
}

type Config struct {
	BaseURL    string
	APIKey     string
	ChatModel  string
	EmbedModel string
	Timeout    time.Duration
	Policy     retry.Policy
}

func NewClient(cfg Config) *Client {
	oaiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oaiCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		oaiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = openai.GPT4
	}
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = string(openai.AdaEmbeddingV2)
	}
	if cfg.Policy.Attempts == 0 {
		cfg.Policy = retry.DefaultPolicy()
	}
	return &Client{
		client:     openai.NewClientWithConfig(oaiCfg),
		chatModel:  cfg.ChatModel,
		embedModel: cfg.EmbedModel,
		policy:     cfg.Policy,
	}
}

// Embed returns one vector per input text, in input order, from a
// single batched embeddings call. An empty input fails fast without
// touching the provider.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, &domain.ValidationError{Msg: "embed: empty text list"}
	}
	var out [][]float32
	err := c.policy.Do(ctx, func() error {
		resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Model: openai.EmbeddingModel(c.embedModel),
			Input: texts,
		})
		if err != nil {
			return err
		}
		if len(resp.Data) != len(texts) {
			return fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
		}
		vectors := make([][]float32, len(resp.Data))
		for _, d := range resp.Data {
			if d.Index < 0 || d.Index >= len(vectors) {
				return fmt.Errorf("embedding index %d out of range", d.Index)
			}
			vectors[d.Index] = d.Embedding
		}
		out = vectors
		return nil
	})
	if err != nil {
		return nil, &domain.ProviderError{Op: "embeddings", Err: err}
	}
	return out, nil
}

// ExtractStructuredQuery compresses a natural-language question into a
// concise retrieval key. The key is never shown to end users.
func (c *Client) ExtractStructuredQuery(ctx context.Context, question string) (string, error) {
	out, err := c.complete(ctx, structuredQuerySystem, structuredQueryPrompt(question), 0.3, 100)
	if err != nil {
		return "", &domain.ProviderError{Op: "structured query", Err: err}
	}
	return out, nil
}

// SynthesizeAnswer composes an answer to the question from the given
// context chunks, instructing the model to answer only from context.
func (c *Client) SynthesizeAnswer(ctx context.Context, question string, chunks []string) (string, error) {
	combined := strings.Join(chunks, contextSeparator)
	out, err := c.complete(ctx, answerSystem, answerPrompt(question, combined), 0.5, 300)
	if err != nil {
		return "", &domain.ProviderError{Op: "answer synthesis", Err: err}
	}
	return out, nil
}

// EvaluateLogic asks the model for a JSON-shaped evaluation of the
// question against the context. An unparsable response degrades to a
// fallback Evaluation carrying the raw text; it is never an error.
func (c *Client) EvaluateLogic(ctx context.Context, question string, chunks []string) (domain.Evaluation, error) {
	combined := strings.Join(chunks, contextSeparator)
	out, err := c.complete(ctx, evaluationSystem, evaluationPrompt(question, combined), 0.3, 500)
	if err != nil {
		return domain.Evaluation{}, &domain.ProviderError{Op: "logic evaluation", Err: err}
	}
	return parseEvaluation(out), nil
}

func (c *Client) complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	var out string
	err := c.policy.Do(ctx, func() error {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
			Temperature: temperature,
			MaxTokens:   maxTokens,
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return errors.New("completion returned no choices")
		}
		out = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	})
	return out, err
}
