package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"docqa/internal/domain"
)

// Index is a minimal REST client to a managed Qdrant instance. Each
// Index owns a uniquely named collection holding one document's chunks;
// Clear drops the collection so ids are never reused against stale
// text. Qdrant ranks by cosine similarity, nearest first.
type Index struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	embedder   domain.Embedder
	client     *http.Client

	mu    sync.Mutex
	ready bool
}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewIndex(cfg Config, embedder domain.Embedder, dimension int) *Index {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	collection := cfg.Collection
	if collection == "" {
		collection = "docqa"
	}
	return &Index{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: collection + "-" + uuid.NewString(),
		dimension:  dimension,
		embedder:   embedder,
		client:     &http.Client{Timeout: timeout},
	}
}

func (s *Index) Add(ctx context.Context, texts []string) ([]string, error) {
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCollection(ctx); err != nil {
		return nil, err
	}
	ids := make([]string, len(texts))
	points := make([]map[string]any, len(texts))
	for i := range texts {
		ids[i] = uuid.NewString()
		points[i] = map[string]any{
			"id":      ids[i],
			"vector":  vectors[i],
			"payload": map[string]any{"text": texts[i]},
		}
	}
	body := map[string]any{"points": points}
	url := fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection)
	if err := s.doJSON(ctx, http.MethodPut, url, body, nil); err != nil {
		return nil, &domain.IndexError{Op: "add", Err: err}
	}
	return ids, nil
}

func (s *Index) Search(ctx context.Context, query string, k int) ([]string, error) {
	if k <= 0 {
		k = 5
	}
	s.mu.Lock()
	ready := s.ready
	s.mu.Unlock()
	if !ready {
		return nil, nil
	}
	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	req := map[string]any{
		"vector":       vectors[0],
		"limit":        k,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection)
	if err := s.doJSON(ctx, http.MethodPost, url, req, &resp); err != nil {
		return nil, &domain.IndexError{Op: "search", Err: err}
	}
	results := make([]string, 0, len(resp.Result))
	for _, r := range resp.Result {
		if text, ok := r.Payload["text"].(string); ok {
			results = append(results, text)
		}
	}
	return results, nil
}

// Clear drops the collection. Best-effort: clearing an absent
// collection is not an error, and repeated calls are no-ops.
func (s *Index) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil
	}
	url := fmt.Sprintf("%s/collections/%s", s.url, s.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return &domain.IndexError{Op: "clear", Err: err}
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return &domain.IndexError{Op: "clear", Err: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	s.ready = false
	return nil
}

func (s *Index) ensureCollection(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     s.dimension,
			"distance": "Cosine",
		},
	}
	url := fmt.Sprintf("%s/collections/%s", s.url, s.collection)
	if err := s.doJSON(ctx, http.MethodPut, url, body, nil); err != nil {
		return &domain.IndexError{Op: "create collection", Err: err}
	}
	s.ready = true
	return nil
}

func (s *Index) doJSON(ctx context.Context, method, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s failed: %s", method, url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (s *Index) setHeaders(req *http.Request) {
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
}
