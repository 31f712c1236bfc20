package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"docqa/internal/domain"
)

// Index is a flat in-process vector store using brute-force squared-L2
// distance. Entry ids are sequential and reset on Clear.
type Index struct {
	mu        sync.RWMutex
	embedder  domain.Embedder
	dimension int
	nextID    int
	vectors   [][]float32
	texts     []string
}

func NewIndex(embedder domain.Embedder, dimension int) *Index {
	return &Index{embedder: embedder, dimension: dimension}
}

func (s *Index) Add(ctx context.Context, texts []string) ([]string, error) {
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return nil, &domain.IndexError{Op: "add", Err: fmt.Errorf("vector dimension %d, want %d", len(v), s.dimension)}
		}
	}
	ids := make([]string, len(texts))
	for i := range texts {
		ids[i] = strconv.Itoa(s.nextID)
		s.nextID++
	}
	s.vectors = append(s.vectors, vectors...)
	s.texts = append(s.texts, texts...)
	return ids, nil
}

func (s *Index) Search(ctx context.Context, query string, k int) ([]string, error) {
	if k <= 0 {
		k = 5
	}
	s.mu.RLock()
	empty := len(s.vectors) == 0
	s.mu.RUnlock()
	if empty {
		return nil, nil
	}
	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	q := vectors[0]
	if len(q) != s.dimension {
		return nil, &domain.IndexError{Op: "search", Err: fmt.Errorf("query dimension %d, want %d", len(q), s.dimension)}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	type scored struct {
		idx  int
		dist float64
	}
	scores := make([]scored, len(s.vectors))
	for i, v := range s.vectors {
		scores[i] = scored{idx: i, dist: sqDistance(v, q)}
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].dist < scores[j].dist })
	if k > len(scores) {
		k = len(scores)
	}
	results := make([]string, 0, k)
	for i := 0; i < k; i++ {
		results = append(results, s.texts[scores[i].idx])
	}
	return results, nil
}

func (s *Index) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = nil
	s.texts = nil
	s.nextID = 0
	return nil
}

func sqDistance(a, b []float32) float64 {
	sum := 0.0
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
