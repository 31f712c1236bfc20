// Package extract turns downloaded document files into plain text, one
// extractor per supported format.
package extract

import (
	"fmt"

	"docqa/internal/domain"
)

// Registry maps document extensions to their extractors.
type Registry struct {
	extractors map[string]domain.Extractor
}

func NewRegistry() *Registry {
	return &Registry{extractors: map[string]domain.Extractor{
		"pdf":  PDF{},
		"docx": Docx{},
		"eml":  Email{},
		"txt":  Text{},
	}}
}

// Extract dispatches to the extractor for ext. Unknown extensions are a
// ValidationError; extraction failures surface as FetchErrors so the
// whole download-and-extract stage maps to one failure class.
func (r *Registry) Extract(path, ext string) (string, error) {
	ex, ok := r.extractors[ext]
	if !ok {
		return "", &domain.ValidationError{Msg: fmt.Sprintf("no extractor available for file type: %q", ext)}
	}
	text, err := ex.Extract(path)
	if err != nil {
		return "", &domain.FetchError{URL: path, Err: err}
	}
	return text, nil
}
