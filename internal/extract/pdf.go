package extract

import (
	"fmt"
	"strings"

	"rsc.io/pdf"
)

// PDF extracts page text from PDF documents.
type PDF struct{}

func (PDF) Extract(path string) (text string, err error) {
	// rsc.io/pdf panics on malformed files
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, t := range p.Content().Text {
			sb.WriteString(strings.ReplaceAll(t.S, "\x00", ""))
		}
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}
