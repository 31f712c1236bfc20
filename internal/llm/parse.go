package llm

import (
	"encoding/json"

	"docqa/internal/domain"
)

// parseEvaluation locates the first balanced JSON object in the model
// output and unmarshals it. If nothing parses, it returns a fallback
// result marked as a parse failure with the raw response attached.
func parseEvaluation(raw string) domain.Evaluation {
	if obj := firstJSONObject(raw); obj != "" {
		var ev domain.Evaluation
		if err := json.Unmarshal([]byte(obj), &ev); err == nil {
			return ev
		}
	}
	return domain.Evaluation{ParseFailed: true, Raw: raw}
}

// firstJSONObject scans for the first balanced top-level {...} in s,
// ignoring braces inside JSON strings. Returns "" if none is found.
func firstJSONObject(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
