package domain

// Evaluation is the structured result of evaluating a question against
// retrieved document context. When the model output cannot be parsed,
// ParseFailed is set and Raw carries the unparsed response.
type Evaluation struct {
	RelevantClauses []string `json:"relevant_clauses"`
	Decision        string   `json:"decision"`
	Confidence      float64  `json:"confidence"`
	Reasoning       string   `json:"reasoning"`
	Conditions      []string `json:"conditions"`
	References      []string `json:"references"`
	ParseFailed     bool     `json:"parse_failed,omitempty"`
	Raw             string   `json:"raw_response,omitempty"`
}
