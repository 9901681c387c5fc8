package ai

// Kind identifies which of the backend request types an action maps to.
// The values travel on the wire as the "request_type" field.
type Kind string

const (
	KindCompletion    Kind = "completion"
	KindDocumentation Kind = "documentation"
	KindExplanation   Kind = "explanation"
)

// Request is one user-triggered action, fully built before dispatch and
// never mutated afterwards.
type Request struct {
	ID           string
	Prompt       string
	SystemPrompt string
	Temperature  float64
	Language     string
	Kind         Kind
}

// Response is the backend's answer to a Request. The orchestrator keeps
// only the latest one.
type Response struct {
	Text      string `json:"response"`
	Model     string `json:"model"`
	Timestamp string `json:"timestamp"`
	Provider  string `json:"provider,omitempty"`
}
