// Package api talks to the hosted Responses API over a single streaming
// HTTP connection per invocation.
package api

// Verbosity levels accepted by the text.verbosity request field.
const (
	VerbosityLow    = "low"
	VerbosityMedium = "medium"
	VerbosityHigh   = "high"
)

// ValidVerbosity reports whether v is an accepted verbosity level.
func ValidVerbosity(v string) bool {
	switch v {
	case VerbosityLow, VerbosityMedium, VerbosityHigh:
		return true
	default:
		return false
	}
}

// Request is one stateless prompt exchange.
type Request struct {
	// Model is the model identifier sent as-is.
	Model string
	// Verbosity is the text.verbosity setting, passed through unchanged.
	Verbosity string
	// System is the system instruction; omitted from the payload if empty.
	System string
	// Prompt is the user prompt text.
	Prompt string
}

// payload is the wire shape of a streaming request.
type payload struct {
	Model  string      `json:"model"`
	Text   textConfig  `json:"text"`
	Input  []inputItem `json:"input"`
	Stream bool        `json:"stream"`
}

type textConfig struct {
	Verbosity string `json:"verbosity"`
}

type inputItem struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// buildPayload wraps the system instruction and user prompt into the
// role/content-part input list.
func buildPayload(req Request) payload {
	var input []inputItem
	if req.System != "" {
		input = append(input, inputItem{
			Role:    "system",
			Content: []contentPart{{Type: "input_text", Text: req.System}},
		})
	}
	input = append(input, inputItem{
		Role:    "user",
		Content: []contentPart{{Type: "input_text", Text: req.Prompt}},
	})

	return payload{
		Model:  req.Model,
		Text:   textConfig{Verbosity: req.Verbosity},
		Input:  input,
		Stream: true,
	}
}
