package providers

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrLanguageModelUnavailable is returned when no language model client is
// configured at all. Callers surface it as a service-unavailable condition.
var ErrLanguageModelUnavailable = errors.New("language model provider is not configured")

// ErrResponseMalformed marks a model response that failed JSON parsing or
// schema validation. It is never retried: a structurally wrong response is
// not a transient fault.
var ErrResponseMalformed = errors.New("language model response is malformed")

// LanguageModelProvider performs schema-validated JSON generation.
type LanguageModelProvider interface {
	// Generate sends the prompt with the system instruction and the output
	// schema the model must follow, and returns the raw JSON payload of the
	// response. Transient provider failures are retried internally with
	// exponential backoff; parse failures fail immediately wrapped in
	// ErrResponseMalformed.
	Generate(ctx context.Context, prompt, systemInstruction string, outputSchema json.RawMessage) ([]byte, error)
}
