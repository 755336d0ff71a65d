package llm

import (
	"context"
	"errors"
	"fmt"
)

// Finish reasons normalized across providers.
const (
	FinishReasonStop   = "stop"
	FinishReasonLength = "length"
)

// Completion is a single model response.
type Completion struct {
	Text         string
	FinishReason string
}

// Provider is the contract for any completion backend.
type Provider interface {
	// Complete sends one system instruction and user prompt to the model.
	Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (*Completion, error)
}

// ProviderError carries the HTTP-level outcome of a failed completion call.
// Transient failures (rate limits, 5xx) are safe to retry; everything else
// is permanent.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
	Transient  bool
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s completion failed: status %d, body: %s", e.Provider, e.StatusCode, e.Body)
}

// IsTransient reports whether err represents a retryable completion failure.
func IsTransient(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Transient
	}
	return false
}

// TransientStatus classifies an HTTP status from a completion backend.
func TransientStatus(status int) bool {
	return status == 429 || status >= 500
}
