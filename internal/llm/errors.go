package llm

import (
	"errors"
	"fmt"
)

// Sentinel errors derived from the provider's HTTP status code. Callers
// classify failures with errors.Is rather than matching message text.
var (
	// ErrQuotaExceeded indicates the provider rejected the call with a
	// rate-limit or quota error (HTTP 429).
	ErrQuotaExceeded = errors.New("provider quota exceeded")

	// ErrUnauthorized indicates a missing or rejected credential
	// (HTTP 401/403).
	ErrUnauthorized = errors.New("provider rejected credential")
)

// apiError wraps a provider HTTP failure with its status code.
type apiError struct {
	provider Provider
	status   int
	body     string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.provider, e.status, e.body)
}

func (e *apiError) Unwrap() error {
	switch {
	case e.status == 429:
		return ErrQuotaExceeded
	case e.status == 401 || e.status == 403:
		return ErrUnauthorized
	default:
		return nil
	}
}

// newAPIError builds a tagged error for a non-2xx provider response.
func newAPIError(provider Provider, status int, body string) error {
	return &apiError{provider: provider, status: status, body: body}
}
