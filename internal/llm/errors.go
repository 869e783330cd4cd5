package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Common errors returned by the router.
var (
	// ErrNoCredentials indicates no provider API key is configured.
	ErrNoCredentials = errors.New("no LLM provider credential configured")

	// ErrEmptyResponse indicates the provider returned no text.
	ErrEmptyResponse = errors.New("empty response from LLM provider")
)

// ProviderError is an error from a provider API call, tagged with the
// provider name and HTTP status.
type ProviderError struct {
	Provider   Provider
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// Transient reports whether the error is worth retrying: rate limits and
// server-side failures are, other 4xx responses are not.
func (e *ProviderError) Transient() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// IsTransient reports whether an error from a transport call should be
// retried: retryable provider errors, timeouts, and network failures.
func IsTransient(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Transient()
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return false
}
