package models

import (
	"errors"
	"fmt"
)

// Error taxonomy for the discovery pipeline. Callers branch on these with
// errors.Is; provider and store failures wrap the underlying cause.
var (
	// ErrInvalidInput marks a caller error that can be fixed locally,
	// e.g. an empty address. Never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a valid request that produced no result.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited marks provider throttling. Callers should back off
	// before retrying.
	ErrRateLimited = errors.New("rate limited")

	// ErrProvider marks a transport or parse failure against an external
	// provider. Transient, eligible for a user-facing "try again".
	ErrProvider = errors.New("provider error")

	// ErrTimeout marks an external call that exceeded its deadline.
	ErrTimeout = errors.New("timeout")

	// ErrStore marks a read/write failure against the favorites store.
	ErrStore = errors.New("store error")
)

// ProviderError wraps a provider failure with the provider's own status
// string so logs keep the upstream diagnostic.
func ProviderError(status string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: status %s: %v", ErrProvider, status, err)
	}
	return fmt.Errorf("%w: status %s", ErrProvider, status)
}
