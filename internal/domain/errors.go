package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the session engine and mapped to HTTP statuses
// in the handler layer.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotSessionOwner = errors.New("session belongs to another caller")
	ErrNoCredentials   = errors.New("no API credentials configured for service")
)

// ValidationError reports caller-fixable bad input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError reports a failed model or synthesis call. Status is zero for
// transport-level failures.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream error %d: %s", e.Status, e.Message)
	}
	return "upstream error: " + e.Message
}
