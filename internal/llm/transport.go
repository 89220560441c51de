// Package llm turns a session transcript into a structured model reply. The
// gateway owns credential rotation, retry and normalization; transports own
// the wire protocol of one upstream.
package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mockmate/interview-api/internal/domain"
)

// Transport sends one completion request to a model service. Name doubles as
// the keyring service name the gateway draws credentials from.
type Transport interface {
	Name() string
	Send(ctx context.Context, apiKey, controlPrompt string, transcript []domain.Turn) (string, error)
}

// StatusError reports a non-2xx response from the upstream.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Code)
}

// Transient reports whether the status is worth retrying.
func (e *StatusError) Transient() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}
