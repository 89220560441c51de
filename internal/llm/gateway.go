package llm

import (
	"context"
	"errors"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mockmate/interview-api/internal/domain"
	"github.com/mockmate/interview-api/internal/keyring"
)

// Gateway orchestrates completion calls: it draws a credential from the ring,
// applies the retry policy and hands the raw payload to Normalize. It is the
// sole retry point; callers surface its errors verbatim.
type Gateway struct {
	transport Transport
	keys      *keyring.Ring
	policy    RetryPolicy
	clock     clockwork.Clock
}

// NewGateway creates a gateway over one transport.
func NewGateway(transport Transport, keys *keyring.Ring, policy RetryPolicy, clock clockwork.Clock) *Gateway {
	return &Gateway{
		transport: transport,
		keys:      keys,
		policy:    policy,
		clock:     clock,
	}
}

// Complete sends the control prompt and transcript upstream and returns the
// normalized reply. 429 and 5xx responses and transport failures are retried
// after a fixed backoff; other statuses fail immediately.
func (g *Gateway) Complete(ctx context.Context, controlPrompt string, transcript []domain.Turn) (*domain.Reply, error) {
	service := g.transport.Name()

	for attempt := 1; attempt <= g.policy.MaxAttempts; attempt++ {
		apiKey := g.keys.Next(service)
		if apiKey == "" {
			return nil, domain.ErrNoCredentials
		}

		attemptCtx, cancel := context.WithTimeout(ctx, g.policy.AttemptTimeout)
		raw, err := g.transport.Send(attemptCtx, apiKey, controlPrompt, transcript)
		cancel()

		if err == nil {
			return Normalize(raw), nil
		}

		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			if !statusErr.Transient() {
				return nil, &domain.UpstreamError{Status: statusErr.Code, Message: statusErr.Error()}
			}
			log.Warn().
				Str("service", service).
				Int("status", statusErr.Code).
				Int("attempt", attempt).
				Msg("transient upstream status, backing off")
			g.clock.Sleep(g.policy.Backoff)
			continue
		}

		// Transport-level failure: retry unless this was the last attempt.
		if attempt == g.policy.MaxAttempts {
			return nil, &domain.UpstreamError{Message: err.Error()}
		}
		log.Warn().
			Str("service", service).
			Err(err).
			Int("attempt", attempt).
			Msg("model request failed, backing off")
		g.clock.Sleep(g.policy.Backoff)
	}

	return nil, &domain.UpstreamError{Message: "max retries reached"}
}
