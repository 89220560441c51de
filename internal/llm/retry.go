package llm

import "time"

// RetryPolicy bounds the gateway's outbound attempts. Sleeping goes through
// the gateway's clock so the policy is testable without real waits.
type RetryPolicy struct {
	MaxAttempts    int
	Backoff        time.Duration
	AttemptTimeout time.Duration
}

// DefaultRetryPolicy matches the upstream contract: three attempts, a fixed
// 2s pause between transient failures, 30s per attempt.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		Backoff:        2 * time.Second,
		AttemptTimeout: 30 * time.Second,
	}
}
