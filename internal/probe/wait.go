package probe

import (
	"context"
	"fmt"
	"time"
)

// HealthPolicy bounds a WaitHealthy call. All fields must be positive.
type HealthPolicy struct {
	URL      string
	Interval time.Duration
	Timeout  time.Duration
	Deadline time.Duration
}

// HealthTimeoutError reports that the overall deadline elapsed without a
// single successful health response.
type HealthTimeoutError struct {
	Deadline time.Duration
}

func (e *HealthTimeoutError) Error() string {
	return fmt.Sprintf("server did not become healthy within %s", e.Deadline)
}

// WaitHealthy polls the health endpoint until it answers with a success
// status or the overall deadline elapses. Each attempt is bounded by the
// policy's per-request timeout; failed attempts are not individually
// distinguished, whether the endpoint answered with an error status, refused
// the connection, or timed out. The loop blocks the calling goroutine.
func WaitHealthy(ctx context.Context, policy HealthPolicy) error {
	prober := newHTTPProber(policy.URL)
	deadline := time.Now().Add(policy.Deadline)

	for {
		attemptCtx, cancel := context.WithTimeout(ctx, policy.Timeout)
		err := prober.Probe(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if time.Now().After(deadline) {
			return &HealthTimeoutError{Deadline: policy.Deadline}
		}

		timer := time.NewTimer(policy.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
