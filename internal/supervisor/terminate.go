package supervisor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// signaller is the platform-specific termination capability. The unix
// variant supports a cooperative phase (SIGTERM to the process group); the
// windows variant does not, so Terminate skips straight to Kill there.
type signaller interface {
	Graceful() bool
	Interrupt(h *Handle) error
	Kill(h *Handle) error
}

// shutdownController drives the Running → grace period → forced kill
// escalation for a single handle.
type shutdownController struct {
	sig   signaller
	grace time.Duration
	log   zerolog.Logger
}

// Terminate stops the process behind the handle. On platforms with
// cooperative signalling it requests termination and waits up to the grace
// period before escalating to an unconditional kill; elsewhere it kills
// immediately. A signal-delivery anomaly escalates rather than leaving the
// child unmanaged. Calling Terminate on an already-exited handle is a no-op.
func (c *shutdownController) Terminate(ctx context.Context, h *Handle) error {
	if h == nil || h.Exited() {
		return nil
	}

	if c.sig.Graceful() {
		if err := c.sig.Interrupt(h); err != nil {
			c.log.Warn().Err(err).Msg("cooperative termination failed, escalating to kill")
		} else {
			timer := time.NewTimer(c.grace)
			select {
			case <-h.waitDone:
				timer.Stop()
				return nil
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
				c.log.Warn().Dur("grace", c.grace).Msg("server did not exit within grace period, killing")
			}
		}
	}

	return c.kill(ctx, h)
}

// kill forces termination and waits for exit confirmation.
func (c *shutdownController) kill(ctx context.Context, h *Handle) error {
	if h == nil || h.Exited() {
		return nil
	}
	if err := c.sig.Kill(h); err != nil {
		return fmt.Errorf("kill server process: %w", err)
	}
	select {
	case <-h.waitDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
