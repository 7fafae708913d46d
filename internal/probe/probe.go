// Package probe implements the point-in-time port probe and the post-spawn
// health wait used by the supervisor. Probes never mutate server state; they
// only observe whether something is listening and whether it answers.
package probe

import (
	"context"
)

// Prober performs a single readiness observation. A nil error means the
// target answered successfully.
type Prober interface {
	Probe(ctx context.Context) error
}
