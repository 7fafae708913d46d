// Package supervisor launches the bundled voxtube server, confirms it is
// healthy, and tears it down again. It owns exactly one server process at a
// time on behalf of the hosting shell.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shawn-dsz/voxtube/internal/config"
	"github.com/shawn-dsz/voxtube/internal/logsink"
	"github.com/shawn-dsz/voxtube/internal/probe"
)

// PortConflictError reports that the server port was occupied before spawn.
type PortConflictError struct {
	Port int
}

func (e *PortConflictError) Error() string {
	return fmt.Sprintf("port %d is already in use; another voxtube instance may be running", e.Port)
}

// Supervisor orchestrates a single launch attempt of the bundled server and
// exposes a shutdown entry point to the hosting shell.
//
// Start is expected to run on a worker goroutine since it blocks for up to
// the health deadline. The current-handle slot is guarded by a mutex because
// shutdown callbacks arrive on whatever goroutine the host delivers them.
type Supervisor struct {
	cfg      *config.Config
	log      zerolog.Logger
	shutdown *shutdownController

	mu       sync.Mutex
	handle   *Handle
	starting bool
}

// New constructs a supervisor for the given configuration.
func New(cfg *config.Config, log zerolog.Logger) *Supervisor {
	return &Supervisor{
		cfg: cfg,
		log: log,
		shutdown: &shutdownController{
			sig:   newSignaller(),
			grace: cfg.Shutdown.GracePeriod.Duration,
			log:   log,
		},
	}
}

// Start launches the server and blocks until it answers health checks.
// The sequence is strict: resolve the binary, open the log sink, probe the
// port, spawn, wait for health. If the health wait fails the just-spawned
// child is killed before the error is returned so no orphan is left behind.
// At most one handle is live per supervisor; starting while a previous
// server is still running is an error.
func (s *Supervisor) Start(ctx context.Context) (*Handle, error) {
	if err := s.beginStart(); err != nil {
		return nil, err
	}
	defer s.endStart()

	binPath, err := s.cfg.BinaryPath(runtime.GOARCH)
	if err != nil {
		return nil, err
	}

	logs, err := logsink.Open(s.cfg.LogDir())
	if err != nil {
		return nil, err
	}

	if !probe.PortAvailable(s.log, s.cfg.Port) {
		logs.Close()
		return nil, &PortConflictError{Port: s.cfg.Port}
	}

	h, err := spawn(s.cfg, binPath, logs)
	if err != nil {
		logs.Close()
		return nil, err
	}
	s.log.Info().Int("pid", h.PID()).Int("port", s.cfg.Port).Str("log", logs.Path).
		Msg("server spawned, waiting for health")

	policy := probe.HealthPolicy{
		URL:      s.cfg.HealthURL(),
		Interval: s.cfg.Health.Interval.Duration,
		Timeout:  s.cfg.Health.Timeout.Duration,
		Deadline: s.cfg.Health.Deadline.Duration,
	}
	if err := probe.WaitHealthy(ctx, policy); err != nil {
		s.log.Error().Err(err).Msg("health check failed, killing server process")
		if killErr := s.shutdown.kill(context.WithoutCancel(ctx), h); killErr != nil {
			s.log.Warn().Err(killErr).Msg("failed to kill unhealthy server process")
		}
		return nil, err
	}

	s.mu.Lock()
	s.handle = h
	s.mu.Unlock()

	s.log.Info().Int("pid", h.PID()).Int("port", s.cfg.Port).Msg("server healthy")
	return h, nil
}

// Stop terminates the currently held server, if any. It is a no-op when no
// handle is held, so a window-close callback and a shutdown-at-exit hook can
// both call it without coordinating.
func (s *Supervisor) Stop(ctx context.Context) error {
	s.mu.Lock()
	h := s.handle
	s.handle = nil
	s.mu.Unlock()

	if h == nil {
		return nil
	}
	return s.shutdown.Terminate(ctx, h)
}

func (s *Supervisor) beginStart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.starting {
		return errors.New("server start already in progress")
	}
	if s.handle != nil && !s.handle.Exited() {
		return errors.New("server is already running")
	}
	s.handle = nil
	s.starting = true
	return nil
}

func (s *Supervisor) endStart() {
	s.mu.Lock()
	s.starting = false
	s.mu.Unlock()
}
