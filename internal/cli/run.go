package cli

import (
	stdcontext "context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shawn-dsz/voxtube/internal/supervisor"
)

// stopTimeout bounds the shutdown escalation at exit. It comfortably covers
// the grace period plus kill confirmation.
const stopTimeout = 10 * time.Second

func newRunCmd(ctx *context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Launch the server and supervise it until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}

			log := newLogger()
			sup := supervisor.New(cfg, log)

			// Start on a worker goroutine, mirroring how the desktop shell
			// keeps its event loop responsive during the health wait.
			type startResult struct {
				handle *supervisor.Handle
				err    error
			}
			started := make(chan startResult, 1)
			go func() {
				h, err := sup.Start(cmd.Context())
				started <- startResult{handle: h, err: err}
			}()

			res := <-started
			if res.err != nil {
				return res.err
			}

			select {
			case <-cmd.Context().Done():
			case <-res.handle.Done():
				stopSupervisor(sup, log)
				if err := res.handle.ExitErr(); err != nil {
					return fmt.Errorf("server exited unexpectedly: %w", err)
				}
				return fmt.Errorf("server exited unexpectedly")
			}

			stopSupervisor(sup, log)
			return nil
		},
	}
	return cmd
}

func stopSupervisor(sup *supervisor.Supervisor, log zerolog.Logger) {
	stopCtx, cancel := stdcontext.WithTimeout(stdcontext.Background(), stopTimeout)
	defer cancel()
	if err := sup.Stop(stopCtx); err != nil {
		log.Warn().Err(err).Msg("server shutdown reported an error")
	}
}
