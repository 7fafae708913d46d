package cli

import (
	stdcontext "context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shawn-dsz/voxtube/internal/probe"
)

func newStatusCmd(ctx *context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check whether a server instance is running and healthy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}

			if probe.PortAvailable(newLogger(), cfg.Port) {
				fmt.Fprintf(cmd.OutOrStdout(), "not running (port %d is free)\n", cfg.Port)
				return nil
			}

			checkCtx, cancel := stdcontext.WithTimeout(cmd.Context(), time.Second)
			defer cancel()
			if err := probe.CheckOnce(checkCtx, cfg.HealthURL()); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "port %d is occupied but %s is not healthy: %v\n",
					cfg.Port, cfg.HealthURL(), err)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "running and healthy on port %d\n", cfg.Port)
			return nil
		},
	}
	return cmd
}
