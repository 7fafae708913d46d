package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(ctx *context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved supervisor configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))

			binPath, err := cfg.BinaryPath(runtime.GOARCH)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# server binary: %s\n", binPath)
			fmt.Fprintf(cmd.OutOrStdout(), "# yt CLI: %s\n", cfg.CLIToolPath())
			fmt.Fprintf(cmd.OutOrStdout(), "# cache dir: %s\n", cfg.CacheDir())
			fmt.Fprintf(cmd.OutOrStdout(), "# health URL: %s\n", cfg.HealthURL())
			return nil
		},
	}
	return cmd
}
