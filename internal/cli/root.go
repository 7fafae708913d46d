package cli

import (
	stdcontext "context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shawn-dsz/voxtube/internal/config"
)

func NewRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "voxtube",
		Short: "Supervisor for the bundled voxtube server",
	}

	root.PersistentFlags().
		StringVarP(&configFile, "config", "c", "voxtube.yaml", "Path to supervisor configuration")

	ctx := &context{configFile: &configFile}
	root.AddCommand(newRunCmd(ctx))
	root.AddCommand(newStatusCmd(ctx))
	root.AddCommand(newConfigCmd(ctx))

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root
}

// Execute runs the CLI entrypoint.
func Execute() {
	ctx, stop := signal.NotifyContext(stdcontext.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	root.SetContext(ctx)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type context struct {
	configFile *string
}

func (c *context) loadConfig() (*config.Config, error) {
	return config.Load(*c.configFile)
}

// newLogger emits human-readable output on a terminal and JSON lines when
// stderr is redirected.
func newLogger() zerolog.Logger {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
