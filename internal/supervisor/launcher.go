package supervisor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/shawn-dsz/voxtube/internal/config"
	"github.com/shawn-dsz/voxtube/internal/logsink"
)

// spawn starts the server binary with its contract environment injected and
// both output streams appended to the combined log. The returned handle is
// live immediately; readiness is the caller's concern.
func spawn(cfg *config.Config, binPath string, logs *logsink.Handles) (*Handle, error) {
	cmd := exec.Command(binPath)
	cmd.Env = append(os.Environ(),
		"CACHE_DIR="+cfg.CacheDir(),
		"YT_CLI_PATH="+cfg.CLIToolPath(),
		fmt.Sprintf("PORT=%d", cfg.Port),
	)
	cmd.Stdout = logs.Stdout
	cmd.Stderr = logs.Stderr

	configureCmdSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn server binary %s: %w", binPath, err)
	}
	return newHandle(cmd, logs), nil
}
