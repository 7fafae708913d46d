//go:build !windows

package supervisor

import (
	"errors"
	"fmt"
	"syscall"
)

type unixSignaller struct{}

func newSignaller() signaller { return unixSignaller{} }

func (unixSignaller) Graceful() bool { return true }

// Interrupt signals the whole process group so any children the server
// forked receive the termination request as well.
func (unixSignaller) Interrupt(h *Handle) error {
	if h.cmd.Process == nil {
		return nil
	}
	if err := syscall.Kill(-h.cmd.Process.Pid, syscall.SIGTERM); err != nil && !errors.Is(err, syscall.ESRCH) {
		return fmt.Errorf("signal server process group: %w", err)
	}
	return nil
}

func (unixSignaller) Kill(h *Handle) error {
	if h.cmd.Process == nil {
		return nil
	}
	if err := syscall.Kill(-h.cmd.Process.Pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return fmt.Errorf("kill server process group: %w", err)
	}
	return nil
}
