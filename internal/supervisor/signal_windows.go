//go:build windows

package supervisor

import (
	"errors"
	"fmt"
	"os"
)

type windowsSignaller struct{}

func newSignaller() signaller { return windowsSignaller{} }

// Graceful reports false: without reliable console-signal delivery the
// controller goes straight to a forced kill.
func (windowsSignaller) Graceful() bool { return false }

func (windowsSignaller) Interrupt(h *Handle) error {
	if h.cmd.Process == nil {
		return nil
	}
	return h.cmd.Process.Signal(os.Interrupt)
}

func (windowsSignaller) Kill(h *Handle) error {
	if h.cmd.Process == nil {
		return nil
	}
	if err := h.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill server process: %w", err)
	}
	return nil
}
