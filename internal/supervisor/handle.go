package supervisor

import (
	"os/exec"

	"github.com/shawn-dsz/voxtube/internal/logsink"
)

// Handle is the supervisor's reference to a running server process. It owns
// the OS process and the log file handles; once the process exits the log
// handles are closed and the handle is permanently in the exited state.
type Handle struct {
	cmd  *exec.Cmd
	logs *logsink.Handles

	// waitDone closes after cmd.Wait returns. waitErr is written before the
	// close and must only be read once waitDone is closed.
	waitDone chan struct{}
	waitErr  error
}

func newHandle(cmd *exec.Cmd, logs *logsink.Handles) *Handle {
	h := &Handle{cmd: cmd, logs: logs, waitDone: make(chan struct{})}
	go func() {
		h.waitErr = cmd.Wait()
		if h.logs != nil {
			_ = h.logs.Close()
		}
		close(h.waitDone)
	}()
	return h
}

// PID returns the operating-system process identifier, or zero when no
// process is attached.
func (h *Handle) PID() int {
	if h.cmd == nil || h.cmd.Process == nil {
		return 0
	}
	return h.cmd.Process.Pid
}

// Done is closed once the process has exited and its exit status has been
// collected.
func (h *Handle) Done() <-chan struct{} {
	return h.waitDone
}

// Exited reports whether the process has exited. It never blocks and is safe
// to call repeatedly on an already-exited handle.
func (h *Handle) Exited() bool {
	select {
	case <-h.waitDone:
		return true
	default:
		return false
	}
}

// ExitErr returns the process exit error once Done is closed, nil before.
func (h *Handle) ExitErr() error {
	select {
	case <-h.waitDone:
		return h.waitErr
	default:
		return nil
	}
}
