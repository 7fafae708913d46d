package supervisor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeSignaller records signal deliveries so tests can assert how far the
// escalation went.
type fakeSignaller struct {
	graceful     bool
	interruptErr error

	onInterrupt func(h *Handle)
	onKill      func(h *Handle)

	mu         sync.Mutex
	interrupts int
	kills      int
}

func (f *fakeSignaller) Graceful() bool { return f.graceful }

func (f *fakeSignaller) Interrupt(h *Handle) error {
	f.mu.Lock()
	f.interrupts++
	f.mu.Unlock()
	if f.onInterrupt != nil {
		f.onInterrupt(h)
	}
	return f.interruptErr
}

func (f *fakeSignaller) Kill(h *Handle) error {
	f.mu.Lock()
	f.kills++
	f.mu.Unlock()
	if f.onKill != nil {
		f.onKill(h)
	}
	return nil
}

func (f *fakeSignaller) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.interrupts, f.kills
}

func newFakeHandle() *Handle {
	return &Handle{waitDone: make(chan struct{})}
}

func newTestController(sig signaller, grace time.Duration) *shutdownController {
	return &shutdownController{sig: sig, grace: grace, log: zerolog.Nop()}
}

func TestTerminateCooperativeExitSkipsKill(t *testing.T) {
	sig := &fakeSignaller{graceful: true}
	sig.onInterrupt = func(h *Handle) {
		go func() {
			time.Sleep(30 * time.Millisecond)
			close(h.waitDone)
		}()
	}
	ctrl := newTestController(sig, time.Second)

	if err := ctrl.Terminate(context.Background(), newFakeHandle()); err != nil {
		t.Fatalf("Terminate returned error: %v", err)
	}

	interrupts, kills := sig.counts()
	if interrupts != 1 {
		t.Fatalf("expected exactly one cooperative signal, got %d", interrupts)
	}
	if kills != 0 {
		t.Fatalf("expected no forced kill when the child exits in time, got %d", kills)
	}
}

func TestTerminateEscalatesAfterGracePeriod(t *testing.T) {
	sig := &fakeSignaller{graceful: true}
	sig.onKill = func(h *Handle) { close(h.waitDone) }
	grace := 60 * time.Millisecond
	ctrl := newTestController(sig, grace)

	start := time.Now()
	if err := ctrl.Terminate(context.Background(), newFakeHandle()); err != nil {
		t.Fatalf("Terminate returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < grace {
		t.Fatalf("escalated before the grace period elapsed: %s", elapsed)
	}

	interrupts, kills := sig.counts()
	if interrupts != 1 {
		t.Fatalf("expected one cooperative signal, got %d", interrupts)
	}
	if kills != 1 {
		t.Fatalf("expected exactly one forced kill, got %d", kills)
	}
}

func TestTerminateIdempotentOnExitedHandle(t *testing.T) {
	sig := &fakeSignaller{graceful: true}
	ctrl := newTestController(sig, time.Second)

	h := newFakeHandle()
	close(h.waitDone)

	for i := 0; i < 2; i++ {
		if err := ctrl.Terminate(context.Background(), h); err != nil {
			t.Fatalf("Terminate call %d returned error: %v", i+1, err)
		}
	}

	interrupts, kills := sig.counts()
	if interrupts != 0 || kills != 0 {
		t.Fatalf("expected no signals for an exited handle, got %d interrupts %d kills", interrupts, kills)
	}
}

func TestTerminateSignalAnomalyEscalates(t *testing.T) {
	sig := &fakeSignaller{graceful: true, interruptErr: errors.New("no such process state")}
	sig.onKill = func(h *Handle) { close(h.waitDone) }
	ctrl := newTestController(sig, time.Second)

	start := time.Now()
	if err := ctrl.Terminate(context.Background(), newFakeHandle()); err != nil {
		t.Fatalf("Terminate returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("anomaly escalation should not wait for the grace period, took %s", elapsed)
	}

	if _, kills := sig.counts(); kills != 1 {
		t.Fatalf("expected forced kill after signal anomaly, got %d", kills)
	}
}

func TestTerminateForcedOnNonGracefulPlatform(t *testing.T) {
	sig := &fakeSignaller{graceful: false}
	sig.onKill = func(h *Handle) { close(h.waitDone) }
	ctrl := newTestController(sig, time.Second)

	if err := ctrl.Terminate(context.Background(), newFakeHandle()); err != nil {
		t.Fatalf("Terminate returned error: %v", err)
	}

	interrupts, kills := sig.counts()
	if interrupts != 0 {
		t.Fatalf("expected no cooperative signal without platform support, got %d", interrupts)
	}
	if kills != 1 {
		t.Fatalf("expected one forced kill, got %d", kills)
	}
}

func TestTerminateNilHandle(t *testing.T) {
	ctrl := newTestController(&fakeSignaller{graceful: true}, time.Second)
	if err := ctrl.Terminate(context.Background(), nil); err != nil {
		t.Fatalf("Terminate(nil) returned error: %v", err)
	}
}
