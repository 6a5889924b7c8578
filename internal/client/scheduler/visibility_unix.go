//go:build unix

package scheduler

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SignalVisibility maps SIGUSR1 to visible and SIGUSR2 to hidden.
// Внешний UI процесс сообщает демону, видно ли окно.
type SignalVisibility struct {
	*ManualState
}

// NewSignalVisibility creates a visibility source that starts visible
func NewSignalVisibility() *SignalVisibility {
	return &SignalVisibility{ManualState: NewManualState(true)}
}

// Run listens for signals until ctx is done
func (v *SignalVisibility) Run(ctx context.Context) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGUSR1, syscall.SIGUSR2)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigCh:
			v.Set(sig == syscall.SIGUSR1)
		}
	}
}
