//go:build !unix

package scheduler

import "context"

// SignalVisibility is always visible where SIGUSR1/SIGUSR2 don't exist
type SignalVisibility struct {
	*ManualState
}

// NewSignalVisibility creates a visibility source that starts visible
func NewSignalVisibility() *SignalVisibility {
	return &SignalVisibility{ManualState: NewManualState(true)}
}

// Run blocks until ctx is done
func (v *SignalVisibility) Run(ctx context.Context) {
	<-ctx.Done()
}
