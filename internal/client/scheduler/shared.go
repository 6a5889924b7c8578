package scheduler

import "sync"

var shared struct {
	ctrl *Controller
	err  error
	once sync.Once
}

// Shared returns the process-wide controller, building it on first access.
// build вызывается не больше одного раза за время жизни процесса.
func Shared(build func() (*Controller, error)) (*Controller, error) {
	shared.once.Do(func() {
		shared.ctrl, shared.err = build()
	})
	return shared.ctrl, shared.err
}
