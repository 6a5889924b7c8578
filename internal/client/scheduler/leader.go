package scheduler

import "errors"

// ErrLockUnsupported is returned where no file lock primitive is available
var ErrLockUnsupported = errors.New("leader lock is not supported on this platform")

// Locker - межпроцессная блокировка лидерства.
// TryLock не ждёт: если блокировка занята, возвращает false.
type Locker interface {
	TryLock() (bool, error)
	Unlock() error
}
