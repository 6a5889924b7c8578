//go:build !unix

package scheduler

// FileLocker is unavailable on this platform
type FileLocker struct {
	path string
}

// NewFileLocker creates a locker for the given lock file path
func NewFileLocker(path string) *FileLocker {
	return &FileLocker{path: path}
}

// TryLock always fails with ErrLockUnsupported
func (l *FileLocker) TryLock() (bool, error) {
	return false, ErrLockUnsupported
}

// Held always fails with ErrLockUnsupported
func (l *FileLocker) Held() (bool, error) {
	return false, ErrLockUnsupported
}

// Unlock is a no-op
func (l *FileLocker) Unlock() error {
	return nil
}
