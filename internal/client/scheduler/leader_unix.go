//go:build unix

package scheduler

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// FileLocker holds flock(LOCK_EX) on a well-known file for the whole
// lifetime of the leader.
type FileLocker struct {
	file *os.File
	path string
	mu   sync.Mutex
}

// NewFileLocker creates a locker for the given lock file path
func NewFileLocker(path string) *FileLocker {
	return &FileLocker{path: path}
}

// TryLock пытается захватить блокировку без ожидания
func (l *FileLocker) TryLock() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return true, nil
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return false, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return false, nil
		}
		return false, fmt.Errorf("failed to lock %s: %w", l.path, err)
	}

	l.file = f
	return true, nil
}

// Held reports whether another process holds the leader lock.
// Проверка берёт LOCK_SH на мгновение и не мешает лидеру дольше одного системного вызова.
func (l *FileLocker) Held() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return false, nil
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDONLY, 0600)
	if err != nil {
		return false, fmt.Errorf("failed to open lock file: %w", err)
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_SH|unix.LOCK_NB); err != nil {
		if errors.Is(err, unix.EWOULDBLOCK) {
			return true, nil
		}
		return false, fmt.Errorf("failed to check lock %s: %w", l.path, err)
	}
	_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
	return false, nil
}

// Unlock освобождает блокировку; повторный вызов безопасен
func (l *FileLocker) Unlock() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	f := l.file
	l.file = nil

	if err := unix.Flock(int(f.Fd()), unix.LOCK_UN); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to unlock %s: %w", l.path, err)
	}
	return f.Close()
}
