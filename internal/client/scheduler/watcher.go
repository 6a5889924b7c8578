package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// TouchPokeFile updates the mtime of the poke file, creating it if needed.
// CLI вызывает её после каждой локальной мутации, чтобы демон запустил push.
func TouchPokeFile(path string) error {
	now := time.Now()
	if err := os.Chtimes(path, now, now); err == nil {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to touch poke file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to touch poke file: %w", err)
	}

	return os.Chtimes(path, now, now)
}

// FileWatcher calls onChange when the poke file is written.
// Следим за каталогом: файл может быть создан уже после старта.
type FileWatcher struct {
	onChange func()
	logger   *slog.Logger
	path     string
	debounce time.Duration
}

// NewFileWatcher creates a watcher for the poke file
func NewFileWatcher(path string, debounce time.Duration, onChange func(), logger *slog.Logger) *FileWatcher {
	return &FileWatcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}
}

// Run watches until ctx is cancelled
func (w *FileWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.logger.Debug("Watching poke file", "path", w.path)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Chmod) {
				continue
			}

			if w.debounce <= 0 {
				w.onChange()
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.onChange)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", "error", err)
		}
	}
}
