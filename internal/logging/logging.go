// Package logging builds the process logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/iudanet/zennotes/internal/config"
)

// Rotation limits of the log file
const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger from the configuration.
// Если задан файл, запись идёт через lumberjack с ротацией по размеру.
// The returned closer must be closed on exit.
func New(cfg config.LogConfig, stderr io.Writer) (*slog.Logger, io.Closer) {
	var (
		w      = stderr
		closer io.Closer = nopCloser{}
	)
	if w == nil {
		w = os.Stderr
	}

	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
		w, closer = rotator, rotator
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler), closer
}
