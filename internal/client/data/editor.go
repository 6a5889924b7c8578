package data

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/zennotes/internal/models"
)

// Editor is an optimistic in-memory view over one note.
//
// Edits are visible immediately through Note and persisted after a quiet
// period of debounce (trailing edge). If persistence fails the view is rolled
// back to the snapshot captured before the first unsaved edit.
type Editor struct {
	svc     Service
	logger  *slog.Logger
	onError func(error)

	view     *models.LocalNote
	snapshot *models.LocalNote // последнее сохранённое состояние
	pending  NoteInput
	timer    *time.Timer

	debounce time.Duration
	mu       sync.Mutex
	dirty    bool
	closed   bool
}

// EditorOption configures an editor
type EditorOption func(*Editor)

// WithErrorHandler sets a callback for failures of background saves
func WithErrorHandler(fn func(error)) EditorOption {
	return func(e *Editor) {
		e.onError = fn
	}
}

// OpenEditor loads the note and returns an editor over it
func OpenEditor(ctx context.Context, svc Service, id string, debounce time.Duration, logger *slog.Logger, opts ...EditorOption) (*Editor, error) {
	note, err := svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	e := &Editor{
		svc:      svc,
		logger:   logger,
		view:     note.Clone(),
		snapshot: note.Clone(),
		debounce: debounce,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Note returns the current optimistic state
func (e *Editor) Note() *models.LocalNote {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view.Clone()
}

// Dirty reports whether there are unsaved edits
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// SetTitle changes the title
func (e *Editor) SetTitle(title string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	e.view.Title = title
	e.pending.Title = &title
	e.touchLocked()
}

// SetContent changes the document and its plain-text projection
func (e *Editor) SetContent(text string, doc json.RawMessage) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	e.view.ContentText = text
	e.view.ContentJSON = bytes.Clone(doc)
	e.pending.ContentText = &text
	e.pending.ContentJSON = bytes.Clone(doc)
	e.touchLocked()
}

// touchLocked отмечает несохранённые изменения и перезапускает таймер
func (e *Editor) touchLocked() {
	e.dirty = true
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, func() {
		if err := e.Flush(context.Background()); err != nil {
			e.logger.Warn("Failed to save note", "id", e.snapshot.ID, "error", err)
			if e.onError != nil {
				e.onError(err)
			}
		}
	})
}

// Flush persists unsaved edits now. On failure the view is rolled back.
func (e *Editor) Flush(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if !e.dirty {
		return nil
	}

	input := e.pending
	e.pending = NoteInput{}
	e.dirty = false

	saved, err := e.svc.Update(ctx, e.snapshot.ID, input)
	if err != nil {
		// Откат к состоянию до первой несохранённой правки
		e.view = e.snapshot.Clone()
		return fmt.Errorf("failed to persist edits: %w", err)
	}

	e.snapshot = saved.Clone()
	e.view = saved.Clone()
	return nil
}

// Close flushes pending edits and stops the editor
func (e *Editor) Close(ctx context.Context) error {
	err := e.Flush(ctx)

	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	return err
}
