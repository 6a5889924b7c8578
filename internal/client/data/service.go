package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/zennotes/internal/client/storage"
	"github.com/iudanet/zennotes/internal/models"
	"github.com/iudanet/zennotes/internal/validation"
)

// ErrInvalidInput is returned when the user input fails validation
var ErrInvalidInput = errors.New("invalid note input")

// Service определяет интерфейс для локального редактирования заметок.
// Все изменения сначала попадают в локальное хранилище и помечаются pending.
type Service interface {
	Create(ctx context.Context, input NoteInput) (*models.LocalNote, error)
	Update(ctx context.Context, id string, input NoteInput) (*models.LocalNote, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.LocalNote, error)
	List(ctx context.Context) ([]*models.LocalNote, error)
}

// NoteInput описывает изменяемые пользователем поля. nil - поле не трогается.
type NoteInput struct {
	Title       *string
	ContentText *string
	ContentJSON json.RawMessage
}

// IsEmpty reports whether the input changes nothing
func (in NoteInput) IsEmpty() bool {
	return in.Title == nil && in.ContentText == nil && in.ContentJSON == nil
}

func (in NoteInput) validate() error {
	if in.Title != nil {
		if err := validation.ValidateTitle(*in.Title); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if in.ContentJSON != nil && !json.Valid(in.ContentJSON) {
		return fmt.Errorf("%w: content document is not valid JSON", ErrInvalidInput)
	}
	return nil
}

// Option configures the service
type Option func(*service)

// WithChangeHook sets a callback invoked after every successful local mutation
func WithChangeHook(fn func()) Option {
	return func(s *service) {
		s.onChange = fn
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// service handles client-side note mutations
type service struct {
	notes    storage.NoteStorage
	meta     storage.MetadataStorage
	logger   *slog.Logger
	onChange func()
	now      func() time.Time
}

// NewService creates a new data service
func NewService(notes storage.NoteStorage, meta storage.MetadataStorage, logger *slog.Logger, opts ...Option) Service {
	s := &service{
		notes:  notes,
		meta:   meta,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create adds a new note with a client-generated id
func (s *service) Create(ctx context.Context, input NoteInput) (*models.LocalNote, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	seq, err := s.meta.ReserveNextSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve list order: %w", err)
	}

	now := s.now().UTC()
	note := &models.LocalNote{
		Note: models.Note{
			ID:           uuid.New().String(),
			ListOrderSeq: seq,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		SyncStatus: models.SyncStatusPending,
	}
	if input.Title != nil {
		note.Title = *input.Title
	}
	if input.ContentText != nil {
		note.ContentText = *input.ContentText
	}
	if input.ContentJSON != nil {
		note.ContentJSON = input.ContentJSON
	}

	if err := s.notes.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.logger.Debug("Note created", "id", note.ID, "seq", seq)
	s.changed()
	return note, nil
}

// Update applies the input to the note and moves it to the top of the list
func (s *service) Update(ctx context.Context, id string, input NoteInput) (*models.LocalNote, error) {
	if input.IsEmpty() {
		return s.Get(ctx, id)
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	seq, err := s.meta.ReserveNextSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve list order: %w", err)
	}

	note, err := s.notes.UpdateNote(ctx, id, models.NotePatch{
		Title:        input.Title,
		ContentText:  input.ContentText,
		ContentJSON:  input.ContentJSON,
		ListOrderSeq: &seq,
		UpdatedAt:    s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	s.logger.Debug("Note updated", "id", id, "seq", seq)
	s.changed()
	return note, nil
}

// Delete tombstones the note (soft delete)
func (s *service) Delete(ctx context.Context, id string) error {
	seq, err := s.meta.ReserveNextSeq(ctx)
	if err != nil {
		return fmt.Errorf("failed to reserve list order: %w", err)
	}

	if _, err := s.notes.RemoveNote(ctx, id, s.now().UTC(), seq); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	s.logger.Debug("Note deleted", "id", id)
	s.changed()
	return nil
}

// Get returns a live note. Tombstones are reported as not found.
func (s *service) Get(ctx context.Context, id string) (*models.LocalNote, error) {
	note, err := s.notes.GetNote(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note.IsTombstoned() {
		return nil, fmt.Errorf("failed to get note: %w", storage.ErrNoteNotFound)
	}
	return note, nil
}

// List returns live notes, most recently touched first
func (s *service) List(ctx context.Context) ([]*models.LocalNote, error) {
	notes, err := s.notes.ListNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (s *service) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// IsNotFound reports whether err means the note does not exist locally
func IsNotFound(err error) bool {
	return errors.Is(err, storage.ErrNoteNotFound)
}
