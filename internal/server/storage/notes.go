package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iudanet/zennotes/internal/models"
)

// NoteUpdate содержит изменяемые поля заметки
type NoteUpdate struct {
	Title        string
	ContentText  string
	ContentJSON  json.RawMessage
	ListOrderSeq int64
}

// NoteStorage defines interface for the server-of-record note persistence.
// Every accepted mutation increments Version by one.
type NoteStorage interface {
	// CreateNote stores a new note with version 1.
	// A duplicate id returns *ConflictError with the stored record.
	CreateNote(ctx context.Context, note *models.Note) (*models.Note, error)

	// UpdateNote applies the update if baseVersion matches the stored version.
	// Returns ErrNotFound or *ConflictError.
	UpdateNote(ctx context.Context, id string, update NoteUpdate, baseVersion int64) (*models.Note, error)

	// DeleteNote tombstones the note (soft delete) if baseVersion matches.
	// Returns ErrNotFound or *ConflictError.
	DeleteNote(ctx context.Context, id string, baseVersion int64) (*models.Note, error)

	// GetNote retrieves a note by ID, tombstones included
	GetNote(ctx context.Context, id string) (*models.Note, error)

	// ListNotes returns all notes ordered by listOrderSeq desc, createdAt desc
	ListNotes(ctx context.Context) ([]*models.Note, error)

	// ListNotesChangedBetween returns notes whose last mutation is in [since, until)
	ListNotesChangedBetween(ctx context.Context, since, until time.Time) ([]*models.Note, error)
}
