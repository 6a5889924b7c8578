package storage

import (
	"context"
	"time"

	"github.com/iudanet/zennotes/internal/models"
)

//go:generate moq -out notestorage_mock.go . NoteStorage

// NoteStorage defines interface for the local note store
type NoteStorage interface {
	// CreateNote stores a new local note (baseVersion=0, pending).
	// Returns ErrNoteExists if a note with the same id exists.
	CreateNote(ctx context.Context, note *models.LocalNote) error

	// GetNote retrieves a note by ID (tombstones included)
	// Returns ErrNoteNotFound if note doesn't exist
	GetNote(ctx context.Context, id string) (*models.LocalNote, error)

	// UpdateNote applies a local-only patch and marks the note pending.
	// BaseVersion is preserved.
	UpdateNote(ctx context.Context, id string, patch models.NotePatch) (*models.LocalNote, error)

	// RemoveNote tombstones the note locally and marks it pending.
	// BaseVersion is preserved.
	RemoveNote(ctx context.Context, id string, deletedAt time.Time, listOrderSeq int64) (*models.LocalNote, error)

	// GetUnsynced returns all notes with syncStatus == pending
	GetUnsynced(ctx context.Context) ([]*models.LocalNote, error)

	// CountUnsynced returns the number of pending notes
	CountUnsynced(ctx context.Context) (int, error)

	// ApplyFromServer upserts the note from confirmed server state:
	// syncStatus=synced, baseVersion=server.Version, listOrderSeq=max(local, remote).
	// A server record older than the local baseVersion is ignored.
	//
	// seen is the local state the caller based its decision on (nil if none).
	// If the stored note was edited locally after seen was read, the local
	// fields win: only baseVersion and listOrderSeq advance and the note stays pending.
	ApplyFromServer(ctx context.Context, note *models.Note, seen *models.LocalNote) (*models.LocalNote, error)

	// Erase hard-deletes the note locally. Missing notes are not an error.
	Erase(ctx context.Context, id string) error

	// ListNotes returns non-deleted notes ordered by listOrderSeq desc, createdAt desc
	ListNotes(ctx context.Context) ([]*models.LocalNote, error)
}
