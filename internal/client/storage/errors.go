package storage

import "errors"

// Common client storage errors
var (
	// ErrNoteNotFound indicates that note was not found in the local store
	ErrNoteNotFound = errors.New("note not found")

	// ErrNoteExists indicates that a note with the same id is already stored
	ErrNoteExists = errors.New("note already exists")

	// ErrNoteDeleted indicates that the note is tombstoned and can't be edited
	ErrNoteDeleted = errors.New("note is deleted")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
