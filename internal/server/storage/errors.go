package storage

import (
	"errors"
	"fmt"

	"github.com/iudanet/zennotes/internal/models"
)

// Common storage errors
var (
	// ErrNotFound indicates that note was not found in storage
	ErrNotFound = errors.New("note not found")

	// ErrVersionConflict indicates that the caller's base version is stale
	ErrVersionConflict = errors.New("version conflict")
)

// ConflictError carries the current record of a rejected mutation
type ConflictError struct {
	Current *models.Note
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("version conflict: note %s is at version %d", e.Current.ID, e.Current.Version)
}

// Unwrap allows errors.Is(err, ErrVersionConflict)
func (e *ConflictError) Unwrap() error {
	return ErrVersionConflict
}

// AsConflict extracts the conflict payload from err
func AsConflict(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}
