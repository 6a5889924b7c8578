package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SavePullCursor saves the server-supplied cursor of the last successful pull
	SavePullCursor(ctx context.Context, cursor string) error

	// GetPullCursor retrieves the pull cursor
	// Returns "" if no pull has been performed yet
	GetPullCursor(ctx context.Context) (string, error)

	// ReserveNextSeq reserves the next listOrderSeq value
	ReserveNextSeq(ctx context.Context) (int64, error)
}
