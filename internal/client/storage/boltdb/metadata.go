package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

const (
	keyPullCursor = "pull_cursor"
)

// SavePullCursor saves the server-supplied cursor of the last successful pull
func (s *Storage) SavePullCursor(ctx context.Context, cursor string) error {
	err := s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		return bucket.Put([]byte(keyPullCursor), []byte(cursor))
	})
	if err != nil {
		return fmt.Errorf("failed to save pull cursor: %w", err)
	}

	return nil
}

// GetPullCursor retrieves the pull cursor
// Returns "" if no pull has been performed yet
func (s *Storage) GetPullCursor(ctx context.Context) (string, error) {
	var cursor string

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		// Если курсор не найден, возвращаем пустую строку (первая синхронизация)
		cursor = string(bucket.Get([]byte(keyPullCursor)))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to get pull cursor: %w", err)
	}

	return cursor, nil
}

// ReserveNextSeq reserves the next listOrderSeq value.
// Счётчик - sequence metadata bucket'а, он переживает перезапуск.
func (s *Storage) ReserveNextSeq(ctx context.Context) (int64, error) {
	var seq uint64

	err := s.update(func(tx *bbolt.Tx) error {
		var err error
		seq, err = tx.Bucket(bucketMetadata).NextSequence()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to reserve sequence: %w", err)
	}

	return int64(seq), nil
}

// advanceSeq moves the counter to at least observed. Never lowers it.
func advanceSeq(tx *bbolt.Tx, observed int64) error {
	if observed <= 0 {
		return nil
	}
	bucket := tx.Bucket(bucketMetadata)
	if bucket.Sequence() >= uint64(observed) {
		return nil
	}
	return bucket.SetSequence(uint64(observed))
}
