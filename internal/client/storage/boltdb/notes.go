package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/zennotes/internal/client/storage"
	"github.com/iudanet/zennotes/internal/models"
)

// CreateNote stores a new local note as a create intent
func (s *Storage) CreateNote(ctx context.Context, note *models.LocalNote) error {
	n := note.Clone()
	n.BaseVersion = 0
	n.LocalRev = 1
	n.SyncStatus = models.SyncStatusPending

	err := s.update(func(tx *bbolt.Tx) error {
		existing, err := getNote(tx, n.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return storage.ErrNoteExists
		}
		if err := advanceSeq(tx, n.ListOrderSeq); err != nil {
			return err
		}
		return putNote(tx, n)
	})
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	s.publish(n.ID, storage.ChangeLocal)
	return nil
}

// GetNote retrieves a note by ID
func (s *Storage) GetNote(ctx context.Context, id string) (*models.LocalNote, error) {
	var note *models.LocalNote

	err := s.view(func(tx *bbolt.Tx) error {
		var err error
		note, err = getNote(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, storage.ErrNoteNotFound
	}

	return note, nil
}

// UpdateNote applies a local-only patch and marks the note pending
func (s *Storage) UpdateNote(ctx context.Context, id string, patch models.NotePatch) (*models.LocalNote, error) {
	var updated *models.LocalNote

	err := s.update(func(tx *bbolt.Tx) error {
		note, err := getNote(tx, id)
		if err != nil {
			return err
		}
		if note == nil {
			return storage.ErrNoteNotFound
		}
		if note.IsTombstoned() {
			return storage.ErrNoteDeleted
		}

		patch.Apply(&note.Note)
		note.LocalRev++
		note.SyncStatus = models.SyncStatusPending
		if err := advanceSeq(tx, note.ListOrderSeq); err != nil {
			return err
		}

		updated = note
		return putNote(tx, note)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	s.publish(id, storage.ChangeLocal)
	return updated, nil
}

// RemoveNote tombstones the note locally
func (s *Storage) RemoveNote(ctx context.Context, id string, deletedAt time.Time, listOrderSeq int64) (*models.LocalNote, error) {
	var removed *models.LocalNote

	err := s.update(func(tx *bbolt.Tx) error {
		note, err := getNote(tx, id)
		if err != nil {
			return err
		}
		if note == nil {
			return storage.ErrNoteNotFound
		}

		// Повторное удаление не сдвигает время записи
		if note.DeletedAt == nil {
			d := deletedAt
			note.DeletedAt = &d
		}
		note.ListOrderSeq = max(note.ListOrderSeq, listOrderSeq)
		note.LocalRev++
		note.SyncStatus = models.SyncStatusPending
		if err := advanceSeq(tx, note.ListOrderSeq); err != nil {
			return err
		}

		removed = note
		return putNote(tx, note)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove note: %w", err)
	}

	s.publish(id, storage.ChangeLocal)
	return removed, nil
}

// GetUnsynced returns all pending notes using the pending index
func (s *Storage) GetUnsynced(ctx context.Context) ([]*models.LocalNote, error) {
	var notes []*models.LocalNote

	err := s.view(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPending).ForEach(func(k, _ []byte) error {
			note, err := getNote(tx, string(k))
			if err != nil {
				return err
			}
			// Индекс обновляется в той же транзакции, что и запись
			if note != nil && note.IsPending() {
				notes = append(notes, note)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get unsynced notes: %w", err)
	}

	return notes, nil
}

// CountUnsynced returns the number of pending notes
func (s *Storage) CountUnsynced(ctx context.Context) (int, error) {
	var count int

	err := s.view(func(tx *bbolt.Tx) error {
		count = tx.Bucket(bucketPending).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count unsynced notes: %w", err)
	}

	return count, nil
}

// ApplyFromServer upserts the note from confirmed server state
func (s *Storage) ApplyFromServer(ctx context.Context, remote *models.Note, seen *models.LocalNote) (*models.LocalNote, error) {
	var (
		applied *models.LocalNote
		changed bool
	)

	err := s.update(func(tx *bbolt.Tx) error {
		existing, err := getNote(tx, remote.ID)
		if err != nil {
			return err
		}

		if existing != nil {
			// baseVersion никогда не уменьшается
			if remote.Version < existing.BaseVersion {
				applied = existing
				return nil
			}
			// Правка пришла, пока запрос был в полёте: локальные поля сохраняются
			if seen != nil && existing.IsPending() && existing.LocalRev != seen.LocalRev {
				existing.BaseVersion = remote.Version
				existing.ListOrderSeq = max(existing.ListOrderSeq, remote.ListOrderSeq)
				if err := advanceSeq(tx, existing.ListOrderSeq); err != nil {
					return err
				}
				applied = existing
				changed = true
				return putNote(tx, existing)
			}
			// Эта версия уже применена
			if !existing.IsPending() && existing.BaseVersion == remote.Version {
				applied = existing
				return nil
			}
		}

		now := s.now()
		note := &models.LocalNote{
			Note:         *remote.Clone(),
			BaseVersion:  remote.Version,
			SyncStatus:   models.SyncStatusSynced,
			LastSyncedAt: &now,
		}
		if existing != nil {
			note.ListOrderSeq = max(note.ListOrderSeq, existing.ListOrderSeq)
			note.LocalRev = existing.LocalRev
		}

		if err := advanceSeq(tx, note.ListOrderSeq); err != nil {
			return err
		}

		applied = note
		changed = true
		return putNote(tx, note)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply server note: %w", err)
	}

	if changed {
		s.publish(remote.ID, storage.ChangeServer)
	}
	return applied, nil
}

// Erase hard-deletes the note locally
func (s *Storage) Erase(ctx context.Context, id string) error {
	err := s.update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketNotes).Delete([]byte(id)); err != nil {
			return err
		}
		return tx.Bucket(bucketPending).Delete([]byte(id))
	})
	if err != nil {
		return fmt.Errorf("failed to erase note: %w", err)
	}

	s.publish(id, storage.ChangeErase)
	return nil
}

// ListNotes returns non-deleted notes, most recently touched first
func (s *Storage) ListNotes(ctx context.Context) ([]*models.LocalNote, error) {
	var notes []*models.LocalNote

	err := s.view(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketNotes).ForEach(func(k, v []byte) error {
			var note models.LocalNote
			if err := json.Unmarshal(v, &note); err != nil {
				return fmt.Errorf("failed to unmarshal note: %w", err)
			}
			if !note.IsTombstoned() {
				notes = append(notes, &note)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].ListOrderSeq != notes[j].ListOrderSeq {
			return notes[i].ListOrderSeq > notes[j].ListOrderSeq
		}
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})

	return notes, nil
}

// getNote читает заметку внутри транзакции, nil если её нет
func getNote(tx *bbolt.Tx, id string) (*models.LocalNote, error) {
	data := tx.Bucket(bucketNotes).Get([]byte(id))
	if data == nil {
		return nil, nil
	}

	note := &models.LocalNote{}
	if err := json.Unmarshal(data, note); err != nil {
		return nil, fmt.Errorf("failed to unmarshal note: %w", err)
	}
	return note, nil
}

// putNote сохраняет заметку и поддерживает индекс pending записей
func putNote(tx *bbolt.Tx, note *models.LocalNote) error {
	if note.ID == "" {
		return errors.New("note id is empty")
	}

	data, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to marshal note: %w", err)
	}

	key := []byte(note.ID)
	if err := tx.Bucket(bucketNotes).Put(key, data); err != nil {
		return fmt.Errorf("failed to save note: %w", err)
	}

	pending := tx.Bucket(bucketPending)
	if note.IsPending() {
		return pending.Put(key, []byte{})
	}
	return pending.Delete(key)
}
