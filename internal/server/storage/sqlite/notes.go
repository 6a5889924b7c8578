package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/zennotes/internal/models"
	"github.com/iudanet/zennotes/internal/server/storage"
)

const noteColumns = `
	id, title, content_text, content_json, version, list_order_seq,
	created_at, updated_at, deleted_at`

// CreateNote stores a new note with version 1
func (s *Storage) CreateNote(ctx context.Context, note *models.Note) (*models.Note, error) {
	var created *models.Note
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		now := s.timestamp()
		existing, err := getNote(ctx, tx, note.ID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		if existing != nil {
			return &storage.ConflictError{Current: existing}
		}

		query := `
			INSERT INTO notes (
				id, title, content_text, content_json, version, list_order_seq,
				created_at, updated_at, deleted_at, changed_at
			) VALUES (?, ?, ?, ?, 1, ?, ?, ?, NULL, ?)
		`
		if _, err := tx.ExecContext(ctx, query,
			note.ID,
			note.Title,
			note.ContentText,
			nullableJSON(note.ContentJSON),
			note.ListOrderSeq,
			now, now, now,
		); err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		created, err = getNote(ctx, tx, note.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateNote applies the update if baseVersion matches the stored version.
// Обновление tombstone с актуальной версией восстанавливает заметку.
func (s *Storage) UpdateNote(ctx context.Context, id string, update storage.NoteUpdate, baseVersion int64) (*models.Note, error) {
	var updated *models.Note
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		now := s.timestamp()
		query := `
			UPDATE notes
			SET title = ?, content_text = ?, content_json = ?,
			    list_order_seq = MAX(list_order_seq, ?),
			    version = version + 1, updated_at = ?, changed_at = ?, deleted_at = NULL
			WHERE id = ? AND version = ?
		`
		result, err := tx.ExecContext(ctx, query,
			update.Title,
			update.ContentText,
			nullableJSON(update.ContentJSON),
			update.ListOrderSeq,
			now, now,
			id, baseVersion,
		)
		if err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}

		if err := checkApplied(ctx, tx, result, id); err != nil {
			return err
		}

		updated, err = getNote(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteNote marks note as deleted (soft delete).
// Повторное удаление с актуальной версией возвращает tombstone без изменений.
func (s *Storage) DeleteNote(ctx context.Context, id string, baseVersion int64) (*models.Note, error) {
	var deleted *models.Note
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		now := s.timestamp()
		current, err := getNote(ctx, tx, id)
		if err != nil {
			return err
		}
		if current.Version != baseVersion {
			return &storage.ConflictError{Current: current}
		}
		if current.IsTombstoned() {
			deleted = current
			return nil
		}

		query := `
			UPDATE notes
			SET deleted_at = ?, changed_at = ?, version = version + 1
			WHERE id = ? AND version = ?
		`
		result, err := tx.ExecContext(ctx, query, now, now, id, baseVersion)
		if err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}
		if err := checkApplied(ctx, tx, result, id); err != nil {
			return err
		}

		deleted, err = getNote(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

// GetNote retrieves a single note by ID, tombstones included
func (s *Storage) GetNote(ctx context.Context, id string) (*models.Note, error) {
	return getNote(ctx, s.db, id)
}

// ListNotes returns all notes, tombstones included
func (s *Storage) ListNotes(ctx context.Context) ([]*models.Note, error) {
	query := `SELECT` + noteColumns + `
		FROM notes
		ORDER BY list_order_seq DESC, created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanNotes(rows)
}

// ListNotesChangedBetween returns notes whose last mutation is in [since, until)
func (s *Storage) ListNotesChangedBetween(ctx context.Context, since, until time.Time) ([]*models.Note, error) {
	query := `SELECT` + noteColumns + `
		FROM notes
		WHERE changed_at >= ? AND changed_at < ?
		ORDER BY changed_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, since.UnixMilli(), until.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to query changed notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanNotes(rows)
}

// withTx выполняет fn в транзакции
func (s *Storage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// timestamp возвращает текущее время в unix миллисекундах.
// Вызывается внутри транзакции: единственное соединение упорядочивает
// changed_at коммитов относительно cutoff листинга.
func (s *Storage) timestamp() int64 {
	return s.now().UnixMilli()
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getNote(ctx context.Context, q queryer, id string) (*models.Note, error) {
	query := `SELECT` + noteColumns + ` FROM notes WHERE id = ?`

	note, err := scanNote(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return note, nil
}

// checkApplied различает отсутствие заметки и устаревшую версию
func checkApplied(ctx context.Context, tx *sql.Tx, result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	current, err := getNote(ctx, tx, id)
	if err != nil {
		return err
	}
	return &storage.ConflictError{Current: current}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(row scanner) (*models.Note, error) {
	note := &models.Note{}
	var (
		contentJSON          sql.NullString
		createdAt, updatedAt int64
		deletedAt            sql.NullInt64
	)

	if err := row.Scan(
		&note.ID,
		&note.Title,
		&note.ContentText,
		&contentJSON,
		&note.Version,
		&note.ListOrderSeq,
		&createdAt,
		&updatedAt,
		&deletedAt,
	); err != nil {
		return nil, err
	}

	if contentJSON.Valid {
		note.ContentJSON = []byte(contentJSON.String)
	}
	note.CreatedAt = msToTime(createdAt)
	note.UpdatedAt = msToTime(updatedAt)
	if deletedAt.Valid {
		d := msToTime(deletedAt.Int64)
		note.DeletedAt = &d
	}

	return note, nil
}

// scanNotes is a helper function to scan multiple notes from rows
func scanNotes(rows *sql.Rows) ([]*models.Note, error) {
	notes := make([]*models.Note, 0)

	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return notes, nil
}

func nullableJSON(raw []byte) sql.NullString {
	if len(raw) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}

func msToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
