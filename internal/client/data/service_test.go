package data

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/zennotes/internal/client/storage"
	"github.com/iudanet/zennotes/internal/client/storage/boltdb"
	"github.com/iudanet/zennotes/internal/models"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T {
	return &v
}

// testClock возвращает часы, сдвигающиеся на секунду при каждом вызове
func testClock() func() time.Time {
	now := t0
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func createTestService(t *testing.T, opts ...Option) (Service, *boltdb.Storage) {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	opts = append([]Option{WithClock(testClock())}, opts...)
	return NewService(store, store, testLogger(), opts...), store
}

func TestService_Create(t *testing.T) {
	changes := 0
	svc, store := createTestService(t, WithChangeHook(func() { changes++ }))
	ctx := context.Background()

	note, err := svc.Create(ctx, NoteInput{
		Title:       ptr("Groceries"),
		ContentText: ptr("milk"),
		ContentJSON: json.RawMessage(`{"type":"doc"}`),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "Groceries", note.Title)
	assert.Equal(t, int64(1), note.ListOrderSeq)
	assert.Equal(t, models.SyncStatusPending, note.SyncStatus)
	assert.Equal(t, 1, changes)

	stored, err := store.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.BaseVersion)
	assert.True(t, stored.IsPending())
	assert.JSONEq(t, `{"type":"doc"}`, string(stored.ContentJSON))
}

func TestService_UpdateMovesToTop(t *testing.T) {
	svc, store := createTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, NoteInput{Title: ptr("first")})
	require.NoError(t, err)
	second, err := svc.Create(ctx, NoteInput{Title: ptr("second")})
	require.NoError(t, err)

	// Подтверждённая сервером версия не должна сбрасываться локальной правкой
	_, err = store.ApplyFromServer(ctx, &models.Note{
		ID: first.ID, Title: "first", Version: 3, ListOrderSeq: first.ListOrderSeq,
		CreatedAt: first.CreatedAt, UpdatedAt: first.UpdatedAt,
	}, nil)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, first.ID, NoteInput{ContentText: ptr("body")})
	require.NoError(t, err)

	assert.Equal(t, "first", updated.Title)
	assert.Equal(t, "body", updated.ContentText)
	assert.Equal(t, int64(3), updated.BaseVersion)
	assert.True(t, updated.IsPending())
	assert.Greater(t, updated.ListOrderSeq, second.ListOrderSeq)
	assert.True(t, updated.UpdatedAt.After(first.UpdatedAt))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestService_UpdateEmptyInput(t *testing.T) {
	changes := 0
	svc, _ := createTestService(t, WithChangeHook(func() { changes++ }))
	ctx := context.Background()

	note, err := svc.Create(ctx, NoteInput{Title: ptr("t")})
	require.NoError(t, err)

	got, err := svc.Update(ctx, note.ID, NoteInput{})
	require.NoError(t, err)
	assert.Equal(t, note.ListOrderSeq, got.ListOrderSeq)
	assert.Equal(t, 1, changes)
}

func TestService_Delete(t *testing.T) {
	svc, store := createTestService(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, NoteInput{Title: ptr("t")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, note.ID))

	_, err = svc.Get(ctx, note.ID)
	assert.True(t, IsNotFound(err))

	// Tombstone остаётся в хранилище до подтверждения сервером
	stored, err := store.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsTombstoned())
	assert.True(t, stored.IsPending())

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Update(ctx, note.ID, NoteInput{Title: ptr("again")})
	assert.ErrorIs(t, err, storage.ErrNoteDeleted)
}

func TestService_NotFound(t *testing.T) {
	svc, _ := createTestService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "missing")
	assert.True(t, IsNotFound(err))

	_, err = svc.Update(ctx, "missing", NoteInput{Title: ptr("x")})
	assert.True(t, IsNotFound(err))

	assert.True(t, IsNotFound(svc.Delete(ctx, "missing")))
}

func TestService_StorageErrors(t *testing.T) {
	errDisk := errors.New("disk full")
	ctx := context.Background()

	t.Run("reserve fails", func(t *testing.T) {
		notes := &storage.NoteStorageMock{}
		meta := &storage.MetadataStorageMock{
			ReserveNextSeqFunc: func(ctx context.Context) (int64, error) { return 0, errDisk },
		}
		svc := NewService(notes, meta, testLogger())

		_, err := svc.Create(ctx, NoteInput{Title: ptr("t")})
		assert.ErrorIs(t, err, errDisk)
		assert.Empty(t, notes.CreateNoteCalls())
	})

	t.Run("create fails, hook not called", func(t *testing.T) {
		called := false
		notes := &storage.NoteStorageMock{
			CreateNoteFunc: func(ctx context.Context, note *models.LocalNote) error { return errDisk },
		}
		meta := &storage.MetadataStorageMock{
			ReserveNextSeqFunc: func(ctx context.Context) (int64, error) { return 7, nil },
		}
		svc := NewService(notes, meta, testLogger(), WithChangeHook(func() { called = true }))

		_, err := svc.Create(ctx, NoteInput{Title: ptr("t")})
		assert.ErrorIs(t, err, errDisk)
		assert.False(t, called)
		require.Len(t, notes.CreateNoteCalls(), 1)
		assert.Equal(t, int64(7), notes.CreateNoteCalls()[0].Note.ListOrderSeq)
	})
}

func TestService_InvalidInput(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		input NoteInput
		name  string
	}{
		{name: "multiline title", input: NoteInput{Title: ptr("one\ntwo")}},
		{name: "title too long", input: NoteInput{Title: ptr(strings.Repeat("x", 1025))}},
		{name: "broken document", input: NoteInput{ContentJSON: []byte(`{"type":`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := &storage.NoteStorageMock{}
			meta := &storage.MetadataStorageMock{}
			svc := NewService(notes, meta, testLogger())

			_, err := svc.Create(ctx, tt.input)
			assert.ErrorIs(t, err, ErrInvalidInput)

			_, err = svc.Update(ctx, "note-1", tt.input)
			assert.ErrorIs(t, err, ErrInvalidInput)

			// до хранилища дело не доходит
			assert.Empty(t, meta.ReserveNextSeqCalls())
			assert.Empty(t, notes.CreateNoteCalls())
			assert.Empty(t, notes.UpdateNoteCalls())
		})
	}
}
