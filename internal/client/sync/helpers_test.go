package sync

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	httpClient "github.com/iudanet/zennotes/internal/client/api"
	"github.com/iudanet/zennotes/internal/client/storage/boltdb"
	"github.com/iudanet/zennotes/internal/models"
	"github.com/iudanet/zennotes/pkg/api"
)

// T - базовое время сценариев
var T = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func mins(n int) time.Time {
	return T.Add(time.Duration(n) * time.Minute)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestStore создает BoltDB хранилище во временной директории
func createTestStore(t *testing.T) *boltdb.Storage {
	t.Helper()
	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "sync.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// seedSynced применяет серверную запись как подтверждённое состояние
func seedSynced(t *testing.T, store *boltdb.Storage, note *api.Note) {
	t.Helper()
	_, err := store.ApplyFromServer(context.Background(), models.NoteFromAPI(note), nil)
	require.NoError(t, err)
}

// seedPendingEdit создает synced запись и локальную правку поверх неё
func seedPendingEdit(t *testing.T, store *boltdb.Storage, base *api.Note, title string, updatedAt time.Time) {
	t.Helper()
	seedSynced(t, store, base)
	_, err := store.UpdateNote(context.Background(), base.ID, models.NotePatch{Title: &title, UpdatedAt: updatedAt})
	require.NoError(t, err)
}

func seedNew(t *testing.T, store *boltdb.Storage, id string, updatedAt time.Time) {
	t.Helper()
	require.NoError(t, store.CreateNote(context.Background(), &models.LocalNote{
		Note: models.Note{
			ID:          id,
			Title:       "new " + id,
			ContentJSON: json.RawMessage(`{}`),
			CreatedAt:   updatedAt,
			UpdatedAt:   updatedAt,
		},
	}))
}

func serverNote(id string, version int64, updatedAt time.Time) *api.Note {
	return &api.Note{
		ID:           id,
		Title:        "server " + id,
		Version:      version,
		ListOrderSeq: 1,
		CreatedAt:    T,
		UpdatedAt:    updatedAt,
	}
}

func tombstone(n *api.Note, deletedAt time.Time) *api.Note {
	c := *n
	c.DeletedAt = &deletedAt
	return &c
}

func conflict(current *api.Note) error {
	return &httpClient.ConflictError{Current: current}
}

// emptyPull - сервер без изменений
func emptyPull(m *httpClient.NoteAPIMock) {
	m.GetAllFunc = func(ctx context.Context) (*httpClient.ListResult, error) {
		return &httpClient.ListResult{}, nil
	}
	m.GetSinceFunc = func(ctx context.Context, cursor string) (*httpClient.ListResult, error) {
		return &httpClient.ListResult{}, nil
	}
}

func ptr[T any](v T) *T {
	return &v
}
