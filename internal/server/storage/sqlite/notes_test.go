package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/zennotes/internal/models"
	"github.com/iudanet/zennotes/internal/server/storage"
)

func TestNoteStorage_CreateNote(t *testing.T) {
	ctx := context.Background()
	s, clock, cleanup := setupTestStorage(t)
	defer cleanup()

	tests := []struct {
		note *models.Note
		name string
	}{
		{
			name: "create plain note",
			note: &models.Note{
				ID:          uuid.New().String(),
				Title:       "Groceries",
				ContentText: "milk",
			},
		},
		{
			name: "create note with document",
			note: &models.Note{
				ID:           uuid.New().String(),
				Title:        "Doc",
				ContentText:  "hello",
				ContentJSON:  []byte(`{"type":"doc"}`),
				ListOrderSeq: 7,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := s.CreateNote(ctx, tt.note)
			require.NoError(t, err)

			assert.Equal(t, tt.note.ID, created.ID)
			assert.Equal(t, tt.note.Title, created.Title)
			assert.Equal(t, tt.note.ContentText, created.ContentText)
			assert.Equal(t, []byte(tt.note.ContentJSON), []byte(created.ContentJSON))
			assert.Equal(t, tt.note.ListOrderSeq, created.ListOrderSeq)
			assert.Equal(t, int64(1), created.Version)
			assert.Equal(t, clock.now, created.CreatedAt)
			assert.Equal(t, clock.now, created.UpdatedAt)
			assert.Nil(t, created.DeletedAt)
		})
	}
}

func TestNoteStorage_CreateNote_Duplicate(t *testing.T) {
	ctx := context.Background()
	s, _, cleanup := setupTestStorage(t)
	defer cleanup()

	note := createTestNote(t, ctx, s, "first")

	_, err := s.CreateNote(ctx, &models.Note{ID: note.ID, Title: "second"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrVersionConflict)

	conflict, ok := storage.AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, "first", conflict.Current.Title)
	assert.Equal(t, int64(1), conflict.Current.Version)
}

func TestNoteStorage_UpdateNote(t *testing.T) {
	ctx := context.Background()
	s, clock, cleanup := setupTestStorage(t)
	defer cleanup()

	note := createTestNote(t, ctx, s, "draft")
	clock.advance(time.Second)

	updated, err := s.UpdateNote(ctx, note.ID, storage.NoteUpdate{
		Title:        "final",
		ContentText:  "body",
		ContentJSON:  []byte(`{"type":"doc"}`),
		ListOrderSeq: 3,
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "body", updated.ContentText)
	assert.Equal(t, int64(3), updated.ListOrderSeq)
	assert.Equal(t, note.CreatedAt, updated.CreatedAt)
	assert.Equal(t, clock.now, updated.UpdatedAt)
}

func TestNoteStorage_UpdateNote_Errors(t *testing.T) {
	ctx := context.Background()
	s, _, cleanup := setupTestStorage(t)
	defer cleanup()

	note := createTestNote(t, ctx, s, "draft")
	_, err := s.UpdateNote(ctx, note.ID, storage.NoteUpdate{Title: "v2"}, 1)
	require.NoError(t, err)

	tests := []struct {
		wantError   error
		name        string
		id          string
		baseVersion int64
	}{
		{
			name:        "stale base version",
			id:          note.ID,
			baseVersion: 1,
			wantError:   storage.ErrVersionConflict,
		},
		{
			name:        "future base version",
			id:          note.ID,
			baseVersion: 5,
			wantError:   storage.ErrVersionConflict,
		},
		{
			name:        "unknown note",
			id:          uuid.New().String(),
			baseVersion: 1,
			wantError:   storage.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.UpdateNote(ctx, tt.id, storage.NoteUpdate{Title: "lost"}, tt.baseVersion)
			assert.ErrorIs(t, err, tt.wantError)
		})
	}

	current, err := s.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", current.Title)
	assert.Equal(t, int64(2), current.Version)
}

func TestNoteStorage_UpdateNote_ConflictCarriesCurrent(t *testing.T) {
	ctx := context.Background()
	s, _, cleanup := setupTestStorage(t)
	defer cleanup()

	note := createTestNote(t, ctx, s, "draft")
	_, err := s.UpdateNote(ctx, note.ID, storage.NoteUpdate{Title: "winner"}, 1)
	require.NoError(t, err)

	_, err = s.UpdateNote(ctx, note.ID, storage.NoteUpdate{Title: "loser"}, 1)
	conflict, ok := storage.AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, "winner", conflict.Current.Title)
	assert.Equal(t, int64(2), conflict.Current.Version)
}

func TestNoteStorage_UpdateNote_ListOrderSeqNeverDecreases(t *testing.T) {
	ctx := context.Background()
	s, _, cleanup := setupTestStorage(t)
	defer cleanup()

	note, err := s.CreateNote(ctx, &models.Note{ID: uuid.New().String(), ListOrderSeq: 10})
	require.NoError(t, err)

	updated, err := s.UpdateNote(ctx, note.ID, storage.NoteUpdate{ListOrderSeq: 4}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), updated.ListOrderSeq)

	updated, err = s.UpdateNote(ctx, note.ID, storage.NoteUpdate{ListOrderSeq: 12}, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(12), updated.ListOrderSeq)
}

func TestNoteStorage_DeleteNote(t *testing.T) {
	ctx := context.Background()
	s, clock, cleanup := setupTestStorage(t)
	defer cleanup()

	note := createTestNote(t, ctx, s, "doomed")
	clock.advance(time.Minute)

	deleted, err := s.DeleteNote(ctx, note.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, deleted.DeletedAt)
	assert.Equal(t, clock.now, *deleted.DeletedAt)
	assert.Equal(t, int64(2), deleted.Version)
	assert.Equal(t, "doomed", deleted.Title)
	// удаление не меняет время последнего редактирования
	assert.Equal(t, note.UpdatedAt, deleted.UpdatedAt)

	t.Run("repeat delete returns tombstone", func(t *testing.T) {
		again, err := s.DeleteNote(ctx, note.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, deleted.Version, again.Version)
		assert.Equal(t, deleted.DeletedAt, again.DeletedAt)
	})

	t.Run("stale token conflicts", func(t *testing.T) {
		_, err := s.DeleteNote(ctx, note.ID, 1)
		assert.ErrorIs(t, err, storage.ErrVersionConflict)
	})

	t.Run("unknown note", func(t *testing.T) {
		_, err := s.DeleteNote(ctx, uuid.New().String(), 1)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("tombstone stays readable", func(t *testing.T) {
		got, err := s.GetNote(ctx, note.ID)
		require.NoError(t, err)
		assert.True(t, got.IsTombstoned())
	})
}

func TestNoteStorage_UpdateNote_ResurrectsTombstone(t *testing.T) {
	ctx := context.Background()
	s, _, cleanup := setupTestStorage(t)
	defer cleanup()

	note := createTestNote(t, ctx, s, "phoenix")
	_, err := s.DeleteNote(ctx, note.ID, 1)
	require.NoError(t, err)

	revived, err := s.UpdateNote(ctx, note.ID, storage.NoteUpdate{Title: "phoenix"}, 2)
	require.NoError(t, err)
	assert.False(t, revived.IsTombstoned())
	assert.Equal(t, int64(3), revived.Version)
}

func TestNoteStorage_ListNotes(t *testing.T) {
	ctx := context.Background()
	s, clock, cleanup := setupTestStorage(t)
	defer cleanup()

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	low, err := s.CreateNote(ctx, &models.Note{ID: uuid.New().String(), Title: "low", ListOrderSeq: 1})
	require.NoError(t, err)
	clock.advance(time.Millisecond)
	high, err := s.CreateNote(ctx, &models.Note{ID: uuid.New().String(), Title: "high", ListOrderSeq: 5})
	require.NoError(t, err)
	clock.advance(time.Millisecond)
	gone, err := s.CreateNote(ctx, &models.Note{ID: uuid.New().String(), Title: "gone", ListOrderSeq: 3})
	require.NoError(t, err)
	_, err = s.DeleteNote(ctx, gone.ID, 1)
	require.NoError(t, err)

	notes, err = s.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, high.ID, notes[0].ID)
	assert.Equal(t, gone.ID, notes[1].ID)
	assert.True(t, notes[1].IsTombstoned())
	assert.Equal(t, low.ID, notes[2].ID)
}

func TestNoteStorage_ListNotesChangedBetween(t *testing.T) {
	ctx := context.Background()
	s, clock, cleanup := setupTestStorage(t)
	defer cleanup()

	start := clock.now
	old := createTestNote(t, ctx, s, "old")

	clock.advance(time.Second)
	cursor := clock.now
	fresh := createTestNote(t, ctx, s, "fresh")

	clock.advance(time.Second)
	_, err := s.DeleteNote(ctx, old.ID, 1)
	require.NoError(t, err)
	deletedAt := clock.now

	tests := []struct {
		since time.Time
		until time.Time
		name  string
		want  []string
	}{
		{
			name:  "everything",
			since: start,
			until: deletedAt.Add(time.Millisecond),
			want:  []string{fresh.ID, old.ID},
		},
		{
			name:  "since cursor includes tombstone",
			since: cursor,
			until: deletedAt.Add(time.Millisecond),
			want:  []string{fresh.ID, old.ID},
		},
		{
			name:  "until is exclusive",
			since: cursor,
			until: deletedAt,
			want:  []string{fresh.ID},
		},
		{
			name:  "nothing new",
			since: deletedAt.Add(time.Millisecond),
			until: deletedAt.Add(time.Hour),
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes, err := s.ListNotesChangedBetween(ctx, tt.since, tt.until)
			require.NoError(t, err)

			ids := make([]string, 0, len(notes))
			for _, n := range notes {
				ids = append(ids, n.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func setupTestStorage(t *testing.T) (*Storage, *testClock, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	s, err := New(ctx, ":memory:")
	require.NoError(t, err)

	clock := &testClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s.now = clock.Now

	cleanup := func() {
		_ = s.Close()
	}

	return s, clock, cleanup
}

func createTestNote(t *testing.T, ctx context.Context, s *Storage, title string) *models.Note {
	note, err := s.CreateNote(ctx, &models.Note{
		ID:    uuid.New().String(),
		Title: title,
	})
	require.NoError(t, err)
	return note
}
