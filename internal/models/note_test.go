package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNote_LastWriteTimestamp(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	tests := []struct {
		note     *Note
		expected time.Time
		name     string
	}{
		{
			name:     "live note uses updatedAt",
			note:     &Note{UpdatedAt: t1},
			expected: t1,
		},
		{
			name:     "tombstone uses deletedAt",
			note:     &Note{UpdatedAt: t1, DeletedAt: &t2},
			expected: t2,
		},
		{
			name:     "tombstone older than updatedAt still uses deletedAt",
			note:     &Note{UpdatedAt: t2, DeletedAt: &t1},
			expected: t1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(tt.note.LastWriteTimestamp()))
		})
	}
}

func TestNote_IsTombstoned(t *testing.T) {
	now := time.Now()
	assert.False(t, (&Note{}).IsTombstoned())
	assert.True(t, (&Note{DeletedAt: &now}).IsTombstoned())
}

func TestLocalNote_Clone(t *testing.T) {
	now := time.Now()
	deleted := now.Add(time.Second)

	original := &LocalNote{
		Note: Note{
			ID:          "note-1",
			Title:       "title",
			ContentJSON: json.RawMessage(`{"type":"doc"}`),
			DeletedAt:   &deleted,
			Version:     3,
		},
		BaseVersion:  3,
		SyncStatus:   SyncStatusSynced,
		LastSyncedAt: &now,
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	// Изменения клона не должны затрагивать оригинал
	clone.ContentJSON[0] = '['
	*clone.DeletedAt = now
	*clone.LastSyncedAt = deleted
	assert.Equal(t, byte('{'), original.ContentJSON[0])
	assert.True(t, original.DeletedAt.Equal(deleted))
	assert.True(t, original.LastSyncedAt.Equal(now))
}

func TestNote_APIRoundTrip(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	n := &Note{
		ID:           "note-1",
		Title:        "hello",
		ContentText:  "world",
		ContentJSON:  json.RawMessage(`{"type":"doc","content":[]}`),
		Version:      7,
		ListOrderSeq: 42,
		CreatedAt:    now,
		UpdatedAt:    now.Add(time.Hour),
		DeletedAt:    &now,
	}

	assert.Equal(t, n, NoteFromAPI(n.ToAPI()))
}

func TestLocalNote_Requests(t *testing.T) {
	n := &LocalNote{
		Note: Note{
			ID:           "note-1",
			Title:        "t",
			ContentText:  "c",
			ListOrderSeq: 5,
		},
		BaseVersion: 2,
	}

	create := n.CreateRequest()
	assert.Equal(t, "note-1", create.ID)
	assert.Equal(t, int64(5), create.ListOrderSeq)

	update := n.UpdateRequest(9)
	assert.Equal(t, int64(9), update.BaseVersion)
	assert.Equal(t, "t", update.Title)
}
