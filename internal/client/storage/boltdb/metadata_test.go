package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func TestSaveAndGetPullCursor(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Изначально курсора нет
	cursor, err := store.GetPullCursor(ctx)
	require.NoError(t, err)
	assert.Empty(t, cursor)

	require.NoError(t, store.SavePullCursor(ctx, "2025-03-01T12:00:00.123456789Z"))
	cursor, err = store.GetPullCursor(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01T12:00:00.123456789Z", cursor)

	// Перезапись
	require.NoError(t, store.SavePullCursor(ctx, "2025-03-02T00:00:00Z"))
	cursor, err = store.GetPullCursor(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-02T00:00:00Z", cursor)
}

func TestReserveNextSeq_Monotonic(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	var prev int64
	for range 5 {
		seq, err := store.ReserveNextSeq(ctx)
		require.NoError(t, err)
		assert.Greater(t, seq, prev)
		prev = seq
	}
	assert.Equal(t, int64(5), prev)
}

func advanceSeqTo(t *testing.T, store *Storage, observed int64) {
	t.Helper()
	require.NoError(t, store.update(func(tx *bbolt.Tx) error {
		return advanceSeq(tx, observed)
	}))
}

func currentSeq(t *testing.T, store *Storage) int64 {
	t.Helper()
	var seq uint64
	require.NoError(t, store.view(func(tx *bbolt.Tx) error {
		seq = tx.Bucket(bucketMetadata).Sequence()
		return nil
	}))
	return int64(seq)
}

func TestAdvanceSeq(t *testing.T) {
	tests := []struct {
		name     string
		observed []int64
		wantNext int64
	}{
		{name: "advance forward", observed: []int64{10}, wantNext: 11},
		{name: "never regresses", observed: []int64{10, 3}, wantNext: 11},
		{name: "zero and negative ignored", observed: []int64{0, -4}, wantNext: 1},
		{name: "max of several", observed: []int64{7, 20, 15}, wantNext: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := createTestStorage(t)

			for _, o := range tt.observed {
				advanceSeqTo(t, store, o)
			}

			next, err := store.ReserveNextSeq(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNext, next)
		})
	}
}

func TestSeq_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "seq.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	advanceSeqTo(t, store, 100)
	require.NoError(t, store.SavePullCursor(ctx, "c1"))
	require.NoError(t, store.Close())

	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	next, err := reopened.ReserveNextSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(101), next)

	cursor, err := reopened.GetPullCursor(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c1", cursor)
}
