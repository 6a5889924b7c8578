package data

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditor_OptimisticViewAndFlush(t *testing.T) {
	svc, store := createTestService(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, NoteInput{Title: ptr("draft")})
	require.NoError(t, err)

	e, err := OpenEditor(ctx, svc, note.ID, time.Hour, testLogger())
	require.NoError(t, err)

	e.SetTitle("final")
	e.SetContent("hello", json.RawMessage(`{"p":"hello"}`))

	// Правки видны сразу, но ещё не сохранены
	assert.Equal(t, "final", e.Note().Title)
	assert.True(t, e.Dirty())
	stored, err := store.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "draft", stored.Title)

	require.NoError(t, e.Close(ctx))
	assert.False(t, e.Dirty())

	stored, err = store.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", stored.Title)
	assert.Equal(t, "hello", stored.ContentText)
	assert.Greater(t, stored.ListOrderSeq, note.ListOrderSeq)

	// После Close правки игнорируются
	e.SetTitle("ignored")
	assert.Equal(t, "final", e.Note().Title)
}

func TestEditor_DebouncedSave(t *testing.T) {
	svc, store := createTestService(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, NoteInput{Title: ptr("a")})
	require.NoError(t, err)

	e, err := OpenEditor(ctx, svc, note.ID, 20*time.Millisecond, testLogger())
	require.NoError(t, err)

	for _, title := range []string{"ab", "abc", "abcd"} {
		e.SetTitle(title)
	}

	assert.Eventually(t, func() bool {
		stored, err := store.GetNote(ctx, note.ID)
		return err == nil && stored.Title == "abcd"
	}, 2*time.Second, 5*time.Millisecond)

	// Серия правок сохраняется одной записью
	stored, err := store.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, note.ListOrderSeq+1, stored.ListOrderSeq)
}

func TestEditor_RollbackOnFailure(t *testing.T) {
	svc, _ := createTestService(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, NoteInput{Title: ptr("original"), ContentText: ptr("body")})
	require.NoError(t, err)

	errs := make(chan error, 1)
	e, err := OpenEditor(ctx, svc, note.ID, 10*time.Millisecond, testLogger(),
		WithErrorHandler(func(err error) { errs <- err }))
	require.NoError(t, err)

	// Заметку удалили в другом месте: сохранение правки невозможно
	require.NoError(t, svc.Delete(ctx, note.ID))

	e.SetTitle("changed")
	assert.Equal(t, "changed", e.Note().Title)

	select {
	case err := <-errs:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "background save did not report an error")
	}

	assert.Equal(t, "original", e.Note().Title)
	assert.Equal(t, "body", e.Note().ContentText)
	assert.False(t, e.Dirty())
}

func TestOpenEditor_NotFound(t *testing.T) {
	svc, _ := createTestService(t)

	_, err := OpenEditor(context.Background(), svc, "missing", time.Second, testLogger())
	assert.True(t, IsNotFound(err))
}
