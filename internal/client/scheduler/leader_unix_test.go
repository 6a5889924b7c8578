//go:build unix

package scheduler

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLocker_Exclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.lock")

	first := NewFileLocker(path)
	second := NewFileLocker(path)

	ok, err := first.TryLock()
	require.NoError(t, err)
	assert.True(t, ok)

	// flock привязан к открытому файлу, поэтому второй дескриптор не получает блокировку
	ok, err = second.TryLock()
	require.NoError(t, err)
	assert.False(t, ok)

	// Повторный захват тем же владельцем
	ok, err = first.TryLock()
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, first.Unlock())
	require.NoError(t, first.Unlock())

	ok, err = second.TryLock()
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, second.Unlock())
}

func TestFileLocker_BadPath(t *testing.T) {
	l := NewFileLocker(filepath.Join(t.TempDir(), "missing", "sync.lock"))
	ok, err := l.TryLock()
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestFileLocker_Held(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.lock")

	leader := NewFileLocker(path)
	observer := NewFileLocker(path)

	held, err := observer.Held()
	require.NoError(t, err)
	assert.False(t, held)

	// Проверка не оставляет за собой блокировку
	ok, err := leader.TryLock()
	require.NoError(t, err)
	require.True(t, ok)

	held, err = observer.Held()
	require.NoError(t, err)
	assert.True(t, held)

	// Свою блокировку владелец чужой не считает
	held, err = leader.Held()
	require.NoError(t, err)
	assert.False(t, held)

	require.NoError(t, leader.Unlock())

	held, err = observer.Held()
	require.NoError(t, err)
	assert.False(t, held)

	ok, err = leader.TryLock()
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, leader.Unlock())
}
