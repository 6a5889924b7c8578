// Package policy содержит правила арбитража синхронизации.
// Все функции чистые и детерминированные: без I/O и без состояния.
package policy

import (
	"time"

	"github.com/iudanet/zennotes/internal/models"
)

// Winner identifies the side that wins a last-writer-wins comparison.
type Winner int

const (
	// WinnerRemote - побеждает серверная версия (в том числе при равенстве)
	WinnerRemote Winner = iota
	// WinnerLocal - побеждает локальная версия
	WinnerLocal
)

// String returns a human-readable representation of the winner.
func (w Winner) String() string {
	if w == WinnerLocal {
		return "local"
	}
	return "remote"
}

// LastWriteTimestamp returns the timestamp used for LWW comparisons:
// deletedAt for tombstones, updatedAt otherwise.
func LastWriteTimestamp(n *models.Note) time.Time {
	return n.LastWriteTimestamp()
}

// ResolveConflict сравнивает локальную и серверную версии по LWW.
// Локальная побеждает только если её время записи строго больше.
// При равенстве побеждает сервер: уже закоммиченное значение сходится на всех устройствах.
func ResolveConflict(local *models.LocalNote, remote *models.Note) Winner {
	if LastWriteTimestamp(&local.Note).After(LastWriteTimestamp(remote)) {
		return WinnerLocal
	}
	return WinnerRemote
}

// NeedsPull reports whether a remote record has to be considered at all.
// local may be nil when the device has no copy.
func NeedsPull(local *models.LocalNote, remote *models.Note) bool {
	if local == nil {
		return true
	}
	return remote.Version > local.BaseVersion
}

// IsTombstoned reports whether the record is soft-deleted.
func IsTombstoned(n *models.Note) bool {
	return n.IsTombstoned()
}
