package storage

// ChangeKind describes what happened to a note
type ChangeKind string

const (
	ChangeLocal  ChangeKind = "local"  // локальное изменение пользователем
	ChangeServer ChangeKind = "server" // применено состояние сервера
	ChangeErase  ChangeKind = "erase"  // запись удалена локально
)

// ChangeEvent is delivered to subscribers after a committed write
type ChangeEvent struct {
	ID   string
	Kind ChangeKind
}

// ChangeFeed provides the in-process change stream of the local store
type ChangeFeed interface {
	// Subscribe returns a channel of change events and a cancel function.
	// Slow subscribers drop events instead of blocking writers.
	Subscribe() (<-chan ChangeEvent, func())
}
