package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/iudanet/zennotes/pkg/api"
)

// SyncStatus описывает состояние локальной записи относительно сервера
type SyncStatus string

const (
	// SyncStatusPending - локальное состояние разошлось с сервером и должно быть отправлено
	SyncStatusPending SyncStatus = "pending"
	// SyncStatusSynced - локальная запись является копией серверной версии BaseVersion
	SyncStatusSynced SyncStatus = "synced"
)

// Note представляет заметку в форме, принятой сервером (server-of-record DTO).
type Note struct {
	CreatedAt    time.Time       `json:"created_at"`    // CreatedAt время создания
	UpdatedAt    time.Time       `json:"updated_at"`    // UpdatedAt время последнего изменения содержимого
	DeletedAt    *time.Time      `json:"deleted_at"`    // DeletedAt tombstone marker (nil = заметка жива)
	ID           string          `json:"id"`            // ID идентификатор, генерируется клиентом (UUID)
	Title        string          `json:"title"`         // Title заголовок
	ContentText  string          `json:"content_text"`  // ContentText plain-text проекция содержимого
	ContentJSON  json.RawMessage `json:"content_json"`  // ContentJSON структурированный документ
	Version      int64           `json:"version"`       // Version серверная версия, +1 на каждую принятую мутацию
	ListOrderSeq int64           `json:"list_order_seq"` // ListOrderSeq порядок в списке (most-recently-touched-first)
}

// LocalNote представляет заметку в локальном хранилище устройства.
type LocalNote struct {
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	SyncStatus   SyncStatus `json:"sync_status"`
	Note
	// BaseVersion последняя версия, про которую устройство знает, что она есть на сервере.
	// Меняется только при применении подтверждённого сервером состояния.
	BaseVersion int64 `json:"base_version"`
	// LocalRev счётчик локальных правок, +1 на каждую мутацию на устройстве.
	// По нему sync отличает запись, изменённую во время запроса к серверу.
	LocalRev int64 `json:"local_rev"`
}

// IsTombstoned reports whether the note is soft-deleted.
func (n *Note) IsTombstoned() bool {
	return n.DeletedAt != nil
}

// LastWriteTimestamp returns DeletedAt for tombstones and UpdatedAt otherwise.
// A delete is a write at its own time, not at the time of the last content edit.
func (n *Note) LastWriteTimestamp() time.Time {
	if n.DeletedAt != nil {
		return *n.DeletedAt
	}
	return n.UpdatedAt
}

// IsPending reports whether the local note must be pushed.
func (n *LocalNote) IsPending() bool {
	return n.SyncStatus == SyncStatusPending
}

// Clone создает глубокую копию заметки
func (n *Note) Clone() *Note {
	c := *n
	if n.ContentJSON != nil {
		c.ContentJSON = bytes.Clone(n.ContentJSON)
	}
	if n.DeletedAt != nil {
		d := *n.DeletedAt
		c.DeletedAt = &d
	}
	return &c
}

// Clone создает глубокую копию локальной заметки
func (n *LocalNote) Clone() *LocalNote {
	c := *n
	c.Note = *n.Note.Clone()
	if n.LastSyncedAt != nil {
		t := *n.LastSyncedAt
		c.LastSyncedAt = &t
	}
	return &c
}

// NoteFromAPI конвертирует wire DTO в доменную модель
func NoteFromAPI(a *api.Note) *Note {
	n := &Note{
		ID:           a.ID,
		Title:        a.Title,
		ContentText:  a.ContentText,
		ContentJSON:  bytes.Clone(a.ContentJSON),
		Version:      a.Version,
		ListOrderSeq: a.ListOrderSeq,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if a.DeletedAt != nil {
		d := *a.DeletedAt
		n.DeletedAt = &d
	}
	return n
}

// ToAPI конвертирует доменную модель в wire DTO
func (n *Note) ToAPI() *api.Note {
	a := &api.Note{
		ID:           n.ID,
		Title:        n.Title,
		ContentText:  n.ContentText,
		ContentJSON:  bytes.Clone(n.ContentJSON),
		Version:      n.Version,
		ListOrderSeq: n.ListOrderSeq,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
	if n.DeletedAt != nil {
		d := *n.DeletedAt
		a.DeletedAt = &d
	}
	return a
}

// CreateRequest builds the create payload from the local state.
func (n *LocalNote) CreateRequest() api.CreateNoteRequest {
	return api.CreateNoteRequest{
		ID:           n.ID,
		Title:        n.Title,
		ContentText:  n.ContentText,
		ContentJSON:  n.ContentJSON,
		ListOrderSeq: n.ListOrderSeq,
	}
}

// UpdateRequest builds the patch payload with the given lock token.
func (n *LocalNote) UpdateRequest(baseVersion int64) api.UpdateNoteRequest {
	return api.UpdateNoteRequest{
		Title:        n.Title,
		ContentText:  n.ContentText,
		ContentJSON:  n.ContentJSON,
		ListOrderSeq: n.ListOrderSeq,
		BaseVersion:  baseVersion,
	}
}

// NotePatch описывает локальное изменение полей заметки.
// nil-поля не изменяются.
type NotePatch struct {
	UpdatedAt    time.Time
	Title        *string
	ContentText  *string
	ContentJSON  json.RawMessage
	ListOrderSeq *int64
}

// Apply применяет патч к заметке. BaseVersion и Version не трогаются.
func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.ContentText != nil {
		n.ContentText = *p.ContentText
	}
	if p.ContentJSON != nil {
		n.ContentJSON = bytes.Clone(p.ContentJSON)
	}
	if p.ListOrderSeq != nil {
		n.ListOrderSeq = *p.ListOrderSeq
	}
	if !p.UpdatedAt.IsZero() {
		n.UpdatedAt = p.UpdatedAt
	}
}
