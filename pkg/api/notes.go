package api

import (
	"encoding/json"
	"time"
)

const (
	// HeaderNextCursor carries the server cutoff of a listing response.
	// The client passes it back as the since parameter of the next incremental pull.
	HeaderNextCursor = "X-Next-Cursor"

	// QuerySince is the query parameter of the incremental listing
	QuerySince = "since"

	// QueryBaseVersion is the optimistic lock token of DELETE /notes/{id}
	QueryBaseVersion = "baseVersion"

	// CursorLayout is the wire format of pull cursors (ISO 8601 with nanoseconds)
	CursorLayout = time.RFC3339Nano
)

// Note представляет заметку в том виде, в котором её хранит сервер
type Note struct {
	CreatedAt    time.Time       `json:"createdAt" validate:"required"`
	UpdatedAt    time.Time       `json:"updatedAt" validate:"required"`
	DeletedAt    *time.Time      `json:"deletedAt"`
	ID           string          `json:"id" validate:"required"`
	Title        string          `json:"title"`
	ContentText  string          `json:"contentText"`
	ContentJSON  json.RawMessage `json:"contentJson"`
	Version      int64           `json:"version" validate:"gte=1"`
	ListOrderSeq int64           `json:"listOrderSeq" validate:"gte=0"`
}

// CreateNoteRequest представляет тело POST /notes.
// ID выбирается клиентом в момент создания заметки.
type CreateNoteRequest struct {
	ID           string          `json:"id" validate:"required,max=128"`
	Title        string          `json:"title" validate:"max=1024"`
	ContentText  string          `json:"contentText"`
	ContentJSON  json.RawMessage `json:"contentJson"`
	ListOrderSeq int64           `json:"listOrderSeq" validate:"gte=0"`
}

// UpdateNoteRequest представляет тело PATCH /notes/{id}.
// BaseVersion - последняя известная клиенту версия сервера (optimistic lock token).
type UpdateNoteRequest struct {
	Title        string          `json:"title" validate:"max=1024"`
	ContentText  string          `json:"contentText"`
	ContentJSON  json.RawMessage `json:"contentJson"`
	ListOrderSeq int64           `json:"listOrderSeq" validate:"gte=0"`
	BaseVersion  int64           `json:"baseVersion" validate:"gte=1"`
}

// NoteEvent is broadcast to websocket subscribers after every accepted mutation.
type NoteEvent struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Version int64  `json:"version"`
}

// NoteEventChanged is the only event type emitted today
const NoteEventChanged = "notes.changed"
