package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/iudanet/zennotes/internal/models"
	"github.com/iudanet/zennotes/internal/server/storage"
	"github.com/iudanet/zennotes/pkg/api"
)

// Publisher рассылает уведомления о принятых мутациях
type Publisher interface {
	Publish(event api.NoteEvent)
}

// NotesHandler обрабатывает CRUD запросы заметок
type NotesHandler struct {
	logger    *slog.Logger
	storage   storage.NoteStorage
	publisher Publisher
	validate  *validator.Validate
	now       func() time.Time
}

// NewNotesHandler создает новый handler заметок. publisher может быть nil.
func NewNotesHandler(logger *slog.Logger, noteStorage storage.NoteStorage, publisher Publisher) *NotesHandler {
	return &NotesHandler{
		logger:    logger,
		storage:   noteStorage,
		publisher: publisher,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		now:       time.Now,
	}
}

// Create обрабатывает POST /api/v1/notes
// ID заметки выбирает клиент; повторный ID - конфликт с текущей записью
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateNoteRequest
	if !h.decode(w, r, &req) {
		return
	}

	note, err := h.storage.CreateNote(ctx, &models.Note{
		ID:           req.ID,
		Title:        req.Title,
		ContentText:  req.ContentText,
		ContentJSON:  req.ContentJSON,
		ListOrderSeq: req.ListOrderSeq,
	})
	if err != nil {
		h.handleStorageError(w, r, req.ID, err)
		return
	}

	h.logger.InfoContext(ctx, "note created", slog.String("note_id", note.ID))
	h.publish(note)
	sendJSON(h.logger, w, note.ToAPI(), http.StatusOK)
}

// Update обрабатывает PATCH /api/v1/notes/{id}
func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req api.UpdateNoteRequest
	if !h.decode(w, r, &req) {
		return
	}

	note, err := h.storage.UpdateNote(ctx, id, storage.NoteUpdate{
		Title:        req.Title,
		ContentText:  req.ContentText,
		ContentJSON:  req.ContentJSON,
		ListOrderSeq: req.ListOrderSeq,
	}, req.BaseVersion)
	if err != nil {
		h.handleStorageError(w, r, id, err)
		return
	}

	h.logger.InfoContext(ctx, "note updated",
		slog.String("note_id", id),
		slog.Int64("version", note.Version))
	h.publish(note)
	sendJSON(h.logger, w, note.ToAPI(), http.StatusOK)
}

// Delete обрабатывает DELETE /api/v1/notes/{id}?baseVersion=N
// Удаление мягкое: возвращается tombstone
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	baseVersion, err := strconv.ParseInt(r.URL.Query().Get(api.QueryBaseVersion), 10, 64)
	if err != nil || baseVersion < 1 {
		sendError(h.logger, w, "baseVersion must be a positive integer", http.StatusBadRequest)
		return
	}

	note, err := h.storage.DeleteNote(ctx, id, baseVersion)
	if err != nil {
		h.handleStorageError(w, r, id, err)
		return
	}

	h.logger.InfoContext(ctx, "note deleted",
		slog.String("note_id", id),
		slog.Int64("version", note.Version))
	h.publish(note)
	sendJSON(h.logger, w, note.ToAPI(), http.StatusOK)
}

// Get обрабатывает GET /api/v1/notes/{id}
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	note, err := h.storage.GetNote(r.Context(), id)
	if err != nil {
		h.handleStorageError(w, r, id, err)
		return
	}

	sendJSON(h.logger, w, note.ToAPI(), http.StatusOK)
}

// List обрабатывает GET /api/v1/notes[?since=cursor]
// Без since возвращается полный список, с since - изменения в [since, cutoff).
// Tombstones включаются в оба режима. X-Next-Cursor = cutoff,
// зафиксированный до выполнения запроса.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cutoff := h.now().UTC().Truncate(time.Millisecond)

	var (
		notes []*models.Note
		err   error
	)

	if raw := r.URL.Query().Get(api.QuerySince); raw != "" {
		since, parseErr := time.Parse(api.CursorLayout, raw)
		if parseErr != nil {
			h.logger.WarnContext(ctx, "invalid since parameter", slog.String("since", raw))
			sendError(h.logger, w, "invalid since parameter", http.StatusBadRequest)
			return
		}
		notes, err = h.storage.ListNotesChangedBetween(ctx, since, cutoff)
	} else {
		notes, err = h.storage.ListNotes(ctx)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list notes", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]*api.Note, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, n.ToAPI())
	}

	w.Header().Set(api.HeaderNextCursor, cutoff.Format(api.CursorLayout))
	sendJSON(h.logger, w, resp, http.StatusOK)

	h.logger.DebugContext(ctx, "notes listed", slog.Int("count", len(resp)))
}

// decode разбирает и валидирует тело запроса
func (h *NotesHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.logger.WarnContext(r.Context(), "invalid request", slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// handleStorageError отображает ошибки хранилища в HTTP статусы.
// Конфликт отдаёт текущую запись сервера телом ответа 409.
func (h *NotesHandler) handleStorageError(w http.ResponseWriter, r *http.Request, id string, err error) {
	ctx := r.Context()

	if conflict, ok := storage.AsConflict(err); ok {
		h.logger.InfoContext(ctx, "version conflict",
			slog.String("note_id", id),
			slog.Int64("current_version", conflict.Current.Version))
		sendJSON(h.logger, w, conflict.Current.ToAPI(), http.StatusConflict)
		return
	}
	if errors.Is(err, storage.ErrNotFound) {
		sendError(h.logger, w, "note not found", http.StatusNotFound)
		return
	}

	h.logger.ErrorContext(ctx, "storage error", slog.String("note_id", id), slog.Any("error", err))
	sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
}

func (h *NotesHandler) publish(note *models.Note) {
	if h.publisher == nil {
		return
	}
	h.publisher.Publish(api.NoteEvent{
		Type:    api.NoteEventChanged,
		ID:      note.ID,
		Version: note.Version,
	})
}
