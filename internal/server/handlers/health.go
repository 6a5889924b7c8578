package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/iudanet/zennotes/pkg/api"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	logger  *slog.Logger
	db      Pinger
	version string
}

// NewHealthHandler создает новый handler для health check.
// db может быть nil, тогда хранилище не проверяется.
func NewHealthHandler(logger *slog.Logger, db Pinger, version string) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		db:      db,
		version: version,
	}
}

// Health обрабатывает GET /api/v1/health
// Health check endpoint, его опрашивает клиентский probe связности
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			h.logger.ErrorContext(r.Context(), "database is unavailable", slog.Any("error", err))
			sendJSON(h.logger, w, api.HealthResponse{Status: "unavailable", Version: h.version}, http.StatusServiceUnavailable)
			return
		}
	}

	sendJSON(h.logger, w, api.HealthResponse{Status: "ok", Version: h.version}, http.StatusOK)
}
