package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/zennotes/pkg/api"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

// EventHub рассылает NoteEvent подключённым websocket клиентам.
// Клиенты используют события только как сигнал к синхронизации,
// поэтому медленному подписчику событие может не достаться.
type EventHub struct {
	logger   *slog.Logger
	clients  map[*subscriber]struct{}
	upgrader websocket.Upgrader
	mu       sync.Mutex
	closed   bool
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// NewEventHub создает новый hub
func NewEventHub(logger *slog.Logger) *EventHub {
	return &EventHub{
		logger:  logger,
		clients: make(map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Publish implements Publisher
func (h *EventHub) Publish(event api.NoteEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode note event", slog.Any("error", err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.logger.Debug("event dropped for slow subscriber")
		}
	}
}

// Subscribers возвращает число подключённых клиентов
func (h *EventHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Run держит hub до отмены ctx, затем закрывает все подключения
func (h *EventHub) Run(ctx context.Context) error {
	<-ctx.Done()

	h.mu.Lock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()

	return nil
}

// ServeHTTP обрабатывает GET /api/v1/notes/events
func (h *EventHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to upgrade connection", slog.Any("error", err))
		return
	}

	c := &subscriber{conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	h.logger.DebugContext(r.Context(), "event subscriber connected", slog.String("remote", r.RemoteAddr))

	go h.writePump(c)
	h.readPump(c)
}

func (h *EventHub) register(c *subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *EventHub) unregister(c *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// readPump читает до закрытия соединения; входящие сообщения игнорируются
func (h *EventHub) readPump(c *subscriber) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error", slog.Any("error", err))
			}
			return
		}
	}
}

// writePump отправляет события по одному сообщению на событие
func (h *EventHub) writePump(c *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
