package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/zennotes/pkg/api"
)

// KnownVersionFunc returns the server version the local store already has
// for a note, 0 if the note is unknown.
type KnownVersionFunc func(ctx context.Context, id string) int64

// NotifierOption configures a RemoteNotifier
type NotifierOption func(*RemoteNotifier)

// WithKnownVersion skips events for versions the local store already has.
// Так демон не запускает лишний цикл на эхо собственного push.
func WithKnownVersion(fn KnownVersionFunc) NotifierOption {
	return func(n *RemoteNotifier) {
		n.knownVersion = fn
	}
}

// RemoteNotifier listens on the server change stream and calls onChange
// for every new event. Соединение переустанавливается с экспоненциальной задержкой.
type RemoteNotifier struct {
	dialer       *websocket.Dialer
	onChange     func()
	knownVersion KnownVersionFunc
	logger       *slog.Logger
	url          string
	token        string
	backoffMin   time.Duration
	backoffMax   time.Duration
}

// NewRemoteNotifier creates a notifier for the given websocket URL
func NewRemoteNotifier(url, token string, onChange func(), logger *slog.Logger, opts ...NotifierOption) *RemoteNotifier {
	n := &RemoteNotifier{
		dialer:     &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		onChange:   onChange,
		logger:     logger,
		url:        url,
		token:      token,
		backoffMin: time.Second,
		backoffMax: time.Minute,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Run keeps the subscription alive until ctx is cancelled
func (n *RemoteNotifier) Run(ctx context.Context) {
	var backoff time.Duration

	for {
		connected, err := n.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		if connected {
			backoff = 0
		}
		backoff = nextBackoff(backoff, n.backoffMin, n.backoffMax)

		n.logger.Debug("Change stream disconnected", "error", err, "retry_in", backoff)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}

// listen reads events until the connection breaks
func (n *RemoteNotifier) listen(ctx context.Context) (bool, error) {
	header := http.Header{}
	if n.token != "" {
		header.Set("Authorization", "Bearer "+n.token)
	}

	conn, resp, err := n.dialer.DialContext(ctx, n.url, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return false, fmt.Errorf("failed to dial change stream: %w", err)
	}
	defer conn.Close()

	// Закрываем соединение при отмене, чтобы разблокировать ReadMessage
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	n.logger.Debug("Change stream connected", "url", n.url)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return true, err
		}

		var event api.NoteEvent
		if err := json.Unmarshal(data, &event); err != nil {
			n.logger.Warn("Malformed change event", "error", err)
			continue
		}

		if n.knownVersion != nil && event.Version <= n.knownVersion(ctx, event.ID) {
			n.logger.Debug("Remote change already applied", "id", event.ID, "version", event.Version)
			continue
		}

		n.logger.Debug("Remote change", "id", event.ID, "version", event.Version)
		n.onChange()
	}
}
