package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/iudanet/zennotes/pkg/api"
)

// HealthChecker is the part of the API client the probe needs
type HealthChecker interface {
	Health(ctx context.Context) (*api.HealthResponse, error)
}

// HTTPProbe polls the server health endpoint and reports connectivity.
// Сеть считается доступной, пока health check отвечает успешно.
type HTTPProbe struct {
	checker  HealthChecker
	logger   *slog.Logger
	feed     *stateFeed
	interval time.Duration
	timeout  time.Duration
}

// NewHTTPProbe creates a probe. Начальное состояние - online: первый цикл
// синхронизации сам выяснит, доступен ли сервер.
func NewHTTPProbe(checker HealthChecker, interval time.Duration, logger *slog.Logger) *HTTPProbe {
	timeout := interval / 2
	if timeout <= 0 || timeout > 5*time.Second {
		timeout = 5 * time.Second
	}
	return &HTTPProbe{
		checker:  checker,
		logger:   logger,
		feed:     newStateFeed(true),
		interval: interval,
		timeout:  timeout,
	}
}

// Online implements Connectivity
func (p *HTTPProbe) Online() bool {
	return p.feed.get()
}

// Subscribe implements Connectivity
func (p *HTTPProbe) Subscribe() (<-chan bool, func()) {
	return p.feed.subscribe()
}

// Check performs one health check and updates the state
func (p *HTTPProbe) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	_, err := p.checker.Health(ctx)
	online := err == nil

	if online != p.feed.get() {
		p.logger.Info("Connectivity changed", "online", online)
	}
	if err != nil {
		p.logger.Debug("Health check failed", "error", err)
	}

	p.feed.set(online)
	return online
}

// Run polls until ctx is cancelled
func (p *HTTPProbe) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}
