// Package scheduler drives the sync engine: it elects a single leader
// process, paces sync cycles by visibility and backoff, and reacts to
// connectivity changes and pokes.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	clientsync "github.com/iudanet/zennotes/internal/client/sync"
)

// State of the controller
type State string

const (
	StateIdle          State = "idle"
	StateLeaderPending State = "leader-pending"
	StateRunning       State = "running"
	StateStopped       State = "stopped"
)

// ErrStopped is returned by Start on a stopped controller
var ErrStopped = errors.New("controller is stopped")

// Syncer runs one sync cycle
type Syncer interface {
	SyncWithRemote(ctx context.Context) clientsync.Result
}

// Config задаёт темп синхронизации
type Config struct {
	VisibleInterval time.Duration // период, пока приложение видно
	HiddenInterval  time.Duration // период в фоне
	BackoffMin      time.Duration // первая задержка после неудачи
	BackoffMax      time.Duration // верхняя граница backoff
	PokeDebounce    time.Duration // схлопывание серии Poke
}

// DefaultConfig returns the default pacing
func DefaultConfig() Config {
	return Config{
		VisibleInterval: 15 * time.Second,
		HiddenInterval:  2 * time.Minute,
		BackoffMin:      5 * time.Second,
		BackoffMax:      5 * time.Minute,
		PokeDebounce:    1500 * time.Millisecond,
	}
}

// Controller is the single-leader sync scheduler
type Controller struct {
	syncer     Syncer
	locker     Locker
	conn       Connectivity
	visibility Visibility
	logger     *slog.Logger

	// baseCtx не отменяется Stop: начатый цикл доводится до конца
	baseCtx context.Context

	timer     *time.Timer
	pokeTimer *time.Timer
	detach    []func()
	idle      chan struct{}

	cfg   Config
	state State

	backoff time.Duration
	mu      sync.Mutex

	inFlight bool
	rerun    bool
	failed   bool
}

// New creates a controller in the idle state
func New(cfg Config, syncer Syncer, locker Locker, conn Connectivity, visibility Visibility, logger *slog.Logger) *Controller {
	if visibility == nil {
		visibility = StaticVisibility{}
	}
	idle := make(chan struct{})
	close(idle)
	return &Controller{
		cfg:        cfg,
		syncer:     syncer,
		locker:     locker,
		conn:       conn,
		visibility: visibility,
		logger:     logger,
		state:      StateIdle,
		idle:       idle,
	}
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsLeader reports whether this controller holds the leader lock
func (c *Controller) IsLeader() bool {
	return c.State() == StateRunning
}

// Start requests leadership and, if granted, starts the scheduling loop.
// Если блокировка занята другим процессом, контроллер ничего не делает и возвращается в idle.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateStopped:
		c.mu.Unlock()
		return ErrStopped
	case StateRunning, StateLeaderPending:
		c.mu.Unlock()
		return nil
	}
	c.state = StateLeaderPending
	c.mu.Unlock()

	ok, err := c.locker.TryLock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateStopped {
		// Stop пришёл, пока ждали блокировку
		if ok {
			_ = c.locker.Unlock()
		}
		return ErrStopped
	}
	if err != nil {
		c.state = StateIdle
		return fmt.Errorf("failed to acquire leader lock: %w", err)
	}
	if !ok {
		c.state = StateIdle
		c.logger.Debug("Leader lock is held by another process")
		return nil
	}

	c.state = StateRunning
	c.baseCtx = context.WithoutCancel(ctx)
	c.attachListeners()
	c.logger.Info("Sync leader acquired")

	// Первый цикл сразу после старта
	c.triggerLocked("start")
	return nil
}

// Stop cancels pending timers, detaches listeners and releases leadership.
// An in-flight cycle is allowed to finish; the lock is released after it.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateStopped {
		return
	}
	wasRunning := c.state == StateRunning
	c.state = StateStopped

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.pokeTimer != nil {
		c.pokeTimer.Stop()
		c.pokeTimer = nil
	}
	for _, fn := range c.detach {
		fn()
	}
	c.detach = nil
	c.rerun = false

	if wasRunning && !c.inFlight {
		c.releaseLocked()
	}
}

// Wait blocks until no cycle is in flight
func (c *Controller) Wait() {
	c.mu.Lock()
	idle := c.idle
	c.mu.Unlock()
	<-idle
}

// Poke requests a sync soon. Серия вызовов схлопывается в один цикл.
func (c *Controller) Poke() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning {
		return
	}
	if c.cfg.PokeDebounce <= 0 {
		c.triggerLocked("poke")
		return
	}
	if c.pokeTimer != nil {
		c.pokeTimer.Stop()
	}
	c.pokeTimer = time.AfterFunc(c.cfg.PokeDebounce, func() {
		c.trigger("poke")
	})
}

func (c *Controller) trigger(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.triggerLocked(reason)
}

// triggerLocked запускает цикл или, если он уже идёт, запоминает один повтор
func (c *Controller) triggerLocked(reason string) {
	if c.state != StateRunning {
		return
	}
	if c.inFlight {
		c.rerun = true
		return
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	c.inFlight = true
	c.idle = make(chan struct{})
	c.logger.Debug("Sync cycle triggered", "reason", reason)
	go c.loop()
}

// loop выполняет цикл и, если за время цикла пришёл триггер, ровно ещё один
func (c *Controller) loop() {
	for {
		c.runCycle()

		c.mu.Lock()
		if c.state == StateRunning && c.rerun {
			c.rerun = false
			c.mu.Unlock()
			continue
		}

		c.inFlight = false
		if c.state == StateRunning {
			c.scheduleLocked()
		} else if c.state == StateStopped {
			c.releaseLocked()
		}
		close(c.idle)
		c.mu.Unlock()
		return
	}
}

func (c *Controller) runCycle() {
	if !c.conn.Online() {
		c.logger.Debug("Offline, skipping sync cycle")
		return
	}

	res := c.syncer.SyncWithRemote(c.baseCtx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if res.Success {
		c.failed = false
		c.backoff = 0
		return
	}

	c.failed = true
	c.backoff = nextBackoff(c.backoff, c.cfg.BackoffMin, c.cfg.BackoffMax)
	c.logger.Debug("Sync cycle failed", "backoff", c.backoff)
}

func (c *Controller) scheduleLocked() {
	delay := c.nextDelayLocked()
	c.timer = time.AfterFunc(delay, func() {
		c.trigger("timer")
	})
}

func (c *Controller) nextDelayLocked() time.Duration {
	return nextDelay(c.cfg, c.visibility.Visible(), c.failed, c.backoff)
}

// nextDelay - период по видимости. После неудачи backoff добавляется
// к более короткому из двух периодов.
func nextDelay(cfg Config, visible, failed bool, backoff time.Duration) time.Duration {
	if failed {
		return min(cfg.VisibleInterval, cfg.HiddenInterval) + backoff
	}
	if visible {
		return cfg.VisibleInterval
	}
	return cfg.HiddenInterval
}

// nextBackoff удваивает задержку в пределах [minDelay, maxDelay]
func nextBackoff(current, minDelay, maxDelay time.Duration) time.Duration {
	if current < minDelay {
		return minDelay
	}
	next := current * 2
	if next > maxDelay {
		return maxDelay
	}
	return next
}

func (c *Controller) releaseLocked() {
	if err := c.locker.Unlock(); err != nil {
		c.logger.Warn("Failed to release leader lock", "error", err)
		return
	}
	c.logger.Info("Sync leader released")
}

// attachListeners подписывается на сеть и видимость
func (c *Controller) attachListeners() {
	connCh, connCancel := c.conn.Subscribe()
	visCh, visCancel := c.visibility.Subscribe()
	c.detach = append(c.detach, connCancel, visCancel)

	go func() {
		for online := range connCh {
			if online {
				c.trigger("online")
			}
		}
	}()

	go func() {
		for visible := range visCh {
			if visible {
				c.trigger("visible")
				continue
			}
			// Ушли в фон: пересчитываем таймер с длинным периодом
			c.reschedule()
		}
	}()
}

func (c *Controller) reschedule() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning || c.inFlight || c.timer == nil {
		return
	}
	c.timer.Stop()
	c.scheduleLocked()
}
