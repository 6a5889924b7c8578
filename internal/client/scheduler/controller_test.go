package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientsync "github.com/iudanet/zennotes/internal/client/sync"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type fakeSyncer struct {
	block   chan struct{}
	calls   atomic.Int32
	success atomic.Bool
}

func newFakeSyncer(success bool) *fakeSyncer {
	s := &fakeSyncer{}
	s.success.Store(success)
	return s
}

func (s *fakeSyncer) SyncWithRemote(ctx context.Context) clientsync.Result {
	s.calls.Add(1)
	if s.block != nil {
		<-s.block
	}
	return clientsync.Result{Success: s.success.Load()}
}

type fakeLocker struct {
	err      error
	mu       sync.Mutex
	held     bool
	busy     bool
	unlocked int
}

func (l *fakeLocker) TryLock() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, l.err
	}
	if l.busy {
		return false, nil
	}
	l.held = true
	return true, nil
}

func (l *fakeLocker) Unlock() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = false
	l.unlocked++
	return nil
}

func (l *fakeLocker) isHeld() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held
}

// slowConfig - таймер не мешает тестам триггеров
func slowConfig() Config {
	return Config{
		VisibleInterval: time.Hour,
		HiddenInterval:  time.Hour,
		BackoffMin:      time.Hour,
		BackoffMax:      time.Hour,
		PokeDebounce:    20 * time.Millisecond,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestController(cfg Config, syncer Syncer, locker Locker, conn Connectivity, vis Visibility) *Controller {
	return New(cfg, syncer, locker, conn, vis, testLogger())
}

func TestController_StartAcquiresLeadership(t *testing.T) {
	syncer := newFakeSyncer(true)
	locker := &fakeLocker{}
	ctrl := newTestController(slowConfig(), syncer, locker, NewManualState(true), nil)

	assert.Equal(t, StateIdle, ctrl.State())
	require.NoError(t, ctrl.Start(context.Background()))
	defer ctrl.Stop()

	assert.Equal(t, StateRunning, ctrl.State())
	assert.True(t, ctrl.IsLeader())
	assert.True(t, locker.isHeld())

	// Немедленный первый цикл
	assert.Eventually(t, func() bool { return syncer.calls.Load() == 1 }, waitFor, tick)

	// Повторный Start ничего не делает
	require.NoError(t, ctrl.Start(context.Background()))
	ctrl.Wait()
	assert.Equal(t, int32(1), syncer.calls.Load())
}

func TestController_LockHeldElsewhere(t *testing.T) {
	syncer := newFakeSyncer(true)
	locker := &fakeLocker{busy: true}
	ctrl := newTestController(slowConfig(), syncer, locker, NewManualState(true), nil)

	require.NoError(t, ctrl.Start(context.Background()))

	assert.Equal(t, StateIdle, ctrl.State())
	assert.False(t, ctrl.IsLeader())

	ctrl.Poke()
	ctrl.trigger("manual")
	assert.Never(t, func() bool { return syncer.calls.Load() > 0 }, 100*time.Millisecond, tick)
}

func TestController_LockError(t *testing.T) {
	locker := &fakeLocker{err: errors.New("permission denied")}
	ctrl := newTestController(slowConfig(), newFakeSyncer(true), locker, NewManualState(true), nil)

	err := ctrl.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateIdle, ctrl.State())
}

func TestController_CoalescesTriggers(t *testing.T) {
	syncer := newFakeSyncer(true)
	syncer.block = make(chan struct{})
	ctrl := newTestController(slowConfig(), syncer, &fakeLocker{}, NewManualState(true), nil)

	require.NoError(t, ctrl.Start(context.Background()))
	defer ctrl.Stop()

	assert.Eventually(t, func() bool { return syncer.calls.Load() == 1 }, waitFor, tick)

	// Цикл в полёте: пять триггеров схлопываются в один повтор
	for range 5 {
		ctrl.trigger("manual")
	}

	syncer.block <- struct{}{}
	assert.Eventually(t, func() bool { return syncer.calls.Load() == 2 }, waitFor, tick)
	syncer.block <- struct{}{}

	ctrl.Wait()
	assert.Never(t, func() bool { return syncer.calls.Load() > 2 }, 100*time.Millisecond, tick)
}

func TestController_OfflineSkipsAndOnlineTriggers(t *testing.T) {
	syncer := newFakeSyncer(true)
	conn := NewManualState(false)
	ctrl := newTestController(slowConfig(), syncer, &fakeLocker{}, conn, nil)

	require.NoError(t, ctrl.Start(context.Background()))
	defer ctrl.Stop()

	ctrl.Wait()
	assert.Equal(t, int32(0), syncer.calls.Load(), "offline cycle is skipped")

	conn.Set(true)
	assert.Eventually(t, func() bool { return syncer.calls.Load() == 1 }, waitFor, tick)

	// Переход в offline не запускает цикл
	conn.Set(false)
	assert.Never(t, func() bool { return syncer.calls.Load() > 1 }, 100*time.Millisecond, tick)
}

func TestController_VisibleTriggers(t *testing.T) {
	syncer := newFakeSyncer(true)
	vis := NewManualState(false)
	ctrl := newTestController(slowConfig(), syncer, &fakeLocker{}, NewManualState(true), vis)

	require.NoError(t, ctrl.Start(context.Background()))
	defer ctrl.Stop()

	assert.Eventually(t, func() bool { return syncer.calls.Load() == 1 }, waitFor, tick)
	ctrl.Wait()

	vis.Set(true)
	assert.Eventually(t, func() bool { return syncer.calls.Load() == 2 }, waitFor, tick)
}

func TestController_PokeIsDebounced(t *testing.T) {
	syncer := newFakeSyncer(true)
	ctrl := newTestController(slowConfig(), syncer, &fakeLocker{}, NewManualState(true), nil)

	require.NoError(t, ctrl.Start(context.Background()))
	defer ctrl.Stop()

	assert.Eventually(t, func() bool { return syncer.calls.Load() == 1 }, waitFor, tick)
	ctrl.Wait()

	for range 10 {
		ctrl.Poke()
	}

	assert.Eventually(t, func() bool { return syncer.calls.Load() == 2 }, waitFor, tick)
	assert.Never(t, func() bool { return syncer.calls.Load() > 2 }, 100*time.Millisecond, tick)
}

func TestController_Cadence(t *testing.T) {
	cfg := slowConfig()
	cfg.VisibleInterval = 10 * time.Millisecond

	syncer := newFakeSyncer(true)
	ctrl := newTestController(cfg, syncer, &fakeLocker{}, NewManualState(true), StaticVisibility{})

	require.NoError(t, ctrl.Start(context.Background()))
	defer ctrl.Stop()

	assert.Eventually(t, func() bool { return syncer.calls.Load() >= 3 }, waitFor, tick)
}

func TestController_BackoffAfterFailure(t *testing.T) {
	cfg := slowConfig()
	cfg.VisibleInterval = 10 * time.Millisecond
	cfg.BackoffMin = time.Hour

	syncer := newFakeSyncer(false)
	ctrl := newTestController(cfg, syncer, &fakeLocker{}, NewManualState(true), StaticVisibility{})

	require.NoError(t, ctrl.Start(context.Background()))
	defer ctrl.Stop()

	assert.Eventually(t, func() bool { return syncer.calls.Load() == 1 }, waitFor, tick)
	// После неудачи задержка = короткий период + backoff
	assert.Never(t, func() bool { return syncer.calls.Load() > 1 }, 100*time.Millisecond, tick)

	// Явный триггер работает и при backoff; успех сбрасывает его
	syncer.success.Store(true)
	ctrl.trigger("manual")
	assert.Eventually(t, func() bool { return syncer.calls.Load() >= 4 }, waitFor, tick)
}

func TestController_StopIsIdempotentAndReleasesLock(t *testing.T) {
	syncer := newFakeSyncer(true)
	locker := &fakeLocker{}
	ctrl := newTestController(slowConfig(), syncer, locker, NewManualState(true), nil)

	require.NoError(t, ctrl.Start(context.Background()))
	ctrl.Wait()

	ctrl.Stop()
	ctrl.Stop()

	assert.Equal(t, StateStopped, ctrl.State())
	assert.False(t, locker.isHeld())
	assert.Equal(t, 1, locker.unlocked)

	ctrl.Poke()
	ctrl.trigger("manual")
	assert.Never(t, func() bool { return syncer.calls.Load() > 1 }, 100*time.Millisecond, tick)

	assert.ErrorIs(t, ctrl.Start(context.Background()), ErrStopped)
}

func TestController_StopLetsInFlightCycleFinish(t *testing.T) {
	syncer := newFakeSyncer(true)
	syncer.block = make(chan struct{})
	locker := &fakeLocker{}
	ctrl := newTestController(slowConfig(), syncer, locker, NewManualState(true), nil)

	require.NoError(t, ctrl.Start(context.Background()))
	assert.Eventually(t, func() bool { return syncer.calls.Load() == 1 }, waitFor, tick)

	ctrl.trigger("manual")
	ctrl.Stop()

	// Лидерство удерживается, пока цикл не завершится
	assert.True(t, locker.isHeld())

	close(syncer.block)
	ctrl.Wait()

	assert.False(t, locker.isHeld())
	assert.Equal(t, int32(1), syncer.calls.Load(), "pending rerun is dropped on stop")
}

func TestController_StopBeforeStart(t *testing.T) {
	locker := &fakeLocker{}
	ctrl := newTestController(slowConfig(), newFakeSyncer(true), locker, NewManualState(true), nil)

	ctrl.Stop()
	assert.Equal(t, StateStopped, ctrl.State())
	assert.Equal(t, 0, locker.unlocked)
}

func TestNextDelay(t *testing.T) {
	cfg := Config{VisibleInterval: 10 * time.Second, HiddenInterval: time.Minute}

	tests := []struct {
		name    string
		backoff time.Duration
		want    time.Duration
		visible bool
		failed  bool
	}{
		{name: "visible", visible: true, want: 10 * time.Second},
		{name: "hidden", visible: false, want: time.Minute},
		{name: "failed while visible", visible: true, failed: true, backoff: 5 * time.Second, want: 15 * time.Second},
		{name: "failed while hidden uses shorter cadence", visible: false, failed: true, backoff: 5 * time.Second, want: 15 * time.Second},
		{name: "failed, backoff grows", visible: true, failed: true, backoff: 40 * time.Second, want: 50 * time.Second},
		{name: "backoff ignored after success", visible: true, backoff: time.Hour, want: 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextDelay(cfg, tt.visible, tt.failed, tt.backoff))
		})
	}
}

func TestNextDelay_FailureAlwaysSlowerThanSuccess(t *testing.T) {
	cfg := DefaultConfig()

	var backoff time.Duration
	for i := range 8 {
		backoff = nextBackoff(backoff, cfg.BackoffMin, cfg.BackoffMax)
		delay := nextDelay(cfg, true, true, backoff)
		assert.Greater(t, delay, cfg.VisibleInterval, "failure %d", i+1)
		assert.LessOrEqual(t, delay, cfg.VisibleInterval+cfg.BackoffMax)
	}
}

func TestNextBackoff(t *testing.T) {
	minDelay, maxDelay := time.Second, 10*time.Second

	var got []time.Duration
	var b time.Duration
	for range 6 {
		b = nextBackoff(b, minDelay, maxDelay)
		got = append(got, b)
	}

	assert.Equal(t, []time.Duration{
		time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second, 10 * time.Second, 10 * time.Second,
	}, got)
}

func TestShared(t *testing.T) {
	builds := 0
	build := func() (*Controller, error) {
		builds++
		return newTestController(slowConfig(), newFakeSyncer(true), &fakeLocker{}, NewManualState(true), nil), nil
	}

	first, err := Shared(build)
	require.NoError(t, err)
	second, err := Shared(build)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)
}
