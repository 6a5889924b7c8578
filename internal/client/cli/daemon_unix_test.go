//go:build unix

package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/zennotes/internal/client/scheduler"
	clientsync "github.com/iudanet/zennotes/internal/client/sync"
)

func TestLead_TakesOverSoonAfterRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.lock")

	// Чужой процесс держит блокировку в момент старта демона
	other := scheduler.NewFileLocker(path)
	ok, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, ok)

	syncer := &clientsync.ServiceMock{
		SyncWithRemoteFunc: func(ctx context.Context) clientsync.Result {
			return clientsync.Result{Success: true}
		},
	}
	// offline: цикл синхронизации не выполняется, проверяется только лидерство
	ctrl := scheduler.New(scheduler.DefaultConfig(), syncer, scheduler.NewFileLocker(path),
		scheduler.NewManualState(false), nil, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- lead(ctx, ctrl, time.Hour, testLogger())
	}()

	time.Sleep(100 * time.Millisecond)
	assert.False(t, ctrl.IsLeader())
	require.NoError(t, other.Unlock())

	// Полный период ожидания - час; лидерство приходит после первой короткой паузы
	assert.Eventually(t, ctrl.IsLeader, 3*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	ctrl.Stop()
	ctrl.Wait()
}
