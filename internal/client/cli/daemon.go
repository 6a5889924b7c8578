package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/zennotes/internal/client/scheduler"
	"github.com/iudanet/zennotes/internal/client/storage"
	"github.com/iudanet/zennotes/internal/config"
)

// schedulerConfig переводит настройки клиента в темп контроллера
func schedulerConfig(cfg config.SyncConfig) scheduler.Config {
	return scheduler.Config{
		VisibleInterval: cfg.VisibleInterval,
		HiddenInterval:  cfg.HiddenInterval,
		BackoffMin:      cfg.BackoffMin,
		BackoffMax:      cfg.BackoffMax,
		PokeDebounce:    cfg.PokeDebounce,
	}
}

// runDaemon держит контроллер синхронизации до SIGINT/SIGTERM
func runDaemon(ctx context.Context, rt *runtime) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := rt.cfg
	logger := rt.logger

	probe := scheduler.NewHTTPProbe(rt.api, cfg.Sync.ProbeInterval, logger)
	visibility := scheduler.NewSignalVisibility()

	ctrl, err := scheduler.Shared(func() (*scheduler.Controller, error) {
		locker := scheduler.NewFileLocker(cfg.Storage.Lock())
		return scheduler.New(schedulerConfig(cfg.Sync), rt.sync, locker, probe, visibility, logger), nil
	})
	if err != nil {
		return fmt.Errorf("failed to create sync controller: %w", err)
	}

	// Контроллер сам схлопывает серии Poke
	watcher := scheduler.NewFileWatcher(cfg.Storage.Poke(), 0, ctrl.Poke, logger)
	notifier := scheduler.NewRemoteNotifier(rt.api.EventsURL(), cfg.Server.Token, ctrl.Poke, logger,
		scheduler.WithKnownVersion(knownVersion(rt.store)))

	logger.Info("Sync daemon starting",
		"server", cfg.Server.URL,
		"db", cfg.Storage.DBPath,
		"lock", cfg.Storage.Lock())

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		probe.Run(gCtx)
		return nil
	})
	g.Go(func() error {
		visibility.Run(gCtx)
		return nil
	})
	g.Go(func() error {
		return watcher.Run(gCtx)
	})
	g.Go(func() error {
		notifier.Run(gCtx)
		return nil
	})
	g.Go(func() error {
		watchLocalChanges(gCtx, rt.store, ctrl.Poke, logger)
		return nil
	})
	g.Go(func() error {
		return lead(gCtx, ctrl, cfg.Sync.HiddenInterval, logger)
	})

	err = g.Wait()

	ctrl.Stop()
	ctrl.Wait()
	logger.Info("Sync daemon stopped")

	return err
}

// leadRetryMin - первая пауза перед повторным захватом лидерства.
// Короткая, чтобы демон не ждал полный период из-за мгновенной проверки status.
const leadRetryMin = time.Second

// lead пытается стать лидером, пока блокировку держит другой процесс.
// Паузы между попытками растут от leadRetryMin до retry.
func lead(ctx context.Context, ctrl *scheduler.Controller, retry time.Duration, logger *slog.Logger) error {
	var wait time.Duration
	for {
		if err := ctrl.Start(ctx); err != nil {
			return fmt.Errorf("failed to start sync controller: %w", err)
		}
		if ctrl.IsLeader() {
			break
		}

		wait = nextLeadRetry(wait, retry)
		logger.Info("Another process is the sync leader, standing by", "retry_in", wait)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
	}

	<-ctx.Done()
	return nil
}

func nextLeadRetry(prev, limit time.Duration) time.Duration {
	if prev <= 0 {
		return min(leadRetryMin, limit)
	}
	return min(prev*2, limit)
}

// knownVersion отдаёт BaseVersion локальной заметки; 0, если её нет
func knownVersion(notes storage.NoteStorage) scheduler.KnownVersionFunc {
	return func(ctx context.Context, id string) int64 {
		note, err := notes.GetNote(ctx, id)
		if err != nil {
			return 0
		}
		return note.BaseVersion
	}
}

// watchLocalChanges будит контроллер на изменения, сделанные в этом процессе
func watchLocalChanges(ctx context.Context, feed storage.ChangeFeed, poke func(), logger *slog.Logger) {
	events, cancel := feed.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			logger.Debug("Local store changed", "id", ev.ID, "kind", ev.Kind)
			if ev.Kind == storage.ChangeLocal {
				poke()
			}
		}
	}
}
