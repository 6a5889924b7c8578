package cli

import (
	"log/slog"

	"github.com/iudanet/zennotes/internal/client/data"
	"github.com/iudanet/zennotes/internal/client/iocli"
	"github.com/iudanet/zennotes/internal/client/scheduler"
	"github.com/iudanet/zennotes/internal/client/storage"
	clientsync "github.com/iudanet/zennotes/internal/client/sync"
)

// leaderLock - блокировка лидера синхронизации, видимая из CLI
type leaderLock interface {
	scheduler.Locker
	// Held сообщает, держит ли блокировку другой процесс, не захватывая её
	Held() (bool, error)
}

// Cli executes user commands against the local store
type Cli struct {
	io          iocli.IO
	dataService data.Service
	syncService clientsync.Service
	metadata    storage.MetadataStorage
	locker      leaderLock
	logger      *slog.Logger
	// poke просит демона-лидера выполнить цикл (команда sync)
	poke func() error
}

// New creates a Cli
func New(
	io iocli.IO,
	dataService data.Service,
	syncService clientsync.Service,
	metadata storage.MetadataStorage,
	locker leaderLock,
	poke func() error,
	logger *slog.Logger,
) *Cli {
	return &Cli{
		io:          io,
		dataService: dataService,
		syncService: syncService,
		metadata:    metadata,
		locker:      locker,
		poke:        poke,
		logger:      logger,
	}
}
