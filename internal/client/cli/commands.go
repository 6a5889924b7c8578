package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/iudanet/zennotes/internal/client/api"
	"github.com/iudanet/zennotes/internal/client/data"
	"github.com/iudanet/zennotes/internal/client/iocli"
	"github.com/iudanet/zennotes/internal/client/scheduler"
	"github.com/iudanet/zennotes/internal/client/storage/boltdb"
	clientsync "github.com/iudanet/zennotes/internal/client/sync"
	"github.com/iudanet/zennotes/internal/config"
	"github.com/iudanet/zennotes/internal/logging"
	pkgconfig "github.com/iudanet/zennotes/pkg/config"
)

// BuildInfo is set via ldflags during build
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// runtime - зависимости одной команды
type runtime struct {
	cfg     *config.ClientConfig
	logger  *slog.Logger
	store   *boltdb.Storage
	api     *api.Client
	sync    clientsync.Service
	cli     *Cli
	closers []io.Closer
}

func (r *runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = append(errs, r.closers[i].Close())
	}
	return errors.Join(errs...)
}

// loadConfig читает файл конфигурации и применяет флаги поверх него
func loadConfig(cmd *cli.Command) (*config.ClientConfig, error) {
	cfg := config.NewDefaultClientConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cmd.IsSet("server") {
		cfg.Server.URL = cmd.String("server")
	}
	if cmd.IsSet("token") {
		cfg.Server.Token = cmd.String("token")
	}
	if cmd.IsSet("db") {
		cfg.Storage.DBPath = cmd.String("db")
	}
	if cmd.IsSet("log-level") {
		if err := cfg.Log.Level.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}
	if cmd.IsSet("log-file") {
		cfg.Log.File = cmd.String("log-file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func openRuntime(ctx context.Context, cmd *cli.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, logCloser := logging.New(cfg.Log, nil)
	rt := &runtime{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	// Файл БД открывается на время транзакции: CLI и демон работают параллельно
	store, err := boltdb.NewShared(ctx, cfg.Storage.DBPath)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	rt.store = store
	rt.closers = append(rt.closers, store)

	rt.api = api.NewClient(cfg.Server.URL,
		api.WithToken(cfg.Server.Token),
		api.WithTimeout(cfg.Server.Timeout),
	)
	rt.sync = clientsync.NewService(rt.api, store, store, logger,
		clientsync.WithConcurrency(cfg.Sync.PushConcurrency),
	)

	pokePath := cfg.Storage.Poke()
	poke := func() error { return scheduler.TouchPokeFile(pokePath) }

	// Каждая локальная мутация будит демон; ошибка не мешает самому изменению
	notify := data.WithChangeHook(func() {
		if err := poke(); err != nil {
			logger.Warn("Failed to notify sync daemon", "error", err)
		}
	})

	rt.cli = New(
		iocli.NewStdio(),
		data.NewService(store, store, logger, notify),
		rt.sync,
		store,
		scheduler.NewFileLocker(cfg.Storage.Lock()),
		poke,
		logger,
	)
	return rt, nil
}

// action открывает зависимости команды и закрывает их после выполнения
func action(fn func(ctx context.Context, rt *runtime, cmd *cli.Command) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		rt, err := openRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer func() {
			if err := rt.Close(); err != nil {
				rt.logger.Error("Failed to close resources", "error", err)
			}
		}()
		return fn(ctx, rt, cmd)
	}
}

func noteFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Note title"},
		&cli.StringFlag{Name: "content", Usage: "Note content (read from stdin when omitted)"},
	}
}

// NewCommand builds the client command tree
func NewCommand(info BuildInfo) *cli.Command {
	return &cli.Command{
		Name:    "zennotes",
		Usage:   "Offline-first notes with background synchronization",
		Version: info.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "zennotes.yaml",
				Sources: cli.EnvVars("ZENNOTES_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "server",
				Usage:   "Server URL",
				Sources: cli.EnvVars("ZENNOTES_SERVER_URL"),
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "API bearer token",
				Sources: cli.EnvVars("ZENNOTES_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "Path to local database",
				Sources: cli.EnvVars("ZENNOTES_DB"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("ZENNOTES_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "Write logs to a rotated file instead of stderr",
				Sources: cli.EnvVars("ZENNOTES_LOG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Create a new note",
				Flags: noteFlags(),
				Action: action(func(ctx context.Context, rt *runtime, cmd *cli.Command) error {
					return rt.cli.runAdd(ctx, AddOptions{
						Title:      cmd.String("title"),
						Content:    cmd.String("content"),
						ContentSet: cmd.IsSet("content"),
					})
				}),
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List notes, most recently touched first",
				Action: action(func(ctx context.Context, rt *runtime, cmd *cli.Command) error {
					return rt.cli.runList(ctx)
				}),
			},
			{
				Name:      "get",
				Usage:     "Show a note",
				ArgsUsage: "<id>",
				Action: action(func(ctx context.Context, rt *runtime, cmd *cli.Command) error {
					return rt.cli.runGet(ctx, cmd.Args().First())
				}),
			},
			{
				Name:      "edit",
				Usage:     "Change the title or content of a note",
				ArgsUsage: "<id>",
				Flags:     noteFlags(),
				Action: action(func(ctx context.Context, rt *runtime, cmd *cli.Command) error {
					return rt.cli.runEdit(ctx, cmd.Args().First(), EditOptions{
						Title:      cmd.String("title"),
						Content:    cmd.String("content"),
						TitleSet:   cmd.IsSet("title"),
						ContentSet: cmd.IsSet("content"),
					})
				}),
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a note",
				ArgsUsage: "<id>",
				Action: action(func(ctx context.Context, rt *runtime, cmd *cli.Command) error {
					return rt.cli.runDelete(ctx, cmd.Args().First())
				}),
			},
			{
				Name:  "sync",
				Usage: "Run one synchronization cycle",
				Action: action(func(ctx context.Context, rt *runtime, cmd *cli.Command) error {
					return rt.cli.runSync(ctx)
				}),
			},
			{
				Name:  "status",
				Usage: "Show pending changes and sync daemon state",
				Action: action(func(ctx context.Context, rt *runtime, cmd *cli.Command) error {
					return rt.cli.runStatus(ctx, rt.cfg.Server.URL)
				}),
			},
			{
				Name:  "daemon",
				Usage: "Run the background sync controller",
				Action: action(func(ctx context.Context, rt *runtime, cmd *cli.Command) error {
					return runDaemon(ctx, rt)
				}),
			},
			{
				Name:  "version",
				Usage: "Show version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					printVersion(os.Stdout, info)
					return nil
				},
			},
		},
	}
}

func printVersion(w io.Writer, info BuildInfo) {
	fmt.Fprintf(w, "ZenNotes Client\n")
	fmt.Fprintf(w, "Version:    %s\n", info.Version)
	fmt.Fprintf(w, "Build Date: %s\n", info.BuildDate)
	fmt.Fprintf(w, "Git Commit: %s\n", info.GitCommit)
}
