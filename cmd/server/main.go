package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/iudanet/zennotes/internal/config"
	"github.com/iudanet/zennotes/internal/server"
	pkgconfig "github.com/iudanet/zennotes/pkg/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "zennotes-server",
		Usage:   "Note server-of-record with optimistic locking",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "zennotes-server.yaml",
				Sources: cli.EnvVars("ZENNOTES_SERVER_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "port",
				Usage:   "HTTP port",
				Sources: cli.EnvVars("ZENNOTES_SERVER_PORT"),
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "Path to SQLite database",
				Sources: cli.EnvVars("ZENNOTES_SERVER_DB"),
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "Static bearer token required by the notes API",
				Sources: cli.EnvVars("ZENNOTES_SERVER_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("ZENNOTES_SERVER_LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return server.Run(ctx, server.WithConfig(cfg), server.WithVersion(Version))
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Show version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					printVersion(os.Stdout)
					return nil
				},
			},
		},
	}
}

// loadConfig читает файл конфигурации и применяет флаги поверх него
func loadConfig(cmd *cli.Command) (*config.ServerConfig, error) {
	cfg := config.NewDefaultServerConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cmd.IsSet("port") {
		port, err := strconv.Atoi(cmd.String("port"))
		if err != nil {
			return nil, fmt.Errorf("invalid port: %w", err)
		}
		cfg.App.HTTP.Port = port
	}
	if cmd.IsSet("db") {
		cfg.SQLite.Path = cmd.String("db")
	}
	if cmd.IsSet("token") {
		cfg.Auth.Token = cmd.String("token")
	}
	if cmd.IsSet("log-level") {
		if err := cfg.App.Log.Level.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "ZenNotes Server\n")
	fmt.Fprintf(w, "Version:    %s\n", Version)
	fmt.Fprintf(w, "Build Date: %s\n", BuildDate)
	fmt.Fprintf(w, "Git Commit: %s\n", GitCommit)
}
