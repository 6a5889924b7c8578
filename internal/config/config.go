// Package config holds the client and server configuration.
package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Format string     `yaml:"format"`
	File   string     `yaml:"file"` // пусто - stderr
	Level  slog.Level `yaml:"level"`
}

// Validate validates the logging configuration.
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Format, validation.Required, validation.In(LogFormatText, LogFormatJSON)),
	)
}

// ClientConfig represents the client configuration.
type ClientConfig struct {
	Server  RemoteConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Sync    SyncConfig    `yaml:"sync"`
}

// Validate validates the configuration.
func (c *ClientConfig) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Sync.Validate(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	return nil
}

// RemoteConfig describes the remote note service.
type RemoteConfig struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// Validate validates the remote configuration.
func (c *RemoteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URL, validation.Required, is.URL),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Second)),
	)
}

// StorageConfig holds local store paths.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
	// LockPath и PokePath по умолчанию лежат рядом с базой
	LockPath string `yaml:"lock_path"`
	PokePath string `yaml:"poke_path"`
}

// Validate validates the storage configuration.
func (c *StorageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DBPath, validation.Required),
	)
}

// Lock returns the leader lock file path.
func (c *StorageConfig) Lock() string {
	if c.LockPath != "" {
		return c.LockPath
	}
	return c.DBPath + ".lock"
}

// Poke returns the path of the file touched after local mutations.
func (c *StorageConfig) Poke() string {
	if c.PokePath != "" {
		return c.PokePath
	}
	return filepath.Join(filepath.Dir(c.DBPath), "."+filepath.Base(c.DBPath)+".poke")
}

// SyncConfig задаёт темп синхронизации.
type SyncConfig struct {
	VisibleInterval time.Duration `yaml:"visible_interval"`
	HiddenInterval  time.Duration `yaml:"hidden_interval"`
	BackoffMin      time.Duration `yaml:"backoff_min"`
	BackoffMax      time.Duration `yaml:"backoff_max"`
	PokeDebounce    time.Duration `yaml:"poke_debounce"`
	ProbeInterval   time.Duration `yaml:"probe_interval"`
	PushConcurrency int           `yaml:"push_concurrency"`
}

// Validate validates the sync configuration.
func (c *SyncConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.VisibleInterval, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.HiddenInterval, validation.Required, validation.Min(c.VisibleInterval)),
		validation.Field(&c.BackoffMin, validation.Required),
		validation.Field(&c.BackoffMax, validation.Required, validation.Min(c.BackoffMin)),
		validation.Field(&c.PokeDebounce, validation.Min(time.Duration(0))),
		validation.Field(&c.ProbeInterval, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.PushConcurrency, validation.Required, validation.Min(1), validation.Max(64)),
	)
}

// NewDefaultClientConfig returns a new ClientConfig with sensible default values.
func NewDefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Server: RemoteConfig{
			URL:     "http://localhost:8080",
			Timeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			DBPath: "zennotes.db",
		},
		Log: LogConfig{
			Level:  slog.LevelWarn,
			Format: LogFormatText,
		},
		Sync: SyncConfig{
			VisibleInterval: 15 * time.Second,
			HiddenInterval:  2 * time.Minute,
			BackoffMin:      5 * time.Second,
			BackoffMax:      5 * time.Minute,
			PokeDebounce:    1500 * time.Millisecond,
			ProbeInterval:   30 * time.Second,
			PushConcurrency: 4,
		},
	}
}

// ServerConfig represents the server configuration.
type ServerConfig struct {
	App       ApplicationConfig `yaml:"app"`
	SQLite    SQLiteConfig      `yaml:"sqlite"`
	Auth      AuthConfig        `yaml:"auth"`
	RateLimit RateLimitConfig   `yaml:"rate_limit"`
}

// Validate validates the configuration.
func (c *ServerConfig) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.RateLimit.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	Log  LogConfig  `yaml:"log"`
	HTTP HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds the static bearer token. Пустой токен отключает проверку.
type AuthConfig struct {
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Token, validation.Length(16, 0)),
	)
}

// Enabled returns true when authentication is active.
func (c *AuthConfig) Enabled() bool {
	return c.Token != ""
}

// RateLimitConfig limits requests per client IP.
type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// Validate validates the rate limit configuration.
func (c *RateLimitConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Requests, validation.Required, validation.Min(1)),
		validation.Field(&c.Window, validation.Required, validation.Min(time.Second)),
	)
}

// NewDefaultServerConfig returns a new ServerConfig with sensible default values.
func NewDefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		App: ApplicationConfig{
			Log: LogConfig{
				Level:  slog.LevelInfo,
				Format: LogFormatJSON,
			},
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		SQLite: SQLiteConfig{
			Path: "zennotes-server.db",
		},
		RateLimit: RateLimitConfig{
			Requests: 600,
			Window:   time.Minute,
		},
	}
}
