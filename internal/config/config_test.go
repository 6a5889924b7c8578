package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults_AreValid(t *testing.T) {
	require.NoError(t, NewDefaultClientConfig().Validate())
	require.NoError(t, NewDefaultServerConfig().Validate())
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		mutate  func(c *ClientConfig)
		name    string
		wantErr string
	}{
		{name: "bad url", mutate: func(c *ClientConfig) { c.Server.URL = "not a url" }, wantErr: "server"},
		{name: "empty db path", mutate: func(c *ClientConfig) { c.Storage.DBPath = "" }, wantErr: "storage"},
		{name: "unknown log format", mutate: func(c *ClientConfig) { c.Log.Format = "xml" }, wantErr: "log"},
		{name: "hidden faster than visible", mutate: func(c *ClientConfig) { c.Sync.HiddenInterval = time.Second }, wantErr: "sync"},
		{name: "backoff max below min", mutate: func(c *ClientConfig) { c.Sync.BackoffMax = time.Second }, wantErr: "sync"},
		{name: "zero concurrency", mutate: func(c *ClientConfig) { c.Sync.PushConcurrency = 0 }, wantErr: "sync"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultClientConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStorageConfig_DerivedPaths(t *testing.T) {
	cfg := StorageConfig{DBPath: "/var/lib/zennotes/notes.db"}
	assert.Equal(t, "/var/lib/zennotes/notes.db.lock", cfg.Lock())
	assert.Equal(t, "/var/lib/zennotes/.notes.db.poke", cfg.Poke())

	cfg.LockPath = "/run/zennotes.lock"
	cfg.PokePath = "/run/zennotes.poke"
	assert.Equal(t, "/run/zennotes.lock", cfg.Lock())
	assert.Equal(t, "/run/zennotes.poke", cfg.Poke())
}

func TestServerConfig_Validate(t *testing.T) {
	cfg := NewDefaultServerConfig()
	cfg.App.HTTP.Port = 70000
	require.Error(t, cfg.Validate())

	cfg = NewDefaultServerConfig()
	cfg.Auth.Token = "short"
	require.Error(t, cfg.Validate())

	cfg.Auth.Token = "0123456789abcdef"
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Auth.Enabled())
	assert.Equal(t, ":8080", cfg.App.HTTP.Address())
}
