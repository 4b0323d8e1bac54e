package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server {
  address   = "0.0.0.0"
  port      = 9090
  log_level = "debug"
}

table {
  decks   = 4
  chips   = 1000
  min_bet = 10
  max_bet = 500
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:9090", cfg.GetAddress())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 4, cfg.Table.Decks)
	assert.Equal(t, 1000, cfg.Table.Chips)
	assert.Equal(t, 10, cfg.Table.MinBet)
	assert.Equal(t, 500, cfg.Table.MaxBet)

	// Unset fields fall back to defaults.
	assert.Equal(t, 5*time.Minute, cfg.GetIdleTimeout())
}

func TestLoadConfigRejectsBadHCL(t *testing.T) {
	path := writeConfig(t, `server {`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "bad idle timeout", mutate: func(c *Config) { c.Server.IdleTimeout = "soon" }},
		{name: "zero decks", mutate: func(c *Config) { c.Table.Decks = 0 }},
		{name: "negative chips", mutate: func(c *Config) { c.Table.Chips = -5 }},
		{name: "zero min bet", mutate: func(c *Config) { c.Table.MinBet = 0 }},
		{name: "max below min", mutate: func(c *Config) { c.Table.MaxBet = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
