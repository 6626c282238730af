package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "yahoo", cfg.DataSource.Kind)
	assert.Equal(t, "0050.TW", cfg.Backtest.Benchmark)
	assert.Equal(t, 100000.0, cfg.Backtest.InitialCapital)
	assert.Equal(t, 5*time.Minute, cfg.DataSource.CacheTTL)
	assert.Equal(t, []string{"MTX"}, cfg.DataSource.LiveQuotes)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: "9000"
data_source:
  kind: postgres
  cache_ttl: 1m
  aliases:
    GOLD: GC=F
database:
  url: postgres://localhost/prices
monitor:
  cron: "0 0 9 * * 1-5"
  watchlist: [TSM, BTC]
backtest:
  initial_capital: 500000
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	t.Setenv("PORT", "9100")
	t.Setenv("MONITOR_WATCHLIST", "0050, ETH ,")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.DataSource.Kind)
	assert.Equal(t, time.Minute, cfg.DataSource.CacheTTL)
	assert.Equal(t, "GC=F", cfg.DataSource.Aliases["GOLD"])
	assert.Equal(t, []string{"0050", "ETH"}, cfg.Monitor.Watchlist)
	assert.Equal(t, 500000.0, cfg.Backtest.InitialCapital)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown source", func(c *Config) { c.DataSource.Kind = "bloomberg" }},
		{"postgres without url", func(c *Config) { c.DataSource.Kind = "postgres"; c.Database.URL = "" }},
		{"negative capital", func(c *Config) { c.Backtest.InitialCapital = -1 }},
		{"pool sizes", func(c *Config) { c.Database.MinConns = 50 }},
		{"port", func(c *Config) { c.Server.Port = "http" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
