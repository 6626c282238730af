package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	DataSource DataSourceConfig `yaml:"data_source"`
	Logging    LoggingConfig    `yaml:"logging"`
	Recorder   RecorderConfig   `yaml:"recorder"`
	Holdings   HoldingsConfig   `yaml:"holdings"`
	Settings   SettingsConfig   `yaml:"settings"`
	Monitor    MonitorConfig    `yaml:"monitor"`
	Backtest   BacktestConfig   `yaml:"backtest"`
}

type ServerConfig struct {
	Port         string        `yaml:"port"`
	Mode         string        `yaml:"mode"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	MaxConns        int32         `yaml:"max_conns"`
	MinConns        int32         `yaml:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
}

type DataSourceConfig struct {
	Kind     string        `yaml:"kind"` // yahoo, postgres
	BaseURL  string        `yaml:"base_url"`
	QuoteURL string        `yaml:"quote_url"`
	Proxy    string        `yaml:"proxy"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
	// Aliases map user facing symbols to provider tickers, on top of the built-in map.
	Aliases map[string]string `yaml:"aliases"`
	// LiveQuotes lists symbols whose last bar is patched with a scraped realtime quote.
	LiveQuotes []string `yaml:"live_quotes"`
}

type LoggingConfig struct {
	Level         string `yaml:"level"`
	Format        string `yaml:"format"`
	FileEnabled   bool   `yaml:"file_enabled"`
	FilePath      string `yaml:"file_path"`
	RotationSize  int    `yaml:"rotation_size"`
	RetentionDays int    `yaml:"retention_days"`
}

type RecorderConfig struct {
	SQLitePath string `yaml:"sqlite_path"` // empty disables run history
}

type HoldingsConfig struct {
	File string `yaml:"file"`
}

type SettingsConfig struct {
	File string `yaml:"file"`
}

type MonitorConfig struct {
	Cron      string   `yaml:"cron"`
	Watchlist []string `yaml:"watchlist"`
}

type BacktestConfig struct {
	InitialCapital float64 `yaml:"initial_capital"`
	Benchmark      string  `yaml:"benchmark"`
	RiskFreeRate   float64 `yaml:"risk_free_rate"`
	StrategyDays   int     `yaml:"strategy_days"`
	HedgeSymbol    string  `yaml:"hedge_symbol"`
}

// Load reads the .env file if present, then the YAML file at path (a missing
// file is not an error), then applies environment variable overrides and
// defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.Mode, "GIN_MODE")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.DataSource.Kind, "DATA_SOURCE")
	setString(&c.DataSource.BaseURL, "YAHOO_BASE_URL")
	setString(&c.DataSource.QuoteURL, "QUOTE_BASE_URL")
	setString(&c.DataSource.Proxy, "HTTPS_PROXY")
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Logging.Format, "LOG_FORMAT")
	setString(&c.Logging.FilePath, "LOG_PATH")
	setString(&c.Recorder.SQLitePath, "SQLITE_PATH")
	setString(&c.Holdings.File, "HOLDINGS_FILE")
	setString(&c.Settings.File, "SETTINGS_FILE")
	setString(&c.Monitor.Cron, "MONITOR_CRON")
	setString(&c.Backtest.Benchmark, "BENCHMARK_SYMBOL")

	if v := os.Getenv("MONITOR_WATCHLIST"); v != "" {
		c.Monitor.Watchlist = splitList(v)
	}
	if v := os.Getenv("INITIAL_CAPITAL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Backtest.InitialCapital = f
		}
	}
	if v := os.Getenv("RISK_FREE_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Backtest.RiskFreeRate = f
		}
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.DataSource.CacheTTL = d
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8000"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = 10
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = 2
	}
	if c.Database.MaxConnLifetime == 0 {
		c.Database.MaxConnLifetime = time.Hour
	}
	if c.Database.MaxConnIdleTime == 0 {
		c.Database.MaxConnIdleTime = 30 * time.Minute
	}
	if c.DataSource.Kind == "" {
		c.DataSource.Kind = "yahoo"
	}
	if c.DataSource.BaseURL == "" {
		c.DataSource.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.DataSource.QuoteURL == "" {
		c.DataSource.QuoteURL = "https://tw.stock.yahoo.com"
	}
	if c.DataSource.Timeout == 0 {
		c.DataSource.Timeout = 15 * time.Second
	}
	if c.DataSource.CacheTTL == 0 {
		c.DataSource.CacheTTL = 5 * time.Minute
	}
	if len(c.DataSource.LiveQuotes) == 0 {
		c.DataSource.LiveQuotes = []string{"MTX"}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs"
	}
	if c.Logging.RotationSize == 0 {
		c.Logging.RotationSize = 100
	}
	if c.Logging.RetentionDays == 0 {
		c.Logging.RetentionDays = 30
	}
	if c.Holdings.File == "" {
		c.Holdings.File = "data/portfolio.json"
	}
	if c.Settings.File == "" {
		c.Settings.File = "data/sim_settings.yaml"
	}
	if c.Monitor.Cron == "" {
		c.Monitor.Cron = "0 */15 * * * 1-5"
	}
	if len(c.Monitor.Watchlist) == 0 {
		c.Monitor.Watchlist = []string{"0050", "00631L", "TAIEX"}
	}
	if c.Backtest.InitialCapital == 0 {
		c.Backtest.InitialCapital = 100000
	}
	if c.Backtest.Benchmark == "" {
		c.Backtest.Benchmark = "0050.TW"
	}
	if c.Backtest.RiskFreeRate == 0 {
		c.Backtest.RiskFreeRate = 0.015
	}
	if c.Backtest.StrategyDays == 0 {
		c.Backtest.StrategyDays = 7
	}
	if c.Backtest.HedgeSymbol == "" {
		c.Backtest.HedgeSymbol = "MTX"
	}
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	switch c.DataSource.Kind {
	case "yahoo":
	case "postgres":
		if c.Database.URL == "" {
			return fmt.Errorf("database.url is required for the postgres data source")
		}
	default:
		return fmt.Errorf("data_source.kind %q is not one of yahoo, postgres", c.DataSource.Kind)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns %d exceeds max_conns %d", c.Database.MinConns, c.Database.MaxConns)
	}
	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("backtest.initial_capital must be positive")
	}
	if c.Backtest.RiskFreeRate < 0 {
		return fmt.Errorf("backtest.risk_free_rate must not be negative")
	}
	if c.Backtest.StrategyDays <= 0 {
		return fmt.Errorf("backtest.strategy_days must be positive")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("server.port %q is not a number", c.Server.Port)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
