package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"stonks/internal/catalog"
	"stonks/internal/tradier"
	"stonks/internal/watchlist"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for stonks.
type Config struct {
	Title     string   `yaml:"title"`
	Catalog   Catalog  `yaml:"catalog"`
	Tradier   Tradier  `yaml:"tradier"`
	Calendar  Calendar `yaml:"calendar"`
	Watchlist []string `yaml:"watchlist"`
	Refresh   Refresh  `yaml:"refresh"`
	Logging   Logging  `yaml:"logging"`
}

// Catalog locates the local symbol directory and its FTP source.
type Catalog struct {
	Dir         string        `yaml:"dir"`
	FTPAddr     string        `yaml:"ftp_addr"`
	FTPUser     string        `yaml:"ftp_user"`
	FTPPassword string        `yaml:"ftp_password"`
	RemoteDir   string        `yaml:"remote_dir"`
	Retries     int           `yaml:"retries"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
}

// Tradier holds the market data endpoint settings. APIKey is a fallback for
// TRADIER_API_KEY.
type Tradier struct {
	BaseURL         string        `yaml:"base_url"`
	APIKey          string        `yaml:"api_key"`
	IntervalMinutes int           `yaml:"interval_minutes"`
	RateLimitPerMin int           `yaml:"rate_limit_per_min"`
	Timeout         time.Duration `yaml:"timeout"`
}

// Calendar selects the market-holiday sources.
type Calendar struct {
	MIC      string   `yaml:"mic"`
	Holidays []string `yaml:"holidays"`
}

// Refresh controls periodic background fetches.
type Refresh struct {
	QuotesCron string `yaml:"quotes_cron"`
}

// Logging configures the application logger. An empty File means a dated
// file under the OS temp directory.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Title: "StonksCLI",
		Catalog: Catalog{
			Dir:         "SymbolDirectory",
			FTPAddr:     catalog.DefaultFTPAddr,
			FTPUser:     catalog.DefaultFTPUser,
			FTPPassword: catalog.DefaultFTPPass,
			RemoteDir:   catalog.DefaultRemoteDir,
			Retries:     3,
			RetryDelay:  time.Second,
		},
		Tradier: Tradier{
			BaseURL:         tradier.DefaultBaseURL,
			IntervalMinutes: 5,
			RateLimitPerMin: 120,
		},
		Calendar: Calendar{
			MIC:      "xnys",
			Holidays: []string{"2020-07-03"},
		},
		Watchlist: append([]string(nil), watchlist.Default...),
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML file at path over the defaults and then applies
// environment variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an
// error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Catalog.Dir == "" {
		return errors.New("catalog.dir must not be empty")
	}
	if c.Catalog.FTPAddr == "" {
		return errors.New("catalog.ftp_addr must not be empty")
	}
	if c.Tradier.BaseURL == "" {
		return errors.New("tradier.base_url must not be empty")
	}
	if c.Tradier.IntervalMinutes <= 0 {
		return fmt.Errorf("tradier.interval_minutes must be positive, got %d", c.Tradier.IntervalMinutes)
	}
	return nil
}

// APIKey returns the Tradier bearer token, preferring TRADIER_API_KEY. It
// reads the environment on every call.
func (c *Config) APIKey() string {
	if v := os.Getenv(tradier.EnvAPIKey); v != "" {
		return v
	}
	return c.Tradier.APIKey
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRADIER_BASE_URL"); v != "" {
		cfg.Tradier.BaseURL = v
	}

	if v := os.Getenv("STONKS_CATALOG_DIR"); v != "" {
		cfg.Catalog.Dir = v
	}

	if v := os.Getenv("STONKS_FTP_ADDR"); v != "" {
		cfg.Catalog.FTPAddr = v
	}

	if v := os.Getenv("STONKS_QUOTES_CRON"); v != "" {
		cfg.Refresh.QuotesCron = v
	}

	if v := os.Getenv("STONKS_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
