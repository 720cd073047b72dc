package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Log      LogConfig
	Refresh  RefreshConfig
	HTTP     HTTPConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	User string // username stamped on timeline entries and manual tasks
}

// DatabaseConfig holds the SQLite store location and pragma tuning
type DatabaseConfig struct {
	Path              string // empty = <user documents>/<app name>/data.db
	CacheSizeMB       int
	MmapSizeBytes     int64
	WALAutocheckpoint int
	JournalSizeLimit  int64
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// RefreshConfig holds the change-log poller configuration
type RefreshConfig struct {
	Enabled      bool
	PollInterval time.Duration
}

// HTTPConfig holds the local HTTP bridge configuration
type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with TAKIBI_ prefix (e.g., TAKIBI_DATABASE_PATH)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("TAKIBI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			User: v.GetString("app.user"),
		},
		Database: DatabaseConfig{
			Path:              v.GetString("database.path"),
			CacheSizeMB:       v.GetInt("database.cache_size_mb"),
			MmapSizeBytes:     v.GetInt64("database.mmap_size_bytes"),
			WALAutocheckpoint: v.GetInt("database.wal_autocheckpoint"),
			JournalSizeLimit:  v.GetInt64("database.journal_size_limit"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Refresh: RefreshConfig{
			Enabled:      v.GetBool("refresh.enabled"),
			PollInterval: v.GetDuration("refresh.poll_interval"),
		},
		HTTP: HTTPConfig{
			Port:         v.GetString("http.port"),
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
		},
	}

	applyDefaults(cfg, v)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config, v *viper.Viper) {
	if cfg.App.Name == "" {
		cfg.App.Name = "TakibiEsasi"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.User == "" {
		cfg.App.User = "avukat"
	}
	if cfg.Database.CacheSizeMB <= 0 {
		cfg.Database.CacheSizeMB = 64
	}
	if cfg.Database.MmapSizeBytes <= 0 {
		cfg.Database.MmapSizeBytes = 256 << 20
	}
	if cfg.Database.WALAutocheckpoint <= 0 {
		cfg.Database.WALAutocheckpoint = 1000
	}
	if cfg.Database.JournalSizeLimit <= 0 {
		cfg.Database.JournalSizeLimit = 64 << 20
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if !v.IsSet("refresh.enabled") {
		cfg.Refresh.Enabled = true
	}
	if cfg.Refresh.PollInterval <= 0 {
		cfg.Refresh.PollInterval = 30 * time.Second
	}
	if cfg.HTTP.Port == "" {
		cfg.HTTP.Port = "8873"
	}
	if cfg.HTTP.ReadTimeout <= 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout <= 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	if c.Refresh.PollInterval < time.Second {
		return fmt.Errorf("refresh.poll_interval must be at least 1s, got %s", c.Refresh.PollInterval)
	}
	return nil
}

// DatabasePath resolves the store location, defaulting to
// <user documents>/<app name>/data.db.
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve user home: %w", err)
	}
	dir := filepath.Join(home, "Documents", c.App.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create data directory: %w", err)
	}
	return filepath.Join(dir, "data.db"), nil
}

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
