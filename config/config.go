package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Database DatabaseConfig `yaml:"database"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Log      LogConfig      `yaml:"log"`
}

// InputConfig locates the JSON batch to import.
type InputConfig struct {
	Path string `yaml:"path"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // "postgres" or "sqlite"
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	AutoMigrate            bool   `yaml:"auto_migrate"`
}

// IngestConfig controls the record pipeline.
type IngestConfig struct {
	Concurrency           int           `yaml:"concurrency"`
	CreateMissingClients  bool          `yaml:"create_missing_clients"`
	CallTimeoutSeconds    int           `yaml:"call_timeout_seconds"`
	CallTimeout           time.Duration `yaml:"-"` // Ignored by YAML parser
	ClientCacheTTLSeconds int           `yaml:"client_cache_ttl_seconds"`
	RateLimitPerSec       float64       `yaml:"rate_limit_per_sec"`
	RateLimitBurst        int           `yaml:"rate_limit_burst"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	SQLLevel string `yaml:"sql_level"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills every unset field with its default value.
func (cfg *Config) ApplyDefaults() {
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 5
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = cfg.Database.MaxOpenConns
	}

	if cfg.Ingest.Concurrency <= 0 {
		log.Printf("ingest.concurrency is not set or invalid; defaulting to 128")
		cfg.Ingest.Concurrency = 128
	}
	if cfg.Ingest.CallTimeoutSeconds <= 0 {
		cfg.Ingest.CallTimeoutSeconds = 30
	}
	cfg.Ingest.CallTimeout = time.Duration(cfg.Ingest.CallTimeoutSeconds) * time.Second
	if cfg.Ingest.RateLimitPerSec > 0 && cfg.Ingest.RateLimitBurst <= 0 {
		cfg.Ingest.RateLimitBurst = 1
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Log.SQLLevel == "" {
		cfg.Log.SQLLevel = "warn"
	}
}
