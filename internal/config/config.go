package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/latoulicious/artgallery/pkg/fixture"
)

// DefaultDir is where Load looks for gallery.yaml and gallery.toml
const DefaultDir = "config"

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Addr            string        `yaml:"addr" toml:"addr" env:"SERVER_ADDR"`
	CORSOrigins     []string      `yaml:"cors_origins" toml:"cors_origins" env:"CORS_ORIGINS"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" toml:"rate_limit_rps" env:"RATE_LIMIT_RPS"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" toml:"rate_limit_burst" env:"RATE_LIMIT_BURST"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig contains database configuration. The URL is read from
// DATABASE_URL only; when it is empty the fixture data source is used.
type DatabaseConfig struct {
	URL             string        `yaml:"-" toml:"-" env:"DATABASE_URL"`
	QueryTimeout    time.Duration `yaml:"query_timeout" toml:"query_timeout" env:"DATABASE_QUERY_TIMEOUT"`
	MaxOpenConns    int           `yaml:"max_open_conns" toml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" toml:"max_idle_conns" env:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" toml:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME"`
}

// FixtureConfig contains configuration of the static fixture data source
type FixtureConfig struct {
	Path         string               `yaml:"path" toml:"path" env:"FIXTURE_PATH"`
	ArtistName   string               `yaml:"artist_name" toml:"artist_name" env:"FIXTURE_ARTIST_NAME"`
	CreationYear int                  `yaml:"creation_year" toml:"creation_year" env:"FIXTURE_CREATION_YEAR"`
	Assets       fixture.AssetRewrite `yaml:"assets" toml:"assets"`
}

// LoggerConfig contains logging configuration
type LoggerConfig struct {
	Level        string `yaml:"level" toml:"level" env:"LOG_LEVEL"`
	Format       string `yaml:"format" toml:"format" env:"LOG_FORMAT"`
	SaveToDB     bool   `yaml:"save_to_db" toml:"save_to_db" env:"LOG_SAVE_DB"`
	PersistLevel string `yaml:"persist_level" toml:"persist_level" env:"LOG_PERSIST_LEVEL"`
}

// JobsConfig contains background job configuration
type JobsConfig struct {
	Enabled          bool          `yaml:"enabled" toml:"enabled" env:"JOBS_ENABLED"`
	StatsSchedule    string        `yaml:"stats_schedule" toml:"stats_schedule" env:"JOBS_STATS_SCHEDULE"`
	LogPruneSchedule string        `yaml:"log_prune_schedule" toml:"log_prune_schedule" env:"JOBS_LOG_PRUNE_SCHEDULE"`
	LogRetention     time.Duration `yaml:"log_retention" toml:"log_retention" env:"JOBS_LOG_RETENTION"`
}

// Config represents the complete configuration structure for YAML/TOML files
type Config struct {
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Fixture  FixtureConfig  `yaml:"fixture" toml:"fixture"`
	Logger   LoggerConfig   `yaml:"logger" toml:"logger"`
	Jobs     JobsConfig     `yaml:"jobs" toml:"jobs"`
}

// Load reads configuration from DefaultDir
func Load() (*Config, error) {
	return LoadFrom(DefaultDir)
}

// LoadFrom builds the configuration in order of precedence:
//  1. environment variables (.env file included)
//  2. gallery.yaml, or gallery.toml when there is no YAML file, in dir
//  3. default values
func LoadFrom(dir string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAMLConfig(dir, cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err := loadTOMLConfig(dir, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := loadEnvConfig(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			CORSOrigins:     []string{"*"},
			RateLimitRPS:    20,
			RateLimitBurst:  40,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			QueryTimeout:    5 * time.Second,
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Fixture: FixtureConfig{
			ArtistName:   fixture.DefaultArtistName,
			CreationYear: fixture.DefaultCreationYear,
			Assets:       fixture.DefaultAssetRewrite(),
		},
		Logger: LoggerConfig{
			Level:        "info",
			Format:       "json",
			PersistLevel: "WARN",
		},
		Jobs: JobsConfig{
			Enabled:          true,
			StatsSchedule:    "@every 1h",
			LogPruneSchedule: "@daily",
			LogRetention:     30 * 24 * time.Hour,
		},
	}
}

// loadYAMLConfig overlays dir/gallery.yaml onto cfg
func loadYAMLConfig(dir string, cfg *Config) error {
	yamlPath := filepath.Join(dir, "gallery.yaml")
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML config %s: %w", yamlPath, err)
	}
	return nil
}

// loadTOMLConfig overlays dir/gallery.toml onto cfg
func loadTOMLConfig(dir string, cfg *Config) error {
	tomlPath := filepath.Join(dir, "gallery.toml")
	if _, err := os.Stat(tomlPath); err != nil {
		return err
	}

	if _, err := toml.DecodeFile(tomlPath, cfg); err != nil {
		return fmt.Errorf("failed to parse TOML config %s: %w", tomlPath, err)
	}
	return nil
}

// loadEnvConfig overlays environment variables onto cfg. Variables that are
// not set leave the file or default values untouched.
func loadEnvConfig(cfg *Config) error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse environment variables: %w", err)
	}
	return nil
}

// HasDatabase reports whether a database URL is configured
func (c *Config) HasDatabase() bool {
	return strings.TrimSpace(c.Database.URL) != ""
}

// FixtureOptions returns the normalizer options of the fixture section
func (c *Config) FixtureOptions() fixture.Options {
	return fixture.Options{
		Assets:       c.Fixture.Assets,
		ArtistName:   c.Fixture.ArtistName,
		CreationYear: c.Fixture.CreationYear,
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr cannot be empty")
	}
	if c.Server.RateLimitRPS < 0 {
		return fmt.Errorf("server rate_limit_rps must be non-negative, got %v", c.Server.RateLimitRPS)
	}
	if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("server rate_limit_burst must be positive, got %d", c.Server.RateLimitBurst)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server shutdown_timeout must be positive, got %v", c.Server.ShutdownTimeout)
	}

	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("database query_timeout must be positive, got %v", c.Database.QueryTimeout)
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database connection limits must be non-negative")
	}

	if c.Fixture.CreationYear <= 0 {
		return fmt.Errorf("fixture creation_year must be positive, got %d", c.Fixture.CreationYear)
	}

	if !isValidLogLevel(c.Logger.Level) {
		return fmt.Errorf("invalid logger level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}
	if !isValidLogFormat(c.Logger.Format) {
		return fmt.Errorf("invalid logger format: %s (must be json or text)", c.Logger.Format)
	}
	if !isValidLogLevel(c.Logger.PersistLevel) {
		return fmt.Errorf("invalid logger persist_level: %s", c.Logger.PersistLevel)
	}

	if c.Jobs.Enabled {
		if _, err := cron.ParseStandard(c.Jobs.StatsSchedule); err != nil {
			return fmt.Errorf("invalid jobs stats_schedule %q: %w", c.Jobs.StatsSchedule, err)
		}
		if _, err := cron.ParseStandard(c.Jobs.LogPruneSchedule); err != nil {
			return fmt.Errorf("invalid jobs log_prune_schedule %q: %w", c.Jobs.LogPruneSchedule, err)
		}
		if c.Jobs.LogRetention <= 0 {
			return fmt.Errorf("jobs log_retention must be positive, got %v", c.Jobs.LogRetention)
		}
	}

	return nil
}

func isValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

func isValidLogFormat(format string) bool {
	switch strings.ToLower(format) {
	case "json", "text":
		return true
	}
	return false
}
