package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.HasDatabase())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "@every 1h", cfg.Jobs.StatsSchedule)
	assert.Equal(t, "@daily", cfg.Jobs.LogPruneSchedule)
	assert.Equal(t, 30*24*time.Hour, cfg.Jobs.LogRetention)
	assert.Equal(t, "/artwork/", cfg.Fixture.Assets.PublicPrefix)
}

func TestLoadFrom_YAMLOverlaysDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	dir := t.TempDir()
	writeFile(t, dir, "gallery.yaml", `
database:
  query_timeout: 2s
logger:
  level: debug
fixture:
  artist_name: Someone Else
  assets:
    public_prefix: /img/
`)

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "Someone Else", cfg.Fixture.ArtistName)
	assert.Equal(t, "/img/", cfg.Fixture.Assets.PublicPrefix)
	assert.Equal(t, "images/artwork/", cfg.Fixture.Assets.SourcePrefix)
	assert.Equal(t, ":8080", cfg.Server.Addr)

	opts := cfg.FixtureOptions()
	assert.Equal(t, "Someone Else", opts.ArtistName)
	assert.Equal(t, "/img/", opts.Assets.PublicPrefix)
}

func TestLoadFrom_TOMLWhenNoYAML(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	dir := t.TempDir()
	writeFile(t, dir, "gallery.toml", `
[server]
addr = ":9090"

[jobs]
stats_schedule = "*/5 * * * *"
`)

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "*/5 * * * *", cfg.Jobs.StatsSchedule)
}

func TestLoadFrom_EnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gallery.yaml", `
database:
  url: "file::memory:"
logger:
  format: text
`)
	t.Setenv("DATABASE_URL", "postgres://gallery@localhost:5432/gallery")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.True(t, cfg.HasDatabase())
	assert.Equal(t, "postgres://gallery@localhost:5432/gallery", cfg.Database.URL)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoadFrom_DatabaseURLOnlyFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	yamlDir := t.TempDir()
	writeFile(t, yamlDir, "gallery.yaml", `
database:
  url: "postgres://gallery@localhost:5432/gallery"
  query_timeout: 3s
`)
	cfg, err := LoadFrom(yamlDir)
	require.NoError(t, err)
	assert.False(t, cfg.HasDatabase())
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)

	tomlDir := t.TempDir()
	writeFile(t, tomlDir, "gallery.toml", `
[database]
url = "postgres://gallery@localhost:5432/gallery"
`)
	cfg, err = LoadFrom(tomlDir)
	require.NoError(t, err)
	assert.False(t, cfg.HasDatabase())
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gallery.yaml", "server: [unterminated")

	_, err := LoadFrom(dir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad level", func(c *Config) { c.Logger.Level = "loud" }},
		{"bad format", func(c *Config) { c.Logger.Format = "xml" }},
		{"bad persist level", func(c *Config) { c.Logger.PersistLevel = "fatal" }},
		{"zero query timeout", func(c *Config) { c.Database.QueryTimeout = 0 }},
		{"bad schedule", func(c *Config) { c.Jobs.StatsSchedule = "every now and then" }},
		{"bad prune schedule", func(c *Config) { c.Jobs.LogPruneSchedule = "61 * * * *" }},
		{"zero log retention", func(c *Config) { c.Jobs.LogRetention = 0 }},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"burst without rate", func(c *Config) { c.Server.RateLimitBurst = 0 }},
		{"zero creation year", func(c *Config) { c.Fixture.CreationYear = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Defaults().Validate())

	disabled := Defaults()
	disabled.Jobs.Enabled = false
	disabled.Jobs.StatsSchedule = "ignored"
	assert.NoError(t, disabled.Validate())
}
