package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "X-Termmeta-Actor", cfg.Server.ActorHeader)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "termmeta", cfg.Storage.Table)
	assert.Equal(t, "termmeta:", cfg.Redis.Prefix)
	assert.Equal(t, "fields.yaml", cfg.Fields.Path)
	assert.Empty(t, cfg.Log.Level)
	assert.Nil(t, cfg.Theme.Manifest())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	content := `
log:
  level: debug
server:
  addr: 127.0.0.1:9000
storage:
  driver: SQLite
  dsn: file:meta.db
access:
  roles:
    author: [manage_categories]
theme:
  name: acme
  prefix: /assets
  tokens:
    accent: "#ff0000"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "termmeta.yaml"), []byte(content), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, []string{"manage_categories"}, cfg.Access.Roles["author"])

	manifest := cfg.Theme.Manifest()
	require.NotNil(t, manifest)
	assert.Equal(t, "acme", manifest.Name)
	assert.Equal(t, "/assets", manifest.Assets.Prefix)
	assert.Equal(t, "#ff0000", manifest.Tokens["accent"])
}

func TestEnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TERMMETA_SERVER_ADDR", ":7000")
	t.Setenv("TERMMETA_STORAGE_DRIVER", "redis")
	t.Setenv("TERMMETA_REDIS_ADDR", "cache:6379")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
}

func TestValidateRejectsBadStorage(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Addr: ":8080"}, Storage: StorageConfig{Driver: "mongo"}}
	assert.Error(t, cfg.Validate())

	cfg.Storage = StorageConfig{Driver: "postgres"}
	assert.ErrorContains(t, cfg.Validate(), "storage.dsn")

	cfg.Storage = StorageConfig{Driver: "postgres", DSN: "postgres://localhost/wp"}
	assert.NoError(t, cfg.Validate())
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
