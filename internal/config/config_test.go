package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, info, err := LoadConfigWithInfo(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.False(t, info.PortSpecified)
	assert.Equal(t, 20261, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "佛山", cfg.Business.DefaultCity)
	assert.Equal(t, int64(20<<20), cfg.MaxUploadBytes())
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
[server]
port = 8088
max_upload_mb = 5

[business]
default_city = "广州"
`)

	cfg, info, err := LoadConfigWithInfo(path)
	require.NoError(t, err)

	assert.True(t, info.PortSpecified)
	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes())
	assert.Equal(t, "广州", cfg.Business.DefaultCity)
	// 未出现的段保持默认
	assert.Equal(t, "data", cfg.Data.DataDir)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_PortNotSpecified(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[server]\ndev_mode = true\n")

	cfg, info, err := LoadConfigWithInfo(path)
	require.NoError(t, err)
	assert.False(t, info.PortSpecified)
	assert.True(t, cfg.Server.DevMode)
}

func TestLoadConfig_InvalidToml(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[server\nport = ")

	_, _, err := LoadConfigWithInfo(path)
	require.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/shebao")
	t.Setenv("SHEBAO_STORE_DRIVER", " Postgres ")
	t.Setenv("SHEBAO_DEFAULT_CITY", "深圳")
	t.Setenv("SHEBAO_LOG_LEVEL", "debug")
	t.Setenv("SHEBAO_DATA_DIR", "/var/lib/shebao")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "postgres://u:p@localhost:5432/shebao", cfg.Store.DSN)
	assert.Equal(t, "深圳", cfg.Business.DefaultCity)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/var/lib/shebao", ResolveDataDir(cfg))
	assert.NoError(t, cfg.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "SHEBAO_DEFAULT_CITY=东莞\n")
	t.Setenv("SHEBAO_DEFAULT_CITY", "")
	require.NoError(t, os.Unsetenv("SHEBAO_DEFAULT_CITY"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "东莞", os.Getenv("SHEBAO_DEFAULT_CITY"))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Store.Driver = DriverPostgres
	assert.Error(t, cfg.Validate())

	cfg.Store.Driver = "mongo"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Server.Port = 9000
	cfg.Store.Driver = DriverMemory
	require.NoError(t, SaveConfig(cfg, path))

	loaded, info, err := LoadConfigWithInfo(path)
	require.NoError(t, err)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 9000, loaded.Server.Port)
	assert.Equal(t, DriverMemory, loaded.Store.Driver)
}

func TestEnsureDataDir(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Data.DataDir = filepath.Join(t.TempDir(), "data")

	dir, err := EnsureDataDir(cfg)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(dir, "exports"))
}
