package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	wd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.Chdir(tmp))
	return tmp
}

func TestLoad_Defaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "http://localhost:3000", cfg.APIURL)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, "localhost:3000", cfg.Server.Addr)
	assert.Equal(t, "json", cfg.Storage.Driver)
	assert.Equal(t, "db.json", cfg.Storage.Path)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	inTempDir(t)
	t.Setenv("TOYBOARD_API_URL", "http://toys.test:8080")
	t.Setenv("TOYBOARD_TIMEOUT", "5s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://toys.test:8080", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_YAMLFile(t *testing.T) {
	tmp := inTempDir(t)
	path := filepath.Join(tmp, "toyboard.yaml")
	yaml := "env: prod\napi_url: http://yaml.test\ntheme: neon\nstorage:\n  driver: sqlite\n  path: toys.db\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "http://yaml.test", cfg.APIURL)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "toys.db", cfg.Storage.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	inTempDir(t)
	_, err := Load("nope.yaml")
	assert.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	tmp := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("TOYBOARD_THEME=mono\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("TOYBOARD_THEME") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.Theme)
}
