package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("TASKFLOW_CONFIG_PATH", "")
	for _, key := range []string{"API_URL", "DATA_DIR", "STORAGE", "LOG_FILE", "LOG_LEVEL", "TIMEOUT", "SEED_SAMPLES"} {
		t.Setenv("TASKFLOW_"+key, "")
		os.Unsetenv("TASKFLOW_" + key)
	}
	return dir
}

func TestDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Equal(t, filepath.Join(dir, "data", "taskflow"), cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "data", "taskflow", "taskflow.log"), cfg.LogFile)
	assert.Equal(t, "sqlite", cfg.Storage)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.True(t, cfg.SeedSamples)
	assert.Empty(t, cfg.File)
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := isolate(t)
	confDir := filepath.Join(dir, "config", "taskflow")
	require.NoError(t, os.MkdirAll(confDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "taskflow.yaml"), []byte(
		"api_url: https://tasks.example.com\nstorage: diskv\ntimeout: 3s\nseed_samples: false\n"), 0644))

	t.Setenv("TASKFLOW_STORAGE", "memory")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "https://tasks.example.com", cfg.APIURL)
	assert.Equal(t, "memory", cfg.Storage, "environment wins over file")
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.False(t, cfg.SeedSamples)
	assert.Equal(t, filepath.Join(confDir, "taskflow.yaml"), cfg.File)
}

func TestFlagsWin(t *testing.T) {
	isolate(t)
	t.Setenv("TASKFLOW_API_URL", "http://env:1")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api-url", "", "")
	flags.String("storage", "", "")
	require.NoError(t, flags.Parse([]string{"--api-url", "http://flag:2"}))

	cfg, err := Load(Options{Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, "http://flag:2", cfg.APIURL)
	assert.Equal(t, "sqlite", cfg.Storage, "unset flag does not override")
}

func TestExplicitFileMustExist(t *testing.T) {
	dir := isolate(t)
	_, err := Load(Options{ConfigFile: filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}

func TestRejectsUnknownStorage(t *testing.T) {
	isolate(t)
	t.Setenv("TASKFLOW_STORAGE", "mongo")
	_, err := Load(Options{})
	assert.Error(t, err)
}
