package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
log:
  level: info
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := Load(configFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "shared", cfg.Engine.Kind)
	assert.Equal(t, 4, cfg.Engine.Workers)
	assert.Equal(t, int64(112233), cfg.Engine.Seed)
	assert.Equal(t, 1, cfg.Benchmark.Runs)
	assert.False(t, cfg.Benchmark.Baseline)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "./reports", cfg.Storage.LocalPath)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_CustomValues(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
engine:
  kind: halo
  workers: 16
benchmark:
  runs: 10
  baseline: true
database:
  enabled: true
  type: postgres
  host: db.internal
  port: 5432
log:
  level: debug
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, "halo", cfg.Engine.Kind)
	assert.Equal(t, 16, cfg.Engine.Workers)
	assert.Equal(t, 10, cfg.Benchmark.Runs)
	assert.True(t, cfg.Benchmark.Baseline)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "shared", cfg.Engine.Kind)
}

func TestLoad_InvalidEngineKind(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
engine:
  kind: quantum
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	_, err := Load(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine.kind")
}

func TestLoad_InvalidWorkers(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
engine:
  workers: -1
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	_, err := Load(configFile)
	require.Error(t, err)
}

func TestLoad_InvalidDatabaseType(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
database:
  enabled: true
  type: mongodb
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	_, err := Load(configFile)
	require.Error(t, err)
}

func TestLoadFromReader(t *testing.T) {
	content := []byte(`
engine:
  kind: halo
storage:
  type: cos
  bucket: bench
  region: ap-guangzhou
`)
	cfg, err := LoadFromReader("yaml", content)
	require.NoError(t, err)
	assert.Equal(t, "halo", cfg.Engine.Kind)
	assert.Equal(t, "cos", cfg.Storage.Type)
	assert.Equal(t, "bench", cfg.Storage.Bucket)
	// Defaults still apply to untouched sections.
	assert.Equal(t, 1, cfg.Benchmark.Runs)
}
