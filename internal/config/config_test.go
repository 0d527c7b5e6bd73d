package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsFromEnv(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, StorageMemory, cfg.Storage.Backend)
	assert.Equal(t, "file://migrations", cfg.Storage.MigrationsPath)
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", StoragePostgres)

	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost:5432/filmorate?sslmode=disable")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.Storage.Backend)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "cassandra")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
env: prod
http:
  host: 127.0.0.1
  port: "9090"
storage:
  backend: memory
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.Addr())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}
