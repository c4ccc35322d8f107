package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfigFrom_Defaults(t *testing.T) {
	dir := writeConfig(t, "server:\n  port: 9090\n")

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, SourceWarehouse, cfg.Source.Type)
	assert.Equal(t, 15*time.Minute, cfg.Source.CacheTTL)
	assert.Equal(t, DriverPostgres, cfg.Warehouse.Driver)
	assert.Equal(t, "vw_match_facts", cfg.Warehouse.FactsView)
	assert.Equal(t, "vw_match_report", cfg.Warehouse.ReportView)
	assert.Equal(t, "MatchData", cfg.Sheets.Sheet)
}

func TestLoadConfigFrom_EnvOverridesSecrets(t *testing.T) {
	dir := writeConfig(t, `
source:
  type: sheets
  cache_ttl: 90s
warehouse:
  dsn: postgres://from-yaml
  conn_max_lifetime: 30m
sheets:
  spreadsheet_id: abc123
  api_key: yaml-key
jobs:
  job_id: 42
  token: yaml-token
`)
	t.Setenv("WAREHOUSE_DSN", "postgres://from-env")
	t.Setenv("SHEETS_API_KEY", "env-key")
	t.Setenv("SHEETS_PROXY", "http://proxy:3128")
	t.Setenv("JOBS_TOKEN", "env-token")

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Source.CacheTTL)
	assert.Equal(t, 30*time.Minute, cfg.Warehouse.ConnMaxLifetime)
	assert.Equal(t, "postgres://from-env", cfg.Warehouse.DSN)
	assert.Equal(t, "env-key", cfg.Sheets.APIKey)
	assert.Equal(t, "http://proxy:3128", cfg.Sheets.Proxy)
	assert.Equal(t, "env-token", cfg.Jobs.Token)
	assert.Equal(t, int64(42), cfg.Jobs.JobID)
}

func TestLoadConfigFrom_Invalid(t *testing.T) {
	_, err := LoadConfigFrom(writeConfig(t, "source:\n  type: excel\n"))
	assert.ErrorContains(t, err, "excel")

	_, err = LoadConfigFrom(writeConfig(t, "warehouse:\n  driver: mysql\n"))
	assert.ErrorContains(t, err, "mysql")

	_, err = LoadConfigFrom(writeConfig(t, "source:\n  type: sheets\n"))
	assert.ErrorContains(t, err, "spreadsheet_id")

	_, err = LoadConfigFrom(t.TempDir())
	assert.Error(t, err)
}

func TestGetGORMConfig(t *testing.T) {
	w := WarehouseConfig{}
	assert.NotNil(t, w.GetGORMConfig("debug").Logger)
	assert.NotNil(t, w.GetGORMConfig("release").Logger)
}
