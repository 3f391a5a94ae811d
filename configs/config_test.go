package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `app:
  name: booking-api
  http_addr: ":8080"
mysql:
  dsn: "booking:booking@tcp(localhost:3306)/booking?parseTime=true"
redis:
  addr: "localhost:6379"
session:
  ttl: 2h
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	return dir
}

func TestLoadBase(t *testing.T) {
	dir := writeConfig(t, "base.yaml", baseYAML)

	cfg, err := Load(dir, "dev")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.App.HTTPAddr)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
}

func TestLoadEnvOverlayFile(t *testing.T) {
	dir := writeConfig(t, "base.yaml", baseYAML)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prod.yaml"), []byte("app:\n  http_addr: \":80\"\n"), 0o644))

	cfg, err := Load(dir, "prod")
	require.NoError(t, err)
	assert.Equal(t, ":80", cfg.App.HTTPAddr)
}

func TestLoadEnvVarsWin(t *testing.T) {
	dir := writeConfig(t, "base.yaml", baseYAML)
	t.Setenv("BOOKING_REDIS__ADDR", "redis-prod:6379")
	t.Setenv("BOOKING_REDIS__PASSWORD", "hunter2")

	cfg, err := Load(dir, "dev")
	require.NoError(t, err)
	assert.Equal(t, "redis-prod:6379", cfg.Redis.Addr)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
}

func TestLoadRejectsIncompleteConfig(t *testing.T) {
	dir := writeConfig(t, "base.yaml", "app:\n  http_addr: \":8080\"\n")

	_, err := Load(dir, "dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mysql.dsn")
}
