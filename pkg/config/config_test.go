package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"lintang/busnavigator/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadDefault(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.ListenAddr)
	assert.Equal(t, 7.0, cfg.Search.CruisingSpeed)
	assert.Equal(t, 1.5, cfg.Search.WalkSpeed)
	assert.Equal(t, 100.0, cfg.Search.FareWeight)
	assert.Equal(t, 10000.0, cfg.Search.WaitMultiplier)
	assert.Equal(t, 300.0, cfg.Search.MaxWalkDistance)

	params := cfg.SearchParams()
	assert.NoError(t, params.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  listen_addr: ":8080"
search:
  walk_speed: 1.2
  wait_multiplier: 3
log:
  format: json
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, 1.2, cfg.Search.WalkSpeed)
	assert.Equal(t, 3.0, cfg.Search.WaitMultiplier)
	// yang gak diisi tetap default
	assert.Equal(t, 7.0, cfg.Search.CruisingSpeed)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "routes.csv", cfg.Data.RoutesFile)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[server]
listen_addr = ":9090"

[data]
db_path = "/tmp/navdb"

[search]
fare_weight = 50.0
max_walk_distance = 500.0
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.ListenAddr)
	assert.Equal(t, "/tmp/navdb", cfg.Data.DBPath)
	assert.Equal(t, 50.0, cfg.Search.FareWeight)
	assert.Equal(t, 500.0, cfg.Search.MaxWalkDistance)
}

func TestLoadErrors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		_, err := config.Load(writeFile(t, "config.ini", "a=b"))
		assert.ErrorIs(t, err, config.ErrUnsupportedFormat)
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := config.Load(writeFile(t, "config.yml", "search:\n  wait_multiplier: 0.5\n"))
		assert.Error(t, err)
	})

	t.Run("bad log format", func(t *testing.T) {
		_, err := config.Load(writeFile(t, "config.yml", "log:\n  format: xml\n"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := config.NewLogger(config.LogConfig{Level: "warn", Format: "json"}, buf)

	logger.Info("hidden")
	logger.Warn("shown", "stops", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"stops":3`)
}
