package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i-rong/l2-reflector/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "l2-reflector.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 60, cfg.WindowSeconds)
	assert.Equal(t, 2*time.Second, cfg.IdleInterval.Std())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
device = "mlx5_1"
netdev = "enp23s0f0np0"
window_seconds = 10
idle_interval = "500ms"
metrics_listen = ":9273"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mlx5_1", cfg.Device)
	assert.Equal(t, "enp23s0f0np0", cfg.NetDev)
	assert.Equal(t, 10, cfg.WindowSeconds)
	assert.Equal(t, 500*time.Millisecond, cfg.IdleInterval.Std())
	assert.Equal(t, ":9273", cfg.MetricsListen)
	// Untouched keys keep their defaults.
	assert.Equal(t, "sim", cfg.Backend)
	assert.Equal(t, 5*time.Second, cfg.CallTimeout.Std())
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `windw_seconds = 10`)
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	path := writeConfig(t, `idle_interval = "soon"`)
	_, err := config.Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		errStr string
	}{
		{name: "empty device", mutate: func(c *config.Config) { c.Device = "" }, errStr: "device"},
		{name: "unknown backend", mutate: func(c *config.Config) { c.Backend = "flexio" }, errStr: "backend"},
		{name: "zero window", mutate: func(c *config.Config) { c.WindowSeconds = 0 }, errStr: "window_seconds"},
		{name: "negative idle", mutate: func(c *config.Config) { c.IdleInterval = -1 }, errStr: "idle_interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errStr)
		})
	}
}

func TestLoadIfPresent_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.LoadIfPresent(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
