package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFlagsOverrideYaml(t *testing.T) {
	path := writeConfig(t, `
message: from yaml
log_level: warn
metrics_addr: ":9000"
device:
  backend: sox
  device_name: yaml-device
`)

	cfg, err := loadConfig([]string{"-c", path, "-m", "from flag", "-backend", "malgo", "-wait"})
	require.NoError(t, err)

	assert.Equal(t, "from flag", cfg.Message)
	assert.Equal(t, "malgo", cfg.Device.Backend)
	assert.True(t, cfg.WaitEnter)
	// flags left unset keep the yaml values
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ":9000", cfg.MetricsAddr)
	assert.Equal(t, "yaml-device", cfg.Device.DeviceName)
}

func TestEmptyFlagStillOverrides(t *testing.T) {
	path := writeConfig(t, "message: from yaml\nmetrics_addr: \":9000\"\n")

	cfg, err := loadConfig([]string{"-c", path, "-m", "", "-metrics", ""})
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Message)
	assert.Equal(t, "", cfg.MetricsAddr)
}

func TestFlagsWithoutConfigFile(t *testing.T) {
	cfg, err := loadConfig([]string{"-device", "Speakers", "-log", "debug"})
	require.NoError(t, err)

	assert.Equal(t, "kek", cfg.Message)
	assert.Equal(t, "Speakers", cfg.Device.DeviceName)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig([]string{"-unknown"})
	assert.Error(t, err)

	_, err = loadConfig([]string{"-h"})
	assert.ErrorIs(t, err, flag.ErrHelp)

	_, err = loadConfig([]string{"-c", filepath.Join(t.TempDir(), "missing.yml")})
	assert.Error(t, err)
}
