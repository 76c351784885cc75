package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCPUPowerConfigFromFile(t *testing.T) {
	cfg, err := InitCPUPowerConfig("cpupower_config.test", GetAbsPath("config"), false)
	require.NoError(t, err)
	assert.Equal(t, ":18080", cfg.Server.Host)
	assert.Equal(t, "memory", cfg.Backend.Kind)
	assert.Equal(t, 10*time.Millisecond, cfg.Sampler.SampleDelay)
	assert.Equal(t, 4, cfg.Sampler.MaxCores)
	assert.EqualValues(t, 11, cfg.Limits.MinDownThreshold)
	require.NotNil(t, GetConfig())
}

func TestInitCPUPowerConfigMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := InitCPUPowerConfig("does_not_exist", dir, true)
	require.NoError(t, err)
	assert.Equal(t, "sysfs", cfg.Backend.Kind)
	assert.Equal(t, 250*time.Millisecond, cfg.Sampler.SampleDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Sampler.CycleDelay)
	assert.EqualValues(t, 30000000, cfg.Workload.MaxDigits)
}

func TestInitCPUPowerConfigMissingFileFails(t *testing.T) {
	_, err := InitCPUPowerConfig("does_not_exist", t.TempDir(), false)
	require.Error(t, err)
}

func TestInitCPUPowerConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	content := "[backend]\nkind = \"sysfs\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "env_test.toml"), []byte(content), 0644))
	t.Setenv("CPUPOWER_BACKEND_KIND", "memory")
	t.Setenv("CPUPOWER_SAMPLER_MAX_CORES", "2")

	cfg, err := InitCPUPowerConfig("env_test", dir, false)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Backend.Kind)
	assert.Equal(t, 2, cfg.Sampler.MaxCores)
}
