package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv removes ambient configuration variables for the duration of
// the test, including the unprefixed fallbacks envconfig also reads;
// t.Setenv registers the restore, os.Unsetenv does the actual clearing.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"SERVER_PORT", "DATA_DIR", "MAX_CHECKS", "GIN_MODE"} {
		for _, key := range []string{"UPTIME_" + name, name} {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, ".data", cfg.DataDir)
	assert.Equal(t, 5, cfg.MaxChecks)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPTIME_SERVER_PORT", "9999")
	t.Setenv("UPTIME_DATA_DIR", "/tmp/uptime-data")
	t.Setenv("UPTIME_MAX_CHECKS", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.ServerPort)
	assert.Equal(t, "/tmp/uptime-data", cfg.DataDir)
	assert.Equal(t, 1, cfg.MaxChecks)
}

func TestLoad_RejectsZeroMaxChecks(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPTIME_MAX_CHECKS", "0")

	_, err := Load()
	assert.Error(t, err)
}
