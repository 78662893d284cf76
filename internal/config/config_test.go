package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-starmap/internal/universe"
)

// unsetEnv clears key for the test and restores it afterwards. godotenv
// does not override variables that are set, even to an empty value.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(t.TempDir()))

	cfg := Get()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.LogFile)
	assert.Equal(t, 30*time.Second, cfg.Refresh)
	assert.Equal(t, DataConfig{}, cfg.Data)
	assert.Equal(t, universe.AllVisible(), cfg.Show)
	assert.Equal(t, 1180, cfg.GUI.Width)
	assert.Equal(t, 1000, cfg.GUI.Height)
	assert.Equal(t, "", ConfigFileUsed())
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"refresh": "5s",
		"data": { "systems": "/data/systems.json", "journal": "/data/journal.json" },
		"show": { "stations": false }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "starmap.json"), []byte(cfg), 0644))

	require.NoError(t, Load(dir))

	got := Get()
	assert.Equal(t, "debug", got.LogLevel)
	assert.Equal(t, 5*time.Second, got.Refresh)
	assert.Equal(t, "/data/systems.json", got.Data.Systems)
	assert.Equal(t, "/data/journal.json", got.Data.Journal)
	assert.Equal(t, "", got.Data.User)
	assert.False(t, got.Show.Stations)
	assert.True(t, got.Show.Systems)
	assert.Equal(t, filepath.Join(dir, "starmap.json"), ConfigFileUsed())
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "starmap.json"), []byte(`{"logLevel":`), 0644))

	err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("STARMAP_DATA_USER", "/env/user.json")
	t.Setenv("STARMAP_SHOW_JOURNEY", "false")

	require.NoError(t, Load(t.TempDir()))

	cfg := Get()
	assert.Equal(t, "/env/user.json", cfg.Data.User)
	assert.False(t, cfg.Show.Journey)
}

func TestLoad_DotEnv(t *testing.T) {
	t.Cleanup(viper.Reset)
	unsetEnv(t, "STARMAP_LOGLEVEL")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STARMAP_LOGLEVEL=warn\n"), 0644))

	require.NoError(t, Load(dir))
	assert.Equal(t, "warn", Get().LogLevel)
}

func TestClampRefresh(t *testing.T) {
	assert.Equal(t, MinRefresh, ClampRefresh(time.Millisecond))
	assert.Equal(t, MinRefresh, ClampRefresh(0))
	assert.Equal(t, 30*time.Second, ClampRefresh(30*time.Second))
	assert.Equal(t, MaxRefresh, ClampRefresh(48*time.Hour))
}
