package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-starmap/internal/universe"
)

func TestSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	s := NewSettings(path)

	want := universe.Toggles{Systems: true, Position: false, Journey: true, Stations: false}
	require.NoError(t, s.Save(want))

	got, err := s.Load(universe.AllVisible())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettings_MissingFileUsesDefaults(t *testing.T) {
	s := NewSettings(filepath.Join(t.TempDir(), "settings.json"))

	def := universe.Toggles{Systems: true}
	got, err := s.Load(def)
	require.NoError(t, err)
	assert.Equal(t, def, got)
}

func TestSettings_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"show": {"journey": false}}`), 0644))

	got, err := NewSettings(path).Load(universe.AllVisible())
	require.NoError(t, err)
	assert.False(t, got.Journey)
	assert.True(t, got.Systems)
	assert.True(t, got.Position)
	assert.True(t, got.Stations)
}

func TestSettings_NoPath(t *testing.T) {
	s := NewSettings("")

	got, err := s.Load(universe.AllVisible())
	assert.ErrorIs(t, err, ErrNoSettingsFile)
	assert.Equal(t, universe.AllVisible(), got)
	assert.ErrorIs(t, s.Save(universe.AllVisible()), ErrNoSettingsFile)
}

func TestSettings_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))

	_, err := NewSettings(path).Load(universe.AllVisible())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read settings")
}
