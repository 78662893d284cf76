package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/litescript/ls-starmap/internal/universe"
)

// ErrNoSettingsFile is returned when persisting without a settings path.
var ErrNoSettingsFile = errors.New("no settings file configured")

// Settings persists the layer toggles between runs. It uses its own viper
// instance so saving never writes the main configuration.
type Settings struct {
	path string
}

// NewSettings returns a store backed by path. The file type follows the
// extension.
func NewSettings(path string) *Settings {
	return &Settings{path: path}
}

// DefaultSettingsFile is settings.json under the user config directory.
func DefaultSettingsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ls-starmap", "settings.json")
}

// Path returns the backing file.
func (s *Settings) Path() string {
	return s.path
}

// Load returns the stored toggles. Layers missing from the file, or a missing
// file, fall back to def.
func (s *Settings) Load(def universe.Toggles) (universe.Toggles, error) {
	if s.path == "" {
		return def, ErrNoSettingsFile
	}

	v := viper.New()
	for _, l := range universe.Layers {
		v.SetDefault("show."+l.String(), def.Get(l))
	}
	v.SetConfigFile(s.path)

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return def, nil
		}
		return def, fmt.Errorf("read settings: %w", err)
	}

	t := def
	for _, l := range universe.Layers {
		t = t.With(l, v.GetBool("show."+l.String()))
	}
	return t, nil
}

// Save writes the toggles, creating the parent directory when needed.
func (s *Settings) Save(t universe.Toggles) error {
	if s.path == "" {
		return ErrNoSettingsFile
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	v := viper.New()
	for _, l := range universe.Layers {
		v.Set("show."+l.String(), t.Get(l))
	}
	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
