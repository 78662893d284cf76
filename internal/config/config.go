// Package config loads application configuration from a config file, a .env
// file and STARMAP_ environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/litescript/ls-starmap/internal/universe"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "STARMAP"

// ConfigName is the config file name without extension.
const ConfigName = "starmap"

// Bounds for the reload interval.
const (
	MinRefresh = 1 * time.Second
	MaxRefresh = 1 * time.Hour
)

// ClampRefresh keeps a reload interval within [MinRefresh, MaxRefresh].
func ClampRefresh(d time.Duration) time.Duration {
	return min(max(d, MinRefresh), MaxRefresh)
}

// DataConfig holds the payload file locations.
type DataConfig struct {
	Systems string `mapstructure:"systems"`
	Journal string `mapstructure:"journal"`
	User    string `mapstructure:"user"`
}

// GUIConfig holds the desktop window size.
type GUIConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Config is the resolved configuration.
type Config struct {
	LogLevel     string
	LogFile      string
	Refresh      time.Duration
	Data         DataConfig
	Show         universe.Toggles
	SettingsFile string
	GUI          GUIConfig
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")
	viper.SetDefault("refresh", "30s")

	viper.SetDefault("data.systems", "")
	viper.SetDefault("data.journal", "")
	viper.SetDefault("data.user", "")

	for _, l := range universe.Layers {
		viper.SetDefault("show."+l.String(), true)
	}

	viper.SetDefault("settingsFile", "")

	viper.SetDefault("gui.width", 1180)
	viper.SetDefault("gui.height", 1000)
}

// Load reads configuration. configDir holds an optional .env file and an
// optional starmap.{yaml,json,toml} file; neither is required. Variables
// already set in the environment win over the .env file.
func Load(configDir string) error {
	if err := godotenv.Load(filepath.Join(configDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading .env file: %w", err)
	}

	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(ConfigName)
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Get returns the resolved configuration.
func Get() Config {
	var show universe.Toggles
	for _, l := range universe.Layers {
		show = show.With(l, viper.GetBool("show."+l.String()))
	}

	return Config{
		LogLevel: viper.GetString("logLevel"),
		LogFile:  viper.GetString("logFile"),
		Refresh:  viper.GetDuration("refresh"),
		Data: DataConfig{
			Systems: viper.GetString("data.systems"),
			Journal: viper.GetString("data.journal"),
			User:    viper.GetString("data.user"),
		},
		Show:         show,
		SettingsFile: viper.GetString("settingsFile"),
		GUI: GUIConfig{
			Width:  viper.GetInt("gui.width"),
			Height: viper.GetInt("gui.height"),
		},
	}
}

// ConfigFileUsed returns the config file that was read, if any.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
