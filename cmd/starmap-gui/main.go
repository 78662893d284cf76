// Command starmap-gui is the desktop star map.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/litescript/ls-starmap/internal/config"
	"github.com/litescript/ls-starmap/internal/gui"
	"github.com/litescript/ls-starmap/internal/logging"
	"github.com/litescript/ls-starmap/internal/source"
	"github.com/litescript/ls-starmap/internal/state"
)

func main() {
	configDir := flag.String("config", ".", "Directory holding starmap.{json,yaml,toml} and .env")
	systemsPath := flag.String("systems", "", "Systems payload file")
	journalPath := flag.String("journal", "", "Journal payload file")
	userPath := flag.String("user", "", "User payload file with squadron stations")
	refresh := flag.Duration("refresh", 0, "Reload interval (e.g., 30s, 5m)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	width := flag.Int("width", 0, "Window width")
	height := flag.Int("height", 0, "Window height")
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Get()
	if *systemsPath != "" {
		cfg.Data.Systems = *systemsPath
	}
	if *journalPath != "" {
		cfg.Data.Journal = *journalPath
	}
	if *userPath != "" {
		cfg.Data.User = *userPath
	}
	if *refresh > 0 {
		cfg.Refresh = *refresh
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *width > 0 {
		cfg.GUI.Width = *width
	}
	if *height > 0 {
		cfg.GUI.Height = *height
	}
	cfg.Refresh = config.ClampRefresh(cfg.Refresh)

	logger := logging.New(logging.ParseLevel(cfg.LogLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		os.Exit(0)
	}()

	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = cfg.Refresh
	stateMgr := state.NewManager(stateCfg)

	loader := source.NewLoader(
		source.WithSystemsPath(cfg.Data.Systems),
		source.WithJournalPath(cfg.Data.Journal),
		source.WithUserPath(cfg.Data.User),
		source.WithLogger(logger),
	)
	// The game polls the manager each tick, so no notification is needed.
	go source.Watch(ctx, loader, stateMgr, nil)

	settingsFile := cfg.SettingsFile
	if settingsFile == "" {
		settingsFile = config.DefaultSettingsFile()
	}
	settings := config.NewSettings(settingsFile)
	toggles, err := settings.Load(cfg.Show)
	if err != nil && !errors.Is(err, config.ErrNoSettingsFile) {
		logger.Warn("load settings: %v", err)
	}

	g := gui.New(gui.Options{
		State:    stateMgr,
		Settings: settings,
		Toggles:  toggles,
		Logger:   logger,
	})
	if err := gui.Run(g, cfg.GUI.Width, cfg.GUI.Height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
