// Command starmap is a terminal star map of discovered systems, the player's
// journey and squadron space stations.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-starmap/internal/config"
	"github.com/litescript/ls-starmap/internal/logging"
	"github.com/litescript/ls-starmap/internal/render/raster"
	"github.com/litescript/ls-starmap/internal/source"
	"github.com/litescript/ls-starmap/internal/starmap"
	"github.com/litescript/ls-starmap/internal/state"
	"github.com/litescript/ls-starmap/internal/tui"
	"github.com/litescript/ls-starmap/internal/universe"
	"github.com/litescript/ls-starmap/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode  bool
	snapshotPath string
	width        int
	height       int
)

func main() {
	// Parse flags
	configDir := flag.String("config", ".", "Directory holding starmap.{json,yaml,toml} and .env")
	systemsPath := flag.String("systems", "", "Systems payload file")
	journalPath := flag.String("journal", "", "Journal payload file")
	userPath := flag.String("user", "", "User payload file with squadron stations")
	refresh := flag.Duration("refresh", 0, "Reload interval (e.g., 30s, 5m)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.StringVar(&snapshotPath, "snapshot", "", "Render one frame to a PNG file (use - for stdout)")
	flag.IntVar(&width, "width", 0, "Snapshot container width in pixels")
	flag.IntVar(&height, "height", 0, "Snapshot container height in pixels")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("starmap", version.Version)
		return
	}

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Get()

	// Flags win over config
	if *systemsPath != "" {
		cfg.Data.Systems = *systemsPath
	}
	if *journalPath != "" {
		cfg.Data.Journal = *journalPath
	}
	if *userPath != "" {
		cfg.Data.User = *userPath
	}
	if *refresh != 0 {
		cfg.Refresh = *refresh
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	cfg.Refresh = config.ClampRefresh(cfg.Refresh)

	headless := summaryMode || snapshotPath != ""

	// Set up logging. The TUI owns the terminal, so it only logs to a file.
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	if !headless {
		logger = logging.Discard()
		if cfg.LogFile != "" {
			f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
				os.Exit(1)
			}
			defer f.Close()
			logger = logging.New(logging.ParseLevel(cfg.LogLevel))
			logger.SetOutput(f)
		}
	}
	if used := config.ConfigFileUsed(); used != "" {
		logger.Debug("using config file %s", used)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Initialize components
	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = cfg.Refresh
	stateMgr := state.NewManager(stateCfg)

	loader := source.NewLoader(
		source.WithSystemsPath(cfg.Data.Systems),
		source.WithJournalPath(cfg.Data.Journal),
		source.WithUserPath(cfg.Data.User),
		source.WithLogger(logger),
	)

	if headless {
		if err := runHeadless(ctx, loader, stateMgr, cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	settingsFile := cfg.SettingsFile
	if settingsFile == "" {
		settingsFile = config.DefaultSettingsFile()
	}
	settings := config.NewSettings(settingsFile)
	toggles, err := settings.Load(cfg.Show)
	if err != nil && !errors.Is(err, config.ErrNoSettingsFile) {
		logger.Warn("load settings: %v", err)
	}

	// Create TUI model
	model := tui.New(tui.Options{
		State:    stateMgr,
		Settings: settings,
		Toggles:  toggles,
		Logger:   logger,
	})

	// Create Bubble Tea program
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)

	// Start reload loop in background
	go source.Watch(ctx, loader, stateMgr, func(snap state.Snapshot, err error) {
		if err != nil {
			p.Send(tui.ErrorMsg{Error: err})
			return
		}
		p.Send(tui.DataUpdateMsg{Snapshot: snap})
	})

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless loads once and prints a summary or writes a PNG snapshot.
func runHeadless(ctx context.Context, loader *source.Loader, stateMgr *state.Manager, cfg config.Config, logger *logging.Logger) error {
	snap := source.LoadInto(ctx, loader, stateMgr, nil)
	if snap.LastError != nil {
		return snap.LastError
	}

	if summaryMode {
		writeSummary(snap)
	}

	if snapshotPath != "" {
		w, h := snapshotSize(cfg)
		return writeSnapshot(*snap.Data, cfg.Show, w, h, logger)
	}
	return nil
}

func writeSummary(snap state.Snapshot) {
	s := snap.Stats
	fmt.Println(s.SystemsSummary())
	fmt.Println(s.DistanceSummary())
	fmt.Printf("Journal entries: %d (%d distinct locations)\n", s.JourneyEntries, s.JourneyPoints)
	fmt.Printf("Squadron stations: %d\n", s.StationCount)

	if p, err := universe.PlayerPosition(snap.Data.Journal); err == nil {
		fmt.Printf("Current position: (%g, %g)\n", p.X, p.Y)
	}
	if first, last, ok := universe.TimeRange(snap.Data.Journal); ok {
		fmt.Printf("Journey: %s to %s\n", first.Format("Jan 2, 2006"), last.Format("Jan 2, 2006"))
	}
	fmt.Printf("Loaded in %v\n", snap.LoadDuration.Round(time.Millisecond))
	for _, e := range snap.Events {
		fmt.Printf("[%s] %s\n", e.Timestamp.Format("15:04:05"), e)
	}
}

// snapshotSize picks the container for a snapshot: flags, then the
// terminal size in cells, then the configured window size.
func snapshotSize(cfg config.Config) (float64, float64) {
	w, h := width, height
	if w <= 0 || h <= 0 {
		if cols, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil && term.IsTerminal(int(os.Stdout.Fd())) {
			w = int(float64(cols) * tui.CellWidth)
			h = int(float64(rows) * tui.CellHeight)
		} else {
			w, h = cfg.GUI.Width, cfg.GUI.Height
		}
	}
	return float64(w), float64(h)
}

func writeSnapshot(d universe.Dataset, toggles universe.Toggles, containerW, containerH float64, logger *logging.Logger) error {
	opts := starmap.DefaultOptions()
	opts.Toggles = toggles
	opts.Logger = logger
	opts.ContainerWidth = containerW
	opts.ContainerHeight = containerH

	m := starmap.New(opts)
	defer m.Close()
	m.Load(d)

	s := raster.RenderFrame(m.Frame())

	if snapshotPath == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("refusing to write PNG to a terminal")
		}
		return s.WritePNG(os.Stdout)
	}
	if err := s.SavePNG(snapshotPath); err != nil {
		return err
	}
	logger.Info("wrote %s", snapshotPath)
	return nil
}
