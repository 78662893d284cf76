// Package source reads star-map payloads from local files.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/litescript/ls-starmap/internal/logging"
	"github.com/litescript/ls-starmap/internal/universe"
)

// ErrNoPath is returned when no payload path is configured.
var ErrNoPath = errors.New("no payload path configured")

// Loader reads the systems, journal and user payloads.
type Loader struct {
	systemsPath string
	journalPath string
	userPath    string
	readFile    func(string) ([]byte, error)
	log         *logging.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithSystemsPath sets the `{"systems": [...]}` payload file.
func WithSystemsPath(path string) LoaderOption {
	return func(l *Loader) {
		l.systemsPath = path
	}
}

// WithJournalPath sets the `{"fullJournal": [...]}` payload file.
func WithJournalPath(path string) LoaderOption {
	return func(l *Loader) {
		l.journalPath = path
	}
}

// WithUserPath sets the user payload file carrying squadron stations.
func WithUserPath(path string) LoaderOption {
	return func(l *Loader) {
		l.userPath = path
	}
}

// WithReadFile replaces os.ReadFile.
func WithReadFile(fn func(string) ([]byte, error)) LoaderOption {
	return func(l *Loader) {
		l.readFile = fn
	}
}

// WithLogger sets the logger.
func WithLogger(log *logging.Logger) LoaderOption {
	return func(l *Loader) {
		l.log = log
	}
}

// NewLoader creates a payload loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		readFile: os.ReadFile,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.log == nil {
		l.log = logging.Discard()
	}
	l.log = l.log.With("component", "source")

	return l
}

// LoadResult contains the result of a load operation.
type LoadResult struct {
	Data     *universe.Dataset
	LoadedAt time.Time
	Duration time.Duration
	Error    error
}

// Load reads and parses every configured payload. A payload without a path
// yields an empty collection. Any read or parse failure fails the whole load.
func (l *Loader) Load(ctx context.Context) LoadResult {
	start := time.Now()
	result := LoadResult{
		LoadedAt: start,
	}

	data, err := l.load(ctx)
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = err
		return result
	}
	result.Data = data

	l.log.Debug("loaded %d systems, %d journal entries, %d stations in %v",
		len(data.Systems), len(data.Journal), len(data.Stations), result.Duration)
	return result
}

func (l *Loader) load(ctx context.Context) (*universe.Dataset, error) {
	if l.systemsPath == "" && l.journalPath == "" && l.userPath == "" {
		return nil, ErrNoPath
	}

	var d universe.Dataset

	if l.systemsPath != "" {
		raw, err := l.read(ctx, l.systemsPath)
		if err != nil {
			return nil, err
		}
		if d.Systems, err = universe.ParseSystems(raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", l.systemsPath, err)
		}
	}

	if l.journalPath != "" {
		raw, err := l.read(ctx, l.journalPath)
		if err != nil {
			return nil, err
		}
		if d.Journal, err = universe.ParseJournal(raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", l.journalPath, err)
		}
	}

	if l.userPath != "" {
		raw, err := l.read(ctx, l.userPath)
		if err != nil {
			return nil, err
		}
		if d.Stations, err = universe.ParseUser(raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", l.userPath, err)
		}
	}

	return &d, nil
}

func (l *Loader) read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := l.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return raw, nil
}

// Paths returns the configured systems, journal and user paths.
func (l *Loader) Paths() (systems, journal, user string) {
	return l.systemsPath, l.journalPath, l.userPath
}
