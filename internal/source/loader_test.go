package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-starmap/internal/state"
)

const (
	systemsJSON = `{"systems": [
		{"name": "Sol", "coordinate_x": 1000, "coordinate_y": 1000, "starter": true},
		{"name": "Vega", "coordinate_x": 400, "coordinate_y": 500}
	]}`
	journalJSON = `{"fullJournal": [
		{"coordinate_x": 400, "coordinate_y": 500, "date": "2024-02-01T00:00:00Z"},
		{"coordinate_x": 100, "coordinate_y": 100, "date": "2024-01-01T00:00:00Z"}
	]}`
	userJSON = `{"data": {"squadronSpaceStations": [
		{"name": "Outpost", "system": {"name": "Vega", "coordinate_x": 400, "coordinate_y": 500}, "range": 3}
	]}}`
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AllPayloads(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(
		WithSystemsPath(writeFile(t, dir, "systems.json", systemsJSON)),
		WithJournalPath(writeFile(t, dir, "journal.json", journalJSON)),
		WithUserPath(writeFile(t, dir, "user.json", userJSON)),
	)

	res := l.Load(context.Background())
	require.NoError(t, res.Error)
	require.NotNil(t, res.Data)

	assert.Len(t, res.Data.Systems, 2)
	assert.Len(t, res.Data.Journal, 2)
	require.Len(t, res.Data.Stations, 1)
	assert.Equal(t, "Outpost", res.Data.Stations[0].Name)
	assert.Equal(t, 13.0, res.Data.Stations[0].RangeLY())
	assert.False(t, res.LoadedAt.IsZero())
}

func TestLoad_OptionalPayloads(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(WithSystemsPath(writeFile(t, dir, "systems.json", systemsJSON)))

	res := l.Load(context.Background())
	require.NoError(t, res.Error)

	assert.Len(t, res.Data.Systems, 2)
	assert.Empty(t, res.Data.Journal)
	assert.Empty(t, res.Data.Stations)
}

func TestLoad_NoPath(t *testing.T) {
	res := NewLoader().Load(context.Background())
	assert.ErrorIs(t, res.Error, ErrNoPath)
	assert.Nil(t, res.Data)
}

func TestLoad_MissingFile(t *testing.T) {
	l := NewLoader(WithJournalPath(filepath.Join(t.TempDir(), "missing.json")))

	res := l.Load(context.Background())
	require.Error(t, res.Error)
	assert.ErrorIs(t, res.Error, os.ErrNotExist)
	assert.Contains(t, res.Error.Error(), "read payload")
}

func TestLoad_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "systems.json", `{"systems": [`)
	l := NewLoader(WithSystemsPath(path))

	res := l.Load(context.Background())
	require.Error(t, res.Error)
	assert.Contains(t, res.Error.Error(), "unmarshal systems")
	assert.Nil(t, res.Data)
}

func TestLoad_CancelledContext(t *testing.T) {
	calls := 0
	l := NewLoader(
		WithSystemsPath("systems.json"),
		WithReadFile(func(string) ([]byte, error) {
			calls++
			return []byte(systemsJSON), nil
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := l.Load(ctx)
	assert.True(t, errors.Is(res.Error, context.Canceled))
	assert.Equal(t, 0, calls)
}

func TestPaths(t *testing.T) {
	l := NewLoader(WithSystemsPath("a"), WithJournalPath("b"), WithUserPath("c"))
	s, j, u := l.Paths()
	assert.Equal(t, "a", s)
	assert.Equal(t, "b", j)
	assert.Equal(t, "c", u)
}

func TestLoadInto_RecordsResult(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(WithSystemsPath(writeFile(t, dir, "systems.json", systemsJSON)))
	mgr := state.NewManager(state.DefaultConfig())

	var notified int
	snap := LoadInto(context.Background(), l, mgr, func(s state.Snapshot, err error) {
		notified++
		assert.NoError(t, err)
	})

	assert.Equal(t, 1, notified)
	assert.Equal(t, 1, snap.Revision)
	assert.Equal(t, 2, snap.Stats.SystemCount)
	assert.NotNil(t, mgr.Snapshot().Data)
}

func TestLoadInto_Failure(t *testing.T) {
	mgr := state.NewManager(state.DefaultConfig())

	snap := LoadInto(context.Background(), NewLoader(), mgr, nil)
	assert.ErrorIs(t, snap.LastError, ErrNoPath)
	assert.Nil(t, mgr.Snapshot().Data)
	require.NotEmpty(t, snap.Events)
	assert.Equal(t, state.EventLoadFailed, snap.Events[len(snap.Events)-1].Type)
}

func TestWatch_StopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(WithSystemsPath(writeFile(t, dir, "systems.json", systemsJSON)))
	cfg := state.DefaultConfig()
	cfg.RefreshInterval = time.Hour
	mgr := state.NewManager(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	loaded := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		Watch(ctx, l, mgr, func(state.Snapshot, error) { loaded <- struct{}{} })
		close(done)
	}()

	<-loaded
	cancel()
	<-done
	assert.Equal(t, 1, mgr.Revision())
}
