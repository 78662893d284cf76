// Package starmap is the per-view map context. It owns the viewport, the
// loaded entities, hover state and the animation scheduler, and turns host
// events into state changes and throttled paints.
//
// A Map is not safe for concurrent use. The host serializes every call on
// its event loop.
package starmap

import (
	"time"

	"github.com/litescript/ls-starmap/internal/anim"
	"github.com/litescript/ls-starmap/internal/colormap"
	"github.com/litescript/ls-starmap/internal/hittest"
	"github.com/litescript/ls-starmap/internal/logging"
	"github.com/litescript/ls-starmap/internal/render"
	"github.com/litescript/ls-starmap/internal/universe"
	"github.com/litescript/ls-starmap/internal/viewport"
)

// Painter receives finished frames.
type Painter interface {
	Paint(f render.Frame)
}

// PainterFunc adapts a function to Painter.
type PainterFunc func(f render.Frame)

func (fn PainterFunc) Paint(f render.Frame) { fn(f) }

// Options configures a Map.
type Options struct {
	Driver  anim.Driver
	Clock   anim.Clock
	Painter Painter
	Logger  *logging.Logger
	Toggles universe.Toggles
	Padding viewport.Padding
	// ContainerWidth and ContainerHeight bound the initial canvas.
	ContainerWidth  float64
	ContainerHeight float64
}

// DefaultOptions shows every layer with the default padding.
func DefaultOptions() Options {
	return Options{
		Toggles: universe.AllVisible(),
		Padding: viewport.DefaultPadding(),
	}
}

// Map is one attached star-map view.
type Map struct {
	clock   anim.Clock
	painter Painter
	log     *logging.Logger

	canvas  viewport.Canvas
	padding viewport.Padding
	view    viewport.Viewport

	systems  []universe.System
	journal  []universe.JourneyEntry
	journey  []universe.JourneyPoint
	stations []universe.Station

	player    viewport.LogicalPoint
	hasPlayer bool

	toggles universe.Toggles
	hover   hittest.Hover
	colors  *colormap.DateCache

	pulse    *anim.Pulse
	throttle *anim.Throttle

	pointer    viewport.PixelPoint
	hasPointer bool
	dragging   bool

	paused bool
	closed bool
}

type nopDriver struct{}

func (nopDriver) RequestFrame(anim.Token)         {}
func (nopDriver) After(time.Duration, anim.Token) {}

// New attaches a map view.
func New(opts Options) *Map {
	if opts.Driver == nil {
		opts.Driver = nopDriver{}
	}
	if opts.Clock == nil {
		opts.Clock = anim.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Padding == (viewport.Padding{}) {
		opts.Padding = viewport.DefaultPadding()
	}

	m := &Map{
		clock:   opts.Clock,
		painter: opts.Painter,
		log:     opts.Logger.With("component", "starmap"),
		padding: opts.Padding,
		view:    viewport.New(),
		toggles: opts.Toggles,
		hover:   hittest.NoHover(),
		colors:  colormap.New(nil),
	}
	m.canvas = viewport.FitCanvas(opts.ContainerWidth, opts.ContainerHeight, m.padding)
	m.pulse = anim.NewPulse(opts.Driver)
	m.throttle = anim.NewThrottle(opts.Driver, m.paint)
	return m
}

// Close detaches the view. Pending callbacks are cancelled and later calls
// are ignored. It is safe to call more than once.
func (m *Map) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.pulse.Stop()
	m.throttle.Cancel(m.clock.Now())
	m.log.Debug("closed")
}

// Closed reports whether Close has been called.
func (m *Map) Closed() bool { return m.closed }

// LoadSystems replaces the discovered systems.
func (m *Map) LoadSystems(systems []universe.System) {
	if m.closed {
		return
	}
	m.systems = systems
	m.rehit()
	m.log.Debug("loaded %d systems", len(systems))
	m.Redraw()
}

// SetJournalData replaces the journal, recomputes journey points and drops
// colours computed for the previous journal.
func (m *Map) SetJournalData(entries []universe.JourneyEntry) {
	if m.closed {
		return
	}
	m.journal = entries
	m.journey = universe.JourneyPoints(entries)
	m.colors.Reset(entries)
	m.rehit()
	m.log.Debug("loaded journal: %d entries, %d points", len(entries), len(m.journey))
	m.Redraw()
}

// SetPlayerPosition moves the player marker and restarts the pulse.
func (m *Map) SetPlayerPosition(p viewport.LogicalPoint) {
	if m.closed {
		return
	}
	m.player = p
	m.hasPlayer = true
	m.pulse.Stop()
	if m.toggles.Position {
		m.pulse.Start()
	}
	m.Redraw()
}

// ClearPlayerPosition removes the player marker.
func (m *Map) ClearPlayerPosition() {
	if m.closed {
		return
	}
	m.hasPlayer = false
	m.pulse.Stop()
	m.Redraw()
}

// PlayerPosition returns the current player position, if any.
func (m *Map) PlayerPosition() (viewport.LogicalPoint, bool) {
	return m.player, m.hasPlayer
}

// SetStations replaces the squadron stations.
func (m *Map) SetStations(stations []universe.Station) {
	if m.closed {
		return
	}
	m.stations = stations
	m.rehit()
	m.Redraw()
}

// Load applies a full dataset. The player position follows the first
// journal entry and is only reset when it moves.
func (m *Map) Load(d universe.Dataset) {
	m.LoadSystems(d.Systems)
	m.SetJournalData(d.Journal)
	m.SetStations(d.Stations)

	p, err := universe.PlayerPosition(d.Journal)
	switch {
	case err != nil:
		if m.hasPlayer {
			m.ClearPlayerPosition()
		}
	case !m.hasPlayer || p != m.player:
		m.SetPlayerPosition(p)
	}
}

// SetToggle shows or hides one layer.
func (m *Map) SetToggle(l universe.Layer, on bool) {
	if m.closed || m.toggles.Get(l) == on {
		return
	}
	m.toggles = m.toggles.With(l, on)

	if l == universe.LayerPosition {
		if on && m.hasPlayer {
			m.pulse.Start()
		} else {
			m.pulse.Stop()
		}
	}
	m.rehit()
	m.Redraw()
}

// Toggles returns the current layer visibility.
func (m *Map) Toggles() universe.Toggles { return m.toggles }

// View returns the current viewport.
func (m *Map) View() viewport.Viewport { return m.view }

// Canvas returns the current canvas.
func (m *Map) Canvas() viewport.Canvas { return m.canvas }

// Hover returns the current hover state.
func (m *Map) Hover() hittest.Hover { return m.hover }

// Paused reports whether the view is paused.
func (m *Map) Paused() bool { return m.paused }

// Stats derives the summary figures for the loaded data.
func (m *Map) Stats() universe.Stats {
	return universe.ComputeStats(universe.Dataset{
		Systems:  m.systems,
		Journal:  m.journal,
		Stations: m.stations,
	})
}

// Frame captures everything needed to draw the current state.
func (m *Map) Frame() render.Frame {
	f := render.Frame{
		Canvas:    m.canvas,
		View:      m.view,
		Systems:   m.systems,
		Journey:   m.journey,
		Stations:  m.stations,
		Player:    m.player,
		HasPlayer: m.hasPlayer,
		Hover:     m.hover,
		Toggles:   m.toggles,
		Colors:    m.colors,
	}
	if m.hasPlayer && m.toggles.Position {
		f.Ripples = m.pulse.Current()
	}
	return f
}

// Redraw asks for a throttled paint. It does nothing while paused.
func (m *Map) Redraw() {
	if m.closed || m.paused {
		return
	}
	m.throttle.Request(m.clock.Now())
}

func (m *Map) paint() {
	if m.painter != nil {
		m.painter.Paint(m.Frame())
	}
}

// Deliver hands a driver callback back to the map.
func (m *Map) Deliver(tok anim.Token) {
	if m.closed {
		return
	}
	now := m.clock.Now()
	switch tok.Kind {
	case anim.FrameToken:
		if m.pulse.OnFrame(tok, now) {
			m.Redraw()
		}
	case anim.RepaintToken:
		if !m.paused {
			m.throttle.OnTimer(tok, now)
		}
	}
}
