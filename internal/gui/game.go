// Package gui provides the desktop star map using Ebitengine.
package gui

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/litescript/ls-starmap/internal/anim"
	"github.com/litescript/ls-starmap/internal/config"
	"github.com/litescript/ls-starmap/internal/logging"
	"github.com/litescript/ls-starmap/internal/render"
	"github.com/litescript/ls-starmap/internal/starmap"
	"github.com/litescript/ls-starmap/internal/state"
	"github.com/litescript/ls-starmap/internal/universe"
	"github.com/litescript/ls-starmap/internal/viewport"
)

// Title is the window title.
const Title = "LS Starmap"

var layerKeys = map[ebiten.Key]universe.Layer{
	ebiten.KeyS: universe.LayerSystems,
	ebiten.KeyP: universe.LayerPosition,
	ebiten.KeyJ: universe.LayerJourney,
	ebiten.KeyT: universe.LayerStations,
}

// Options configures a Game.
type Options struct {
	State    *state.Manager
	Settings *config.Settings
	Toggles  universe.Toggles
	Logger   *logging.Logger
}

// Game is the Ebitengine game. It owns input translation and presents the
// last painted frame; all map state lives in the starmap view.
type Game struct {
	state    *state.Manager
	settings *config.Settings
	log      *logging.Logger

	clock  anim.Clock
	driver *anim.QueueDriver
	sm     *starmap.Map

	frame    render.Frame
	hasFrame bool

	revision int
	cursor   viewport.PixelPoint
	inside   bool
	focused  bool
}

// New creates the game and attaches a map view.
func New(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.State == nil {
		opts.State = state.NewManager(state.DefaultConfig())
	}

	clock := anim.SystemClock{}
	g := &Game{
		state:    opts.State,
		settings: opts.Settings,
		log:      opts.Logger.With("component", "gui"),
		clock:    clock,
		driver:   anim.NewQueueDriver(clock),
		focused:  true,
	}

	mo := starmap.DefaultOptions()
	mo.Driver = g.driver
	mo.Clock = clock
	mo.Painter = starmap.PainterFunc(func(f render.Frame) {
		g.frame, g.hasFrame = f, true
	})
	mo.Logger = opts.Logger
	mo.Toggles = opts.Toggles
	g.sm = starmap.New(mo)
	return g
}

// Map returns the attached map view.
func (g *Game) Map() *starmap.Map { return g.sm }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	// Revision is a cheap read at 60 TPS; the snapshot is only taken on change.
	if g.state.Revision() != g.revision {
		if snap := g.state.Snapshot(); snap.Data != nil {
			g.revision = snap.Revision
			g.sm.Load(*snap.Data)
		}
	}

	g.updateFocus()
	if err := g.updateKeys(); err != nil {
		return err
	}
	g.updatePointer()

	for _, tok := range g.driver.Poll(g.clock.Now()) {
		g.sm.Deliver(tok)
	}
	return nil
}

func (g *Game) updateFocus() {
	focused := ebiten.IsFocused()
	if focused == g.focused {
		return
	}
	g.focused = focused
	if focused {
		g.sm.Resume()
	} else {
		g.sm.Pause()
	}
}

func (g *Game) updateKeys() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.sm.Close()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sm.ResetView()
	}
	for k, l := range layerKeys {
		if !inpututil.IsKeyJustPressed(k) {
			continue
		}
		g.sm.SetToggle(l, !g.sm.Toggles().Get(l))
		if g.settings != nil {
			if err := g.settings.Save(g.sm.Toggles()); err != nil {
				g.log.Warn("save settings: %v", err)
			}
		}
	}
	return nil
}

func (g *Game) updatePointer() {
	x, y := ebiten.CursorPosition()
	p := viewport.PixelPoint{X: float64(x), Y: float64(y)}
	c := g.sm.Canvas()
	inside := p.X >= 0 && p.Y >= 0 && p.X <= c.Width && p.Y <= c.Height

	if !inside {
		if g.inside {
			g.sm.PointerLeave()
		}
		g.inside = false
		return
	}

	if !g.inside || p != g.cursor {
		g.sm.PointerMove(p)
	}
	g.inside, g.cursor = true, p

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.sm.PointerDown(p)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.sm.PointerUp(p)
	}
	// Scrolling up zooms in.
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.sm.Wheel(p, -dy)
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if !g.hasFrame {
		screen.Fill(render.ColorBackground)
		return
	}
	// A paused map keeps showing its last frame.
	render.Draw(NewSurface(screen), g.frame)
}

// Layout implements ebiten.Game. The outside size is the container the
// canvas is fitted into.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.sm.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, width, height int) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)
	defer g.sm.Close()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
