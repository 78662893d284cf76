// Package tui provides the terminal star map using Bubble Tea.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-starmap/internal/anim"
	"github.com/litescript/ls-starmap/internal/config"
	"github.com/litescript/ls-starmap/internal/logging"
	"github.com/litescript/ls-starmap/internal/render"
	"github.com/litescript/ls-starmap/internal/starmap"
	"github.com/litescript/ls-starmap/internal/state"
	"github.com/litescript/ls-starmap/internal/universe"
	"github.com/litescript/ls-starmap/internal/version"
	"github.com/litescript/ls-starmap/internal/viewport"
)

// Rows above and below the map.
const (
	headerRows = 2
	footerRows = 2
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic status updates.
	TickMsg time.Time

	// AnimTickMsg advances the footer spinner.
	AnimTickMsg time.Time

	// DataUpdateMsg signals a new dataset is available.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a load error.
	ErrorMsg struct {
		Error error
	}
)

// layerKeys maps toggle keys to layers.
var layerKeys = map[string]universe.Layer{
	"s": universe.LayerSystems,
	"p": universe.LayerPosition,
	"j": universe.LayerJourney,
	"t": universe.LayerStations,
}

// painter keeps the last frame rendered to cells.
type painter struct {
	view  string
	plain string
}

func (p *painter) Paint(f render.Frame) {
	s := SurfaceFor(f.Canvas)
	render.Draw(s, f)
	p.view = s.Render()
	p.plain = s.Plain()
}

// Options configures the root model.
type Options struct {
	State    *state.Manager
	Settings *config.Settings
	Toggles  universe.Toggles
	Clock    anim.Clock
	Logger   *logging.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state    *state.Manager
	settings *config.Settings
	log      *logging.Logger

	sm      *starmap.Map
	driver  *Driver
	painter *painter

	// UI state
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int

	snapshot state.Snapshot
	revision int
}

// New creates the root model and attaches a map view.
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.State == nil {
		opts.State = state.NewManager(state.DefaultConfig())
	}

	d := NewDriver()
	p := &painter{}

	mo := starmap.DefaultOptions()
	mo.Driver = d
	mo.Clock = opts.Clock
	mo.Painter = p
	mo.Logger = opts.Logger
	mo.Toggles = opts.Toggles

	return Model{
		state:    opts.State,
		settings: opts.Settings,
		log:      opts.Logger.With("component", "tui"),
		sm:       starmap.New(mo),
		driver:   d,
		painter:  p,
	}
}

// Map returns the attached map view.
func (m Model) Map() *starmap.Map { return m.sm }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			m.sm.Close()
			return m, tea.Quit

		case "s", "p", "j", "t":
			l := layerKeys[key]
			m.sm.SetToggle(l, !m.sm.Toggles().Get(l))
			m.saveToggles()

		case "r":
			m.sm.ResetView()

		case "+", "=":
			m.sm.Wheel(m.canvasCentre(), -1)
		case "-", "_":
			m.sm.Wheel(m.canvasCentre(), 1)
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.sm.Resize(float64(msg.Width)*CellWidth, float64(m.mapRows())*CellHeight)

	case tea.BlurMsg:
		m.sm.Pause()

	case tea.FocusMsg:
		m.sm.Resume()

	case TokenMsg:
		m.sm.Deliver(msg.Token)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		// Request fresh snapshot
		m.applySnapshot(m.state.Snapshot())

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case DataUpdateMsg:
		m.applySnapshot(msg.Snapshot)

	case ErrorMsg:
		m.statusMsg = "Load failed: " + msg.Error.Error()
	}

	cmds = append(cmds, m.driver.Drain()...)
	return m, tea.Batch(cmds...)
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if snap.Data == nil || snap.Revision == m.revision {
		return
	}
	m.revision = snap.Revision
	m.sm.Load(*snap.Data)
}

func (m *Model) saveToggles() {
	if m.settings == nil {
		return
	}
	if err := m.settings.Save(m.sm.Toggles()); err != nil {
		m.log.Warn("save settings: %v", err)
		m.statusMsg = "Could not save settings: " + err.Error()
		return
	}
	m.statusMsg = ""
}

func (m Model) mapRows() int {
	return max(m.height-headerRows-footerRows, 0)
}

func (m Model) canvasCentre() viewport.PixelPoint {
	c := m.sm.Canvas()
	return viewport.PixelPoint{X: c.Width / 2, Y: c.Height / 2}
}

// mousePixel maps a terminal cell to a canvas pixel. ok is false outside
// the canvas.
func (m Model) mousePixel(x, y int) (viewport.PixelPoint, bool) {
	p := PixelFor(x, y-headerRows)
	c := m.sm.Canvas()
	if p.X < 0 || p.Y < 0 || p.X > c.Width || p.Y > c.Height {
		return p, false
	}
	return p, true
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	p, ok := m.mousePixel(msg.X, msg.Y)
	if !ok {
		m.sm.PointerLeave()
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.sm.PointerDown(p)
		case tea.MouseButtonWheelUp:
			m.sm.Wheel(p, -1)
		case tea.MouseButtonWheelDown:
			m.sm.Wheel(p, 1)
		}
	case tea.MouseActionRelease:
		m.sm.PointerUp(p)
	case tea.MouseActionMotion:
		m.sm.PointerMove(p)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderHeader() + "\n" + m.painter.view + "\n" + m.renderFooter()
}

// PlainView returns the last painted map without colours.
func (m Model) PlainView() string { return m.painter.plain }

func (m Model) renderHeader() string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	value := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	title := "  " + gradientText("LS-STARMAP") + muted.Render(fmt.Sprintf("  v%s", version.Version))

	stats := m.sm.Stats()
	line := "  " + value.Render(stats.SystemsSummary()) + muted.Render("  ·  ") + value.Render(stats.DistanceSummary())
	return title + "\n" + line
}

// gradientText renders text blended from blue to magenta.
func gradientText(text string) string {
	from, _ := colorful.Hex("#3B82F6")
	to, _ := colorful.Hex("#D946EF")

	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := from.BlendLuv(to, t).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Bold(true).Render(string(r)))
	}
	return b.String()
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))
	onStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	// Animated spinner frames
	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case !m.snapshot.LastLoad.IsZero():
		next := m.snapshot.LastLoad.Add(m.state.RefreshInterval())
		countdown := time.Until(next).Round(time.Second)
		if countdown < 0 {
			countdown = 0
		}
		status = accentStyle.Render(spinner) + dimStyle.Render(fmt.Sprintf(" reload in %ds", int(countdown.Seconds())))
		if m.snapshot.LoadDuration > 0 {
			status += dimStyle.Render(" (" + m.snapshot.LoadDuration.Round(time.Millisecond).String() + ")")
		}
	default:
		status = accentStyle.Render(spinner) + dimStyle.Render(" Waiting for data...")
	}
	if m.sm.Paused() {
		status += dimStyle.Render(" [paused]")
	}
	if last := m.state.RecentEvents(1); len(last) == 1 && last[0].Type != state.EventLoadFailed {
		status += accentStyle.Render(" · " + last[0].String())
	}

	toggles := m.sm.Toggles()
	var parts []string
	for _, key := range []string{"s", "p", "j", "t"} {
		l := layerKeys[key]
		label := fmt.Sprintf("[%s]%s", key, l)
		if toggles.Get(l) {
			parts = append(parts, onStyle.Render(label))
		} else {
			parts = append(parts, dimStyle.Render(label))
		}
	}

	help := dimStyle.Render("drag: pan | wheel/+/-: zoom | r: reset | q: quit")
	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + strings.Join(parts, " ") + "  " + dimStyle.Render("|") + "  " + help

	if m.statusMsg != "" {
		footer += "\n  " + errorStyle.Render(m.statusMsg)
	}
	return footer
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// SendDataUpdate creates a command that sends a data update message.
func SendDataUpdate(snapshot state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}
