package starmap

import (
	"github.com/litescript/ls-starmap/internal/hittest"
	"github.com/litescript/ls-starmap/internal/viewport"
)

// PointerMove pans while dragging and updates the hover otherwise.
func (m *Map) PointerMove(p viewport.PixelPoint) {
	if m.closed {
		return
	}
	prev := m.pointer
	m.pointer, m.hasPointer = p, true

	if m.dragging {
		m.view = m.view.Pan(p.X-prev.X, p.Y-prev.Y, m.canvas)
		m.Redraw()
		return
	}
	if m.rehit() {
		m.Redraw()
	}
}

// PointerDown starts a drag.
func (m *Map) PointerDown(p viewport.PixelPoint) {
	if m.closed {
		return
	}
	m.pointer, m.hasPointer = p, true
	m.dragging = true
}

// PointerUp ends a drag.
func (m *Map) PointerUp(p viewport.PixelPoint) {
	if m.closed {
		return
	}
	m.pointer, m.hasPointer = p, true
	m.dragging = false
	if m.rehit() {
		m.Redraw()
	}
}

// PointerLeave ends any drag and clears the hover.
func (m *Map) PointerLeave() {
	if m.closed {
		return
	}
	m.dragging = false
	m.hasPointer = false
	if m.hover.Active() {
		m.hover = hittest.NoHover()
		m.Redraw()
	}
}

// Dragging reports whether a drag is in progress.
func (m *Map) Dragging() bool { return m.dragging }

// Wheel zooms around p. A positive delta zooms out.
func (m *Map) Wheel(p viewport.PixelPoint, delta float64) {
	if m.closed || delta == 0 {
		return
	}
	m.pointer, m.hasPointer = p, true
	before := m.view
	m.view = m.view.ZoomAt(p, delta, m.canvas)
	if m.view == before {
		return
	}
	if m.view == viewport.New() && before.Zoom > viewport.MinZoom {
		m.log.Debug("zoom snapped to origin")
	}
	m.rehit()
	m.Redraw()
}

// ResetView returns to the fully zoomed-out view.
func (m *Map) ResetView() {
	if m.closed {
		return
	}
	m.view = viewport.New()
	m.rehit()
	m.Redraw()
}

// Resize fits the canvas to the available container size.
func (m *Map) Resize(containerW, containerH float64) {
	if m.closed {
		return
	}
	c := viewport.FitCanvas(containerW, containerH, m.padding)
	if c == m.canvas {
		return
	}
	m.canvas = c
	m.view = m.view.Clamp()
	m.rehit()
	m.Redraw()
}

// Pause stops animation while the view is hidden. Ripple data is kept.
// Pausing twice is a no-op.
func (m *Map) Pause() {
	if m.closed || m.paused {
		return
	}
	m.paused = true
	m.pulse.Pause()
	m.throttle.Cancel(m.clock.Now())
	m.log.Debug("paused")
}

// Resume redraws the last state and restarts the pulse if it was running.
// Resuming without a pause is a no-op.
func (m *Map) Resume() {
	if m.closed || !m.paused {
		return
	}
	m.paused = false
	m.pulse.Resume()
	m.log.Debug("resumed")
	m.Redraw()
}

// rehit recomputes the hover at the last pointer position and reports
// whether it changed.
func (m *Map) rehit() bool {
	next := hittest.NoHover()
	if m.hasPointer {
		f := m.Frame()
		next = hittest.Find(m.pointer, f.View, f.Canvas, f.Scene(), f.Layers())
	}
	changed := next != m.hover
	m.hover = next
	return changed
}
