package render

import (
	"github.com/litescript/ls-starmap/internal/anim"
	"github.com/litescript/ls-starmap/internal/colormap"
	"github.com/litescript/ls-starmap/internal/hittest"
	"github.com/litescript/ls-starmap/internal/universe"
	"github.com/litescript/ls-starmap/internal/viewport"
)

// Frame is everything needed to draw one picture of the map.
type Frame struct {
	Canvas viewport.Canvas
	View   viewport.Viewport

	Systems  []universe.System
	Journey  []universe.JourneyPoint
	Stations []universe.Station

	Player    viewport.LogicalPoint
	HasPlayer bool
	Ripples   []anim.Ripple

	Hover   hittest.Hover
	Toggles universe.Toggles
	Colors  *colormap.DateCache
}

// Layers returns the hit-test gating matching the frame's toggles.
func (f Frame) Layers() hittest.Layers {
	return hittest.Layers{
		Journey:  f.Toggles.Journey,
		Systems:  f.Toggles.Systems,
		Stations: f.Toggles.Stations,
	}
}

// Scene returns the hoverable entities of the frame.
func (f Frame) Scene() hittest.Scene {
	return hittest.Scene{Journey: f.Journey, Systems: f.Systems, Stations: f.Stations}
}
