package hittest

import (
	"testing"

	"github.com/litescript/ls-starmap/internal/universe"
	"github.com/litescript/ls-starmap/internal/viewport"
)

var allLayers = Layers{Journey: true, Systems: true, Stations: true}

func pt(x, y float64) viewport.LogicalPoint { return viewport.LogicalPoint{X: x, Y: y} }

func testScene() Scene {
	return Scene{
		Journey:  []universe.JourneyPoint{{Key: universe.PointKey{X: 1000, Y: 1000}, Date: "2024-01-01"}},
		Systems:  []universe.System{{Name: "Sol", Pos: pt(1000, 1000)}, {Name: "Vega", Pos: pt(200, 300)}},
		Stations: []universe.Station{{Name: "Outpost", Pos: pt(1500, 500)}},
	}
}

func TestFindJourneyBeatsSystem(t *testing.T) {
	c := viewport.NewCanvas(1180, 1000)
	v := viewport.New()
	s := testScene()

	p := v.ToPixel(pt(1000, 1000), c)
	p.X += 3

	got := Find(p, v, c, s, allLayers)
	if !got.Is(JourneyPoint, 0) {
		t.Errorf("Find = %+v, want journey point 0", got)
	}
}

func TestFindFallsThroughDisabledLayer(t *testing.T) {
	c := viewport.NewCanvas(1180, 1000)
	v := viewport.New()
	s := testScene()
	p := v.ToPixel(pt(1000, 1000), c)

	got := Find(p, v, c, s, Layers{Systems: true, Stations: true})
	if !got.Is(System, 0) {
		t.Errorf("Find with journey hidden = %+v, want system 0", got)
	}

	got = Find(p, v, c, s, Layers{Stations: true})
	if got.Active() {
		t.Errorf("Find with only stations = %+v, want none", got)
	}
}

func TestFindStation(t *testing.T) {
	c := viewport.NewCanvas(1180, 1000)
	v := viewport.New()
	s := testScene()

	p := v.ToPixel(pt(1500, 500), c)
	got := Find(p, v, c, s, allLayers)
	if !got.Is(Station, 0) {
		t.Errorf("Find = %+v, want station 0", got)
	}
}

func TestFindTolerance(t *testing.T) {
	c := viewport.NewCanvas(1180, 1000)
	v := viewport.New()
	s := Scene{Systems: []universe.System{{Name: "Vega", Pos: pt(200, 300)}}}
	base := v.ToPixel(pt(200, 300), c)

	tests := []struct {
		name string
		dx   float64
		want Kind
	}{
		{"on target", 0, System},
		{"inside", 9.9, System},
		{"at tolerance", 10, None},
		{"outside", 15, None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := viewport.PixelPoint{X: base.X + tt.dx, Y: base.Y}
			if got := Find(p, v, c, s, allLayers); got.Kind != tt.want {
				t.Errorf("Find(+%v) kind = %v, want %v", tt.dx, got.Kind, tt.want)
			}
		})
	}
}

func TestFindPicksNearest(t *testing.T) {
	c := viewport.NewCanvas(1180, 1000)
	v := viewport.Viewport{Zoom: 50, OffsetX: 990, OffsetY: 990}
	s := Scene{Systems: []universe.System{
		{Name: "far", Pos: pt(1000, 1000)},
		{Name: "near", Pos: pt(1000.2, 1000)},
	}}

	p := v.ToPixel(pt(1000.15, 1000), c)
	got := Find(p, v, c, s, allLayers)
	if !got.Is(System, 1) {
		t.Errorf("Find = %+v, want nearest system 1", got)
	}
}

func TestFindSkipsOffscreen(t *testing.T) {
	c := viewport.NewCanvas(1180, 1000)
	v := viewport.Viewport{Zoom: 4, OffsetX: 1000, OffsetY: 1000}
	s := Scene{Systems: []universe.System{{Name: "hidden", Pos: pt(999, 1200)}}}

	// The system sits just left of the drawable area.
	p := v.ToPixel(pt(999, 1200), c)
	if got := Find(p, v, c, s, allLayers); got.Active() {
		t.Errorf("Find = %+v, want none for culled entity", got)
	}
}

func TestFindEmptyScene(t *testing.T) {
	c := viewport.NewCanvas(1180, 1000)
	got := Find(viewport.PixelPoint{X: 100, Y: 100}, viewport.New(), c, Scene{}, allLayers)
	if got != NoHover() {
		t.Errorf("Find on empty scene = %+v, want NoHover", got)
	}
}
