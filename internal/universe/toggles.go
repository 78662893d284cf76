package universe

import "fmt"

// Layer is one independently toggleable overlay.
type Layer int

const (
	LayerSystems Layer = iota
	LayerPosition
	LayerJourney
	LayerStations
)

// Layers lists every layer in key order.
var Layers = []Layer{LayerSystems, LayerPosition, LayerJourney, LayerStations}

func (l Layer) String() string {
	switch l {
	case LayerSystems:
		return "systems"
	case LayerPosition:
		return "position"
	case LayerJourney:
		return "journey"
	case LayerStations:
		return "stations"
	default:
		return fmt.Sprintf("layer(%d)", int(l))
	}
}

// Toggles holds the visibility of each layer.
type Toggles struct {
	Systems  bool
	Position bool
	Journey  bool
	Stations bool
}

// AllVisible shows every layer.
func AllVisible() Toggles {
	return Toggles{Systems: true, Position: true, Journey: true, Stations: true}
}

// Get reports whether l is visible.
func (t Toggles) Get(l Layer) bool {
	switch l {
	case LayerSystems:
		return t.Systems
	case LayerPosition:
		return t.Position
	case LayerJourney:
		return t.Journey
	case LayerStations:
		return t.Stations
	}
	return false
}

// With returns a copy with l set to on.
func (t Toggles) With(l Layer, on bool) Toggles {
	switch l {
	case LayerSystems:
		t.Systems = on
	case LayerPosition:
		t.Position = on
	case LayerJourney:
		t.Journey = on
	case LayerStations:
		t.Stations = on
	}
	return t
}
