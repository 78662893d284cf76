// Package hittest resolves which map entity, if any, is under the pointer.
package hittest

import (
	"github.com/litescript/ls-starmap/internal/universe"
	"github.com/litescript/ls-starmap/internal/viewport"
)

// Tolerance is the pixel radius within which an entity counts as hovered.
const Tolerance = 10.0

// Kind identifies the entity class of a hover.
type Kind int

const (
	None Kind = iota
	JourneyPoint
	System
	Station
)

func (k Kind) String() string {
	switch k {
	case JourneyPoint:
		return "journey"
	case System:
		return "system"
	case Station:
		return "station"
	default:
		return "none"
	}
}

// Hover is the hovered entity: a kind plus an index into that kind's
// collection. Only one entity can be hovered at a time.
type Hover struct {
	Kind  Kind
	Index int
}

// NoHover is the empty hover state.
func NoHover() Hover { return Hover{Kind: None, Index: -1} }

func OnJourneyPoint(i int) Hover { return Hover{Kind: JourneyPoint, Index: i} }
func OnSystem(i int) Hover       { return Hover{Kind: System, Index: i} }
func OnStation(i int) Hover      { return Hover{Kind: Station, Index: i} }

// Active reports whether anything is hovered.
func (h Hover) Active() bool { return h.Kind != None }

// Is reports whether h points at entity i of kind k.
func (h Hover) Is(k Kind, i int) bool { return h.Kind == k && h.Index == i }

// Layers gates which collections take part in hit-testing.
type Layers struct {
	Journey  bool
	Systems  bool
	Stations bool
}

// Scene is the set of entities that can be hovered.
type Scene struct {
	Journey  []universe.JourneyPoint
	Systems  []universe.System
	Stations []universe.Station
}

// Find returns the entity under p. Collections are scanned in priority order
// (journey points, systems, stations) and the first collection with a
// candidate strictly within Tolerance wins; inside a collection the nearest
// candidate is chosen. Entities outside the drawable area are never hovered.
func Find(p viewport.PixelPoint, v viewport.Viewport, c viewport.Canvas, s Scene, layers Layers) Hover {
	if layers.Journey {
		if i := nearest(p, v, c, len(s.Journey), func(i int) viewport.LogicalPoint {
			return s.Journey[i].Pos()
		}); i >= 0 {
			return OnJourneyPoint(i)
		}
	}
	if layers.Systems {
		if i := nearest(p, v, c, len(s.Systems), func(i int) viewport.LogicalPoint {
			return s.Systems[i].Pos
		}); i >= 0 {
			return OnSystem(i)
		}
	}
	if layers.Stations {
		if i := nearest(p, v, c, len(s.Stations), func(i int) viewport.LogicalPoint {
			return s.Stations[i].Pos
		}); i >= 0 {
			return OnStation(i)
		}
	}
	return NoHover()
}

func nearest(p viewport.PixelPoint, v viewport.Viewport, c viewport.Canvas, n int, at func(int) viewport.LogicalPoint) int {
	best, bestDist := -1, Tolerance
	for i := 0; i < n; i++ {
		q := v.ToPixel(at(i), c)
		if !c.Contains(q) {
			continue
		}
		if d := p.Dist(q); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
