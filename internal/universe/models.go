// Package universe provides the star-map data model: discovered systems, the
// player's journal, squadron space stations and the values derived from them.
package universe

import (
	"time"

	"github.com/litescript/ls-starmap/internal/viewport"
)

// System is a publicly discovered star system.
type System struct {
	Name    string
	Pos     viewport.LogicalPoint
	Starter bool // starter systems are where new players spawn
}

// JourneyEntry is one visit in the player's journal, in chronological order
// of the feed.
type JourneyEntry struct {
	Pos     viewport.LogicalPoint
	Date    string    // raw date as delivered, the colour cache key
	Time    time.Time // parsed Date; zero if it could not be parsed
	Starter bool
}

// PointKey identifies a journey location.
type PointKey struct {
	X float64
	Y float64
}

// KeyOf returns the structured key for a logical point.
func KeyOf(p viewport.LogicalPoint) PointKey {
	return PointKey{X: p.X, Y: p.Y}
}

// Point returns the logical point for the key.
func (k PointKey) Point() viewport.LogicalPoint {
	return viewport.LogicalPoint{X: k.X, Y: k.Y}
}

// JourneyPoint is a distinct visited location tagged with its latest visit.
type JourneyPoint struct {
	Key  PointKey
	Date string
	Time time.Time
}

// Pos returns the logical position of the point.
func (p JourneyPoint) Pos() viewport.LogicalPoint {
	return p.Key.Point()
}

// Station is a squadron space station. Its overlay colour is chosen by
// OwnerIndex, its position in the loaded station list.
type Station struct {
	Name        string
	SystemName  string
	Pos         viewport.LogicalPoint
	RangeLevel  int
	Exploring   int
	Astronomy   int
	Portal      int
	SpacePortal bool
	OwnerIndex  int
}

// RangeLY is the influence radius in logical units (light years).
func (s Station) RangeLY() float64 {
	return 10 + float64(s.RangeLevel)
}

// Dataset bundles everything one load delivers.
type Dataset struct {
	Systems  []System
	Journal  []JourneyEntry
	Stations []Station
}

// Empty reports whether the dataset carries nothing to draw.
func (d Dataset) Empty() bool {
	return len(d.Systems) == 0 && len(d.Journal) == 0 && len(d.Stations) == 0
}
