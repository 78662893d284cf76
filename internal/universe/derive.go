package universe

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-starmap/internal/viewport"
)

// DistanceScale converts logical units to light years.
const DistanceScale = 10.0

// ErrNoJourney is returned when a journal has no entries.
var ErrNoJourney = errors.New("journal is empty")

// JourneyPoints collapses the journal to one point per distinct location,
// in order of first appearance, each carrying the most recent date seen for
// that location. Entries without a parsed date only win over other undated
// entries, and then the later one in feed order does.
func JourneyPoints(entries []JourneyEntry) []JourneyPoint {
	if len(entries) == 0 {
		return nil
	}

	index := make(map[PointKey]int, len(entries))
	points := make([]JourneyPoint, 0, len(entries))
	for _, e := range entries {
		key := KeyOf(e.Pos)
		if i, ok := index[key]; ok {
			if newer(e.Time, points[i].Time) {
				points[i].Date = e.Date
				points[i].Time = e.Time
			}
			continue
		}
		index[key] = len(points)
		points = append(points, JourneyPoint{Key: key, Date: e.Date, Time: e.Time})
	}
	return points
}

// newer reports whether a visit at t replaces one at prev.
func newer(t, prev time.Time) bool {
	switch {
	case t.IsZero():
		return prev.IsZero()
	case prev.IsZero():
		return true
	default:
		return t.After(prev)
	}
}

// TravelledDistance sums 10·√(dx²+dy²) over consecutive entries where
// neither end is a starter system.
func TravelledDistance(entries []JourneyEntry) float64 {
	total := 0.0
	for i := 1; i < len(entries); i++ {
		prev, curr := entries[i-1], entries[i]
		if prev.Starter || curr.Starter {
			continue
		}
		d := math.Hypot(curr.Pos.X-prev.Pos.X, curr.Pos.Y-prev.Pos.Y)
		if math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}
		total += DistanceScale * d
	}
	return total
}

// PlayerPosition returns the position of the first journal entry, which the
// feed delivers as the current location.
func PlayerPosition(entries []JourneyEntry) (viewport.LogicalPoint, error) {
	if len(entries) == 0 {
		return viewport.LogicalPoint{}, ErrNoJourney
	}
	return entries[0].Pos, nil
}

// TimeRange returns the earliest and latest parsed timestamps in the
// journal. ok is false when no entry has a valid date.
func TimeRange(entries []JourneyEntry) (min, max time.Time, ok bool) {
	for _, e := range entries {
		if e.Time.IsZero() {
			continue
		}
		if !ok || e.Time.Before(min) {
			min = e.Time
		}
		if !ok || e.Time.After(max) {
			max = e.Time
		}
		ok = true
	}
	return min, max, ok
}

// Stats holds the derived figures shown next to the map.
type Stats struct {
	SystemCount    int
	JourneyEntries int
	JourneyPoints  int
	StationCount   int
	DistanceLY     float64
}

// ComputeStats derives the summary figures for a dataset.
func ComputeStats(d Dataset) Stats {
	return Stats{
		SystemCount:    len(d.Systems),
		JourneyEntries: len(d.Journal),
		JourneyPoints:  len(JourneyPoints(d.Journal)),
		StationCount:   len(d.Stations),
		DistanceLY:     TravelledDistance(d.Journal),
	}
}

// SystemsSummary is the discovered-systems line.
func (s Stats) SystemsSummary() string {
	return fmt.Sprintf("There are currently %d publicly discovered systems", s.SystemCount)
}

// DistanceSummary is the travelled-distance line.
func (s Stats) DistanceSummary() string {
	if s.JourneyEntries == 0 {
		return "You currently have travelled 0 ly"
	}
	return fmt.Sprintf("You currently have travelled %.2f ly", s.DistanceLY)
}
