package universe

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-starmap/internal/viewport"
)

// JSON structures matching the public API payloads.

type jsonSystem struct {
	Name        string  `json:"name"`
	CoordinateX float64 `json:"coordinate_x"`
	CoordinateY float64 `json:"coordinate_y"`
	Starter     bool    `json:"starter"`
}

type jsonSystems struct {
	Systems []jsonSystem `json:"systems"`
}

type jsonJournalEntry struct {
	CoordinateX float64 `json:"coordinate_x"`
	CoordinateY float64 `json:"coordinate_y"`
	Date        string  `json:"date"`
	Starter     bool    `json:"starter"`
}

type jsonJournal struct {
	FullJournal []jsonJournalEntry `json:"fullJournal"`
}

type jsonStation struct {
	Name   string `json:"name"`
	System struct {
		Name        string  `json:"name"`
		CoordinateX float64 `json:"coordinate_x"`
		CoordinateY float64 `json:"coordinate_y"`
	} `json:"system"`
	Range       *int `json:"range"`
	Exploring   *int `json:"exploring"`
	Astronomy   *int `json:"astronomy"`
	Portal      *int `json:"portal"`
	SpacePortal bool `json:"space_portal"`
}

type jsonUser struct {
	Data struct {
		SquadronSpaceStations []jsonStation `json:"squadronSpaceStations"`
	} `json:"data"`
}

// ParseSystems decodes a `{"systems": [...]}` payload.
func ParseSystems(data []byte) ([]System, error) {
	var raw jsonSystems
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal systems: %w", err)
	}

	systems := make([]System, 0, len(raw.Systems))
	for _, s := range raw.Systems {
		systems = append(systems, System{
			Name:    s.Name,
			Pos:     viewport.LogicalPoint{X: s.CoordinateX, Y: s.CoordinateY},
			Starter: s.Starter,
		})
	}
	return systems, nil
}

// ParseJournal decodes a `{"fullJournal": [...]}` payload. Entries whose date
// cannot be parsed are kept with a zero Time.
func ParseJournal(data []byte) ([]JourneyEntry, error) {
	var raw jsonJournal
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal journal: %w", err)
	}

	entries := make([]JourneyEntry, 0, len(raw.FullJournal))
	for _, e := range raw.FullJournal {
		ts, _ := ParseDate(e.Date)
		entries = append(entries, JourneyEntry{
			Pos:     viewport.LogicalPoint{X: e.CoordinateX, Y: e.CoordinateY},
			Date:    e.Date,
			Time:    ts,
			Starter: e.Starter,
		})
	}
	return entries, nil
}

// ParseUser decodes the squadron space stations from a user payload. A
// payload without stations yields an empty list.
func ParseUser(data []byte) ([]Station, error) {
	var raw jsonUser
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}

	stations := make([]Station, 0, len(raw.Data.SquadronSpaceStations))
	for i, s := range raw.Data.SquadronSpaceStations {
		stations = append(stations, Station{
			Name:        s.Name,
			SystemName:  s.System.Name,
			Pos:         viewport.LogicalPoint{X: s.System.CoordinateX, Y: s.System.CoordinateY},
			RangeLevel:  intOrZero(s.Range),
			Exploring:   intOrZero(s.Exploring),
			Astronomy:   intOrZero(s.Astronomy),
			Portal:      intOrZero(s.Portal),
			SpacePortal: s.SpacePortal,
			OwnerIndex:  i,
		})
	}
	return stations, nil
}

// ParsePosition decodes a `{"coordinate_x": .., "coordinate_y": ..}` object.
func ParsePosition(data []byte) (viewport.LogicalPoint, error) {
	var raw struct {
		CoordinateX *float64 `json:"coordinate_x"`
		CoordinateY *float64 `json:"coordinate_y"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return viewport.LogicalPoint{}, fmt.Errorf("unmarshal position: %w", err)
	}
	if raw.CoordinateX == nil || raw.CoordinateY == nil {
		return viewport.LogicalPoint{}, fmt.Errorf("position missing coordinate")
	}
	return viewport.LogicalPoint{X: *raw.CoordinateX, Y: *raw.CoordinateY}, nil
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// dateLayouts are the formats journal dates are accepted in.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a journal date. Dates without a zone are taken as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
