package colormap

import (
	"math"
	"testing"

	"github.com/litescript/ls-starmap/internal/universe"
)

func journal(dates ...string) []universe.JourneyEntry {
	out := make([]universe.JourneyEntry, 0, len(dates))
	for _, d := range dates {
		ts, _ := universe.ParseDate(d)
		out = append(out, universe.JourneyEntry{Date: d, Time: ts})
	}
	return out
}

func TestColorForDateEndpoints(t *testing.T) {
	c := New(journal("2024-01-01", "2024-01-03", "2024-01-02"))

	oldest := c.ColorForDate("2024-01-01")
	if oldest.Hue != 240 {
		t.Errorf("oldest hue = %v, want 240", oldest.Hue)
	}
	if oldest.B < 0.99 || oldest.R > 0.01 {
		t.Errorf("oldest colour = %v, want blue", oldest.Color)
	}

	newest := c.ColorForDate("2024-01-03")
	if newest.Hue != 0 {
		t.Errorf("newest hue = %v, want 0", newest.Hue)
	}
	if newest.R < 0.99 || newest.B > 0.01 {
		t.Errorf("newest colour = %v, want red", newest.Color)
	}

	mid := c.ColorForDate("2024-01-02")
	if math.Abs(mid.Hue-120) > 1e-9 {
		t.Errorf("middle hue = %v, want 120", mid.Hue)
	}
	if got, want := mid.CSS(), "hsl(120, 100%, 50%)"; got != want {
		t.Errorf("CSS = %q, want %q", got, want)
	}
}

func TestColorForDateMemoizes(t *testing.T) {
	c := New(journal("2024-01-01", "2024-01-05"))
	c.ColorForDate("2024-01-02")
	c.ColorForDate("2024-01-02")
	c.ColorForDate("2024-01-03")
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestResetRecomputes(t *testing.T) {
	c := New(journal("2024-01-01", "2024-01-02", "2024-01-03"))
	before := c.ColorForDate("2024-01-02")
	if math.Abs(before.Hue-120) > 1e-9 {
		t.Fatalf("hue before reset = %v, want 120", before.Hue)
	}

	// The same date is now the oldest entry of the new journal.
	c.Reset(journal("2024-01-02", "2024-01-04"))
	if c.Len() != 0 {
		t.Errorf("Len after reset = %d, want 0", c.Len())
	}
	after := c.ColorForDate("2024-01-02")
	if after.Hue != 240 {
		t.Errorf("hue after reset = %v, want 240 (stale value served?)", after.Hue)
	}
}

func TestZeroDurationJourney(t *testing.T) {
	tests := []struct {
		name    string
		journal []universe.JourneyEntry
	}{
		{"single entry", journal("2024-06-01T10:00:00Z")},
		{"same timestamp", journal("2024-06-01T10:00:00Z", "2024-06-01T10:00:00Z")},
		{"no dated entries", journal("", "bogus")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.journal)
			got := c.ColorForDate("2024-06-01T10:00:00Z")
			if math.IsNaN(got.Hue) || math.IsInf(got.Hue, 0) {
				t.Fatalf("hue is not finite: %v", got.Hue)
			}
			if got.Hue != 0 {
				t.Errorf("hue = %v, want 0", got.Hue)
			}
		})
	}
}

func TestFallbackColor(t *testing.T) {
	c := New(journal("2024-01-01", "2024-01-02"))
	for _, d := range []string{"", "not a date"} {
		got := c.ColorForDate(d)
		if !got.Fallback {
			t.Errorf("ColorForDate(%q) = %+v, want fallback", d, got)
		}
		if got.CSS() != "#FF5252" {
			t.Errorf("fallback CSS = %q, want #FF5252", got.CSS())
		}
	}
	if c.Len() != 0 {
		t.Errorf("fallbacks should not be cached, Len = %d", c.Len())
	}
}

func TestLegend(t *testing.T) {
	c := New(journal("2024-01-01", "2024-01-06"))
	ticks := c.Legend(6)
	if len(ticks) != 6 {
		t.Fatalf("len(ticks) = %d, want 6", len(ticks))
	}
	if !ticks[0].Time.Equal(journal("2024-01-06")[0].Time) {
		t.Errorf("first tick = %v, want newest date", ticks[0].Time)
	}
	if !ticks[5].Time.Equal(journal("2024-01-01")[0].Time) {
		t.Errorf("last tick = %v, want oldest date", ticks[5].Time)
	}
	if ticks[0].Color.Hue != 0 || ticks[5].Color.Hue != 240 {
		t.Errorf("tick hues = %v..%v, want 0..240", ticks[0].Color.Hue, ticks[5].Color.Hue)
	}

	if got := New(nil).Legend(6); got != nil {
		t.Errorf("Legend on empty journal = %v, want nil", got)
	}
}
