// Package colormap colours journey points by the age of their visit: blue for
// the oldest date in the journal, red for the newest.
package colormap

import (
	"fmt"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-starmap/internal/universe"
)

// MaxHue is the hue of the oldest visit, in degrees.
const MaxHue = 240.0

// Fallback is used for entries without a usable date.
var Fallback = Color{
	Color:    colorful.Color{R: 1, G: 82.0 / 255, B: 82.0 / 255},
	Hue:      0,
	Fallback: true,
}

// Color is a resolved journey colour.
type Color struct {
	colorful.Color
	Hue      float64
	Fallback bool
}

// HueColor returns the fully saturated colour for a hue in degrees.
func HueColor(hue float64) Color {
	return Color{Color: colorful.Hsl(hue, 1, 0.5), Hue: hue}
}

// Gradient maps a normalized age, 0 oldest and 1 newest, onto the colour
// scale. Out-of-range input is clamped.
func Gradient(norm float64) Color {
	if math.IsNaN(norm) {
		norm = 1
	}
	norm = math.Max(0, math.Min(1, norm))
	return HueColor((1 - norm) * MaxHue)
}

// CSS renders the colour the way a canvas style string would.
func (c Color) CSS() string {
	if c.Fallback {
		return "#FF5252"
	}
	return fmt.Sprintf("hsl(%g, 100%%, 50%%)", c.Hue)
}

// DateCache memoizes date → colour for one journal. The time range is scanned
// on the first lookup after Reset.
type DateCache struct {
	journal []universe.JourneyEntry
	scanned bool
	hasSpan bool
	min     time.Time
	max     time.Time
	colors  map[string]Color
}

// New returns a cache bound to journal.
func New(journal []universe.JourneyEntry) *DateCache {
	c := &DateCache{}
	c.Reset(journal)
	return c
}

// Reset binds the cache to a new journal and drops every cached colour.
func (c *DateCache) Reset(journal []universe.JourneyEntry) {
	c.journal = journal
	c.scanned = false
	c.hasSpan = false
	c.min, c.max = time.Time{}, time.Time{}
	c.colors = make(map[string]Color)
}

// Len reports how many dates are cached.
func (c *DateCache) Len() int {
	return len(c.colors)
}

func (c *DateCache) scan() {
	if c.scanned {
		return
	}
	c.min, c.max, c.hasSpan = universe.TimeRange(c.journal)
	c.scanned = true
}

// ColorForDate returns the colour for a raw journal date. A journal spanning
// zero time maps every date to the newest colour.
func (c *DateCache) ColorForDate(date string) Color {
	if date == "" {
		return Fallback
	}
	if col, ok := c.colors[date]; ok {
		return col
	}

	ts, err := universe.ParseDate(date)
	if err != nil {
		return Fallback
	}

	c.scan()
	col := Gradient(c.normalize(ts))
	if c.colors == nil {
		c.colors = make(map[string]Color)
	}
	c.colors[date] = col
	return col
}

func (c *DateCache) normalize(ts time.Time) float64 {
	if !c.hasSpan {
		return 1
	}
	span := c.max.Sub(c.min)
	if span <= 0 {
		return 1
	}
	return float64(ts.Sub(c.min)) / float64(span)
}

// Tick is one colorbar label.
type Tick struct {
	Fraction float64 // 0 at the top of the bar, 1 at the bottom
	Time     time.Time
	Color    Color
}

// Legend returns n evenly spaced colorbar ticks, newest first. It returns nil
// when the journal has no dated entries.
func (c *DateCache) Legend(n int) []Tick {
	c.scan()
	if !c.hasSpan || n <= 0 {
		return nil
	}
	if n == 1 {
		return []Tick{{Fraction: 0, Time: c.max, Color: Gradient(1)}}
	}

	span := c.max.Sub(c.min)
	ticks := make([]Tick, 0, n)
	for i := 0; i < n; i++ {
		f := float64(i) / float64(n-1)
		ticks = append(ticks, Tick{
			Fraction: f,
			Time:     c.max.Add(-time.Duration(f * float64(span))),
			Color:    Gradient(1 - f),
		})
	}
	return ticks
}
