package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/litescript/ls-starmap/internal/colormap"
	"github.com/litescript/ls-starmap/internal/hittest"
	"github.com/litescript/ls-starmap/internal/universe"
	"github.com/litescript/ls-starmap/internal/viewport"
)

// Layout constants, in canvas pixels.
const (
	GridStep        = 250.0
	LabelSize       = 12.0
	LegendLabelSize = 10.0
	HoverLabelSize  = 14.0
	TooltipSize     = 13.0
	TooltipLine     = 18.0

	SystemSize        = 5.0
	SystemHoverSize   = 7.0
	JourneyRadius     = 4.0
	JourneyHoverRad   = 7.0
	StationRadius     = 5.0
	StationBorder     = 3.0
	StationRangeAlpha = 0.3
	RippleWidth       = 2.0

	LegendOffset = 50.0
	LegendWidth  = 20.0
	LegendTicks  = 6
)

const (
	legendDateLayout  = "Jan 2, 2006"
	journeyDateLayout = "Jan 2, 2006, 15:04"
)

// Draw paints f onto s, back to front: background, grid, legend, ripples,
// systems, journey points, stations and the station tooltip.
func Draw(s Surface, f Frame) {
	c := f.Canvas
	s.FillRect(viewport.Rect{W: c.Width, H: c.Height}, ColorBackground)
	if c.DrawableWidth() <= 0 || c.DrawableHeight() <= 0 {
		return
	}

	drawGrid(s, f)
	if f.Toggles.Journey && f.Colors != nil {
		drawLegend(s, f)
	}
	if f.Toggles.Position && f.HasPlayer {
		drawRipples(s, f)
	}
	if f.Toggles.Systems {
		drawSystems(s, f)
	}
	if f.Toggles.Journey {
		drawJourney(s, f)
	}
	if f.Toggles.Stations {
		drawStations(s, f)
		drawStationTooltip(s, f)
	}
}

func drawGrid(s Surface, f Frame) {
	c, v := f.Canvas, f.View
	inner := c.Inner()
	xs, ys := v.GridLines(GridStep)

	label := TextStyle{Size: LabelSize, Color: ColorText, Align: AlignCenter}
	for _, x := range xs {
		px := v.ToPixel(viewport.LogicalPoint{X: x}, c).X
		if px < inner.X-0.5 || px > inner.X+inner.W+0.5 {
			continue
		}
		s.Line(viewport.PixelPoint{X: px, Y: inner.Y}, viewport.PixelPoint{X: px, Y: inner.Y + inner.H}, 1, ColorGrid)
		text := formatCoord(x)
		s.Text(viewport.PixelPoint{X: px, Y: inner.Y - 12}, text, label)
		s.Text(viewport.PixelPoint{X: px, Y: inner.Y + inner.H + 12}, text, label)
	}

	left := TextStyle{Size: LabelSize, Color: ColorText, Align: AlignRight}
	right := TextStyle{Size: LabelSize, Color: ColorText, Align: AlignLeft}
	for _, y := range ys {
		py := v.ToPixel(viewport.LogicalPoint{Y: y}, c).Y
		if py < inner.Y-0.5 || py > inner.Y+inner.H+0.5 {
			continue
		}
		s.Line(viewport.PixelPoint{X: inner.X, Y: py}, viewport.PixelPoint{X: inner.X + inner.W, Y: py}, 1, ColorGrid)
		text := formatCoord(y)
		s.Text(viewport.PixelPoint{X: inner.X - 5, Y: py}, text, left)
		s.Text(viewport.PixelPoint{X: inner.X + inner.W + 5, Y: py}, text, right)
	}
}

func drawLegend(s Surface, f Frame) {
	ticks := f.Colors.Legend(LegendTicks)
	if len(ticks) == 0 {
		return
	}
	c := f.Canvas
	inner := c.Inner()
	bar := viewport.Rect{X: c.Width - c.Padding.Right + LegendOffset, Y: inner.Y, W: LegendWidth, H: inner.H}

	s.FillRect(viewport.Rect{X: bar.X - 4, Y: bar.Y - 4, W: bar.W + 8, H: bar.H + 8}, ColorLegendBg)
	rows := int(math.Ceil(bar.H))
	for i := 0; i < rows; i++ {
		norm := 1 - float64(i)/bar.H
		s.FillRect(viewport.Rect{X: bar.X, Y: bar.Y + float64(i), W: bar.W, H: 1}, colormap.Gradient(norm))
	}

	style := TextStyle{Size: LegendLabelSize, Color: ColorText, Align: AlignLeft}
	for _, t := range ticks {
		y := bar.Y + t.Fraction*bar.H
		s.Line(viewport.PixelPoint{X: bar.X + bar.W, Y: y}, viewport.PixelPoint{X: bar.X + bar.W + 4, Y: y}, 1, ColorText)
		s.Text(viewport.PixelPoint{X: bar.X + bar.W + 6, Y: y}, t.Time.Format(legendDateLayout), style)
	}
}

func drawRipples(s Surface, f Frame) {
	p := f.View.ToPixel(f.Player, f.Canvas)
	if !f.Canvas.Contains(p) {
		return
	}
	for _, r := range f.Ripples {
		s.StrokeCircle(p, r.Size, RippleWidth, WithAlpha(ColorWhite, r.Opacity))
	}
}

func drawSystems(s Surface, f Frame) {
	label := TextStyle{Size: HoverLabelSize, Color: ColorText, Align: AlignCenter}
	for i, sys := range f.Systems {
		p := f.View.ToPixel(sys.Pos, f.Canvas)
		if !f.Canvas.Contains(p) {
			continue
		}
		hovered := f.Hover.Is(hittest.System, i)
		size := SystemSize
		if hovered {
			size = SystemHoverSize
		}
		fill := ColorSystem
		if sys.Starter {
			fill = ColorStarter
		}
		s.FillRect(viewport.Rect{X: p.X - size/2, Y: p.Y - size/2, W: size, H: size}, fill)
		if hovered {
			text := fmt.Sprintf("%s (%s, %s)", sys.Name, formatCoord(sys.Pos.X), formatCoord(sys.Pos.Y))
			s.Text(viewport.PixelPoint{X: p.X, Y: p.Y - 10 - HoverLabelSize/2}, text, label)
		}
	}
}

func drawJourney(s Surface, f Frame) {
	tooltip := -1
	for i, jp := range f.Journey {
		p := f.View.ToPixel(jp.Pos(), f.Canvas)
		if !f.Canvas.Contains(p) {
			continue
		}
		r := JourneyRadius
		if f.Hover.Is(hittest.JourneyPoint, i) {
			r = JourneyHoverRad
			tooltip = i
		}
		s.FillCircle(p, r, journeyColor(f.Colors, jp.Date))
	}
	if tooltip < 0 {
		return
	}

	jp := f.Journey[tooltip]
	p := f.View.ToPixel(jp.Pos(), f.Canvas)
	text := jp.Date
	if !jp.Time.IsZero() {
		text = jp.Time.Format(journeyDateLayout)
	}
	w := s.MeasureText(text, LabelSize) + 10
	box := clampBox(viewport.Rect{X: p.X + 10, Y: p.Y - 30, W: w, H: 20}, f.Canvas)
	s.FillRect(box, ColorTooltipBg)
	s.Text(viewport.PixelPoint{X: box.X + 5, Y: box.Y + box.H/2}, text, TextStyle{Size: LabelSize, Color: ColorText})
}

func journeyColor(cache *colormap.DateCache, date string) colormap.Color {
	if cache == nil {
		return colormap.Fallback
	}
	return cache.ColorForDate(date)
}

func drawStations(s Surface, f Frame) {
	s.PushClip(f.Canvas.Inner())
	defer s.PopClip()

	minX, maxX, minY, maxY := f.View.VisibleRange()
	for _, st := range f.Stations {
		reach := st.RangeLY()
		if st.Pos.X+reach < minX || st.Pos.X-reach > maxX || st.Pos.Y+reach < minY || st.Pos.Y-reach > maxY {
			continue
		}
		p := f.View.ToPixel(st.Pos, f.Canvas)
		col := StationColor(st.OwnerIndex)
		r := f.View.PixelRadius(reach, f.Canvas)
		s.FillCircle(p, r, WithAlpha(col, StationRangeAlpha))
		if !f.Canvas.Contains(p) {
			continue
		}
		s.FillCircle(p, StationRadius, col)
		s.StrokeCircle(p, StationRadius, StationBorder, ColorWhite)
	}
}

// StationTooltipLines returns the tooltip text for a station.
func StationTooltipLines(st universe.Station) []string {
	portal := "No"
	if st.SpacePortal {
		portal = "Yes"
	}
	return []string{
		st.Name,
		fmt.Sprintf("System: %s (%s, %s)", st.SystemName, formatCoord(st.Pos.X), formatCoord(st.Pos.Y)),
		fmt.Sprintf("Range level: %d", st.RangeLevel),
		fmt.Sprintf("Exploring level: %d", st.Exploring),
		fmt.Sprintf("Astronomy level: %d", st.Astronomy),
		fmt.Sprintf("Portal level: %d", st.Portal),
		"Space portal: " + portal,
	}
}

func drawStationTooltip(s Surface, f Frame) {
	if f.Hover.Kind != hittest.Station || f.Hover.Index < 0 || f.Hover.Index >= len(f.Stations) {
		return
	}
	st := f.Stations[f.Hover.Index]
	p := f.View.ToPixel(st.Pos, f.Canvas)
	lines := StationTooltipLines(st)

	w := 0.0
	for _, l := range lines {
		w = math.Max(w, s.MeasureText(l, TooltipSize))
	}
	w += 20
	h := float64(len(lines))*TooltipLine + 10

	box := clampBox(viewport.Rect{X: p.X + 15, Y: p.Y - h/2, W: w, H: h}, f.Canvas)
	col := StationColor(st.OwnerIndex)
	s.FillRect(box, ColorStationTooltipBg)
	s.StrokeRect(box, 1, col)

	style := TextStyle{Size: TooltipSize, Color: ColorText}
	for i, l := range lines {
		y := box.Y + 5 + TooltipLine*(float64(i)+0.5)
		s.Text(viewport.PixelPoint{X: box.X + 10, Y: y}, l, style)
	}
}

// clampBox keeps a tooltip inside the canvas where it fits.
func clampBox(r viewport.Rect, c viewport.Canvas) viewport.Rect {
	if r.X+r.W > c.Width {
		r.X = c.Width - r.W
	}
	if r.Y+r.H > c.Height {
		r.Y = c.Height - r.H
	}
	r.X = math.Max(0, r.X)
	r.Y = math.Max(0, r.Y)
	return r
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
