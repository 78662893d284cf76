package render

import "image/color"

// Map colours.
var (
	ColorBackground = color.RGBA{0x18, 0x1c, 0x24, 255}
	ColorGrid       = color.RGBA{0x2c, 0x32, 0x42, 255}
	ColorText       = color.RGBA{0xe6, 0xea, 0xf3, 255}
	ColorLegendBg   = color.RGBA{0x23, 0x28, 0x3a, 255}
	ColorStarter    = color.RGBA{0x4c, 0xaf, 0x50, 255}
	ColorSystem     = color.RGBA{0xff, 0x52, 0x52, 255}
	ColorWhite      = color.RGBA{255, 255, 255, 255}

	// Tooltip backgrounds are translucent panel colour.
	ColorTooltipBg        = color.NRGBA{35, 40, 58, 230}
	ColorStationTooltipBg = color.NRGBA{35, 40, 58, 242}
)

// StationPalette assigns station colours by owner index.
var StationPalette = [10]color.RGBA{
	{79, 163, 255, 255},  // 0: blue
	{255, 82, 82, 255},   // 1: red
	{76, 175, 80, 255},   // 2: green
	{255, 193, 7, 255},   // 3: amber
	{156, 39, 176, 255},  // 4: purple
	{255, 152, 0, 255},   // 5: orange
	{233, 30, 99, 255},   // 6: pink
	{0, 188, 212, 255},   // 7: cyan
	{121, 85, 72, 255},   // 8: brown
	{158, 158, 158, 255}, // 9: grey
}

// StationColor returns the overlay colour for a station owner index.
func StationColor(owner int) color.RGBA {
	if owner < 0 {
		owner = -owner
	}
	return StationPalette[owner%len(StationPalette)]
}

// WithAlpha returns c at the given opacity in [0, 1].
func WithAlpha(c color.Color, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A)*alpha + 0.5)
	return n
}
