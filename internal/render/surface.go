// Package render draws a star-map frame onto an abstract Surface. Draw keeps
// no state between calls; everything it reads is in the Frame.
package render

import (
	"image/color"

	"github.com/litescript/ls-starmap/internal/viewport"
)

// Align is horizontal text alignment relative to the anchor point.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle describes how a string is drawn. The anchor's Y is the vertical
// centre of the text line.
type TextStyle struct {
	Size  float64
	Color color.Color
	Align Align
}

// Surface is the set of primitives the renderer needs. Coordinates are in
// canvas pixels.
type Surface interface {
	Size() (w, h float64)
	FillRect(r viewport.Rect, c color.Color)
	StrokeRect(r viewport.Rect, width float64, c color.Color)
	Line(a, b viewport.PixelPoint, width float64, c color.Color)
	FillCircle(center viewport.PixelPoint, radius float64, c color.Color)
	StrokeCircle(center viewport.PixelPoint, radius, width float64, c color.Color)
	Text(at viewport.PixelPoint, s string, style TextStyle)
	MeasureText(s string, size float64) float64
	// PushClip restricts drawing to r intersected with the current clip.
	PushClip(r viewport.Rect)
	PopClip()
}

// AlignedX returns the left edge of a string of width w anchored at x.
func AlignedX(x, w float64, a Align) float64 {
	switch a {
	case AlignCenter:
		return x - w/2
	case AlignRight:
		return x - w
	default:
		return x
	}
}

// Intersect returns the overlap of two rectangles, or a zero-area rectangle
// when they do not overlap.
func Intersect(a, b viewport.Rect) viewport.Rect {
	x0 := max(a.X, b.X)
	y0 := max(a.Y, b.Y)
	x1 := min(a.X+a.W, b.X+b.W)
	y1 := min(a.Y+a.H, b.Y+b.H)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return viewport.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
