// Package viewport maps the fixed logical star-map space to pixel space under
// pan and zoom, and back again for pointer hit-testing.
package viewport

import "math"

const (
	// WorldSize is the extent of the logical space on each axis.
	WorldSize = 2000.0

	// MinZoom shows the whole logical space. Zooming out below it snaps
	// back to the origin.
	MinZoom = 1.0
	// MaxZoom caps how far the view can be magnified.
	MaxZoom = 100.0

	// ZoomInFactor and ZoomOutFactor are applied per wheel event.
	ZoomInFactor  = 1.1
	ZoomOutFactor = 0.9

	// AspectRatio is canvas width over canvas height.
	AspectRatio = 1.18
)

// LogicalPoint is a position in logical space, nominally [0, WorldSize]².
// Y increases upward.
type LogicalPoint struct {
	X float64
	Y float64
}

// PixelPoint is a position on the canvas. Y increases downward.
type PixelPoint struct {
	X float64
	Y float64
}

// Dist returns the Euclidean distance between two pixel points.
func (p PixelPoint) Dist(q PixelPoint) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Padding reserves canvas margins for axis labels and legends.
type Padding struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// DefaultPadding leaves room for coordinate labels on the left and the date
// colorbar on the right.
func DefaultPadding() Padding {
	return Padding{Left: 40, Right: 140, Top: 25, Bottom: 25}
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p PixelPoint) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Canvas describes the pixel surface the map is drawn on.
type Canvas struct {
	Width   float64
	Height  float64
	Padding Padding
}

// NewCanvas returns a canvas of the given size with default padding.
func NewCanvas(width, height float64) Canvas {
	return Canvas{Width: width, Height: height, Padding: DefaultPadding()}
}

// DrawableWidth is the horizontal extent left after padding.
func (c Canvas) DrawableWidth() float64 {
	return c.Width - c.Padding.Left - c.Padding.Right
}

// DrawableHeight is the vertical extent left after padding.
func (c Canvas) DrawableHeight() float64 {
	return c.Height - c.Padding.Top - c.Padding.Bottom
}

// Inner returns the drawable rectangle inside the padding.
func (c Canvas) Inner() Rect {
	return Rect{
		X: c.Padding.Left,
		Y: c.Padding.Top,
		W: c.DrawableWidth(),
		H: c.DrawableHeight(),
	}
}

// Contains reports whether p falls within the drawable rectangle.
func (c Canvas) Contains(p PixelPoint) bool {
	return c.Inner().Contains(p)
}

// FitCanvas sizes a canvas to the largest AspectRatio rectangle that fits
// inside the container.
func FitCanvas(containerW, containerH float64, padding Padding) Canvas {
	if containerW < 0 {
		containerW = 0
	}
	if containerH < 0 {
		containerH = 0
	}
	height := math.Min(containerW/AspectRatio, containerH)
	return Canvas{
		Width:   height * AspectRatio,
		Height:  height,
		Padding: padding,
	}
}

// Viewport is the pan/zoom state. OffsetX/OffsetY is the logical coordinate
// of the bottom-left visible corner.
type Viewport struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64
}

// New returns the fully zoomed-out viewport.
func New() Viewport {
	return Viewport{Zoom: MinZoom}
}

// VisibleExtent is the logical length visible on each axis.
func (v Viewport) VisibleExtent() float64 {
	return WorldSize / v.zoom()
}

// VisibleRange returns the logical window currently on screen.
func (v Viewport) VisibleRange() (minX, maxX, minY, maxY float64) {
	extent := v.VisibleExtent()
	return v.OffsetX, v.OffsetX + extent, v.OffsetY, v.OffsetY + extent
}

// MaxOffset is the largest offset that keeps the visible window in bounds.
func (v Viewport) MaxOffset() float64 {
	return WorldSize * (1 - 1/v.zoom())
}

func (v Viewport) zoom() float64 {
	if v.Zoom < MinZoom || math.IsNaN(v.Zoom) {
		return MinZoom
	}
	return v.Zoom
}

// ToPixel maps a logical point onto the canvas.
func (v Viewport) ToPixel(p LogicalPoint, c Canvas) PixelPoint {
	z := v.zoom()
	return PixelPoint{
		X: c.Padding.Left + ((p.X-v.OffsetX)/WorldSize)*c.DrawableWidth()*z,
		Y: c.Height - c.Padding.Bottom - ((p.Y-v.OffsetY)/WorldSize)*c.DrawableHeight()*z,
	}
}

// ToLogical is the inverse of ToPixel. On a canvas with no drawable extent
// the offset is returned for that axis.
func (v Viewport) ToLogical(p PixelPoint, c Canvas) LogicalPoint {
	z := v.zoom()
	out := LogicalPoint{X: v.OffsetX, Y: v.OffsetY}
	if w := c.DrawableWidth() * z; w > 0 {
		out.X += ((p.X - c.Padding.Left) / w) * WorldSize
	}
	if h := c.DrawableHeight() * z; h > 0 {
		out.Y += ((c.Height - p.Y - c.Padding.Bottom) / h) * WorldSize
	}
	return out
}

// PixelRadius converts a logical length to pixels along the x axis.
func (v Viewport) PixelRadius(length float64, c Canvas) float64 {
	return (length / WorldSize) * c.DrawableWidth() * v.zoom()
}

// Pan moves the view by a pixel drag delta. Dragging right moves the view
// left; dragging down moves it up because the y axis is flipped.
func (v Viewport) Pan(dx, dy float64, c Canvas) Viewport {
	z := v.zoom()
	if w := c.DrawableWidth() * z; w > 0 {
		v.OffsetX -= dx / w * WorldSize
	}
	if h := c.DrawableHeight() * z; h > 0 {
		v.OffsetY += dy / h * WorldSize
	}
	return v.Clamp()
}

// ZoomAt zooms around the pixel under the pointer. A positive wheel delta
// (wheel away) zooms out, a negative one zooms in, zero does nothing.
func (v Viewport) ZoomAt(p PixelPoint, wheelDelta float64, c Canvas) Viewport {
	if wheelDelta == 0 || math.IsNaN(wheelDelta) {
		return v
	}
	factor := ZoomInFactor
	if wheelDelta > 0 {
		factor = ZoomOutFactor
	}

	before := v.ToLogical(p, c)
	next := v.zoom() * factor
	if next < MinZoom {
		return New()
	}
	v.Zoom = math.Min(MaxZoom, next)

	after := v.ToLogical(p, c)
	v.OffsetX += before.X - after.X
	v.OffsetY += before.Y - after.Y
	return v.Clamp()
}

// Clamp restores the invariants: zoom within [MinZoom, MaxZoom] and both
// offsets within [0, MaxOffset]. At MinZoom the offset is forced to the
// origin.
func (v Viewport) Clamp() Viewport {
	v.Zoom = math.Min(MaxZoom, v.zoom())
	maxOffset := v.MaxOffset()
	v.OffsetX = clamp(v.OffsetX, 0, maxOffset)
	v.OffsetY = clamp(v.OffsetY, 0, maxOffset)
	return v
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// GridLines returns the logical positions of grid lines at the given step
// that intersect the visible window on the x and y axes, clipped to the
// logical bounds.
func (v Viewport) GridLines(step float64) (xs, ys []float64) {
	if step <= 0 {
		return nil, nil
	}
	extent := v.VisibleExtent()
	lines := func(offset float64) []float64 {
		start := math.Max(0, math.Floor(offset/step)*step)
		end := math.Min(WorldSize, math.Ceil((offset+extent)/step)*step)
		var out []float64
		for i := start; i <= end; i += step {
			out = append(out, i)
		}
		return out
	}
	return lines(v.OffsetX), lines(v.OffsetY)
}
