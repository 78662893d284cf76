// Package raster implements render.Surface over an in-memory RGBA image, for
// PNG snapshots and pixel tests.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/litescript/ls-starmap/internal/render"
	"github.com/litescript/ls-starmap/internal/viewport"
)

// circleSegments is the polygon resolution used for circles.
const circleSegments = 64

var goRegular *sfnt.Font

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(err) // embedded font
	}
	goRegular = f
}

// Surface draws onto an *image.RGBA.
type Surface struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	clips []image.Rectangle
	faces map[float64]font.Face
}

// New returns a surface of the given pixel size.
func New(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Surface{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		z:     vector.NewRasterizer(width, height),
		faces: make(map[float64]font.Face),
	}
}

// Image returns the backing image.
func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Size() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *Surface) clip() image.Rectangle {
	if len(s.clips) == 0 {
		return s.img.Bounds()
	}
	return s.clips[len(s.clips)-1]
}

func (s *Surface) PushClip(r viewport.Rect) {
	s.clips = append(s.clips, toRect(r).Intersect(s.clip()))
}

func (s *Surface) PopClip() {
	if len(s.clips) > 0 {
		s.clips = s.clips[:len(s.clips)-1]
	}
}

func toRect(r viewport.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.X+r.W)), int(math.Round(r.Y+r.H)),
	)
}

func (s *Surface) FillRect(r viewport.Rect, c color.Color) {
	dst := toRect(r).Intersect(s.clip())
	if dst.Empty() {
		return
	}
	draw.Draw(s.img, dst, image.NewUniform(c), image.Point{}, draw.Over)
}

func (s *Surface) StrokeRect(r viewport.Rect, width float64, c color.Color) {
	half := width / 2
	s.FillRect(viewport.Rect{X: r.X - half, Y: r.Y - half, W: r.W + width, H: width}, c)
	s.FillRect(viewport.Rect{X: r.X - half, Y: r.Y + r.H - half, W: r.W + width, H: width}, c)
	s.FillRect(viewport.Rect{X: r.X - half, Y: r.Y + half, W: width, H: r.H - width}, c)
	s.FillRect(viewport.Rect{X: r.X + r.W - half, Y: r.Y + half, W: width, H: r.H - width}, c)
}

// fill rasterizes the path built by build, clipped to the current clip.
func (s *Surface) fill(c color.Color, build func(z *vector.Rasterizer, ox, oy float32)) {
	clip := s.clip()
	if clip.Empty() {
		return
	}
	s.z.Reset(clip.Dx(), clip.Dy())
	s.z.DrawOp = draw.Over
	build(s.z, float32(clip.Min.X), float32(clip.Min.Y))
	s.z.Draw(s.img, clip, image.NewUniform(c), image.Point{})
}

func circlePath(z *vector.Rasterizer, cx, cy, r float32, reverse bool) {
	for i := 0; i <= circleSegments; i++ {
		k := i
		if reverse {
			k = circleSegments - i
		}
		a := 2 * math.Pi * float64(k) / circleSegments
		x := cx + r*float32(math.Cos(a))
		y := cy + r*float32(math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

func (s *Surface) FillCircle(p viewport.PixelPoint, radius float64, c color.Color) {
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return
	}
	s.fill(c, func(z *vector.Rasterizer, ox, oy float32) {
		circlePath(z, float32(p.X)-ox, float32(p.Y)-oy, float32(radius), false)
	})
}

func (s *Surface) StrokeCircle(p viewport.PixelPoint, radius, width float64, c color.Color) {
	if radius <= 0 || width <= 0 || math.IsNaN(radius) {
		return
	}
	outer := radius + width/2
	inner := math.Max(0, radius-width/2)
	s.fill(c, func(z *vector.Rasterizer, ox, oy float32) {
		cx, cy := float32(p.X)-ox, float32(p.Y)-oy
		circlePath(z, cx, cy, float32(outer), false)
		if inner > 0 {
			circlePath(z, cx, cy, float32(inner), true)
		}
	})
}

func (s *Surface) Line(a, b viewport.PixelPoint, width float64, c color.Color) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	s.fill(c, func(z *vector.Rasterizer, ox, oy float32) {
		z.MoveTo(float32(a.X+nx)-ox, float32(a.Y+ny)-oy)
		z.LineTo(float32(b.X+nx)-ox, float32(b.Y+ny)-oy)
		z.LineTo(float32(b.X-nx)-ox, float32(b.Y-ny)-oy)
		z.LineTo(float32(a.X-nx)-ox, float32(a.Y-ny)-oy)
		z.ClosePath()
	})
}

func (s *Surface) face(size float64) font.Face {
	if size <= 0 {
		size = render.LabelSize
	}
	if f, ok := s.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(goRegular, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		panic(err) // embedded font
	}
	s.faces[size] = f
	return f
}

func (s *Surface) MeasureText(str string, size float64) float64 {
	adv := font.MeasureString(s.face(size), str)
	return float64(adv) / 64
}

func (s *Surface) Text(at viewport.PixelPoint, str string, style render.TextStyle) {
	face := s.face(style.Size)
	m := face.Metrics()
	w := s.MeasureText(str, style.Size)
	x := render.AlignedX(at.X, w, style.Align)
	baseline := at.Y + float64(m.Ascent-m.Descent)/64/2

	dst, ok := s.img.SubImage(s.clip()).(*image.RGBA)
	if !ok {
		return
	}
	col := style.Color
	if col == nil {
		col = render.ColorText
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(baseline * 64)},
	}
	d.DrawString(str)
}

// WritePNG encodes the surface as PNG.
func (s *Surface) WritePNG(w io.Writer) error {
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the surface to path.
func (s *Surface) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RenderFrame draws f onto a new surface sized to its canvas.
func RenderFrame(f render.Frame) *Surface {
	s := New(int(math.Ceil(f.Canvas.Width)), int(math.Ceil(f.Canvas.Height)))
	render.Draw(s, f)
	return s
}
