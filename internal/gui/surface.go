package gui

import (
	"bytes"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/litescript/ls-starmap/internal/render"
	"github.com/litescript/ls-starmap/internal/viewport"
)

var fontSource *text.GoTextFaceSource

func init() {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("load goregular: %v", err)
	}
	fontSource = src
}

// Surface draws onto an ebiten image. Clipping draws into sub-images, which
// keep the parent's coordinate space.
type Surface struct {
	root  *ebiten.Image
	stack []*ebiten.Image
	faces map[float64]*text.GoTextFace
}

// NewSurface wraps dst.
func NewSurface(dst *ebiten.Image) *Surface {
	return &Surface{root: dst, faces: make(map[float64]*text.GoTextFace)}
}

func (s *Surface) target() *ebiten.Image {
	if n := len(s.stack); n > 0 {
		return s.stack[n-1]
	}
	return s.root
}

func (s *Surface) Size() (float64, float64) {
	b := s.root.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *Surface) PushClip(r viewport.Rect) {
	cur := s.target()
	rect := image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.W)), int(math.Ceil(r.Y+r.H)),
	).Intersect(cur.Bounds())
	s.stack = append(s.stack, cur.SubImage(rect).(*ebiten.Image))
}

func (s *Surface) PopClip() {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

func (s *Surface) FillRect(r viewport.Rect, c color.Color) {
	vector.DrawFilledRect(s.target(), float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func (s *Surface) StrokeRect(r viewport.Rect, width float64, c color.Color) {
	vector.StrokeRect(s.target(), float32(r.X), float32(r.Y), float32(r.W), float32(r.H), float32(width), c, false)
}

func (s *Surface) Line(a, b viewport.PixelPoint, width float64, c color.Color) {
	vector.StrokeLine(s.target(), float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c, true)
}

func (s *Surface) FillCircle(p viewport.PixelPoint, radius float64, c color.Color) {
	vector.DrawFilledCircle(s.target(), float32(p.X), float32(p.Y), float32(radius), c, true)
}

func (s *Surface) StrokeCircle(p viewport.PixelPoint, radius, width float64, c color.Color) {
	vector.StrokeCircle(s.target(), float32(p.X), float32(p.Y), float32(radius), float32(width), c, true)
}

func (s *Surface) face(size float64) *text.GoTextFace {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: fontSource, Size: size}
	s.faces[size] = f
	return f
}

func (s *Surface) MeasureText(str string, size float64) float64 {
	w, _ := text.Measure(str, s.face(size), 0)
	return w
}

func (s *Surface) Text(at viewport.PixelPoint, str string, style render.TextStyle) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(at.X, at.Y)
	op.ColorScale.ScaleWithColor(style.Color)
	op.SecondaryAlign = text.AlignCenter
	switch style.Align {
	case render.AlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case render.AlignRight:
		op.PrimaryAlign = text.AlignEnd
	default:
		op.PrimaryAlign = text.AlignStart
	}
	text.Draw(s.target(), str, s.face(style.Size), op)
}
