package tui

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-starmap/internal/render"
	"github.com/litescript/ls-starmap/internal/viewport"
)

// One terminal cell covers this many canvas pixels.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Circles smaller than a cell are drawn as a single glyph.
const glyphRadius = CellHeight / 2

type cell struct {
	r     rune
	fg    colorful.Color
	bg    colorful.Color
	hasFG bool
	hasBG bool
}

// Surface draws onto a grid of terminal cells. Shapes are approximated by
// glyphs and background colours, and translucent fills blend into the cell
// background.
type Surface struct {
	cols, rows int
	cells      []cell
	clips      []viewport.Rect
}

// NewSurface returns a blank surface of cols×rows cells.
func NewSurface(cols, rows int) *Surface {
	cols = max(cols, 0)
	rows = max(rows, 0)
	s := &Surface{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	for i := range s.cells {
		s.cells[i].r = ' '
	}
	return s
}

// SurfaceFor sizes a surface to cover a canvas.
func SurfaceFor(c viewport.Canvas) *Surface {
	return NewSurface(int(math.Ceil(c.Width/CellWidth)), int(math.Ceil(c.Height/CellHeight)))
}

// Cols and Rows return the grid size.
func (s *Surface) Cols() int { return s.cols }
func (s *Surface) Rows() int { return s.rows }

func (s *Surface) Size() (float64, float64) {
	return float64(s.cols) * CellWidth, float64(s.rows) * CellHeight
}

// RuneAt returns the glyph in a cell, or 0 when out of range.
func (s *Surface) RuneAt(col, row int) rune {
	if c := s.at(col, row); c != nil {
		return c.r
	}
	return 0
}

func (s *Surface) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return nil
	}
	return &s.cells[row*s.cols+col]
}

// cellAt maps a canvas pixel to the cell containing it.
func cellAt(p viewport.PixelPoint) (int, int) {
	return int(math.Floor(p.X / CellWidth)), int(math.Floor(p.Y / CellHeight))
}

func cellCentre(col, row int) viewport.PixelPoint {
	return viewport.PixelPoint{X: (float64(col) + 0.5) * CellWidth, Y: (float64(row) + 0.5) * CellHeight}
}

// writable returns the cell at col,row when it lies inside the clip.
func (s *Surface) writable(col, row int) *cell {
	c := s.at(col, row)
	if c == nil {
		return nil
	}
	if len(s.clips) > 0 && !s.clips[len(s.clips)-1].Contains(cellCentre(col, row)) {
		return nil
	}
	return c
}

func (s *Surface) PushClip(r viewport.Rect) {
	if len(s.clips) > 0 {
		r = render.Intersect(s.clips[len(s.clips)-1], r)
	}
	s.clips = append(s.clips, r)
}

func (s *Surface) PopClip() {
	if len(s.clips) > 0 {
		s.clips = s.clips[:len(s.clips)-1]
	}
}

// split converts a colour to an opaque colorful colour and its alpha.
func split(c color.Color) (colorful.Color, float64) {
	_, _, _, a := c.RGBA()
	if a == 0 {
		return colorful.Color{}, 0
	}
	col, _ := colorful.MakeColor(c)
	return col, float64(a) / 0xffff
}

func (s *Surface) paintBG(dst *cell, c color.Color) {
	col, a := split(c)
	if a == 0 {
		return
	}
	if dst.hasBG && a < 1 {
		col = dst.bg.BlendRgb(col, a)
	}
	dst.bg, dst.hasBG = col, true
	if a >= 0.5 {
		dst.r, dst.hasFG = ' ', false
	}
}

func (s *Surface) paintGlyph(dst *cell, r rune, c color.Color) {
	col, a := split(c)
	if a == 0 {
		return
	}
	if a < 1 && dst.hasBG {
		col = dst.bg.BlendRgb(col, a)
	}
	dst.r, dst.fg, dst.hasFG = r, col, true
}

func (s *Surface) FillRect(r viewport.Rect, c color.Color) {
	col0, row0 := cellAt(viewport.PixelPoint{X: r.X, Y: r.Y})
	col1, row1 := cellAt(viewport.PixelPoint{X: r.X + r.W, Y: r.Y + r.H})
	for row := max(row0, 0); row <= min(row1, s.rows-1); row++ {
		for col := max(col0, 0); col <= min(col1, s.cols-1); col++ {
			if !r.Contains(cellCentre(col, row)) {
				continue
			}
			if dst := s.writable(col, row); dst != nil {
				s.paintBG(dst, c)
			}
		}
	}
}

func (s *Surface) StrokeRect(r viewport.Rect, _ float64, c color.Color) {
	col0, row0 := cellAt(viewport.PixelPoint{X: r.X, Y: r.Y})
	col1, row1 := cellAt(viewport.PixelPoint{X: r.X + r.W, Y: r.Y + r.H})
	for col := col0; col <= col1; col++ {
		s.glyph(col, row0, '─', c)
		s.glyph(col, row1, '─', c)
	}
	for row := row0; row <= row1; row++ {
		s.glyph(col0, row, '│', c)
		s.glyph(col1, row, '│', c)
	}
	s.glyph(col0, row0, '┌', c)
	s.glyph(col1, row0, '┐', c)
	s.glyph(col0, row1, '└', c)
	s.glyph(col1, row1, '┘', c)
}

func (s *Surface) glyph(col, row int, r rune, c color.Color) {
	if dst := s.writable(col, row); dst != nil {
		s.paintGlyph(dst, r, c)
	}
}

// lineRune picks a glyph for a segment, joining crossing grid lines.
func lineRune(existing rune, dx, dy float64) rune {
	switch {
	case math.Abs(dy) < 1e-9:
		if existing == '│' || existing == '┼' {
			return '┼'
		}
		return '─'
	case math.Abs(dx) < 1e-9:
		if existing == '─' || existing == '┼' {
			return '┼'
		}
		return '│'
	default:
		return '·'
	}
}

func (s *Surface) Line(a, b viewport.PixelPoint, _ float64, c color.Color) {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := int(math.Ceil(math.Max(math.Abs(dx)/CellWidth, math.Abs(dy)/CellHeight) * 2))
	if steps < 1 {
		steps = 1
	}
	lastCol, lastRow := -1, -1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col, row := cellAt(viewport.PixelPoint{X: a.X + dx*t, Y: a.Y + dy*t})
		if col == lastCol && row == lastRow {
			continue
		}
		lastCol, lastRow = col, row
		if dst := s.writable(col, row); dst != nil {
			s.paintGlyph(dst, lineRune(dst.r, dx, dy), c)
		}
	}
}

func (s *Surface) FillCircle(p viewport.PixelPoint, radius float64, c color.Color) {
	if radius < glyphRadius {
		r := '•'
		if radius >= 5 {
			r = '●'
		}
		col, row := cellAt(p)
		s.glyph(col, row, r, c)
		return
	}
	s.eachCellIn(p, radius, func(dst *cell, _ float64) {
		s.paintBG(dst, c)
	})
}

func (s *Surface) StrokeCircle(p viewport.PixelPoint, radius, width float64, c color.Color) {
	if radius < glyphRadius {
		col, row := cellAt(p)
		s.glyph(col, row, '○', c)
		return
	}
	// Cells whose centre lies on the ring, at least one cell thick.
	band := math.Max(width, CellWidth) / 2
	s.eachCellIn(p, radius+band, func(dst *cell, d float64) {
		if d >= radius-band {
			s.paintGlyph(dst, '·', c)
		}
	})
}

func (s *Surface) eachCellIn(p viewport.PixelPoint, radius float64, fn func(dst *cell, dist float64)) {
	col0, row0 := cellAt(viewport.PixelPoint{X: p.X - radius, Y: p.Y - radius})
	col1, row1 := cellAt(viewport.PixelPoint{X: p.X + radius, Y: p.Y + radius})
	for row := max(row0, 0); row <= min(row1, s.rows-1); row++ {
		for col := max(col0, 0); col <= min(col1, s.cols-1); col++ {
			d := cellCentre(col, row).Dist(p)
			if d > radius {
				continue
			}
			if dst := s.writable(col, row); dst != nil {
				fn(dst, d)
			}
		}
	}
}

// MeasureText counts cells; the font size has no effect in a terminal.
func (s *Surface) MeasureText(str string, _ float64) float64 {
	return float64(lipgloss.Width(str)) * CellWidth
}

func (s *Surface) Text(at viewport.PixelPoint, str string, style render.TextStyle) {
	x := render.AlignedX(at.X, s.MeasureText(str, style.Size), style.Align)
	col := int(math.Round(x / CellWidth))
	row := int(math.Floor(at.Y / CellHeight))
	for _, r := range str {
		s.glyph(col, row, r, style.Color)
		col++
	}
}

type cellStyle struct {
	fg, bg       string
	hasFG, hasBG bool
}

func (c cell) style() cellStyle {
	st := cellStyle{hasFG: c.hasFG, hasBG: c.hasBG}
	if c.hasFG {
		st.fg = c.fg.Clamped().Hex()
	}
	if c.hasBG {
		st.bg = c.bg.Clamped().Hex()
	}
	return st
}

func (st cellStyle) toLipgloss() lipgloss.Style {
	ls := lipgloss.NewStyle()
	if st.hasFG {
		ls = ls.Foreground(lipgloss.Color(st.fg))
	}
	if st.hasBG {
		ls = ls.Background(lipgloss.Color(st.bg))
	}
	return ls
}

// Plain returns the glyphs without colour, one line per row.
func (s *Surface) Plain() string {
	var b strings.Builder
	for row := 0; row < s.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < s.cols; col++ {
			b.WriteRune(s.cells[row*s.cols+col].r)
		}
	}
	return b.String()
}

// Render returns the grid as styled lines. Runs of cells sharing a style
// are rendered together.
func (s *Surface) Render() string {
	var b strings.Builder
	var run strings.Builder
	for row := 0; row < s.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		var cur cellStyle
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(cur.toLipgloss().Render(run.String()))
			run.Reset()
		}
		for col := 0; col < s.cols; col++ {
			c := s.cells[row*s.cols+col]
			st := c.style()
			if st != cur {
				flush()
				cur = st
			}
			run.WriteRune(c.r)
		}
		flush()
	}
	return b.String()
}

// PixelFor returns the canvas pixel at the centre of a cell.
func PixelFor(col, row int) viewport.PixelPoint {
	return cellCentre(col, row)
}
