package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/heartworks/pkg/fireworks"
)

const (
	// DefaultCellWidth and DefaultCellHeight are the surface units covered by
	// one terminal cell.
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0

	// minTerminalAlpha is the faintest alpha that still puts a glyph on screen.
	minTerminalAlpha = 0.05

	heartRune = '♥'
	trailRune = '·'
)

// TerminalSurface rasterises fireworks drawing calls onto tcell cells.
// Strokes become dotted lines, fills put a heart glyph at the path centre.
// The caller owns the screen and calls Show after each frame.
type TerminalSurface struct {
	Canvas

	screen tcell.Screen
	cellW  float64
	cellH  float64

	width  float64
	height float64
}

// NewTerminalSurface creates a surface covering the whole screen. Non-positive
// cell sizes fall back to the defaults.
func NewTerminalSurface(screen tcell.Screen, cellW, cellH float64) *TerminalSurface {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	s := &TerminalSurface{
		Canvas: NewCanvas(),
		screen: screen,
		cellW:  cellW,
		cellH:  cellH,
	}
	cols, rows := screen.Size()
	s.width = float64(cols) * cellW
	s.height = float64(rows) * cellH
	return s
}

// CellSize returns the surface units per cell.
func (s *TerminalSurface) CellSize() (float64, float64) {
	return s.cellW, s.cellH
}

// CellToSurface converts a cell position to the surface point at its centre.
func (s *TerminalSurface) CellToSurface(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

// SizeForCells converts a terminal size in cells to surface units.
func (s *TerminalSurface) SizeForCells(cols, rows int) (float64, float64) {
	return float64(cols) * s.cellW, float64(rows) * s.cellH
}

func (s *TerminalSurface) Size() (float64, float64) {
	return s.width, s.height
}

func (s *TerminalSurface) SetSize(width, height float64) {
	s.width = width
	s.height = height
}

func (s *TerminalSurface) BoundingRect() fireworks.Rect {
	return fireworks.Rect{Width: s.width, Height: s.height}
}

func (s *TerminalSurface) toCell(x, y float64) (int, int) {
	return int(math.Floor(x / s.cellW)), int(math.Floor(y / s.cellH))
}

func (s *TerminalSurface) ClearRect(x, y, width, height float64) {
	cols, rows := s.screen.Size()
	c0, r0 := s.toCell(x, y)
	c1, r1 := s.toCell(x+width, y+height)
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, cols-1), min(r1, rows-1)

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			s.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
		}
	}
}

func (s *TerminalSurface) plot(col, row int, r rune, clr color.Color, alpha float64) {
	cols, rows := s.screen.Size()
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	s.screen.SetContent(col, row, r, nil, tcell.StyleDefault.Foreground(terminalColor(clr, alpha)))
}

// Stroke draws every segment of the current path as a dotted cell line.
func (s *TerminalSurface) Stroke() {
	if s.state.alpha < minTerminalAlpha {
		return
	}
	for _, poly := range s.Flatten() {
		for i := 0; i+1 < len(poly); i++ {
			s.strokeSegment(poly[i], poly[i+1])
		}
	}
}

func (s *TerminalSurface) strokeSegment(a, b fireworks.Point) {
	c0, r0 := s.toCell(a.X, a.Y)
	c1, r1 := s.toCell(b.X, b.Y)

	steps := max(abs(c1-c0), abs(r1-r0))
	if steps == 0 {
		s.plot(c0, r0, trailRune, s.state.stroke, s.state.alpha)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col := int(math.Round(float64(c0) + t*float64(c1-c0)))
		row := int(math.Round(float64(r0) + t*float64(r1-r0)))
		s.plot(col, row, trailRune, s.state.stroke, s.state.alpha)
	}
}

// Fill puts a heart glyph at the centre of the current path's bounds.
func (s *TerminalSurface) Fill() {
	if s.state.alpha < minTerminalAlpha {
		return
	}
	polys := s.Flatten()
	if len(polys) == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	col, row := s.toCell((minX+maxX)/2, (minY+maxY)/2)
	s.plot(col, row, heartRune, s.state.fill, s.state.alpha)
}

// terminalColor fades clr toward black by alpha.
func terminalColor(clr color.Color, alpha float64) tcell.Color {
	r, g, b, _ := Premultiplied(clr, alpha)
	return tcell.NewRGBColor(int32(r*255+0.5), int32(g*255+0.5), int32(b*255+0.5))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
