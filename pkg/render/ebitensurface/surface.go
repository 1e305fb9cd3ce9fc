// Package ebitensurface draws fireworks onto an offscreen ebiten image.
//
// It is kept apart from package render so that terminal hosts do not link
// ebiten's window and graphics drivers.
package ebitensurface

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/heartworks/pkg/fireworks"
	"github.com/decker502/heartworks/pkg/render"
)

// glowAlphaScale dims the shadow halo relative to the shape it surrounds.
const glowAlphaScale = 0.5

// Surface is a canvas-style fireworks.Surface backed by an offscreen
// ebiten image. Present draws the canvas onto the screen.
type Surface struct {
	render.Canvas

	img    *ebiten.Image
	origin fireworks.Point
	width  int
	height int

	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

// New creates a width x height surface placed at the window origin.
func New(width, height int) *Surface {
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)

	s := &Surface{
		Canvas: render.NewCanvas(),
		white:  white,
	}
	s.resize(width, height)
	return s
}

func (s *Surface) resize(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	if s.img != nil && width == s.width && height == s.height {
		return
	}
	if s.img != nil {
		s.img.Deallocate()
	}
	s.img = ebiten.NewImage(width, height)
	s.width = width
	s.height = height
}

// SetOrigin places the surface in window coordinates, for BoundingRect.
func (s *Surface) SetOrigin(x, y float64) {
	s.origin = fireworks.Point{X: x, Y: y}
}

// Image returns the offscreen canvas.
func (s *Surface) Image() *ebiten.Image {
	return s.img
}

// Present draws the canvas onto dst at the surface origin.
func (s *Surface) Present(dst *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(s.origin.X, s.origin.Y)
	dst.DrawImage(s.img, op)
}

func (s *Surface) Size() (float64, float64) {
	return float64(s.width), float64(s.height)
}

func (s *Surface) SetSize(width, height float64) {
	s.resize(int(math.Round(width)), int(math.Round(height)))
}

func (s *Surface) BoundingRect() fireworks.Rect {
	return fireworks.Rect{
		X:      s.origin.X,
		Y:      s.origin.Y,
		Width:  float64(s.width),
		Height: float64(s.height),
	}
}

func (s *Surface) ClearRect(x, y, width, height float64) {
	r := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+width)), int(math.Ceil(y+height)),
	).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	if r == s.img.Bounds() {
		s.img.Clear()
		return
	}
	s.img.SubImage(r).(*ebiten.Image).Clear()
}

// vectorPath replays the current path into an ebiten vector path.
func (s *Surface) vectorPath() *vector.Path {
	var p vector.Path
	s.Walk(func(op render.PathOp, pts []fireworks.Point) {
		switch op {
		case render.OpMove:
			p.MoveTo(float32(pts[0].X), float32(pts[0].Y))
		case render.OpLine:
			p.LineTo(float32(pts[0].X), float32(pts[0].Y))
		case render.OpCubic:
			p.CubicTo(
				float32(pts[0].X), float32(pts[0].Y),
				float32(pts[1].X), float32(pts[1].Y),
				float32(pts[2].X), float32(pts[2].Y),
			)
		case render.OpClose:
			p.Close()
		}
	})
	return &p
}

// Fill fills the current path. With a shadow set, a halo is stroked first in
// the shadow colour, blur wide.
func (s *Surface) Fill() {
	if s.PathLen() == 0 || s.Alpha() <= 0 {
		return
	}
	p := s.vectorPath()

	if shadow, blur := s.Shadow(); blur > 0 {
		s.vertices, s.indices = p.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], &vector.StrokeOptions{
			Width:    float32(blur),
			LineJoin: vector.LineJoinRound,
			LineCap:  vector.LineCapRound,
		})
		s.drawTriangles(shadow, s.Alpha()*glowAlphaScale, ebiten.FillRuleFillAll)
	}

	s.vertices, s.indices = p.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	s.drawTriangles(s.FillColor(), s.Alpha(), ebiten.FillRuleNonZero)
}

// Stroke strokes the current path with the line width and stroke colour.
func (s *Surface) Stroke() {
	if s.PathLen() == 0 || s.Alpha() <= 0 {
		return
	}
	p := s.vectorPath()
	s.vertices, s.indices = p.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], &vector.StrokeOptions{
		Width:    float32(s.LineWidth()),
		LineJoin: vector.LineJoinRound,
	})
	s.drawTriangles(s.StrokeColor(), s.Alpha(), ebiten.FillRuleFillAll)
}

func (s *Surface) drawTriangles(clr color.Color, alpha float64, rule ebiten.FillRule) {
	if len(s.indices) == 0 {
		return
	}
	r, g, b, a := render.Premultiplied(clr, alpha)
	for i := range s.vertices {
		s.vertices[i].SrcX = 0
		s.vertices[i].SrcY = 0
		s.vertices[i].ColorR = r
		s.vertices[i].ColorG = g
		s.vertices[i].ColorB = b
		s.vertices[i].ColorA = a
	}
	s.img.DrawTriangles(s.vertices, s.indices, s.white, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  rule,
	})
}
