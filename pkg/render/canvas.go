package render

import (
	"image/color"
	"math"

	"github.com/decker502/heartworks/pkg/fireworks"
)

// bezierSegments is how many line segments a cubic curve is flattened into.
const bezierSegments = 8

type drawState struct {
	alpha      float64
	fill       color.Color
	stroke     color.Color
	lineWidth  float64
	shadow     color.Color
	shadowBlur float64
}

func defaultDrawState() drawState {
	return drawState{
		alpha:     1,
		fill:      color.Black,
		stroke:    color.Black,
		lineWidth: 1,
		shadow:    color.Transparent,
	}
}

// PathOp is one recorded path command.
type PathOp int

const (
	OpMove PathOp = iota
	OpLine
	OpCubic
	OpClose
)

type pathCmd struct {
	op  PathOp
	pts [3]fireworks.Point
}

// Canvas holds the drawing state stack and the current path shared by the
// surface implementations. It provides the state and path half of
// fireworks.Surface; a surface embeds it and adds Size, ClearRect, Fill
// and Stroke.
type Canvas struct {
	state drawState
	stack []drawState
	path  []pathCmd
}

// NewCanvas returns a canvas with the default drawing state.
func NewCanvas() Canvas {
	return Canvas{state: defaultDrawState()}
}

// Alpha returns the current global alpha.
func (c *Canvas) Alpha() float64 { return c.state.alpha }

// FillColor returns the current fill colour.
func (c *Canvas) FillColor() color.Color { return c.state.fill }

// StrokeColor returns the current stroke colour.
func (c *Canvas) StrokeColor() color.Color { return c.state.stroke }

// LineWidth returns the current stroke width.
func (c *Canvas) LineWidth() float64 { return c.state.lineWidth }

// Shadow returns the current shadow colour and blur radius.
func (c *Canvas) Shadow() (color.Color, float64) { return c.state.shadow, c.state.shadowBlur }

// PathLen returns the number of recorded path commands.
func (c *Canvas) PathLen() int { return len(c.path) }

// Walk replays the current path. OpMove and OpLine pass one point, OpCubic
// passes the two control points and the end point, OpClose passes none.
func (c *Canvas) Walk(fn func(op PathOp, pts []fireworks.Point)) {
	for i := range c.path {
		cmd := &c.path[i]
		switch cmd.op {
		case OpMove, OpLine:
			fn(cmd.op, cmd.pts[:1])
		case OpCubic:
			fn(cmd.op, cmd.pts[:])
		case OpClose:
			fn(cmd.op, nil)
		}
	}
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.state)
}

func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) SetGlobalAlpha(alpha float64) {
	c.state.alpha = math.Max(0, math.Min(1, alpha))
}

func (c *Canvas) SetFillColor(clr color.Color)   { c.state.fill = clr }
func (c *Canvas) SetStrokeColor(clr color.Color) { c.state.stroke = clr }

func (c *Canvas) SetLineWidth(width float64) {
	if width > 0 {
		c.state.lineWidth = width
	}
}

func (c *Canvas) SetShadow(clr color.Color, blur float64) {
	c.state.shadow = clr
	c.state.shadowBlur = math.Max(0, blur)
}

func (c *Canvas) BeginPath() {
	c.path = c.path[:0]
}

func (c *Canvas) MoveTo(x, y float64) {
	c.path = append(c.path, pathCmd{op: OpMove, pts: [3]fireworks.Point{{X: x, Y: y}}})
}

func (c *Canvas) LineTo(x, y float64) {
	c.path = append(c.path, pathCmd{op: OpLine, pts: [3]fireworks.Point{{X: x, Y: y}}})
}

func (c *Canvas) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	c.path = append(c.path, pathCmd{op: OpCubic, pts: [3]fireworks.Point{
		{X: cp1x, Y: cp1y}, {X: cp2x, Y: cp2y}, {X: x, Y: y},
	}})
}

func (c *Canvas) ClosePath() {
	c.path = append(c.path, pathCmd{op: OpClose})
}

// Flatten converts the current path into polylines, one per subpath.
// Closed subpaths end with their first point repeated.
func (c *Canvas) Flatten() [][]fireworks.Point {
	var out [][]fireworks.Point
	var cur []fireworks.Point

	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
		}
		cur = nil
	}

	for _, cmd := range c.path {
		switch cmd.op {
		case OpMove:
			flush()
			cur = []fireworks.Point{cmd.pts[0]}
		case OpLine:
			if len(cur) == 0 {
				cur = []fireworks.Point{cmd.pts[0]}
				continue
			}
			cur = append(cur, cmd.pts[0])
		case OpCubic:
			if len(cur) == 0 {
				cur = []fireworks.Point{cmd.pts[0]}
			}
			p0 := cur[len(cur)-1]
			for i := 1; i <= bezierSegments; i++ {
				t := float64(i) / bezierSegments
				cur = append(cur, cubicAt(p0, cmd.pts[0], cmd.pts[1], cmd.pts[2], t))
			}
		case OpClose:
			if len(cur) > 0 {
				first := cur[0]
				cur = append(cur, first)
				flush()
				// a new subpath starts at the closed subpath's first point
				cur = []fireworks.Point{first}
			}
		}
	}
	if len(cur) > 1 {
		out = append(out, cur)
	}
	return out
}

func cubicAt(p0, p1, p2, p3 fireworks.Point, t float64) fireworks.Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return fireworks.Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// Premultiplied returns clr scaled by alpha as premultiplied [0,1] components.
func Premultiplied(clr color.Color, alpha float64) (r, g, b, a float32) {
	if clr == nil {
		return 0, 0, 0, 0
	}
	cr, cg, cb, ca := clr.RGBA()
	s := float32(alpha) / 0xffff
	return float32(cr) * s, float32(cg) * s, float32(cb) * s, float32(ca) * s
}
