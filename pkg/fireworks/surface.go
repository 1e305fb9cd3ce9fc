package fireworks

import (
	"image/color"
	"time"
)

// Rect is an axis-aligned rectangle in host (client) coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// PointerEvent carries a pointer position in host client coordinates.
type PointerEvent struct {
	ClientX float64
	ClientY float64
}

// Surface is a 2D drawing context the effect renders into.
// The method set mirrors an immediate-mode canvas: state is set first,
// then a path is built and filled or stroked with that state.
type Surface interface {
	// Size returns the drawable width and height.
	Size() (width, height float64)
	// SetSize resizes the drawable area.
	SetSize(width, height float64)
	// BoundingRect returns where the surface sits in host client coordinates.
	BoundingRect() Rect

	ClearRect(x, y, width, height float64)

	// Save pushes the current drawing state; Restore pops it.
	Save()
	Restore()

	SetGlobalAlpha(alpha float64)
	SetFillColor(c color.Color)
	SetStrokeColor(c color.Color)
	SetLineWidth(width float64)
	SetShadow(c color.Color, blur float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64)
	ClosePath()
	Fill()
	Stroke()
}

// SurfaceResolver finds a surface by its host id.
type SurfaceResolver interface {
	LookupSurface(id string) (Surface, bool)
}

// FrameHandle identifies a pending frame request. Zero means none.
type FrameHandle uint64

// TimerHandle identifies a running interval timer. Zero means none.
type TimerHandle uint64

// FrameScheduler invokes a callback once before the next repaint.
// Implementations must return non-zero handles and must never invoke a
// cancelled request.
type FrameScheduler interface {
	RequestFrame(fn func()) FrameHandle
	CancelFrame(h FrameHandle)
}

// IntervalScheduler invokes a callback every interval until cancelled.
// Implementations must return non-zero handles and must never invoke a
// cancelled timer.
type IntervalScheduler interface {
	Every(interval time.Duration, fn func()) TimerHandle
	CancelTimer(h TimerHandle)
}

// Host bundles the collaborators a Controller needs from its environment.
// All callbacks are expected on the goroutine that drives the controller.
type Host struct {
	Surfaces SurfaceResolver
	Frames   FrameScheduler
	Timers   IntervalScheduler
}
