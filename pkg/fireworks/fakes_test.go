package fireworks

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/decker502/heartworks/pkg/config"
)

// recordingSurface records every drawing call as a short string.
type recordingSurface struct {
	width, height float64
	rect          Rect
	ops           []string

	alpha       float64
	fill        color.Color
	stroke      color.Color
	shadow      color.Color
	shadowBlur  float64
	lineWidth   float64
	fillAlphas  []float64
	strokeWidth []float64
}

func newRecordingSurface(w, h float64) *recordingSurface {
	return &recordingSurface{width: w, height: h, alpha: 1}
}

func (s *recordingSurface) Size() (float64, float64) { return s.width, s.height }
func (s *recordingSurface) SetSize(w, h float64) {
	s.width, s.height = w, h
	s.ops = append(s.ops, fmt.Sprintf("resize %.0f %.0f", w, h))
}
func (s *recordingSurface) BoundingRect() Rect { return s.rect }
func (s *recordingSurface) ClearRect(x, y, w, h float64) {
	s.ops = append(s.ops, fmt.Sprintf("clear %.0f %.0f %.0f %.0f", x, y, w, h))
}
func (s *recordingSurface) Save()                              { s.ops = append(s.ops, "save") }
func (s *recordingSurface) Restore()                           { s.ops = append(s.ops, "restore") }
func (s *recordingSurface) SetGlobalAlpha(a float64)           { s.alpha = a }
func (s *recordingSurface) SetFillColor(c color.Color)         { s.fill = c }
func (s *recordingSurface) SetStrokeColor(c color.Color)       { s.stroke = c }
func (s *recordingSurface) SetLineWidth(w float64)             { s.lineWidth = w }
func (s *recordingSurface) SetShadow(c color.Color, b float64) { s.shadow, s.shadowBlur = c, b }
func (s *recordingSurface) BeginPath()                         { s.ops = append(s.ops, "begin") }
func (s *recordingSurface) MoveTo(x, y float64)                { s.ops = append(s.ops, "move") }
func (s *recordingSurface) LineTo(x, y float64)                { s.ops = append(s.ops, "line") }
func (s *recordingSurface) BezierCurveTo(_, _, _, _, _, _ float64) {
	s.ops = append(s.ops, "bezier")
}
func (s *recordingSurface) ClosePath() { s.ops = append(s.ops, "close") }
func (s *recordingSurface) Fill() {
	s.ops = append(s.ops, "fill")
	s.fillAlphas = append(s.fillAlphas, s.alpha)
}
func (s *recordingSurface) Stroke() {
	s.ops = append(s.ops, "stroke")
	s.strokeWidth = append(s.strokeWidth, s.lineWidth)
}

func (s *recordingSurface) count(op string) int {
	n := 0
	for _, o := range s.ops {
		if o == op {
			n++
		}
	}
	return n
}

func (s *recordingSurface) reset() {
	s.ops = nil
	s.fillAlphas = nil
	s.strokeWidth = nil
}

type mapResolver map[string]Surface

func (m mapResolver) LookupSurface(id string) (Surface, bool) {
	s, ok := m[id]
	return s, ok
}

// manualClock is a minimal FrameScheduler and IntervalScheduler driven by
// the test.
type manualClock struct {
	next   uint64
	frames map[FrameHandle]func()
	timers map[TimerHandle]func()
	every  map[TimerHandle]time.Duration
}

func newManualClock() *manualClock {
	return &manualClock{
		frames: make(map[FrameHandle]func()),
		timers: make(map[TimerHandle]func()),
		every:  make(map[TimerHandle]time.Duration),
	}
}

func (m *manualClock) RequestFrame(fn func()) FrameHandle {
	m.next++
	h := FrameHandle(m.next)
	m.frames[h] = fn
	return h
}

func (m *manualClock) CancelFrame(h FrameHandle) { delete(m.frames, h) }

func (m *manualClock) Every(d time.Duration, fn func()) TimerHandle {
	m.next++
	h := TimerHandle(m.next)
	m.timers[h] = fn
	m.every[h] = d
	return h
}

func (m *manualClock) CancelTimer(h TimerHandle) {
	delete(m.timers, h)
	delete(m.every, h)
}

// frame runs every pending frame request once.
func (m *manualClock) frame() {
	pending := m.frames
	m.frames = make(map[FrameHandle]func())
	for _, fn := range pending {
		fn()
	}
}

// tick fires every running timer once.
func (m *manualClock) tick() {
	for h, fn := range m.timers {
		if _, ok := m.timers[h]; ok {
			fn()
		}
	}
}

type testEnv struct {
	surface *recordingSurface
	clock   *manualClock
	ctrl    *Controller
}

const testSurfaceID = "fireworks-canvas"

func newTestEnv(w, h float64, seed int64) *testEnv {
	surface := newRecordingSurface(w, h)
	clock := newManualClock()
	ctrl := NewController(Host{
		Surfaces: mapResolver{testSurfaceID: surface},
		Frames:   clock,
		Timers:   clock,
	}, WithRand(rand.New(rand.NewSource(seed))))
	return &testEnv{surface: surface, clock: clock, ctrl: ctrl}
}

// manualConfig disables auto-spawn so tests control every burst.
func manualConfig() config.FireworksConfig {
	off := false
	cfg := config.DefaultFireworksConfig()
	cfg.AutoSpawn = &off
	return cfg
}
