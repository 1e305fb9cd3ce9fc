// Package fireworks implements a heart fireworks particle effect.
//
// A Controller owns the active bursts and runs one update+draw pass per
// frame. It never drives itself: frame requests, interval timers and the
// drawing surface are supplied by the host through Host, and resize and
// pointer input arrive through HandleResize and SpawnBurstAtPoint.
//
// The controller is not safe for concurrent use. Every method and every
// scheduler callback must run on the same goroutine.
package fireworks

import (
	"log"
	"math/rand"
	"time"

	"github.com/decker502/heartworks/pkg/config"
)

// Status is a read-only snapshot of a controller.
type Status struct {
	Initialized        bool
	BurstCount         int
	TotalParticleCount int
	IsAnimating        bool
	IsAutoSpawning     bool
}

// Controller runs the fireworks effect on one surface.
type Controller struct {
	host    Host
	rng     *rand.Rand
	onSpawn func(b *Burst)

	surface   Surface
	surfaceID string
	cfg       config.FireworksConfig
	hues      []float64

	bursts []*Burst

	width  float64
	height float64

	initialized bool
	frameHandle FrameHandle
	timerHandle TimerHandle
}

// NewController creates an uninitialized controller bound to host.
func NewController(host Host, opts ...Option) *Controller {
	c := &Controller{
		host: host,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		cfg:  config.DefaultFireworksConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize binds the controller to the surface registered as surfaceID,
// applies cfg over the defaults and starts the frame loop and, if enabled,
// auto-spawning. It returns false, leaving the controller uninitialized, if
// the surface cannot be found.
//
// Calling Initialize on an initialized controller rebinds it; running
// loops are restarted and active bursts are kept.
func (c *Controller) Initialize(surfaceID string, cfg config.FireworksConfig) bool {
	if c.host.Surfaces == nil {
		log.Printf("[Fireworks] No surface resolver, cannot find surface: %s", surfaceID)
		return false
	}
	surface, ok := c.host.Surfaces.LookupSurface(surfaceID)
	if !ok || surface == nil {
		log.Printf("[Fireworks] Surface not found with id: %s", surfaceID)
		return false
	}

	if c.initialized {
		log.Printf("[Fireworks] Re-initializing on surface %s", surfaceID)
		c.stopAnimation()
		c.StopAutoSpawn()
	}

	if err := cfg.Validate(); err != nil {
		log.Printf("[Fireworks] Warning: invalid config (%v), invalid fields use defaults", err)
		cfg = cfg.Sanitize()
	}

	c.surface = surface
	c.surfaceID = surfaceID
	c.cfg = cfg.WithDefaults()
	c.hues = nil
	if c.cfg.PaletteHues {
		c.hues = paletteHues(c.cfg.Palette)
	}
	c.width, c.height = surface.Size()
	c.initialized = true

	c.startAnimation()
	if c.cfg.AutoSpawnEnabled() {
		c.StartAutoSpawn()
	}

	log.Printf("[Fireworks] Effect initialized on %s (%.0fx%.0f)", surfaceID, c.width, c.height)
	return true
}

// Config returns the applied configuration.
func (c *Controller) Config() config.FireworksConfig {
	return c.cfg
}

// Size returns the stored surface dimensions.
func (c *Controller) Size() (width, height float64) {
	return c.width, c.height
}

// Bursts returns the active bursts in spawn order. The slice must not be
// modified and is only valid until the next frame.
func (c *Controller) Bursts() []*Burst {
	return c.bursts
}

// AdvanceFrame runs one update pass followed by one draw pass.
func (c *Controller) AdvanceFrame() {
	if !c.initialized {
		return
	}
	c.update()
	c.draw()
}

func (c *Controller) startAnimation() {
	if !c.initialized || c.frameHandle != 0 || c.host.Frames == nil {
		return
	}
	c.frameHandle = c.host.Frames.RequestFrame(c.onFrame)
}

func (c *Controller) stopAnimation() {
	if c.frameHandle == 0 {
		return
	}
	if c.host.Frames != nil {
		c.host.Frames.CancelFrame(c.frameHandle)
	}
	c.frameHandle = 0
}

// onFrame is the frame task: one pass, then ask the host for the next frame.
func (c *Controller) onFrame() {
	if c.frameHandle == 0 || !c.initialized {
		return
	}
	c.AdvanceFrame()
	// A Surface call during draw may have paused or destroyed the controller.
	if c.frameHandle == 0 || !c.initialized {
		return
	}
	c.frameHandle = c.host.Frames.RequestFrame(c.onFrame)
}

// StartAutoSpawn starts the auto-spawn timer. It does nothing if the timer
// is already running or the controller is not initialized.
func (c *Controller) StartAutoSpawn() {
	if !c.initialized || c.timerHandle != 0 || c.host.Timers == nil {
		return
	}
	interval := c.cfg.AutoSpawnInterval()
	if interval <= 0 {
		return
	}
	c.timerHandle = c.host.Timers.Every(interval, c.autoSpawnTick)
}

// StopAutoSpawn cancels the auto-spawn timer.
func (c *Controller) StopAutoSpawn() {
	if c.timerHandle == 0 {
		return
	}
	if c.host.Timers != nil {
		c.host.Timers.CancelTimer(c.timerHandle)
	}
	c.timerHandle = 0
}

// HandleResize records new surface dimensions and resizes the surface.
// Existing particles keep their positions.
func (c *Controller) HandleResize(width, height float64) {
	if !c.initialized {
		return
	}
	c.width = width
	c.height = height
	c.surface.SetSize(width, height)
}

// Clear drops every active burst immediately.
func (c *Controller) Clear() {
	clear(c.bursts)
	c.bursts = c.bursts[:0]
}

// Pause stops the frame loop and the auto-spawn timer, keeping all bursts.
func (c *Controller) Pause() {
	c.stopAnimation()
	c.StopAutoSpawn()
}

// Resume restarts the frame loop and, if auto-spawn is configured, the timer.
func (c *Controller) Resume() {
	if !c.initialized {
		return
	}
	c.startAnimation()
	if c.cfg.AutoSpawnEnabled() {
		c.StartAutoSpawn()
	}
}

// Destroy stops all background work, drops every burst and marks the
// controller uninitialized. It is safe to call repeatedly.
func (c *Controller) Destroy() {
	wasInitialized := c.initialized

	c.stopAnimation()
	c.StopAutoSpawn()
	c.Clear()
	c.initialized = false

	if wasInitialized {
		log.Printf("[Fireworks] Effect destroyed (%s)", c.surfaceID)
	}
}

// Status returns a snapshot of the controller state.
func (c *Controller) Status() Status {
	total := 0
	for _, b := range c.bursts {
		total += len(b.Particles)
	}
	return Status{
		Initialized:        c.initialized,
		BurstCount:         len(c.bursts),
		TotalParticleCount: total,
		IsAnimating:        c.frameHandle != 0,
		IsAutoSpawning:     c.timerHandle != 0,
	}
}
