package fireworks

import (
	"math"

	"github.com/decker502/heartworks/pkg/config"
)

const (
	// angleJitter is the maximum random offset added to each evenly spaced angle.
	angleJitter = 0.5

	defaultGravity = 0.1

	minDecay = 0.015
	maxDecay = 0.035

	// Pink to red arc used when no hue is given.
	minHue = 320.0
	maxHue = 360.0

	// autoSpawnHeightRatio keeps auto-spawned bursts in the top part of the surface.
	autoSpawnHeightRatio = 0.6
)

// SpawnBurst creates one burst at (x, y) and appends it to the active set.
//
// Particles are spread evenly around the circle, angle 2πi/n plus a small
// random jitter. Speed, size, hue and decay are drawn per particle unless
// overridden by opts.
func (c *Controller) SpawnBurst(x, y float64, opts ...BurstOption) {
	if !c.initialized {
		return
	}

	var o burstOptions
	for _, opt := range opts {
		opt(&o)
	}

	count := o.particleCount
	if count == 0 {
		count = c.drawCount(c.cfg.ParticleCount)
	}

	particles := make([]Particle, count)
	for i := range particles {
		angle := 2*math.Pi*float64(i)/float64(count) + c.rng.Float64()*angleJitter

		speed := c.drawOr(o.speed, c.cfg.ParticleSpeed)
		size := c.drawOr(o.size, c.cfg.ParticleSize)

		hue := c.drawHue()
		if o.hue != nil {
			hue = *o.hue
		}
		gravity := defaultGravity
		if o.gravity != nil {
			gravity = *o.gravity
		}
		decay := c.uniform(minDecay, maxDecay)
		if o.decay != nil {
			decay = *o.decay
		}

		particles[i] = Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Size:    size,
			Life:    1,
			Alpha:   1,
			Decay:   decay,
			Hue:     hue,
			Gravity: gravity,
		}
	}

	b := &Burst{
		X:         x,
		Y:         y,
		Particles: particles,
		Life:      1,
		Decay:     burstDecay,
	}
	c.bursts = append(c.bursts, b)

	if c.onSpawn != nil {
		c.onSpawn(b)
	}
}

// SpawnBurstAtPoint spawns a burst under a pointer given in client
// coordinates, translated into surface-local coordinates.
func (c *Controller) SpawnBurstAtPoint(ev PointerEvent) {
	if !c.initialized {
		return
	}
	rect := c.surface.BoundingRect()
	c.SpawnBurst(ev.ClientX-rect.X, ev.ClientY-rect.Y)
}

// autoSpawnTick spawns two bursts at random points in the top of the
// surface while there is headroom below MaxBursts-1.
func (c *Controller) autoSpawnTick() {
	if !c.initialized {
		return
	}
	if len(c.bursts) >= c.cfg.MaxBursts-1 {
		return
	}
	for range 2 {
		x := c.rng.Float64() * c.width
		y := c.rng.Float64() * c.height * autoSpawnHeightRatio
		c.SpawnBurst(x, y)
	}
}

func (c *Controller) uniform(lo, hi float64) float64 {
	return lo + c.rng.Float64()*(hi-lo)
}

func (c *Controller) drawOr(override *float64, r config.Range) float64 {
	if override != nil {
		return *override
	}
	return c.uniform(r.Min, r.Max)
}

// drawCount picks min + floor(U*(max-min)), so max is exclusive unless
// min == max.
func (c *Controller) drawCount(r config.Range) int {
	n := int(r.Min) + int(math.Floor(c.rng.Float64()*r.Span()))
	if n < 1 {
		n = 1
	}
	return n
}

func (c *Controller) drawHue() float64 {
	if len(c.hues) > 0 {
		return c.hues[c.rng.Intn(len(c.hues))]
	}
	return c.uniform(minHue, maxHue)
}
