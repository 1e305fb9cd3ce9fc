package fireworks

import "math/rand"

// burstOptions holds per-call overrides for SpawnBurst. Nil means "draw it".
type burstOptions struct {
	particleCount int
	speed         *float64
	size          *float64
	hue           *float64
	gravity       *float64
	decay         *float64
}

// BurstOption overrides one randomised property of a spawned burst.
type BurstOption func(*burstOptions)

// WithParticleCount fixes the number of particles. Values < 1 are ignored.
func WithParticleCount(n int) BurstOption {
	return func(o *burstOptions) {
		if n > 0 {
			o.particleCount = n
		}
	}
}

// WithSpeed gives every particle the same launch speed.
func WithSpeed(speed float64) BurstOption {
	return func(o *burstOptions) { o.speed = &speed }
}

// WithSize gives every particle the same size.
func WithSize(size float64) BurstOption {
	return func(o *burstOptions) { o.size = &size }
}

// WithHue gives every particle the same hue in degrees.
func WithHue(hue float64) BurstOption {
	return func(o *burstOptions) { o.hue = &hue }
}

// WithGravity replaces the default per-frame gravity.
func WithGravity(g float64) BurstOption {
	return func(o *burstOptions) { o.gravity = &g }
}

// WithDecay gives every particle the same per-frame life decay. Values <= 0
// are ignored.
func WithDecay(decay float64) BurstOption {
	return func(o *burstOptions) {
		if decay > 0 {
			o.decay = &decay
		}
	}
}

// Option configures a Controller at construction.
type Option func(*Controller)

// WithRand sets the random source. Useful for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithSpawnListener registers fn to be called after each burst is spawned.
func WithSpawnListener(fn func(b *Burst)) Option {
	return func(c *Controller) {
		c.onSpawn = fn
	}
}
