package fireworks

// update advances every particle one frame, dropping dead particles and
// then empty bursts. Survivors are compacted in place, keeping their order.
func (c *Controller) update() {
	aliveBursts := c.bursts[:0]
	for _, b := range c.bursts {
		alive := b.Particles[:0]
		for i := range b.Particles {
			p := &b.Particles[i]
			if p.step() {
				alive = append(alive, *p)
			}
		}
		b.Particles = alive

		if len(b.Particles) > 0 {
			aliveBursts = append(aliveBursts, b)
		}
	}

	// Release dropped bursts held in the tail of the backing array.
	clear(c.bursts[len(aliveBursts):])
	c.bursts = aliveBursts
}
