package fireworks

const (
	trailAlphaScale = 0.3
	trailLineWidth  = 1.0

	glowBlur = 4.0

	// heartScale converts a particle size into the heart's extent.
	heartScale = 0.5
)

// draw clears the surface and renders every particle: its trail first,
// then the heart glyph on top.
func (c *Controller) draw() {
	s := c.surface
	s.ClearRect(0, 0, c.width, c.height)

	for _, b := range c.bursts {
		for i := range b.Particles {
			p := &b.Particles[i]
			drawTrail(s, p)
			if p.Life > 0 {
				DrawHeart(s, p.X, p.Y, p.Size, p.Alpha, p.Hue)
			}
		}
	}
}

func drawTrail(s Surface, p *Particle) {
	if p.Trail.Len() < 2 {
		return
	}

	s.Save()
	s.SetGlobalAlpha(p.Alpha * trailAlphaScale)
	s.SetStrokeColor(ParticleColor(p.Hue))
	s.SetLineWidth(trailLineWidth)

	s.BeginPath()
	first := p.Trail.At(0)
	s.MoveTo(first.X, first.Y)
	for k := 1; k < p.Trail.Len(); k++ {
		pt := p.Trail.At(k)
		s.LineTo(pt.X, pt.Y)
	}
	s.Stroke()
	s.Restore()
}

// DrawHeart fills a heart centred horizontally on x, with its top notch at
// y+0.3h and its tip at y+0.9h, where h = size*0.5. The outline is two
// mirrored cubic bézier lobes.
func DrawHeart(s Surface, x, y, size, alpha, hue float64) {
	s.Save()
	s.SetGlobalAlpha(alpha)
	s.SetFillColor(ParticleColor(hue))
	s.SetShadow(GlowColor(hue), glowBlur)

	h := size * heartScale

	s.BeginPath()
	s.MoveTo(x, y+h*0.3)

	// left lobe
	s.BezierCurveTo(x, y, x-h*0.5, y, x-h*0.5, y+h*0.3)
	s.BezierCurveTo(x-h*0.5, y+h*0.5, x, y+h*0.7, x, y+h*0.9)

	// right lobe
	s.BezierCurveTo(x, y+h*0.7, x+h*0.5, y+h*0.5, x+h*0.5, y+h*0.3)
	s.BezierCurveTo(x+h*0.5, y, x, y, x, y+h*0.3)

	s.ClosePath()
	s.Fill()
	s.Restore()
}
