package fireworks

// TrailLength is the number of recent positions kept per particle.
const TrailLength = 5

// Point is a position on the surface.
type Point struct {
	X, Y float64
}

// Trail is a fixed-capacity FIFO of the most recent particle positions.
// When full, pushing evicts the oldest entry.
type Trail struct {
	points [TrailLength]Point
	start  int
	n      int
}

// Push appends p as the newest position.
func (t *Trail) Push(p Point) {
	if t.n < TrailLength {
		t.points[(t.start+t.n)%TrailLength] = p
		t.n++
		return
	}
	t.points[t.start] = p
	t.start = (t.start + 1) % TrailLength
}

// Len returns the number of stored positions.
func (t *Trail) Len() int {
	return t.n
}

// At returns the i-th stored position, 0 being the oldest.
func (t *Trail) At(i int) Point {
	return t.points[(t.start+i)%TrailLength]
}

// Points returns the stored positions oldest first.
func (t *Trail) Points() []Point {
	out := make([]Point, t.n)
	for i := range out {
		out[i] = t.At(i)
	}
	return out
}

// Particle is one heart-shaped ember of a burst.
type Particle struct {
	X, Y   float64
	VX, VY float64

	Size float64

	// Life runs from 1 down; the particle is dropped once it reaches <= 0.
	Life  float64
	Alpha float64
	Decay float64

	Hue     float64
	Gravity float64

	Trail Trail
}

// step advances the particle by one frame and reports whether it is still alive.
func (p *Particle) step() bool {
	p.X += p.VX
	p.Y += p.VY
	p.VY += p.Gravity

	p.Trail.Push(Point{X: p.X, Y: p.Y})

	p.Life -= p.Decay
	p.Alpha = p.Life

	return p.Life > 0
}

// Burst is a group of particles spawned together from one origin.
type Burst struct {
	// X, Y is the spawn origin.
	X, Y float64

	Particles []Particle

	// Life and Decay are carried for API compatibility; the update pass
	// does not read them.
	Life  float64
	Decay float64
}

// burstDecay is the value stored in Burst.Decay.
const burstDecay = 0.01
