package game

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-fighter/internal/combat"
	"github.com/vovakirdan/tui-fighter/internal/core"
)

// Particle is one piece of effect debris in world coordinates.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Life   float64 // Ticks until the particle disappears
	Color  core.Color
}

// burst describes a ring of particles thrown out from a point.
type burst struct {
	color    core.Color
	count    int
	minSize  float64
	maxSize  float64
	minSpeed float64
	maxSpeed float64
	minLife  float64
	maxLife  float64
	gravity  float64
}

// ParticleSystem owns a bounded pool of particles.
// It draws from its own random stream so effects never disturb the CPU.
type ParticleSystem struct {
	particles []Particle
	gravity   []float64 // Per-particle pull, parallel to particles
	pull      float64   // Multiplier on every burst's gravity
	max       int
	minLife   int
	maxLife   int
	rng       *rand.Rand
}

// NewParticleSystem creates an empty pool holding at most maxParticles.
func NewParticleSystem(maxParticles, minLife, maxLife int, seed int64) *ParticleSystem {
	return &ParticleSystem{
		max:     maxParticles,
		minLife: minLife,
		maxLife: maxLife,
		pull:    1,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// SetGravity scales burst gravity relative to combat.DefaultGravity.
// Particles already in flight keep their pull.
func (p *ParticleSystem) SetGravity(g float64) {
	p.pull = g / combat.DefaultGravity
}

// Reset drops every particle and reseeds the stream.
func (p *ParticleSystem) Reset(seed int64) {
	p.particles = p.particles[:0]
	p.gravity = p.gravity[:0]
	p.rng = rand.New(rand.NewSource(seed))
}

// Len returns the number of live particles.
func (p *ParticleSystem) Len() int {
	return len(p.particles)
}

// Particles returns the live particles. The slice is reused between ticks.
func (p *ParticleSystem) Particles() []Particle {
	return p.particles
}

// Spawn turns an effect event into a particle burst.
func (p *ParticleSystem) Spawn(e combat.Effect) {
	x, y := float64(e.X), float64(e.Y)
	life := float64(p.minLife)
	span := float64(p.maxLife)

	switch e.Kind {
	case combat.EffectBlock:
		p.emit(x, y, burst{
			color: core.ColorBlue, count: 5,
			minSize: 5, maxSize: 10,
			minSpeed: 0.1, maxSpeed: 0.2,
			minLife: life, maxLife: span,
			gravity: 0.1,
		})
	case combat.EffectHit:
		p.emit(x, y, burst{
			color: hitColor(e.Source), count: 10,
			minSize: 7.5, maxSize: 15,
			minSpeed: 0.25, maxSpeed: 0.5,
			minLife: life, maxLife: span,
			gravity: 0.2,
		})
	case combat.EffectSpecial:
		p.explode(x, y)
	}
}

// explode layers three bursts for a special move.
func (p *ParticleSystem) explode(x, y float64) {
	life := float64(p.minLife)
	span := float64(p.maxLife)
	p.emit(x, y, burst{
		color: core.ColorRed, count: 30,
		minSize: 7.5, maxSize: 15,
		minSpeed: 1, maxSpeed: 2,
		minLife: life, maxLife: span,
		gravity: 0.05,
	})
	p.emit(x, y, burst{
		color: core.ColorOrange, count: 15,
		minSize: 5, maxSize: 12,
		minSpeed: 1, maxSpeed: 3,
		minLife: life * 1.5, maxLife: span * 1.5,
		gravity: 0.05,
	})
	p.emit(x, y, burst{
		color: core.ColorYellow, count: 10,
		minSize: 8, maxSize: 20,
		minSpeed: 0.5, maxSpeed: 2,
		minLife: life, maxLife: span * 1.25,
		gravity: 0.05,
	})
}

// emit adds a burst, dropping particles once the pool is full.
func (p *ParticleSystem) emit(x, y float64, b burst) {
	for range b.count {
		if len(p.particles) >= p.max {
			return
		}
		angle := p.rng.Float64() * 2 * math.Pi
		speed := p.uniform(b.minSpeed, b.maxSpeed)
		p.particles = append(p.particles, Particle{
			X:     x,
			Y:     y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Size:  p.uniform(b.minSize, b.maxSize),
			Life:  p.uniform(b.minLife, b.maxLife),
			Color: p.vary(b.color),
		})
		p.gravity = append(p.gravity, b.gravity*p.pull)
	}
}

// Update applies gravity, moves every particle and drops the expired ones.
func (p *ParticleSystem) Update() {
	n := 0
	for i := range p.particles {
		pt := p.particles[i]
		pt.VY += p.gravity[i]
		pt.X += pt.VX
		pt.Y += pt.VY
		pt.Life--
		if pt.Life <= 0 {
			continue
		}
		p.particles[n] = pt
		p.gravity[n] = p.gravity[i]
		n++
	}
	p.particles = p.particles[:n]
	p.gravity = p.gravity[:n]
}

func (p *ParticleSystem) uniform(lo, hi float64) float64 {
	return lo + p.rng.Float64()*(hi-lo)
}

// vary picks the base color or its neighbouring shade.
func (p *ParticleSystem) vary(c core.Color) core.Color {
	if p.rng.Intn(2) == 0 {
		return c
	}
	switch c {
	case core.ColorRed:
		return core.ColorBrightRed
	case core.ColorYellow:
		return core.ColorBrightYellow
	case core.ColorBlue:
		return core.ColorBrightBlue
	case core.ColorOrange:
		return core.ColorYellow
	default:
		return c
	}
}

// hitColor returns the spark color for the attack that landed.
func hitColor(src combat.ActionState) core.Color {
	switch src {
	case combat.Punch:
		return core.ColorYellow
	case combat.Special:
		return core.ColorRed
	default:
		return core.ColorOrange
	}
}
