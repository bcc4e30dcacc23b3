package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-fighter/internal/combat"
	"github.com/vovakirdan/tui-fighter/internal/core"
)

func TestParticleBurstSizes(t *testing.T) {
	tests := []struct {
		name     string
		effect   combat.Effect
		expected int
	}{
		{"block", combat.Effect{Kind: combat.EffectBlock}, 5},
		{"hit", combat.Effect{Kind: combat.EffectHit, Source: combat.Punch}, 10},
		{"special", combat.Effect{Kind: combat.EffectSpecial}, 55},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewParticleSystem(256, 20, 40, 1)
			p.Spawn(tc.effect)
			assert.Equal(t, tc.expected, p.Len())
		})
	}
}

func TestParticlePoolIsBounded(t *testing.T) {
	p := NewParticleSystem(12, 20, 40, 1)
	p.Spawn(combat.Effect{Kind: combat.EffectSpecial})
	p.Spawn(combat.Effect{Kind: combat.EffectHit})
	assert.Equal(t, 12, p.Len())
}

func TestParticleHitColors(t *testing.T) {
	tests := []struct {
		src      combat.ActionState
		expected []core.Color
	}{
		{combat.Punch, []core.Color{core.ColorYellow, core.ColorBrightYellow}},
		{combat.Kick, []core.Color{core.ColorOrange, core.ColorYellow}},
		{combat.Special, []core.Color{core.ColorRed, core.ColorBrightRed}},
	}
	for _, tc := range tests {
		p := NewParticleSystem(256, 20, 40, 3)
		p.Spawn(combat.Effect{Kind: combat.EffectHit, Source: tc.src})
		for _, pt := range p.Particles() {
			assert.Contains(t, tc.expected, pt.Color, tc.src.String())
		}
	}
}

func TestParticleSpawnRanges(t *testing.T) {
	p := NewParticleSystem(256, 20, 40, 9)
	p.Spawn(combat.Effect{Kind: combat.EffectHit, X: 100, Y: 50, Source: combat.Kick})

	for _, pt := range p.Particles() {
		assert.Equal(t, 100.0, pt.X)
		assert.Equal(t, 50.0, pt.Y)
		assert.GreaterOrEqual(t, pt.Life, 20.0)
		assert.LessOrEqual(t, pt.Life, 40.0)
		assert.GreaterOrEqual(t, pt.Size, 7.5)
		assert.LessOrEqual(t, pt.Size, 15.0)
	}
}

func TestParticleUpdateAppliesGravityAndExpires(t *testing.T) {
	p := NewParticleSystem(256, 20, 40, 5)
	p.Spawn(combat.Effect{Kind: combat.EffectBlock, X: 10, Y: 10})
	before := append([]Particle(nil), p.Particles()...)

	p.Update()
	require.Len(t, p.Particles(), len(before))
	for i, pt := range p.Particles() {
		assert.InDelta(t, before[i].VY+0.1, pt.VY, 1e-9)
		assert.InDelta(t, before[i].X+before[i].VX, pt.X, 1e-9)
		assert.InDelta(t, before[i].Y+before[i].VY+0.1, pt.Y, 1e-9)
		assert.InDelta(t, before[i].Life-1, pt.Life, 1e-9)
	}

	for range 40 {
		p.Update()
	}
	assert.Zero(t, p.Len())
}

func TestParticleResetReseeds(t *testing.T) {
	p := NewParticleSystem(256, 20, 40, 11)
	p.Spawn(combat.Effect{Kind: combat.EffectSpecial})
	first := append([]Particle(nil), p.Particles()...)

	p.Reset(11)
	require.Zero(t, p.Len())
	p.Spawn(combat.Effect{Kind: combat.EffectSpecial})
	assert.Equal(t, first, p.Particles())
}

func TestParticleGravityFollowsArena(t *testing.T) {
	tests := []struct {
		name    string
		gravity float64
		pull    float64 // Block bursts fall at 0.1 under the default arena
	}{
		{"default arena", combat.DefaultGravity, 0.1},
		{"double gravity", 1.0, 0.2},
		{"weightless", 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewParticleSystem(256, 20, 40, 5)
			p.SetGravity(tc.gravity)
			p.Spawn(combat.Effect{Kind: combat.EffectBlock, X: 10, Y: 10})
			before := append([]Particle(nil), p.Particles()...)

			p.Update()
			for i, pt := range p.Particles() {
				assert.InDelta(t, before[i].VY+tc.pull, pt.VY, 1e-9)
			}
		})
	}
}
