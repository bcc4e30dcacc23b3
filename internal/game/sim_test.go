package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-fighter/internal/config"
	"github.com/vovakirdan/tui-fighter/internal/core"
)

func TestSimulateIsDeterministic(t *testing.T) {
	opts := Options{Mode: ModeSolo, Config: closeConfig(), Seed: 11}

	a := Simulate(opts, 5000)
	b := Simulate(opts, 5000)

	assert.Equal(t, a, b)
	assert.LessOrEqual(t, a.Ticks, uint64(5000))
	assert.Contains(t, []string{ReasonKnockout, ReasonTime}, a.Reason)
}

func TestSimulateKnockoutWinner(t *testing.T) {
	res := Simulate(Options{Config: closeConfig(), Seed: 3}, 200000)
	if res.Reason != ReasonKnockout {
		t.Skip("CPUs stalled before a knockout")
	}

	assert.NotZero(t, res.Winner)
	loser := res.Health1
	if res.Winner == core.Player1 {
		loser = res.Health2
	}
	assert.LessOrEqual(t, loser, 0.0)
	assert.Positive(t, res.Hits+res.Blocks)
}

func TestSimulateTimeOutDecidedOnHealth(t *testing.T) {
	// Fighters too far apart to ever trade blows in a few ticks
	res := Simulate(Options{Config: config.DefaultFighterConfig(), Seed: 5}, 3)

	assert.Equal(t, ReasonTime, res.Reason)
	assert.Equal(t, uint64(3), res.Ticks)
	assert.Equal(t, res.Health1, res.Health2)
	assert.Zero(t, res.Winner, "equal health is a draw")
}
