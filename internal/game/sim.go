package game

import (
	"github.com/vovakirdan/tui-fighter/internal/combat"
	"github.com/vovakirdan/tui-fighter/internal/core"
)

// End reasons reported by Simulate.
const (
	ReasonKnockout = "Knockout"
	ReasonTime     = "Time"
)

// SimResult is the outcome of a headless CPU vs CPU match.
type SimResult struct {
	Winner   core.PlayerID // 0 for a draw
	Reason   string
	Ticks    uint64
	Health1  float64
	Health2  float64
	Hits     int
	Blocks   int
	Specials int
}

// Simulate runs a demo match without rendering until a knockout or maxTicks.
// Two CPUs can stall against each other, so a time-out is decided on
// remaining health.
func Simulate(opts Options, maxTicks uint64) SimResult {
	opts.Mode = ModeDemo
	m := New(opts)
	idle := core.NewMultiInputFrame()

	var res SimResult
	for !m.IsGameOver() && m.Tick() < maxTicks {
		m.StepMulti(idle)
		for _, e := range m.Effects() {
			switch e.Kind {
			case combat.EffectHit:
				res.Hits++
			case combat.EffectBlock:
				res.Blocks++
			case combat.EffectSpecial:
				res.Specials++
			}
		}
	}

	res.Ticks = m.Tick()
	res.Health1 = m.Health1()
	res.Health2 = m.Health2()

	switch {
	case m.IsGameOver():
		res.Winner = m.Winner()
		res.Reason = ReasonKnockout
	case res.Health1 > res.Health2:
		res.Winner = core.Player1
		res.Reason = ReasonTime
	case res.Health2 > res.Health1:
		res.Winner = core.Player2
		res.Reason = ReasonTime
	default:
		res.Reason = ReasonTime
	}
	return res
}
