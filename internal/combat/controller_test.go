package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-fighter/internal/core"
)

// scriptedRand replays fixed values and counts how many were drawn.
type scriptedRand struct {
	ints       []int
	floats     []float64
	intCalls   int
	floatCalls int
}

func (s *scriptedRand) Intn(n int) int {
	s.intCalls++
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedRand) Float64() float64 {
	s.floatCalls++
	if len(s.floats) == 0 {
		return 0.99
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func frameOf(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestHumanControllerPriority(t *testing.T) {
	rules := DefaultRules()
	h := NewHumanController()

	t.Run("first accepted action wins", func(t *testing.T) {
		self, opp := NewFighter(rules, 200), NewFighter(rules, 600)
		h.Control(self, opp, frameOf(core.ActionKick, core.ActionPunch, core.ActionBlock))
		assert.Equal(t, Punch, self.Action())
		assert.Equal(t, 90.0, self.Energy())
	})

	t.Run("movement precedes attacks", func(t *testing.T) {
		self, opp := NewFighter(rules, 200), NewFighter(rules, 600)
		h.Control(self, opp, frameOf(core.ActionLeft, core.ActionPunch))
		assert.Equal(t, 195, self.X())
		assert.Equal(t, DirLeft, self.Direction())
		assert.Equal(t, Punch, self.Action())
		assert.Equal(t, core.NewRect(135, 360, 30, 40), self.AttackBox())
	})

	t.Run("falls through to affordable action", func(t *testing.T) {
		self, opp := NewFighter(rules, 200), NewFighter(rules, 600)
		withState(self, func(s *FighterState) { s.Energy = 7 })
		h.Control(self, opp, frameOf(core.ActionPunch, core.ActionBlock))
		assert.Equal(t, Block, self.Action())
	})

	t.Run("special without meter is ignored", func(t *testing.T) {
		self, opp := NewFighter(rules, 200), NewFighter(rules, 600)
		h.Control(self, opp, frameOf(core.ActionSpecial))
		assert.Equal(t, Idle, self.Action())
	})

	t.Run("menu actions are ignored", func(t *testing.T) {
		self, opp := NewFighter(rules, 200), NewFighter(rules, 600)
		before := self.State()
		h.Control(self, opp, frameOf(core.ActionPause, core.ActionConfirm))
		assert.Equal(t, before, self.State())
	})
}

func TestCPUClassify(t *testing.T) {
	rules := DefaultRules()
	cpu := NewCPUController(DefaultCPUTuning(), &scriptedRand{})

	tests := []struct {
		name      string
		distance  int
		attacking bool
		expected  TacticKey
	}{
		{"far", 125, false, TacticKey{Range: RangeFar}},
		{"exactly twice width is medium", 120, false, TacticKey{Range: RangeMedium}},
		{"just outside close", 75, false, TacticKey{Range: RangeMedium}},
		{"close boundary", 72, false, TacticKey{Range: RangeClose}},
		{"close and attacked", 60, true, TacticKey{Range: RangeClose, OpponentAttacking: true}},
		{"far ignores attacks", 300, true, TacticKey{Range: RangeFar}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			self := NewFighter(rules, 300)
			opp := NewFighter(rules, 300+tc.distance)
			if tc.attacking {
				require.True(t, opp.RequestAction(Punch))
			}
			assert.Equal(t, tc.expected, cpu.Classify(self, opp))
		})
	}
}

func TestCPUFarWalksTowardOpponent(t *testing.T) {
	rules := DefaultRules()
	self, opp := NewFighter(rules, 600), NewFighter(rules, 200)
	rng := &scriptedRand{ints: []int{10}}
	cpu := NewCPUController(DefaultCPUTuning(), rng)

	cpu.Control(self, opp, core.InputFrame{})
	assert.Equal(t, MacroMove, cpu.Pending())
	assert.Equal(t, 40, cpu.DecisionInterval())
	assert.Equal(t, 595, self.X())
	assert.Equal(t, DirLeft, self.Direction())
	assert.Equal(t, 1, rng.intCalls, "single-choice rows draw no extra randomness")
	assert.Zero(t, rng.floatCalls)

	cpu.Control(self, opp, core.InputFrame{})
	assert.Equal(t, 590, self.X(), "move persists until the next decision")
}

func TestCPUReflexBlock(t *testing.T) {
	rules := DefaultRules()
	self, opp := NewFighter(rules, 260), NewFighter(rules, 200)
	require.True(t, opp.RequestAction(Kick))

	rng := &scriptedRand{floats: []float64{0.5}}
	cpu := NewCPUController(DefaultCPUTuning(), rng)
	cpu.Control(self, opp, core.InputFrame{})

	assert.Equal(t, Block, self.Action())
	assert.Equal(t, 95.0, self.Energy())
	assert.Equal(t, MacroNone, cpu.Pending())
}

func TestCPUFailedBlockFallsBackToTable(t *testing.T) {
	rules := DefaultRules()
	self, opp := NewFighter(rules, 260), NewFighter(rules, 200)
	require.True(t, opp.RequestAction(Kick))

	rng := &scriptedRand{ints: []int{0, 1}, floats: []float64{0.7}}
	cpu := NewCPUController(DefaultCPUTuning(), rng)
	cpu.Control(self, opp, core.InputFrame{})

	assert.Equal(t, Kick, self.Action(), "kick macro executes on the deciding tick")
	assert.Equal(t, MacroNone, cpu.Pending())
}

func TestCPUBlockReflexNeedsEnergy(t *testing.T) {
	rules := DefaultRules()
	self, opp := NewFighter(rules, 260), NewFighter(rules, 200)
	require.True(t, opp.RequestAction(Kick))
	withState(self, func(s *FighterState) { s.Energy = 4 })

	// A winning roll is still refused without energy for the block
	rng := &scriptedRand{ints: []int{0, 2}, floats: []float64{0.5}}
	cpu := NewCPUController(DefaultCPUTuning(), rng)
	cpu.Control(self, opp, core.InputFrame{})

	assert.Equal(t, 1, rng.floatCalls, "block chance is rolled before the energy check")
	assert.Equal(t, Idle, self.Action())
	assert.Equal(t, MacroMove, cpu.Pending())
	assert.Equal(t, 255, self.X())
}

func TestCPUSpecialReflex(t *testing.T) {
	rules := DefaultRules()
	self, opp := NewFighter(rules, 260), NewFighter(rules, 200)
	withState(self, func(s *FighterState) {
		s.SpecialMeter = 120
		s.SpecialReady = true
		s.ComboCount = 2
	})

	rng := &scriptedRand{floats: []float64{0.1}}
	cpu := NewCPUController(DefaultCPUTuning(), rng)
	cpu.Control(self, opp, core.InputFrame{})

	assert.Equal(t, Special, self.Action())
	assert.Zero(t, self.SpecialMeter())
	assert.Zero(t, self.ComboCount())
}

func TestCPUCloseBlockMacro(t *testing.T) {
	rules := DefaultRules()
	self, opp := NewFighter(rules, 260), NewFighter(rules, 200)

	rng := &scriptedRand{ints: []int{0, 2}}
	cpu := NewCPUController(DefaultCPUTuning(), rng)
	cpu.Control(self, opp, core.InputFrame{})

	assert.Zero(t, rng.floatCalls, "special reflex needs a full meter")
	assert.Equal(t, MacroBlock, cpu.Pending())

	// A block pick is a wait: no request until the next decision
	for range 5 {
		assert.Equal(t, Idle, self.Action())
		assert.False(t, self.IsBlocking())
		cpu.Control(self, opp, core.InputFrame{})
	}
	assert.Equal(t, MacroBlock, cpu.Pending())
	assert.Equal(t, 100.0, self.Energy())
	assert.Equal(t, 260, self.X())
}

func TestCPUMediumRange(t *testing.T) {
	rules := DefaultRules()
	self, opp := NewFighter(rules, 300), NewFighter(rules, 400)

	rng := &scriptedRand{ints: []int{0, 3}}
	cpu := NewCPUController(DefaultCPUTuning(), rng)
	cpu.Control(self, opp, core.InputFrame{})

	assert.Equal(t, MacroMove, cpu.Pending())
	assert.Equal(t, 305, self.X())
	assert.Equal(t, DirRight, self.Direction())
}

func TestCPUPendingAttackWaitsForEnergy(t *testing.T) {
	rules := DefaultRules()
	self, opp := NewFighter(rules, 300), NewFighter(rules, 400)
	withState(self, func(s *FighterState) { s.Energy = 9 })

	rng := &scriptedRand{ints: []int{0, 0}}
	cpu := NewCPUController(DefaultCPUTuning(), rng)
	cpu.Control(self, opp, core.InputFrame{})

	assert.Equal(t, Idle, self.Action())
	assert.Equal(t, MacroPunch, cpu.Pending())

	self.Tick()
	self.Tick()
	cpu.Control(self, opp, core.InputFrame{})
	assert.Equal(t, Punch, self.Action(), "punch fires once energy regenerates")
	assert.Equal(t, MacroNone, cpu.Pending())
}

func TestCPUDecisionCadence(t *testing.T) {
	rules := DefaultRules()
	self, opp := NewFighter(rules, 600), NewFighter(rules, 100)
	rng := &scriptedRand{}
	cpu := NewCPUController(DefaultCPUTuning(), rng)

	cpu.Control(self, opp, core.InputFrame{})
	require.Equal(t, 1, rng.intCalls)
	require.Equal(t, 30, cpu.DecisionInterval())

	for range 29 {
		cpu.Control(self, opp, core.InputFrame{})
	}
	assert.Equal(t, 1, rng.intCalls, "no decision before the interval elapses")

	cpu.Control(self, opp, core.InputFrame{})
	assert.Equal(t, 2, rng.intCalls)
}

func TestCPUIdlesWhileBusy(t *testing.T) {
	rules := DefaultRules()
	self, opp := NewFighter(rules, 600), NewFighter(rules, 100)
	require.True(t, self.RequestAction(Block))

	rng := &scriptedRand{}
	cpu := NewCPUController(DefaultCPUTuning(), rng)
	cpu.Control(self, opp, core.InputFrame{})

	assert.Zero(t, rng.intCalls)
	assert.Equal(t, 600, self.X())
}
