package combat

import (
	"github.com/vovakirdan/tui-fighter/internal/core"
)

// Controller issues requests on a fighter once per tick.
// in carries the keyboard or network input for this fighter; a CPU ignores it.
type Controller interface {
	Control(self, opponent *Fighter, in core.InputFrame)
}

// Intent is an abstract fighter command.
type Intent int

const (
	IntentMoveLeft Intent = iota
	IntentMoveRight
	IntentPunch
	IntentKick
	IntentBlock
	IntentSpecial
)

// Binding ties an intent to the input action that triggers it.
type Binding struct {
	Intent Intent
	Input  core.Action
}

// DefaultBindings lists intents in the order they are requested each tick.
var DefaultBindings = []Binding{
	{IntentMoveLeft, core.ActionLeft},
	{IntentMoveRight, core.ActionRight},
	{IntentPunch, core.ActionPunch},
	{IntentKick, core.ActionKick},
	{IntentBlock, core.ActionBlock},
	{IntentSpecial, core.ActionSpecial},
}

// HumanController maps pressed actions to fighter requests.
// Every active intent is requested in binding order; once one action is
// accepted the fighter is no longer idle and the rest are rejected.
type HumanController struct {
	bindings []Binding
}

// NewHumanController creates a controller with the default bindings.
func NewHumanController() *HumanController {
	return &HumanController{bindings: DefaultBindings}
}

// Control implements Controller.
func (h *HumanController) Control(self, _ *Fighter, in core.InputFrame) {
	for _, b := range h.bindings {
		if !in.Has(b.Input) {
			continue
		}
		switch b.Intent {
		case IntentMoveLeft:
			self.RequestMovement(DirLeft)
		case IntentMoveRight:
			self.RequestMovement(DirRight)
		case IntentPunch:
			self.RequestAction(Punch)
		case IntentKick:
			self.RequestAction(Kick)
		case IntentBlock:
			self.RequestAction(Block)
		case IntentSpecial:
			self.RequestAction(Special)
		}
	}
}

// RandomSource is the randomness the CPU consumes. *math/rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// Macro is the CPU's pending plan, executed every idle tick.
type Macro int

const (
	MacroNone Macro = iota
	MacroMove
	MacroPunch
	MacroKick
	MacroBlock // Picked from the table but never executed: the CPU waits
)

// String returns a human-readable name for the macro.
func (m Macro) String() string {
	switch m {
	case MacroNone:
		return "None"
	case MacroMove:
		return "Move"
	case MacroPunch:
		return "Punch"
	case MacroKick:
		return "Kick"
	case MacroBlock:
		return "Block"
	default:
		return "Unknown"
	}
}

// Range buckets horizontal distance to the opponent.
type Range int

const (
	RangeFar Range = iota
	RangeClose
	RangeMedium
)

// TacticKey selects a row of the tactic table.
// OpponentAttacking is only meaningful up close.
type TacticKey struct {
	Range             Range
	OpponentAttacking bool
}

// Tactic is one row of the CPU decision table.
type Tactic struct {
	Reflex       ActionState // Immediate action tried first, Idle for none
	ReflexChance float64
	RollFirst    bool    // Draw the chance before checking the reflex can be afforded
	Choices      []Macro // Uniform pick when the reflex does not fire
}

// DefaultTactics builds the decision table for the given tuning.
func DefaultTactics(t CPUTuning) map[TacticKey]Tactic {
	return map[TacticKey]Tactic{
		{Range: RangeFar}: {
			Choices: []Macro{MacroMove},
		},
		{Range: RangeClose, OpponentAttacking: true}: {
			Reflex:       Block,
			ReflexChance: t.BlockChance,
			RollFirst:    true,
			Choices:      []Macro{MacroPunch, MacroKick, MacroMove},
		},
		{Range: RangeClose}: {
			Reflex:       Special,
			ReflexChance: t.SpecialChance,
			Choices:      []Macro{MacroPunch, MacroKick, MacroBlock, MacroMove},
		},
		{Range: RangeMedium}: {
			Choices: []Macro{MacroPunch, MacroKick, MacroMove, MacroMove},
		},
	}
}

// CPUController re-decides periodically and executes its pending macro
// on every idle tick in between.
type CPUController struct {
	tuning  CPUTuning
	tactics map[TacticKey]Tactic
	rng     RandomSource

	decisionTimer    int
	decisionInterval int
	pending          Macro
}

// NewCPUController creates a CPU policy. The first idle tick makes a decision.
func NewCPUController(tuning CPUTuning, rng RandomSource) *CPUController {
	return &CPUController{
		tuning:  tuning,
		tactics: DefaultTactics(tuning),
		rng:     rng,
	}
}

// Reset forgets the pending plan and decision cadence.
func (c *CPUController) Reset() {
	c.decisionTimer = 0
	c.decisionInterval = 0
	c.pending = MacroNone
}

// SetTuning swaps the tuning and rebuilds the tactic table.
// The current plan and cadence are kept.
func (c *CPUController) SetTuning(t CPUTuning) {
	c.tuning = t
	c.tactics = DefaultTactics(t)
}

// Tuning returns the active tuning.
func (c *CPUController) Tuning() CPUTuning {
	return c.tuning
}

// Pending returns the macro executed on idle ticks.
func (c *CPUController) Pending() Macro {
	return c.pending
}

// DecisionInterval returns the idle ticks until the next decision.
func (c *CPUController) DecisionInterval() int {
	return c.decisionInterval
}

// Control implements Controller.
func (c *CPUController) Control(self, opponent *Fighter, _ core.InputFrame) {
	if self.Action() != Idle {
		return
	}

	c.decisionTimer++
	if c.decisionTimer >= c.decisionInterval {
		if c.decide(self, opponent) {
			return
		}
	}

	c.execute(self, opponent)
}

// Classify buckets the distance between two fighters.
func (c *CPUController) Classify(self, opponent *Fighter) TacticKey {
	distance := float64(core.Abs(self.X() - opponent.X()))
	width := float64(self.Width())

	switch {
	case distance > width*c.tuning.FarRange:
		return TacticKey{Range: RangeFar}
	case distance <= width*c.tuning.CloseRange:
		return TacticKey{Range: RangeClose, OpponentAttacking: opponent.IsAttacking()}
	default:
		return TacticKey{Range: RangeMedium}
	}
}

// decide picks a new plan. It returns true when a reflex action was taken.
func (c *CPUController) decide(self, opponent *Fighter) bool {
	c.decisionTimer = 0
	c.decisionInterval = c.tuning.MinInterval + c.rng.Intn(c.tuning.MaxInterval-c.tuning.MinInterval+1)

	tactic := c.tactics[c.Classify(self, opponent)]

	if tactic.Reflex != Idle && c.reflexFires(self, tactic) {
		self.RequestAction(tactic.Reflex)
		c.pending = MacroNone
		return true
	}

	switch len(tactic.Choices) {
	case 0:
		c.pending = MacroNone
	case 1:
		c.pending = tactic.Choices[0]
	default:
		c.pending = tactic.Choices[c.rng.Intn(len(tactic.Choices))]
	}
	return false
}

// reflexFires decides whether the row's reflex action is taken. The block
// reflex always consumes a random draw; the special reflex only rolls once
// it is ready and affordable.
func (c *CPUController) reflexFires(self *Fighter, t Tactic) bool {
	if t.RollFirst {
		return c.rng.Float64() < t.ReflexChance && self.CanAct(t.Reflex)
	}
	return self.CanAct(t.Reflex) && c.rng.Float64() < t.ReflexChance
}

func (c *CPUController) execute(self, opponent *Fighter) {
	switch c.pending {
	case MacroMove:
		dir := DirLeft
		if self.X() < opponent.X() {
			dir = DirRight
		}
		self.RequestMovement(dir)
	case MacroPunch:
		if self.RequestAction(Punch) {
			c.pending = MacroNone
		}
	case MacroKick:
		if self.RequestAction(Kick) {
			c.pending = MacroNone
		}
	}
}
