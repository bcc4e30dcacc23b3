// Package game runs a two-fighter match: it owns both fighters and their
// controllers, orders the per-tick update, feeds combat effects into the
// particle layer and tracks pause and game-over.
package game

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-fighter/internal/combat"
	"github.com/vovakirdan/tui-fighter/internal/config"
	"github.com/vovakirdan/tui-fighter/internal/core"
)

// Mode selects who controls each fighter.
type Mode int

const (
	ModeSolo   Mode = iota // Player 1 against the CPU
	ModeVersus             // Two players on one keyboard
	ModeOnline             // Two remote players, server authoritative
	ModeDemo               // CPU against CPU
)

// String returns the label shown in the HUD.
func (m Mode) String() string {
	switch m {
	case ModeSolo:
		return "SOLO"
	case ModeVersus:
		return "VERSUS"
	case ModeOnline:
		return "ONLINE"
	case ModeDemo:
		return "DEMO"
	default:
		return "UNKNOWN"
	}
}

// ParseMode converts a flag value into a mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "solo":
		return ModeSolo, nil
	case "versus", "vs":
		return ModeVersus, nil
	case "demo":
		return ModeDemo, nil
	default:
		return 0, fmt.Errorf("game: unknown mode %q", s)
	}
}

// Phase is the match's screen state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhasePaused
	PhaseOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "Playing"
	case PhasePaused:
		return "Paused"
	case PhaseOver:
		return "Over"
	default:
		return "Unknown"
	}
}

// Options configures a new match.
type Options struct {
	Mode   Mode
	Config config.FighterConfig
	Seed   int64
}

// Match is a deterministic two-fighter simulation.
type Match struct {
	mode  Mode
	cfg   config.FighterConfig
	rules combat.Rules
	seed  int64

	fighters    [2]*combat.Fighter
	controllers [2]combat.Controller
	cpus        [2]*combat.CPUController // nil for human sides
	difficulty  *config.DifficultyManager

	particles *ParticleSystem
	effects   []combat.Effect // Produced during the last tick

	tick   uint64
	phase  Phase
	winner core.PlayerID
}

// New creates a match ready to play its first tick.
// A zero Config falls back to the defaults.
func New(opts Options) *Match {
	cfg := opts.Config
	if cfg.Arena.Width == 0 {
		cfg = config.DefaultFighterConfig()
	}
	rules := RulesFromConfig(cfg)

	m := &Match{
		mode:       opts.Mode,
		cfg:        cfg,
		rules:      rules,
		seed:       opts.Seed,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		particles:  NewParticleSystem(cfg.Effects.MaxParticles, cfg.Effects.MinLife, cfg.Effects.MaxLife, opts.Seed+1),
	}
	m.particles.SetGravity(rules.Gravity)
	m.fighters[0] = combat.NewFighter(rules, rules.SpawnLeftX)
	m.fighters[1] = combat.NewFighter(rules, rules.SpawnRightX)

	tuning := CPUTuningFromConfig(cfg.CPU)
	for i := range m.controllers {
		if m.cpuSide(core.PlayerID(i + 1)) {
			m.cpus[i] = combat.NewCPUController(tuning, rand.New(rand.NewSource(m.cpuSeed(i))))
			m.controllers[i] = m.cpus[i]
		} else {
			m.controllers[i] = combat.NewHumanController()
		}
	}
	return m
}

// cpuSide reports whether the CPU drives the given player.
func (m *Match) cpuSide(id core.PlayerID) bool {
	switch m.mode {
	case ModeSolo:
		return id == core.Player2
	case ModeDemo:
		return true
	default:
		return false
	}
}

// cpuSeed gives each CPU its own stream, separate from the particles.
func (m *Match) cpuSeed(i int) int64 {
	if i == 1 {
		return m.seed
	}
	return m.seed + 2
}

// Reset starts a rematch with the same mode, config and seed.
func (m *Match) Reset() {
	for i, f := range m.fighters {
		f.Reset()
		if m.cpus[i] != nil {
			m.cpus[i] = combat.NewCPUController(CPUTuningFromConfig(m.cfg.CPU), rand.New(rand.NewSource(m.cpuSeed(i))))
			m.controllers[i] = m.cpus[i]
		}
	}
	m.particles.Reset(m.seed + 1)
	m.effects = m.effects[:0]
	m.tick = 0
	m.phase = PhasePlaying
	m.winner = 0
}

// StepMulti advances the match by one tick with input for both players.
func (m *Match) StepMulti(in core.MultiInputFrame) core.StepResult {
	m.effects = m.effects[:0]
	restart := in.Any(core.ActionConfirm)

	switch m.phase {
	case PhaseOver:
		// Online rematches go through the lobby
		if restart && m.mode != ModeOnline {
			m.Reset()
		}
		return core.StepResult{State: m.State()}
	case PhasePaused:
		if restart {
			m.Reset()
		} else if in.Any(core.ActionPause) {
			m.phase = PhasePlaying
		}
		return core.StepResult{State: m.State()}
	}

	if in.Any(core.ActionPause) && m.mode != ModeOnline {
		m.phase = PhasePaused
		return core.StepResult{State: m.State()}
	}

	m.advance(in)
	return core.StepResult{State: m.State()}
}

// advance runs one simulation tick. Player 1 always goes first.
func (m *Match) advance(in core.MultiInputFrame) {
	a, b := m.fighters[0], m.fighters[1]
	m.tick++

	a.Tick()
	b.Tick()

	m.applyDifficulty()
	m.controllers[0].Control(a, b, in.Player(core.Player1))
	m.controllers[1].Control(b, a, in.Player(core.Player2))

	for _, f := range m.fighters {
		if e, ok := combat.SpecialTrigger(f); ok {
			m.emit(e)
		}
	}
	m.emit(combat.Resolve(a, b)...)
	m.emit(combat.Resolve(b, a)...)

	m.particles.Update()

	switch {
	case a.KnockedOut():
		m.finish(core.Player2)
	case b.KnockedOut():
		m.finish(core.Player1)
	}
}

// applyDifficulty retunes CPU sides as the match goes on.
func (m *Match) applyDifficulty() {
	if !m.difficulty.IsEnabled() {
		return
	}
	tuning := CPUTuningFromConfig(m.difficulty.CPU(m.cfg.CPU, m.tick))
	for _, cpu := range m.cpus {
		if cpu != nil && cpu.Tuning() != tuning {
			cpu.SetTuning(tuning)
		}
	}
}

func (m *Match) emit(effects ...combat.Effect) {
	for _, e := range effects {
		m.effects = append(m.effects, e)
		m.particles.Spawn(e)
	}
}

func (m *Match) finish(winner core.PlayerID) {
	m.phase = PhaseOver
	m.winner = winner
}

// Forfeit ends the match in favour of the given player.
func (m *Match) Forfeit(winner core.PlayerID) {
	if m.phase != PhaseOver {
		m.finish(winner)
	}
}

// SetInitialDifficulty overrides the starting CPU difficulty level.
func (m *Match) SetInitialDifficulty(level float64) {
	m.difficulty.SetInitialLevel(level)
}

// State returns the current match summary.
func (m *Match) State() core.GameState {
	return core.GameState{
		Tick:     m.tick,
		GameOver: m.phase == PhaseOver,
		Paused:   m.phase == PhasePaused,
		Winner:   m.winner,
	}
}

// Fighter returns the fighter for a player.
func (m *Match) Fighter(id core.PlayerID) *combat.Fighter {
	if id == core.Player2 {
		return m.fighters[1]
	}
	return m.fighters[0]
}

// Effects returns the effect events produced by the last tick.
func (m *Match) Effects() []combat.Effect { return m.effects }

// Particles returns the particle layer.
func (m *Match) Particles() *ParticleSystem { return m.particles }

func (m *Match) Mode() Mode                   { return m.mode }
func (m *Match) Phase() Phase                 { return m.phase }
func (m *Match) Tick() uint64                 { return m.tick }
func (m *Match) Rules() combat.Rules          { return m.rules }
func (m *Match) Config() config.FighterConfig { return m.cfg }
func (m *Match) IsGameOver() bool             { return m.phase == PhaseOver }
func (m *Match) Winner() core.PlayerID        { return m.winner }
func (m *Match) Health1() float64             { return m.fighters[0].Health() }
func (m *Match) Health2() float64             { return m.fighters[1].Health() }

// RulesFromConfig maps the YAML configuration onto combat rules.
func RulesFromConfig(cfg config.FighterConfig) combat.Rules {
	return combat.Rules{
		ScreenWidth:  cfg.Arena.Width,
		ScreenHeight: cfg.Arena.Height,
		GroundOffset: cfg.Arena.GroundOffset,
		SpawnLeftX:   cfg.Arena.SpawnLeftX,
		SpawnRightX:  cfg.Arena.SpawnRightX,
		Gravity:      cfg.Arena.Gravity,

		FighterWidth:  cfg.Fighter.Width,
		FighterHeight: cfg.Fighter.Height,
		FighterSpeed:  cfg.Fighter.Speed,

		MaxHealth:   cfg.Fighter.MaxHealth,
		MaxEnergy:   cfg.Fighter.MaxEnergy,
		EnergyRegen: cfg.Fighter.EnergyRegen,

		ActionDuration:       cfg.Combat.ActionDuration,
		ConnectFrameFraction: cfg.Combat.ConnectFrameFraction,

		Damage:     actionTable(cfg.Combat.Damage),
		EnergyCost: actionTable(cfg.Combat.EnergyCost),

		SpecialThreshold:   cfg.Combat.SpecialThreshold,
		BlockMultiplier:    cfg.Combat.BlockMultiplier,
		MeterGainPerDamage: cfg.Combat.MeterGainPerDamage,

		ComboTimeout: cfg.Combat.ComboTimeout,
		ComboBonus:   cfg.Combat.ComboBonus,
	}
}

// CPUTuningFromConfig maps the YAML CPU section onto the decision policy tuning.
func CPUTuningFromConfig(c config.CPUConfig) combat.CPUTuning {
	return combat.CPUTuning{
		MinInterval:   c.MinInterval,
		MaxInterval:   c.MaxInterval,
		CloseRange:    c.CloseRange,
		FarRange:      c.FarRange,
		BlockChance:   c.BlockChance,
		SpecialChance: c.SpecialChance,
	}
}

func actionTable(v config.ActionValues) combat.ActionTable {
	return combat.ActionTable{Punch: v.Punch, Kick: v.Kick, Block: v.Block, Special: v.Special}
}
