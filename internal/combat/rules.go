package combat

import "math"

// ActionTable holds one number per action, e.g. damage or energy cost.
type ActionTable struct {
	Punch   float64
	Kick    float64
	Block   float64
	Special float64
}

// Get returns the entry for the action, 0 for Idle.
func (t ActionTable) Get(a ActionState) float64 {
	switch a {
	case Punch:
		return t.Punch
	case Kick:
		return t.Kick
	case Block:
		return t.Block
	case Special:
		return t.Special
	default:
		return 0
	}
}

// Rules are the tuning constants shared by both fighters.
// Geometry is in integer world units, resources are float64.
type Rules struct {
	ScreenWidth  int
	ScreenHeight int
	GroundOffset int // Fighter y = ScreenHeight - GroundOffset
	SpawnLeftX   int
	SpawnRightX  int
	Gravity      float64 // Scales the pull on effect debris; fighters stay grounded

	FighterWidth  int
	FighterHeight int
	FighterSpeed  int

	MaxHealth   float64
	MaxEnergy   float64
	EnergyRegen float64 // Per idle tick

	ActionDuration       int     // Frames every action lasts
	ConnectFrameFraction float64 // Point of the swing where the attack resolves

	Damage     ActionTable
	EnergyCost ActionTable

	SpecialThreshold   float64
	BlockMultiplier    float64 // Share of damage a block lets through to the blocker's meter
	MeterGainPerDamage float64 // Attacker meter gained per point of unblocked damage

	ComboTimeout int
	ComboBonus   float64 // Extra damage share per combo hit beyond the first
}

// DefaultGravity is the arena gravity the particle bursts are tuned for.
const DefaultGravity = 0.5

// DefaultRules returns the standard tuning.
func DefaultRules() Rules {
	return Rules{
		ScreenWidth:  800,
		ScreenHeight: 500,
		GroundOffset: 100,
		SpawnLeftX:   200,
		SpawnRightX:  600,
		Gravity:      DefaultGravity,

		FighterWidth:  60,
		FighterHeight: 120,
		FighterSpeed:  5,

		MaxHealth:   100,
		MaxEnergy:   100,
		EnergyRegen: 0.5,

		ActionDuration:       20,
		ConnectFrameFraction: 0.5,

		Damage:     ActionTable{Punch: 5, Kick: 8, Special: 20},
		EnergyCost: ActionTable{Punch: 10, Kick: 15, Block: 5, Special: 50},

		SpecialThreshold:   100,
		BlockMultiplier:    0.25,
		MeterGainPerDamage: 2,

		ComboTimeout: 60,
		ComboBonus:   0.2,
	}
}

// ConnectFrame is the single value of actionElapsed at which an attack resolves.
func (r Rules) ConnectFrame() int {
	return int(math.Floor(float64(r.ActionDuration) * r.ConnectFrameFraction))
}

// GroundY is the fixed vertical position of both fighters.
func (r Rules) GroundY() int {
	return r.ScreenHeight - r.GroundOffset
}

// CPUTuning parameterizes the CPU decision policy.
type CPUTuning struct {
	MinInterval   int     // Fewest idle ticks between decisions
	MaxInterval   int     // Most idle ticks between decisions (inclusive)
	CloseRange    float64 // Distance, in fighter widths, counted as close
	FarRange      float64 // Distance, in fighter widths, beyond which the CPU only walks
	BlockChance   float64 // Reflex block probability when the opponent attacks up close
	SpecialChance float64 // Reflex special probability up close
}

// DefaultCPUTuning returns the standard CPU opponent.
func DefaultCPUTuning() CPUTuning {
	return CPUTuning{
		MinInterval:   30,
		MaxInterval:   90,
		CloseRange:    1.2,
		FarRange:      2.0,
		BlockChance:   0.7,
		SpecialChance: 0.3,
	}
}
