// Package config provides YAML-based fighter configuration loading,
// validation and difficulty management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// FighterConfig contains all tuning for a match.
type FighterConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Fighter    FighterStats     `yaml:"fighter"`
	Combat     CombatConfig     `yaml:"combat"`
	CPU        CPUConfig        `yaml:"cpu"`
	Effects    EffectsConfig    `yaml:"effects"`
	Input      InputConfig      `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ArenaConfig defines the world the fighters stand in.
type ArenaConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	GroundOffset int     `yaml:"ground_offset"`
	SpawnLeftX   int     `yaml:"spawn_left_x"`
	SpawnRightX  int     `yaml:"spawn_right_x"`
	Gravity      float64 `yaml:"gravity"`
}

// FighterStats defines body size and resources.
type FighterStats struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Speed       int     `yaml:"speed"`
	MaxHealth   float64 `yaml:"max_health"`
	MaxEnergy   float64 `yaml:"max_energy"`
	EnergyRegen float64 `yaml:"energy_regen"`
}

// ActionValues holds one number per fighter action.
type ActionValues struct {
	Punch   float64 `yaml:"punch"`
	Kick    float64 `yaml:"kick"`
	Block   float64 `yaml:"block"`
	Special float64 `yaml:"special"`
}

// CombatConfig defines timing, damage and meter rules.
type CombatConfig struct {
	ActionDuration       int          `yaml:"action_duration"`
	ConnectFrameFraction float64      `yaml:"connect_frame_fraction"`
	Damage               ActionValues `yaml:"damage"`
	EnergyCost           ActionValues `yaml:"energy_cost"`
	SpecialThreshold     float64      `yaml:"special_threshold"`
	BlockMultiplier      float64      `yaml:"block_multiplier"`
	MeterGainPerDamage   float64      `yaml:"meter_gain_per_damage"`
	ComboTimeout         int          `yaml:"combo_timeout"`
	ComboBonus           float64      `yaml:"combo_bonus"`
}

// CPUConfig defines the CPU opponent.
type CPUConfig struct {
	MinInterval   int     `yaml:"min_interval"`
	MaxInterval   int     `yaml:"max_interval"`
	CloseRange    float64 `yaml:"close_range"` // In fighter widths
	FarRange      float64 `yaml:"far_range"`   // In fighter widths
	BlockChance   float64 `yaml:"block_chance"`
	SpecialChance float64 `yaml:"special_chance"`
}

// EffectsConfig bounds the particle layer.
type EffectsConfig struct {
	MaxParticles int `yaml:"max_particles"`
	MinLife      int `yaml:"min_life"`
	MaxLife      int `yaml:"max_life"`
}

// InputConfig tunes keyboard handling.
type InputConfig struct {
	HoldTicks int `yaml:"hold_ticks"` // Ticks a key press counts as held
}

// DifficultyConfig defines how the CPU sharpens during a match.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "time" or "none"
	MaxAt int    `yaml:"max_at"` // Ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	IntervalReduction int     `yaml:"interval_reduction"` // Ticks shaved off decision intervals at max difficulty
	ChanceBoost       float64 `yaml:"chance_boost"`       // Added to reflex chances at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalid, s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// Validate reports the first out-of-range setting, wrapped in ErrInvalid.
func (c FighterConfig) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Arena.Width > 0 && c.Arena.Height > 0, "arena size must be positive"},
		{c.Arena.GroundOffset >= 0 && c.Arena.GroundOffset < c.Arena.Height, "ground_offset must lie inside the arena"},
		{c.Fighter.Width > 0 && c.Fighter.Height > 0, "fighter size must be positive"},
		{c.Fighter.Width < c.Arena.Width, "fighter must be narrower than the arena"},
		{c.Fighter.Speed > 0, "fighter speed must be positive"},
		{c.Fighter.MaxHealth > 0 && c.Fighter.MaxEnergy > 0, "max_health and max_energy must be positive"},
		{c.Fighter.EnergyRegen >= 0, "energy_regen must not be negative"},
		{c.Combat.ActionDuration > 0, "action_duration must be positive"},
		{inUnit(c.Combat.ConnectFrameFraction), "connect_frame_fraction must be within [0,1]"},
		{nonNegative(c.Combat.Damage) && nonNegative(c.Combat.EnergyCost), "damage and energy_cost must not be negative"},
		{c.Combat.SpecialThreshold > 0, "special_threshold must be positive"},
		{inUnit(c.Combat.BlockMultiplier), "block_multiplier must be within [0,1]"},
		{c.Combat.MeterGainPerDamage >= 0 && c.Combat.ComboBonus >= 0, "meter gain and combo bonus must not be negative"},
		{c.Combat.ComboTimeout > 0, "combo_timeout must be positive"},
		{c.CPU.MinInterval > 0 && c.CPU.MinInterval <= c.CPU.MaxInterval, "cpu intervals must satisfy 0 < min_interval <= max_interval"},
		{c.CPU.CloseRange >= 0 && c.CPU.CloseRange <= c.CPU.FarRange, "cpu ranges must satisfy 0 <= close_range <= far_range"},
		{inUnit(c.CPU.BlockChance) && inUnit(c.CPU.SpecialChance), "cpu chances must be within [0,1]"},
		{c.Effects.MaxParticles >= 0, "max_particles must not be negative"},
		{c.Effects.MinLife > 0 && c.Effects.MinLife <= c.Effects.MaxLife, "particle life must satisfy 0 < min_life <= max_life"},
		{c.Input.HoldTicks > 0, "hold_ticks must be positive"},
		{inUnit(c.Difficulty.InitialLevel), "initial_level must be within [0,1]"},
	}

	for _, check := range checks {
		if !check.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, check.msg)
		}
	}
	return nil
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

func nonNegative(v ActionValues) bool {
	return v.Punch >= 0 && v.Kick >= 0 && v.Block >= 0 && v.Special >= 0
}
