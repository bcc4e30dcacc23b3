package config

import (
	_ "embed"
)

//go:embed defaults/fighter.yaml
var defaultFighterYAML []byte

// DefaultFighterConfig returns the hard-coded fighter configuration.
// It matches defaults/fighter.yaml and is the last resort of Load.
func DefaultFighterConfig() FighterConfig {
	return FighterConfig{
		Arena: ArenaConfig{
			Width:        800,
			Height:       500,
			GroundOffset: 100,
			SpawnLeftX:   200,
			SpawnRightX:  600,
			Gravity:      0.5,
		},
		Fighter: FighterStats{
			Width:       60,
			Height:      120,
			Speed:       5,
			MaxHealth:   100,
			MaxEnergy:   100,
			EnergyRegen: 0.5,
		},
		Combat: CombatConfig{
			ActionDuration:       20,
			ConnectFrameFraction: 0.5,
			Damage:               ActionValues{Punch: 5, Kick: 8, Special: 20},
			EnergyCost:           ActionValues{Punch: 10, Kick: 15, Block: 5, Special: 50},
			SpecialThreshold:     100,
			BlockMultiplier:      0.25,
			MeterGainPerDamage:   2,
			ComboTimeout:         60,
			ComboBonus:           0.2,
		},
		CPU: CPUConfig{
			MinInterval:   30,
			MaxInterval:   90,
			CloseRange:    1.2,
			FarRange:      2.0,
			BlockChance:   0.7,
			SpecialChance: 0.3,
		},
		Effects: EffectsConfig{
			MaxParticles: 256,
			MinLife:      20,
			MaxLife:      40,
		},
		Input: InputConfig{
			HoldTicks: 8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 7200, // 2 minutes at 60fps
			},
			Scaling: ScalingConfig{
				IntervalReduction: 20,
				ChanceBoost:       0.15,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFighterYAML
}
