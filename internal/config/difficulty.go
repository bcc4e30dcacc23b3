package config

import "math"

// Floor for scaled decision intervals.
const minDecisionInterval = 10

// DifficultyManager sharpens the CPU as a match goes on.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, initialLevel: cfg.InitialLevel}
}

// SetInitialLevel moves the starting point of the curve; clamped to [0, 1].
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0, 1)
}

// SetEnabled turns progression on or off. A disabled manager stays at the
// initial level for the whole match.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level is the CPU skill in [initial, 1] after ticks of play. Time
// progression rises linearly and tops out at Progression.MaxAt ticks.
func (d *DifficultyManager) Level(ticks uint64) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "time" {
		return d.initialLevel
	}
	span := float64(max(d.cfg.Progression.MaxAt, 1))
	t := clampF(float64(ticks)/span, 0, 1)
	return d.initialLevel + t*(1-d.initialLevel)
}

// CPU returns base scaled to the difficulty reached after ticks.
// Intervals shrink and reflex chances grow with the level.
func (d *DifficultyManager) CPU(base CPUConfig, ticks uint64) CPUConfig {
	level := d.Level(ticks)
	out := base

	reduction := int(math.Round(level * float64(d.cfg.Scaling.IntervalReduction)))
	out.MinInterval = max(base.MinInterval-reduction, min(base.MinInterval, minDecisionInterval))
	out.MaxInterval = max(base.MaxInterval-reduction, out.MinInterval)

	boost := level * d.cfg.Scaling.ChanceBoost
	out.BlockChance = clampF(base.BlockChance+boost, 0.0, 1.0)
	out.SpecialChance = clampF(base.SpecialChance+boost, 0.0, 1.0)
	return out
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
