package combat

// EffectKind classifies an effect event.
type EffectKind int

const (
	EffectHit     EffectKind = iota // Unblocked attack landed
	EffectBlock                     // Attack absorbed by a block
	EffectSpecial                   // Special move triggered
)

// String returns a human-readable name for the kind.
func (k EffectKind) String() string {
	switch k {
	case EffectHit:
		return "Hit"
	case EffectBlock:
		return "Block"
	case EffectSpecial:
		return "Special"
	default:
		return "Unknown"
	}
}

// Effect is a presentation event in world coordinates.
// Once returned, the core keeps no reference to it.
type Effect struct {
	Kind      EffectKind
	X, Y      int
	Intensity float64     // Damage dealt or absorbed
	Source    ActionState // Action that produced the effect
}

// SpecialTrigger reports the effect for a special that was accepted this tick.
// A special is fresh while its elapsed counter is still zero.
func SpecialTrigger(f *Fighter) (Effect, bool) {
	if f.action != Special || f.actionElapsed != 0 {
		return Effect{}, false
	}
	return Effect{
		Kind:      EffectSpecial,
		X:         f.x,
		Y:         f.y,
		Intensity: f.rules.Damage.Special,
		Source:    Special,
	}, true
}
