package combat

// Effect anchor offsets from the defender's position.
const (
	blockEffectOffsetX = 20
	blockEffectRise    = 30
	hitEffectOffsetX   = 10
)

// Resolve lands attacker's swing on defender if this is the connect frame and
// the attack box overlaps the defender's hit box. It returns at most one effect.
func Resolve(attacker, defender *Fighter) []Effect {
	rules := attacker.rules

	if !attacker.action.IsAttack() || attacker.actionElapsed != rules.ConnectFrame() {
		return nil
	}
	if !attacker.attackBox.Intersects(defender.hitBox) {
		return nil
	}

	damage := rules.Damage.Get(attacker.action)
	if attacker.comboCount > 1 {
		damage += damage * rules.ComboBonus * float64(attacker.comboCount-1)
	}

	if defender.blocking {
		absorbed := damage * rules.BlockMultiplier
		defender.specialMeter += absorbed
		return []Effect{{
			Kind:      EffectBlock,
			X:         defender.x + defender.dir.Sign()*blockEffectOffsetX,
			Y:         defender.y - blockEffectRise,
			Intensity: absorbed,
			Source:    attacker.action,
		}}
	}

	defender.health = max(defender.health-damage, 0)
	attacker.specialMeter += damage * rules.MeterGainPerDamage
	return []Effect{{
		Kind:      EffectHit,
		X:         defender.x + attacker.dir.Sign()*hitEffectOffsetX,
		Y:         defender.y - attacker.rules.FighterHeight/3,
		Intensity: damage,
		Source:    attacker.action,
	}}
}
