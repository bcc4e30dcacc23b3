package combat

import (
	"github.com/vovakirdan/tui-fighter/internal/core"
)

// Fighter owns one combatant's full combat state.
// It is mutated only through its request methods, Tick and Resolve.
type Fighter struct {
	rules  Rules
	spawnX int

	x, y int
	dir  Direction

	action        ActionState
	actionElapsed int

	health float64
	energy float64

	comboCount   int
	comboElapsed int

	specialMeter  float64
	specialReady  bool
	specialActive bool
	blocking      bool

	hitBox    core.Rect
	attackBox core.Rect
}

// NewFighter creates a fighter standing at spawnX with full resources.
func NewFighter(rules Rules, spawnX int) *Fighter {
	f := &Fighter{rules: rules, spawnX: spawnX}
	f.Reset()
	return f
}

// Reset restores spawn position, facing and every resource to its initial value.
func (f *Fighter) Reset() {
	half := f.rules.FighterWidth / 2
	f.x = core.Clamp(f.spawnX, half, f.rules.ScreenWidth-half)
	f.y = f.rules.GroundY()
	f.dir = DirLeft
	if f.x < f.rules.ScreenWidth/2 {
		f.dir = DirRight
	}

	f.action = Idle
	f.actionElapsed = 0
	f.health = f.rules.MaxHealth
	f.energy = f.rules.MaxEnergy
	f.comboCount = 0
	f.comboElapsed = 0
	f.specialMeter = 0
	f.specialReady = false
	f.specialActive = false
	f.blocking = false

	f.updateHitBox()
	f.attackBox = core.Rect{}
}

// RequestMovement walks one step in dir. Only an idle fighter can move.
func (f *Fighter) RequestMovement(dir Direction) bool {
	if f.action != Idle {
		return false
	}
	half := f.rules.FighterWidth / 2
	f.x = core.Clamp(f.x+dir.Sign()*f.rules.FighterSpeed, half, f.rules.ScreenWidth-half)
	f.dir = dir
	return true
}

// CanAct reports whether RequestAction(kind) would be accepted right now.
func (f *Fighter) CanAct(kind ActionState) bool {
	if kind == Idle || f.action != Idle {
		return false
	}
	if f.energy < f.rules.EnergyCost.Get(kind) {
		return false
	}
	if kind == Special && !f.specialReady {
		return false
	}
	return true
}

// RequestAction commits the fighter to kind. Rejected requests change nothing.
func (f *Fighter) RequestAction(kind ActionState) bool {
	if !f.CanAct(kind) {
		return false
	}

	f.action = kind
	f.actionElapsed = 0
	f.energy -= f.rules.EnergyCost.Get(kind)

	switch kind {
	case Punch, Kick:
		f.comboCount++
		f.comboElapsed = 0
	case Block:
		f.blocking = true
	case Special:
		f.specialMeter = 0
		f.specialReady = false
		f.specialActive = true
		f.comboCount = 0
		f.comboElapsed = 0
	}

	f.updateAttackBox()
	return true
}

// Tick advances the fighter by one frame.
func (f *Fighter) Tick() {
	f.updateHitBox()

	if f.action != Idle {
		f.actionElapsed++
		if f.actionElapsed >= f.rules.ActionDuration {
			f.action = Idle
			f.actionElapsed = 0
			f.blocking = false
			f.specialActive = false
		}
	}

	if f.comboCount > 0 {
		f.comboElapsed++
		if f.comboElapsed >= f.rules.ComboTimeout {
			f.comboCount = 0
			f.comboElapsed = 0
		}
	}

	if f.action == Idle && f.energy < f.rules.MaxEnergy {
		f.energy = min(f.energy+f.rules.EnergyRegen, f.rules.MaxEnergy)
	}

	if f.specialMeter >= f.rules.SpecialThreshold {
		f.specialReady = true
	}

	f.updateAttackBox()
}

func (f *Fighter) updateHitBox() {
	w, h := f.rules.FighterWidth, f.rules.FighterHeight
	f.hitBox = core.CenteredRect(f.x, f.y, w, h)
}

// updateAttackBox places the attack flush with the leading edge.
func (f *Fighter) updateAttackBox() {
	w, h := f.rules.FighterWidth, f.rules.FighterHeight
	right := f.dir == DirRight

	switch f.action {
	case Punch:
		if right {
			f.attackBox = core.NewRect(f.x+w/2, f.y-h/3, w/2, h/3)
		} else {
			f.attackBox = core.NewRect(f.x-w, f.y-h/3, w/2, h/3)
		}
	case Kick:
		if right {
			f.attackBox = core.NewRect(f.x+w/2, f.y, w, h/4)
		} else {
			f.attackBox = core.NewRect(f.x-w, f.y, w, h/4)
		}
	case Special:
		if right {
			f.attackBox = core.NewRect(f.x+w/3, f.y-h/2, w, h)
		} else {
			f.attackBox = core.NewRect(f.x-w, f.y-h/2, w, h)
		}
	default:
		f.attackBox = core.Rect{}
	}
}

// Accessors

func (f *Fighter) Rules() Rules { return f.rules }
func (f *Fighter) X() int { return f.x }
func (f *Fighter) Y() int { return f.y }
func (f *Fighter) Width() int { return f.rules.FighterWidth }
func (f *Fighter) Height() int { return f.rules.FighterHeight }
func (f *Fighter) Direction() Direction { return f.dir }
func (f *Fighter) Action() ActionState { return f.action }
func (f *Fighter) ActionElapsed() int { return f.actionElapsed }
func (f *Fighter) ActionDuration() int { return f.rules.ActionDuration }
func (f *Fighter) Health() float64 { return f.health }
func (f *Fighter) Energy() float64 { return f.energy }
func (f *Fighter) ComboCount() int { return f.comboCount }
func (f *Fighter) ComboElapsed() int { return f.comboElapsed }
func (f *Fighter) SpecialMeter() float64 { return f.specialMeter }
func (f *Fighter) SpecialReady() bool { return f.specialReady }
func (f *Fighter) SpecialActive() bool { return f.specialActive }
func (f *Fighter) IsBlocking() bool { return f.blocking }
func (f *Fighter) HitBox() core.Rect { return f.hitBox }
func (f *Fighter) AttackBox() core.Rect { return f.attackBox }
func (f *Fighter) IsAttacking() bool { return f.action.IsAttack() }
func (f *Fighter) KnockedOut() bool { return f.health <= 0 }

// FighterState is a comparable snapshot of every Fighter field.
type FighterState struct {
	X, Y          int
	Direction     Direction
	Action        ActionState
	ActionElapsed int
	Health        float64
	Energy        float64
	ComboCount    int
	ComboElapsed  int
	SpecialMeter  float64
	SpecialReady  bool
	SpecialActive bool
	Blocking      bool
	HitBox        core.Rect
	AttackBox     core.Rect
}

// State captures the fighter.
func (f *Fighter) State() FighterState {
	return FighterState{
		X:             f.x,
		Y:             f.y,
		Direction:     f.dir,
		Action:        f.action,
		ActionElapsed: f.actionElapsed,
		Health:        f.health,
		Energy:        f.energy,
		ComboCount:    f.comboCount,
		ComboElapsed:  f.comboElapsed,
		SpecialMeter:  f.specialMeter,
		SpecialReady:  f.specialReady,
		SpecialActive: f.specialActive,
		Blocking:      f.blocking,
		HitBox:        f.hitBox,
		AttackBox:     f.attackBox,
	}
}

// Restore overwrites the fighter with a snapshot, e.g. one received from a server.
func (f *Fighter) Restore(s FighterState) {
	f.x = s.X
	f.y = s.Y
	f.dir = s.Direction
	f.action = s.Action
	f.actionElapsed = s.ActionElapsed
	f.health = s.Health
	f.energy = s.Energy
	f.comboCount = s.ComboCount
	f.comboElapsed = s.ComboElapsed
	f.specialMeter = s.SpecialMeter
	f.specialReady = s.SpecialReady
	f.specialActive = s.SpecialActive
	f.blocking = s.Blocking
	f.hitBox = s.HitBox
	f.attackBox = s.AttackBox
}
