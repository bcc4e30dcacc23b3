// Package combat implements the fighter state machine, attack resolution and
// the decision policies (keyboard and CPU) that drive a fighter each tick.
//
// The package is pure: it does no I/O, keeps no global state and takes all
// randomness through RandomSource, so a match replays bit-identically from
// the same seed.
package combat

// ActionState is the move a fighter is currently committed to.
type ActionState int

const (
	Idle ActionState = iota
	Punch
	Kick
	Block
	Special
)

// String returns a human-readable name for the action.
func (a ActionState) String() string {
	switch a {
	case Idle:
		return "Idle"
	case Punch:
		return "Punch"
	case Kick:
		return "Kick"
	case Block:
		return "Block"
	case Special:
		return "Special"
	default:
		return "Unknown"
	}
}

// IsAttack reports whether the action carries an attack box.
func (a ActionState) IsAttack() bool {
	return a == Punch || a == Kick || a == Special
}

// Direction is the horizontal facing of a fighter.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
)

// Sign returns -1 for left and +1 for right.
func (d Direction) Sign() int {
	if d == DirLeft {
		return -1
	}
	return 1
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	if d == DirLeft {
		return "Left"
	}
	return "Right"
}
