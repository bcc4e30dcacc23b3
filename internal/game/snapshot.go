package game

import (
	"github.com/vovakirdan/tui-fighter/internal/combat"
	"github.com/vovakirdan/tui-fighter/internal/core"
	"github.com/vovakirdan/tui-fighter/internal/multiplayer"
)

// Snapshot contains the complete combat state of a match for network transmission.
// Particles are not included; clients rebuild them from Effects.
type Snapshot struct {
	Tick     uint64
	Fighters [2]combat.FighterState
	Phase    Phase
	Winner   core.PlayerID
	Effects  []combat.Effect // Produced during Tick
}

// IsGameSnapshot implements the GameSnapshot interface marker.
func (Snapshot) IsGameSnapshot() {}

// Ensure Snapshot implements multiplayer.GameSnapshot
var _ multiplayer.GameSnapshot = Snapshot{}

// Ensure Match can be driven by an online match loop
var _ multiplayer.OnlineGame = (*Match)(nil)

// Snapshot returns the current match state.
func (m *Match) Snapshot() multiplayer.GameSnapshot {
	snap := Snapshot{
		Tick:   m.tick,
		Phase:  m.phase,
		Winner: m.winner,
	}
	for i, f := range m.fighters {
		snap.Fighters[i] = f.State()
	}
	if len(m.effects) > 0 {
		snap.Effects = append([]combat.Effect(nil), m.effects...)
	}
	return snap
}

// ApplySnapshot updates the match from a server snapshot.
// Effects are replayed into the local particle layer, which then steps once.
func (m *Match) ApplySnapshot(snap Snapshot) {
	m.tick = snap.Tick
	m.phase = snap.Phase
	m.winner = snap.Winner
	for i, f := range m.fighters {
		f.Restore(snap.Fighters[i])
	}

	m.effects = append(m.effects[:0], snap.Effects...)
	for _, e := range snap.Effects {
		m.particles.Spawn(e)
	}
	m.particles.Update()
}
