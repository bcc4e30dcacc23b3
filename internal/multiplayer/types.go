// Package multiplayer runs online versus matches: a coordinator pairs SSH
// sessions through lobby join codes, and each match runs an authoritative
// simulation loop that broadcasts snapshots to both sides.
package multiplayer

import "github.com/vovakirdan/tui-fighter/internal/core"

// PlayerID is an alias to core.PlayerID for convenience.
// The lobby host always plays Player1, the joiner Player2.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// MatchID uniquely identifies an online match.
type MatchID string

// Seat pairs a session with the side it plays.
type Seat struct {
	Session SessionHandle
	Side    PlayerID
}

// seats returns host and joiner in side order.
func seats(host, joiner SessionHandle) [2]Seat {
	return [2]Seat{
		{Session: host, Side: Player1},
		{Session: joiner, Side: Player2},
	}
}
