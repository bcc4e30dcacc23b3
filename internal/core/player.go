package core

// PlayerID identifies one side of a match.
type PlayerID int

const (
	Player1 PlayerID = 1 // Left side, always a local or host player
	Player2 PlayerID = 2 // Right side, CPU, local second player or remote joiner
)

// String returns a human-readable label.
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	default:
		return "None"
	}
}

// Opponent returns the other side.
func (p PlayerID) Opponent() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}
