package multiplayer

import "github.com/vovakirdan/tui-fighter/internal/core"

// SessionEvent flows from the coordinator (or a running match) to one session.
type SessionEvent interface {
	isSessionEvent()
}

// Lobby events.
type (
	// LobbyCreatedEvent carries the join code of a freshly hosted lobby.
	LobbyCreatedEvent struct {
		Code string
	}

	// LobbyErrorEvent reports a failed host/join/rematch request.
	LobbyErrorEvent struct {
		Message string
	}

	// LobbyJoinedEvent goes to both players once the lobby is full.
	LobbyJoinedEvent struct {
		Code       string
		Side       PlayerID // Fighter this session controls
		OpponentID SessionID
	}

	// LobbyPlayerLeftEvent means the other player left before or after a round.
	LobbyPlayerLeftEvent struct {
		Code string
	}
)

// Match events.
type (
	MatchStartedEvent struct {
		MatchID MatchID
		Side    PlayerID
		Code    string // Join code, shown in the header
		Round   int    // 1 for the first match, incremented by each rematch
	}

	// MatchEndedEvent carries the final health of both fighters.
	MatchEndedEvent struct {
		MatchID MatchID
		Reason  MatchEndReason
		Winner  PlayerID // 0 if no winner (cancelled lobby)
		Health1 float64
		Health2 float64
		Ticks   uint64
	}

	// RematchRequestedEvent tells a session its opponent wants another round.
	RematchRequestedEvent struct {
		MatchID MatchID
		By      PlayerID
	}

	// SnapshotEvent is broadcast every tick while a match runs.
	SnapshotEvent struct {
		MatchID  MatchID
		Tick     uint64
		Snapshot GameSnapshot
	}
)

func (LobbyCreatedEvent) isSessionEvent()     {}
func (LobbyErrorEvent) isSessionEvent()       {}
func (LobbyJoinedEvent) isSessionEvent()      {}
func (LobbyPlayerLeftEvent) isSessionEvent()  {}
func (MatchStartedEvent) isSessionEvent()     {}
func (MatchEndedEvent) isSessionEvent()       {}
func (RematchRequestedEvent) isSessionEvent() {}
func (SnapshotEvent) isSessionEvent()         {}

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	MatchEndReasonCompleted  MatchEndReason = iota // A fighter was knocked out
	MatchEndReasonDisconnect                       // Opponent's SSH session dropped
	MatchEndReasonCancelled
	MatchEndReasonHostLeft
	MatchEndReasonJoinerLeft
	MatchEndReasonForfeit // A player left a running match
)

var endReasonNames = map[MatchEndReason]string{
	MatchEndReasonCompleted:  "Knockout",
	MatchEndReasonDisconnect: "Opponent disconnected",
	MatchEndReasonCancelled:  "Match cancelled",
	MatchEndReasonHostLeft:   "Host left",
	MatchEndReasonJoinerLeft: "Opponent left",
	MatchEndReasonForfeit:    "Forfeit",
}

func (r MatchEndReason) String() string {
	if name, ok := endReasonNames[r]; ok {
		return name
	}
	return "Unknown"
}

// GameSnapshot is the render state of a match as seen by clients.
type GameSnapshot interface {
	IsGameSnapshot()
}

// CoordinatorMessage flows from a session to the coordinator.
type CoordinatorMessage interface {
	isCoordinatorMessage()
}

// Lobby requests.
type (
	CreateLobbyMsg struct {
		SessionID SessionID
	}

	JoinLobbyMsg struct {
		SessionID SessionID
		Code      string
	}

	// CancelLobbyMsg is sent by the host while waiting for an opponent.
	CancelLobbyMsg struct {
		SessionID SessionID
		Code      string
	}

	// LeaveLobbyMsg is sent by a joiner before the match starts.
	LeaveLobbyMsg struct {
		SessionID SessionID
		Code      string
	}
)

// Match requests.
type (
	// LeaveMatchMsg forfeits a running match or leaves a finished one.
	LeaveMatchMsg struct {
		SessionID SessionID
		MatchID   MatchID
	}

	// PlayerInputMsg carries one tick of held fighter keys.
	// Clients resend held keys every tick; the match consumes one frame per tick.
	PlayerInputMsg struct {
		MatchID  MatchID
		Player   PlayerID
		TickHint uint64 // Client tick counter, informational
		Input    core.InputFrame
	}

	// ReadyForRematchMsg signals readiness for another round after a knockout.
	ReadyForRematchMsg struct {
		SessionID SessionID
		MatchID   MatchID
	}

	// SessionDisconnectedMsg is sent by the transport when a session drops.
	SessionDisconnectedMsg struct {
		SessionID SessionID
	}
)

func (CreateLobbyMsg) isCoordinatorMessage()         {}
func (JoinLobbyMsg) isCoordinatorMessage()           {}
func (CancelLobbyMsg) isCoordinatorMessage()         {}
func (LeaveLobbyMsg) isCoordinatorMessage()          {}
func (LeaveMatchMsg) isCoordinatorMessage()          {}
func (PlayerInputMsg) isCoordinatorMessage()         {}
func (ReadyForRematchMsg) isCoordinatorMessage()     {}
func (SessionDisconnectedMsg) isCoordinatorMessage() {}
