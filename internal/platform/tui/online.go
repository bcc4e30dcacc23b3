package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-fighter/internal/config"
	"github.com/vovakirdan/tui-fighter/internal/core"
	"github.com/vovakirdan/tui-fighter/internal/game"
	"github.com/vovakirdan/tui-fighter/internal/multiplayer"
)

// CoordinatorSender delivers messages to the match coordinator.
type CoordinatorSender interface {
	Send(msg multiplayer.CoordinatorMessage)
}

// OnlineState represents the current state of the online matchmaking flow.
type OnlineState int

const (
	OnlineStateChooseMode    OnlineState = iota // Choose Host or Join
	OnlineStateHostWaiting                      // Hosting, waiting for joiner
	OnlineStateJoinEnterCode                    // Entering join code
	OnlineStateJoinWaiting                      // Waiting to connect to host
	OnlineStateInMatch                          // Match has started
)

// OnlineLobbyModel handles hosting and joining a lobby.
// Coordinator events are fed in by the owning session model.
type OnlineLobbyModel struct {
	state       OnlineState
	width       int
	height      int
	sessionID   multiplayer.SessionID
	coordinator CoordinatorSender

	// Host state
	lobbyCode string

	// Join state
	joinCodeInput string
	joinError     string

	// Match state
	started multiplayer.MatchStartedEvent

	backToMenu bool
	quitting   bool
}

// NewOnlineLobbyModel creates a new online lobby model.
func NewOnlineLobbyModel(sessionID multiplayer.SessionID, coordinator CoordinatorSender, width, height int) OnlineLobbyModel {
	return OnlineLobbyModel{
		state:       OnlineStateChooseMode,
		width:       width,
		height:      height,
		sessionID:   sessionID,
		coordinator: coordinator,
	}
}

// Init initializes the lobby model.
func (m OnlineLobbyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m OnlineLobbyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case multiplayer.LobbyCreatedEvent:
		m.lobbyCode = msg.Code
		m.state = OnlineStateHostWaiting
	case multiplayer.LobbyErrorEvent:
		m.joinError = msg.Message
		if m.state == OnlineStateJoinWaiting {
			m.state = OnlineStateJoinEnterCode
		}
	case multiplayer.MatchStartedEvent:
		m.started = msg
		m.state = OnlineStateInMatch
	}
	return m, nil
}

func (m OnlineLobbyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case OnlineStateChooseMode:
		return m.handleChooseModeKey(msg)
	case OnlineStateHostWaiting:
		return m.handleHostWaitingKey(msg)
	case OnlineStateJoinEnterCode:
		return m.handleJoinCodeKey(msg)
	case OnlineStateJoinWaiting:
		return m.handleJoinWaitingKey(msg)
	}

	return m, nil
}

// leave withdraws from whatever lobby this session is in.
func (m OnlineLobbyModel) leave() {
	switch m.state {
	case OnlineStateHostWaiting:
		m.coordinator.Send(multiplayer.CancelLobbyMsg{SessionID: m.sessionID, Code: m.lobbyCode})
	case OnlineStateJoinWaiting:
		m.coordinator.Send(multiplayer.LeaveLobbyMsg{SessionID: m.sessionID, Code: m.joinCodeInput})
	}
}

func (m OnlineLobbyModel) handleChooseModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "H", "1":
		m.coordinator.Send(multiplayer.CreateLobbyMsg{SessionID: m.sessionID})
	case "j", "J", "2":
		m.state = OnlineStateJoinEnterCode
		m.joinCodeInput = ""
		m.joinError = ""
	case "esc", "b":
		m.backToMenu = true
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m OnlineLobbyModel) handleHostWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.leave()
		m.backToMenu = true
	case "q":
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m OnlineLobbyModel) handleJoinCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc":
		m.backToMenu = true
	case "enter":
		if m.joinCodeInput != "" {
			m.state = OnlineStateJoinWaiting
			m.joinError = ""
			m.coordinator.Send(multiplayer.JoinLobbyMsg{
				SessionID: m.sessionID,
				Code:      m.joinCodeInput,
			})
		}
	case "backspace":
		if m.joinCodeInput != "" {
			m.joinCodeInput = m.joinCodeInput[:len(m.joinCodeInput)-1]
		}
	default:
		// Join codes are base32: A-Z and 2-7
		if len(key) == 1 && len(m.joinCodeInput) < 6 {
			c := strings.ToUpper(key)
			if (c[0] >= 'A' && c[0] <= 'Z') || (c[0] >= '2' && c[0] <= '7') {
				m.joinCodeInput += c
			}
		}
	}

	return m, nil
}

func (m OnlineLobbyModel) handleJoinWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.leave()
		m.state = OnlineStateJoinEnterCode
	}
	return m, nil
}

// View renders the current state.
func (m OnlineLobbyModel) View() string {
	if m.quitting {
		return ""
	}

	var lines []string
	switch m.state {
	case OnlineStateChooseMode:
		lines = []string{
			"ONLINE VERSUS", "",
			"Choose an option:", "",
			"[H] Host a match",
			"[J] Join a match", "",
			"Esc: Back  |  Q: Quit",
		}
	case OnlineStateHostWaiting:
		lines = []string{
			"HOSTING MATCH", "",
			"Share this code with your opponent:", "",
			fmt.Sprintf("[ %s ]", m.lobbyCode), "",
			"Waiting for player to join...", "",
			"Esc: Cancel  |  Q: Quit",
		}
	case OnlineStateJoinEnterCode:
		codeDisplay := m.joinCodeInput
		if len(codeDisplay) < 6 {
			codeDisplay += "_" + strings.Repeat(" ", 5-len(m.joinCodeInput))
		}
		lines = []string{
			"JOIN MATCH", "",
			"Enter the match code:", "",
			fmt.Sprintf("[ %s ]", codeDisplay),
		}
		if m.joinError != "" {
			lines = append(lines, "", "Error: "+m.joinError)
		}
		lines = append(lines, "", "Enter: Connect  |  Esc: Back")
	case OnlineStateJoinWaiting:
		lines = []string{
			"CONNECTING", "",
			"Joining match: " + m.joinCodeInput, "",
			"Please wait...", "",
			"Esc: Cancel",
		}
	case OnlineStateInMatch:
		lines = []string{"MATCH STARTING", "", "You are: " + sideText(m.started.Side), "", "Get ready!"}
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(centerText(l, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

func sideText(side core.PlayerID) string {
	if side == core.Player2 {
		return "RIGHT (P2)"
	}
	return "LEFT (P1)"
}

// State returns the current online state.
func (m OnlineLobbyModel) State() OnlineState {
	return m.state
}

// Started returns the match start event once the lobby is paired.
func (m OnlineLobbyModel) Started() multiplayer.MatchStartedEvent {
	return m.started
}

// BackToMenu returns true if user wants to go back to menu.
func (m OnlineLobbyModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineLobbyModel) IsQuitting() bool {
	return m.quitting
}

// OnlineMatchModel plays a server-driven match. The local match only
// mirrors snapshots for rendering; input is sent to the server every tick.
type OnlineMatchModel struct {
	coordinator CoordinatorSender
	sessionID   multiplayer.SessionID
	matchID     multiplayer.MatchID
	side        core.PlayerID
	code        string
	round       int
	fighterCfg  config.FighterConfig
	view        *game.Match
	screen      *core.Screen
	held        *core.HeldInput
	keyMapper   *KeyMapper
	tickRate    int

	ended         bool
	endReason     multiplayer.MatchEndReason
	rematchSent   bool
	opponentReady bool
	opponentGone  bool
	status        string

	backToMenu bool
	quitting   bool
}

// NewOnlineMatchModel creates the client side of a started match.
func NewOnlineMatchModel(
	started multiplayer.MatchStartedEvent,
	sessionID multiplayer.SessionID,
	coordinator CoordinatorSender,
	fighterCfg config.FighterConfig,
	cfg core.RuntimeConfig,
) OnlineMatchModel {
	view := game.New(game.Options{Mode: game.ModeOnline, Config: fighterCfg})
	return OnlineMatchModel{
		coordinator: coordinator,
		sessionID:   sessionID,
		matchID:     started.MatchID,
		side:        started.Side,
		code:        started.Code,
		round:       started.Round,
		fighterCfg:  fighterCfg,
		view:        view,
		screen:      core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		held:        core.NewHeldInput(view.Config().Input.HoldTicks),
		keyMapper:   NewSinglePlayerKeyMapper(),
		tickRate:    cfg.TickRate,
	}
}

// Init starts the input loop.
func (m OnlineMatchModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles keys, ticks and coordinator events.
func (m OnlineMatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)

	case TickMsg:
		if !m.ended {
			m.coordinator.Send(multiplayer.PlayerInputMsg{
				MatchID:  m.matchID,
				Player:   m.side,
				TickHint: m.view.Tick(),
				Input:    m.held.Frame(),
			})
			m.held.Advance()
		}
		return m, tickCmd(m.tickRate)

	case multiplayer.SnapshotEvent:
		if snap, ok := msg.Snapshot.(game.Snapshot); ok && msg.MatchID == m.matchID {
			m.view.ApplySnapshot(snap)
		}

	case multiplayer.MatchEndedEvent:
		if msg.MatchID == m.matchID {
			m.ended = true
			m.endReason = msg.Reason
			m.held.Release()
		}

	case multiplayer.RematchRequestedEvent:
		if msg.MatchID == m.matchID {
			m.opponentReady = true
		}

	case multiplayer.LobbyPlayerLeftEvent:
		m.opponentGone = true

	case multiplayer.LobbyErrorEvent:
		m.status = msg.Message

	case multiplayer.MatchStartedEvent:
		m.startRound(msg)
	}

	return m, nil
}

// startRound switches to a rematch; the tick loop keeps running.
func (m *OnlineMatchModel) startRound(started multiplayer.MatchStartedEvent) {
	m.matchID = started.MatchID
	m.side = started.Side
	m.round = started.Round
	m.view = game.New(game.Options{Mode: game.ModeOnline, Config: m.fighterCfg})
	m.held.Release()
	m.ended = false
	m.rematchSent = false
	m.opponentReady = false
	m.status = ""
}

func (m OnlineMatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	_, action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		// Leaving a running match forfeits it
		m.leave()
		m.backToMenu = true
	case action == core.ActionBack && m.ended:
		m.leave()
		m.backToMenu = true
	case action == core.ActionConfirm && m.canRematch():
		m.coordinator.Send(multiplayer.ReadyForRematchMsg{SessionID: m.sessionID, MatchID: m.matchID})
		m.rematchSent = true
	case action.IsCombat() && !m.ended:
		m.held.Press(action)
	}
	return m, nil
}

func (m OnlineMatchModel) leave() {
	m.coordinator.Send(multiplayer.LeaveMatchMsg{SessionID: m.sessionID, MatchID: m.matchID})
}

// canRematch reports whether a rematch can still be requested.
func (m OnlineMatchModel) canRematch() bool {
	return m.ended && !m.rematchSent && !m.opponentGone && m.endReason == multiplayer.MatchEndReasonCompleted
}

// statusLine describes the rematch state under the result box.
func (m OnlineMatchModel) statusLine() string {
	switch {
	case m.status != "":
		return m.status
	case !m.ended:
		return ""
	case m.opponentGone:
		return "Opponent left"
	case m.endReason != multiplayer.MatchEndReasonCompleted:
		return m.endReason.String()
	case m.rematchSent:
		return "Waiting for opponent..."
	case m.opponentReady:
		return "Opponent wants a rematch! ENTER to accept"
	default:
		return "ENTER rematch | B menu"
	}
}

// View renders the mirrored match.
func (m OnlineMatchModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.view.Render(m.screen)
	m.screen.DrawTextCentered(1, fmt.Sprintf("ROUND %d  CODE %s", m.round, m.code), core.ColorGray)
	m.screen.DrawTextCentered(2, "YOU: "+sideText(m.side), core.ColorWhite)
	if line := m.statusLine(); line != "" {
		m.screen.DrawTextCentered((m.screen.Height()-5)/2+5, line, core.ColorYellow)
	}
	return RenderScreen(m.screen)
}

// Side returns which fighter this session controls.
func (m OnlineMatchModel) Side() core.PlayerID {
	return m.side
}

// MatchID returns the current match ID.
func (m OnlineMatchModel) MatchID() multiplayer.MatchID {
	return m.matchID
}

// BackToMenu returns true if user wants to go back to menu.
func (m OnlineMatchModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineMatchModel) IsQuitting() bool {
	return m.quitting
}
