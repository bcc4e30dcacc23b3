package multiplayer

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-fighter/internal/core"
)

// OnlineGame is the simulation an online match drives.
type OnlineGame interface {
	// StepMulti advances the match by one tick using input from both players.
	StepMulti(input core.MultiInputFrame) core.StepResult

	// Snapshot returns the current state for network transmission.
	Snapshot() GameSnapshot

	// IsGameOver returns true once a fighter is knocked out.
	IsGameOver() bool

	// Winner returns the winning player or 0 if no winner yet.
	Winner() PlayerID

	// Forfeit ends the match in favour of winner.
	Forfeit(winner PlayerID)

	// Health1 returns Player 1's remaining health.
	Health1() float64

	// Health2 returns Player 2's remaining health.
	Health2() float64
}

// MatchResult contains the outcome of a finished match.
type MatchResult struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  PlayerID
	Health1 float64
	Health2 float64
	Ticks   uint64
}

// OnlineMatch is the authoritative loop of one online versus match.
type OnlineMatch struct {
	id    MatchID
	code  string
	round int
	game  OnlineGame
	log   *log.Logger

	seats [2]Seat

	// Input handling
	inputMu   sync.Mutex
	lastInput [2]core.InputFrame
	inputChan chan playerInput

	// Match state
	tick     uint64
	tickRate int
	started  time.Time
	done     chan struct{}
	doneOnce sync.Once

	// Disconnect and forfeit handling
	leaveChan chan departure
}

type playerInput struct {
	player PlayerID
	input  core.InputFrame
}

type departure struct {
	session SessionID
	reason  MatchEndReason
}

// NewOnlineMatch creates a new online match. host plays Player1.
func NewOnlineMatch(
	id MatchID,
	code string,
	round int,
	game OnlineGame,
	host, joiner SessionHandle,
	tickRate int,
	logger *log.Logger,
) *OnlineMatch {
	if logger == nil {
		logger = log.Default()
	}
	return &OnlineMatch{
		id:        id,
		code:      code,
		round:     round,
		game:      game,
		log:       logger.With("match", id),
		seats:     seats(host, joiner),
		lastInput: [2]core.InputFrame{core.NewInputFrame(), core.NewInputFrame()},
		inputChan: make(chan playerInput, 64),
		tickRate:  max(1, tickRate),
		done:      make(chan struct{}),
		leaveChan: make(chan departure, 2),
	}
}

// ID returns the match identifier.
func (m *OnlineMatch) ID() MatchID {
	return m.id
}

// Code returns the join code used to create this match.
func (m *OnlineMatch) Code() string {
	return m.code
}

// Round returns 1 for the first match of a pairing and counts rematches.
func (m *OnlineMatch) Round() int {
	return m.round
}

// Seats returns both participants in side order.
func (m *OnlineMatch) Seats() [2]Seat {
	return m.seats
}

// SendInput sends player input to the match.
// Non-blocking, uses a buffered channel.
func (m *OnlineMatch) SendInput(player PlayerID, input core.InputFrame) {
	select {
	case m.inputChan <- playerInput{player: player, input: input}:
	default:
		// Channel full, drop input (rare under normal conditions)
	}
}

// PlayerDisconnected signals that a player's session has gone away.
func (m *OnlineMatch) PlayerDisconnected(sessionID SessionID) {
	m.leave(departure{session: sessionID, reason: MatchEndReasonDisconnect})
}

// PlayerLeft signals that a player quit a running match.
func (m *OnlineMatch) PlayerLeft(sessionID SessionID) {
	m.leave(departure{session: sessionID, reason: MatchEndReasonForfeit})
}

func (m *OnlineMatch) leave(d departure) {
	select {
	case m.leaveChan <- d:
	default:
	}
}

// Run starts the authoritative match loop.
// The callback is called when the match ends.
func (m *OnlineMatch) Run(onComplete func(MatchResult)) {
	defer m.Stop()

	m.started = time.Now()
	m.log.Info("match started", "code", m.code, "round", m.round,
		"p1", m.seats[0].Session.ID(), "p2", m.seats[1].Session.ID())

	ticker := time.NewTicker(time.Second / time.Duration(m.tickRate))
	defer ticker.Stop()

	// Monitor session disconnects
	go m.monitorSessions()

	finish := func(result MatchResult) {
		m.log.Info("match ended", "reason", result.Reason, "winner", result.Winner,
			"ticks", result.Ticks, "elapsed", time.Since(m.started).Round(time.Millisecond))
		if onComplete != nil {
			onComplete(result)
		}
	}

	for {
		select {
		case <-ticker.C:
			if result, done := m.runTick(); done {
				finish(result)
				return
			}

		case d := <-m.leaveChan:
			finish(m.handleDeparture(d))
			return

		case <-m.done:
			return
		}
	}
}

func (m *OnlineMatch) runTick() (MatchResult, bool) {
	m.drainInputs()

	// Build multi-input frame; inputs are consumed this tick
	m.inputMu.Lock()
	multiInput := core.NewMultiInputFrame()
	for i := range m.lastInput {
		multiInput.SetPlayer(m.seats[i].Side, m.lastInput[i].Clone())
		m.lastInput[i].Clear()
	}
	m.inputMu.Unlock()

	m.game.StepMulti(multiInput)
	m.tick++
	m.broadcast()

	if m.game.IsGameOver() {
		return m.result(MatchEndReasonCompleted, m.game.Winner()), true
	}
	return MatchResult{}, false
}

func (m *OnlineMatch) broadcast() {
	evt := SnapshotEvent{
		MatchID:  m.id,
		Tick:     m.tick,
		Snapshot: m.game.Snapshot(),
	}
	for _, s := range m.seats {
		s.Session.Send(evt)
	}
}

func (m *OnlineMatch) drainInputs() {
	m.inputMu.Lock()
	defer m.inputMu.Unlock()

	for {
		select {
		case pi := <-m.inputChan:
			// Merge inputs (OR together actions)
			if pi.player == Player2 {
				m.lastInput[1].Merge(pi.input)
			} else {
				m.lastInput[0].Merge(pi.input)
			}
		default:
			return
		}
	}
}

// handleDeparture awards the match to whoever stayed.
func (m *OnlineMatch) handleDeparture(d departure) MatchResult {
	winner := Player1
	if d.session == m.seats[0].Session.ID() {
		winner = Player2
	}
	m.log.Warn("player left", "session", d.session, "reason", d.reason)

	m.game.Forfeit(winner)
	m.broadcast()
	return m.result(d.reason, winner)
}

func (m *OnlineMatch) result(reason MatchEndReason, winner PlayerID) MatchResult {
	return MatchResult{
		MatchID: m.id,
		Reason:  reason,
		Winner:  winner,
		Health1: m.game.Health1(),
		Health2: m.game.Health2(),
		Ticks:   m.tick,
	}
}

func (m *OnlineMatch) monitorSessions() {
	select {
	case <-m.seats[0].Session.Done():
		m.PlayerDisconnected(m.seats[0].Session.ID())
	case <-m.seats[1].Session.Done():
		m.PlayerDisconnected(m.seats[1].Session.ID())
	case <-m.done:
	}
}

// Stop gracefully stops the match.
func (m *OnlineMatch) Stop() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}

// Done closes once the loop has exited.
func (m *OnlineMatch) Done() <-chan struct{} {
	return m.done
}
