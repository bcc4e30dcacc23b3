package multiplayer

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Lobby represents a waiting room for a match.
type Lobby struct {
	Code      string
	Host      SessionHandle
	Joiner    SessionHandle
	CreatedAt time.Time
}

// CoordinatorConfig holds configuration for the coordinator.
type CoordinatorConfig struct {
	LobbyTimeout  time.Duration // How long before an empty lobby expires
	TickRate      int           // Simulation tick rate (Hz)
	CleanupPeriod time.Duration // How often to clean up expired lobbies
}

// DefaultCoordinatorConfig returns sensible defaults.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		LobbyTimeout:  2 * time.Minute,
		TickRate:      60,
		CleanupPeriod: 30 * time.Second,
	}
}

// GameFactory creates the simulation for a new match.
type GameFactory func(seed int64) (OnlineGame, error)

// MatchResultSaver is an interface for saving match results.
// This allows the coordinator to save results without depending on the storage package.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData contains match result data for persistence.
type MatchResultData struct {
	MatchID        string
	Player1        string // Display names
	Player2        string
	Player1Session string
	Player2Session string
	Winner         int // 0, 1 or 2
	WinnerName     string
	Health1        float64
	Health2        float64
	EndReason      string
	Ticks          uint64
	DurationSecs   int
}

// rematchOffer keeps a finished pairing together until both sides are ready or one leaves.
type rematchOffer struct {
	code  string
	round int
	seats [2]Seat
	ready map[SessionID]bool
}

// Coordinator manages lobbies, active matches and rematches.
type Coordinator struct {
	config      CoordinatorConfig
	gameFactory GameFactory
	sessions    *SessionRegistry
	resultSaver MatchResultSaver // Optional, can be nil
	log         *log.Logger

	mu        sync.RWMutex
	lobbies   map[string]*Lobby         // code -> lobby
	matches   map[MatchID]*OnlineMatch  // matchID -> match
	rematches map[MatchID]*rematchOffer // finished matchID -> offer

	// Track which session is in which lobby/match
	sessionLobby   map[SessionID]string  // sessionID -> lobby code
	sessionMatch   map[SessionID]MatchID // sessionID -> running matchID
	sessionRematch map[SessionID]MatchID // sessionID -> finished matchID

	// Message channel for async processing
	msgChan  chan CoordinatorMessage
	done     chan struct{}
	stopOnce sync.Once
}

// NewCoordinator creates a new coordinator.
func NewCoordinator(cfg CoordinatorConfig, factory GameFactory, sessions *SessionRegistry) *Coordinator {
	return &Coordinator{
		config:         cfg,
		gameFactory:    factory,
		sessions:       sessions,
		log:            log.Default(),
		lobbies:        make(map[string]*Lobby),
		matches:        make(map[MatchID]*OnlineMatch),
		rematches:      make(map[MatchID]*rematchOffer),
		sessionLobby:   make(map[SessionID]string),
		sessionMatch:   make(map[SessionID]MatchID),
		sessionRematch: make(map[SessionID]MatchID),
		msgChan:        make(chan CoordinatorMessage, 256),
		done:           make(chan struct{}),
	}
}

// SetResultSaver sets the optional match result saver.
func (c *Coordinator) SetResultSaver(saver MatchResultSaver) {
	c.resultSaver = saver
}

// SetLogger replaces the default logger.
func (c *Coordinator) SetLogger(logger *log.Logger) {
	if logger != nil {
		c.log = logger
	}
}

// Start begins the coordinator's background processing.
func (c *Coordinator) Start() {
	go c.processMessages()
	go c.cleanupLoop()
}

// Stop shuts down the coordinator and every running match.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		c.mu.RLock()
		defer c.mu.RUnlock()
		for _, m := range c.matches {
			m.Stop()
		}
	})
}

// Send sends a message to the coordinator for async processing.
func (c *Coordinator) Send(msg CoordinatorMessage) {
	select {
	case c.msgChan <- msg:
	case <-c.done:
	}
}

// processMessages handles incoming messages.
func (c *Coordinator) processMessages() {
	for {
		select {
		case msg := <-c.msgChan:
			c.handleMessage(msg)
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) handleMessage(msg CoordinatorMessage) {
	switch m := msg.(type) {
	case CreateLobbyMsg:
		c.handleCreateLobby(m)
	case JoinLobbyMsg:
		c.handleJoinLobby(m)
	case CancelLobbyMsg:
		c.handleCancelLobby(m)
	case LeaveLobbyMsg:
		c.handleLeaveLobby(m)
	case LeaveMatchMsg:
		c.handleLeaveMatch(m)
	case PlayerInputMsg:
		c.handlePlayerInput(m)
	case ReadyForRematchMsg:
		c.handleReadyForRematch(m)
	case SessionDisconnectedMsg:
		c.handleSessionDisconnected(m)
	}
}

func (c *Coordinator) handleCreateLobby(msg CreateLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	if c.busy(msg.SessionID) {
		c.mu.Unlock()
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}
	c.abandonRematch(msg.SessionID)

	code := c.generateUniqueCode()
	c.lobbies[code] = &Lobby{
		Code:      code,
		Host:      session,
		CreatedAt: time.Now(),
	}
	c.sessionLobby[msg.SessionID] = code
	c.mu.Unlock()

	c.log.Info("lobby created", "code", code, "host", session.Name())
	session.Send(LobbyCreatedEvent{Code: code})
}

// busy reports whether the session is already waiting or fighting.
// Must be called with lock held.
func (c *Coordinator) busy(id SessionID) bool {
	_, inLobby := c.sessionLobby[id]
	_, inMatch := c.sessionMatch[id]
	return inLobby || inMatch
}

func (c *Coordinator) handleJoinLobby(msg JoinLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy(msg.SessionID) {
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(msg.Code))
	lobby, exists := c.lobbies[code]
	if !exists {
		session.Send(LobbyErrorEvent{Message: "Lobby not found"})
		return
	}
	if lobby.Joiner != nil {
		session.Send(LobbyErrorEvent{Message: "Lobby is full"})
		return
	}
	if lobby.Host.ID() == msg.SessionID {
		session.Send(LobbyErrorEvent{Message: "Cannot join your own lobby"})
		return
	}

	c.abandonRematch(msg.SessionID)
	lobby.Joiner = session
	c.sessionLobby[msg.SessionID] = code

	lobby.Host.Send(LobbyJoinedEvent{
		Code:       code,
		Side:       Player1,
		OpponentID: msg.SessionID,
	})
	session.Send(LobbyJoinedEvent{
		Code:       code,
		Side:       Player2,
		OpponentID: lobby.Host.ID(),
	})

	delete(c.lobbies, code)
	delete(c.sessionLobby, lobby.Host.ID())
	delete(c.sessionLobby, msg.SessionID)
	c.startMatch(code, 1, lobby.Host, lobby.Joiner)
}

// startMatch creates the simulation and launches its loop.
// Must be called with lock held.
func (c *Coordinator) startMatch(code string, round int, host, joiner SessionHandle) {
	matchID := MatchID(fmt.Sprintf("match-%s-%d", code, time.Now().UnixNano()))

	game, err := c.gameFactory(time.Now().UnixNano())
	if err != nil {
		c.log.Error("cannot create match", "code", code, "err", err)
		host.Send(LobbyErrorEvent{Message: "Failed to create match"})
		joiner.Send(LobbyErrorEvent{Message: "Failed to create match"})
		return
	}

	match := NewOnlineMatch(matchID, code, round, game, host, joiner, c.config.TickRate, c.log)
	c.matches[matchID] = match
	for _, s := range match.Seats() {
		c.sessionMatch[s.Session.ID()] = matchID
		s.Session.Send(MatchStartedEvent{
			MatchID: matchID,
			Side:    s.Side,
			Code:    code,
			Round:   round,
		})
	}

	go match.Run(func(result MatchResult) {
		c.handleMatchEnded(matchID, result)
	})
}

func (c *Coordinator) handleMatchEnded(matchID MatchID, result MatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	match, exists := c.matches[matchID]
	if !exists {
		return
	}
	seats := match.Seats()

	if c.resultSaver != nil {
		c.saveResult(match, result)
	}

	for _, s := range seats {
		delete(c.sessionMatch, s.Session.ID())
	}
	delete(c.matches, matchID)

	// A knockout keeps the pair together for a rematch
	if result.Reason == MatchEndReasonCompleted {
		c.rematches[matchID] = &rematchOffer{
			code:  match.Code(),
			round: match.Round(),
			seats: seats,
			ready: make(map[SessionID]bool),
		}
		for _, s := range seats {
			c.sessionRematch[s.Session.ID()] = matchID
		}
	}

	endEvent := MatchEndedEvent{
		MatchID: matchID,
		Reason:  result.Reason,
		Winner:  result.Winner,
		Health1: result.Health1,
		Health2: result.Health2,
		Ticks:   result.Ticks,
	}
	for _, s := range seats {
		s.Session.Send(endEvent)
	}
}

// saveResult persists the outcome without blocking the coordinator.
func (c *Coordinator) saveResult(match *OnlineMatch, result MatchResult) {
	seats := match.Seats()
	winnerName := ""
	for _, s := range seats {
		if s.Side == result.Winner {
			winnerName = s.Session.Name()
		}
	}

	tickRate := max(1, c.config.TickRate)
	data := MatchResultData{
		MatchID:        string(match.ID()),
		Player1:        seats[0].Session.Name(),
		Player2:        seats[1].Session.Name(),
		Player1Session: string(seats[0].Session.ID()),
		Player2Session: string(seats[1].Session.ID()),
		Winner:         int(result.Winner),
		WinnerName:     winnerName,
		Health1:        result.Health1,
		Health2:        result.Health2,
		EndReason:      result.Reason.String(),
		Ticks:          result.Ticks,
		DurationSecs:   int(result.Ticks / uint64(tickRate)), //nolint:gosec // tickRate is clamped positive
	}
	go func() {
		if err := c.resultSaver.SaveMatchResult(data); err != nil {
			c.log.Error("cannot save match result", "match", data.MatchID, "err", err)
		}
	}()
}

func (c *Coordinator) handleReadyForRematch(msg ReadyForRematchMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	offer, exists := c.rematches[msg.MatchID]
	if !exists || c.sessionRematch[msg.SessionID] != msg.MatchID {
		if s, ok := c.sessions.Get(msg.SessionID); ok {
			s.Send(LobbyErrorEvent{Message: "Opponent is gone"})
		}
		return
	}

	offer.ready[msg.SessionID] = true
	if len(offer.ready) < len(offer.seats) {
		for _, s := range offer.seats {
			if s.Session.ID() != msg.SessionID {
				s.Session.Send(RematchRequestedEvent{MatchID: msg.MatchID, By: s.Side.Opponent()})
			}
		}
		return
	}

	c.dropRematch(msg.MatchID)
	c.startMatch(offer.code, offer.round+1, offer.seats[0].Session, offer.seats[1].Session)
}

// dropRematch forgets an offer. Must be called with lock held.
func (c *Coordinator) dropRematch(matchID MatchID) *rematchOffer {
	offer, exists := c.rematches[matchID]
	if !exists {
		return nil
	}
	for _, s := range offer.seats {
		delete(c.sessionRematch, s.Session.ID())
	}
	delete(c.rematches, matchID)
	return offer
}

// abandonRematch cancels a pending rematch and tells the opponent.
// Must be called with lock held.
func (c *Coordinator) abandonRematch(sessionID SessionID) {
	matchID, ok := c.sessionRematch[sessionID]
	if !ok {
		return
	}
	offer := c.dropRematch(matchID)
	if offer == nil {
		return
	}
	for _, s := range offer.seats {
		if s.Session.ID() != sessionID {
			s.Session.Send(LobbyPlayerLeftEvent{Code: offer.code})
		}
	}
}

// handleCancelLobby closes a lobby; only its host may cancel.
func (c *Coordinator) handleCancelLobby(msg CancelLobbyMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if lobby, ok := c.lobbies[msg.Code]; ok && lobby.Host.ID() == msg.SessionID {
		c.leaveLobby(msg.SessionID, msg.Code)
	}
}

func (c *Coordinator) handleLeaveLobby(msg LeaveLobbyMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.leaveLobby(msg.SessionID, msg.Code)
}

// leaveLobby removes a session from a lobby. A departing host closes the
// lobby; a departing joiner reopens it for someone else.
// Must be called with lock held.
func (c *Coordinator) leaveLobby(id SessionID, code string) {
	lobby, ok := c.lobbies[code]
	if !ok {
		return
	}

	switch {
	case lobby.Host.ID() == id:
		if lobby.Joiner != nil {
			lobby.Joiner.Send(MatchEndedEvent{Reason: MatchEndReasonHostLeft})
			delete(c.sessionLobby, lobby.Joiner.ID())
		}
		delete(c.lobbies, code)
		delete(c.sessionLobby, id)
	case lobby.Joiner != nil && lobby.Joiner.ID() == id:
		lobby.Joiner = nil
		delete(c.sessionLobby, id)
		lobby.Host.Send(LobbyPlayerLeftEvent{Code: code})
	}
}

// handleLeaveMatch forfeits a running match or abandons a finished one.
func (c *Coordinator) handleLeaveMatch(msg LeaveMatchMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if match, exists := c.matches[msg.MatchID]; exists {
		match.PlayerLeft(msg.SessionID)
		return
	}
	c.abandonRematch(msg.SessionID)
}

func (c *Coordinator) handlePlayerInput(msg PlayerInputMsg) {
	c.mu.RLock()
	match, exists := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if !exists {
		return
	}

	match.SendInput(msg.Player, msg.Input)
}

// handleSessionDisconnected treats a dropped connection as leaving whatever
// the session was part of. A running match is forfeited.
func (c *Coordinator) handleSessionDisconnected(msg SessionDisconnectedMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if code, ok := c.sessionLobby[msg.SessionID]; ok {
		c.leaveLobby(msg.SessionID, code)
		delete(c.sessionLobby, msg.SessionID)
	}
	if matchID, ok := c.sessionMatch[msg.SessionID]; ok {
		if match, exists := c.matches[matchID]; exists {
			match.PlayerDisconnected(msg.SessionID)
		}
	}
	c.abandonRematch(msg.SessionID)
}

func (c *Coordinator) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpiredLobbies()
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) cleanupExpiredLobbies() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for code, lobby := range c.lobbies {
		// Only expire lobbies without joiners
		if lobby.Joiner == nil && now.Sub(lobby.CreatedAt) > c.config.LobbyTimeout {
			c.log.Info("lobby expired", "code", code)
			lobby.Host.Send(LobbyErrorEvent{Message: "Lobby expired"})
			delete(c.sessionLobby, lobby.Host.ID())
			delete(c.lobbies, code)
		}
	}
}

func (c *Coordinator) generateUniqueCode() string {
	for {
		code := generateJoinCode()
		if _, exists := c.lobbies[code]; !exists {
			return code
		}
	}
}

// joinCodeLen characters of base32 are easy to read out and type.
const joinCodeLen = 6

// generateJoinCode returns a random code over A-Z and 2-7.
func generateJoinCode() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		binary.BigEndian.PutUint32(b[:], uint32(time.Now().UnixNano())) //nolint:gosec // only the low bits matter
	}
	return base32.StdEncoding.EncodeToString(b[:])[:joinCodeLen]
}

// LobbyCount returns the number of open lobbies.
func (c *Coordinator) LobbyCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lobbies)
}

// MatchCount returns the number of running matches.
func (c *Coordinator) MatchCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matches)
}

// RematchCount returns the number of finished pairings waiting on a rematch.
func (c *Coordinator) RematchCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rematches)
}
