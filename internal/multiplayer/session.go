package multiplayer

import "sync"

// SessionHandle is how the coordinator and matches reach a connected player
// without knowing about SSH or Bubble Tea.
type SessionHandle interface {
	ID() SessionID
	Name() string // Display name stored in the match history

	// Send must never block the match loop.
	Send(evt SessionEvent)

	// Done closes when the player disconnects.
	Done() <-chan struct{}
}

const defaultEventBuffer = 64

// ChannelSession delivers events through a buffered channel that the TUI
// session model drains.
type ChannelSession struct {
	id     SessionID
	name   string
	events chan SessionEvent

	done      chan struct{}
	closeOnce sync.Once
}

var _ SessionHandle = (*ChannelSession)(nil)

// NewChannelSession creates a session handle. An empty name falls back to the ID.
func NewChannelSession(id SessionID, name string, buffer int) *ChannelSession {
	if buffer < 1 {
		buffer = defaultEventBuffer
	}
	if name == "" {
		name = string(id)
	}
	return &ChannelSession{
		id:     id,
		name:   name,
		events: make(chan SessionEvent, buffer),
		done:   make(chan struct{}),
	}
}

func (s *ChannelSession) ID() SessionID               { return s.id }
func (s *ChannelSession) Name() string                { return s.name }
func (s *ChannelSession) Events() <-chan SessionEvent { return s.events }
func (s *ChannelSession) Done() <-chan struct{}       { return s.done }

// Close marks the session as gone. Safe to call more than once.
func (s *ChannelSession) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Send queues an event. A slow reader falls behind on snapshots, so when the
// buffer is full the oldest queued event makes room for the new one.
func (s *ChannelSession) Send(evt SessionEvent) {
	if isClosed(s.done) || trySend(s.events, evt) {
		return
	}
	select {
	case <-s.events:
	default:
	}
	trySend(s.events, evt)
}

func trySend(ch chan SessionEvent, evt SessionEvent) bool {
	select {
	case ch <- evt:
		return true
	default:
		return false
	}
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// SessionRegistry maps session IDs to live handles. Safe for concurrent use.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[SessionID]SessionHandle
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[SessionID]SessionHandle)}
}

// Register adds or replaces a session.
func (r *SessionRegistry) Register(session SessionHandle) {
	r.mu.Lock()
	r.sessions[session.ID()] = session
	r.mu.Unlock()
}

func (r *SessionRegistry) Unregister(id SessionID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Get looks up a connected session.
func (r *SessionRegistry) Get(id SessionID) (SessionHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count reports how many players are connected.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
