package core

// Action represents a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Walk left
	ActionRight          // Walk right
	ActionPunch          // Quick, cheap attack
	ActionKick           // Slower reach attack
	ActionBlock          // Guard stance
	ActionSpecial        // Meter-gated special move
	ActionUp             // Menu navigation
	ActionDown           // Menu navigation
	ActionConfirm        // Enter - menu selection, rematch, restart while paused
	ActionBack           // B, Escape - go back to menu
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P, Escape - pause/unpause match
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPunch:
		return "Punch"
	case ActionKick:
		return "Kick"
	case ActionBlock:
		return "Block"
	case ActionSpecial:
		return "Special"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// IsCombat reports whether the action drives a fighter (as opposed to menus).
func (a Action) IsCombat() bool {
	return a >= ActionLeft && a <= ActionSpecial
}

// InputFrame is the input state for a single player during one tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Merge ORs every active action of other into f.
func (f *InputFrame) Merge(other InputFrame) {
	for a, on := range other.Actions {
		if on {
			f.Set(a)
		}
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// MultiInputFrame contains input from both players for a single tick.
// The platform fills it from the keyboard, a remote session or nothing (CPU).
type MultiInputFrame struct {
	ByPlayer map[PlayerID]InputFrame
}

// NewMultiInputFrame creates an empty multi-input frame.
func NewMultiInputFrame() MultiInputFrame {
	return MultiInputFrame{
		ByPlayer: make(map[PlayerID]InputFrame),
	}
}

// Player returns the input frame for a specific player.
// Returns an empty frame if the player has no input.
func (m MultiInputFrame) Player(id PlayerID) InputFrame {
	if m.ByPlayer == nil {
		return NewInputFrame()
	}
	if frame, ok := m.ByPlayer[id]; ok {
		return frame
	}
	return NewInputFrame()
}

// SetPlayer sets the input frame for a specific player.
func (m *MultiInputFrame) SetPlayer(id PlayerID, frame InputFrame) {
	if m.ByPlayer == nil {
		m.ByPlayer = make(map[PlayerID]InputFrame)
	}
	m.ByPlayer[id] = frame
}

// Press marks a single action for a player.
func (m *MultiInputFrame) Press(id PlayerID, a Action) {
	frame := m.Player(id)
	frame.Set(a)
	m.SetPlayer(id, frame)
}

// Any returns true if either player has the action active.
func (m MultiInputFrame) Any(a Action) bool {
	for _, frame := range m.ByPlayer {
		if frame.Has(a) {
			return true
		}
	}
	return false
}

// Clear resets all player inputs for the next frame.
func (m *MultiInputFrame) Clear() {
	for id := range m.ByPlayer {
		frame := m.ByPlayer[id]
		frame.Clear()
		m.ByPlayer[id] = frame
	}
}

// Clone creates a deep copy of this multi-input frame.
func (m MultiInputFrame) Clone() MultiInputFrame {
	clone := NewMultiInputFrame()
	for id, frame := range m.ByPlayer {
		clone.ByPlayer[id] = frame.Clone()
	}
	return clone
}

// HeldInput turns discrete key presses into "held" combat input.
// Terminals only report presses (plus auto-repeat), so a combat action stays
// active for holdTicks ticks after its last press. Other actions last one tick.
type HeldInput struct {
	holdTicks int
	remaining map[Action]int
	oneShot   InputFrame
}

// NewHeldInput creates a latch that keeps combat actions alive for holdTicks.
func NewHeldInput(holdTicks int) *HeldInput {
	return &HeldInput{
		holdTicks: max(1, holdTicks),
		remaining: make(map[Action]int),
		oneShot:   NewInputFrame(),
	}
}

// Press registers a key press.
func (h *HeldInput) Press(a Action) {
	if a == ActionNone {
		return
	}
	if a.IsCombat() {
		h.remaining[a] = h.holdTicks
		return
	}
	h.oneShot.Set(a)
}

// Frame returns the currently active actions.
func (h *HeldInput) Frame() InputFrame {
	frame := h.oneShot.Clone()
	for a, n := range h.remaining {
		if n > 0 {
			frame.Set(a)
		}
	}
	return frame
}

// Advance consumes one tick: one-shot actions clear, held ones count down.
func (h *HeldInput) Advance() {
	h.oneShot.Clear()
	for a, n := range h.remaining {
		if n <= 1 {
			delete(h.remaining, a)
			continue
		}
		h.remaining[a] = n - 1
	}
}

// Release drops everything, e.g. on pause or rematch.
func (h *HeldInput) Release() {
	h.oneShot.Clear()
	for a := range h.remaining {
		delete(h.remaining, a)
	}
}
