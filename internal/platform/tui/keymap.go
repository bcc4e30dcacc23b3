package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-fighter/internal/core"
)

// KeyMapper translates Bubble Tea key messages to fighter actions.
// Both players share one keyboard:
//
//	Player 1: a/d move, r punch, t kick, y block, f special
//	Player 2: left/right move, "," punch, "." kick, m block, / special
//
// With a single local player the arrow keys drive Player 1 as well.
type KeyMapper struct {
	singlePlayer bool
}

// NewKeyMapper creates a key mapper for two players on one keyboard.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// NewSinglePlayerKeyMapper creates a key mapper where every fighter key
// belongs to Player 1.
func NewSinglePlayerKeyMapper() *KeyMapper {
	return &KeyMapper{singlePlayer: true}
}

var player1Keys = map[string]core.Action{
	"a": core.ActionLeft,
	"d": core.ActionRight,
	"r": core.ActionPunch,
	"t": core.ActionKick,
	"y": core.ActionBlock,
	"f": core.ActionSpecial,
}

var player2Keys = map[string]core.Action{
	"left":  core.ActionLeft,
	"right": core.ActionRight,
	",":     core.ActionPunch,
	".":     core.ActionKick,
	"m":     core.ActionBlock,
	"/":     core.ActionSpecial,
}

// MapKey translates a key message to an action and the player it belongs to.
// Match controls (pause, confirm, back) are reported for Player 1.
// Returns ActionNone for unbound keys; isQuit is set for quit requests.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (player core.PlayerID, action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.Player1, core.ActionQuit, true
	}

	if a, ok := player1Keys[key]; ok {
		return core.Player1, a, false
	}
	if a, ok := player2Keys[key]; ok {
		if km.singlePlayer {
			return core.Player1, a, false
		}
		return core.Player2, a, false
	}

	// Match controls
	switch key {
	case "p", "esc":
		return core.Player1, core.ActionPause, false
	case "enter":
		return core.Player1, core.ActionConfirm, false
	case "b":
		return core.Player1, core.ActionBack, false
	}

	return core.Player1, core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionHistory
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab", "h":
		return MenuActionHistory
	}

	return MenuActionNone
}
