package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-fighter/internal/config"
	"github.com/vovakirdan/tui-fighter/internal/core"
	"github.com/vovakirdan/tui-fighter/internal/game"
	"github.com/vovakirdan/tui-fighter/internal/multiplayer"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// recordingSender captures coordinator messages.
type recordingSender struct {
	sent []multiplayer.CoordinatorMessage
}

func (s *recordingSender) Send(msg multiplayer.CoordinatorMessage) {
	s.sent = append(s.sent, msg)
}

func (s *recordingSender) last() multiplayer.CoordinatorMessage {
	if len(s.sent) == 0 {
		return nil
	}
	return s.sent[len(s.sent)-1]
}

func TestKeyMapperTwoPlayers(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		player core.PlayerID
		action core.Action
		quit   bool
	}{
		{"p1 left", runeKey('a'), core.Player1, core.ActionLeft, false},
		{"p1 punch", runeKey('r'), core.Player1, core.ActionPunch, false},
		{"p1 special", runeKey('f'), core.Player1, core.ActionSpecial, false},
		{"p2 right", tea.KeyMsg{Type: tea.KeyRight}, core.Player2, core.ActionRight, false},
		{"p2 kick", runeKey('.'), core.Player2, core.ActionKick, false},
		{"p2 block", runeKey('m'), core.Player2, core.ActionBlock, false},
		{"pause", tea.KeyMsg{Type: tea.KeyEsc}, core.Player1, core.ActionPause, false},
		{"confirm", tea.KeyMsg{Type: tea.KeyEnter}, core.Player1, core.ActionConfirm, false},
		{"back", runeKey('b'), core.Player1, core.ActionBack, false},
		{"quit", runeKey('q'), core.Player1, core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.Player1, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.Player1, core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player, action, quit := km.MapKey(tt.msg)
			if player != tt.player || action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v, %v; want %v, %v, %v",
					tt.msg.String(), player, action, quit, tt.player, tt.action, tt.quit)
			}
		})
	}
}

func TestSinglePlayerKeyMapperArrowsDrivePlayer1(t *testing.T) {
	km := NewSinglePlayerKeyMapper()

	player, action, _ := km.MapKey(tea.KeyMsg{Type: tea.KeyLeft})
	if player != core.Player1 || action != core.ActionLeft {
		t.Errorf("left arrow = %v %v, want Player 1 Left", player, action)
	}
	player, action, _ = km.MapKey(runeKey('/'))
	if player != core.Player1 || action != core.ActionSpecial {
		t.Errorf("slash = %v %v, want Player 1 Special", player, action)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionHistory},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func newTestModel(mode game.Mode) Model {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
	return NewModel(mode, config.DefaultFighterConfig(), nil, cfg, "alice")
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestModelHeldKeyMovesFighter(t *testing.T) {
	m := newTestModel(game.ModeVersus)
	startX := m.Match().Fighter(core.Player2).X()

	m = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	// One press stays held for several ticks
	for range 3 {
		m = step(t, m, TickMsg{})
	}

	if got := m.Match().Fighter(core.Player2).X(); got >= startX {
		t.Errorf("Player 2 x = %v, expected to walk left from %v", got, startX)
	}
}

func TestModelPauseAndBackToMenu(t *testing.T) {
	m := newTestModel(game.ModeSolo)

	// Back is ignored mid-fight
	m = step(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}

	m = step(t, m, runeKey('p'))
	m = step(t, m, TickMsg{})
	if m.Match().Phase() != game.PhasePaused {
		t.Fatalf("phase = %v, want paused", m.Match().Phase())
	}

	next, cmd := m.Update(runeKey('b'))
	m = next.(Model)
	if !m.BackToMenu() || cmd == nil {
		t.Error("back while paused should leave the match")
	}
	if m.View() != "" {
		t.Error("view should be empty after leaving")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(game.ModeDemo)
	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestPlayerNames(t *testing.T) {
	if got := playerNames(game.ModeSolo, "alice"); got != [2]string{"alice", "CPU"} {
		t.Errorf("solo names = %v", got)
	}
	if got := playerNames(game.ModeVersus, ""); got != [2]string{"Player 1", "Player 2"} {
		t.Errorf("versus names = %v", got)
	}
	if got := playerNames(game.ModeDemo, "alice"); got != [2]string{"CPU 1", "CPU 2"} {
		t.Errorf("demo names = %v", got)
	}
}

func TestMenuOnlineEntry(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24}

	has := func(m MenuModel) bool {
		for _, item := range m.items {
			if item.Choice == ChoiceOnline {
				return true
			}
		}
		return false
	}
	if has(NewMenuModel(cfg, false)) {
		t.Error("local menu should not offer online play")
	}
	if !has(NewMenuModel(cfg, true)) {
		t.Error("SSH menu should offer online play")
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, false)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.(MenuModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	if m.Selected() == nil || m.Selected().Choice != ChoiceVersus || cmd == nil {
		t.Fatalf("selected = %+v, want versus", m.Selected())
	}
	if mode, ok := m.Selected().Choice.Mode(); !ok || mode != game.ModeVersus {
		t.Errorf("Mode() = %v, %v", mode, ok)
	}
	if _, ok := ChoiceHistory.Mode(); ok {
		t.Error("history is not a match mode")
	}
}

func TestOnlineLobbyHostFlow(t *testing.T) {
	sender := &recordingSender{}
	m := NewOnlineLobbyModel("s1", sender, 80, 24)

	next, _ := m.Update(runeKey('h'))
	m = next.(OnlineLobbyModel)
	if msg, ok := sender.last().(multiplayer.CreateLobbyMsg); !ok || msg.SessionID != "s1" {
		t.Fatalf("sent %+v, want CreateLobbyMsg", sender.last())
	}

	next, _ = m.Update(multiplayer.LobbyCreatedEvent{Code: "ABC234"})
	m = next.(OnlineLobbyModel)
	if m.State() != OnlineStateHostWaiting || !strings.Contains(m.View(), "ABC234") {
		t.Errorf("state = %v, view should show the code", m.State())
	}

	next, _ = m.Update(multiplayer.MatchStartedEvent{MatchID: "m1", Side: core.Player1, Code: "ABC234", Round: 1})
	m = next.(OnlineLobbyModel)
	if m.State() != OnlineStateInMatch || m.Started().MatchID != "m1" {
		t.Errorf("state = %v, started = %+v", m.State(), m.Started())
	}
}

func TestOnlineLobbyJoinCodeInput(t *testing.T) {
	sender := &recordingSender{}
	m := NewOnlineLobbyModel("s2", sender, 80, 24)

	next, _ := m.Update(runeKey('j'))
	m = next.(OnlineLobbyModel)
	// 1 and 8 are not in the base32 alphabet
	for _, r := range "ab1c8d" {
		next, _ = m.Update(runeKey(r))
		m = next.(OnlineLobbyModel)
	}
	if m.joinCodeInput != "ABCD" {
		t.Fatalf("code = %q, want ABCD", m.joinCodeInput)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(OnlineLobbyModel)
	if msg, ok := sender.last().(multiplayer.JoinLobbyMsg); !ok || msg.Code != "ABCD" {
		t.Fatalf("sent %+v, want JoinLobbyMsg", sender.last())
	}

	next, _ = m.Update(multiplayer.LobbyErrorEvent{Message: "Lobby not found"})
	m = next.(OnlineLobbyModel)
	if m.State() != OnlineStateJoinEnterCode || !strings.Contains(m.View(), "Lobby not found") {
		t.Errorf("error should return to code entry, state = %v", m.State())
	}
}

func newOnlineMatch(sender *recordingSender) OnlineMatchModel {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	started := multiplayer.MatchStartedEvent{MatchID: "m1", Side: core.Player2, Code: "ABC234", Round: 1}
	return NewOnlineMatchModel(started, "s2", sender, config.DefaultFighterConfig(), cfg)
}

func TestOnlineMatchSendsHeldInput(t *testing.T) {
	sender := &recordingSender{}
	m := newOnlineMatch(sender)

	next, _ := m.Update(runeKey('r'))
	next, _ = next.(OnlineMatchModel).Update(TickMsg{})
	m = next.(OnlineMatchModel)

	msg, ok := sender.last().(multiplayer.PlayerInputMsg)
	if !ok {
		t.Fatalf("sent %+v, want PlayerInputMsg", sender.last())
	}
	if msg.MatchID != "m1" || msg.Player != core.Player2 || !msg.Input.Has(core.ActionPunch) {
		t.Errorf("input = %+v", msg)
	}
}

func TestOnlineMatchAppliesSnapshots(t *testing.T) {
	sender := &recordingSender{}
	m := newOnlineMatch(sender)

	server := game.New(game.Options{Mode: game.ModeOnline, Config: config.DefaultFighterConfig()})
	in := core.NewMultiInputFrame()
	in.Press(core.Player1, core.ActionRight)
	for range 5 {
		server.StepMulti(in)
	}

	next, _ := m.Update(multiplayer.SnapshotEvent{MatchID: "m1", Snapshot: server.Snapshot()})
	m = next.(OnlineMatchModel)
	if m.view.Tick() != 5 {
		t.Errorf("tick = %d, want 5", m.view.Tick())
	}
	if got, want := m.view.Fighter(core.Player1).X(), server.Fighter(core.Player1).X(); got != want {
		t.Errorf("mirrored x = %v, want %v", got, want)
	}

	// Snapshots for another match are ignored
	next, _ = m.Update(multiplayer.SnapshotEvent{MatchID: "other", Snapshot: game.Snapshot{Tick: 99}})
	if next.(OnlineMatchModel).view.Tick() != 5 {
		t.Error("foreign snapshot was applied")
	}
}

func TestOnlineMatchRematch(t *testing.T) {
	sender := &recordingSender{}
	m := newOnlineMatch(sender)

	next, _ := m.Update(multiplayer.MatchEndedEvent{MatchID: "m1", Reason: multiplayer.MatchEndReasonCompleted, Winner: core.Player1})
	m = next.(OnlineMatchModel)
	if m.statusLine() != "ENTER rematch | B menu" {
		t.Errorf("status = %q", m.statusLine())
	}

	// No more input once the match is over
	sent := len(sender.sent)
	next, _ = m.Update(TickMsg{})
	m = next.(OnlineMatchModel)
	if len(sender.sent) != sent {
		t.Error("input sent after the match ended")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(OnlineMatchModel)
	if msg, ok := sender.last().(multiplayer.ReadyForRematchMsg); !ok || msg.MatchID != "m1" {
		t.Fatalf("sent %+v, want ReadyForRematchMsg", sender.last())
	}
	if m.statusLine() != "Waiting for opponent..." {
		t.Errorf("status = %q", m.statusLine())
	}

	next, _ = m.Update(multiplayer.MatchStartedEvent{MatchID: "m2", Side: core.Player2, Code: "ABC234", Round: 2})
	m = next.(OnlineMatchModel)
	if m.MatchID() != "m2" || m.round != 2 || m.ended || m.statusLine() != "" {
		t.Errorf("rematch state: id=%s round=%d ended=%v", m.MatchID(), m.round, m.ended)
	}
}

func TestOnlineMatchLeaveForfeits(t *testing.T) {
	sender := &recordingSender{}
	m := newOnlineMatch(sender)

	next, _ := m.Update(runeKey('q'))
	m = next.(OnlineMatchModel)
	if msg, ok := sender.last().(multiplayer.LeaveMatchMsg); !ok || msg.MatchID != "m1" {
		t.Fatalf("sent %+v, want LeaveMatchMsg", sender.last())
	}
	if !m.BackToMenu() || m.IsQuitting() {
		t.Error("q should leave to the menu, not end the session")
	}
}

// fakeSource is a SessionSource with a test-owned channel.
type fakeSource struct {
	events chan multiplayer.SessionEvent
}

func (fakeSource) ID() multiplayer.SessionID                  { return "s1" }
func (fakeSource) Name() string                               { return "alice" }
func (f fakeSource) Events() <-chan multiplayer.SessionEvent { return f.events }

func TestSessionModelOnlineFlow(t *testing.T) {
	sender := &recordingSender{}
	deps := SessionDeps{
		Coordinator: sender,
		Handle:      fakeSource{events: make(chan multiplayer.SessionEvent, 1)},
		Fighter:     config.DefaultFighterConfig(),
	}
	var model tea.Model = NewSessionModel(deps, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})

	update := func(msg tea.Msg) tea.Cmd {
		var cmd tea.Cmd
		model, cmd = model.Update(msg)
		return cmd
	}

	// Solo, Versus, Online
	update(tea.KeyMsg{Type: tea.KeyDown})
	update(tea.KeyMsg{Type: tea.KeyDown})
	update(tea.KeyMsg{Type: tea.KeyEnter})
	if model.(SessionModel).screen != screenLobby {
		t.Fatalf("screen = %v, want lobby", model.(SessionModel).screen)
	}

	update(runeKey('h'))
	if _, ok := sender.last().(multiplayer.CreateLobbyMsg); !ok {
		t.Fatalf("sent %+v, want CreateLobbyMsg", sender.last())
	}

	cmd := update(multiplayer.MatchStartedEvent{MatchID: "m1", Side: core.Player1, Code: "ABC234", Round: 1})
	if model.(SessionModel).screen != screenOnline || cmd == nil {
		t.Fatalf("screen = %v, want online match", model.(SessionModel).screen)
	}
	if !strings.Contains(model.View(), "ROUND 1") {
		t.Error("online view should show the round")
	}

	update(runeKey('q'))
	if model.(SessionModel).screen != screenMenu {
		t.Errorf("screen = %v, want menu after leaving", model.(SessionModel).screen)
	}
}

func TestSessionModelHistoryWithoutStore(t *testing.T) {
	var model tea.Model = NewSessionModel(SessionDeps{Fighter: config.DefaultFighterConfig()}, core.RuntimeConfig{ScreenW: 100, ScreenH: 30})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.(SessionModel).screen != screenHistory {
		t.Fatalf("screen = %v, want history", model.(SessionModel).screen)
	}
	if !strings.Contains(model.View(), "No matches recorded yet") {
		t.Error("empty history should say so")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.(SessionModel).screen != screenMenu {
		t.Errorf("screen = %v, want menu", model.(SessionModel).screen)
	}
}
