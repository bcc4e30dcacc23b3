package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-fighter/internal/config"
	"github.com/vovakirdan/tui-fighter/internal/core"
	"github.com/vovakirdan/tui-fighter/internal/multiplayer"
	"github.com/vovakirdan/tui-fighter/internal/storage"
)

// SessionSource is the receiving end of a coordinator session.
type SessionSource interface {
	ID() multiplayer.SessionID
	Name() string
	Events() <-chan multiplayer.SessionEvent
}

// SessionDeps are the shared services an SSH session uses.
type SessionDeps struct {
	Store       *storage.Store
	Coordinator CoordinatorSender
	Handle      SessionSource
	Fighter     config.FighterConfig
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenLocal
	screenLobby
	screenOnline
	screenHistory
)

// SessionModel manages the full session flow: menu -> match -> menu.
// It is the top-level model used for SSH sessions and owns the single
// reader of the coordinator event channel.
type SessionModel struct {
	deps     SessionDeps
	config   core.RuntimeConfig
	screen   sessionScreen
	menu     MenuModel
	local    Model
	lobby    OnlineLobbyModel
	online   OnlineMatchModel
	history  HistoryModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps SessionDeps, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		deps:   deps,
		config: cfg,
		menu:   NewMenuModel(cfg, deps.Coordinator != nil),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), m.listen())
}

// listen waits for the next coordinator event.
func (m SessionModel) listen() tea.Cmd {
	if m.deps.Handle == nil {
		return nil
	}
	events := m.deps.Handle.Events()
	return func() tea.Msg {
		evt, ok := <-events
		if !ok {
			return nil
		}
		return evt
	}
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if evt, ok := msg.(multiplayer.SessionEvent); ok {
		next, cmd := m.route(evt)
		return next, tea.Batch(cmd, m.listen())
	}
	return m.route(msg)
}

// route forwards a message to the active screen.
func (m SessionModel) route(msg tea.Msg) (SessionModel, tea.Cmd) {
	switch m.screen {
	case screenLocal:
		return m.updateLocal(msg)
	case screenLobby:
		return m.updateLobby(msg)
	case screenOnline:
		return m.updateOnline(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (SessionModel, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		// Stale tick from a finished match
		return m, nil
	}

	next, cmd := m.menu.Update(msg)
	if menuModel, ok := next.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	m.config = m.menu.Config()
	if mode, ok := selected.Choice.Mode(); ok {
		m.local = NewModel(mode, m.deps.Fighter, m.deps.Store, m.config, m.userName())
		m.screen = screenLocal
		return m, m.local.Init()
	}

	switch selected.Choice {
	case ChoiceOnline:
		m.lobby = NewOnlineLobbyModel(m.deps.Handle.ID(), m.deps.Coordinator, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenLobby
		return m, m.lobby.Init()
	case ChoiceHistory:
		m.history = NewHistoryModel(m.deps.Store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenHistory
		return m, m.history.Init()
	}
	return m.backToMenu()
}

func (m SessionModel) updateLocal(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.local.Update(msg)
	if local, ok := next.(Model); ok {
		m.local = local
	}

	switch {
	case m.local.BackToMenu():
		return m.backToMenu()
	case m.local.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) updateLobby(msg tea.Msg) (SessionModel, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	next, cmd := m.lobby.Update(msg)
	if lobby, ok := next.(OnlineLobbyModel); ok {
		m.lobby = lobby
	}

	switch {
	case m.lobby.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.lobby.BackToMenu():
		return m.backToMenu()
	case m.lobby.State() == OnlineStateInMatch:
		m.online = NewOnlineMatchModel(m.lobby.Started(), m.deps.Handle.ID(), m.deps.Coordinator, m.deps.Fighter, m.config)
		m.screen = screenOnline
		return m, m.online.Init()
	}
	return m, cmd
}

func (m SessionModel) updateOnline(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.online.Update(msg)
	if online, ok := next.(OnlineMatchModel); ok {
		m.online = online
	}

	switch {
	case m.online.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.online.BackToMenu():
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateHistory(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.history.Update(msg)
	if history, ok := next.(HistoryModel); ok {
		m.history = history
	}

	switch {
	case m.history.IsGoingBack():
		return m.backToMenu()
	case m.history.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// backToMenu resets the menu; pending commands of the left screen are dropped.
func (m SessionModel) backToMenu() (SessionModel, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.config, m.deps.Coordinator != nil)
	return m, m.menu.Init()
}

func (m SessionModel) userName() string {
	if m.deps.Handle == nil {
		return ""
	}
	return m.deps.Handle.Name()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenLocal:
		return m.local.View()
	case screenLobby:
		return m.lobby.View()
	case screenOnline:
		return m.online.View()
	case screenHistory:
		return m.history.View()
	default:
		return m.menu.View()
	}
}
