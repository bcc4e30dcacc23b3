package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-fighter/internal/config"
	"github.com/vovakirdan/tui-fighter/internal/core"
	"github.com/vovakirdan/tui-fighter/internal/game"
	"github.com/vovakirdan/tui-fighter/internal/storage"
)

// Model is the Bubble Tea model for a local match (solo, versus or demo).
type Model struct {
	match      *game.Match
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	held       [2]*core.HeldInput
	controls   core.InputFrame // One-shot match controls for the next tick
	names      [2]string
	started    time.Time
	quitting   bool
	backToMenu bool
	saved      bool // Whether the current result has been stored
}

// NewModel creates a model running a local match in the given mode.
// user names the human on the Player 1 side.
func NewModel(mode game.Mode, fighterCfg config.FighterConfig, store *storage.Store, cfg core.RuntimeConfig, user string) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	keys := NewKeyMapper()
	if mode != game.ModeVersus {
		keys = NewSinglePlayerKeyMapper()
	}

	match := game.New(game.Options{Mode: mode, Config: fighterCfg, Seed: cfg.Seed})

	holdTicks := match.Config().Input.HoldTicks
	return Model{
		match:     match,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		keyMapper: keys,
		held:      [2]*core.HeldInput{core.NewHeldInput(holdTicks), core.NewHeldInput(holdTicks)},
		controls:  core.NewInputFrame(),
		names:     playerNames(mode, user),
		started:   time.Now(),
	}
}

// playerNames returns the names stored in the match history.
func playerNames(mode game.Mode, user string) [2]string {
	if user == "" {
		user = "Player 1"
	}
	switch mode {
	case game.ModeSolo:
		return [2]string{user, "CPU"}
	case game.ModeDemo:
		return [2]string{"CPU 1", "CPU 2"}
	default:
		return [2]string{user, "Player 2"}
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	player, action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionNone:
	case action == core.ActionBack:
		// Leaving is only allowed while the fight is stopped
		if m.match.Phase() != game.PhasePlaying {
			m.backToMenu = true
			return m, tea.Quit
		}
	case action.IsCombat():
		m.held[player-1].Press(action)
	default:
		m.controls.Set(action)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	in := core.NewMultiInputFrame()
	for i, h := range m.held {
		frame := h.Frame()
		if i == 0 {
			frame.Merge(m.controls)
		}
		in.SetPlayer(core.PlayerID(i+1), frame)
		h.Advance()
	}
	m.controls.Clear()

	before := m.match.Phase()
	result := m.match.StepMulti(in)

	// Keys pressed before a pause or rematch must not leak into the next fight
	if m.match.Phase() != before {
		for _, h := range m.held {
			h.Release()
		}
	}
	if before == game.PhaseOver && m.match.Phase() == game.PhasePlaying {
		m.saved = false
		m.started = time.Now()
	}

	// Save result on game over (once)
	if result.State.GameOver && !m.saved {
		m.saveResult()
		m.saved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveResult stores the finished match in the history.
func (m *Model) saveResult() {
	if m.store == nil {
		return
	}
	winner := m.match.Winner()
	rec := storage.MatchRecord{
		Mode:      strings.ToLower(m.match.Mode().String()),
		Player1:   m.names[0],
		Player2:   m.names[1],
		Winner:    int(winner),
		Health1:   m.match.Health1(),
		Health2:   m.match.Health2(),
		EndReason: "Knockout",
		Ticks:     int64(m.match.Tick()), //nolint:gosec // tick counts stay far below MaxInt64
		Duration:  int(time.Since(m.started).Seconds()),
		Seed:      m.config.Seed,
	}
	if winner != 0 {
		rec.WinnerName = m.names[winner-1]
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveMatch(rec)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.match.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".tui-fighter", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", strings.ToLower(m.match.Mode().String()), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.match.Render(m.screen)
	return RenderScreen(m.screen)
}

// Match returns the running match.
func (m Model) Match() *game.Match {
	return m.match
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a local match and blocks until the player leaves it.
// Returns true if the player asked to go back to the menu.
func Run(mode game.Mode, fighterCfg config.FighterConfig, store *storage.Store, cfg core.RuntimeConfig, user string) (backToMenu bool, err error) {
	model := NewModel(mode, fighterCfg, store, cfg, user)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := finalModel.(Model); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
