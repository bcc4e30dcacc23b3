package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-fighter/internal/core"
	"github.com/vovakirdan/tui-fighter/internal/game"
	"github.com/vovakirdan/tui-fighter/internal/platform/tui"
	"github.com/vovakirdan/tui-fighter/internal/storage"
)

var flagMode string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fight a match",
	Long: `Start a match in the terminal.

Modes:
  solo    - You (left) against the CPU (default)
  versus  - Two players sharing one keyboard
  demo    - Watch two CPUs fight

Controls:
  Player 1   A/D move, R punch, T kick, Y block, F special
  Player 2   Left/Right move, "," punch, "." kick, M block, / special
  P/Esc      Pause
  Enter      Rematch (after a knockout) or restart (while paused)
  B          Leave (while paused or after a knockout)
  Q/Ctrl+C   Quit

In solo mode the arrow keys and Player 2 keys also drive your fighter.

Difficulty options:
  easy   - Slow, hesitant CPU that sharpens over the match
  normal - Start at 30% difficulty, progresses to max
  hard   - Aggressive CPU starting at 70% difficulty
  fixed  - No progression, stays at config's initial level

Examples:
  fighter play
  fighter play --mode versus
  fighter play --difficulty hard
  fighter play --config ./my-fighter.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "solo", "Match mode: solo, versus, demo")
	addTuningFlags(playCmd)
}

func runPlay(_ *cobra.Command, _ []string) {
	mode, err := game.ParseMode(flagMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fighterCfg, err := loadFighterConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open match history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match history: %v\n", err)
		// Continue without storage - the match still works
		store = nil
	}

	_, runErr := tui.Run(mode, fighterCfg, store, runtimeConfig(), localUser())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running match: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.RuntimeConfig{TickRate: flagFPS, Seed: flagSeed}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg.WithDefaults()
}

// localUser names Player 1 in the match history.
func localUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return ""
}
