package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fighter/internal/platform/tui"
	"github.com/vovakirdan/tui-fighter/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a match you return to the menu to fight again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Match history
  Q            - Quit

Examples:
  fighter menu
  fighter menu --fps 30
  fighter menu --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	// Uses global flags from main.go (--fps, --seed, --db)
	addTuningFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	fighterCfg, err := loadFighterConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match history: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig()
	user := localUser()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.Choice == tui.ChoiceHistory {
			goBack, hErr := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if hErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", hErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from history
		}

		mode, ok := menuResult.Choice.Mode()
		if !ok {
			break
		}

		// Fresh seed for each match unless one was given
		matchCfg := cfg
		if matchCfg.Seed == 0 {
			matchCfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := tui.Run(mode, fighterCfg, store, matchCfg, user)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running match: %v\n", err)
		}
		if !backToMenu {
			break // User quit from the match
		}
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
