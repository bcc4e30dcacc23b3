// fighter is a two-player stick-figure fighting game for the terminal.
//
// Usage:
//
//	fighter play             - Fight a match (solo vs CPU or versus on one keyboard)
//	fighter menu             - Start menu to pick a mode interactively
//	fighter serve            - Start SSH server for remote and online play
//	fighter history          - Show recent matches and win tallies
//	fighter sim              - Run a headless CPU vs CPU match
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible matches
//	--db <path>          - Set database path (default: ~/.tui-fighter/history.db)
//	--log-level <level>  - Set log level (debug, info, warn, error)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fighter/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	// Match tuning flags shared by play, menu, serve and sim
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fighter",
	Short: "TUI Fighter - Stick-figure fighting in your terminal",
	Long: `TUI Fighter is a terminal fighting game for two stick figures.
Punch, kick, block and charge your special meter until one fighter falls.

Available commands:
  play     - Fight a match directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote and online play
  history  - View recent matches
  sim      - Run a headless CPU vs CPU match

Examples:
  fighter play
  fighter play --mode versus
  fighter menu
  fighter serve --ssh :2222
  fighter sim --seed 42`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tui-fighter/history.db", "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger builds the stderr logger shared by a command.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// addTuningFlags registers --config and --difficulty on a command.
func addTuningFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom fighter config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// loadFighterConfig loads the match tuning and applies the difficulty preset.
func loadFighterConfig() (config.FighterConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.FighterConfig{}, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return config.FighterConfig{}, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}
