package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fighter/internal/platform/tui"
	"github.com/vovakirdan/tui-fighter/internal/storage"
)

var (
	flagHistoryMode  string
	flagHistoryLimit int
)

// historyModes are the mode labels stored with each match.
var historyModes = []string{"solo", "versus", "online", "demo"}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent matches",
	Long: `Display the most recent matches and the win tally per mode.

Examples:
  fighter history
  fighter history --mode online
  fighter history --limit 50`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryMode, "mode", "", "Only show one mode: solo, versus, online, demo")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of matches to show")
}

func runHistory(_ *cobra.Command, _ []string) {
	if flagHistoryMode != "" && !slices.Contains(historyModes, flagHistoryMode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (want one of %s)\n", flagHistoryMode, strings.Join(historyModes, ", "))
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	matches, err := store.RecentMatches(flagHistoryMode, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		return
	}

	fmt.Println("Recent Matches")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Run 'fighter play' to fight the first one!")
		return
	}

	format := "  %-12s  %-7s  %-14s  %-14s  %-14s  %-9s  %s\n"
	fmt.Printf(format, "Date", "Mode", "P1", "P2", "Winner", "HP", "Ticks")
	fmt.Printf(format, "----", "----", "--", "--", "------", "--", "-----")
	for _, rec := range matches {
		row := tui.HistoryRow(rec)
		fmt.Printf(format, row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	}

	tallies, err := store.Tallies()
	if err != nil || len(tallies) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("  %-7s  %-7s  %-7s  %-7s  %s\n", "Mode", "Matches", "P1 wins", "P2 wins", "Avg ticks")
	for _, t := range tallies {
		fmt.Printf("  %-7s  %-7d  %-7d  %-7d  %.0f\n", t.Mode, t.Matches, t.P1Wins, t.P2Wins, t.AvgTicks)
	}
}
