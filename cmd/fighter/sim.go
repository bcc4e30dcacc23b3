package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fighter/internal/game"
	"github.com/vovakirdan/tui-fighter/internal/storage"
)

var (
	flagMaxTicks uint64
	flagSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless CPU vs CPU match",
	Long: `Run a CPU vs CPU match without rendering and print the result.

The match runs as fast as possible. Two CPUs can keep each other at
bay, so the match ends on time after --max-ticks and the fighter with
more health wins.

Examples:
  fighter sim
  fighter sim --seed 42
  fighter sim --difficulty hard --max-ticks 20000
  fighter sim --save=false`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().Uint64Var(&flagMaxTicks, "max-ticks", 36000, "Stop the match after this many ticks")
	simCmd.Flags().BoolVar(&flagSave, "save", true, "Record the result in the match history")
	addTuningFlags(simCmd)
}

func runSim(_ *cobra.Command, _ []string) {
	logger := newLogger("fighter-sim")

	fighterCfg, err := loadFighterConfig()
	if err != nil {
		logger.Fatal("cannot load fighter config", "error", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	res := game.Simulate(game.Options{Config: fighterCfg, Seed: seed}, flagMaxTicks)
	logger.Debug("simulation finished", "elapsed", time.Since(start), "ticks", res.Ticks)

	winner := "Draw"
	switch res.Winner {
	case 1:
		winner = "CPU 1"
	case 2:
		winner = "CPU 2"
	}

	fmt.Printf("Seed:     %d\n", seed)
	fmt.Printf("Result:   %s (%s)\n", winner, res.Reason)
	fmt.Printf("Ticks:    %d\n", res.Ticks)
	fmt.Printf("Health:   %.0f / %.0f\n", res.Health1, res.Health2)
	fmt.Printf("Hits:     %d  Blocks: %d  Specials: %d\n", res.Hits, res.Blocks, res.Specials)

	if !flagSave {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open match history", "error", err)
		return
	}
	defer store.Close()

	rec := storage.MatchRecord{
		Mode:      "demo",
		Player1:   "CPU 1",
		Player2:   "CPU 2",
		Winner:    int(res.Winner),
		Health1:   res.Health1,
		Health2:   res.Health2,
		EndReason: res.Reason,
		Ticks:     int64(res.Ticks),
		Seed:      seed,
	}
	if res.Winner != 0 {
		rec.WinnerName = winner
	}
	if flagFPS > 0 {
		rec.Duration = int(res.Ticks) / flagFPS
	}
	if _, err := store.SaveMatch(rec); err != nil {
		logger.Error("could not save match", "error", err)
		return
	}
	logger.Info("match saved", "winner", winner, "reason", res.Reason)
}
