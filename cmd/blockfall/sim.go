package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/sim"
)

var (
	flagSimGames    int
	flagSimMaxTicks int
	flagSimProgress bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Let a bot play headless games",
	Long: `Play games without a terminal, driven by a simple placement bot,
and print a score report. Game i uses seed --seed + i, so runs with the
same flags, config and difficulty are reproducible.

Examples:
  blockfall sim
  blockfall sim --games 1000 --seed 7 --difficulty hard
  blockfall sim --max-ticks 36000 --config ./tuned.yaml`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 100, "Number of games to play")
	simCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 60*60*10, "Tick limit per game (0 = until game over)")
	simCmd.Flags().BoolVar(&flagSimProgress, "progress", true, "Show a progress bar on stderr")
}

func runSim(_ *cobra.Command, _ []string) {
	logger := newLogger("blockfall-sim")

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rules, err := config.LoadRules(flagConfig, preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	var progress io.Writer
	if flagSimProgress {
		progress = os.Stderr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := sim.Run(ctx, sim.Options{
		Games:    flagSimGames,
		Seed:     flagSeed,
		MaxTicks: flagSimMaxTicks,
		FPS:      flagFPS,
		Rules:    rules,
		Progress: progress,
		Logger:   logger,
	})
	if report == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
	if err != nil {
		logger.Warn("simulation interrupted", "finished", len(report.Games))
	}

	if _, err := report.WriteTo(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
	}
}
