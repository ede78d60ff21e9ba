package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Left/Right, H/L  - Move
  Down, J          - Soft drop
  Space            - Hard drop
  Up, X, K / Z     - Rotate clockwise / counter-clockwise
  C                - Hold
  P/Esc            - Pause
  M                - Mute
  Tab              - Scoreboard
  R                - Restart (after game over)
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower gravity
  normal - Gravity from the config table
  hard   - Faster gravity
  fixed  - Gravity never speeds up

Examples:
  blockfall play
  blockfall play --difficulty hard
  blockfall play --config ./my-blockfall.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", defaultPlayer(), "Name recorded with your scores")
}

func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := blockfall.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blockfall list' to see available games.")
		os.Exit(1)
	}

	warnOnBadRules()

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	runErr := tui.Run(game, store, cfg, flagPlayer)

	// Close store before potential exit
	if store != nil {
		store.Close() //nolint:errcheck // nothing left to flush
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
