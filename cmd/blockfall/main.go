// blockfall is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockfall list             - List available games
//	blockfall play             - Play in this terminal
//	blockfall serve            - Start SSH server for remote play
//	blockfall web              - Serve the leaderboard over HTTP
//	blockfall scores           - Show high scores
//	blockfall sim              - Let a bot play headless games
//	blockfall config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.blockfall/scores.db)
//	--config <path>       - Use a custom blockfall.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	os.Exit(execute(os.Stderr))
}

// execute runs the root command and returns the process exit code.
func execute(stderr io.Writer) int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - stack falling pieces in your terminal",
	Long: `Blockfall is a falling-block puzzle game that runs in the terminal,
over SSH, or headless for bot simulations.

Available commands:
  list     - Show all available games
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  web      - Serve the leaderboard as JSON over HTTP
  scores   - View high scores
  sim      - Run headless bot games
  config   - Print the effective configuration

Examples:
  blockfall play
  blockfall play --difficulty hard
  blockfall serve --ssh :2222
  blockfall web --addr :8080
  blockfall sim --games 500 --seed 7`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		blockfall.SetConfigPath(flagConfig)
		blockfall.SetDifficultyPreset(flagDifficulty)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockfall/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom blockfall.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger returns a stderr logger honoring --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// openStore opens the scores database or returns nil with a warning;
// games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// checkRules reports why the configured rules cannot be used. The game
// falls back to the built-in rules in that case, so callers only warn.
func checkRules() error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	_, err = config.LoadRules(flagConfig, preset)
	return err
}

func warnOnBadRules() {
	if err := checkRules(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; playing with default rules\n", err)
	}
}
