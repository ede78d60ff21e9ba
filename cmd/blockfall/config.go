package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration blockfall would use, as YAML, after the
search path and --difficulty are applied. Redirect it to a file to get a
starting point for your own config.

Search order:
  --config <path>
  ~/.blockfall/configs/blockfall.yaml
  ./configs/blockfall.yaml
  built-in defaults

Examples:
  blockfall config
  blockfall config --difficulty hard
  blockfall config --defaults > ~/.blockfall/configs/blockfall.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the commented built-in defaults")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults {
		os.Stdout.Write(config.DefaultYAML()) //nolint:errcheck // stdout
		return
	}

	cfg, err := config.LoadBlockfall(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if preset != "" {
		cfg.Difficulty.Preset = preset
	}

	// Catch values the engine would reject before printing them.
	if _, err := config.ToRules(cfg, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("# source: %s\n", config.Locate(flagConfig))
	os.Stdout.Write(out) //nolint:errcheck // stdout
}
