package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the built-in configuration. It matches the
// embedded YAML and is the last fallback of the loader.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Board: BoardConfig{
			Width:      10,
			Visible:    20,
			Hidden:     2,
			PreviewLen: 3,
		},
		Timing: TimingConfig{
			LockDelayMs:   500,
			MaxLockResets: 15,
			FallMs:        []float64{1000, 793, 618, 473, 355, 262, 190, 135, 94, 64, 43, 28, 18, 11, 7},
			MinFallMs:     5,
		},
		Scoring: ScoringConfig{
			Single:        100,
			Double:        300,
			Triple:        500,
			Tetris:        800,
			TSpinMini:     100,
			TSpin:         400,
			TSpinSingle:   800,
			TSpinDouble:   1200,
			TSpinTriple:   1600,
			ComboBonus:    50,
			SoftDrop:      1,
			HardDrop:      2,
			LinesPerLevel: 10,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBlockfallYAML
}
