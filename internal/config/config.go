// Package config provides YAML-based game configuration loading and
// difficulty presets for blockfall.
package config

// BlockfallConfig contains all tunables of the game. Zero-valued fields
// left out of a YAML file keep their defaults.
type BlockfallConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the playing field.
type BoardConfig struct {
	Width      int `yaml:"width"`
	Visible    int `yaml:"visible_rows"`
	Hidden     int `yaml:"hidden_rows"`
	PreviewLen int `yaml:"preview"` // upcoming pieces shown
}

// TimingConfig defines gravity and locking. Durations are milliseconds.
type TimingConfig struct {
	LockDelayMs   float64   `yaml:"lock_delay_ms"`
	MaxLockResets int       `yaml:"max_lock_resets"`
	FallMs        []float64 `yaml:"fall_ms"` // index 0 is level 1
	MinFallMs     float64   `yaml:"min_fall_ms"`
}

// ScoringConfig defines point values. Line and spin values are multiplied
// by the level.
type ScoringConfig struct {
	Single        int `yaml:"single"`
	Double        int `yaml:"double"`
	Triple        int `yaml:"triple"`
	Tetris        int `yaml:"tetris"`
	TSpinMini     int `yaml:"tspin_mini"`
	TSpin         int `yaml:"tspin"`
	TSpinSingle   int `yaml:"tspin_single"`
	TSpinDouble   int `yaml:"tspin_double"`
	TSpinTriple   int `yaml:"tspin_triple"`
	ComboBonus    int `yaml:"combo_bonus"`
	SoftDrop      int `yaml:"soft_drop"`
	HardDrop      int `yaml:"hard_drop"`
	LinesPerLevel int `yaml:"lines_per_level"`
}

// DifficultyConfig selects a preset applied on top of the timing table.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
