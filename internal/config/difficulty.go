package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/blockfall/internal/tetris"
)

// ParsePreset converts a CLI or YAML value into a preset. An empty string
// means "use whatever the config file says".
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return "", nil
	}
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty preset %q", s)
}

// fallScale returns the multiplier applied to every gravity interval.
func fallScale(p DifficultyPreset) float64 {
	switch p {
	case DifficultyEasy:
		return 1.5
	case DifficultyHard:
		return 0.6
	default:
		return 1.0
	}
}

// ToRules converts cfg into engine rules. override, when not empty, wins
// over cfg.Difficulty.Preset. The result is validated.
func ToRules(cfg BlockfallConfig, override DifficultyPreset) (tetris.Rules, error) {
	preset := cfg.Difficulty.Preset
	if override != "" {
		preset = override
	}
	if _, err := ParsePreset(string(preset)); err != nil {
		return tetris.Rules{}, err
	}

	scale := fallScale(preset)
	falls := make([]float64, len(cfg.Timing.FallMs))
	for i, ms := range cfg.Timing.FallMs {
		falls[i] = ms * scale
	}
	minFall := cfg.Timing.MinFallMs * scale

	// Fixed keeps the level 1 speed forever; levels still count for scoring.
	if preset == DifficultyFixed && len(falls) > 0 {
		falls = falls[:1]
		minFall = falls[0]
	}

	s := cfg.Scoring
	rules := tetris.Rules{
		Width:         cfg.Board.Width,
		Visible:       cfg.Board.Visible,
		Hidden:        cfg.Board.Hidden,
		QueueSize:     cfg.Board.PreviewLen,
		LockDelayMs:   cfg.Timing.LockDelayMs,
		MaxLockResets: cfg.Timing.MaxLockResets,
		FallIntervals: falls,
		MinFallMs:     minFall,
		Score: tetris.ScoreTable{
			Single:        s.Single,
			Double:        s.Double,
			Triple:        s.Triple,
			Tetris:        s.Tetris,
			TSpinMini:     s.TSpinMini,
			TSpin:         s.TSpin,
			TSpinSingle:   s.TSpinSingle,
			TSpinDouble:   s.TSpinDouble,
			TSpinTriple:   s.TSpinTriple,
			ComboBonus:    s.ComboBonus,
			SoftDrop:      s.SoftDrop,
			HardDrop:      s.HardDrop,
			LinesPerLevel: s.LinesPerLevel,
		},
	}
	if err := rules.Validate(); err != nil {
		return tetris.Rules{}, fmt.Errorf("config: %w", err)
	}
	return rules, nil
}

// LoadRules is LoadBlockfall followed by ToRules.
func LoadRules(customPath string, override DifficultyPreset) (tetris.Rules, error) {
	cfg, err := LoadBlockfall(customPath)
	if err != nil {
		return tetris.Rules{}, err
	}
	return ToRules(cfg, override)
}
