package tetris

import (
	"errors"
	"fmt"
)

// ScoreTable holds the point values used by the scorer. Line and spin
// values are multiplied by the level when awarded.
type ScoreTable struct {
	Single        int
	Double        int
	Triple        int
	Tetris        int
	TSpinMini     int
	TSpin         int
	TSpinSingle   int
	TSpinDouble   int
	TSpinTriple   int
	ComboBonus    int
	SoftDrop      int // per row
	HardDrop      int // per row
	LinesPerLevel int
}

// Rules is the full set of tunables for a session.
type Rules struct {
	Width     int
	Visible   int
	Hidden    int
	QueueSize int

	LockDelayMs   float64
	MaxLockResets int

	// FallIntervals[i] is the gravity interval in ms for level i+1.
	FallIntervals []float64
	// MinFallMs applies to every level beyond the table.
	MinFallMs float64

	Score ScoreTable
}

// DefaultRules returns the standard board size, timing and scoring.
func DefaultRules() Rules {
	return Rules{
		Width:         10,
		Visible:       20,
		Hidden:        2,
		QueueSize:     DefaultQueueSize,
		LockDelayMs:   500,
		MaxLockResets: 15,
		FallIntervals: []float64{
			1000, 793, 618, 473, 355, 262, 190, 135, 94, 64, 43, 28, 18, 11, 7,
		},
		MinFallMs: 5,
		Score: ScoreTable{
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
	}
}

// MinWidth is the narrowest board where a flat I piece fits at the spawn column.
const MinWidth = SpawnX + 4

// ErrInvalidRules is wrapped by Validate failures.
var ErrInvalidRules = errors.New("tetris: invalid rules")

// Validate checks that the rules describe a playable game.
func (r Rules) Validate() error {
	switch {
	case r.Width < MinWidth:
		return fmt.Errorf("%w: width %d leaves no room to spawn, need at least %d", ErrInvalidRules, r.Width, MinWidth)
	case r.Visible < 4:
		return fmt.Errorf("%w: visible height %d too small", ErrInvalidRules, r.Visible)
	case r.Hidden < 1:
		return fmt.Errorf("%w: need at least one hidden row, got %d", ErrInvalidRules, r.Hidden)
	case r.QueueSize < 1:
		return fmt.Errorf("%w: queue size %d", ErrInvalidRules, r.QueueSize)
	case r.LockDelayMs <= 0:
		return fmt.Errorf("%w: lock delay must be positive", ErrInvalidRules)
	case r.MaxLockResets < 0:
		return fmt.Errorf("%w: max lock resets must not be negative", ErrInvalidRules)
	case r.MinFallMs <= 0:
		return fmt.Errorf("%w: min fall interval must be positive", ErrInvalidRules)
	case r.Score.LinesPerLevel <= 0:
		return fmt.Errorf("%w: lines per level must be positive", ErrInvalidRules)
	}
	for i, ms := range r.FallIntervals {
		if ms <= 0 {
			return fmt.Errorf("%w: fall interval for level %d must be positive", ErrInvalidRules, i+1)
		}
	}
	return nil
}
