package blockfall

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

var clearNames = [...]string{"", "SINGLE", "DOUBLE", "TRIPLE", "TETRIS"}

// ClearLabel names a lock for the on-screen banner, e.g. "T-SPIN DOUBLE"
// or "TRIPLE  COMBO x2". Locks that neither clear rows nor spin get no
// label.
func ClearLabel(r tetris.LockResult) (string, core.Color) {
	if r.ToppedOut {
		return "", core.ColorDefault
	}

	n := r.Cleared()
	var label string
	color := core.ColorBrightWhite

	switch {
	case r.Spin.Spin:
		label = "T-SPIN"
		if r.Spin.Kind == tetris.SpinMini {
			label += " MINI"
		}
		if n > 0 && n < len(clearNames) {
			label += " " + clearNames[n]
		}
		color = core.ColorMagenta
	case n > 0 && n < len(clearNames):
		label = clearNames[n]
		if n == 4 {
			color = core.ColorCyan
		}
	case n >= len(clearNames):
		label = fmt.Sprintf("%d LINES", n)
	}

	// Combo counts consecutive clears; the first clear of a chain is not
	// a combo yet.
	if n > 0 && r.Combo > 1 {
		label += fmt.Sprintf("  COMBO x%d", r.Combo-1)
		if color == core.ColorBrightWhite {
			color = core.ColorBrightYellow
		}
	}
	return label, color
}
