package sim

import (
	"math/rand"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// Placement heuristic weights: aggregate height, completed lines, holes
// and bumpiness.
const (
	weightHeight    = -0.510066
	weightLines     = 0.760666
	weightHoles     = -0.35663
	weightBumpiness = -0.184483
)

// placement is a target rotation and column for the active piece.
type placement struct {
	rotation int
	x        int
}

// Bot picks a placement for each new piece and walks the piece there one
// action per tick. With probability Noise it picks a random legal
// placement instead of the best one, so different seeds play different
// games.
type Bot struct {
	rng   *rand.Rand
	Noise float64

	planned  bool
	planSeq  uint64
	target   placement
	last     core.Action
	lastSeen tetris.Piece
}

// NewBot creates a bot driven by rng.
func NewBot(rng *rand.Rand) *Bot {
	return &Bot{rng: rng, Noise: 0.1}
}

// Next returns the input for the next tick.
func (b *Bot) Next(s *tetris.Session) core.InputFrame {
	in := core.NewInputFrame()
	if s.Status() != tetris.StatusPlaying {
		return in
	}
	active, ok := s.Active()
	if !ok {
		return in
	}

	if seq := s.LastLock().Seq; !b.planned || seq != b.planSeq {
		b.target = b.plan(s.Grid(), active)
		b.planSeq = seq
		b.planned = true
		b.last = core.ActionNone
	}

	action := b.step(active)
	b.last = action
	b.lastSeen = active
	in.Set(action)
	return in
}

// step moves one action closer to the target. A rotation or shift that
// did not change the piece means the path is blocked, so it drops.
func (b *Bot) step(p tetris.Piece) core.Action {
	stuck := b.last != core.ActionNone && b.last != core.ActionHardDrop && p == b.lastSeen
	switch {
	case stuck:
		return core.ActionHardDrop
	case p.Rotation != b.target.rotation:
		return core.ActionRotateCW
	case p.X < b.target.x:
		return core.ActionRight
	case p.X > b.target.x:
		return core.ActionLeft
	default:
		return core.ActionHardDrop
	}
}

func (b *Bot) plan(g *tetris.Grid, active tetris.Piece) placement {
	best := placement{rotation: active.Rotation, x: active.X}
	bestScore := 0.0
	found := false
	var legal []placement

	for rot := 0; rot < 4; rot++ {
		for x := -3; x < g.Width(); x++ {
			p := tetris.Piece{Type: active.Type, X: x, Y: active.Y, Rotation: rot}
			score, ok := evaluate(g, p)
			if !ok {
				continue
			}
			legal = append(legal, placement{rotation: rot, x: x})
			if !found || score > bestScore {
				best = placement{rotation: rot, x: x}
				bestScore = score
				found = true
			}
		}
	}

	if len(legal) > 0 && b.rng.Float64() < b.Noise {
		return legal[b.rng.Intn(len(legal))]
	}
	return best
}

// evaluate drops p on a copy of g and scores the resulting board.
func evaluate(g *tetris.Grid, p tetris.Piece) (float64, bool) {
	board := g.Clone()
	r := tetris.NewResolver(board)
	if !r.CanPlace(p) {
		return 0, false
	}
	r.HardDrop(&p)
	board.AddPiece(p)
	rows := r.CompletedRows()
	r.ClearRows(rows)

	heights := columnHeights(board)
	aggregate, bumpiness := 0, 0
	for i, h := range heights {
		aggregate += h
		if i > 0 {
			bumpiness += abs(h - heights[i-1])
		}
	}

	return weightHeight*float64(aggregate) +
		weightLines*float64(len(rows)) +
		weightHoles*float64(countHoles(board)) +
		weightBumpiness*float64(bumpiness), true
}

func columnHeights(g *tetris.Grid) []int {
	heights := make([]int, g.Width())
	for x := range heights {
		for y := 0; y < g.Height(); y++ {
			if g.IsOccupied(x, y) {
				heights[x] = g.Height() - y
				break
			}
		}
	}
	return heights
}

// countHoles counts empty cells with a filled cell somewhere above them.
func countHoles(g *tetris.Grid) int {
	holes := 0
	for x := 0; x < g.Width(); x++ {
		covered := false
		for y := 0; y < g.Height(); y++ {
			switch {
			case g.IsOccupied(x, y):
				covered = true
			case covered:
				holes++
			}
		}
	}
	return holes
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
