package blockfall

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func newTestGame(seed int64) *Game {
	g := NewWithRules(tetris.DefaultRules())
	g.Reset(testConfig(seed))
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 900)
	for i := range inputs {
		switch {
		case i%40 == 39:
			inputs[i] = frame(core.ActionHardDrop)
		case i%7 == 0:
			inputs[i] = frame(core.ActionLeft)
		case i%11 == 0:
			inputs[i] = frame(core.ActionRotateCW)
		case i%13 == 0:
			inputs[i] = frame(core.ActionRight, core.ActionDown)
		case i == 100:
			inputs[i] = frame(core.ActionHold)
		default:
			inputs[i] = frame()
		}
	}

	run := func() Snapshot {
		g := newTestGame(12345)
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	assert.Equal(t, snap1.Hash(), snap2.Hash())
	assert.Equal(t, snap1, snap2)
	assert.NotZero(t, snap1.LockSeq, "inputs should lock pieces")
}

func TestGameBasics(t *testing.T) {
	g := New()
	assert.Equal(t, GameID, g.ID())
	assert.Equal(t, "Blockfall", g.Title())
	assert.Equal(t, core.GameState{}, g.State(), "state before reset")

	g = newTestGame(1)
	state := g.State()
	assert.Equal(t, 0, state.Score)
	assert.Equal(t, 1, state.Level)
	assert.False(t, state.GameOver)
	assert.False(t, state.Paused)
	assert.Len(t, g.Session().Queue(), tetris.DefaultQueueSize)
}

func TestGameResetFallsBackOnInvalidRules(t *testing.T) {
	g := NewWithRules(tetris.Rules{})
	g.Reset(testConfig(1))
	assert.Equal(t, tetris.DefaultRules().Width, g.Session().Grid().Width())
}

func TestGameHardDropLocks(t *testing.T) {
	g := newTestGame(7)

	result := g.Step(frame())
	assert.False(t, result.Locked)

	result = g.Step(frame(core.ActionHardDrop))
	assert.True(t, result.Locked)
	assert.Positive(t, result.State.Score, "hard drop earns points")
	assert.Equal(t, uint64(1), g.Session().LastLock().Seq)

	result = g.Step(frame())
	assert.False(t, result.Locked, "a lock is reported once")
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(3)

	// Dropping every piece in the spawn column stacks the center until
	// the game ends.
	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(frame(core.ActionHardDrop))
	}
	require.True(t, g.State().GameOver)

	before := g.Snapshot()
	g.Step(frame(core.ActionLeft, core.ActionHardDrop, core.ActionPause))
	after := g.Snapshot()
	assert.Equal(t, before.Board, after.Board, "input is ignored after game over")
	assert.Equal(t, "gameover", after.Status)

	result := g.Step(frame(core.ActionRestart))
	assert.False(t, result.State.GameOver)
	assert.Equal(t, 0, result.State.Score)
	restarted := g.Snapshot()
	assert.Zero(t, restarted.Filled())
	assert.Equal(t, before.HighScore, g.Session().HighScore(), "restart keeps the high score")
}

func TestGameRestartIgnoredWhilePlaying(t *testing.T) {
	g := newTestGame(3)
	g.Step(frame(core.ActionHardDrop))
	score := g.State().Score

	g.Step(frame(core.ActionRestart))
	assert.Equal(t, score, g.State().Score)
	assert.Equal(t, uint64(1), g.Session().LastLock().Seq)
}

func TestGameAppliesActionsInArrivalOrder(t *testing.T) {
	g := newTestGame(8)
	g.Step(frame(core.ActionRotateCW, core.ActionLeft))
	assert.Equal(t, tetris.ActionMove, g.Session().LastAction(), "a shift after the rotation clears spin eligibility")

	g = newTestGame(8)
	g.Step(frame(core.ActionLeft, core.ActionRotateCW))
	assert.Equal(t, tetris.ActionRotate, g.Session().LastAction())
}

func TestGameKeepsRepeatedActions(t *testing.T) {
	g := newTestGame(8)
	start, _ := g.Session().Active()

	g.Step(frame(core.ActionLeft, core.ActionLeft, core.ActionLeft))

	p, _ := g.Session().Active()
	assert.Equal(t, start.X-3, p.X)
}

func TestGamePause(t *testing.T) {
	g := newTestGame(5)
	start, _ := g.Session().Active()

	result := g.Step(frame(core.ActionPause))
	require.True(t, result.State.Paused)

	for i := 0; i < 200; i++ {
		g.Step(frame(core.ActionDown, core.ActionLeft))
	}
	p, _ := g.Session().Active()
	assert.Equal(t, start, p, "paused games do not move")

	result = g.Step(frame(core.ActionPause))
	assert.False(t, result.State.Paused)
}

func TestGameMuteUsesPrefs(t *testing.T) {
	prefs := tetris.NewMemoryPrefs()
	g := NewWithRules(tetris.DefaultRules())
	g.SetPrefs(prefs)
	g.Reset(testConfig(1))

	assert.False(t, g.Session().Muted())
	g.Step(frame(core.ActionMute))
	assert.True(t, g.Session().Muted())

	v, ok := prefs.Get(tetris.PrefMuted)
	require.True(t, ok)
	assert.Equal(t, "true", v)

	// A new session reads the stored value.
	g.Reset(testConfig(2))
	assert.True(t, g.Session().Muted())
}

func TestGameClearShowsBanner(t *testing.T) {
	g := newTestGame(11)
	s := g.Session()
	grid := s.Grid()
	bottom := grid.Height() - 1

	ghost, ok := s.Ghost()
	require.True(t, ok)
	landing := make(map[int]bool)
	for _, c := range ghost.Cells() {
		if c.Y == bottom {
			landing[c.X] = true
		}
	}
	require.NotEmpty(t, landing)
	for x := 0; x < grid.Width(); x++ {
		if !landing[x] {
			grid.SetCell(x, bottom, tetris.Cell(tetris.TypeJ))
		}
	}

	result := g.Step(frame(core.ActionHardDrop))
	require.True(t, result.Locked)
	assert.Equal(t, 1, result.State.Lines)
	assert.Equal(t, "SINGLE", g.banner)
	assert.Positive(t, g.bannerTicks)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "SINGLE")
}

func TestClearLabel(t *testing.T) {
	rows := func(n int) []int {
		r := make([]int, n)
		for i := range r {
			r[i] = 21 - i
		}
		return r
	}
	spin := tetris.SpinResult{Spin: true, Kind: tetris.SpinNormal}
	mini := tetris.SpinResult{Spin: true, Kind: tetris.SpinMini}

	tests := []struct {
		name  string
		lock  tetris.LockResult
		label string
		color core.Color
	}{
		{"plain lock", tetris.LockResult{Seq: 1}, "", core.ColorBrightWhite},
		{"single", tetris.LockResult{Rows: rows(1), Combo: 1}, "SINGLE", core.ColorBrightWhite},
		{"tetris", tetris.LockResult{Rows: rows(4), Combo: 1}, "TETRIS", core.ColorCyan},
		{"combo", tetris.LockResult{Rows: rows(2), Combo: 3}, "DOUBLE  COMBO x2", core.ColorBrightYellow},
		{"spin no lines", tetris.LockResult{Spin: spin}, "T-SPIN", core.ColorMagenta},
		{"spin double", tetris.LockResult{Rows: rows(2), Spin: spin, Combo: 1}, "T-SPIN DOUBLE", core.ColorMagenta},
		{"mini single combo", tetris.LockResult{Rows: rows(1), Spin: mini, Combo: 2}, "T-SPIN MINI SINGLE  COMBO x1", core.ColorMagenta},
		{"top out", tetris.LockResult{Rows: rows(1), ToppedOut: true}, "", core.ColorDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, color := ClearLabel(tt.lock)
			assert.Equal(t, tt.label, label)
			assert.Equal(t, tt.color, color)
		})
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "HOLD")
	assert.Contains(t, out, "NEXT")
	assert.Contains(t, out, "SCORE")
	assert.Contains(t, out, "LEVEL")

	// The active piece spawns in the hidden rows, so drop it into view.
	g.Step(frame(core.ActionHardDrop))
	g.Render(screen)
	out = screen.String()
	assert.Contains(t, out, "██")
	assert.NotContains(t, out, "GAME OVER")
}

func TestRenderColorsPieces(t *testing.T) {
	g := newTestGame(1)
	g.Step(frame(core.ActionHardDrop))
	locked := g.Session().LastLock().Piece

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	found := false
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			c := screen.GetCell(x, y)
			if c.Rune == '█' && c.Color == PieceColor(locked.Type) {
				found = true
			}
		}
	}
	assert.True(t, found)
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(1)
	screen := core.NewScreen(80, 24)

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	assert.Contains(t, screen.String(), "PAUSED")

	g.Step(frame(core.ActionPause))
	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(frame(core.ActionHardDrop))
	}
	g.Render(screen)
	assert.Contains(t, screen.String(), "GAME OVER")
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(1)
	screen := core.NewScreen(30, 10)
	g.Render(screen)

	out := screen.String()
	assert.Contains(t, out, "Window too small")
	assert.False(t, strings.Contains(out, "HOLD"))
}

func TestSetDifficultyPreset(t *testing.T) {
	defer SetDifficultyPreset("")

	SetDifficultyPreset("HARD")
	assert.Equal(t, "hard", string(difficultyPreset))

	SetDifficultyPreset("bogus")
	assert.Empty(t, difficultyPreset)
}
