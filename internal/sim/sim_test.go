package sim

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

func testOptions() Options {
	return Options{
		Games:    3,
		Seed:     7,
		MaxTicks: 3000,
		FPS:      60,
		Rules:    tetris.DefaultRules(),
	}
}

func TestRunIsDeterministic(t *testing.T) {
	a, err := Run(context.Background(), testOptions())
	require.NoError(t, err)
	b, err := Run(context.Background(), testOptions())
	require.NoError(t, err)

	require.Len(t, a.Games, 3)
	assert.Equal(t, a.Games, b.Games)
	assert.NotEqual(t, a.Games[0].Hash, a.Games[1].Hash, "different seeds play different games")
}

func TestRunReport(t *testing.T) {
	report, err := Run(context.Background(), testOptions())
	require.NoError(t, err)

	locks, lines := 0, 0
	for i, g := range report.Games {
		assert.Equal(t, int64(7+i), g.Seed)
		assert.LessOrEqual(t, g.Ticks, 3000)
		assert.Positive(t, g.Locks)
		locks += g.Locks
		lines += g.Lines
	}
	assert.Positive(t, lines, "the bot should clear rows")
	assert.Equal(t, lines, report.TotalLines)

	histogram, clearedRows := 0, 0
	for n := 0; n <= 4; n++ {
		histogram += report.Clears(n)
		clearedRows += n * report.Clears(n)
	}
	assert.Equal(t, locks, histogram, "every lock lands in one bucket")
	assert.Equal(t, lines, clearedRows)

	assert.GreaterOrEqual(t, float64(report.MaxScore), report.MeanScore)
	assert.GreaterOrEqual(t, float64(report.MaxScore), report.MedianScore)
	assert.GreaterOrEqual(t, report.StdDevScore, 0.0)
}

func TestRunSingleGameHasZeroStdDev(t *testing.T) {
	opts := testOptions()
	opts.Games = 1
	opts.MaxTicks = 500

	report, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.StdDevScore)
	assert.Equal(t, float64(report.Games[0].Score), report.MedianScore)
}

func TestRunValidation(t *testing.T) {
	opts := testOptions()
	opts.Games = 0
	_, err := Run(context.Background(), opts)
	assert.ErrorIs(t, err, ErrNoGames)

	opts = testOptions()
	opts.Rules = tetris.Rules{}
	_, err = Run(context.Background(), opts)
	assert.ErrorIs(t, err, tetris.ErrInvalidRules)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, testOptions())
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Empty(t, report.Games)
	assert.Zero(t, report.Clears(1))
}

func TestReportWriteTo(t *testing.T) {
	opts := testOptions()
	opts.Games = 2
	opts.MaxTicks = 1000
	report, err := Run(context.Background(), opts)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := report.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	out := buf.String()
	assert.Contains(t, out, "blockfall simulation")
	assert.Contains(t, out, "Mean score")
	assert.Contains(t, out, "Locks: tetris")

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	width := runewidth.StringWidth(lines[0])
	for _, line := range lines {
		assert.Equal(t, width, runewidth.StringWidth(line), "line %q", line)
	}
}

func TestColumnHeightsAndHoles(t *testing.T) {
	g := tetris.NewGrid(4, 4, 0)
	g.SetCell(1, 2, tetris.Cell(tetris.TypeT))
	g.SetCell(1, 3, tetris.Cell(tetris.TypeT))
	g.SetCell(2, 1, tetris.Cell(tetris.TypeT))
	g.SetCell(2, 3, tetris.Cell(tetris.TypeT))

	assert.Equal(t, []int{0, 2, 3, 0}, columnHeights(g))
	assert.Equal(t, 1, countHoles(g))
}

func TestEvaluatePrefersClears(t *testing.T) {
	g := tetris.NewGrid(10, 20, 2)
	for x := 0; x < 10; x++ {
		if x < 3 || x > 6 {
			g.SetCell(x, 21, tetris.Cell(tetris.TypeJ))
		}
	}

	flat := tetris.Piece{Type: tetris.TypeI, X: 3, Y: 0, Rotation: 0}
	clearing, ok := evaluate(g, flat)
	require.True(t, ok)

	upright := tetris.Piece{Type: tetris.TypeI, X: 3, Y: 0, Rotation: 1}
	stacked, ok := evaluate(g, upright)
	require.True(t, ok)

	assert.Greater(t, clearing, stacked)

	_, ok = evaluate(g, tetris.Piece{Type: tetris.TypeI, X: 9, Y: 0})
	assert.False(t, ok, "off the board")
}

func TestBotStep(t *testing.T) {
	b := NewBot(rand.New(rand.NewSource(1)))
	b.target = placement{rotation: 1, x: 2}

	p := tetris.Piece{Type: tetris.TypeT, X: 4, Rotation: 0}
	assert.Equal(t, core.ActionRotateCW, b.step(p))

	p.Rotation = 1
	assert.Equal(t, core.ActionLeft, b.step(p))

	b.last, b.lastSeen = core.ActionLeft, p
	assert.Equal(t, core.ActionHardDrop, b.step(p), "blocked shift drops")

	b.last = core.ActionNone
	p.X = 2
	assert.Equal(t, core.ActionHardDrop, b.step(p))
}

func TestBotWaitsWhenNotPlaying(t *testing.T) {
	s := tetris.NewSession(tetris.DefaultRules(), rand.New(rand.NewSource(1)), nil)
	s.TogglePause()

	b := NewBot(rand.New(rand.NewSource(1)))
	assert.True(t, b.Next(s).Empty())
}
