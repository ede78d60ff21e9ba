// Package sim plays headless games with a bot to balance rules and check
// determinism.
package sim

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"sort"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// Options configures a simulation run.
type Options struct {
	Games    int
	Seed     int64 // game i uses Seed+i
	MaxTicks int   // per game; 0 means no limit besides game over
	FPS      int
	Rules    tetris.Rules

	// Progress receives the progress bar; nil discards it.
	Progress io.Writer
	Logger   *log.Logger
}

// ErrNoGames is returned when Options.Games is not positive.
var ErrNoGames = errors.New("sim: games must be > 0")

// GameResult summarizes one simulated game.
type GameResult struct {
	Seed      int64
	Score     int
	Lines     int
	Level     int
	Locks     int
	Spins     int
	Ticks     int
	ToppedOut bool
	Hash      uint64 // final snapshot hash
}

// Report aggregates a run.
type Report struct {
	Games   []GameResult
	Elapsed time.Duration

	MeanScore   float64
	StdDevScore float64
	MedianScore float64
	MaxScore    int
	TotalLines  int
	Spins       int

	// clears maps rows cleared by a lock to the number of such locks.
	clears *intmap.Map[int, int]
}

// Clears returns how many locks cleared exactly n rows.
func (r *Report) Clears(n int) int {
	if r.clears == nil {
		return 0
	}
	v, _ := r.clears.Get(n)
	return v
}

// Run plays opts.Games games one after another. Cancellation is checked
// between games; a cancelled run returns the games finished so far with
// ctx.Err().
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Games <= 0 {
		return nil, ErrNoGames
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, err
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	report := &Report{clears: intmap.New[int, int](8)}
	bar := pb.New(opts.Games).SetWriter(opts.Progress).Start()
	start := time.Now()

	var err error
	for i := 0; i < opts.Games; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		res := playGame(opts, opts.Seed+int64(i), report.clears)
		report.Games = append(report.Games, res)
		logger.Debug("game finished", "seed", res.Seed, "score", res.Score, "lines", res.Lines, "ticks", res.Ticks)
		bar.Increment()
	}

	bar.Finish()
	report.Elapsed = time.Since(start)
	report.summarize()
	return report, err
}

func playGame(opts Options, seed int64, clears *intmap.Map[int, int]) GameResult {
	game := blockfall.NewWithRules(opts.Rules)
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: opts.FPS, Seed: seed})
	session := game.Session()
	bot := NewBot(rand.New(rand.NewSource(seed)))

	res := GameResult{Seed: seed}
	for opts.MaxTicks <= 0 || res.Ticks < opts.MaxTicks {
		result := game.Step(bot.Next(session))
		res.Ticks++

		if result.Locked {
			last := session.LastLock()
			res.Locks++
			if last.Spin.Spin {
				res.Spins++
			}
			n, _ := clears.Get(last.Cleared())
			clears.Put(last.Cleared(), n+1)
		}
		if result.State.GameOver {
			res.ToppedOut = true
			break
		}
	}

	state := game.State()
	res.Score = state.Score
	res.Lines = state.Lines
	res.Level = state.Level
	snap := game.Snapshot()
	res.Hash = snap.Hash()
	return res
}

func (r *Report) summarize() {
	if len(r.Games) == 0 {
		return
	}
	scores := make([]float64, len(r.Games))
	for i, g := range r.Games {
		scores[i] = float64(g.Score)
		r.TotalLines += g.Lines
		r.Spins += g.Spins
		r.MaxScore = max(r.MaxScore, g.Score)
	}

	r.MeanScore, r.StdDevScore = stat.MeanStdDev(scores, nil)
	if len(scores) == 1 {
		r.StdDevScore = 0
	}
	sort.Float64s(scores)
	r.MedianScore = stat.Quantile(0.5, stat.Empirical, scores, nil)
}
