package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresStats  bool
	flagScoresTUI    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the best recorded scores.

Examples:
  blockfall scores
  blockfall scores --player alice
  blockfall scores --stats
  blockfall scores --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show scores of this player")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Print score distribution statistics")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

// scoreSummary describes the distribution of every recorded score.
type scoreSummary struct {
	Games  int
	Mean   float64
	StdDev float64
	P25    float64
	Median float64
	P90    float64
	Best   int
	Lines  int
}

func summarizeScores(entries []storage.ScoreEntry) scoreSummary {
	sum := scoreSummary{Games: len(entries)}
	if len(entries) == 0 {
		return sum
	}

	xs := make([]float64, len(entries))
	for i, e := range entries {
		xs[i] = float64(e.Score)
		sum.Best = max(sum.Best, e.Score)
		sum.Lines += e.Lines
	}
	sum.Mean, sum.StdDev = stat.MeanStdDev(xs, nil)
	if len(xs) == 1 {
		sum.StdDev = 0
	}

	sort.Float64s(xs)
	sum.P25 = stat.Quantile(0.25, stat.Empirical, xs, nil)
	sum.Median = stat.Quantile(0.5, stat.Empirical, xs, nil)
	sum.P90 = stat.Quantile(0.9, stat.Empirical, xs, nil)
	return sum
}

func runScores(_ *cobra.Command, args []string) {
	gameID := blockfall.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blockfall list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close() //nolint:errcheck // read-only use

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, gameID, title, flagScoresPlayer, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
		}
		return
	}

	if flagScoresStats {
		printStats(store, gameID, title)
		return
	}

	var scores []storage.ScoreEntry
	if flagScoresPlayer != "" {
		scores, err = store.PlayerScores(gameID, flagScoresPlayer, flagScoresLimit)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'blockfall play' to set the first high score!")
		return
	}

	p := message.NewPrinter(language.English)
	playerWidth := len("Player")
	for _, e := range scores {
		playerWidth = max(playerWidth, len(e.Player))
	}

	fmt.Printf("  %-4s  %-*s  %10s  %5s  %5s  %s\n", "Rank", playerWidth, "Player", "Score", "Lines", "Level", "Date")
	fmt.Printf("  %-4s  %-*s  %10s  %5s  %5s  %s\n", "----", playerWidth, "------", "-----", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-*s  %10s  %5d  %5d  %s\n",
			i+1, playerWidth, e.Player, p.Sprintf("%d", e.Score), e.Lines, e.Level,
			e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.HighScore(gameID); err == nil {
		fmt.Println()
		p.Printf("Best: %d\n", best)
	}
}

func printStats(store *storage.Store, gameID, title string) {
	entries, err := store.AllScores(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	sum := summarizeScores(entries)
	p := message.NewPrinter(language.English)

	fmt.Printf("Statistics - %s\n", title)
	fmt.Println()
	if sum.Games == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}
	p.Printf("  Games     %d\n", sum.Games)
	p.Printf("  Best      %d\n", sum.Best)
	p.Printf("  Mean      %.1f (σ %.1f)\n", sum.Mean, sum.StdDev)
	p.Printf("  P25       %.0f\n", sum.P25)
	p.Printf("  Median    %.0f\n", sum.Median)
	p.Printf("  P90       %.0f\n", sum.P90)
	p.Printf("  Lines     %d\n", sum.Lines)
}
