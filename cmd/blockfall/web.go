package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/platform/web"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the leaderboard over HTTP",
	Long: `Start a read-only HTTP server on top of the scores database.

Endpoints:
  GET /healthz                      - Liveness probe
  GET /api/scores?limit=N           - Top scores (default 10, max 100)
  GET /api/scores?player=NAME       - Best scores of one player
  GET /api/stats                    - Aggregated statistics

Responses are compressed with zstd or gzip when the client asks for it.

Examples:
  blockfall web
  blockfall web --addr 127.0.0.1:9090 --db ./scores.db`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) {
	logger := newLogger("blockfall-web")

	// Unlike play, the server is useless without the database.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close() //nolint:errcheck // closing on shutdown

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(flagWebAddr, blockfall.GameID, store, logger)
	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server stopped", "err", err)
		stop()
		store.Close() //nolint:errcheck // exiting
		os.Exit(1)
	}
}
