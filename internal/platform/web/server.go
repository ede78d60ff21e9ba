// Package web serves a read-only leaderboard over HTTP.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/blockfall/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ScoreSource is the read side of the score store.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	PlayerScores(gameID, player string, limit int) ([]storage.ScoreEntry, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
}

// Server is the leaderboard HTTP server.
type Server struct {
	router chi.Router
	server *http.Server
	scores ScoreSource
	gameID string
	logger *log.Logger
}

// NewServer builds the router for gameID. Nothing listens until
// ListenAndServe.
func NewServer(addr, gameID string, scores ScoreSource, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	r := chi.NewRouter()
	s := &Server{
		router: r,
		scores: scores,
		gameID: gameID,
		logger: logger,
		server: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}

	r.Use(chimid.RequestID)
	r.Use(chimid.Recoverer)
	r.Use(s.accessLog)
	r.Use(Compress)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/scores", s.handleScores)
		r.Get("/stats", s.handleStats)
	})
	return s
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting web server", "address", s.server.Addr, "game", s.gameID)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		kv := []any{
			"status", rec.status,
			"method", r.Method,
			"path", r.URL.Path,
			"latency", time.Since(start),
			"request_id", chimid.GetReqID(r.Context()),
		}
		switch {
		case rec.status >= 500:
			s.logger.Error("http", kv...)
		case rec.status >= 400:
			s.logger.Warn("http", kv...)
		default:
			s.logger.Debug("http", kv...)
		}
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// ScoreJSON is one leaderboard row.
type ScoreJSON struct {
	Rank      int       `json:"rank"`
	Player    string    `json:"player"`
	Score     int       `json:"score"`
	Lines     int       `json:"lines"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoresResponse is the body of GET /api/scores.
type ScoresResponse struct {
	Game   string      `json:"game"`
	Player string      `json:"player,omitempty"`
	Scores []ScoreJSON `json:"scores"`
}

// StatsResponse is the body of GET /api/stats.
type StatsResponse struct {
	Game       string     `json:"game"`
	Games      int        `json:"games"`
	HighScore  int        `json:"high_score"`
	AvgScore   float64    `json:"avg_score"`
	TotalLines int64      `json:"total_lines"`
	BestLevel  int        `json:"best_level"`
	LastPlayed *time.Time `json:"last_played,omitempty"`
}

// parseLimit reads ?limit=N, defaulting to 10 and capping at 100.
func parseLimit(r *http.Request) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("limit must be a positive integer, got %q", v)
	}
	return min(n, maxLimit), nil
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	player := r.URL.Query().Get("player")
	var entries []storage.ScoreEntry
	if player != "" {
		entries, err = s.scores.PlayerScores(s.gameID, player, limit)
	} else {
		entries, err = s.scores.TopScores(s.gameID, limit)
	}
	if err != nil {
		s.logger.Error("cannot load scores", "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("cannot load scores"))
		return
	}

	resp := ScoresResponse{Game: s.gameID, Player: player, Scores: make([]ScoreJSON, len(entries))}
	for i, e := range entries {
		resp.Scores[i] = ScoreJSON{
			Rank:      i + 1,
			Player:    e.Player,
			Score:     e.Score,
			Lines:     e.Lines,
			Level:     e.Level,
			CreatedAt: e.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	stats, err := s.scores.GetGameStats(s.gameID)
	if err != nil {
		s.logger.Error("cannot load stats", "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("cannot load stats"))
		return
	}

	resp := StatsResponse{
		Game:       s.gameID,
		Games:      stats.GamesCount,
		HighScore:  stats.HighScore,
		AvgScore:   stats.AvgScore,
		TotalLines: stats.TotalLines,
		BestLevel:  stats.BestLevel,
	}
	if !stats.LastPlayed.IsZero() {
		resp.LastPlayed = &stats.LastPlayed
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the client is gone if this fails
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
