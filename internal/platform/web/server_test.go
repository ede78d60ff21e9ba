package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	for _, e := range []storage.ScoreEntry{
		{GameID: "blockfall", Player: "ann", Score: 300, Lines: 4, Level: 1},
		{GameID: "blockfall", Player: "bob", Score: 900, Lines: 12, Level: 2},
		{GameID: "blockfall", Player: "ann", Score: 500, Lines: 8, Level: 1},
		{GameID: "other", Player: "cat", Score: 9999},
	} {
		_, err := store.SaveScore(e)
		require.NoError(t, err)
	}
	return NewServer(":0", "blockfall", store, log.New(io.Discard))
}

func get(t *testing.T, s *Server, url string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestServer(t), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestScores(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		url      string
		expected []int
	}{
		{"default limit", "/api/scores", []int{900, 500, 300}},
		{"limit", "/api/scores?limit=2", []int{900, 500}},
		{"limit capped", "/api/scores?limit=5000", []int{900, 500, 300}},
		{"player", "/api/scores?player=ann", []int{500, 300}},
		{"unknown player", "/api/scores?player=zed", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.url)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp ScoresResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "blockfall", resp.Game)

			got := make([]int, len(resp.Scores))
			for i, e := range resp.Scores {
				got[i] = e.Score
				assert.Equal(t, i+1, e.Rank)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestScoresRejectsBadLimit(t *testing.T) {
	s := newTestServer(t)
	for _, url := range []string{"/api/scores?limit=abc", "/api/scores?limit=0", "/api/scores?limit=-3"} {
		rec := get(t, s, url)
		assert.Equal(t, http.StatusBadRequest, rec.Code, url)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body["error"], "limit")
	}
}

func TestStats(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Games)
	assert.Equal(t, 900, resp.HighScore)
	assert.Equal(t, int64(24), resp.TotalLines)
	assert.Equal(t, 2, resp.BestLevel)
	assert.InDelta(t, 566.67, resp.AvgScore, 0.01)
}

func TestUnknownRoute(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompression(t *testing.T) {
	s := newTestServer(t)
	plain := get(t, s, "/api/scores").Body.Bytes()

	t.Run("gzip", func(t *testing.T) {
		rec := get(t, s, "/api/scores", "Accept-Encoding", "gzip")
		require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
		assert.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))

		zr, err := gzip.NewReader(rec.Body)
		require.NoError(t, err)
		body, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, plain, body)
	})

	t.Run("zstd preferred", func(t *testing.T) {
		rec := get(t, s, "/api/scores", "Accept-Encoding", "gzip, zstd")
		require.Equal(t, "zstd", rec.Header().Get("Content-Encoding"))

		dec, err := zstd.NewReader(nil)
		require.NoError(t, err)
		defer dec.Close()
		body, err := dec.DecodeAll(rec.Body.Bytes(), nil)
		require.NoError(t, err)
		assert.Equal(t, plain, body)
	})

	t.Run("identity", func(t *testing.T) {
		rec := get(t, s, "/api/scores")
		assert.Empty(t, rec.Header().Get("Content-Encoding"))
	})
}

type failingSource struct{}

func (failingSource) TopScores(string, int) ([]storage.ScoreEntry, error) {
	return nil, errors.New("disk on fire")
}

func (failingSource) PlayerScores(string, string, int) ([]storage.ScoreEntry, error) {
	return nil, errors.New("disk on fire")
}

func (failingSource) GetGameStats(string) (*storage.GameStats, error) {
	return nil, errors.New("disk on fire")
}

func TestStoreErrorsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	s := NewServer(":0", "blockfall", failingSource{}, log.New(&buf))

	for _, url := range []string{"/api/scores", "/api/stats"} {
		rec := get(t, s, url)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "disk on fire", "internal errors stay in the log")
	}
	assert.Contains(t, buf.String(), "disk on fire")
}
