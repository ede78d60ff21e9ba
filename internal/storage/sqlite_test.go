package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore(ScoreEntry{GameID: "blockfall", Score: 1200}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("blockfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 1200 {
		t.Errorf("HighScore() = %d, expected 1200", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	entries := []ScoreEntry{
		{GameID: "blockfall", Player: "ann", Score: 100, Lines: 1, Level: 1},
		{GameID: "blockfall", Player: "bob", Score: 50},
		{GameID: "blockfall", Player: "ann", Score: 200, Lines: 12, Level: 2},
		{GameID: "other", Score: 500},
	}
	for _, e := range entries {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("blockfall", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	expected := []int{200, 100, 50}
	for i, e := range scores {
		if e.Score != expected[i] {
			t.Errorf("scores[%d] = %d, expected %d", i, e.Score, expected[i])
		}
	}
	if scores[0].Player != "ann" || scores[0].Lines != 12 || scores[0].Level != 2 {
		t.Errorf("top entry = %+v, expected ann with 12 lines at level 2", scores[0])
	}
	if scores[2].Level != 1 {
		t.Errorf("missing level should default to 1, got %d", scores[2].Level)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}

	top, err := store.TopScores("blockfall", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 2 {
		t.Errorf("limit 2 returned %d rows", len(top))
	}

	all, err := store.AllScores("blockfall")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("AllScores() returned %d rows, expected 3", len(all))
	}
}

func TestStorePlayerScores(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []ScoreEntry{
		{GameID: "blockfall", Player: "ann", Score: 100},
		{GameID: "blockfall", Player: "bob", Score: 900},
		{GameID: "blockfall", Player: "ann", Score: 300},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.PlayerScores("blockfall", "ann", 0)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores, got %d", len(scores))
	}
	if scores[0].Score != 300 || scores[1].Score != 100 {
		t.Errorf("PlayerScores() = %d, %d; expected 300, 100", scores[0].Score, scores[1].Score)
	}

	none, err := store.PlayerScores("blockfall", "carol", 5)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unknown player returned %d rows", len(none))
	}
}

func TestStoreRejectsEmptyGameID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore(ScoreEntry{Score: 10}); err == nil {
		t.Error("SaveScore() with empty game id should fail")
	}
}

func TestStoreHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("blockfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() on empty table = %d, expected 0", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore(ScoreEntry{GameID: "blockfall", Score: 10}) //nolint:errcheck // test setup
	store.SaveScore(ScoreEntry{GameID: "other", Score: 20})     //nolint:errcheck // test setup

	if err := store.ClearScores("blockfall"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("blockfall", 10)
	if len(scores) != 0 {
		t.Errorf("expected no scores after clear, got %d", len(scores))
	}
	other, _ := store.TopScores("other", 10)
	if len(other) != 1 {
		t.Errorf("clear should only affect one game, other has %d", len(other))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("blockfall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	for _, e := range []ScoreEntry{
		{GameID: "blockfall", Score: 100, Lines: 4, Level: 1},
		{GameID: "blockfall", Score: 300, Lines: 14, Level: 2},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	stats, err := store.GetGameStats("blockfall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, expected 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, expected 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}
	if stats.TotalScore != 400 || stats.TotalLines != 18 || stats.BestLevel != 2 {
		t.Errorf("totals = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestPrefs(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.GetPref("muted"); err != nil || ok {
		t.Fatalf("GetPref() on empty table = ok %v err %v", ok, err)
	}

	if err := store.SetPref("muted", "true"); err != nil {
		t.Fatalf("SetPref() failed: %v", err)
	}
	if err := store.SetPref("muted", "false"); err != nil {
		t.Fatalf("SetPref() overwrite failed: %v", err)
	}

	v, ok, err := store.GetPref("muted")
	if err != nil || !ok || v != "false" {
		t.Errorf("GetPref() = %q %v %v, expected \"false\"", v, ok, err)
	}
}

func TestPrefsNamespaces(t *testing.T) {
	store := openTestStore(t)
	ann := store.Prefs("ann")
	bob := store.Prefs("bob")

	if err := ann.Set("high_score", "900"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	if v, ok := ann.Get("high_score"); !ok || v != "900" {
		t.Errorf("ann high_score = %q %v", v, ok)
	}
	if _, ok := bob.Get("high_score"); ok {
		t.Error("namespaces should not share keys")
	}
	if v, ok, _ := store.GetPref("ann/high_score"); !ok || v != "900" {
		t.Errorf("raw key = %q %v", v, ok)
	}
}

func TestPrefsReportsReadErrors(t *testing.T) {
	store := openTestStore(t)
	p := store.Prefs("ann")
	var got error
	p.OnError = func(err error) { got = err }

	store.Close()

	if _, ok := p.Get("muted"); ok {
		t.Error("Get() on a closed store should miss")
	}
	if got == nil {
		t.Error("OnError should receive the read failure")
	}
}

func TestStoreConcurrentWrites(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Prefs("p").Set("k", "v")
			_, _ = store.SaveScore(ScoreEntry{GameID: "blockfall", Score: i})
		}(i)
	}
	wg.Wait()

	all, err := store.AllScores("blockfall")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) == 0 {
		t.Error("expected at least one score to be saved")
	}
}
