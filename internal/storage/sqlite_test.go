package storage

import (
	"math"
	"os"
	"path/filepath"
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
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsResults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("classic", 120); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("classic")
	if err != nil || high != 120 {
		t.Errorf("HighScore() = %d, %v; want 120", high, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	results := []Result{
		{GameID: "classic", Score: 100, Swaps: 12, BestCombo: 2, Seed: 7},
		{GameID: "classic", Score: 50, Swaps: 4, BestCombo: 1},
		{GameID: "classic", Score: 200, Swaps: 20, BestCombo: 4, Seed: 9},
		{GameID: "mini", Score: 500, Swaps: 30, BestCombo: 3},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	scores, err := store.TopScores("classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	top := scores[0]
	if top.Swaps != 20 || top.BestCombo != 4 || top.Seed != 9 || top.GameID != "classic" {
		t.Errorf("result fields not stored: %+v", top)
	}
	if top.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	miniScores, err := store.TopScores("mini", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(miniScores) != 1 {
		t.Errorf("Expected 1 mini score, got %d", len(miniScores))
	}
}

func TestStoreRejectsEmptyGameID(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveResult(Result{Score: 10}); err == nil {
		t.Error("expected error for empty game id")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limits fall back to ten.
	store.SaveScore("many", 1)
	for i := 0; i < 12; i++ {
		store.SaveScore("many", i)
	}
	scores, _ = store.TopScores("many", 0)
	if len(scores) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(scores))
	}
}

func TestStoreTopScoresTieOrder(t *testing.T) {
	store := openTestStore(t)

	first, _ := store.SaveScore("classic", 90)
	second, _ := store.SaveScore("classic", 90)

	scores, err := store.TopScores("classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].ID != first || scores[1].ID != second {
		t.Errorf("ties should keep insertion order, got %d then %d", scores[0].ID, scores[1].ID)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("classic", 100)
	store.SaveScore("classic", 300)
	store.SaveScore("classic", 200)

	high, err = store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("classic", 100)
	store.SaveScore("classic", 200)
	store.SaveScore("mini", 300)

	if err := store.ClearScores("classic"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	classic, _ := store.TopScores("classic", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic scores after clear, got %d", len(classic))
	}

	mini, _ := store.TopScores("mini", 10)
	if len(mini) != 1 {
		t.Errorf("Mini scores should not be affected by clearing classic")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(Result{GameID: "classic", Score: 100, Swaps: 10, BestCombo: 1})
	store.SaveResult(Result{GameID: "classic", Score: 600, Swaps: 30, BestCombo: 5})
	store.SaveResult(Result{GameID: "classic", Score: 200, Swaps: 15, BestCombo: 2})

	stats, err := store.GetGameStats("classic")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}

	if stats.GamesCount != 3 || stats.HighScore != 600 || stats.BestCombo != 5 || stats.TotalSwaps != 55 {
		t.Errorf("unexpected aggregate stats: %+v", stats)
	}
	if math.Abs(stats.AvgScore-300) > 1e-9 {
		t.Errorf("AvgScore = %v, want 300", stats.AvgScore)
	}
	if math.Abs(stats.StdDev-math.Sqrt(70000)) > 1e-6 {
		t.Errorf("StdDev = %v, want %v", stats.StdDev, math.Sqrt(70000))
	}
	if stats.Median != 200 {
		t.Errorf("Median = %v, want 200", stats.Median)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreGameStatsEmptyAndSingle(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("grand")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.AvgScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats should be zero: %+v", empty)
	}

	store.SaveScore("grand", 40)
	single, _ := store.GetGameStats("grand")
	if single.AvgScore != 40 || single.Median != 40 || single.StdDev != 0 {
		t.Errorf("single result stats: %+v", single)
	}
}

func TestStoreAllGamesStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("classic", 10)
	store.SaveScore("classic", 30)
	store.SaveScore("mini", 5)

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["classic"].GamesCount != 2 || all["classic"].HighScore != 30 {
		t.Errorf("classic stats: %+v", all["classic"])
	}
	if all["mini"].GamesCount != 1 {
		t.Errorf("mini stats: %+v", all["mini"])
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.match3/scores.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".match3", "scores.db")); err != nil {
		t.Errorf("database should be created under HOME: %v", err)
	}
}
