package storage

import (
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, sc := range []int{100, 50, 200} {
		if _, err := store.SaveScore("digger", "alice", sc); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", "bob", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("digger", 10)
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
	if scores[0].Player != "alice" {
		t.Errorf("Player = %q, expected alice", scores[0].Player)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", "", (i+1)*100)
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
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("digger")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("digger", "", 100)
	store.SaveScore("digger", "", 300)
	store.SaveScore("digger", "", 200)

	high, err = store.HighScore("digger")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("digger", "", 100)
	store.SaveScore("digger", "", 200)
	store.SaveScore("other", "", 300)

	if err := store.ClearScores("digger"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("digger", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Errorf("Other game scores should not be affected")
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []RunEntry{
		{LevelID: "01", Player: "a", Score: 30, Ticks: 120, Outcome: OutcomeCleared},
		{LevelID: "01", Player: "b", Score: 30, Ticks: 80, Outcome: OutcomeCleared},
		{LevelID: "01", Player: "c", Score: 10, Ticks: 40, Outcome: OutcomeDied},
		{LevelID: "02", Player: "a", Score: 50, Ticks: 60, Outcome: OutcomeCleared},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	fastest, err := store.FastestClears("01", 10)
	if err != nil {
		t.Fatalf("FastestClears() failed: %v", err)
	}
	if len(fastest) != 2 {
		t.Fatalf("Expected 2 clears, got %d", len(fastest))
	}
	if fastest[0].Player != "b" || fastest[0].Ticks != 80 || fastest[0].Outcome != OutcomeCleared {
		t.Errorf("fastest clear = %+v", fastest[0])
	}

	stats, err := store.GetLevelStats("01")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Attempts != 3 || stats.Clears != 2 || stats.BestTicks != 80 {
		t.Errorf("stats = %+v", stats)
	}

	empty, err := store.GetLevelStats("99")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if empty.Attempts != 0 || empty.BestTicks != 0 {
		t.Errorf("empty stats = %+v", empty)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("digger", "", 10)
	store.SaveScore("digger", "", 30)

	stats, err := store.GetGameStats("digger")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.AvgScore != 20 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
