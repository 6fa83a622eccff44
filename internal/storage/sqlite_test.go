package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
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

func result(ms int) core.GameResult {
	return core.NewGameResult(time.Duration(ms) * time.Millisecond)
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
	created := time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)

	id, err := store.SaveResult(ResultEntry{
		GameID:    "snake",
		Player:    "alice",
		Result:    result(83_456),
		Level:     4,
		CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected a positive ID, got %d", id)
	}

	entries, err := store.Results("snake", 10)
	if err != nil {
		t.Fatalf("Results() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(entries))
	}

	e := entries[0]
	if e.ID != id || e.GameID != "snake" || e.Player != "alice" || e.Level != 4 {
		t.Errorf("Unexpected entry: %+v", e)
	}
	expected := core.GameResult{Minutes: 1, Seconds: 23, Milliseconds: 456}
	if e.Result != expected {
		t.Errorf("Result = %+v, expected %+v", e.Result, expected)
	}
	if !e.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, expected %v", e.CreatedAt, created)
	}
}

func TestStoreSaveStampsTime(t *testing.T) {
	store := openTestStore(t)
	before := time.Now().Add(-time.Second)

	if _, err := store.SaveResult(ResultEntry{GameID: "snake", Result: result(1000)}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	entries, _ := store.Results("snake", 1)
	if len(entries) != 1 || entries[0].CreatedAt.Before(before) {
		t.Errorf("Expected CreatedAt to be stamped, got %+v", entries)
	}
}

func TestStoreSaveRequiresGameID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveResult(ResultEntry{Result: result(1000)}); err == nil {
		t.Error("Expected an error for an empty game id")
	}
}

func TestStoreResultsMostRecentFirst(t *testing.T) {
	store := openTestStore(t)

	for _, ms := range []int{30_000, 10_000, 20_000} {
		if _, err := store.SaveResult(ResultEntry{GameID: "snake", Result: result(ms)}); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}
	store.SaveResult(ResultEntry{GameID: "snake_hard", Result: result(5_000)})

	entries, err := store.Results("snake", 10)
	if err != nil {
		t.Fatalf("Results() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(entries))
	}

	// Save order, newest first
	for i, ms := range []int{20_000, 10_000, 30_000} {
		if got := entries[i].Result.Duration(); got != time.Duration(ms)*time.Millisecond {
			t.Errorf("entries[%d] = %v, expected %dms", i, got, ms)
		}
	}
}

func TestStoreBestResults(t *testing.T) {
	store := openTestStore(t)

	for _, ms := range []int{30_000, 10_000, 20_000, 10_000} {
		store.SaveResult(ResultEntry{GameID: "snake", Result: result(ms)})
	}

	best, err := store.BestResults("snake", 3)
	if err != nil {
		t.Fatalf("BestResults() failed: %v", err)
	}
	if len(best) != 3 {
		t.Fatalf("Expected 3 results with limit, got %d", len(best))
	}

	if best[0].Result != result(10_000) || best[1].Result != result(10_000) || best[2].Result != result(20_000) {
		t.Errorf("Results not in expected order: %v", best)
	}
	if best[0].ID > best[1].ID {
		t.Error("Ties should keep save order")
	}
}

func TestStoreDefaultLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < DefaultLimit+5; i++ {
		store.SaveResult(ResultEntry{GameID: "snake", Result: result(1000 + i)})
	}

	entries, err := store.Results("snake", 0)
	if err != nil {
		t.Fatalf("Results() failed: %v", err)
	}
	if len(entries) != DefaultLimit {
		t.Errorf("Expected %d results, got %d", DefaultLimit, len(entries))
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(ResultEntry{GameID: "snake", Result: result(1000)})
	store.SaveResult(ResultEntry{GameID: "snake", Result: result(2000)})
	store.SaveResult(ResultEntry{GameID: "snake_easy", Result: result(3000)})

	if err := store.ClearResults("snake"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	if entries, _ := store.Results("snake", 10); len(entries) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(entries))
	}
	if entries, _ := store.Results("snake_easy", 10); len(entries) != 1 {
		t.Error("Other variants should not be affected by clearing snake")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("snake")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Wins != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	last := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	store.SaveResult(ResultEntry{GameID: "snake", Result: result(10_000), CreatedAt: last.Add(-time.Hour)})
	store.SaveResult(ResultEntry{GameID: "snake", Result: result(30_000), CreatedAt: last})

	stats, err := store.Stats("snake")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Wins != 2 {
		t.Errorf("Wins = %d, expected 2", stats.Wins)
	}
	if stats.Best != result(10_000) {
		t.Errorf("Best = %v, expected 00:10.000", stats.Best)
	}
	if stats.Average != result(20_000) {
		t.Errorf("Average = %v, expected 00:20.000", stats.Average)
	}
	if !stats.LastPlayed.Equal(last) {
		t.Errorf("LastPlayed = %v, expected %v", stats.LastPlayed, last)
	}
}

func TestStoreAllStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(ResultEntry{GameID: "snake", Result: result(1000)})
	store.SaveResult(ResultEntry{GameID: "snake_hard", Result: result(2000)})
	store.SaveResult(ResultEntry{GameID: "snake_hard", Result: result(4000)})

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["snake_hard"].Wins != 2 || all["snake_hard"].Average != result(3000) {
		t.Errorf("Unexpected snake_hard stats: %+v", all["snake_hard"])
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
