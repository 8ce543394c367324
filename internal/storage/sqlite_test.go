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

	id, err := store.SaveRun(Run{Player: "alice", UnitsSold: 12, Revenue: 90, TopTier: "Donut", EndReason: EndReset, Duration: 30})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveRun() should assign an ID")
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil {
		t.Fatal("RunByID() returned nil for saved run")
	}
	if run.Player != "alice" || run.UnitsSold != 12 || run.Revenue != 90 || run.TopTier != "Donut" ||
		run.EndReason != EndReset || run.Duration != 30 {
		t.Errorf("RunByID() = %+v", run)
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}

	missing, err := store.RunByID("no-such-run")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("RunByID() for unknown ID = %+v, expected nil", missing)
	}
}

func TestStoreSaveRunKeepsID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{ID: "fixed-id", UnitsSold: 1, Revenue: 5})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("SaveRun() ID = %q, expected fixed-id", id)
	}

	run, _ := store.RunByID(id)
	if run == nil || run.EndReason != EndQuit {
		t.Errorf("empty end reason should default to %q, got %+v", EndQuit, run)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{UnitsSold: i + 1, Revenue: (i + 1) * 100})
	}

	runs, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Revenue != 500 || runs[1].Revenue != 400 || runs[2].Revenue != 300 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreBestRun(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestRun()
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best != nil {
		t.Errorf("BestRun() on empty store = %+v, expected nil", best)
	}

	store.SaveRun(Run{UnitsSold: 10, Revenue: 75})
	store.SaveRun(Run{UnitsSold: 30, Revenue: 400})
	store.SaveRun(Run{UnitsSold: 20, Revenue: 200})

	best, err = store.BestRun()
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best == nil || best.Revenue != 400 {
		t.Errorf("BestRun() = %+v, expected revenue 400", best)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || stats.TotalRevenue != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty store = %+v", stats)
	}

	store.SaveRun(Run{UnitsSold: 10, Revenue: 75})
	store.SaveRun(Run{UnitsSold: 5, Revenue: 25})

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.TotalSold != 15 || stats.TotalRevenue != 100 || stats.BestRevenue != 75 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestStorePlayerRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Player: "alice", UnitsSold: 1, Revenue: 5})
	store.SaveRun(Run{Player: "bob", UnitsSold: 2, Revenue: 10})
	store.SaveRun(Run{Player: "alice", UnitsSold: 3, Revenue: 15})

	runs, err := store.PlayerRuns("alice", 10)
	if err != nil {
		t.Fatalf("PlayerRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs for alice, got %d", len(runs))
	}
	// Most recent first
	if runs[0].UnitsSold != 3 {
		t.Errorf("PlayerRuns() first = %+v, expected the latest run", runs[0])
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{UnitsSold: 1, Revenue: 5})
	store.SaveRun(Run{UnitsSold: 2, Revenue: 10})

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns(10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
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

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
