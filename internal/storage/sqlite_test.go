package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
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

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func finishedRun(mapID, strategy string, pathLen, steps int, at time.Duration) Run {
	return Run{
		MapID:     mapID,
		Strategy:  strategy,
		Shape:     "rectangle",
		Status:    "Finished",
		PathLen:   pathLen,
		Steps:     steps,
		Visited:   steps + 3,
		CreatedAt: base.Add(at),
	}
}

func failedRun(mapID, strategy string, steps int, at time.Duration) Run {
	return Run{
		MapID:     mapID,
		Strategy:  strategy,
		Shape:     "torus",
		Status:    "Failed",
		Reason:    "goal unreachable",
		PathLen:   -1,
		Steps:     steps,
		Visited:   steps,
		CreatedAt: base.Add(at),
	}
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

	in := finishedRun("open", "astar", 4, 5, time.Minute)
	id, err := store.SaveRun(in)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() returned non-UUID id %q", id)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil")
	}
	in.ID = id
	if !got.CreatedAt.Equal(in.CreatedAt) {
		t.Errorf("CreatedAt = %v, expected %v", got.CreatedAt, in.CreatedAt)
	}
	got.CreatedAt = in.CreatedAt
	if *got != in {
		t.Errorf("RunByID() = %+v\nexpected %+v", *got, in)
	}
	if !got.Finished() {
		t.Error("Finished() = false")
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)
	got, err := store.RunByID("nope")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestStoreKeepsGivenID(t *testing.T) {
	store := openTestStore(t)
	r := finishedRun("open", "bfs", 4, 9, 0)
	r.ID = "fixed-id"
	id, err := store.SaveRun(r)
	if err != nil {
		t.Fatal(err)
	}
	if id != "fixed-id" {
		t.Errorf("SaveRun() id = %q", id)
	}
	if _, err := store.SaveRun(r); err == nil {
		t.Error("expected error saving a duplicate id")
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(finishedRun("open", "bfs", 4, 10+i, time.Duration(i)*time.Minute)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.SaveRun(failedRun("walled", "bfs", 1, 10*time.Minute)); err != nil {
		t.Fatal(err)
	}

	recent, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(recent))
	}
	if recent[0].MapID != "walled" {
		t.Errorf("most recent run should be on walled, got %s", recent[0].MapID)
	}
	if recent[1].Steps != 14 || recent[2].Steps != 13 {
		t.Errorf("runs not newest first: %d, %d", recent[1].Steps, recent[2].Steps)
	}

	forMap, err := store.RunsForMap("open", 0)
	if err != nil {
		t.Fatalf("RunsForMap() failed: %v", err)
	}
	if len(forMap) != 5 {
		t.Errorf("Expected 5 runs on open, got %d", len(forMap))
	}
	for _, r := range forMap {
		if r.MapID != "open" {
			t.Errorf("RunsForMap returned run on %s", r.MapID)
		}
	}
}

func TestStoreBestRun(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		finishedRun("open", "bfs", 4, 20, 0),
		finishedRun("open", "greedy", 6, 7, time.Minute),
		finishedRun("open", "astar", 4, 5, 2*time.Minute),
		failedRun("open", "astar", 1, 3*time.Minute),
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatal(err)
		}
	}

	best, err := store.BestRun("open", "")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best == nil || best.Strategy != "astar" {
		t.Fatalf("BestRun() = %+v, expected astar with fewer steps", best)
	}

	greedy, err := store.BestRun("open", "greedy")
	if err != nil {
		t.Fatal(err)
	}
	if greedy == nil || greedy.PathLen != 6 {
		t.Errorf("BestRun(greedy) = %+v", greedy)
	}

	none, err := store.BestRun("walled", "")
	if err != nil {
		t.Fatal(err)
	}
	if none != nil {
		t.Errorf("BestRun on unknown map = %+v, expected nil", none)
	}
}

func TestStoreStrategyStats(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		finishedRun("open", "bfs", 4, 20, 0),
		finishedRun("open", "bfs", 4, 10, time.Minute),
		failedRun("open", "astar", 2, 2*time.Minute),
		finishedRun("other", "bfs", 1, 2, 3*time.Minute),
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := store.StrategyStats("open")
	if err != nil {
		t.Fatalf("StrategyStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 strategies, got %d", len(stats))
	}

	astar, bfs := stats[0], stats[1]
	if astar.Strategy != "astar" || bfs.Strategy != "bfs" {
		t.Fatalf("stats not sorted: %s, %s", astar.Strategy, bfs.Strategy)
	}
	if astar.Runs != 1 || astar.Finished != 0 || astar.BestPath != -1 {
		t.Errorf("astar stats = %+v", astar)
	}
	if bfs.Runs != 2 || bfs.Finished != 2 || bfs.BestPath != 4 {
		t.Errorf("bfs stats = %+v", bfs)
	}
	if bfs.AvgSteps != 15 {
		t.Errorf("bfs AvgSteps = %v, expected 15", bfs.AvgSteps)
	}
	if !bfs.LastRun.Equal(base.Add(time.Minute)) {
		t.Errorf("bfs LastRun = %v", bfs.LastRun)
	}

	all, err := store.StrategyStats("")
	if err != nil {
		t.Fatal(err)
	}
	if all[1].Runs != 3 || all[1].BestPath != 1 {
		t.Errorf("all-maps bfs stats = %+v", all[1])
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []Run{
		finishedRun("open", "bfs", 4, 20, 0),
		finishedRun("open", "astar", 4, 5, time.Minute),
		finishedRun("other", "bfs", 1, 2, 2*time.Minute),
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatal(err)
		}
	}

	n, err := store.ClearRuns("open")
	if err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearRuns(open) deleted %d, expected 2", n)
	}

	remaining, _ := store.RecentRuns(10)
	if len(remaining) != 1 || remaining[0].MapID != "other" {
		t.Errorf("remaining runs = %+v", remaining)
	}

	if n, _ := store.ClearRuns(""); n != 1 {
		t.Errorf("ClearRuns(\"\") deleted %d, expected 1", n)
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
