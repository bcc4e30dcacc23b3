package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-fighter/internal/multiplayer"
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

	id, err := store.SaveMatch(MatchRecord{
		MatchID:    "solo-1",
		Mode:       "solo",
		Player1:    "alice",
		Player2:    "CPU",
		Winner:     1,
		WinnerName: "alice",
		Health1:    42.5,
		Health2:    0,
		EndReason:  "Knockout",
		Ticks:      1800,
		Duration:   30,
		Seed:       7,
	})
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected positive ID, got %d", id)
	}

	rec, err := store.MatchByID("solo-1")
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("Expected a record")
	}
	if rec.Health1 != 42.5 || rec.Winner != 1 || rec.Seed != 7 || rec.Ticks != 1800 {
		t.Errorf("Unexpected record: %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}

	missing, err := store.MatchByID("nope")
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown match, got %+v", missing)
	}
}

func TestStoreGeneratesMatchID(t *testing.T) {
	store := openTestStore(t)

	for range 3 {
		if _, err := store.SaveMatch(MatchRecord{Mode: "versus", Player1: "P1", Player2: "P2", EndReason: "Knockout"}); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	recs, err := store.RecentMatches("versus", 10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(recs))
	}
	seen := map[string]bool{}
	for _, r := range recs {
		if r.MatchID == "" || seen[r.MatchID] {
			t.Errorf("Match IDs should be unique and non-empty, got %q", r.MatchID)
		}
		seen[r.MatchID] = true
	}
}

func TestStoreRecentMatchesOrderAndFilter(t *testing.T) {
	store := openTestStore(t)

	modes := []string{"solo", "versus", "solo", "online", "solo"}
	for i, mode := range modes {
		_, err := store.SaveMatch(MatchRecord{
			MatchID:   mode + string(rune('a'+i)),
			Mode:      mode,
			Player1:   "P1",
			Player2:   "P2",
			Winner:    1,
			EndReason: "Knockout",
			Ticks:     int64(i),
		})
		if err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	all, err := store.RecentMatches("", 3)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 matches with limit, got %d", len(all))
	}
	// Newest first
	if all[0].Ticks != 4 || all[1].Ticks != 3 || all[2].Ticks != 2 {
		t.Errorf("Matches not in expected order: %+v", all)
	}

	solo, err := store.RecentMatches("solo", 10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(solo) != 3 {
		t.Errorf("Expected 3 solo matches, got %d", len(solo))
	}
}

func TestStoreTallies(t *testing.T) {
	store := openTestStore(t)

	records := []MatchRecord{
		{MatchID: "a", Mode: "solo", Winner: 1, Ticks: 100},
		{MatchID: "b", Mode: "solo", Winner: 2, Ticks: 300},
		{MatchID: "c", Mode: "solo", Winner: 1, Ticks: 200},
		{MatchID: "d", Mode: "versus", Winner: 2, Ticks: 50},
	}
	for _, r := range records {
		r.Player1, r.Player2, r.EndReason = "P1", "P2", "Knockout"
		if _, err := store.SaveMatch(r); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	tallies, err := store.Tallies()
	if err != nil {
		t.Fatalf("Tallies() failed: %v", err)
	}
	if len(tallies) != 2 {
		t.Fatalf("Expected 2 modes, got %d", len(tallies))
	}

	solo := tallies[0]
	if solo.Mode != "solo" || solo.Matches != 3 || solo.P1Wins != 2 || solo.P2Wins != 1 {
		t.Errorf("Unexpected solo tally: %+v", solo)
	}
	if solo.AvgTicks != 200 {
		t.Errorf("Expected average of 200 ticks, got %f", solo.AvgTicks)
	}
	if tallies[1].Mode != "versus" || tallies[1].P2Wins != 1 {
		t.Errorf("Unexpected versus tally: %+v", tallies[1])
	}
}

func TestStorePlayerHistoryAndWins(t *testing.T) {
	store := openTestStore(t)

	records := []MatchRecord{
		{MatchID: "1", Player1: "alice", Player2: "bob", Winner: 1, WinnerName: "alice"},
		{MatchID: "2", Player1: "bob", Player2: "carol", Winner: 1, WinnerName: "bob"},
		{MatchID: "3", Player1: "carol", Player2: "alice", Winner: 2, WinnerName: "alice"},
	}
	for _, r := range records {
		r.Mode, r.EndReason = "online", "Knockout"
		if _, err := store.SaveMatch(r); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	history, err := store.PlayerMatchHistory("alice", 10)
	if err != nil {
		t.Fatalf("PlayerMatchHistory() failed: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("Expected 2 matches for alice, got %d", len(history))
	}

	wins, err := store.Wins("alice")
	if err != nil {
		t.Fatalf("Wins() failed: %v", err)
	}
	if wins != 2 {
		t.Errorf("Expected 2 wins for alice, got %d", wins)
	}
}

func TestStoreClearMatches(t *testing.T) {
	store := openTestStore(t)

	store.SaveMatch(MatchRecord{MatchID: "s", Mode: "solo", EndReason: "Knockout"})
	store.SaveMatch(MatchRecord{MatchID: "v", Mode: "versus", EndReason: "Knockout"})

	if err := store.ClearMatches("solo"); err != nil {
		t.Fatalf("ClearMatches() failed: %v", err)
	}
	solo, _ := store.RecentMatches("solo", 10)
	if len(solo) != 0 {
		t.Errorf("Expected 0 solo matches after clear, got %d", len(solo))
	}
	versus, _ := store.RecentMatches("versus", 10)
	if len(versus) != 1 {
		t.Errorf("Versus matches should not be affected by clearing solo")
	}

	if err := store.ClearMatches(""); err != nil {
		t.Fatalf("ClearMatches() failed: %v", err)
	}
	all, _ := store.RecentMatches("", 10)
	if len(all) != 0 {
		t.Errorf("Expected empty history, got %d", len(all))
	}
}

func TestStoreSaveMatchResult(t *testing.T) {
	store := openTestStore(t)

	err := store.SaveMatchResult(multiplayer.MatchResultData{
		MatchID:    "match-ABC123-1",
		Player1:    "alice",
		Player2:    "bob",
		Winner:     2,
		WinnerName: "bob",
		Health1:    0,
		Health2:    61,
		EndReason:  "Knockout",
		Ticks:      600,
	})
	if err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	rec, err := store.MatchByID("match-ABC123-1")
	if err != nil || rec == nil {
		t.Fatalf("MatchByID() = %v, %v", rec, err)
	}
	if rec.Mode != "online" || rec.WinnerName != "bob" || rec.Health2 != 61 || rec.Ticks != 600 {
		t.Errorf("Unexpected online record: %+v", rec)
	}

	// Match IDs are unique
	if err := store.SaveMatchResult(multiplayer.MatchResultData{MatchID: "match-ABC123-1"}); err == nil {
		t.Error("Expected duplicate match ID to fail")
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
