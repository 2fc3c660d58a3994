package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/games/jumper"
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

func TestStoreReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SetInt(ctx, jumper.KeyCoins, 42); err != nil {
		t.Fatalf("SetInt() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if v, err := store.GetInt(ctx, jumper.KeyCoins); err != nil || v != 42 {
		t.Errorf("GetInt after reopen = %d, %v; expected 42", v, err)
	}
}

func TestStorePrefs(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	// Missing keys read as zero
	if v, err := store.GetInt(ctx, "missing"); err != nil || v != 0 {
		t.Errorf("GetInt(missing) = %d, %v; expected 0, nil", v, err)
	}
	if v, err := store.GetFloat(ctx, "missing"); err != nil || v != 0 {
		t.Errorf("GetFloat(missing) = %v, %v; expected 0, nil", v, err)
	}

	if err := store.SetInt(ctx, "coins", 10); err != nil {
		t.Fatalf("SetInt() failed: %v", err)
	}
	if err := store.SetInt(ctx, "coins", 15); err != nil {
		t.Fatalf("SetInt() overwrite failed: %v", err)
	}
	if v, _ := store.GetInt(ctx, "coins"); v != 15 {
		t.Errorf("GetInt(coins) = %d, expected 15", v)
	}

	if err := store.SetFloat(ctx, "high_score", 1234.5); err != nil {
		t.Fatalf("SetFloat() failed: %v", err)
	}
	if v, _ := store.GetFloat(ctx, "high_score"); v != 1234.5 {
		t.Errorf("GetFloat(high_score) = %v, expected 1234.5", v)
	}

	// Int and real values of one key are independent columns
	if v, _ := store.GetInt(ctx, "high_score"); v != 0 {
		t.Errorf("GetInt on a real-only key = %d, expected 0", v)
	}
}

func TestStorePlayerPrefsIsolated(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	alice := store.ForPlayer("alice")
	bob := store.ForPlayer("bob")

	alice.SetInt(ctx, jumper.KeyCoins, 30)
	bob.SetInt(ctx, jumper.KeyCoins, 5)
	store.SetInt(ctx, jumper.KeyCoins, 1)

	if v, _ := alice.GetInt(ctx, jumper.KeyCoins); v != 30 {
		t.Errorf("alice coins = %d, expected 30", v)
	}
	if v, _ := bob.GetInt(ctx, jumper.KeyCoins); v != 5 {
		t.Errorf("bob coins = %d, expected 5", v)
	}
	if v, _ := store.ForPlayer("").GetInt(ctx, jumper.KeyCoins); v != 1 {
		t.Errorf("local coins = %d, expected 1", v)
	}
}

func TestStoreSessionProgressRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	store.SetInt(ctx, jumper.KeyCoins, 120)
	s := jumper.NewSession(config.DefaultJumperConfig(), nil, store, nil)
	s.Load(ctx)

	if err := s.Purchase(ctx, 1); err != nil {
		t.Fatalf("Purchase() failed: %v", err)
	}
	if err := s.SelectCharacter(ctx, 1); err != nil {
		t.Fatalf("SelectCharacter() failed: %v", err)
	}

	p := jumper.LoadProgress(ctx, store, nil)
	if p.Coins != 20 || p.Owned != 2 || p.Selected != 1 {
		t.Errorf("stored progress = %+v, expected coins 20, owned 2, selected 1", p)
	}

	ok := jumper.SaveProgress(ctx, store, jumper.SaveRequest{Coins: 25, HighScore: 900, NewHighScore: true}, nil)
	if !ok {
		t.Fatal("SaveProgress() reported failure")
	}
	if p := jumper.LoadProgress(ctx, store, nil); p.HighScore != 900 || p.Coins != 25 {
		t.Errorf("progress after save = %+v", p)
	}
}

func TestStoreRuns(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	scores := []int{100, 50, 300, 200}
	var ids []string
	for i, sc := range scores {
		id, err := store.SaveRun(ctx, Run{Character: "Hopper", Score: sc, Coins: i, Seed: int64(i)})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		ids = append(ids, id)
	}
	if ids[0] == ids[1] {
		t.Error("run IDs should be unique")
	}

	top, err := store.TopRuns(ctx, 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(top))
	}
	if top[0].Score != 300 || top[1].Score != 200 || top[2].Score != 100 {
		t.Errorf("Runs not in expected order: %v", top)
	}

	high, err := store.HighScore(ctx)
	if err != nil || high != 300 {
		t.Errorf("HighScore() = %d, %v; expected 300", high, err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.RunsCount != 4 || stats.HighScore != 300 || stats.TotalCoins != 6 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestStoreRunByID(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	blob := []byte{0x01, 0x02, 0x03}
	id, err := store.SaveRun(ctx, Run{Player: "alice", Character: "Ninja", Score: 777, Seed: 99, Ticks: 600, Replay: blob})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	r, err := store.RunByID(ctx, id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if r == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}
	if r.Player != "alice" || r.Character != "Ninja" || r.Score != 777 || r.Seed != 99 || r.Ticks != 600 {
		t.Errorf("RunByID() = %+v", r)
	}
	if string(r.Replay) != string(blob) {
		t.Errorf("replay blob = %v, expected %v", r.Replay, blob)
	}

	missing, err := store.RunByID(ctx, "no-such-run")
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = %v, %v; expected nil, nil", missing, err)
	}
}

func TestStoreEmptyHistory(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	high, err := store.HighScore(ctx)
	if err != nil || high != 0 {
		t.Errorf("HighScore() on empty db = %d, %v", high, err)
	}
	stats, err := store.Stats(ctx)
	if err != nil || stats.RunsCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty db = %+v, %v", stats, err)
	}
}

func TestStoreClearRuns(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	store.SaveRun(ctx, Run{Character: "Hopper", Score: 1})
	store.SetInt(ctx, "coins", 5)

	if err := store.ClearRuns(ctx); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if runs, _ := store.TopRuns(ctx, 10); len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	if v, _ := store.GetInt(ctx, "coins"); v != 5 {
		t.Error("ClearRuns should not touch preferences")
	}
}
