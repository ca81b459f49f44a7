package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
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

func sampleRun() Run {
	return Run{
		Host:   "tui",
		Seed:   42,
		Config: []byte("tick_rate: 10\n"),
		Final: snake.Snapshot{
			Tick:      12,
			Direction: "down",
			Body:      []core.Cell{{X: 3, Y: 4}, {X: 3, Y: 3}},
			Food:      core.Cell{X: 9, Y: 1},
		},
		Presses: []Press{
			{Tick: 2, Button: "down"},
			{Tick: 2, Button: "left"},
			{Tick: 7, Button: "down"},
		},
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoadRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(sampleRun())
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveRun() returned an empty ID")
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}

	want := sampleRun()
	if run.PressCount != len(want.Presses) {
		t.Errorf("PressCount = %d, expected %d", run.PressCount, len(want.Presses))
	}
	if run.Host != want.Host || run.Seed != want.Seed {
		t.Errorf("run = %s/%d, expected %s/%d", run.Host, run.Seed, want.Host, want.Seed)
	}
	if string(run.Config) != string(want.Config) {
		t.Errorf("Config = %q, expected %q", run.Config, want.Config)
	}
	if !run.Final.Equal(want.Final) {
		t.Errorf("Final = %+v, expected %+v", run.Final, want.Final)
	}
	if len(run.Presses) != len(want.Presses) {
		t.Fatalf("got %d presses, expected %d", len(run.Presses), len(want.Presses))
	}
	for i, p := range run.Presses {
		if p != want.Presses[i] {
			t.Errorf("press %d = %+v, expected %+v", i, p, want.Presses[i])
		}
	}
}

func TestStoreRunNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.RunByID("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("RunByID() error = %v, expected ErrRunNotFound", err)
	}
	if err := store.DeleteRun("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("DeleteRun() error = %v, expected ErrRunNotFound", err)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i := range 5 {
		run := sampleRun()
		run.Seed = int64(i)
		id, err := store.SaveRun(run)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	// Newest first
	if runs[0].ID != ids[4] || runs[2].ID != ids[2] {
		t.Errorf("runs not newest first: got %s..%s", runs[0].ID, runs[2].ID)
	}
	for _, r := range runs {
		if len(r.Presses) != 0 {
			t.Errorf("listing should not load presses, run %s has %d", r.ID, len(r.Presses))
		}
		if r.PressCount != 3 {
			t.Errorf("run %s PressCount = %d, expected 3", r.ID, r.PressCount)
		}
	}
}

func TestStoreDeleteRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(sampleRun())
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if err := store.DeleteRun(id); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}
	if _, err := store.RunByID(id); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("RunByID() after delete error = %v, expected ErrRunNotFound", err)
	}
}

func TestStoreSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	run := sampleRun()
	run.ID = "fixed-id"
	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("SaveRun() = %q, expected fixed-id", id)
	}
	if _, err := store.SaveRun(run); err == nil {
		t.Error("saving a duplicate ID should fail")
	}
}

func TestStoreFindRun(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"abc-111", "abd-222"} {
		run := sampleRun()
		run.ID = id
		if _, err := store.SaveRun(run); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	tests := []struct {
		prefix string
		wantID string
		err    error
	}{
		{"abc-111", "abc-111", nil},
		{"abc", "abc-111", nil},
		{"abd", "abd-222", nil},
		{"ab", "", ErrAmbiguousID},
		{"zzz", "", ErrRunNotFound},
		{"", "", ErrRunNotFound},
	}
	for _, tc := range tests {
		run, err := store.FindRun(tc.prefix)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Errorf("FindRun(%q) error = %v, expected %v", tc.prefix, err, tc.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("FindRun(%q) failed: %v", tc.prefix, err)
			continue
		}
		if run.ID != tc.wantID || len(run.Presses) != 3 {
			t.Errorf("FindRun(%q) = %s with %d presses, expected %s with 3", tc.prefix, run.ID, len(run.Presses), tc.wantID)
		}
	}
}
