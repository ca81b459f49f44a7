package session

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func TestNewPicksSeed(t *testing.T) {
	s, err := New(Options{Config: config.DefaultConfig()})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if s.Seed == 0 {
		t.Error("Seed should be time-based when 0 is given")
	}
	if s.Config.TickRate != 10 {
		t.Errorf("TickRate = %d, expected 10", s.Config.TickRate)
	}
	if s.Recording() || s.Done() {
		t.Error("plain session should neither record nor finish")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Snake.Body = nil
	if _, err := New(Options{Config: cfg}); err == nil {
		t.Error("New() should fail on an empty body")
	}
}

func TestRecordAndReplay(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	live, err := New(Options{Config: config.DefaultConfig(), Seed: 4, Host: "test", Record: true, Autopilot: true})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	for i := range 120 {
		if i == 30 {
			live.Pressed(core.ButtonUp)
		}
		live.Update()
	}
	id, err := live.Save(store)
	if err != nil || id == "" {
		t.Fatalf("Save() = %q, %v", id, err)
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	replayed, err := NewReplay(run)
	if err != nil {
		t.Fatalf("NewReplay() failed: %v", err)
	}
	steps := 0
	for !replayed.Done() {
		replayed.Update()
		steps++
	}
	if steps != 120 {
		t.Errorf("replay ran %d ticks, expected 120", steps)
	}
	if got, want := replayed.Snapshot().Head(), live.Snapshot().Head(); got != want {
		t.Errorf("replay head = %v, expected %v", got, want)
	}
}

func TestSaveWithoutRecording(t *testing.T) {
	s, err := New(Options{Config: config.DefaultConfig(), Seed: 1})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if id, err := s.Save(nil); id != "" || err != nil {
		t.Errorf("Save() = %q, %v; expected no-op", id, err)
	}
}

func TestSaveOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	s, err := New(Options{Config: config.DefaultConfig(), Seed: 2, Record: true})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	s.Update()

	first, err := s.Save(store)
	if err != nil || first == "" {
		t.Fatalf("Save() = %q, %v", first, err)
	}
	second, err := s.Save(store)
	if err != nil || second != first {
		t.Errorf("second Save() = %q, %v; expected %q", second, err, first)
	}
	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("stored %d runs, expected 1", len(runs))
	}
}
