package game

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSnapshotRoundTrip(t *testing.T) {
	engine, _ := newLaidEngine(t,
		"x...",
		"....",
		"..x.",
		"....",
	)
	engine.seed = 1234
	mustPress(t, engine, 0, 3, false)
	mustPress(t, engine, 2, 2, true)
	mustPress(t, engine, 3, 0, true)

	serialized, err := engine.Snapshot().Serialize()
	if err != nil {
		t.Fatal(err)
	}

	snapshot, err := LoadSnapshot(serialized)
	if err != nil {
		t.Fatal(err)
	}
	if snapshot.Seed != 1234 {
		t.Errorf("Seed = %d, want 1234", snapshot.Seed)
	}

	restored, err := NewEngineFromSnapshot(nil, snapshot, EngineConfig{}, false)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := restored.Snapshot().SerializedBoard, engine.Snapshot().SerializedBoard; got != want {
		t.Errorf("restored board\n%s\nwant\n%s", got, want)
	}
	if restored.NumMines() != 2 || restored.NumFlags() != 2 || restored.State() != Ongoing {
		t.Errorf("restored mines = %d, flags = %d, state = %v", restored.NumMines(), restored.NumFlags(), restored.State())
	}
	for _, cell := range restored.cells {
		if !cell.isMine && cell.adjacentMines != bruteCount(restored, cell.row, cell.col) {
			t.Errorf("%v has %d adjacent mines after restore", cell, cell.adjacentMines)
		}
	}
}

func TestSnapshotSerializedBoard(t *testing.T) {
	engine, _ := newLaidEngine(t,
		"x..",
		"...",
		"..x",
	)
	mustPress(t, engine, 2, 0, false)
	mustPress(t, engine, 0, 0, true)
	mustPress(t, engine, 0, 2, true)
	mustPress(t, engine, 2, 2, false)

	want := "F#f\n..#\n..*"
	if got := engine.Snapshot().SerializedBoard; got != want {
		t.Errorf("board = %q, want %q", got, want)
	}
}

func TestNewEngineFromSnapshotRestoresLoss(t *testing.T) {
	snapshot := &BoardSnapshot{Seed: 5, SerializedBoard: "*.\n#O"}

	renderer := newRecordingRenderer()
	engine, err := NewEngineFromSnapshot(renderer, snapshot, EngineConfig{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if engine.State() != Lost {
		t.Fatalf("State() = %v, want lost", engine.State())
	}

	engine.Start()
	want := map[int]ImageID{1: ImageDetonatedMine, 2: "2", 3: ImageBlank, 4: ImageMine}
	for tile, image := range want {
		if renderer.tiles[tile] != image {
			t.Errorf("tile %d shows %q, want %q", tile, renderer.tiles[tile], image)
		}
	}
}

func TestNewEngineFromSnapshotRestoresWin(t *testing.T) {
	snapshot := &BoardSnapshot{SerializedBoard: "O.\n.."}

	engine, err := NewEngineFromSnapshot(nil, snapshot, EngineConfig{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if engine.State() != Won {
		t.Errorf("State() = %v, want won", engine.State())
	}
}

func TestNewEngineFromSnapshotFresh(t *testing.T) {
	snapshot := &BoardSnapshot{Seed: 9, SerializedBoard: "*.f\n.F.\n#.."}

	engine, err := NewEngineFromSnapshot(nil, snapshot, EngineConfig{}, true)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := engine.Snapshot().SerializedBoard, "O##\n#O#\n###"; got != want {
		t.Errorf("board = %q, want %q", got, want)
	}
	if engine.State() != Ongoing || engine.NumFlags() != 0 || engine.Seed() != 9 {
		t.Errorf("state = %v, flags = %d, seed = %d", engine.State(), engine.NumFlags(), engine.Seed())
	}
	if engine.RequestedMines() != 2 {
		t.Errorf("RequestedMines() = %d, want 2", engine.RequestedMines())
	}
}

func TestNewEngineFromSnapshotRejectsMalformedBoards(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"not square":   "...\n...",
		"ragged":       "..\n...\n...",
		"unknown cell": "..\n.?",
	}

	for name, board := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewEngineFromSnapshot(nil, &BoardSnapshot{SerializedBoard: board}, EngineConfig{}, false)
			if !errors.Is(err, ErrMalformedSnapshot) {
				t.Errorf("error = %v, want ErrMalformedSnapshot", err)
			}
		})
	}

	_, err := NewEngineFromSnapshot(nil, &BoardSnapshot{SerializedBoard: "OO\nOO"}, EngineConfig{}, false)
	if !errors.Is(err, ErrTooManyMines) {
		t.Errorf("all-mine board error = %v, want ErrTooManyMines", err)
	}
}

func TestLoadSnapshotRejectsInvalidYAML(t *testing.T) {
	if _, err := LoadSnapshot("seed: [unterminated"); err == nil {
		t.Error("expected an error")
	}
}

func TestGenerateReplayFilename(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	tests := map[BoardState]string{
		Won:     "20260304_050607_win.yaml",
		Lost:    "20260304_050607_loss.yaml",
		Ongoing: "20260304_050607_other.yaml",
	}
	for state, want := range tests {
		if got := generateReplayFilename(state, at); got != want {
			t.Errorf("generateReplayFilename(%v) = %q, want %q", state, got, want)
		}
	}
}

func TestGameConfigSavesFinishedBoards(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")

	config := NewGameConfig()
	config.Snapshot = &BoardSnapshot{Seed: 3, SerializedBoard: "O..\n...\n..."}
	config.SavedSnapshotsDir = dir

	engine, err := config.CreateEngine(nil)
	if err != nil {
		t.Fatal(err)
	}
	mustPress(t, engine, 0, 0, false)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), "_loss.yaml") {
		t.Fatalf("saved snapshots = %v", entries)
	}

	contents, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	snapshot, err := LoadSnapshot(string(contents))
	if err != nil {
		t.Fatal(err)
	}
	if snapshot.SerializedBoard != "*##\n###\n###" || snapshot.Seed != 3 {
		t.Errorf("saved snapshot = %+v", snapshot)
	}
}

func TestGameConfigRefusesFileAsSnapshotsDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, nil, 0666); err != nil {
		t.Fatal(err)
	}

	config := NewGameConfig()
	config.SavedSnapshotsDir = path

	engine, err := config.CreateEngine(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := config.saveSnapshot(engine, time.Now()); err == nil {
		t.Error("expected an error saving into a file")
	}
}

func TestGameConfigCreatesGeneratedBoard(t *testing.T) {
	config := NewGameConfig()
	config.Seed = 77

	engine, err := config.CreateEngine(nil)
	if err != nil {
		t.Fatal(err)
	}
	if engine.Size() != DefaultSize || engine.RequestedMines() != DefaultNumMines || engine.Seed() != 77 {
		t.Errorf("size = %d, mines = %d, seed = %d", engine.Size(), engine.RequestedMines(), engine.Seed())
	}
}
