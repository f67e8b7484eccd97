package random

import (
	"io"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/they4kman/pisweep/game"
)

func init() {
	log.SetOutput(io.Discard)
}

func TestDirectorPlaysUntilGameEnds(t *testing.T) {
	engine, err := game.NewEngine(nil, game.EngineConfig{Size: 8, NumMines: 10, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}

	director := &Director{}
	director.Init(engine)

	acts := 0
	for director.Act() {
		acts++
		if acts > engine.NumCells() {
			t.Fatal("director kept acting past the number of cells")
		}
	}

	if acts == 0 {
		t.Error("director never acted")
	}
	if !engine.IsOver() {
		t.Error("director stopped before the game ended")
	}
}

func TestDirectorSkipsFlaggedAndDiscoveredCells(t *testing.T) {
	engine, err := game.NewEngineFromSnapshot(nil, &game.BoardSnapshot{Seed: 8, SerializedBoard: "f.\n#O"}, game.EngineConfig{}, false)
	if err != nil {
		t.Fatal(err)
	}

	director := &Director{}
	director.Init(engine)

	coord, found := director.Pick()
	if !found {
		t.Fatal("expected a cell to pick")
	}
	if coord != (game.Coord{Row: 1, Col: 0}) && coord != (game.Coord{Row: 1, Col: 1}) {
		t.Errorf("Pick() = %v, want a hidden unflagged cell", coord)
	}
}

func TestDirectorOrderFollowsSeed(t *testing.T) {
	first, _ := game.NewEngine(nil, game.EngineConfig{Size: 8, NumMines: 10, Seed: 21})
	second, _ := game.NewEngine(nil, game.EngineConfig{Size: 8, NumMines: 10, Seed: 21})

	a, b := &Director{}, &Director{}
	a.Init(first)
	b.Init(second)

	for i := range a.order {
		if a.order[i] != b.order[i] {
			t.Fatalf("order differs at %d: %v != %v", i, a.order[i], b.order[i])
		}
	}
}

func TestDirectorWithoutEngine(t *testing.T) {
	director := &Director{}
	if director.Act() {
		t.Error("uninitialised director should not act")
	}
}
