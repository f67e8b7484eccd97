package random

import (
	"math/rand"

	log "github.com/sirupsen/logrus"
	"github.com/they4kman/pisweep/game"
)

// Director presses hidden cells in a random order fixed when the board starts.
// The order is derived from the board's seed, so replays behave the same.
type Director struct {
	engine *game.Engine
	order  []game.Coord
}

func (director *Director) Init(engine *game.Engine) {
	director.engine = engine

	size := engine.Size()
	director.order = make([]game.Coord, 0, engine.NumCells())
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			director.order = append(director.order, game.Coord{Row: row, Col: col})
		}
	}

	rng := rand.New(rand.NewSource(engine.Seed()))
	rng.Shuffle(len(director.order), func(i, j int) {
		director.order[i], director.order[j] = director.order[j], director.order[i]
	})
}

// Pick returns the next hidden, unflagged cell
func (director *Director) Pick() (game.Coord, bool) {
	for _, coord := range director.order {
		cell, err := director.engine.Cell(coord.Row, coord.Col)
		if err != nil {
			continue
		}
		if !cell.IsDiscovered() && !cell.IsFlagged() {
			return coord, true
		}
	}
	return game.Coord{}, false
}

func (director *Director) Act() bool {
	if director.engine == nil || director.engine.IsOver() {
		return false
	}

	coord, found := director.Pick()
	if !found {
		return false
	}

	log.WithField("cell", coord).Debug("Random director revealing")
	if err := director.engine.Press(coord.Row, coord.Col, false); err != nil {
		log.WithError(err).Warn("Random director press failed")
		return false
	}
	return true
}
