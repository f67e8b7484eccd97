package constraint

import (
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/they4kman/pisweep/director/random"
	"github.com/they4kman/pisweep/game"
	"github.com/they4kman/pisweep/util/collections"
)

// Director plays only the moves the revealed numbers prove safe, and guesses
// with a random.Director when there are none.
type Director struct {
	engine   *game.Engine
	fallback random.Director
}

// Observation says that exactly numMines of cells hold mines
type Observation struct {
	origin   game.Coord
	numMines int
	cells    collections.Set[game.Coord]
}

func (observation Observation) String() string {
	var cellsRepr strings.Builder
	for i, cell := range sortedCoords(observation.cells) {
		if i > 0 {
			cellsRepr.WriteString(", ")
		}
		cellsRepr.WriteString(cell.String())
	}
	return fmt.Sprintf("Obs[%8s, %d ε %s]", observation.origin, observation.numMines, cellsRepr.String())
}

// Action is a single press a director decided on
type Action struct {
	Cell   game.Coord
	IsFlag bool
}

func (director *Director) Init(engine *game.Engine) {
	director.engine = engine
	director.fallback.Init(engine)
}

func (director *Director) Act() bool {
	if director.engine == nil || director.engine.IsOver() {
		return false
	}

	action, found := director.Deliberate()
	if !found {
		log.Debug("Constraint director found no safe move, guessing")
		return director.fallback.Act()
	}

	log.WithFields(log.Fields{
		"cell": action.Cell,
		"flag": action.IsFlag,
	}).Debug("Constraint director pressing")
	if err := director.engine.Press(action.Cell.Row, action.Cell.Col, action.IsFlag); err != nil {
		log.WithError(err).Warn("Constraint director press failed")
		return false
	}
	return true
}

// Deliberate returns a move the visible numbers prove correct, if there is one
func (director *Director) Deliberate() (Action, bool) {
	observations := director.observe()

	for _, observation := range observations {
		if action, found := resolve(observation.cells, observation.numMines); found {
			return action, true
		}
	}

	// When one observation's cells are all among another's, the leftover cells
	// hold the difference in mines
	for _, inner := range observations {
		for _, outer := range observations {
			if inner.cells.Len() >= outer.cells.Len() || inner.cells.Difference(outer.cells).Len() > 0 {
				continue
			}
			rest := outer.cells.Difference(inner.cells)
			if action, found := resolve(rest, outer.numMines-inner.numMines); found {
				return action, true
			}
		}
	}

	return Action{}, false
}

// resolve finds a press when cells are either all mines or all safe
func resolve(cells collections.Set[game.Coord], numMines int) (Action, bool) {
	if cells.Len() == 0 || numMines < 0 {
		return Action{}, false
	}

	switch numMines {
	case cells.Len():
		return Action{Cell: sortedCoords(cells)[0], IsFlag: true}, true
	case 0:
		return Action{Cell: sortedCoords(cells)[0]}, true
	default:
		return Action{}, false
	}
}

// observe collects, for every revealed number, the hidden unflagged cells around
// it and how many of them must be mines
func (director *Director) observe() []Observation {
	engine := director.engine
	size := engine.Size()

	var observations []Observation
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			cell, _ := engine.Cell(row, col)
			if !cell.IsDiscovered() || cell.IsMine() || cell.AdjacentMines() == 0 {
				continue
			}

			neighbors := collections.NewSet(engine.Neighbors(row, col)...)
			flagged := neighbors.Filter(func(coord game.Coord) bool {
				neighbor, _ := engine.Cell(coord.Row, coord.Col)
				return neighbor.IsFlagged()
			})
			hidden := neighbors.Difference(flagged).Filter(func(coord game.Coord) bool {
				neighbor, _ := engine.Cell(coord.Row, coord.Col)
				return !neighbor.IsDiscovered()
			})

			if hidden.Len() > 0 {
				observations = append(observations, Observation{
					origin:   cell.Coord(),
					numMines: cell.AdjacentMines() - flagged.Len(),
					cells:    hidden,
				})
			}
		}
	}

	return observations
}

func sortedCoords(set collections.Set[game.Coord]) []game.Coord {
	coords := set.Slice()
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Row != coords[j].Row {
			return coords[i].Row < coords[j].Row
		}
		return coords[i].Col < coords[j].Col
	})
	return coords
}
