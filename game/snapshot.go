package game

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

var ErrMalformedSnapshot = errors.New("malformed board snapshot")

// BoardSnapshot records a board's layout and progress, one character per cell:
//
//	*  detonated mine
//	F  flagged mine
//	O  hidden mine
//	f  flagged cell
//	.  discovered cell
//	#  hidden cell
type BoardSnapshot struct {
	Seed            int64  `yaml:"seed"`
	SerializedBoard string `yaml:"board"`
}

func (snapshot *BoardSnapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", errors.Wrap(err, "marshalling board snapshot")
	}
	return string(out), nil
}

// Size returns the number of rows on the serialized board
func (snapshot *BoardSnapshot) Size() int {
	return len(snapshot.rows())
}

func (snapshot *BoardSnapshot) rows() []string {
	rows := strings.Split(strings.TrimSpace(snapshot.SerializedBoard), "\n")
	for i, row := range rows {
		rows[i] = strings.TrimSpace(row)
	}
	return rows
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, errors.Wrap(err, "parsing board snapshot")
	}
	return &snapshot, nil
}

func (engine *Engine) Snapshot() *BoardSnapshot {
	var board strings.Builder
	board.Grow(len(engine.cells) + engine.size)

	for i := range engine.cells {
		if i > 0 && i%engine.size == 0 {
			board.WriteByte('\n')
		}
		board.WriteString(engine.cells[i].serialize(i == engine.losingMine))
	}

	return &BoardSnapshot{
		Seed:            engine.seed,
		SerializedBoard: board.String(),
	}
}

// NewEngineFromSnapshot rebuilds the board a snapshot describes. When fresh is
// set only the mines are kept, and every cell starts hidden and unflagged. The
// config's size and mine count are taken from the snapshot; its OnGameEnd is
// kept. Call Start to paint the restored board.
func NewEngineFromSnapshot(renderer Renderer, snapshot *BoardSnapshot, config EngineConfig, fresh bool) (*Engine, error) {
	rows := snapshot.rows()
	for i, row := range rows {
		if len(row) != len(rows) {
			return nil, errors.Wrapf(ErrMalformedSnapshot, "row %d has %d cells on a board of %d rows", i, len(row), len(rows))
		}
	}

	config.Size = len(rows)
	config.Seed = snapshot.Seed
	config.NumMines = 0
	for _, row := range rows {
		config.NumMines += strings.Count(row, "*") + strings.Count(row, "F") + strings.Count(row, "O")
	}

	engine, err := newEngine(renderer, config)
	if err != nil {
		return nil, err
	}

	for r, row := range rows {
		for c, char := range row {
			cell := engine.cellAt(r, c)

			isLosingMine, ok := cell.deserialize(char, fresh)
			if !ok {
				return nil, errors.Wrapf(ErrMalformedSnapshot, "unknown cell %q at (%d, %d)", char, r, c)
			}
			if isLosingMine {
				engine.losingMine = engine.idx(r, c)
			}
			if cell.isFlagged {
				engine.numFlags++
			}
		}
	}

	engine.countAllNeighbors()
	for i := range engine.cells {
		cell := &engine.cells[i]
		if cell.isDiscovered && !cell.isMine && cell.adjacentMines == 0 {
			cell.isEmptyLeaf = true
		}
	}

	switch {
	case engine.losingMine >= 0:
		engine.state = Lost
	case !fresh && engine.allSafeDiscovered():
		engine.state = Won
	}

	return engine, nil
}
