package game

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidSize  = errors.New("board size must be positive")
	ErrTooManyMines = errors.New("mine count must be less than the number of cells")
	ErrOutOfRange   = errors.New("cell out of range")
)

type EngineConfig struct {
	Size     int
	NumMines int

	// Seed for mine placement. Zero picks one from the clock.
	Seed int64

	// Called once each time a board is won or lost
	OnGameEnd func(*Engine)
}

// Validate checks the board size and mine count
func (config EngineConfig) Validate() error {
	if config.Size <= 0 {
		return errors.Wrapf(ErrInvalidSize, "got %d", config.Size)
	}
	if config.NumMines < 0 || config.NumMines >= config.Size*config.Size {
		return errors.Wrapf(ErrTooManyMines, "%d mines on a %dx%d board", config.NumMines, config.Size, config.Size)
	}
	return nil
}

// Engine owns a square minesweeper board. It is not safe for concurrent use;
// every operation runs to completion, renders included, before returning.
type Engine struct {
	renderer Renderer

	size           int
	requestedMines int
	numMines       int // actually placed; duplicate draws collapse
	numFlags       int
	cells          []Cell

	state      BoardState
	losingMine int // flat index of the detonated mine, or -1

	seed int64
	rand *rand.Rand

	onGameEnd func(*Engine)
}

// New creates an engine with the default seed source and places its mines
func New(renderer Renderer, numMines, size int) (*Engine, error) {
	return NewEngine(renderer, EngineConfig{Size: size, NumMines: numMines})
}

func NewEngine(renderer Renderer, config EngineConfig) (*Engine, error) {
	engine, err := newEngine(renderer, config)
	if err != nil {
		return nil, err
	}

	engine.generateMines()
	return engine, nil
}

// newEngine validates the config and builds an engine with an empty board
func newEngine(renderer Renderer, config EngineConfig) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if renderer == nil {
		renderer = nopRenderer{}
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine := &Engine{
		renderer:       renderer,
		size:           config.Size,
		requestedMines: config.NumMines,
		cells:          make([]Cell, config.Size*config.Size),
		onGameEnd:      config.OnGameEnd,
	}
	engine.reseed(seed)
	engine.clear()

	return engine, nil
}

func (engine *Engine) reseed(seed int64) {
	engine.seed = seed
	engine.rand = rand.New(rand.NewSource(seed))
}

// clear replaces every cell with a default one and marks the board playable
func (engine *Engine) clear() {
	for i := range engine.cells {
		engine.cells[i] = Cell{row: i / engine.size, col: i % engine.size}
	}
	engine.state = Ongoing
	engine.losingMine = -1
	engine.numMines = 0
	engine.numFlags = 0
}

// generateMines draws requestedMines positions with replacement. Repeated draws
// land on the same cell, so fewer mines than requested may be placed.
func (engine *Engine) generateMines() {
	numCells := engine.size * engine.size
	mines := make([]int, engine.requestedMines)
	for i := range mines {
		mines[i] = engine.rand.Intn(numCells)
	}
	engine.layMines(mines)
}

func (engine *Engine) layMines(mines []int) {
	for _, idx := range mines {
		row, col := idx/engine.size, idx%engine.size
		engine.cellAt(row, col).isMine = true
	}
	engine.countAllNeighbors()
}

func (engine *Engine) countAllNeighbors() {
	engine.numMines = 0
	for i := range engine.cells {
		cell := &engine.cells[i]
		if cell.isMine {
			engine.numMines++
			continue
		}
		cell.adjacentMines = engine.CountNeighbors(cell.row, cell.col)
	}
}

// Start paints every tile with its current image, which is blank on a new board
func (engine *Engine) Start() {
	engine.Redraw()

	log.WithFields(log.Fields{
		"seed":  engine.seed,
		"size":  engine.size,
		"mines": engine.numMines,
	}).Info("Game started")
}

// Redraw renders every tile again
func (engine *Engine) Redraw() {
	for i := range engine.cells {
		cell := &engine.cells[i]
		engine.render(cell, cell.image(engine.state, i == engine.losingMine))
	}
}

// Reset throws the board away and generates a new one, seeded from the previous
// generator so a sequence of games is reproducible from the first seed
func (engine *Engine) Reset() {
	engine.clear()
	for i := range engine.cells {
		engine.render(&engine.cells[i], ImageBlank)
	}

	engine.reseed(engine.rand.Int63())
	engine.generateMines()

	log.WithFields(log.Fields{
		"seed":  engine.seed,
		"mines": engine.numMines,
	}).Info("Board reset")
}

// Press handles a button press on (row, col). A flag toggle marks or unmarks a
// hidden cell; anything else reveals it. Presses on discovered cells or after the
// game has ended do nothing.
func (engine *Engine) Press(row, col int, isFlagToggle bool) error {
	if !engine.inBounds(row, col) {
		return errors.Wrapf(ErrOutOfRange, "(%d, %d) on a %dx%d board", row, col, engine.size, engine.size)
	}

	cell := engine.cellAt(row, col)
	if cell.isDiscovered || engine.IsOver() {
		return nil
	}

	if isFlagToggle {
		engine.toggleFlagged(cell)
	} else {
		engine.reveal(cell)
	}
	return nil
}

func (engine *Engine) toggleFlagged(cell *Cell) {
	cell.isFlagged = !cell.isFlagged

	if cell.isFlagged {
		engine.numFlags++
		engine.render(cell, ImageFlag)
	} else {
		engine.numFlags--
		engine.render(cell, ImageBlank)
	}
}

func (engine *Engine) reveal(cell *Cell) {
	engine.discover(cell)

	if cell.isMine {
		engine.lose(cell)
		return
	}

	count := engine.CountNeighbors(cell.row, cell.col)
	if count == 0 {
		cell.isEmptyLeaf = true
		engine.render(cell, ImageEmpty)
		engine.floodReveal(cell.row, cell.col)
	} else {
		engine.render(cell, NumberImage(count))
	}

	engine.checkWin()
}

// discover marks the cell revealed. A flag never survives discovery.
func (engine *Engine) discover(cell *Cell) {
	cell.isDiscovered = true
	if cell.isFlagged {
		cell.isFlagged = false
		engine.numFlags--
	}
}

func (engine *Engine) lose(losing *Cell) {
	engine.losingMine = engine.idx(losing.row, losing.col)
	engine.render(losing, ImageDetonatedMine)

	for i := range engine.cells {
		cell := &engine.cells[i]
		if cell.isMine && i != engine.losingMine {
			engine.render(cell, ImageMine)
		}
	}

	log.WithFields(log.Fields{
		"row": losing.row,
		"col": losing.col,
	}).Info("Game over")
	engine.endGame(Lost)
}

// checkWin ends the game as won once every safe cell has been discovered
func (engine *Engine) checkWin() bool {
	if !engine.allSafeDiscovered() {
		return false
	}

	for i := range engine.cells {
		cell := &engine.cells[i]
		if cell.isMine {
			engine.render(cell, ImageWonMine)
		}
	}

	log.WithField("seed", engine.seed).Info("You win!")
	engine.endGame(Won)
	return true
}

func (engine *Engine) allSafeDiscovered() bool {
	for i := range engine.cells {
		if !engine.cells[i].isMine && !engine.cells[i].isDiscovered {
			return false
		}
	}
	return true
}

func (engine *Engine) endGame(state BoardState) {
	engine.state = state
	if engine.onGameEnd != nil {
		engine.onGameEnd(engine)
	}
}

func (engine *Engine) render(cell *Cell, image ImageID) {
	engine.renderer.Render(TileIndex(cell.row, cell.col, engine.size), image)
}

func (engine *Engine) Size() int {
	return engine.size
}

func (engine *Engine) NumCells() int {
	return len(engine.cells)
}

// NumMines is the number of mines actually on the board
func (engine *Engine) NumMines() int {
	return engine.numMines
}

// RequestedMines is the number of mine draws each generation makes
func (engine *Engine) RequestedMines() int {
	return engine.requestedMines
}

func (engine *Engine) NumFlags() int {
	return engine.numFlags
}

func (engine *Engine) State() BoardState {
	return engine.state
}

func (engine *Engine) IsOver() bool {
	return engine.state != Ongoing
}

// Seed returns the seed the current board was generated from
func (engine *Engine) Seed() int64 {
	return engine.seed
}

// Cell returns a copy of the cell at (row, col)
func (engine *Engine) Cell(row, col int) (Cell, error) {
	if !engine.inBounds(row, col) {
		return Cell{}, errors.Wrapf(ErrOutOfRange, "(%d, %d) on a %dx%d board", row, col, engine.size, engine.size)
	}
	return *engine.cellAt(row, col), nil
}
