package game

import "fmt"

// Coord addresses a cell by row and column, both zero-based
type Coord struct {
	Row, Col int
}

func (coord Coord) String() string {
	return fmt.Sprintf("(%d, %d)", coord.Row, coord.Col)
}

// TileIndex maps a cell to the 1-based, row-major tile number renderers address
func TileIndex(row, col, size int) int {
	return row*size + col + 1
}

var neighborOffsets = [8]Coord{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func (engine *Engine) inBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < engine.size && col < engine.size
}

func (engine *Engine) idx(row, col int) int {
	return row*engine.size + col
}

func (engine *Engine) cellAt(row, col int) *Cell {
	return &engine.cells[engine.idx(row, col)]
}

// appendNeighbors appends the Moore neighbourhood of (row, col), clipped at the
// board edges, to out
func (engine *Engine) appendNeighbors(out []Coord, row, col int) []Coord {
	for _, offset := range neighborOffsets {
		r, c := row+offset.Row, col+offset.Col
		if engine.inBounds(r, c) {
			out = append(out, Coord{Row: r, Col: c})
		}
	}
	return out
}

// Neighbors returns the in-bounds cells surrounding (row, col)
func (engine *Engine) Neighbors(row, col int) []Coord {
	if !engine.inBounds(row, col) {
		return nil
	}
	return engine.appendNeighbors(make([]Coord, 0, len(neighborOffsets)), row, col)
}

// CountNeighbors counts the mines around (row, col). It never mutates the board.
func (engine *Engine) CountNeighbors(row, col int) int {
	count := 0
	for _, offset := range neighborOffsets {
		r, c := row+offset.Row, col+offset.Col
		if engine.inBounds(r, c) && engine.cellAt(r, c).isMine {
			count++
		}
	}
	return count
}
