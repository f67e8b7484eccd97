package game

import "fmt"

// Cell is one board position. Engines hand out copies; the board itself is only
// mutated through Engine operations.
type Cell struct {
	row, col int

	isMine, isDiscovered, isFlagged bool
	isEmptyLeaf                     bool
	adjacentMines                   int
}

func (cell Cell) String() string {
	return fmt.Sprintf("Cell(%d, %d)", cell.row, cell.col)
}

func (cell Cell) Row() int {
	return cell.row
}

func (cell Cell) Col() int {
	return cell.col
}

func (cell Cell) Coord() Coord {
	return Coord{Row: cell.row, Col: cell.col}
}

func (cell Cell) IsMine() bool {
	return cell.isMine
}

func (cell Cell) IsDiscovered() bool {
	return cell.isDiscovered
}

func (cell Cell) IsFlagged() bool {
	return cell.isFlagged
}

// IsEmptyLeaf reports whether the cell was revealed with no adjacent mines
func (cell Cell) IsEmptyLeaf() bool {
	return cell.isEmptyLeaf
}

// AdjacentMines is the neighbour count computed when mines were placed. It is
// meaningless for mine cells.
func (cell Cell) AdjacentMines() int {
	return cell.adjacentMines
}

// image returns what the tile for this cell currently shows, given the board state
func (cell Cell) image(state BoardState, isLosingMine bool) ImageID {
	switch {
	case cell.isMine && isLosingMine:
		return ImageDetonatedMine
	case cell.isMine && state == Lost:
		return ImageMine
	case cell.isMine && state == Won:
		return ImageWonMine
	case cell.isFlagged:
		return ImageFlag
	case cell.isDiscovered:
		return NumberImage(cell.adjacentMines)
	default:
		return ImageBlank
	}
}

func (cell *Cell) serialize(isLosingMine bool) string {
	switch {
	case cell.isMine:
		switch {
		case isLosingMine:
			return "*"
		case cell.isFlagged:
			return "F"
		default:
			return "O"
		}
	case cell.isFlagged:
		return "f"
	case cell.isDiscovered:
		return "."
	default:
		return "#"
	}
}

// deserialize loads the cell's flags from its snapshot character. It reports
// whether the cell was the detonated mine, and false for ok on an unknown char.
func (cell *Cell) deserialize(c rune, fresh bool) (isLosingMine bool, ok bool) {
	switch c {
	case '*', 'F', 'O':
		cell.isMine = true

		switch c {
		case '*':
			if !fresh {
				cell.isDiscovered = true
				isLosingMine = true
			}
		case 'F':
			cell.isFlagged = !fresh
		}
	case 'f':
		cell.isFlagged = !fresh
	case '.':
		cell.isDiscovered = !fresh
	case '#':
	default:
		return false, false
	}

	return isLosingMine, true
}
