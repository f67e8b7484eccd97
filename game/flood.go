package game

import "github.com/gammazero/deque"

// floodReveal discovers the connected region of zero-count cells around
// (row, col), plus the numbered cells bordering it. The origin must already be
// discovered. Cells are only enqueued once, as discovery happens on enqueue.
func (engine *Engine) floodReveal(row, col int) {
	var frontier deque.Deque
	frontier.PushBack(Coord{Row: row, Col: col})

	neighbors := make([]Coord, 0, len(neighborOffsets))
	for frontier.Len() > 0 {
		origin := frontier.PopFront().(Coord)

		neighbors = engine.appendNeighbors(neighbors[:0], origin.Row, origin.Col)
		for _, neighbor := range neighbors {
			cell := engine.cellAt(neighbor.Row, neighbor.Col)
			if cell.isDiscovered {
				continue
			}

			engine.discover(cell)

			count := engine.CountNeighbors(neighbor.Row, neighbor.Col)
			if count == 0 {
				cell.isEmptyLeaf = true
				engine.render(cell, ImageEmpty)
				frontier.PushBack(neighbor)
			} else {
				engine.render(cell, NumberImage(count))
			}
		}
	}
}
