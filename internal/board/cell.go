package board

// Cell returns the grid coordinates of a square for drawing.
// Row 0 is the bottom row; rows alternate direction (boustrophedon), so
// square 1 sits at the bottom-left and odd rows run right to left.
// ok is false for squares outside [1, Squares()].
func (b *Board) Cell(square int) (row, col int, ok bool) {
	if square < 1 || square > b.Squares() {
		return 0, 0, false
	}

	idx := square - 1
	row = idx / b.size
	col = idx % b.size
	if row%2 == 1 {
		col = b.size - 1 - col
	}
	return row, col, true
}

// Square is the inverse of Cell.
// ok is false for coordinates outside the grid.
func (b *Board) Square(row, col int) (square int, ok bool) {
	if row < 0 || row >= b.size || col < 0 || col >= b.size {
		return 0, false
	}
	if row%2 == 1 {
		col = b.size - 1 - col
	}
	return row*b.size + col + 1, true
}
