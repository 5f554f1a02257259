package tetris

// ResolveLines removes every full row, shifting the rows above down and
// inserting empty rows at the top. It returns the number of rows removed.
//
// The scan runs bottom to top. After a removal the same index is examined
// again, since it now holds the row that used to sit above it.
func (b *Board) ResolveLines() int {
	cleared := 0
	for y := b.rows - 1; y >= 0; {
		if !b.rowFull(y) {
			y--
			continue
		}

		row := b.cells[y]
		copy(b.cells[1:y+1], b.cells[:y])
		clear(row)
		b.cells[0] = row
		cleared++
	}
	return cleared
}

func (b *Board) rowFull(y int) bool {
	for _, v := range b.cells[y] {
		if v == Empty {
			return false
		}
	}
	return true
}
