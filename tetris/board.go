package tetris

import (
	"fmt"
	"strings"
)

// Default board dimensions.
const (
	DefaultRows = 20
	DefaultCols = 10
)

// Point is a board coordinate. Y grows downwards; row 0 is the top.
type Point struct {
	X, Y int
}

// Board is a fixed rows×cols grid of placed cells. Dimensions never change
// after creation.
type Board struct {
	rows, cols int
	cells      [][]Cell
}

// NewBoard creates an empty board.
func NewBoard(rows, cols int) *Board {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("tetris: invalid board size %dx%d", rows, cols))
	}
	return &Board{
		rows:  rows,
		cols:  cols,
		cells: newGrid(rows, cols),
	}
}

func newGrid(rows, cols int) [][]Cell {
	backing := make([]Cell, rows*cols)
	grid := make([][]Cell, rows)
	for y := range grid {
		grid[y] = backing[y*cols : (y+1)*cols : (y+1)*cols]
	}
	return grid
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// At returns the cell at (x, y). Coordinates outside the board read as Empty.
func (b *Board) At(x, y int) Cell {
	if x < 0 || x >= b.cols || y < 0 || y >= b.rows {
		return Empty
	}
	return b.cells[y][x]
}

// Set writes a single cell. Out-of-range coordinates and values outside
// [0,7] are ignored so the board never holds an invalid cell.
func (b *Board) Set(x, y int, c Cell) {
	if x < 0 || x >= b.cols || y < 0 || y >= b.rows || c > Cell(PieceZ) {
		return
	}
	b.cells[y][x] = c
}

// Collides reports whether shape placed at pos overlaps an occupied cell or
// leaves the board through the sides or the floor. Rows above the top edge
// (y < 0) are open.
func (b *Board) Collides(shape Shape, pos Point) bool {
	for py := range shape {
		for px, v := range shape[py] {
			if v == Empty {
				continue
			}

			x := pos.X + px
			y := pos.Y + py

			if x < 0 || x >= b.cols || y >= b.rows {
				return true
			}

			if y >= 0 && b.cells[y][x] != Empty {
				return true
			}
		}
	}
	return false
}

// Merge writes every non-empty shape cell into the board. It does not check
// for collisions; callers verify the position first. Cells landing above the
// top edge are dropped.
func (b *Board) Merge(shape Shape, pos Point) {
	for py := range shape {
		for px, v := range shape[py] {
			if v == Empty {
				continue
			}
			b.Set(pos.X+px, pos.Y+py, v)
		}
	}
}

// Clear empties every cell.
func (b *Board) Clear() {
	for y := range b.cells {
		clear(b.cells[y])
	}
}

// Cells returns a deep copy of the grid indexed [y][x].
func (b *Board) Cells() [][]Cell {
	out := newGrid(b.rows, b.cols)
	for y := range b.cells {
		copy(out[y], b.cells[y])
	}
	return out
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	return &Board{
		rows:  b.rows,
		cols:  b.cols,
		cells: b.Cells(),
	}
}

// Filled returns the number of occupied cells.
func (b *Board) Filled() int {
	n := 0
	for y := range b.cells {
		for _, v := range b.cells[y] {
			if v != Empty {
				n++
			}
		}
	}
	return n
}

// String renders the board one row per line, '.' for empty cells and the
// piece letter otherwise.
func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.cells {
		for _, v := range b.cells[y] {
			sb.WriteByte(cellRune(v))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard builds a board from the String format. Lines must all have the
// same width; '.' is empty and piece letters (I J L O S T Z) or digits 1-7 are
// occupied.
func ParseBoard(s string) (*Board, error) {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, fmt.Errorf("parse board: empty input")
	}

	cols := len(strings.TrimSpace(lines[0]))
	b := NewBoard(len(lines), cols)
	for y, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) != cols {
			return nil, fmt.Errorf("parse board: row %d has width %d, want %d", y, len(line), cols)
		}
		for x := range line {
			c, ok := parseCell(line[x])
			if !ok {
				return nil, fmt.Errorf("parse board: row %d col %d: unexpected %q", y, x, line[x])
			}
			b.cells[y][x] = c
		}
	}
	return b, nil
}

func cellRune(c Cell) byte {
	if c == Empty {
		return '.'
	}
	name := PieceType(c).String()
	if len(name) != 1 {
		return '?'
	}
	return name[0]
}

func parseCell(r byte) (Cell, bool) {
	switch {
	case r == '.':
		return Empty, true
	case r >= '1' && r <= '7':
		return Cell(r - '0'), true
	}
	for _, p := range PieceTypes {
		if p.String()[0] == r {
			return Cell(p), true
		}
	}
	return Empty, false
}
