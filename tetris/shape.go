package tetris

// Cell is a single board or shape value: 0 for empty, 1..7 for the piece type
// occupying it.
type Cell uint8

// Empty is the zero cell.
const Empty Cell = 0

// Shape is a square matrix of cells indexed [y][x].
type Shape [][]Cell

// Size returns the side length of the matrix.
func (s Shape) Size() int {
	return len(s)
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	for y := range s {
		out[y] = make([]Cell, len(s[y]))
		copy(out[y], s[y])
	}
	return out
}

// Equal reports whether both shapes hold the same cells.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(o[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// Type returns the piece type stored in the shape, or PieceNone for an empty matrix.
func (s Shape) Type() PieceType {
	for y := range s {
		for _, v := range s[y] {
			if v != Empty {
				return PieceType(v)
			}
		}
	}
	return PieceNone
}

// Rotate turns the shape 90 degrees in place, clockwise when cw is true.
// The whole source is read into a scratch matrix before anything is written
// back, so rows never alias mid-rotation.
func (s Shape) Rotate(cw bool) {
	n := len(s)
	rotated := make([][]Cell, n)
	for i := range rotated {
		rotated[i] = make([]Cell, n)
	}

	for y := range n {
		for x := range n {
			if cw {
				rotated[x][n-1-y] = s[y][x]
			} else {
				rotated[n-1-x][y] = s[y][x]
			}
		}
	}

	for y := range n {
		copy(s[y], rotated[y])
	}
}

// Bounds returns the inclusive min/max rows and columns holding non-empty
// cells. ok is false for an empty shape.
func (s Shape) Bounds() (minX, minY, maxX, maxY int, ok bool) {
	minX, minY = len(s), len(s)
	maxX, maxY = -1, -1
	for y := range s {
		for x, v := range s[y] {
			if v == Empty {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	return minX, minY, maxX, maxY, maxX >= 0
}
