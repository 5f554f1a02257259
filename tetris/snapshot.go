package tetris

// Snapshot is a read-only copy of everything a renderer needs for one frame.
// It shares no memory with the game.
type Snapshot struct {
	Rows, Cols int
	Board      [][]Cell

	Active     Shape
	ActiveType PieceType
	Position   Point

	Next     Shape
	NextType PieceType

	Session
	Phase Phase
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Rows:       g.board.rows,
		Cols:       g.board.cols,
		Board:      g.board.Cells(),
		Active:     g.active.Clone(),
		ActiveType: g.activeType,
		Position:   g.pos,
		NextType:   g.next,
		Session:    g.session,
		Phase:      g.phase,
	}
	if g.next.Valid() {
		s.Next = NewShape(g.next)
	}
	return s
}

// Composite returns the board with the falling piece drawn in. Piece cells
// above the top edge are omitted.
func (s Snapshot) Composite() [][]Cell {
	out := make([][]Cell, len(s.Board))
	for y := range s.Board {
		out[y] = make([]Cell, len(s.Board[y]))
		copy(out[y], s.Board[y])
	}

	for py := range s.Active {
		for px, v := range s.Active[py] {
			if v == Empty {
				continue
			}
			x, y := s.Position.X+px, s.Position.Y+py
			if y < 0 || y >= s.Rows || x < 0 || x >= s.Cols {
				continue
			}
			out[y][x] = v
		}
	}
	return out
}
