package tetris

import (
	"time"

	"github.com/kamstrup/intmap"
)

// Stats accumulates per-game counters. It is reset whenever the game is.
type Stats struct {
	pieces       *intmap.Map[PieceType, int]
	clears       *intmap.Map[int, int]
	maxClear     int
	hardDropRows int
	autoDrops    int
	ticks        int64
	playTime     time.Duration
}

func newStats() *Stats {
	return &Stats{
		pieces: intmap.New[PieceType, int](PieceCount),
		clears: intmap.New[int, int](4),
	}
}

func (s *Stats) spawned(p PieceType) {
	n, _ := s.pieces.Get(p)
	s.pieces.Put(p, n+1)
}

func (s *Stats) cleared(rows int) {
	n, _ := s.clears.Get(rows)
	s.clears.Put(rows, n+1)
	s.maxClear = max(s.maxClear, rows)
}

func (s *Stats) ticked(elapsed time.Duration) {
	s.ticks++
	s.playTime += elapsed
}

// StatsSnapshot is a copy of the counters safe to keep across frames.
type StatsSnapshot struct {
	// Pieces is indexed by PieceType; index 0 is unused.
	Pieces [PieceCount + 1]int
	// Clears is indexed by rows cleared in one lock minus one.
	Clears       []int
	HardDropRows int
	AutoDrops    int
	Ticks        int64
	PlayTime     time.Duration
}

func (s *Stats) snapshot() StatsSnapshot {
	out := StatsSnapshot{
		Clears:       make([]int, max(s.maxClear, len(lineScores))),
		HardDropRows: s.hardDropRows,
		AutoDrops:    s.autoDrops,
		Ticks:        s.ticks,
		PlayTime:     s.playTime,
	}
	for _, p := range PieceTypes {
		out.Pieces[p], _ = s.pieces.Get(p)
	}
	for i := range out.Clears {
		out.Clears[i], _ = s.clears.Get(i + 1)
	}
	return out
}

// TotalPieces returns the number of pieces spawned.
func (s StatsSnapshot) TotalPieces() int {
	total := 0
	for _, n := range s.Pieces {
		total += n
	}
	return total
}

// ClearCount returns how many locks cleared exactly rows rows.
func (s StatsSnapshot) ClearCount(rows int) int {
	if rows <= 0 || rows > len(s.Clears) {
		return 0
	}
	return s.Clears[rows-1]
}
