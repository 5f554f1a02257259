package tetris_test

import (
	"testing"
	"time"

	"github.com/plus3/tetris/tetris"
)

func BenchmarkCollides(b *testing.B) {
	board := tetris.NewBoard(20, 10)
	for x := range 9 {
		board.Set(x, 19, tetris.Cell(tetris.PieceL))
	}
	shape := tetris.NewShape(tetris.PieceI)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.Collides(shape, tetris.Point{X: i % 7, Y: 17})
	}
}

func BenchmarkResolveLines(b *testing.B) {
	full := tetris.NewBoard(20, 10)
	for y := 16; y < 20; y++ {
		for x := range 10 {
			full.Set(x, y, tetris.Cell(tetris.PieceI))
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		board := full.Clone()
		board.ResolveLines()
	}
}

func BenchmarkHardDrop(b *testing.B) {
	g := tetris.NewGame(tetris.Options{Randomizer: tetris.NewRandomizer(1)})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if g.Over() {
			g.Restart()
		}
		g.HardDrop()
	}
}

func BenchmarkTick(b *testing.B) {
	g := tetris.NewGame(tetris.Options{Randomizer: tetris.NewRandomizer(1)})
	frame := time.Second / 60

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if g.Over() {
			g.Restart()
		}
		g.Tick(frame)
	}
}

func BenchmarkSnapshot(b *testing.B) {
	g := tetris.NewGame(tetris.Options{Randomizer: tetris.NewRandomizer(1)})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Snapshot()
	}
}
