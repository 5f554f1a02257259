package tetris_test

import (
	"fmt"
	"time"

	"github.com/plus3/tetris/tetris"
)

// ExampleGame fills the bottom two rows with O pieces. Each hard drop scores
// one point per row travelled and the final piece completes a double.
func ExampleGame() {
	g := tetris.NewGame(tetris.Options{
		Randomizer: tetris.NewSequenceRandomizer(tetris.PieceO),
	})

	g.HardDrop()
	s := g.Session()
	fmt.Printf("score=%d lines=%d\n", s.Score, s.Lines)

	moves := []struct {
		cmd   tetris.Command
		times int
	}{
		{tetris.CommandMoveLeft, 4},
		{tetris.CommandMoveLeft, 2},
		{tetris.CommandMoveRight, 2},
		{tetris.CommandMoveRight, 4},
	}
	for _, m := range moves {
		for range m.times {
			g.Apply(m.cmd)
		}
		g.Apply(tetris.CommandHardDrop)
	}

	filled := 0
	for _, row := range g.Snapshot().Board {
		filled += len(row) - countEmpty(row)
	}
	s = g.Session()
	fmt.Printf("score=%d lines=%d level=%d filled=%d\n", s.Score, s.Lines, s.Level, filled)

	// Output:
	// score=18 lines=0
	// score=190 lines=2 level=1 filled=0
}

func countEmpty(row []tetris.Cell) int {
	n := 0
	for _, v := range row {
		if v == tetris.Empty {
			n++
		}
	}
	return n
}

// ExampleGame_Tick shows gravity: the piece only falls once the accumulated
// time exceeds the drop interval.
func ExampleGame_Tick() {
	g := tetris.NewGame(tetris.Options{
		Randomizer: tetris.NewSequenceRandomizer(tetris.PieceT),
	})

	frame := time.Second / 60
	for range 60 {
		g.Tick(frame)
	}
	fmt.Println("after 60 frames:", g.Position().Y)

	g.Tick(frame)
	fmt.Println("after 61 frames:", g.Position().Y)

	// Output:
	// after 60 frames: 0
	// after 61 frames: 1
}

// ExampleGame_Subscribe logs engine events as they happen.
func ExampleGame_Subscribe() {
	g := tetris.NewGame(tetris.Options{
		Randomizer: tetris.NewSequenceRandomizer(tetris.PieceI, tetris.PieceT),
	})
	g.Subscribe(func(ev tetris.Event) {
		fmt.Println(ev.Kind, ev.Piece)
	})

	g.HardDrop()
	g.TogglePause()

	// Output:
	// locked I
	// spawned T
	// paused None
}
