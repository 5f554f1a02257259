package loop

import (
	"time"

	"github.com/plus3/tetris/tetris"
)

// Frame is handed to every system during one scheduler step.
type Frame struct {
	Number uint64
	Delta  time.Duration
	Game   *tetris.Game

	deferred []func()
}

func newFrame(n uint64, dt time.Duration, game *tetris.Game) *Frame {
	return &Frame{
		Number: n,
		Delta:  dt,
		Game:   game,
	}
}

// Defer queues fn to run after every system has executed for this frame.
func (f *Frame) Defer(fn func()) {
	f.deferred = append(f.deferred, fn)
}

func (f *Frame) flush() {
	for _, fn := range f.deferred {
		fn()
	}
	f.deferred = f.deferred[:0]
}
