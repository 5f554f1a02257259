package loop

import "github.com/plus3/tetris/tetris"

// GravitySystem advances the game's drop timer by the frame delta.
type GravitySystem struct{}

func (GravitySystem) Execute(frame *Frame) {
	frame.Game.Tick(frame.Delta)
}

// InputSystem applies every command returned by Poll, in order, at the start
// of the frame.
type InputSystem struct {
	Poll func() []tetris.Command

	Applied  int64
	Rejected int64
}

func (s *InputSystem) Execute(frame *Frame) {
	if s.Poll == nil {
		return
	}
	for _, c := range s.Poll() {
		if frame.Game.Apply(c) {
			s.Applied++
		} else {
			s.Rejected++
		}
	}
}
