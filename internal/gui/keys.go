package gui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/tetris/tetris"
)

const (
	// Ticks a movement key must be held before it starts repeating.
	repeatDelay = 15
	// Ticks between repeats once repeating.
	repeatInterval = 4
)

type binding struct {
	key    ebiten.Key
	cmd    tetris.Command
	repeat bool
}

// KeyMap turns held keys into commands.
type KeyMap struct {
	bindings []binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{bindings: []binding{
		{ebiten.KeyArrowLeft, tetris.CommandMoveLeft, true},
		{ebiten.KeyArrowRight, tetris.CommandMoveRight, true},
		{ebiten.KeyArrowDown, tetris.CommandSoftDrop, true},
		{ebiten.KeyArrowUp, tetris.CommandRotate, false},
		{ebiten.KeySpace, tetris.CommandHardDrop, false},
		{ebiten.KeyP, tetris.CommandTogglePause, false},
		{ebiten.KeyEnter, tetris.CommandRestart, false},
		{ebiten.KeyBackspace, tetris.CommandEndGame, false},
	}}
}

// Commands returns the commands for this tick. duration reports how many
// ticks a key has been held, 0 when released; inpututil.KeyPressDuration
// fits.
func (m KeyMap) Commands(duration func(ebiten.Key) int) []tetris.Command {
	var out []tetris.Command
	for _, b := range m.bindings {
		d := duration(b.key)
		if d == 1 || (b.repeat && fires(d)) {
			out = append(out, b.cmd)
		}
	}
	return out
}

func fires(d int) bool {
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

// QuitPressed reports whether a quit key is down.
func QuitPressed(pressed func(ebiten.Key) bool) bool {
	return pressed(ebiten.KeyEscape) || pressed(ebiten.KeyQ)
}
