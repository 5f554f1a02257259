package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/plus3/tetris/tetris"
)

// KeyCommand maps a key event to a game command.
func KeyCommand(ev *tcell.EventKey) (tetris.Command, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return tetris.CommandMoveLeft, true
	case tcell.KeyRight:
		return tetris.CommandMoveRight, true
	case tcell.KeyDown:
		return tetris.CommandSoftDrop, true
	case tcell.KeyUp:
		return tetris.CommandRotate, true
	case tcell.KeyEnter:
		return tetris.CommandRestart, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return tetris.CommandEndGame, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return tetris.CommandHardDrop, true
		case 'p', 'P':
			return tetris.CommandTogglePause, true
		case 'h':
			return tetris.CommandMoveLeft, true
		case 'l':
			return tetris.CommandMoveRight, true
		case 'j':
			return tetris.CommandSoftDrop, true
		case 'k':
			return tetris.CommandRotate, true
		}
	}
	return tetris.CommandNone, false
}

// IsQuit reports whether the key should leave the frontend.
func IsQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
