package tetris

import (
	"fmt"
	"strings"
)

// Command is a discrete player input.
type Command uint8

const (
	CommandNone Command = iota
	CommandMoveLeft
	CommandMoveRight
	CommandSoftDrop
	CommandHardDrop
	CommandRotate
	CommandTogglePause
	CommandRestart
	CommandEndGame
)

var commandNames = [...]string{
	CommandNone:        "none",
	CommandMoveLeft:    "move-left",
	CommandMoveRight:   "move-right",
	CommandSoftDrop:    "soft-drop",
	CommandHardDrop:    "hard-drop",
	CommandRotate:      "rotate",
	CommandTogglePause: "toggle-pause",
	CommandRestart:     "restart",
	CommandEndGame:     "end-game",
}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// ParseCommand is the inverse of Command.String.
func ParseCommand(s string) (Command, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range commandNames {
		if i != int(CommandNone) && name == s {
			return Command(i), nil
		}
	}
	return CommandNone, fmt.Errorf("unknown command %q", s)
}

// Apply dispatches c and reports whether it changed the game. Once the game
// is over only CommandRestart and CommandHardDrop act, and both start a new
// game.
func (g *Game) Apply(c Command) bool {
	if g.session.Over {
		switch c {
		case CommandRestart, CommandHardDrop:
			return g.Restart()
		default:
			return false
		}
	}

	switch c {
	case CommandMoveLeft:
		return g.MoveLeft()
	case CommandMoveRight:
		return g.MoveRight()
	case CommandSoftDrop:
		return g.SoftDrop()
	case CommandHardDrop:
		return g.HardDrop()
	case CommandRotate:
		return g.Rotate()
	case CommandTogglePause:
		return g.TogglePause()
	case CommandEndGame:
		return g.EndGame()
	default:
		return false
	}
}
