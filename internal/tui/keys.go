package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/plus3/tetris/tetris"
)

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Down     key.Binding
	Rotate   key.Binding
	Drop     key.Binding
	Pause    key.Binding
	Restart  key.Binding
	EndGame  key.Binding
	Help     key.Binding
	Quit     key.Binding
	commands []commandBinding
}

type commandBinding struct {
	binding *key.Binding
	cmd     tetris.Command
}

func newKeyMap() *keyMap {
	k := &keyMap{
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "soft drop")),
		Rotate:  key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "rotate")),
		Drop:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "hard drop")),
		Pause:   key.NewBinding(key.WithKeys("p", "P"), key.WithHelp("p", "pause")),
		Restart: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "restart")),
		EndGame: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("bksp", "end game")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	k.commands = []commandBinding{
		{&k.Left, tetris.CommandMoveLeft},
		{&k.Right, tetris.CommandMoveRight},
		{&k.Down, tetris.CommandSoftDrop},
		{&k.Rotate, tetris.CommandRotate},
		{&k.Drop, tetris.CommandHardDrop},
		{&k.Pause, tetris.CommandTogglePause},
		{&k.Restart, tetris.CommandRestart},
		{&k.EndGame, tetris.CommandEndGame},
	}
	return k
}

func (k *keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Drop, k.Pause, k.Help, k.Quit}
}

func (k *keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Down, k.Rotate},
		{k.Drop, k.Pause, k.Restart, k.EndGame},
		{k.Help, k.Quit},
	}
}
