// Package tui is an inline terminal frontend built on Bubble Tea.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plus3/tetris/internal/logging"
	"github.com/plus3/tetris/tetris"
)

type tickMsg time.Time

var (
	boardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	panelStyle  = lipgloss.NewStyle().PaddingLeft(2)
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	emptyStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#111111"))
)

// Model drives a game from Bubble Tea messages. Update runs on a single
// goroutine, so the game needs no locking.
type Model struct {
	game     *tetris.Game
	interval time.Duration
	last     time.Time
	keys     *keyMap
	help     help.Model
	log      *logging.Logger
	quitting bool
}

func New(game *tetris.Game, interval time.Duration, log *logging.Logger) *Model {
	return &Model{
		game:     game,
		interval: interval,
		keys:     newKeyMap(),
		help:     help.New(),
		log:      log,
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		for _, b := range m.keys.commands {
			if key.Matches(msg, *b.binding) {
				m.game.Apply(b.cmd)
				break
			}
		}
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			m.game.Tick(now.Sub(m.last))
		}
		m.last = now
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

func cellString(c tetris.Cell) string {
	if c == tetris.Empty {
		return emptyStyle.Render("  ")
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(tetris.Color(c))).Render("  ")
}

func renderGrid(cells [][]tetris.Cell) string {
	var sb strings.Builder
	for y, row := range cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			sb.WriteString(cellString(c))
		}
	}
	return sb.String()
}

func renderBoard(snap tetris.Snapshot) string {
	rows := strings.Split(renderGrid(snap.Composite()), "\n")

	var banner string
	switch {
	case snap.Over:
		banner = "GAME OVER"
	case snap.Paused:
		banner = "PAUSED"
	}
	if banner != "" {
		width := snap.Cols * 2
		rows[snap.Rows/2] = lipgloss.PlaceHorizontal(width, lipgloss.Center, bannerStyle.Render(banner))
	}
	return boardStyle.Render(strings.Join(rows, "\n"))
}

func renderNext(snap tetris.Snapshot) string {
	preview := make([][]tetris.Cell, 4)
	for y := range preview {
		preview[y] = make([]tetris.Cell, 4)
	}
	if snap.Next != nil {
		off := (4 - snap.Next.Size()) / 2
		for y, row := range snap.Next {
			for x, c := range row {
				preview[y+off][x+off] = c
			}
		}
	}
	return renderGrid(preview)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.game.Snapshot()

	panel := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Level: %d", snap.Level),
		fmt.Sprintf("Lines: %d", snap.Lines),
		"",
		"Next:",
		renderNext(snap),
	))

	return lipgloss.JoinHorizontal(lipgloss.Top, renderBoard(snap), panel) +
		"\n" + m.help.View(m.keys) + "\n"
}

// Run starts the program and blocks until the player quits.
func Run(game *tetris.Game, interval time.Duration, log *logging.Logger) error {
	m := New(game, interval, log)
	log.Infof("tui: starting")
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	log.Infof("tui: stopped with score %d", game.Session().Score)
	return nil
}
