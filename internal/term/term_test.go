package term

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tetris/internal/logging"
	"github.com/plus3/tetris/tetris"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 30)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, y, from, to int) string {
	var sb strings.Builder
	for x := from; x < to; x++ {
		mainc, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(mainc)
	}
	return sb.String()
}

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want tetris.Command
		ok   bool
	}{
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), tetris.CommandMoveLeft, true},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), tetris.CommandMoveRight, true},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), tetris.CommandSoftDrop, true},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), tetris.CommandRotate, true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), tetris.CommandHardDrop, true},
		{"pause", tcell.NewEventKey(tcell.KeyRune, 'P', tcell.ModNone), tetris.CommandTogglePause, true},
		{"vim left", tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), tetris.CommandMoveLeft, true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), tetris.CommandRestart, true},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), tetris.CommandNone, false},
		{"unbound key", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), tetris.CommandNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyCommand(tt.ev)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsQuit(t *testing.T) {
	assert.True(t, IsQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, IsQuit(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.True(t, IsQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, IsQuit(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)))
}

func TestViewDraw(t *testing.T) {
	screen := newScreen(t)
	view := NewView(screen)

	game := tetris.NewGame(tetris.Options{
		Randomizer: tetris.NewSequenceRandomizer(tetris.PieceO, tetris.PieceI),
	})
	snap := game.Snapshot()
	view.Draw(snap)

	mainc, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, tcell.RuneULCorner, mainc)

	// O spawns at column 4, row 0.
	ox, oy := boardOrigin()
	_, _, style, _ := screen.GetContent(ox+4*cellWidth, oy)
	_, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(0xF5, 0x38, 0xFF), bg)

	_, _, style, _ = screen.GetContent(ox, oy)
	_, bg, _ = style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(0x11, 0x11, 0x11), bg)

	left := panelLeft(snap.Cols)
	assert.Equal(t, "Score: 0", rowText(screen, 1, left, left+8))
	assert.Equal(t, "Next:", rowText(screen, 5, left, left+5))
}

func TestViewBanners(t *testing.T) {
	screen := newScreen(t)
	view := NewView(screen)
	game := tetris.NewGame(tetris.Options{Randomizer: tetris.NewRandomizer(3)})

	ox, oy := boardOrigin()
	y := oy + game.Snapshot().Rows/2

	game.TogglePause()
	view.Draw(game.Snapshot())
	assert.Contains(t, rowText(screen, y, ox, ox+20), "PAUSED")

	game.TogglePause()
	game.EndGame()
	view.Draw(game.Snapshot())
	assert.Contains(t, rowText(screen, y, ox, ox+20), "GAME OVER")
}

func TestFrontendRun(t *testing.T) {
	screen := newScreen(t)
	game := tetris.NewGame(tetris.Options{Randomizer: tetris.NewRandomizer(5)})
	f := New(screen, game, 5*time.Millisecond, logging.Discard())

	done := make(chan error, 1)
	go func() { done <- f.Run(context.Background()) }()

	ox, oy := boardOrigin()
	y := oy + 10

	screen.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	require.Eventually(t, func() bool {
		return strings.Contains(rowText(screen, y, ox, ox+20), "PAUSED")
	}, 2*time.Second, 5*time.Millisecond)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("frontend did not stop on quit")
	}

	assert.True(t, game.Paused())
	assert.NotZero(t, f.Scheduler().GetStats().Frames)
}

func TestFrontendStopsOnCancel(t *testing.T) {
	screen := newScreen(t)
	game := tetris.NewGame(tetris.Options{Randomizer: tetris.NewRandomizer(5)})
	f := New(screen, game, 5*time.Millisecond, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("frontend did not stop on cancel")
	}
}
