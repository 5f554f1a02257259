// Package gui is the windowed frontend built on Ebiten.
package gui

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/tetris/config"
	"github.com/plus3/tetris/internal/logging"
	"github.com/plus3/tetris/loop"
	"github.com/plus3/tetris/tetris"
	debugui_ebiten "github.com/plus3/tetris/tetris/debugui/ebiten"
)

const Title = "Tetris"

// Game implements ebiten.Game on top of a loop.Scheduler.
type Game struct {
	scheduler *loop.Scheduler
	renderer  *Renderer
	keys      KeyMap
	overlay   *debugui_ebiten.Overlay
	log       *logging.Logger
}

// New builds the frontend and registers its systems. When debug is set the
// imgui overlay is created, which also sizes the window.
func New(cfg *config.Config, game *tetris.Game, log *logging.Logger, debug bool) *Game {
	g := &Game{
		scheduler: loop.NewScheduler(game),
		renderer:  NewRenderer(cfg.Frontend.CellSize, cfg.Board.Rows, cfg.Board.Cols),
		keys:      DefaultKeyMap(),
		log:       log,
	}

	g.scheduler.Register(&loop.InputSystem{Poll: g.poll})
	g.scheduler.Register(loop.GravitySystem{})

	w, h := g.renderer.ScreenSize()
	if debug {
		backend := debugui_ebiten.NewImguiBackend(Title, w*2, h)
		g.overlay = debugui_ebiten.NewOverlay(backend, g.scheduler)
	} else {
		ebiten.SetWindowSize(w, h)
		ebiten.SetWindowTitle(Title)
	}
	ebiten.SetTPS(cfg.Frontend.FPS)

	return g
}

func (g *Game) poll() []tetris.Command {
	if g.overlay != nil && g.overlay.WantsKeyboard() {
		return nil
	}
	return g.keys.Commands(inpututil.KeyPressDuration)
}

func (g *Game) Update() error {
	if QuitPressed(ebiten.IsKeyPressed) {
		return ebiten.Termination
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	step := func() { g.scheduler.Once(dt) }
	if g.overlay != nil {
		g.overlay.Step(step)
	} else {
		step()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.scheduler.Game().Snapshot())
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.renderer.ScreenSize()
}

// Run blocks until the window is closed or a quit key is pressed.
func (g *Game) Run() error {
	g.log.Infof("gui: starting at %d tps", ebiten.TPS())
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	stats := g.scheduler.GetStats()
	g.log.Infof("gui: stopped after %d frames", stats.Frames)
	return err
}
