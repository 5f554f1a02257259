// Package term is the full-screen terminal frontend built on tcell.
package term

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/plus3/tetris/internal/logging"
	"github.com/plus3/tetris/loop"
	"github.com/plus3/tetris/tetris"
)

// RenderSystem redraws the screen once per frame.
type RenderSystem struct {
	View *View
}

func (s *RenderSystem) Execute(frame *loop.Frame) {
	s.View.Draw(frame.Game.Snapshot())
}

// Frontend owns the screen while running. The scheduler goroutine is the only
// one touching the game; the event pump forwards commands over a channel.
type Frontend struct {
	screen    tcell.Screen
	scheduler *loop.Scheduler
	interval  time.Duration
	log       *logging.Logger
}

// New wraps an initialized screen. interval is the frame period.
func New(screen tcell.Screen, game *tetris.Game, interval time.Duration, log *logging.Logger) *Frontend {
	f := &Frontend{
		screen:    screen,
		scheduler: loop.NewScheduler(game),
		interval:  interval,
		log:       log,
	}
	f.scheduler.Register(loop.GravitySystem{})
	f.scheduler.Register(&RenderSystem{View: NewView(screen)})
	return f
}

// NewScreen creates and initializes the real terminal screen.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.Clear()
	return screen, nil
}

// Scheduler exposes the frame scheduler for statistics.
func (f *Frontend) Scheduler() *loop.Scheduler {
	return f.scheduler
}

// Run blocks until a quit key is pressed or ctx is cancelled. It does not
// finalize the screen.
func (f *Frontend) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	commands := make(chan tetris.Command, 16)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer f.recoverScreen("event pump")
		defer cancel()
		return f.pump(ctx, commands)
	})

	g.Go(func() error {
		<-ctx.Done()
		// Unblock PollEvent.
		_ = f.screen.PostEvent(tcell.NewEventInterrupt(nil))
		return nil
	})

	g.Go(func() error {
		defer f.recoverScreen("scheduler")
		err := f.scheduler.Run(ctx, f.interval, commands)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	f.log.Infof("term: running at %s per frame", f.interval)
	err := g.Wait()
	f.log.Infof("term: stopped after %d frames", f.scheduler.GetStats().Frames)
	return err
}

// recoverScreen restores the terminal and exits when a frontend goroutine
// panics.
func (f *Frontend) recoverScreen(name string) {
	r := recover()
	if r == nil {
		return
	}
	f.screen.Fini()
	f.log.Errorf("term: %s crashed: %v\n%s", name, r, debug.Stack())
	fmt.Fprintf(os.Stderr, "\r\n%s crashed: %v\r\nStack Trace:\r\n%s\r\n", name, r, debug.Stack())
	os.Exit(1)
}

func (f *Frontend) pump(ctx context.Context, commands chan<- tetris.Command) error {
	for {
		ev := f.screen.PollEvent()
		switch ev := ev.(type) {
		case nil, *tcell.EventInterrupt:
			return nil
		case *tcell.EventResize:
			f.screen.Sync()
		case *tcell.EventKey:
			if IsQuit(ev) {
				f.log.Debugf("term: quit requested")
				return nil
			}
			cmd, ok := KeyCommand(ev)
			if !ok {
				continue
			}
			select {
			case commands <- cmd:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
