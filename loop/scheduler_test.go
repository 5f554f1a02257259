package loop_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tetris/loop"
	"github.com/plus3/tetris/tetris"
)

type countingSystem struct {
	ExecuteCount int
	LastDelta    time.Duration
	order        *[]string
	name         string
}

func (s *countingSystem) Execute(frame *loop.Frame) {
	s.ExecuteCount++
	s.LastDelta = frame.Delta
	if s.order != nil {
		*s.order = append(*s.order, s.name)
	}
}

func newGame() *tetris.Game {
	return tetris.NewGame(tetris.Options{
		Randomizer: tetris.NewSequenceRandomizer(tetris.PieceT),
	})
}

func TestScheduler(t *testing.T) {
	t.Run("system execution order", func(t *testing.T) {
		scheduler := loop.NewScheduler(newGame())

		var order []string
		first := &countingSystem{order: &order, name: "first"}
		second := &countingSystem{order: &order, name: "second"}
		scheduler.Register(first)
		scheduler.Register(second)

		scheduler.Once(time.Millisecond)
		scheduler.Once(2 * time.Millisecond)

		assert.Equal(t, 2, first.ExecuteCount)
		assert.Equal(t, 2, second.ExecuteCount)
		assert.Equal(t, []string{"first", "second", "first", "second"}, order)
		assert.Equal(t, 2*time.Millisecond, second.LastDelta)
	})

	t.Run("gravity drops once the interval is exceeded", func(t *testing.T) {
		game := newGame()
		scheduler := loop.NewScheduler(game)
		scheduler.Register(loop.GravitySystem{})

		start := game.Position()
		for range 4 {
			scheduler.Once(250 * time.Millisecond)
		}
		assert.Equal(t, start, game.Position(), "counter equal to the interval does not drop")

		scheduler.Once(time.Millisecond)
		assert.Equal(t, start.Y+1, game.Position().Y)
		assert.Zero(t, game.DropCounter())
	})

	t.Run("input applies polled commands in order", func(t *testing.T) {
		game := newGame()
		scheduler := loop.NewScheduler(game)

		pending := []tetris.Command{tetris.CommandMoveLeft, tetris.CommandMoveLeft, tetris.CommandTogglePause, tetris.CommandMoveLeft}
		input := &loop.InputSystem{Poll: func() []tetris.Command {
			out := pending
			pending = nil
			return out
		}}
		scheduler.Register(input)

		start := game.Position()
		scheduler.Once(time.Millisecond)

		assert.Equal(t, start.X-2, game.Position().X)
		assert.True(t, game.Paused())
		assert.EqualValues(t, 3, input.Applied)
		assert.EqualValues(t, 1, input.Rejected)
	})

	t.Run("deferred work runs after all systems", func(t *testing.T) {
		scheduler := loop.NewScheduler(newGame())

		var order []string
		scheduler.Register(loop.SystemFunc(func(frame *loop.Frame) {
			frame.Defer(func() { order = append(order, "deferred") })
			order = append(order, "first")
		}))
		scheduler.Register(loop.SystemFunc(func(frame *loop.Frame) {
			order = append(order, "second")
		}))

		scheduler.Once(time.Millisecond)
		assert.Equal(t, []string{"first", "second", "deferred"}, order)
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		scheduler := loop.NewScheduler(newGame())
		counter := &countingSystem{}
		scheduler.Register(counter)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- scheduler.Run(ctx, time.Millisecond, nil)
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("scheduler did not stop after context cancellation")
		}
		assert.NotZero(t, counter.ExecuteCount)
	})

	t.Run("run applies input commands as they arrive", func(t *testing.T) {
		game := newGame()
		scheduler := loop.NewScheduler(game)
		start := game.Position()

		input := make(chan tetris.Command)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- scheduler.Run(ctx, time.Hour, input)
		}()

		input <- tetris.CommandMoveRight
		input <- tetris.CommandMoveRight
		close(input)
		cancel()
		<-done

		assert.Equal(t, start.X+2, game.Position().X)
		assert.EqualValues(t, 2, scheduler.GetStats().Commands)
	})
}

func TestSchedulerStats(t *testing.T) {
	scheduler := loop.NewScheduler(newGame())

	stats := scheduler.GetStats()
	assert.Zero(t, stats.SystemCount)
	assert.Empty(t, stats.Systems)

	scheduler.Register(loop.GravitySystem{})
	scheduler.Register(&countingSystem{})

	stats = scheduler.GetStats()
	require.Len(t, stats.Systems, 2)
	assert.Zero(t, stats.Systems[0].MinDuration)
	assert.Zero(t, stats.Systems[0].ExecutionCount)

	for range 3 {
		scheduler.Once(time.Millisecond)
	}

	stats = scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.EqualValues(t, 3, stats.Frames)
	assert.Equal(t, "GravitySystem", stats.Systems[0].Name)
	assert.Equal(t, "countingSystem", stats.Systems[1].Name)

	for _, s := range stats.Systems {
		assert.EqualValues(t, 3, s.ExecutionCount)
		assert.LessOrEqual(t, s.MinDuration, s.AvgDuration)
		assert.LessOrEqual(t, s.AvgDuration, s.MaxDuration)
		assert.Equal(t, s.TotalDuration/3, s.AvgDuration)
	}
}
