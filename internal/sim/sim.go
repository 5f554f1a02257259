// Package sim runs games headlessly with a random player to soak-test the
// engine and measure frame cost.
package sim

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/plus3/tetris/internal/logging"
	"github.com/plus3/tetris/loop"
	"github.com/plus3/tetris/tetris"
)

type Options struct {
	// Duration bounds each game in wall-clock time. Zero means unbounded.
	Duration time.Duration
	// MaxFrames bounds each game in frames. Zero means unbounded.
	MaxFrames int64
	Games     int
	// Frame is the synthetic delta fed to the scheduler every frame.
	Frame time.Duration
	Seed  uint64
	Rows  int
	Cols  int

	GCPauseMetrics bool
}

// GameResult summarizes one simulated game run.
type GameResult struct {
	Index     int
	Seed      uint64
	Frames    int64
	GameOvers int
	BestScore int
	Session   tetris.Session
	Stats     tetris.StatsSnapshot
	Systems   []loop.SystemStats
	Applied   int64
	Rejected  int64
	Update    Stats
}

// player issues random commands, biased towards movement.
type player struct {
	rand *tetris.UniformRandomizer
}

var playerMoves = []tetris.Command{
	tetris.CommandMoveLeft,
	tetris.CommandMoveRight,
	tetris.CommandRotate,
	tetris.CommandSoftDrop,
	tetris.CommandHardDrop,
}

func (p *player) poll() []tetris.Command {
	// Act on roughly one frame in four.
	if p.rand.IntN(4) != 0 {
		return nil
	}
	// Hard drops are rarer than the other moves.
	n := p.rand.IntN(len(playerMoves)*2 - 1)
	if n >= len(playerMoves) {
		n %= len(playerMoves) - 1
	}
	return []tetris.Command{playerMoves[n]}
}

// restartSystem starts a new game at the end of any frame that finds the
// current one over.
type restartSystem struct{}

func (restartSystem) Execute(frame *loop.Frame) {
	if frame.Game.Over() {
		frame.Defer(func() { frame.Game.Apply(tetris.CommandRestart) })
	}
}

func gameSeed(base uint64, index int) uint64 {
	return base + uint64(index)*0x9E3779B97F4A7C15
}

// Run plays opts.Games games concurrently and collects a report.
func Run(ctx context.Context, opts Options, log *logging.Logger) (*Report, error) {
	if opts.Duration <= 0 && opts.MaxFrames <= 0 {
		return nil, errors.New("sim: either a duration or a frame limit is required")
	}
	if opts.Games <= 0 {
		opts.Games = 1
	}

	report := &Report{
		Duration:       opts.Duration,
		MaxFrames:      opts.MaxFrames,
		Frame:          opts.Frame,
		Seed:           opts.Seed,
		Rows:           opts.Rows,
		Cols:           opts.Cols,
		GCPauseMetrics: opts.GCPauseMetrics,
		Games:          make([]GameResult, opts.Games),
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for i := range opts.Games {
		g.Go(func() error {
			res, err := runGame(ctx, opts, i, log)
			report.Games[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.finalize()
	return report, nil
}

func runGame(ctx context.Context, opts Options, index int, log *logging.Logger) (GameResult, error) {
	seed := gameSeed(opts.Seed, index)
	res := GameResult{Index: index, Seed: seed}

	game := tetris.NewGame(tetris.Options{
		Rows:       opts.Rows,
		Cols:       opts.Cols,
		Randomizer: tetris.NewRandomizer(seed),
	})

	var best int
	game.Subscribe(func(ev tetris.Event) {
		if ev.Kind == tetris.EventGameOver {
			res.GameOvers++
			best = max(best, ev.Score)
		}
	})

	bot := &player{rand: tetris.NewRandomizer(^seed)}
	input := &loop.InputSystem{Poll: bot.poll}

	scheduler := loop.NewScheduler(game)
	scheduler.Register(input)
	scheduler.Register(loop.GravitySystem{})
	scheduler.Register(restartSystem{})

	log.Debugf("sim: game %d starting with seed %d", index, seed)

	var deadline time.Time
	if opts.Duration > 0 {
		deadline = time.Now().Add(opts.Duration)
	}

	for {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				break
			}
			return res, err
		}
		if opts.MaxFrames > 0 && res.Frames >= opts.MaxFrames {
			break
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			break
		}

		updateStart := time.Now()
		scheduler.Once(opts.Frame)
		res.Update.Samples = append(res.Update.Samples, time.Since(updateStart))
		res.Frames++
	}

	res.Update.Finalize()
	res.Session = game.Session()
	res.Stats = game.Stats()
	res.BestScore = max(best, res.Session.Score)
	res.Systems = scheduler.GetStats().Systems
	res.Applied = input.Applied
	res.Rejected = input.Rejected

	log.Infof("sim: game %d finished: %d frames, %d game overs, best score %d",
		index, res.Frames, res.GameOvers, res.BestScore)
	return res, nil
}
