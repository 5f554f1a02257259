// Package loop drives a tetris.Game from a host frame clock. A Scheduler runs
// registered systems once per frame; GravitySystem feeds the frame delta to
// the game and InputSystem applies polled player commands.
package loop

import (
	"context"
	"reflect"
	"time"

	"github.com/plus3/tetris/tetris"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount int
	Frames      uint64
	Commands    uint64
	Systems     []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler manages and executes systems in order against one game.
type Scheduler struct {
	game        *tetris.Game
	systems     []System
	systemStats []*systemStatsInternal
	frames      uint64
	commands    uint64
}

// NewScheduler creates a new scheduler for the given game.
func NewScheduler(game *tetris.Game) *Scheduler {
	return &Scheduler{
		game:    game,
		systems: make([]System, 0),
	}
}

// Game returns the game the scheduler drives.
func (s *Scheduler) Game() *tetris.Game {
	return s.game
}

// Register adds a system to the end of the execution order.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemName(system),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if name := systemType.Name(); name != "" {
		return name
	}
	return systemType.String()
}

// Once executes all registered systems once with the given frame delta.
func (s *Scheduler) Once(dt time.Duration) {
	s.frames++
	frame := newFrame(s.frames, dt, s.game)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	frame.flush()
}

// Apply forwards a command to the game immediately, outside of any frame.
func (s *Scheduler) Apply(c tetris.Command) bool {
	s.commands++
	return s.game.Apply(c)
}

// Run steps the scheduler every interval until ctx is cancelled. Commands
// arriving on input are applied as soon as they are received, in order,
// between frames. A nil input channel is never selected.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration, input <-chan tetris.Command) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c, ok := <-input:
			if !ok {
				input = nil
				continue
			}
			s.Apply(c)
		case now := <-ticker.C:
			dt := now.Sub(lastTime)
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Commands:    s.commands,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
	}

	return stats
}
