package sim

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tetris/internal/logging"
)

func testOptions() Options {
	return Options{
		MaxFrames: 2000,
		Games:     3,
		Frame:     16 * time.Millisecond,
		Seed:      42,
		Rows:      20,
		Cols:      10,
	}
}

func TestRunRequiresBound(t *testing.T) {
	_, err := Run(context.Background(), Options{Games: 1}, logging.Discard())
	require.Error(t, err)
}

func TestRunDeterministic(t *testing.T) {
	opts := testOptions()

	a, err := Run(context.Background(), opts, logging.Discard())
	require.NoError(t, err)
	b, err := Run(context.Background(), opts, logging.Discard())
	require.NoError(t, err)

	require.Len(t, a.Games, opts.Games)
	require.Len(t, b.Games, opts.Games)
	for i := range a.Games {
		ga, gb := a.Games[i], b.Games[i]
		assert.Equal(t, i, ga.Index)
		assert.Equal(t, opts.MaxFrames, ga.Frames)
		assert.Len(t, ga.Update.Samples, int(opts.MaxFrames))
		assert.Equal(t, ga.Seed, gb.Seed)
		assert.Equal(t, ga.Session, gb.Session)
		assert.Equal(t, ga.Stats, gb.Stats)
		assert.Equal(t, ga.GameOvers, gb.GameOvers)
		assert.Equal(t, ga.Applied, gb.Applied)
		assert.Equal(t, ga.Rejected, gb.Rejected)
		assert.Positive(t, ga.Stats.TotalPieces())
	}

	assert.NotEqual(t, a.Games[0].Seed, a.Games[1].Seed)
	assert.Equal(t, opts.MaxFrames*int64(opts.Games), a.TotalFrames)
}

func TestRunStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := testOptions()
	opts.MaxFrames = 0
	opts.Duration = time.Hour

	report, err := Run(ctx, opts, logging.Discard())
	require.NoError(t, err)
	for _, g := range report.Games {
		assert.Zero(t, g.Frames)
	}
}

func TestRunDuration(t *testing.T) {
	opts := testOptions()
	opts.MaxFrames = 0
	opts.Duration = 20 * time.Millisecond
	opts.Games = 1

	report, err := Run(context.Background(), opts, logging.Discard())
	require.NoError(t, err)
	assert.Positive(t, report.Games[0].Frames)
	assert.GreaterOrEqual(t, report.TotalTime, opts.Duration)
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3, 1, 2}}
	s.Finalize()
	assert.Equal(t, time.Duration(1), s.Min)
	assert.Equal(t, time.Duration(3), s.Max)
	assert.Equal(t, time.Duration(2), s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportSystemsMerged(t *testing.T) {
	opts := testOptions()
	opts.MaxFrames = 10

	report, err := Run(context.Background(), opts, logging.Discard())
	require.NoError(t, err)

	systems := report.Systems()
	require.Len(t, systems, 3)
	assert.Equal(t, "InputSystem", systems[0].Name)
	assert.Equal(t, "GravitySystem", systems[1].Name)
	assert.Equal(t, "restartSystem", systems[2].Name)
	for _, s := range systems {
		assert.Equal(t, int64(30), s.ExecutionCount)
	}
}

func TestReportGenerate(t *testing.T) {
	color.NoColor = true

	opts := testOptions()
	opts.MaxFrames = 200
	opts.GCPauseMetrics = true

	report, err := Run(context.Background(), opts, logging.Discard())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()

	assert.Contains(t, out, "# Tetris Simulation Report")
	assert.Contains(t, out, "Board:       20x10")
	assert.Contains(t, out, "Max frames:  200")
	assert.NotContains(t, out, "Duration:")
	assert.Contains(t, out, "Total frames: 600")
	assert.Contains(t, out, "## GC Pauses")
	assert.Contains(t, out, "GAME OVERS")
	assert.Contains(t, out, "GravitySystem")
}
