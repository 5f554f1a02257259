package tetris

import "time"

// Drop interval bounds.
const (
	InitialDropInterval = 1000 * time.Millisecond
	MinDropInterval     = 100 * time.Millisecond
	dropIntervalStep    = 100 * time.Millisecond
	linesPerLevel       = 10
)

var lineScores = [4]int{40, 100, 300, 1200}

// ClearResult is the outcome of scoring one lock.
type ClearResult struct {
	ScoreDelta   int
	Lines        int
	Level        int
	DropInterval time.Duration
}

// ApplyClear scores cleared rows from a single lock at the given level and
// returns the new cumulative line count, level and drop interval. Clears of
// more than four rows score as a four-row clear.
func ApplyClear(cleared, level, lines int) ClearResult {
	cleared = max(cleared, 0)
	total := lines + cleared
	newLevel := total/linesPerLevel + 1

	res := ClearResult{
		Lines:        total,
		Level:        newLevel,
		DropInterval: DropInterval(newLevel),
	}
	if cleared > 0 {
		res.ScoreDelta = lineScores[min(cleared, len(lineScores))-1] * level
	}
	return res
}

// DropInterval returns the automatic drop period for a level.
func DropInterval(level int) time.Duration {
	return max(MinDropInterval, InitialDropInterval-time.Duration(level-1)*dropIntervalStep)
}
