// Package tetris implements the game-state engine for a single-player
// falling-block puzzle: the board, the falling piece, line clears, scoring and
// the gravity timer.
//
// A Game is driven from one goroutine. Hosts call Tick once per frame with the
// elapsed time and forward discrete player input through Apply or the
// individual command methods; they read a Snapshot to render. Nothing in the
// package blocks or starts goroutines.
package tetris

import (
	"fmt"
	"time"
)

// Phase is the state of the falling piece.
type Phase uint8

const (
	PhaseFalling Phase = iota
	PhaseLocking
	PhaseSpawning
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseLocking:
		return "locking"
	case PhaseSpawning:
		return "spawning"
	case PhaseGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Session holds the score-keeping state of one game.
type Session struct {
	Score        int
	Level        int
	Lines        int
	DropInterval time.Duration
	Over         bool
	Paused       bool
}

// Options configures NewGame. Zero values select the defaults.
type Options struct {
	Rows, Cols int
	Randomizer Randomizer
}

// Game is one running game. It is not safe for concurrent use.
type Game struct {
	board *Board
	rand  Randomizer

	active     Shape
	activeType PieceType
	pos        Point
	next       PieceType

	session     Session
	phase       Phase
	dropCounter time.Duration

	stats  *Stats
	events eventQueue
}

// NewGame creates a game and spawns its first piece.
func NewGame(opts Options) *Game {
	if opts.Rows == 0 {
		opts.Rows = DefaultRows
	}
	if opts.Cols == 0 {
		opts.Cols = DefaultCols
	}
	if opts.Randomizer == nil {
		opts.Randomizer = NewRandomizer(uint64(time.Now().UnixNano()))
	}

	g := &Game{
		board: NewBoard(opts.Rows, opts.Cols),
		rand:  opts.Randomizer,
	}
	g.reset()
	g.spawn()
	return g
}

// Subscribe registers l for every future event.
func (g *Game) Subscribe(l Listener) {
	g.events.subscribe(l)
}

func (g *Game) reset() {
	g.board.Clear()
	g.session = Session{
		Level:        1,
		DropInterval: InitialDropInterval,
	}
	g.dropCounter = 0
	g.stats = newStats()
	g.active = nil
	g.activeType = PieceNone
	g.next = g.rand.Next()
}

// Reset tears down the current game, whatever its state, and starts a new one.
func (g *Game) Reset() {
	defer g.events.flush()
	g.reset()
	g.emit(EventRestarted, PieceNone)
	g.spawn()
}

// Restart starts a new game. It only acts once the current game is over.
func (g *Game) Restart() bool {
	if !g.session.Over {
		return false
	}
	g.Reset()
	return true
}

// EndGame abandons a running game, moving it straight to game over.
func (g *Game) EndGame() bool {
	if g.session.Over {
		return false
	}
	defer g.events.flush()
	g.gameOver()
	return true
}

func (g *Game) playing() bool {
	return !g.session.Over && !g.session.Paused && g.active != nil
}

func (g *Game) emit(kind EventKind, piece PieceType) {
	g.events.push(Event{
		Kind:  kind,
		Piece: piece,
		Score: g.session.Score,
		Level: g.session.Level,
	})
}

func (g *Game) spawn() {
	g.phase = PhaseSpawning

	t := g.next
	g.next = g.rand.Next()

	g.active = NewShape(t)
	g.activeType = t
	g.pos = Point{X: floorDiv(g.board.cols-g.active.Size(), 2), Y: 0}

	g.stats.spawned(t)
	g.emit(EventSpawned, t)

	if g.board.Collides(g.active, g.pos) {
		g.gameOver()
		return
	}
	g.phase = PhaseFalling
}

func (g *Game) gameOver() {
	g.phase = PhaseGameOver
	g.session.Over = true
	g.session.Paused = false
	g.emit(EventGameOver, g.activeType)
}

// lock merges the falling piece, clears rows, scores and spawns the next piece.
func (g *Game) lock() {
	g.phase = PhaseLocking
	g.board.Merge(g.active, g.pos)
	g.emit(EventLocked, g.activeType)

	cleared := g.board.ResolveLines()
	if cleared > 0 {
		prevLevel := g.session.Level
		res := ApplyClear(cleared, g.session.Level, g.session.Lines)
		g.session.Score += res.ScoreDelta
		g.session.Lines = res.Lines
		g.session.Level = res.Level
		g.session.DropInterval = res.DropInterval
		g.stats.cleared(cleared)

		g.events.push(Event{
			Kind:       EventLinesCleared,
			Piece:      g.activeType,
			Lines:      cleared,
			ScoreDelta: res.ScoreDelta,
			Score:      g.session.Score,
			Level:      g.session.Level,
		})
		if g.session.Level > prevLevel {
			g.emit(EventLevelUp, PieceNone)
		}
	}

	g.spawn()
}

// MoveLeft shifts the falling piece one column left if there is room.
func (g *Game) MoveLeft() bool { return g.move(-1) }

// MoveRight shifts the falling piece one column right if there is room.
func (g *Game) MoveRight() bool { return g.move(1) }

func (g *Game) move(dir int) bool {
	if !g.playing() {
		return false
	}
	g.pos.X += dir
	if g.board.Collides(g.active, g.pos) {
		g.pos.X -= dir
		return false
	}
	return true
}

// SoftDrop moves the piece down one row, locking it when it cannot move.
// It resets the gravity timer.
func (g *Game) SoftDrop() bool {
	if !g.playing() {
		return false
	}
	defer g.events.flush()

	g.dropCounter = 0
	g.pos.Y++
	if g.board.Collides(g.active, g.pos) {
		g.pos.Y--
		g.lock()
	}
	return true
}

// HardDrop drops the piece as far as it goes and locks it, scoring one point
// per row travelled.
func (g *Game) HardDrop() bool {
	if !g.playing() {
		return false
	}
	defer g.events.flush()

	rows := g.dropDistance()
	g.pos.Y += rows
	g.session.Score += rows
	g.stats.hardDropRows += rows
	g.dropCounter = 0
	g.lock()
	return true
}

func (g *Game) dropDistance() int {
	probe := g.pos
	for {
		probe.Y++
		if g.board.Collides(g.active, probe) {
			return probe.Y - 1 - g.pos.Y
		}
	}
}

// Rotate turns the piece clockwise. When the rotated piece collides it probes
// horizontal offsets +1, -2, +3, -4, ... applied cumulatively, giving up once
// the next offset would exceed the shape width; on failure the rotation and
// position are restored.
func (g *Game) Rotate() bool {
	if !g.playing() {
		return false
	}

	origX := g.pos.X
	offset := 1
	n := g.active.Size()

	g.active.Rotate(true)
	for g.board.Collides(g.active, g.pos) {
		g.pos.X += offset
		if offset > 0 {
			offset = -(offset + 1)
		} else {
			offset = -(offset - 1)
		}
		if offset > n {
			g.active.Rotate(false)
			g.pos.X = origX
			return false
		}
	}
	return true
}

// TogglePause flips the paused flag. It does nothing once the game is over.
func (g *Game) TogglePause() bool {
	if g.session.Over {
		return false
	}
	defer g.events.flush()

	g.session.Paused = !g.session.Paused
	if g.session.Paused {
		g.emit(EventPaused, PieceNone)
	} else {
		g.emit(EventResumed, PieceNone)
	}
	return true
}

// Tick advances the gravity timer by elapsed. When the accumulated time
// exceeds the drop interval the piece soft-drops. Paused and finished games
// ignore ticks, so unpausing resumes where the timer stopped.
func (g *Game) Tick(elapsed time.Duration) {
	if !g.playing() || elapsed < 0 {
		return
	}
	g.stats.ticked(elapsed)

	g.dropCounter += elapsed
	if g.dropCounter > g.session.DropInterval {
		g.stats.autoDrops++
		g.SoftDrop()
	}
}

// Session returns a copy of the score-keeping state.
func (g *Game) Session() Session { return g.session }

// Phase returns the falling-piece state.
func (g *Game) Phase() Phase { return g.phase }

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.session.Over }

// Paused reports whether the game is paused.
func (g *Game) Paused() bool { return g.session.Paused }

// DropCounter returns the time accumulated towards the next automatic drop.
func (g *Game) DropCounter() time.Duration { return g.dropCounter }

// Position returns the board coordinate of the falling piece's top-left corner.
func (g *Game) Position() Point { return g.pos }

// Next returns the type of the queued piece.
func (g *Game) Next() PieceType { return g.next }

// Stats returns a copy of the per-game counters.
func (g *Game) Stats() StatsSnapshot { return g.stats.snapshot() }

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
