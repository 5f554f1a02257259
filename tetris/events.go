package tetris

import "fmt"

// EventKind classifies an engine notification.
type EventKind uint8

const (
	EventSpawned EventKind = iota + 1
	EventLocked
	EventLinesCleared
	EventLevelUp
	EventGameOver
	EventRestarted
	EventPaused
	EventResumed
)

func (k EventKind) String() string {
	switch k {
	case EventSpawned:
		return "spawned"
	case EventLocked:
		return "locked"
	case EventLinesCleared:
		return "lines-cleared"
	case EventLevelUp:
		return "level-up"
	case EventGameOver:
		return "game-over"
	case EventRestarted:
		return "restarted"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event describes a state change. Only the fields relevant to Kind are set;
// Score and Level always carry the session values at emission time.
type Event struct {
	Kind       EventKind
	Piece      PieceType
	Lines      int
	ScoreDelta int
	Score      int
	Level      int
}

// Listener receives events after the operation that produced them has
// finished, so the game is consistent when it runs. Listeners may call back
// into the game.
type Listener func(Event)

// eventQueue buffers events raised during an operation and delivers them on
// flush.
type eventQueue struct {
	pending   []Event
	listeners []Listener
	flushing  bool
}

func (q *eventQueue) subscribe(l Listener) {
	q.listeners = append(q.listeners, l)
}

func (q *eventQueue) push(ev Event) {
	if len(q.listeners) == 0 {
		return
	}
	q.pending = append(q.pending, ev)
}

func (q *eventQueue) flush() {
	// A listener that re-enters the game appends to pending; the outer loop
	// picks those up in order.
	if q.flushing {
		return
	}
	q.flushing = true
	defer func() { q.flushing = false }()

	for i := 0; i < len(q.pending); i++ {
		ev := q.pending[i]
		for _, l := range q.listeners {
			l(ev)
		}
	}
	q.pending = q.pending[:0]
}
