// Package sound plays short synthesized cues for game events.
package sound

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/plus3/tetris/internal/logging"
	"github.com/plus3/tetris/tetris"
)

const SampleRate = beep.SampleRate(44100)

type Cue uint8

const (
	CueNone Cue = iota
	CueLock
	CueSingle
	CueDouble
	CueTriple
	CueTetris
	CueLevelUp
	CueGameOver
)

var cueNames = [...]string{"none", "lock", "single", "double", "triple", "tetris", "level-up", "game-over"}

func (c Cue) String() string {
	if int(c) < len(cueNames) {
		return cueNames[c]
	}
	return fmt.Sprintf("Cue(%d)", uint8(c))
}

type note struct {
	freq float64
	dur  time.Duration
}

var cueNotes = map[Cue][]note{
	CueLock:     {{220, 40 * time.Millisecond}},
	CueSingle:   {{440, 60 * time.Millisecond}},
	CueDouble:   {{440, 60 * time.Millisecond}, {554, 60 * time.Millisecond}},
	CueTriple:   {{440, 60 * time.Millisecond}, {554, 60 * time.Millisecond}, {659, 60 * time.Millisecond}},
	CueTetris:   {{523, 70 * time.Millisecond}, {659, 70 * time.Millisecond}, {784, 70 * time.Millisecond}, {1047, 140 * time.Millisecond}},
	CueLevelUp:  {{660, 90 * time.Millisecond}, {880, 90 * time.Millisecond}},
	CueGameOver: {{330, 150 * time.Millisecond}, {262, 150 * time.Millisecond}, {196, 300 * time.Millisecond}},
}

// CueFor maps an engine event to the cue it should play.
func CueFor(ev tetris.Event) Cue {
	switch ev.Kind {
	case tetris.EventLocked:
		return CueLock
	case tetris.EventLinesCleared:
		switch {
		case ev.Lines >= 4:
			return CueTetris
		case ev.Lines == 3:
			return CueTriple
		case ev.Lines == 2:
			return CueDouble
		case ev.Lines == 1:
			return CueSingle
		}
	case tetris.EventLevelUp:
		return CueLevelUp
	case tetris.EventGameOver:
		return CueGameOver
	}
	return CueNone
}

// Streamer synthesizes the cue as a finite sequence of sine tones scaled by
// volume in [0, 1].
func (c Cue) Streamer(sr beep.SampleRate, volume float64) (beep.Streamer, int, error) {
	notes, ok := cueNotes[c]
	if !ok {
		return nil, 0, fmt.Errorf("no notes for cue %s", c)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	total := 0
	for _, n := range notes {
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, 0, fmt.Errorf("cue %s: %w", c, err)
		}
		samples := sr.N(n.dur)
		total += samples
		parts = append(parts, beep.Take(samples, tone))
	}

	seq := beep.Seq(parts...)
	if volume <= 0 {
		return &effects.Volume{Streamer: seq, Base: 2, Silent: true}, total, nil
	}
	return &effects.Volume{Streamer: seq, Base: 2, Volume: math.Log2(volume)}, total, nil
}

// Player owns the speaker. A Player whose Init failed, or that was never
// initialized, silently drops cues.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	log         *logging.Logger
}

func NewPlayer(volume float64, log *logging.Logger) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		log:    log,
	}
}

// Init opens the audio device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops every playing cue.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

func (p *Player) Play(c Cue) {
	if c == CueNone {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, _, err := c.Streamer(SampleRate, p.volume)
	if err != nil {
		p.log.Warnf("sound: %v", err)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Listener plays the cue for every event it receives.
func (p *Player) Listener() tetris.Listener {
	return func(ev tetris.Event) {
		p.Play(CueFor(ev))
	}
}
