package cli

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/plus3/tetris/config"
	"github.com/plus3/tetris/internal/logging"
	"github.com/plus3/tetris/internal/sound"
	"github.com/plus3/tetris/tetris"
)

// terminalLogFile is used by frontends that own the terminal when no log file
// is configured.
const terminalLogFile = ".tetris.log"

// session is one configured game plus the ambient services around it.
type session struct {
	id     string
	cfg    *config.Config
	log    *logging.Logger
	game   *tetris.Game
	player *sound.Player
	closer io.Closer
}

type sessionOptions struct {
	// logFile is used when log.file is unset. Empty logs to stderr.
	logFile string
	sound   bool
}

func (a *app) load(cmd *cobra.Command) (*config.Config, error) {
	bindFlags(a.v, cmd.Flags())
	return config.Load(a.v, a.configPath)
}

func openLog(cfg *config.Config, fallback string, stderr io.Writer) (*logging.Logger, io.Closer, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	path := cfg.Log.File
	if path == "" {
		path = fallback
	}
	if path == "" {
		return logging.New(stderr, level), nopCloser{}, nil
	}
	return logging.OpenFile(path, level)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func (a *app) newSession(cmd *cobra.Command, opts sessionOptions) (*session, error) {
	cfg, err := a.load(cmd)
	if err != nil {
		return nil, err
	}
	log, closer, err := openLog(cfg, opts.logFile, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	s := &session{
		id:     uuid.NewString(),
		cfg:    cfg,
		log:    log,
		game:   tetris.NewGame(cfg.GameOptions()),
		closer: closer,
	}
	s.game.Subscribe(eventLogger(log, s.id))
	log.Infof("session %s: %dx%d board", s.id, cfg.Board.Rows, cfg.Board.Cols)

	if opts.sound && cfg.Sound.Enabled {
		s.player = sound.NewPlayer(cfg.Sound.Volume, log)
		if err := s.player.Init(); err != nil {
			log.Warnf("sound disabled: %v", err)
		} else {
			s.game.Subscribe(s.player.Listener())
		}
	}
	return s, nil
}

func (s *session) Close() error {
	if s.player != nil {
		s.player.Close()
	}
	st := s.game.Session()
	stats := s.game.Stats()
	s.log.Infof("session %s ended: score %d, level %d, lines %d, %d pieces, played %s",
		s.id, st.Score, st.Level, st.Lines, stats.TotalPieces(), stats.PlayTime)
	return s.closer.Close()
}

// eventLogger writes engine events to log, tagged with the session id.
func eventLogger(log *logging.Logger, id string) tetris.Listener {
	return func(ev tetris.Event) {
		switch ev.Kind {
		case tetris.EventLinesCleared:
			log.Infof("session %s: cleared %d lines for %d points, score %d", id, ev.Lines, ev.ScoreDelta, ev.Score)
		case tetris.EventLevelUp:
			log.Infof("session %s: level %d", id, ev.Level)
		case tetris.EventGameOver:
			log.Infof("session %s: game over with score %d at level %d", id, ev.Score, ev.Level)
		case tetris.EventSpawned, tetris.EventLocked:
			log.Debugf("session %s: %s %s", id, ev.Kind, ev.Piece)
		default:
			log.Debugf("session %s: %s", id, ev.Kind)
		}
	}
}

func errInteractive(frontend string) error {
	return fmt.Errorf("the %s frontend needs an interactive terminal", frontend)
}
