package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/plus3/tetris/internal/gui"
	termui "github.com/plus3/tetris/internal/term"
	"github.com/plus3/tetris/internal/tui"
)

// isInteractive reports whether stdin and stdout are both terminals.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func newPlayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			s, err := a.newSession(cmd, sessionOptions{sound: true})
			if err != nil {
				return err
			}
			defer s.Close()

			return gui.New(s.cfg, s.game, s.log, s.cfg.Frontend.Debug).Run()
		},
	}
	addDebugFlag(cmd.Flags())
	addCellSizeFlag(cmd.Flags())
	addFPSFlag(cmd.Flags())
	addSoundFlags(cmd.Flags())
	return cmd
}

func newTermCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Play in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if !isInteractive() {
				return errInteractive("term")
			}

			s, err := a.newSession(cmd, sessionOptions{logFile: terminalLogFile, sound: true})
			if err != nil {
				return err
			}
			defer s.Close()

			screen, err := termui.NewScreen()
			if err != nil {
				return err
			}
			defer screen.Fini()

			err = termui.New(screen, s.game, s.cfg.FrameInterval(), s.log).Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	addFPSFlag(cmd.Flags())
	addSoundFlags(cmd.Flags())
	return cmd
}

func newTUICmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Play in the terminal with Bubble Tea",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if !isInteractive() {
				return errInteractive("tui")
			}

			s, err := a.newSession(cmd, sessionOptions{logFile: terminalLogFile, sound: true})
			if err != nil {
				return err
			}
			defer s.Close()

			return tui.Run(s.game, s.cfg.FrameInterval(), s.log)
		},
	}
	addFPSFlag(cmd.Flags())
	addSoundFlags(cmd.Flags())
	return cmd
}
