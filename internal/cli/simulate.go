package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/plus3/tetris/internal/sim"
)

func newSimulateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run headless games with a random player and report timings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := a.load(cmd)
			if err != nil {
				return err
			}
			log, closer, err := openLog(cfg, "", cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			frames, _ := cmd.Flags().GetInt64("frames")
			gc, _ := cmd.Flags().GetBool("gc")

			duration := cfg.Simulate.Duration
			if frames > 0 && !cmd.Flags().Changed("duration") {
				duration = 0
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			report, err := sim.Run(ctx, sim.Options{
				Duration:       duration,
				MaxFrames:      frames,
				Games:          cfg.Simulate.Games,
				Frame:          cfg.Simulate.Frame,
				Seed:           cfg.Game.Seed,
				Rows:           cfg.Board.Rows,
				Cols:           cfg.Board.Cols,
				GCPauseMetrics: gc,
			}, log)
			if err != nil {
				return err
			}
			return report.Generate(cmd.OutOrStdout())
		},
	}
	addSimulateFlags(cmd.Flags())
	return cmd
}
