// Package cli wires configuration, logging and the frontends into the tetris
// command.
package cli

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plus3/tetris/config"
	"github.com/plus3/tetris/tetris"
)

//go:embed version.txt
var version string

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v          *viper.Viper
	configPath string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:     "tetris",
		Version: strings.TrimSpace(version),
		Short:   "Falling block puzzle game",
		Long:    "Tetris with windowed, terminal and headless frontends",
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config-path", "", "directory holding config.{yaml,json,toml} (default "+config.DefaultPath()+")")
	flags.String("log-level", "info", "log level: debug, info, warn, error or none")
	flags.String("log-file", "", "write logs to this file")
	flags.Uint64("seed", 0, "piece randomizer seed, 0 picks one from the clock")
	flags.Int("rows", tetris.DefaultRows, "board rows")
	flags.Int("cols", tetris.DefaultCols, "board columns")

	root.AddCommand(
		newPlayCmd(a),
		newTermCmd(a),
		newTUICmd(a),
		newSimulateCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "tetris version "+strings.TrimSpace(version))
		},
	}
}
