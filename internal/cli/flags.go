package cli

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps flag names to config keys. Flags are bound when a command
// runs, since several subcommands define the same flag.
var flagKeys = map[string]string{
	"log-level": "log.level",
	"log-file":  "log.file",
	"seed":      "game.seed",
	"rows":      "board.rows",
	"cols":      "board.cols",
	"fps":       "frontend.fps",
	"cell-size": "frontend.cell_size",
	"debug":     "frontend.debug",
	"sound":     "sound.enabled",
	"volume":    "sound.volume",
	"duration":  "simulate.duration",
	"games":     "simulate.games",
	"frame":     "simulate.frame",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			panic(err)
		}
	}
}

func addDebugFlag(flags *pflag.FlagSet) {
	flags.Bool("debug", false, "show the imgui debug overlay")
}

func addCellSizeFlag(flags *pflag.FlagSet) {
	flags.Int("cell-size", 30, "cell size in pixels")
}

func addFPSFlag(flags *pflag.FlagSet) {
	flags.Int("fps", 60, "frames per second")
}

func addSoundFlags(flags *pflag.FlagSet) {
	flags.Bool("sound", true, "play sound cues")
	flags.Float64("volume", 0.5, "sound volume between 0 and 1")
}

func addSimulateFlags(flags *pflag.FlagSet) {
	flags.Duration("duration", 0, "wall-clock run time per game (default 10s unless --frames is set)")
	flags.Int64("frames", 0, "stop each game after this many frames")
	flags.Int("games", 1, "number of games to run concurrently")
	flags.Duration("frame", 0, "synthetic frame delta (default 16ms)")
	flags.Bool("gc", false, "include GC pause metrics in the report")
}
