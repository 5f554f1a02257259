// Package config loads the read-only settings shared by every frontend.
// Values come from flags, TETRIS_* environment variables, an optional
// config file and built-in defaults, highest first.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kirsle/configdir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/plus3/tetris/tetris"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

const (
	EnvPrefix = "TETRIS"
	AppName   = "tetris"
	FileName  = "config"

	MinRows = 4
	MinCols = 4
)

type Board struct {
	Rows int `mapstructure:"rows"`
	Cols int `mapstructure:"cols"`
}

type Game struct {
	Seed uint64 `mapstructure:"seed"`
}

type Frontend struct {
	CellSize int  `mapstructure:"cell_size"`
	FPS      int  `mapstructure:"fps"`
	Debug    bool `mapstructure:"debug"`
}

type Sound struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Simulate struct {
	Duration time.Duration `mapstructure:"duration"`
	Games    int           `mapstructure:"games"`
	Frame    time.Duration `mapstructure:"frame"`
}

type Config struct {
	Board    Board    `mapstructure:"board"`
	Game     Game     `mapstructure:"game"`
	Frontend Frontend `mapstructure:"frontend"`
	Sound    Sound    `mapstructure:"sound"`
	Log      Log      `mapstructure:"log"`
	Simulate Simulate `mapstructure:"simulate"`
}

// SetDefaults registers every known key on v. Keys must be registered for
// environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("board.rows", tetris.DefaultRows)
	v.SetDefault("board.cols", tetris.DefaultCols)
	v.SetDefault("game.seed", 0)
	v.SetDefault("frontend.cell_size", 30)
	v.SetDefault("frontend.fps", 60)
	v.SetDefault("frontend.debug", false)
	v.SetDefault("sound.enabled", true)
	v.SetDefault("sound.volume", 0.5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("simulate.duration", "10s")
	v.SetDefault("simulate.games", 1)
	v.SetDefault("simulate.frame", "16ms")
}

// DefaultPath is the per-user directory searched for the config file.
func DefaultPath() string {
	return configdir.LocalConfig(AppName)
}

// Load reads configuration into a Config. An empty configPath searches
// DefaultPath. A missing config file is not an error; nothing is ever
// written back.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigName(FileName)
	v.AddConfigPath(configPath)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc()))
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges. Every error wraps ErrInvalid.
func (c *Config) Validate() error {
	if c.Board.Rows < MinRows {
		return fmt.Errorf("%w: board.rows must be at least %d, got %d", ErrInvalid, MinRows, c.Board.Rows)
	}
	if c.Board.Cols < MinCols {
		return fmt.Errorf("%w: board.cols must be at least %d, got %d", ErrInvalid, MinCols, c.Board.Cols)
	}
	if c.Frontend.CellSize <= 0 {
		return fmt.Errorf("%w: frontend.cell_size must be positive", ErrInvalid)
	}
	if c.Frontend.FPS <= 0 {
		return fmt.Errorf("%w: frontend.fps must be positive", ErrInvalid)
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("%w: sound.volume must be within [0, 1], got %g", ErrInvalid, c.Sound.Volume)
	}
	if c.Simulate.Games <= 0 {
		return fmt.Errorf("%w: simulate.games must be positive", ErrInvalid)
	}
	if c.Simulate.Frame <= 0 {
		return fmt.Errorf("%w: simulate.frame must be positive", ErrInvalid)
	}
	if c.Simulate.Duration < 0 {
		return fmt.Errorf("%w: simulate.duration must not be negative", ErrInvalid)
	}
	return nil
}

// FrameInterval is the host frame period derived from frontend.fps.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Frontend.FPS)
}

// GameOptions builds engine options. A zero seed picks one from the clock.
func (c *Config) GameOptions() tetris.Options {
	seed := c.Game.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return tetris.Options{
		Rows:       c.Board.Rows,
		Cols:       c.Board.Cols,
		Randomizer: tetris.NewRandomizer(seed),
	}
}
