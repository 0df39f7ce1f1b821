package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/vancomm/minesweeper/internal/mines"
)

const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Leaderboard struct {
	Backend string `env:"BACKEND" envDefault:"file"`
	Path    string `env:"PATH" envDefault:"leaderboard.json"`
}

type Game struct {
	Size      int           `env:"SIZE" envDefault:"8"`
	MineCount int           `env:"COUNT" envDefault:"10"`
	Seed      string        `env:"SEED"`
	Labeling  string        `env:"LABELING" envDefault:"classic"`
	Tick      time.Duration `env:"TICK" envDefault:"1s"`
}

// Params converts the game section into validated board parameters.
func (g Game) Params() (mines.GameParams, error) {
	labeling, err := mines.ParseLabeling(g.Labeling)
	if err != nil {
		return mines.GameParams{}, err
	}
	p := mines.GameParams{Size: g.Size, MineCount: g.MineCount, Labeling: labeling}
	return p, p.Validate()
}

// ParsedSeed returns the configured seed, or ok == false when none is set
// and the caller should pick a random one.
func (g Game) ParsedSeed() (seed uint64, ok bool, err error) {
	s := strings.TrimSpace(g.Seed)
	if s == "" {
		return 0, false, nil
	}
	seed, err = strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid seed %q: %w", g.Seed, err)
	}
	return seed, true, nil
}

type Config struct {
	Development bool        `env:"DEVELOPMENT"`
	LogFile     string      `env:"LOG_FILE"`
	Game        Game        `envPrefix:"MINES_"`
	Leaderboard Leaderboard `envPrefix:"LEADERBOARD_"`
	Database    Database
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if _, err := c.Game.Params(); err != nil {
		return err
	}
	if _, _, err := c.Game.ParsedSeed(); err != nil {
		return err
	}
	switch c.Leaderboard.Backend {
	case BackendFile, BackendSQLite:
		if c.Leaderboard.Path == "" {
			return fmt.Errorf("leaderboard path is required for the %s backend", c.Leaderboard.Backend)
		}
	case BackendPostgres:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown leaderboard backend %q", c.Leaderboard.Backend)
	}
	return nil
}
