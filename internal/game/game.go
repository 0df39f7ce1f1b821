// Package game ties one board, its score timer and the leaderboard
// together for the lifetime of a single play-through.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	ErrNotFinished      = errors.New("game is still in progress")
	ErrAlreadySubmitted = errors.New("score already submitted")
)

// ScoreRecorder receives the final score of a finished game.
type ScoreRecorder interface {
	AddScore(ctx context.Context, name string, score int) error
}

type Config struct {
	Params mines.GameParams
	Seed   uint64
	Tick   time.Duration
}

type Game struct {
	cfg      Config
	state    *mines.GameState
	score    *mines.ScoreTracker
	recorder ScoreRecorder
	logger   *slog.Logger

	mu        sync.Mutex
	startedAt time.Time
	endedAt   time.Time
	submitted bool
}

// New builds the board up front so invalid parameters are reported before
// anything is shown to the player. recorder may be nil, in which case
// Submit only validates.
func New(cfg Config, recorder ScoreRecorder, logger *slog.Logger) (*Game, error) {
	if logger == nil {
		logger = slog.Default()
	}
	state, err := mines.NewGame(cfg.Params, cfg.Seed)
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:      cfg,
		state:    state,
		score:    mines.NewScoreTracker(cfg.Tick),
		recorder: recorder,
		logger: logger.With(
			slog.String("params", cfg.Params.Seed()),
			slog.Uint64("seed", cfg.Seed),
		),
	}
	g.logger.Debug("game created")
	return g, nil
}

func (g *Game) Params() mines.GameParams { return g.cfg.Params }
func (g *Game) Seed() uint64 { return g.cfg.Seed }
func (g *Game) State() *mines.GameState { return g.state }
func (g *Game) Board() *mines.Board { return g.state.Board() }
func (g *Game) Score() int { return g.score.Value() }

// Start begins counting score ticks. The timer halts on its own when ctx
// is cancelled.
func (g *Game) Start(ctx context.Context) {
	g.mu.Lock()
	if g.startedAt.IsZero() {
		g.startedAt = time.Now()
	}
	g.mu.Unlock()
	g.score.Start(ctx)
}

// Reveal opens a cell. A winning or losing reveal stops the score timer
// and uncovers the remaining mines.
func (g *Game) Reveal(row, col int) (mines.Outcome, error) {
	outcome, err := g.state.Reveal(row, col)
	if err != nil {
		return outcome, err
	}
	if outcome.Terminal() {
		final := g.score.Stop()
		g.state.RevealMines()

		g.mu.Lock()
		g.endedAt = time.Now()
		g.mu.Unlock()

		g.logger.Info(
			"game over",
			slog.String("outcome", outcome.String()),
			slog.Int("score", final),
			slog.Int("row", row),
			slog.Int("col", col),
		)
	}
	return outcome, nil
}

// Abandon stops the timer of a game left unfinished. Nothing is recorded.
func (g *Game) Abandon() {
	if g.state.Terminal() {
		return
	}
	g.score.Stop()
	g.logger.Debug("game abandoned", slog.Int("remaining", g.state.Remaining()))
}

// Playtime is the wall-clock time between Start and the final reveal, or
// until now for a running game.
func (g *Game) Playtime() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.startedAt.IsZero() {
		return 0
	}
	if g.endedAt.IsZero() {
		return time.Since(g.startedAt)
	}
	return g.endedAt.Sub(g.startedAt)
}

// Submit records the final score under name. It may be called once, and
// only after the game has been won or lost.
func (g *Game) Submit(ctx context.Context, name string) error {
	if !g.state.Terminal() {
		return ErrNotFinished
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.submitted {
		return ErrAlreadySubmitted
	}

	score := g.score.Value()
	if g.recorder != nil {
		if err := g.recorder.AddScore(ctx, name, score); err != nil {
			return fmt.Errorf("unable to submit score: %w", err)
		}
	}
	g.submitted = true
	return nil
}

func (g *Game) Submitted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.submitted
}
