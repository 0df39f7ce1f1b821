package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/vancomm/minesweeper/internal/game"
	"github.com/vancomm/minesweeper/internal/leaderboard"
	"github.com/vancomm/minesweeper/internal/mines"
)

// player runs one terminal session: a game at a time, read from lines.
type player struct {
	out         io.Writer
	logger      *slog.Logger
	leaderboard *leaderboard.Leaderboard
	cfg         game.Config

	mu           sync.Mutex
	game         *game.Game
	awaitingName bool
}

func (p *player) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *player) newGame(ctx context.Context, cfg game.Config) error {
	g, err := game.New(cfg, p.leaderboard, p.logger)
	if err != nil {
		return err
	}
	if p.game != nil {
		p.game.Abandon()
	}
	p.cfg = cfg
	p.game = g
	p.awaitingName = false
	g.Start(ctx)

	params := g.Params()
	p.printf(
		"new %dx%d game, %d mines, %s labels (seed %d)\n%s",
		params.Size, params.Size, params.MineCount, params.Labeling, g.Seed(),
		g.Board().Render(false),
	)
	return nil
}

// run processes lines until the player quits, input ends or ctx is done.
// Quitting and end of input both report errQuit.
func (p *player) run(ctx context.Context, lines <-chan string) error {
	p.mu.Lock()
	err := p.newGame(ctx, p.cfg)
	p.mu.Unlock()
	if err != nil {
		return err
	}
	p.printf("%s> ", help)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return errQuit
			}
			p.mu.Lock()
			err := p.handle(ctx, line)
			p.mu.Unlock()
			if errors.Is(err, errQuit) {
				return err
			}
			if err != nil {
				p.logger.Debug("command failed", slog.String("line", line), slog.Any("error", err))
				p.printf("error: %s\n", err)
			}
			if p.awaitingName {
				p.printf("enter your name: ")
			} else {
				p.printf("> ")
			}
		}
	}
}

func (p *player) handle(ctx context.Context, line string) error {
	if p.awaitingName {
		return p.submit(ctx, line)
	}

	cmd, args, err := splitCommand(line)
	if err != nil || cmd == "" {
		return err
	}

	switch cmd {
	case "o":
		row, col, err := parseRowCol(args)
		if err != nil {
			return err
		}
		return p.open(row, col)
	case "p":
		p.printf("%s", p.game.Board().Render(false))
	case "l":
		p.printLeaderboard()
	case "n":
		cfg, err := parseNewGame(args, p.cfg)
		if err != nil {
			return err
		}
		return p.newGame(ctx, cfg)
	case "h":
		p.printf("%s", help)
	case "q":
		return errQuit
	}
	return nil
}

func (p *player) open(row, col int) error {
	outcome, err := p.game.Reveal(row, col)
	if errors.Is(err, mines.ErrOutOfBounds) {
		size := p.game.Params().Size
		return fmt.Errorf("cell %d %d is off the board (0..%d)", row, col, size-1)
	}
	if err != nil {
		return err
	}

	switch outcome {
	case mines.Continue:
		p.printf("%s%d safe cells left\n", p.game.Board().Render(false), p.game.State().Remaining())
	case mines.AlreadyRevealed:
		p.printf("already open\n")
	case mines.AlreadyTerminal:
		p.printf("this game is over, n starts a new one\n")
	case mines.Win, mines.Loss:
		result := "You win!"
		if outcome == mines.Loss {
			result = "Game over!"
		}
		score := p.game.Score()
		p.printf("%s%s\nYour score: %d\n", p.game.Board().Render(true), result, score)
		if rank := p.leaderboard.Rank(score); rank > 0 {
			p.printf("that is good for #%d on the leaderboard\n", rank)
		}
		p.awaitingName = true
	}
	return nil
}

func (p *player) submit(ctx context.Context, name string) error {
	err := p.game.Submit(ctx, name)
	if errors.Is(err, leaderboard.ErrEmptyName) {
		p.printf("please enter a name\n")
		return nil
	}
	if err != nil {
		p.awaitingName = false
		return err
	}
	p.awaitingName = false
	p.printLeaderboard()
	p.printf("n starts a new game, q quits\n")
	return nil
}

func (p *player) printLeaderboard() {
	if len(p.leaderboard.Entries()) == 0 {
		p.printf("leaderboard is empty\n")
		return
	}
	p.printf("Leaderboard\n%s", p.leaderboard)
}

// stop halts the running game's timer.
func (p *player) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.game != nil {
		p.game.Abandon()
	}
}
