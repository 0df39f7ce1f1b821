package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/database"
	"github.com/vancomm/minesweeper/internal/game"
	"github.com/vancomm/minesweeper/internal/leaderboard"
	"github.com/vancomm/minesweeper/internal/mines"
)

// newLogger keeps logs off the terminal the board is drawn on: a rotating
// file when LOG_FILE is set, otherwise warnings only unless developing.
func newLogger(cfg *config.Config) (*slog.Logger, io.Closer) {
	level := slog.LevelInfo
	if cfg.Development {
		level = slog.LevelDebug
	}
	if cfg.LogFile != "" {
		w := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), w
	}
	if cfg.Development {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level})), io.NopCloser(nil)
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})), io.NopCloser(nil)
}

func openStore(ctx context.Context, cfg *config.Config) (leaderboard.Store, func(), error) {
	switch cfg.Leaderboard.Backend {
	case config.BackendSQLite:
		s, err := leaderboard.OpenSQLite(ctx, cfg.Leaderboard.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case config.BackendPostgres:
		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return leaderboard.NewPostgresStore(pool), pool.Close, nil
	default:
		return leaderboard.NewFileStore(cfg.Leaderboard.Path), func() {}, nil
	}
}

func readLines(r io.Reader, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	flag.IntVar(&cfg.Game.Size, "size", cfg.Game.Size, "grid size")
	flag.IntVar(&cfg.Game.MineCount, "mines", cfg.Game.MineCount, "number of mines")
	flag.StringVar(&cfg.Game.Seed, "seed", cfg.Game.Seed, "board seed (random if empty)")
	flag.StringVar(&cfg.Game.Labeling, "labeling", cfg.Game.Labeling, "cell labels: classic or standard")
	flag.StringVar(&cfg.Leaderboard.Backend, "backend", cfg.Leaderboard.Backend, "leaderboard backend: file, sqlite or postgres")
	flag.StringVar(&cfg.Leaderboard.Path, "leaderboard", cfg.Leaderboard.Path, "leaderboard file for the file and sqlite backends")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, logCloser := newLogger(cfg)
	defer logCloser.Close()
	mines.Log = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	params, _ := cfg.Game.Params()
	seed, ok, _ := cfg.Game.ParsedSeed()
	if !ok {
		seed = mines.RandomSeed()
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("unable to open leaderboard store", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeStore()

	board, err := leaderboard.Open(ctx, store, logger)
	if err != nil {
		logger.Error("unable to load leaderboard", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.Info(
		"starting session",
		slog.String("params", params.Seed()),
		slog.String("backend", cfg.Leaderboard.Backend),
	)

	p := &player{
		out:         os.Stdout,
		logger:      logger,
		leaderboard: board,
		cfg:         game.Config{Params: params, Seed: seed, Tick: cfg.Game.Tick},
	}

	lines := make(chan string)
	go readLines(os.Stdin, lines)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.run(gCtx, lines)
	})
	g.Go(func() error {
		<-gCtx.Done()
		p.stop()
		return nil
	})

	err = g.Wait()
	if err != nil && !errors.Is(err, errQuit) && !errors.Is(err, context.Canceled) {
		logger.Error("session failed", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Info("session ended", slog.Any("reason", err))
}
