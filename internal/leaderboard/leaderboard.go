// Package leaderboard keeps the top scores of finished games and persists
// them through a pluggable Store.
package leaderboard

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

const MaxEntries = 10

var ErrEmptyName = errors.New("player name is empty")

type Entry struct {
	Name  string `json:"name" db:"name"`
	Score int    `json:"score" db:"score"`
}

// Store reads and rewrites the whole ranked list.
type Store interface {
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
}

type Leaderboard struct {
	mu      sync.Mutex
	store   Store
	entries []Entry
	logger  *slog.Logger
}

// Open loads the current list from store. Lists longer than MaxEntries
// or out of order are normalized in memory; the store is left untouched
// until the next AddScore.
func Open(ctx context.Context, store Store, logger *slog.Logger) (*Leaderboard, error) {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load leaderboard: %w", err)
	}
	return &Leaderboard{
		store:   store,
		entries: rank(entries),
		logger:  logger,
	}, nil
}

func rank(entries []Entry) []Entry {
	entries = slices.Clone(entries)
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

// AddScore inserts a result, keeps the best MaxEntries by descending score
// and saves the list. Earlier entries win ties. If saving fails the list
// is left as it was.
func (l *Leaderboard) AddScore(ctx context.Context, name string, score int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := rank(append(slices.Clone(l.entries), Entry{Name: name, Score: score}))
	if err := l.store.Save(ctx, next); err != nil {
		return fmt.Errorf("unable to save leaderboard: %w", err)
	}
	l.entries = next

	l.logger.Info(
		"score recorded",
		slog.String("name", name),
		slog.Int("score", score),
		slog.Int("entries", len(next)),
	)
	return nil
}

func (l *Leaderboard) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

// Rank returns the 1-based position score would take if added now, or 0
// if it would not make the list.
func (l *Leaderboard) Rank(score int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if score > e.Score {
			return i + 1
		}
	}
	if len(l.entries) < MaxEntries {
		return len(l.entries) + 1
	}
	return 0
}

func (l *Leaderboard) String() string {
	var b strings.Builder
	for i, e := range l.Entries() {
		fmt.Fprintf(&b, "%2d. %-20s %6d\n", i+1, e.Name, e.Score)
	}
	return b.String()
}
