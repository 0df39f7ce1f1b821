package leaderboard

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrations holds the golang-migrate files for PostgresStore under
// "migrations/".
//
//go:embed migrations/*.sql
var Migrations embed.FS

// ErrNotMigrated means the highscore table has not been created yet.
var ErrNotMigrated = errors.New("leaderboard schema is missing, run the migrator")

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func checkSchema(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
		return fmt.Errorf("%w: %s", ErrNotMigrated, pgErr.Message)
	}
	return err
}

func (s *PostgresStore) Load(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `SELECT name, score FROM highscore ORDER BY rank;`)
	if err != nil {
		return nil, checkSchema(err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[Entry])
	if err != nil {
		return nil, checkSchema(err)
	}
	return entries, nil
}

// Save rewrites the table in one transaction, ranking entries by their
// position in the slice.
func (s *PostgresStore) Save(ctx context.Context, entries []Entry) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM highscore;`); err != nil {
			return checkSchema(err)
		}
		batch := &pgx.Batch{}
		for i, e := range entries {
			batch.Queue(
				`INSERT INTO highscore (rank, name, score) VALUES (@rank, @name, @score);`,
				pgx.NamedArgs{"rank": i + 1, "name": e.Name, "score": e.Score},
			)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}
