package store

import (
	"context"
	"errors"
	"iter"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/presence/pkg/pg"
)

// Postgres is the pgx-backed Store.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects with cfg and applies pending migrations.
func OpenPostgres(ctx context.Context, cfg pg.Config, log *slog.Logger) (*Postgres, error) {
	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(ctx, pool, migrations("postgres"), log); err != nil {
		pool.Close()
		return nil, errors.Join(ErrMigration, err)
	}
	return &Postgres{pool: pool}, nil
}

// NewPostgres wraps an already migrated pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const pgSelectUser = `SELECT username, claimed, created_at, updated_at FROM presence_users`

func (s *Postgres) Ensure(ctx context.Context, username string) (Record, error) {
	if username == "" {
		return Record{}, ErrEmptyUsername
	}
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO presence_users (username) VALUES ($1) ON CONFLICT (username) DO NOTHING`,
		username,
	); err != nil {
		return Record{}, err
	}
	return s.Get(ctx, username)
}

func (s *Postgres) Get(ctx context.Context, username string) (Record, error) {
	var rec Record
	err := s.pool.QueryRow(ctx, pgSelectUser+` WHERE username = $1`, username).
		Scan(&rec.Username, &rec.Claimed, &rec.CreatedAt, &rec.UpdatedAt)
	if pg.IsNotFoundError(err) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (s *Postgres) SetClaimed(ctx context.Context, username string, claimed bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE presence_users SET claimed = $2, updated_at = now() WHERE username = $1`,
		username, claimed,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) ResetAllToFree(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `UPDATE presence_users SET claimed = FALSE, updated_at = now() WHERE claimed`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Postgres) ListAll(ctx context.Context) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		rows, err := s.pool.Query(ctx, pgSelectUser+` ORDER BY username`)
		if err != nil {
			yield(Record{}, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			var rec Record
			if err := rows.Scan(&rec.Username, &rec.Claimed, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
				yield(Record{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(Record{}, err)
		}
	}
}

func (s *Postgres) Ping(ctx context.Context) error {
	return pg.Healthcheck(s.pool)(ctx)
}

func (s *Postgres) Close() error {
	s.pool.Close()
	return nil
}
