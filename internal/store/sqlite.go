package store

import (
	"context"
	"database/sql"
	"errors"
	"iter"
	"log/slog"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrymomot/presence/pkg/pg"
)

// SQLite is the database/sql Store on the pure-Go modernc driver.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and migrates it.
// ":memory:" keeps a single connection so every query sees the same database.
func OpenSQLite(ctx context.Context, path string, log *slog.Logger) (*SQLite, error) {
	memory := path == ":memory:"
	dsn := path
	if !memory {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if memory {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations("sqlite"),
		goose.WithLogger(pg.NewGooseLogger(log)),
	)
	if err == nil {
		_, err = provider.Up(ctx)
	}
	if err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrMigration, err)
	}

	return &SQLite{db: db}, nil
}

const sqliteSelectUser = `SELECT username, claimed, created_at, updated_at FROM presence_users`

func unixMillis() int64 {
	return time.Now().UnixMilli()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec              Record
		created, updated int64
	)
	if err := row.Scan(&rec.Username, &rec.Claimed, &created, &updated); err != nil {
		return Record{}, err
	}
	rec.CreatedAt = time.UnixMilli(created).UTC()
	rec.UpdatedAt = time.UnixMilli(updated).UTC()
	return rec, nil
}

func (s *SQLite) Ensure(ctx context.Context, username string) (Record, error) {
	if username == "" {
		return Record{}, ErrEmptyUsername
	}
	now := unixMillis()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO presence_users (username, claimed, created_at, updated_at) VALUES (?, 0, ?, ?)
		 ON CONFLICT (username) DO NOTHING`,
		username, now, now,
	); err != nil {
		return Record{}, err
	}
	return s.Get(ctx, username)
}

func (s *SQLite) Get(ctx context.Context, username string) (Record, error) {
	rec, err := scanRecord(s.db.QueryRowContext(ctx, sqliteSelectUser+` WHERE username = ?`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (s *SQLite) SetClaimed(ctx context.Context, username string, claimed bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE presence_users SET claimed = ?, updated_at = ? WHERE username = ?`,
		claimed, unixMillis(), username,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) ResetAllToFree(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE presence_users SET claimed = 0, updated_at = ? WHERE claimed = 1`, unixMillis())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLite) ListAll(ctx context.Context) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		rows, err := s.db.QueryContext(ctx, sqliteSelectUser+` ORDER BY username`)
		if err != nil {
			yield(Record{}, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			rec, err := scanRecord(rows)
			if err != nil {
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

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
