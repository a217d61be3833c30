package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/presence/pkg/logger"
	"github.com/dmitrymomot/presence/pkg/pg"
)

// Config selects and tunes the durable backend.
type Config struct {
	// DatabaseURL picks the backend: postgres:// or postgresql://, sqlite://<path>,
	// file:<path>, or memory://.
	DatabaseURL string `env:"DATABASE_URL" envDefault:"postgresql:///local_database"`
	Postgres    pg.Config
}

// Open connects the backend named by cfg.DatabaseURL.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (Store, error) {
	url := cfg.DatabaseURL
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		pgCfg := cfg.Postgres
		pgCfg.ConnectionString = url
		log.InfoContext(ctx, "opening store", logger.Backend("postgres"))
		return OpenPostgres(ctx, pgCfg, log)

	case strings.HasPrefix(url, "sqlite://"):
		path := strings.TrimPrefix(url, "sqlite://")
		log.InfoContext(ctx, "opening store", logger.Backend("sqlite"), slog.String("path", path))
		return OpenSQLite(ctx, path, log)

	case strings.HasPrefix(url, "file:"):
		log.InfoContext(ctx, "opening store", logger.Backend("sqlite"), slog.String("path", url))
		return OpenSQLite(ctx, url, log)

	case url == "memory://" || url == "memory:":
		log.InfoContext(ctx, "opening store", logger.Backend("memory"))
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, url)
}
