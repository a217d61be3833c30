package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/presence/internal/store"
)

func reset(ctx context.Context, cfg Config, log *slog.Logger) error {
	st, err := store.Open(ctx, cfg.Store, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	n, err := st.ResetAllToFree(ctx)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "claims cleared", slog.Int64("count", n))
	return nil
}
