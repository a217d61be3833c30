// Package pg wraps pgx/v5 pool setup, goose migrations from an fs.FS,
// readiness checks and pgx error classification.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//	if err := pg.Migrate(ctx, pool, migrations, log); err != nil {
//		return err
//	}
package pg
