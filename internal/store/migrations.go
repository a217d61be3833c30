package store

import (
	"embed"
	"io/fs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

func migrations(dialect string) fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations/"+dialect)
	if err != nil {
		// embedded paths are fixed at build time
		panic(err)
	}
	return sub
}
