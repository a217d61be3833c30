package store

import "errors"

var (
	ErrNotFound       = errors.New("store.not_found")
	ErrEmptyUsername  = errors.New("store.empty_username")
	ErrUnsupportedURL = errors.New("store.unsupported_url")
	ErrMigration      = errors.New("store.migration_failed")
	ErrClosed         = errors.New("store.closed")
)
