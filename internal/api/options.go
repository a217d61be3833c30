package api

import (
	"log/slog"

	"github.com/dmitrymomot/presence/pkg/httpserver"
)

// Option configures an API.
type Option func(*API)

// WithLogger sets the request logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.log = l
		}
	}
}

// WithReadinessChecks adds probes run by /readyz.
func WithReadinessChecks(checks ...httpserver.Check) Option {
	return func(a *API) {
		a.checks = append(a.checks, checks...)
	}
}
