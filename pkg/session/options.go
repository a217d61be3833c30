package session

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/presence/pkg/cookie"
)

type Option func(*Manager)

func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

func WithTransport(transport Transport) Option {
	return func(m *Manager) { m.transport = transport }
}

func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.config = cfg }
}

// WithBootID overrides the generated boot ID stamped on new sessions.
func WithBootID(id string) Option {
	return func(m *Manager) {
		if id != "" {
			m.bootID = id
		}
	}
}

// WithCookieManager enables the default transport: encrypted cookie plus header.
func WithCookieManager(cookieMgr *cookie.Manager, opts ...cookie.Option) Option {
	return func(m *Manager) {
		m.cookieManager = cookieMgr
		m.cookieOptions = opts
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// BindOption configures a single Manager.Bind call.
type BindOption func(*bindConfig)

type bindConfig struct {
	id uuid.UUID
}

// WithSessionID makes Bind use id instead of generating one, so callers can
// record the session before it exists.
func WithSessionID(id uuid.UUID) BindOption {
	return func(c *bindConfig) { c.id = id }
}
