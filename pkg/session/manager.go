package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/presence/pkg/cookie"
	"github.com/dmitrymomot/presence/pkg/logger"
)

type Manager struct {
	store         Store
	ownsStore     bool
	transport     Transport
	config        Config
	bootID        string
	cookieManager *cookie.Manager
	cookieOptions []cookie.Option
	logger        *slog.Logger
}

// New builds a Manager. Without WithTransport a cookie manager is required.
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		bootID: uuid.NewString(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
		m.ownsStore = true
	}

	if m.transport == nil {
		if m.cookieManager == nil {
			panic("session: cookie manager is required when using default cookie transport")
		}
		m.transport = NewCompositeTransport(
			NewCookieTransport(m.cookieManager, m.config.CookieName, m.cookieOptions...),
			NewHeaderTransport(m.config.HeaderName),
		)
	}

	return m
}

// BootID identifies the process generation that minted current sessions.
func (m *Manager) BootID() string {
	return m.bootID
}

// Get loads the session referenced by the request, if any.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}
	s, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if s.IsExpired() {
		return nil, ErrSessionExpired
	}
	return s, nil
}

// Bind mints a new token carrying username and replaces any token the request
// already had.
func (m *Manager) Bind(ctx context.Context, w http.ResponseWriter, r *http.Request, username string, opts ...BindOption) (*Session, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	var cfg bindConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	if old, err := m.transport.GetToken(r); err == nil {
		if err := m.store.Delete(ctx, old); err != nil {
			m.logger.WarnContext(ctx, "failed to drop replaced session", logger.Error(err))
		}
	}

	s := newSession(token, username, m.bootID, m.config.TTL)
	if cfg.id != uuid.Nil {
		s.ID = cfg.id
	}
	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}
	if err := m.transport.SetToken(w, s.Token, m.config.TTL); err != nil {
		_ = m.store.Delete(ctx, s.Token)
		return nil, err
	}
	return s, nil
}

// Unbind destroys the request's session and clears the client token.
func (m *Manager) Unbind(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var storeErr error
	if token, err := m.transport.GetToken(r); err == nil {
		storeErr = m.store.Delete(ctx, token)
	}
	return errors.Join(storeErr, m.transport.ClearToken(w))
}

// touch slides the expiry forward once the activity threshold has passed.
func (m *Manager) touch(ctx context.Context, s *Session) {
	if time.Since(s.LastActivityAt) < m.config.ActivityUpdateThreshold {
		return
	}
	s.Touch()
	s.ExpiresAt = s.LastActivityAt.Add(m.config.TTL)
	if err := m.store.Update(ctx, s); err != nil {
		m.logger.WarnContext(ctx, "failed to update session activity", logger.SessionID(s.ID), logger.Error(err))
	}
}

// Close releases the built-in memory store, if the manager created one.
func (m *Manager) Close() error {
	if ms, ok := m.store.(*MemoryStore); ok && m.ownsStore {
		return ms.Close()
	}
	return nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
