package presence

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/presence/internal/store"
)

// Registry caches one LiveSession per username. Entries are never removed.
type Registry struct {
	store store.Store

	mu       sync.RWMutex
	sessions map[string]*LiveSession
	group    singleflight.Group
}

// NewRegistry returns an empty registry backed by st.
func NewRegistry(st store.Store) *Registry {
	return &Registry{
		store:    st,
		sessions: make(map[string]*LiveSession),
	}
}

// Lookup returns the cached LiveSession without touching the store.
func (r *Registry) Lookup(username string) (*LiveSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[username]
	return s, ok
}

// GetOrCreate returns the cached LiveSession or ensures the durable row and
// caches a new one. Concurrent first calls for a username share one Ensure.
func (r *Registry) GetOrCreate(ctx context.Context, username string) (*LiveSession, error) {
	if s, ok := r.Lookup(username); ok {
		return s, nil
	}

	v, err, _ := r.group.Do(username, func() (any, error) {
		if s, ok := r.Lookup(username); ok {
			return s, nil
		}
		// detach so one caller's cancellation cannot fail the others
		rec, err := r.store.Ensure(context.WithoutCancel(ctx), username)
		if err != nil {
			return nil, errors.Join(ErrNotFound, err)
		}

		s := newLiveSession(rec, r.store)
		r.mu.Lock()
		r.sessions[username] = s
		r.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*LiveSession), nil
}

// Len reports how many usernames are cached.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Snapshot returns every cached username ordered by name.
func (r *Registry) Snapshot() []View {
	r.mu.RLock()
	names := slices.Sorted(maps.Keys(r.sessions))
	sessions := make([]*LiveSession, len(names))
	for i, name := range names {
		sessions[i] = r.sessions[name]
	}
	r.mu.RUnlock()

	out := make([]View, len(sessions))
	for i, s := range sessions {
		out[i] = View{Username: s.Username(), Active: s.Active()}
	}
	return out
}
