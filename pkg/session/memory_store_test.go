package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/presence/pkg/session"
)

func newSession(token, username string, ttl time.Duration) *session.Session {
	now := time.Now()
	return &session.Session{
		Token:          token,
		Username:       username,
		BootID:         "boot",
		ExpiresAt:      now.Add(ttl),
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

// storeContract runs the behaviour every Store must share.
func storeContract(t *testing.T, store session.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		require.NoError(t, store.Create(ctx, newSession("tok-1", "alice", time.Hour)))
		got, err := store.Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, "boot", got.BootID)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("update existing", func(t *testing.T) {
		s := newSession("tok-2", "bob", time.Hour)
		require.NoError(t, store.Create(ctx, s))
		s.Username = "carol"
		require.NoError(t, store.Update(ctx, s))
		got, err := store.Get(ctx, "tok-2")
		require.NoError(t, err)
		assert.Equal(t, "carol", got.Username)
	})

	t.Run("update missing", func(t *testing.T) {
		err := store.Update(ctx, newSession("nope", "x", time.Hour))
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("invalid session", func(t *testing.T) {
		assert.ErrorIs(t, store.Create(ctx, nil), session.ErrInvalidSession)
		assert.ErrorIs(t, store.Create(ctx, &session.Session{}), session.ErrInvalidSession)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Create(ctx, newSession("tok-3", "dave", time.Hour)))
		require.NoError(t, store.Delete(ctx, "tok-3"))
		_, err := store.Get(ctx, "tok-3")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
		assert.NoError(t, store.Delete(ctx, "tok-3"))
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })
	storeContract(t, store)
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := session.NewMemoryStore(0)
	defer store.Close()

	require.NoError(t, store.Create(ctx, newSession("old", "alice", -time.Second)))
	require.NoError(t, store.Create(ctx, newSession("fresh", "bob", time.Hour)))

	_, err := store.Get(ctx, "old")
	assert.ErrorIs(t, err, session.ErrSessionExpired)

	require.NoError(t, store.Create(ctx, newSession("old2", "carol", -time.Second)))
	require.NoError(t, store.DeleteExpired(ctx))
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_CleanupLoop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := session.NewMemoryStore(10 * time.Millisecond)
	defer store.Close()

	require.NoError(t, store.Create(ctx, newSession("old", "alice", -time.Second)))
	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 10*time.Millisecond)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
