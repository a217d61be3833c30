package gate_test

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/presence/pkg/session"
)

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, s *session.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, token string) (*session.Session, error) {
	args := m.Called(ctx, token)
	s, _ := args.Get(0).(*session.Session)
	return s, args.Error(1)
}

func (m *MockSessionStore) Update(ctx context.Context, s *session.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSessionStore) Delete(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockSessionStore) DeleteExpired(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// flakyDeleteStore fails the next failDeletes calls to Delete.
type flakyDeleteStore struct {
	session.Store
	failDeletes atomic.Int32
}

func (s *flakyDeleteStore) Delete(ctx context.Context, token string) error {
	if s.failDeletes.Add(-1) >= 0 {
		return errors.New("delete timed out")
	}
	return s.Store.Delete(ctx, token)
}
