package presence_test

import (
	"context"
	"iter"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/presence/internal/store"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Ensure(ctx context.Context, username string) (store.Record, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(store.Record), args.Error(1)
}

func (m *MockStore) Get(ctx context.Context, username string) (store.Record, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(store.Record), args.Error(1)
}

func (m *MockStore) SetClaimed(ctx context.Context, username string, claimed bool) error {
	return m.Called(ctx, username, claimed).Error(0)
}

func (m *MockStore) ResetAllToFree(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) ListAll(ctx context.Context) iter.Seq2[store.Record, error] {
	return m.Called(ctx).Get(0).(iter.Seq2[store.Record, error])
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}
