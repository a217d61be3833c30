package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/presence/internal/notify"
	"github.com/dmitrymomot/presence/pkg/webhook"
)

type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) Push(ctx context.Context, n notify.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func TestNewNotification(t *testing.T) {
	t.Parallel()

	payload := map[string]any{"alert": "hi", "action": "overridden"}
	n := notify.NewNotification([]string{notify.DefaultChannel}, payload, "com.example.ACTION")

	assert.Equal(t, []string{"general"}, n.Channels)
	assert.Equal(t, "hi", n.Data["alert"])
	assert.Equal(t, "com.example.ACTION", n.Data["action"])
	assert.Equal(t, "overridden", payload["action"], "payload must not be mutated")

	body, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{"channels":["general"],"data":{"alert":"hi","action":"com.example.ACTION"}}`, string(body))
}

func TestParsePusher(t *testing.T) {
	t.Parallel()

	t.Run("posts with credentials", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		var got struct {
			appID, apiKey, contentType string
			body                       notify.Notification
		}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got.appID = r.Header.Get("X-Parse-Application-Id")
			got.apiKey = r.Header.Get("X-Parse-REST-API-Key")
			got.contentType = r.Header.Get("Content-Type")
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got.body))
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(srv.Close)

		p := notify.NewParsePusher(notify.Config{
			URL:           srv.URL,
			ApplicationID: "app-id",
			RESTAPIKey:    "rest-key",
			Timeout:       time.Second,
		}, srv.Client(), slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))

		n := notify.NewNotification([]string{"general"}, map[string]any{"alert": "hello"}, "act")
		require.NoError(t, p.Push(context.Background(), n))
		assert.Contains(t, logs.String(), "push delivery")
		assert.Contains(t, logs.String(), "status_code=200")

		assert.Equal(t, "app-id", got.appID)
		assert.Equal(t, "rest-key", got.apiKey)
		assert.Equal(t, "application/json", got.contentType)
		assert.Equal(t, []string{"general"}, got.body.Channels)
		assert.Equal(t, "hello", got.body.Data["alert"])
		assert.Equal(t, "act", got.body.Data["action"])
	})

	t.Run("single attempt on failure", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		t.Cleanup(srv.Close)

		p := notify.NewParsePusher(notify.Config{URL: srv.URL, Timeout: time.Second}, srv.Client(), nil)
		err := p.Push(context.Background(), notify.NewNotification(nil, nil, ""))
		require.ErrorIs(t, err, notify.ErrPushFailed)
		assert.EqualValues(t, 1, hits.Load())
	})

	t.Run("breaker opens after repeated failures", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)

		p := notify.NewParsePusher(notify.Config{
			URL:             srv.URL,
			Timeout:         time.Second,
			BreakerFailures: 2,
			BreakerRecovery: time.Hour,
		}, srv.Client(), nil)

		ctx := context.Background()
		n := notify.NewNotification(nil, nil, "")
		require.Error(t, p.Push(ctx, n))
		require.Error(t, p.Push(ctx, n))
		assert.Equal(t, webhook.CircuitOpen, p.Breaker().State())

		err := p.Push(ctx, n)
		require.ErrorIs(t, err, webhook.ErrCircuitOpen)
		assert.EqualValues(t, 2, hits.Load())
	})
}

func TestDispatcher_Lifecycle(t *testing.T) {
	t.Parallel()

	delivered := make(chan struct{}, 1)
	pusher := notify.PushFunc(func(context.Context, notify.Notification) error {
		delivered <- struct{}{}
		return nil
	})

	d := notify.NewDispatcher(pusher)
	require.ErrorIs(t, d.Stop(), notify.ErrNotStarted)

	// queued before Start, delivered after
	assert.True(t, d.Dispatch("alice", []string{"general"}, nil))
	assert.Equal(t, 1, d.Pending())

	require.NoError(t, d.Start(context.Background()))
	require.ErrorIs(t, d.Start(context.Background()), notify.ErrAlreadyStarted)
	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("queued notification was not delivered")
	}
	require.NoError(t, d.Stop())

	assert.False(t, d.Dispatch("alice", []string{"general"}, nil))
}

func TestDispatcher_Delivers(t *testing.T) {
	t.Parallel()

	delivered := make(chan notify.Notification, 1)
	pusher := new(MockPusher)
	pusher.On("Push", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { delivered <- args.Get(1).(notify.Notification) }).
		Return(nil).Once()

	d := notify.NewDispatcher(pusher, notify.WithAction("com.empsoft.opine.GENERAL"))
	require.NoError(t, d.Start(context.Background()))
	t.Cleanup(func() { _ = d.Stop() })

	assert.True(t, d.Dispatch("alice", []string{notify.DefaultChannel}, map[string]any{"alert": "hi"}))

	select {
	case n := <-delivered:
		assert.Equal(t, []string{"general"}, n.Channels)
		assert.Equal(t, "hi", n.Data["alert"])
		assert.Equal(t, "com.empsoft.opine.GENERAL", n.Data["action"])
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not delivered")
	}
	pusher.AssertExpectations(t)
}

func TestDispatcher_FailureIsSwallowed(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	pusher := new(MockPusher)
	pusher.On("Push", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { close(done) }).
		Return(notify.ErrPushFailed).Once()

	d := notify.NewDispatcher(pusher)
	require.NoError(t, d.Start(context.Background()))
	t.Cleanup(func() { _ = d.Stop() })

	assert.True(t, d.Dispatch("bob", []string{"general"}, nil))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("push was not attempted")
	}
}

func TestDispatcher_PanicIsSwallowed(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	pusher := notify.PushFunc(func(context.Context, notify.Notification) error {
		if calls.Add(1) == 1 {
			panic("malformed response")
		}
		return nil
	})

	d := notify.NewDispatcher(pusher, notify.WithWorkers(1))
	require.NoError(t, d.Start(context.Background()))
	t.Cleanup(func() { _ = d.Stop() })

	assert.True(t, d.Dispatch("carol", nil, nil))
	assert.True(t, d.Dispatch("carol", nil, nil))

	// the single worker survives the panic and takes the next job
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestDispatcher_StopRacingDispatch(t *testing.T) {
	t.Parallel()

	pusher := notify.PushFunc(func(context.Context, notify.Notification) error { return nil })

	for range 20 {
		d := notify.NewDispatcher(pusher, notify.WithWorkers(1), notify.WithQueueSize(64))
		require.NoError(t, d.Start(context.Background()))

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 8 {
					d.Dispatch("dave", nil, nil)
				}
			}()
		}
		require.NoError(t, d.Stop())
		wg.Wait()

		// nothing accepted after Stop lingers in the queue
		assert.Zero(t, d.Pending())
	}
}

func TestDispatcher_QueueFull(t *testing.T) {
	t.Parallel()

	picked := make(chan struct{}, 1)
	release := make(chan struct{})
	pusher := notify.PushFunc(func(ctx context.Context, _ notify.Notification) error {
		picked <- struct{}{}
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	})

	d := notify.NewDispatcher(pusher, notify.WithWorkers(1), notify.WithQueueSize(1))
	require.NoError(t, d.Start(context.Background()))
	t.Cleanup(func() {
		close(release)
		_ = d.Stop()
	})

	require.True(t, d.Dispatch("alice", nil, nil))
	select {
	case <-picked:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not pick the first job")
	}

	assert.True(t, d.Dispatch("alice", nil, nil))
	assert.Equal(t, 1, d.Pending())

	start := time.Now()
	assert.False(t, d.Dispatch("alice", nil, nil))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestDispatcher_Run(t *testing.T) {
	t.Parallel()

	var pushed atomic.Int32
	pusher := notify.PushFunc(func(context.Context, notify.Notification) error {
		pushed.Add(1)
		return nil
	})
	d := notify.NewFromConfig(notify.Config{Workers: 2, QueueSize: 8, Timeout: time.Second}, pusher, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- d.Run(ctx)() }()

	require.Eventually(t, func() bool {
		return d.Dispatch("alice", nil, nil)
	}, time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return pushed.Load() > 0 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
