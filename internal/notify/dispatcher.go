package notify

import (
	"context"
	"io"
	"log/slog"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrymomot/presence/pkg/logger"
)

type job struct {
	sender string
	n      Notification
}

// Dispatcher queues notifications and delivers them in the background.
type Dispatcher struct {
	pusher    Pusher
	workers   int
	queueSize int
	timeout   time.Duration
	action    string
	log       *slog.Logger

	jobs chan job

	// intake guards stopped; Dispatch holds it across the check and the send.
	intake  sync.RWMutex
	stopped bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDispatcher returns an idle Dispatcher delivering through pusher.
// Notifications may be queued before Start.
func NewDispatcher(pusher Pusher, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		pusher:    pusher,
		workers:   4,
		queueSize: 256,
		timeout:   10 * time.Second,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.jobs = make(chan job, d.queueSize)
	d.log = d.log.With(logger.Component("notify"))
	return d
}

// NewFromConfig applies cfg and log before opts.
func NewFromConfig(cfg Config, pusher Pusher, log *slog.Logger, opts ...Option) *Dispatcher {
	base := []Option{
		WithWorkers(cfg.Workers),
		WithQueueSize(cfg.QueueSize),
		WithTimeout(cfg.Timeout),
		WithAction(cfg.Action),
		WithLogger(log),
	}
	return NewDispatcher(pusher, append(base, opts...)...)
}

// Dispatch enqueues a notification without blocking. It reports false when
// the queue is full or the dispatcher has been stopped. Notifications queued
// before Start are delivered once workers run.
func (d *Dispatcher) Dispatch(sender string, channels []string, payload map[string]any) bool {
	d.intake.RLock()
	defer d.intake.RUnlock()
	if d.stopped {
		d.log.Warn("push dropped, dispatcher stopped", logger.Username(sender))
		return false
	}

	j := job{sender: sender, n: NewNotification(channels, payload, d.action)}
	select {
	case d.jobs <- j:
		d.log.Debug("push queued", logger.Username(sender), logger.Channels(channels))
		return true
	default:
		d.log.Warn("push dropped, queue is full", logger.Username(sender), slog.Int("queue_size", d.queueSize))
		return false
	}
}

// Start launches the workers. Canceling ctx stops them like Stop does.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return ErrAlreadyStarted
	}

	ctx, d.cancel = context.WithCancel(ctx)
	d.setStopped(false)
	for range d.workers {
		d.wg.Add(1)
		go d.work(ctx)
	}

	d.log.Info("dispatcher started", slog.Int("workers", d.workers), slog.Int("queue_size", d.queueSize))
	return nil
}

// Stop halts intake, waits for in-flight deliveries and drops what is still
// queued.
func (d *Dispatcher) Stop() error {
	d.mu.Lock()
	if d.cancel == nil {
		d.mu.Unlock()
		return ErrNotStarted
	}
	d.setStopped(true)
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()

	cancel()
	d.wg.Wait()

	dropped := 0
	for len(d.jobs) > 0 {
		<-d.jobs
		dropped++
	}
	d.log.Info("dispatcher stopped", slog.Int("dropped", dropped))
	return nil
}

// Run starts the dispatcher and returns a function suitable for errgroup.
func (d *Dispatcher) Run(ctx context.Context) func() error {
	return func() error {
		if err := d.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		return d.Stop()
	}
}

// Pending reports how many notifications wait for a worker.
func (d *Dispatcher) Pending() int {
	return len(d.jobs)
}

func (d *Dispatcher) setStopped(v bool) {
	d.intake.Lock()
	d.stopped = v
	d.intake.Unlock()
}

func (d *Dispatcher) work(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-d.jobs:
			d.deliver(ctx, j)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, j job) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	err := d.push(ctx, j.n)
	attrs := []any{logger.Username(j.sender), logger.Channels(j.n.Channels), logger.Duration(time.Since(start))}
	if err != nil {
		d.log.WarnContext(ctx, "cannot send message to push service", append(attrs, logger.Error(err))...)
		return
	}
	d.log.InfoContext(ctx, "message sent to push service", attrs...)
}

// push calls the pusher and reports a panic as ErrPushFailed.
func (d *Dispatcher) push(ctx context.Context, n Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.log.ErrorContext(ctx, "pusher panicked", slog.Any("panic", r))
			err = fmt.Errorf("%w: pusher panicked: %v", ErrPushFailed, r)
		}
	}()
	return d.pusher.Push(ctx, n)
}
