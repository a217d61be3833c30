package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/presence/pkg/logger"
	"github.com/dmitrymomot/presence/pkg/webhook"
)

const (
	headerApplicationID = "X-Parse-Application-Id"
	headerRESTAPIKey    = "X-Parse-REST-API-Key"
)

// ParsePusher posts notifications to the Parse REST push endpoint.
type ParsePusher struct {
	sender  *webhook.Sender
	breaker *webhook.CircuitBreaker
	url     string
	headers map[string]string
	timeout time.Duration
	log     *slog.Logger
}

// NewParsePusher builds a pusher from cfg. A nil client uses the webhook
// sender's default; a nil logger discards delivery logs.
func NewParsePusher(cfg Config, client *http.Client, log *slog.Logger) *ParsePusher {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	sender := webhook.NewSender()
	if client != nil {
		sender = webhook.NewSenderWithClient(client)
	}

	failures := cfg.BreakerFailures
	if failures <= 0 {
		failures = 5
	}
	recovery := cfg.BreakerRecovery
	if recovery <= 0 {
		recovery = 30 * time.Second
	}

	return &ParsePusher{
		sender:  sender,
		breaker: webhook.NewCircuitBreaker(failures, 1, recovery),
		url:     cfg.URL,
		headers: map[string]string{
			headerApplicationID: cfg.ApplicationID,
			headerRESTAPIKey:    cfg.RESTAPIKey,
		},
		timeout: cfg.Timeout,
		log:     log.With(logger.Component("parse")),
	}
}

// Push makes a single delivery attempt.
func (p *ParsePusher) Push(ctx context.Context, n Notification) error {
	err := p.sender.Send(ctx, p.url, n,
		webhook.WithHeaders(p.headers),
		webhook.WithTimeout(p.timeout),
		webhook.WithCircuitBreaker(p.breaker),
		webhook.WithOnDelivery(func(r webhook.DeliveryResult) {
			p.log.DebugContext(ctx, "push delivery",
				logger.StatusCode(r.StatusCode),
				logger.Duration(r.Duration),
				slog.Bool("success", r.Success),
			)
		}),
	)
	if err != nil {
		return errors.Join(ErrPushFailed, err)
	}
	return nil
}

// Breaker exposes the circuit state for logging and tests.
func (p *ParsePusher) Breaker() *webhook.CircuitBreaker {
	return p.breaker
}
