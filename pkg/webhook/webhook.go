package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sender delivers JSON payloads. Use NewSender; the zero value is not usable.
type Sender struct {
	client    *http.Client
	userAgent string
}

// NewSender returns a Sender with a pooled HTTP client.
func NewSender() *Sender {
	return NewSenderWithClient(&http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	})
}

// NewSenderWithClient uses client for every request. Nil falls back to NewSender.
func NewSenderWithClient(client *http.Client) *Sender {
	if client == nil {
		return NewSender()
	}
	return &Sender{client: client, userAgent: "presence-webhook/1.0"}
}

// Send marshals data to JSON and POSTs it to webhookURL once. Callers that
// want retries wrap Send themselves.
func (s *Sender) Send(ctx context.Context, webhookURL string, data any, opts ...SendOption) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return errors.Join(ErrInvalidPayload, err)
	}
	if err := validate(webhookURL, payload); err != nil {
		return err
	}

	o := defaultSendOptions()
	for _, opt := range opts {
		opt(o)
	}
	client := s.client
	if o.httpClient != nil {
		client = o.httpClient
	}

	if o.circuitBreaker != nil && !o.circuitBreaker.Allow() {
		return ErrCircuitOpen
	}

	result, err := s.attempt(ctx, client, webhookURL, payload, o)
	if o.onDelivery != nil {
		o.onDelivery(result)
	}
	if o.circuitBreaker != nil {
		if err == nil {
			o.circuitBreaker.RecordSuccess()
		} else {
			o.circuitBreaker.RecordFailure()
		}
	}
	if err == nil {
		return nil
	}
	if isPermanent(result.StatusCode) {
		return errors.Join(ErrPermanentFailure, err)
	}
	return errors.Join(ErrWebhookDeliveryFailed, err)
}

func validate(webhookURL string, payload []byte) error {
	u, err := url.Parse(webhookURL)
	if err != nil {
		return errors.Join(ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidURL)
	}
	if len(payload) == 0 {
		return ErrInvalidPayload
	}
	return nil
}

func (s *Sender) attempt(ctx context.Context, client *http.Client, webhookURL string, payload []byte, o *sendOptions) (DeliveryResult, error) {
	start := time.Now()
	var result DeliveryResult

	reqCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		result.Error = err
		return result, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.userAgent)
	for k, v := range o.headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	result.Duration = time.Since(start)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			err = errors.Join(ErrTimeout, err)
		} else {
			err = errors.Join(ErrTemporaryFailure, err)
		}
		result.Error = err
		return result, err
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	result.Success = resp.StatusCode >= 200 && resp.StatusCode < 300

	// 64KB cap on the error body we keep for context.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if result.Success {
		return result, nil
	}

	msg := strings.ReplaceAll(string(body), "\n", " ")
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	result.Error = fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, msg)
	return result, result.Error
}

func isPermanent(statusCode int) bool {
	if statusCode < 400 || statusCode >= 500 {
		return false
	}
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooEarly, http.StatusTooManyRequests:
		return false
	}
	return true
}
