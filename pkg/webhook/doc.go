// Package webhook POSTs JSON payloads to HTTP endpoints with a single attempt,
// per-endpoint circuit breaking and a delivery hook.
//
//	cb := webhook.NewCircuitBreaker(5, 2, 30*time.Second)
//	err := sender.Send(ctx, url, payload,
//		webhook.WithHeader("X-Api-Key", key),
//		webhook.WithCircuitBreaker(cb),
//	)
//
// 4xx responses other than 408, 425 and 429 are reported as permanent.
package webhook
