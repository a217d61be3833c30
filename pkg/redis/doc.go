// Package redis connects a go-redis client with retries and exposes a
// readiness probe for it.
package redis
