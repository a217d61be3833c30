// Package httpserver runs an http.Handler with sane timeouts and graceful shutdown.
//
// Run binds the listener first, so callers (and tests) can read the bound
// address from a start hook, then serves until the context is cancelled or
// Shutdown is called. Signal handling is left to the caller, typically via
// signal.NotifyContext in main.
//
// HealthCheckHandler exposes liveness and readiness probes backed by named
// dependency checks.
package httpserver
