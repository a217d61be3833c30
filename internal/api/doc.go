// Package api exposes the presence server over HTTP.
//
// Every endpoint answers 200 with a JSON body of the form
//
//	{"server": "<message>", "code": "ok" | "error", ...}
//
// Failures are carried in the body, never in the status code. The only
// exceptions are the health probes, which follow the usual liveness and
// readiness conventions.
package api
