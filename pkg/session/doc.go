// Package session binds opaque client tokens to a claimed username.
//
// A Manager extracts the token through a Transport (encrypted cookie, header,
// or both), loads the Session from a Store (in-memory or Redis) and places it
// on the request context. Bind mints a fresh token carrying the username and
// the manager's boot ID; Unbind destroys it.
//
//	┌────────┐   token   ┌────────────┐
//	│ Client │ ────────► │  Transport │
//	└────────┘           └────────────┘
//	                           │
//	                           ▼
//	               ┌──────────────────────┐
//	               │       Manager        │
//	               └──────────────────────┘
//	                           │  CRUD / TTL
//	                           ▼
//	                     ┌──────────┐
//	                     │  Store   │ (memory, redis)
//	                     └──────────┘
//
// The boot ID lets callers tell tokens minted by the current process apart
// from tokens that survived a restart in a shared store or a client cookie.
package session
