// Package presence owns the in-process view of usernames and the rules for
// claiming and releasing them.
//
// Every username seen by the server gets one LiveSession in the Registry for
// the life of the process. A LiveSession wraps a two-state machine:
//
//	        claim (persist claimed=true)
//	free ─────────────────────────────▶ claimed
//	  ▲                                    │
//	  └────────────────────────────────────┘
//	        release (persist claimed=false)
//
// The machine's lock is the per-username critical section: the durable write
// happens inside it, before the in-memory state flips, so concurrent claims
// for one username produce exactly one winner and a failed write leaves the
// state untouched. Claims for different usernames never contend.
package presence
