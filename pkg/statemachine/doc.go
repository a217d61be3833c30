// Package statemachine implements a small, concurrency-safe finite state machine.
//
// A machine is built from a table of transitions. Each transition is keyed by its
// source state and the event that triggers it and may carry guards (all must pass)
// and actions (run in order before the state changes). Fire holds the machine lock
// for the whole guard-action-commit sequence, so concurrent events on one machine
// are serialized and an action that fails leaves the state untouched.
//
// # Usage
//
//	const (
//		Free    = statemachine.StringState("free")
//		Claimed = statemachine.StringState("claimed")
//
//		Claim   = statemachine.StringEvent("claim")
//		Release = statemachine.StringEvent("release")
//	)
//
//	sm := statemachine.MustNew(Free,
//		statemachine.WithTransition(Free, Claimed, Claim,
//			statemachine.WithAction(persistClaimed),
//		),
//		statemachine.WithTransition(Claimed, Free, Release),
//	)
//
//	if err := sm.Fire(ctx, Claim, nil); statemachine.IsNoTransitionAvailableError(err) {
//		// already claimed
//	}
//
// # Errors
//
// ErrNoTransitionAvailable means the table has no entry for the current state and
// event. ErrTransitionRejected means entries exist but every guard set refused.
// Action failures are wrapped with ErrActionFailed.
package statemachine
