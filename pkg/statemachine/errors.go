package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("statemachine.invalid_transition")
	ErrInvalidEvent      = errors.New("statemachine.invalid_event")
	ErrInvalidState      = errors.New("statemachine.invalid_state")
	ErrActionFailed      = errors.New("statemachine.action_failed")
)

// NoTransitionAvailableError is returned when no edge exists for the current state and event.
type NoTransitionAvailableError struct {
	StateName string
	EventName string
}

func (e *NoTransitionAvailableError) Error() string {
	return fmt.Sprintf("statemachine: no transition from %q on %q", e.StateName, e.EventName)
}

// TransitionRejectedError is returned when every candidate edge was refused by a guard.
type TransitionRejectedError struct {
	StateName string
	EventName string
}

func (e *TransitionRejectedError) Error() string {
	return fmt.Sprintf("statemachine: transition from %q on %q rejected by guards", e.StateName, e.EventName)
}

func IsNoTransitionAvailableError(err error) bool {
	var e *NoTransitionAvailableError
	return errors.As(err, &e)
}

func IsTransitionRejectedError(err error) bool {
	var e *TransitionRejectedError
	return errors.As(err, &e)
}
