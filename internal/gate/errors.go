package gate

import "errors"

var (
	ErrUnauthorized    = errors.New("gate.unauthorized")
	ErrBindFailed      = errors.New("gate.bind_failed")
	ErrLeaveFailed     = errors.New("gate.leave_failed")
	ErrInvalidUsername = errors.New("gate.invalid_username")
)
