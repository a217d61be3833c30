package notify

import "errors"

var (
	ErrAlreadyStarted = errors.New("notify.already_started")
	ErrNotStarted     = errors.New("notify.not_started")
	ErrPushFailed     = errors.New("notify.push_failed")
)
