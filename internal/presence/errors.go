package presence

import "errors"

var (
	ErrNotAuthenticated = errors.New("presence.not_authenticated")
	ErrNotFound         = errors.New("presence.not_found")
	ErrPersist          = errors.New("presence.persist_failed")
)
