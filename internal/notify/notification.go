package notify

import (
	"context"
	"maps"
)

// DefaultChannel is the broadcast channel every push goes to.
const DefaultChannel = "general"

// Notification is the body posted to the push service.
type Notification struct {
	Channels []string       `json:"channels"`
	Data     map[string]any `json:"data"`
}

// NewNotification copies payload and stamps it with action.
func NewNotification(channels []string, payload map[string]any, action string) Notification {
	data := make(map[string]any, len(payload)+1)
	maps.Copy(data, payload)
	if action != "" {
		data["action"] = action
	}
	return Notification{Channels: channels, Data: data}
}

// Pusher delivers one notification.
type Pusher interface {
	Push(ctx context.Context, n Notification) error
}

// PushFunc adapts a function to Pusher.
type PushFunc func(ctx context.Context, n Notification) error

// Push calls f.
func (f PushFunc) Push(ctx context.Context, n Notification) error {
	return f(ctx, n)
}
