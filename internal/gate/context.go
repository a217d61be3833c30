package gate

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/presence/internal/presence"
	"github.com/dmitrymomot/presence/pkg/logger"
)

type identityContextKey struct{}

// WithIdentity stores id on ctx for IdentityFromContext.
func WithIdentity(ctx context.Context, id presence.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext returns the identity stored by RequireIdentity.
func IdentityFromContext(ctx context.Context) (presence.Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(presence.Identity)
	return id, ok && id.Username != ""
}

// LogExtractor adds the caller's username to log records.
func LogExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IdentityFromContext(ctx); ok {
			return logger.Username(id.Username), true
		}
		return slog.Attr{}, false
	}
}
