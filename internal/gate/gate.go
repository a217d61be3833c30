package gate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dmitrymomot/presence/internal/presence"
	"github.com/dmitrymomot/presence/pkg/logger"
	"github.com/dmitrymomot/presence/pkg/session"
)

// MaxUsernameLength bounds usernames in characters (runes).
const MaxUsernameLength = 20

var usernameRules = "required,max=" + strconv.Itoa(MaxUsernameLength)

// Gate maps HTTP sessions to presence identities.
type Gate struct {
	machine  *presence.Machine
	sessions *session.Manager
	validate *validator.Validate
	log      *slog.Logger
}

// New returns a Gate over machine and sessions. A nil logger discards output.
func New(machine *presence.Machine, sessions *session.Manager, log *slog.Logger) *Gate {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Gate{
		machine:  machine,
		sessions: sessions,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// CurrentIdentity resolves the request's session into an identity. Only the
// session holding its username's claim counts; bindings from an earlier boot
// or left over from a previous claim are ignored.
func (g *Gate) CurrentIdentity(r *http.Request) (presence.Identity, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok || !s.IsBound() || s.BootID != g.sessions.BootID() {
		return presence.Identity{}, false
	}
	id := presence.Identity{Username: s.Username, SessionID: s.ID.String()}
	if !g.machine.HeldBy(id) {
		return presence.Identity{}, false
	}
	return id, true
}

// ValidateUsername checks the username is non-empty and at most
// MaxUsernameLength characters.
func (g *Gate) ValidateUsername(username string) error {
	if err := g.validate.Var(username, usernameRules); err != nil {
		return errors.Join(ErrInvalidUsername, err)
	}
	return nil
}

// Claim routes a claim for username. A caller with an identity never
// changes state; an anonymous caller goes through the presence machine and,
// on success, gets a session bound to the username.
func (g *Gate) Claim(ctx context.Context, w http.ResponseWriter, r *http.Request, username string) (presence.Outcome, error) {
	if err := g.ValidateUsername(username); err != nil {
		return 0, err
	}

	if id, ok := g.CurrentIdentity(r); ok {
		return g.machine.AlreadyAuthenticatedClaim(id, username), nil
	}

	sid := uuid.New()
	holder := presence.Identity{Username: username, SessionID: sid.String()}
	outcome, _, err := g.machine.Claim(ctx, holder)
	if err != nil || outcome != presence.ClaimedNew {
		return outcome, err
	}

	if _, err := g.sessions.Bind(ctx, w, r, username, session.WithSessionID(sid)); err != nil {
		g.log.ErrorContext(ctx, "failed to bind session, rolling back claim", logger.Username(username), logger.Error(err))
		if rerr := g.machine.Release(ctx, holder); rerr != nil {
			g.log.ErrorContext(ctx, "claim rollback failed", logger.Username(username), logger.Error(rerr))
			return 0, errors.Join(ErrBindFailed, err, rerr)
		}
		return 0, errors.Join(ErrBindFailed, err)
	}
	return outcome, nil
}

// Leave releases the caller's username and clears its session token.
func (g *Gate) Leave(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, error) {
	id, ok := g.CurrentIdentity(r)
	if !ok {
		return "", ErrUnauthorized
	}

	if err := g.machine.Release(ctx, id); err != nil {
		return "", errors.Join(ErrLeaveFailed, err)
	}
	if err := g.sessions.Unbind(ctx, w, r); err != nil {
		g.log.WarnContext(ctx, "failed to clear session after leave", logger.Username(id.Username), logger.Error(err))
	}
	return id.Username, nil
}

// RequireIdentity lets requests with an identity through, storing it on the
// context. Others get unauthorized.
func (g *Gate) RequireIdentity(unauthorized http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := g.CurrentIdentity(r)
			if !ok {
				unauthorized.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
