package api

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/samber/lo"

	"github.com/dmitrymomot/presence/handler"
	"github.com/dmitrymomot/presence/internal/gate"
	"github.com/dmitrymomot/presence/internal/notify"
	"github.com/dmitrymomot/presence/internal/presence"
	"github.com/dmitrymomot/presence/internal/store"
	"github.com/dmitrymomot/presence/pkg/binder"
	"github.com/dmitrymomot/presence/pkg/logger"
)

type claimRequest struct {
	Username string `path:"username"`
}

type pushRequest struct {
	Push json.RawMessage `json:"push"`
}

// errorHandler renders every error that escapes a handler as a body-level
// failure so the status stays 200.
func (a *API) errorHandler(ctx handler.Context, err error) {
	resp := fail(msgInternal)
	switch {
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrUnsupportedMediaType),
		errors.Is(err, binder.ErrBodyTooLarge):
		resp = fail(msgInvalidJSON)
	default:
		a.log.ErrorContext(ctx, "request failed", logger.Error(err))
	}
	render(ctx.ResponseWriter(), ctx.Request(), resp)
}

func (a *API) index() handler.HandlerFunc[handler.Context, struct{}] {
	return func(ctx handler.Context, _ struct{}) handler.Response {
		var records []store.Record
		for rec, err := range a.store.ListAll(ctx) {
			if err != nil {
				a.log.ErrorContext(ctx, "cannot list users", logger.Error(err))
				return fail(msgCannotList)
			}
			records = append(records, rec)
		}

		users := lo.Map(records, func(rec store.Record, _ int) userView {
			return userView{Username: rec.Username, Status: lo.Ternary(rec.Claimed, "active", "inactive")}
		})
		return handler.JSON(indexReply{reply: reply{Server: msgAlive, Code: codeOK}, Users: users})
	}
}

func (a *API) getPresence() handler.HandlerFunc[handler.Context, struct{}] {
	return func(ctx handler.Context, _ struct{}) handler.Response {
		id, ok := a.gate.CurrentIdentity(ctx.Request())
		if !ok {
			return fail(msgMustSendPresence)
		}
		return handler.JSON(presenceReply{
			reply:    reply{Server: "you are " + id.Username, Code: codeOK},
			Username: id.Username,
		})
	}
}

func (a *API) claim() handler.HandlerFunc[handler.Context, claimRequest] {
	return func(ctx handler.Context, req claimRequest) handler.Response {
		outcome, err := a.gate.Claim(ctx, ctx.ResponseWriter(), ctx.Request(), req.Username)
		switch {
		case errors.Is(err, gate.ErrInvalidUsername):
			return fail(msgInvalidUsername)
		case errors.Is(err, gate.ErrBindFailed):
			return fail(msgLoginFail)
		case err != nil:
			a.log.ErrorContext(ctx, "claim failed", logger.Username(req.Username), logger.Error(err))
			return fail(msgInternal)
		}

		switch outcome {
		case presence.ClaimedNew:
			return ok(msgJustAuthenticated)
		case presence.AlreadyClaimedSame:
			return ok(msgAlreadyAuthed)
		case presence.AlreadyClaimedOther:
			return fail(msgSomeoneElse)
		case presence.AlreadyTaken:
			return fail(msgTaken)
		default:
			return fail(msgLoginFail)
		}
	}
}

func (a *API) leave() handler.HandlerFunc[handler.Context, struct{}] {
	return func(ctx handler.Context, _ struct{}) handler.Response {
		username, err := a.gate.Leave(ctx, ctx.ResponseWriter(), ctx.Request())
		switch {
		case errors.Is(err, gate.ErrUnauthorized):
			return unauthorized()
		case err != nil:
			a.log.WarnContext(ctx, "leave failed", logger.Error(err))
			return fail(msgLeaveFailed)
		}
		return ok(username + " just left")
	}
}

func (a *API) push() handler.HandlerFunc[handler.Context, pushRequest] {
	return func(ctx handler.Context, req pushRequest) handler.Response {
		id, found := gate.IdentityFromContext(ctx)
		if !found {
			return unauthorized()
		}

		raw := bytes.TrimSpace(req.Push)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			return fail(msgPushOmitted)
		}
		var payload map[string]any
		if err := json.Unmarshal(raw, &payload); err != nil {
			return fail(msgPushNotObject)
		}

		if !a.dispatcher.Dispatch(id.Username, []string{notify.DefaultChannel}, payload) {
			return fail(msgPushQueueFull)
		}
		a.log.InfoContext(ctx, "triggered push send")
		return ok(msgPushSent)
	}
}
