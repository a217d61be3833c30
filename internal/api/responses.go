package api

import (
	"net/http"

	"github.com/dmitrymomot/presence/handler"
)

const (
	codeOK    = "ok"
	codeError = "error"
)

const (
	msgAlive             = "alive"
	msgCannotList        = "cannot list users"
	msgMustSendPresence  = "you must send presence"
	msgJustAuthenticated = "presence sent (just authenticated)"
	msgAlreadyAuthed     = "presence sent (already authenticated)"
	msgSomeoneElse       = "presence fail (you are someone else)"
	msgTaken             = "presence fail (this username is taken)"
	msgLoginFail         = "presence fail (login fail)"
	msgInvalidUsername   = "presence fail (invalid username)"
	msgLeaveFailed       = "leaving failed somehow"
	msgUnauthorized      = "you are unauthorized"
	msgInvalidJSON       = "payload must be valid json"
	msgPushOmitted       = "'push' cannot be ommitted!"
	msgPushNotObject     = "'push' must be a json object"
	msgPushQueueFull     = "push queue is full"
	msgPushSent          = "push sent"
	msgInternal          = "internal error"
)

const authenticateHeader = `Basic realm="you must authenticate with Basic method"`

type reply struct {
	Server string `json:"server"`
	Code   string `json:"code"`
}

type presenceReply struct {
	reply
	Username string `json:"username"`
}

type userView struct {
	Username string `json:"username"`
	Status   string `json:"status"`
}

type indexReply struct {
	reply
	Users []userView `json:"users"`
}

func ok(msg string) handler.Response {
	return handler.JSON(reply{Server: msg, Code: codeOK})
}

func fail(msg string) handler.Response {
	return handler.JSON(reply{Server: msg, Code: codeError})
}

func unauthorized() handler.Response {
	return handler.JSON(
		reply{Server: msgUnauthorized, Code: codeError},
		handler.WithJSONHeader("WWW-Authenticate", authenticateHeader),
	)
}

// render writes resp directly, for code outside handler.Wrap.
func render(w http.ResponseWriter, r *http.Request, resp handler.Response) {
	_ = resp.Render(w, r)
}
