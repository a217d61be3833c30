package api

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/dmitrymomot/presence/pkg/logger"
)

// recoverer turns a panic into the generic internal error body.
func (a *API) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			a.log.ErrorContext(r.Context(), "panic recovered",
				logger.Error(fmt.Errorf("%v", rec)),
				"stack", string(debug.Stack()),
			)
			render(w, r, fail(msgInternal))
		}()
		next.ServeHTTP(w, r)
	})
}
