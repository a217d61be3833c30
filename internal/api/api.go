package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/presence/handler"
	"github.com/dmitrymomot/presence/internal/gate"
	"github.com/dmitrymomot/presence/internal/store"
	"github.com/dmitrymomot/presence/pkg/binder"
	"github.com/dmitrymomot/presence/pkg/httpserver"
	"github.com/dmitrymomot/presence/pkg/requestid"
	"github.com/dmitrymomot/presence/pkg/session"
)

// Dispatcher enqueues push notifications without blocking.
type Dispatcher interface {
	Dispatch(sender string, channels []string, payload map[string]any) bool
}

// API serves the presence HTTP endpoints.
type API struct {
	gate       *gate.Gate
	sessions   *session.Manager
	store      store.Store
	dispatcher Dispatcher
	checks     []httpserver.Check
	log        *slog.Logger
}

// New wires the HTTP surface. The store is always registered as a readiness check.
func New(g *gate.Gate, sessions *session.Manager, st store.Store, d Dispatcher, opts ...Option) *API {
	a := &API{
		gate:       g,
		sessions:   sessions,
		store:      st,
		dispatcher: d,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.checks = append([]httpserver.Check{{
		Name: "store",
		Fn:   func(ctx context.Context) error { return st.Ping(ctx) },
	}}, a.checks...)
	return a
}

// Router builds the HTTP handler tree.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		middleware.RealIP,
		middleware.CleanPath,
		a.recoverer,
	)

	r.Get("/healthz", httpserver.HealthCheckHandler(a.log))
	r.Get("/readyz", httpserver.HealthCheckHandler(a.log, a.checks...))

	r.Group(func(r chi.Router) {
		r.Use(a.sessions.Middleware)

		r.Get("/", wrap(a, a.index()))
		r.Post("/", wrap(a, a.index()))
		r.Get("/presence", wrap(a, a.getPresence()))
		r.Post("/presence/{username}", wrap(a, a.claim(), binder.Path(chi.URLParam)))

		r.Group(func(r chi.Router) {
			r.Use(a.gate.RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				render(w, r, unauthorized())
			})))
			r.Post("/leave", wrap(a, a.leave()))
			r.Post("/push", wrap(a, a.push(), binder.JSON()))
		})
	})

	return r
}

func wrap[R any](a *API, h handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](a.errorHandler),
	)
}
