package session

import "net/http"

// Middleware puts the request's session, when present, on the context.
// Requests without a usable session pass through untouched.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Get(r.Context(), r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		m.touch(r.Context(), s)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}
