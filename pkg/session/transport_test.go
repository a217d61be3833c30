package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/presence/pkg/cookie"
	"github.com/dmitrymomot/presence/pkg/session"
)

func TestHeaderTransport(t *testing.T) {
	t.Parallel()
	tr := session.NewHeaderTransport("", session.WithHeaderPrefix("Bearer "))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := tr.GetToken(r)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	r.Header.Set(session.DefaultHeaderName, "Bearer abc")
	token, err := tr.GetToken(r)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	w := httptest.NewRecorder()
	require.NoError(t, tr.SetToken(w, "xyz", time.Hour))
	assert.Equal(t, "Bearer xyz", w.Header().Get(session.DefaultHeaderName))
	assert.NotEmpty(t, w.Header().Get(session.DefaultHeaderName+"-Expires"))

	require.NoError(t, tr.ClearToken(w))
	assert.Empty(t, w.Header().Get(session.DefaultHeaderName))
}

func TestCompositeTransport(t *testing.T) {
	t.Parallel()
	cm, err := cookie.New([]string{"secret"})
	require.NoError(t, err)

	tr := session.NewCompositeTransport(
		session.NewCookieTransport(cm, "sid"),
		session.NewHeaderTransport(""),
	)

	w := httptest.NewRecorder()
	require.NoError(t, tr.SetToken(w, "tok", time.Hour))
	assert.Equal(t, "tok", w.Header().Get(session.DefaultHeaderName))
	require.Len(t, w.Result().Cookies(), 1)

	// cookie only
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(w.Result().Cookies()[0])
	token, err := tr.GetToken(r)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	// header only
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(session.DefaultHeaderName, "tok2")
	token, err = tr.GetToken(r)
	require.NoError(t, err)
	assert.Equal(t, "tok2", token)

	_, err = tr.GetToken(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
