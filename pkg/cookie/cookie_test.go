package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/presence/pkg/cookie"
)

// roundTrip copies cookies written to rec onto a fresh request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := cookie.New(nil)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"", ""})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	m, err := cookie.New([]string{"short"})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestManager_Encrypted(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{"secret-key"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(rec, "sid", "token-value"))

	raw := rec.Result().Cookies()[0]
	assert.NotContains(t, raw.Value, "token-value")
	assert.True(t, raw.HttpOnly)
	assert.Equal(t, "/", raw.Path)

	got, err := m.GetEncrypted(roundTrip(rec), "sid")
	require.NoError(t, err)
	assert.Equal(t, "token-value", got)
}

func TestManager_EncryptedWrongKey(t *testing.T) {
	t.Parallel()

	writer, err := cookie.New([]string{"first"})
	require.NoError(t, err)
	reader, err := cookie.New([]string{"second"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, writer.SetEncrypted(rec, "sid", "v"))

	_, err = reader.GetEncrypted(roundTrip(rec), "sid")
	assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
}

func TestManager_Rotation(t *testing.T) {
	t.Parallel()

	old, err := cookie.New([]string{"old-secret"})
	require.NoError(t, err)
	rotated, err := cookie.New([]string{"new-secret", "old-secret"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, old.SetEncrypted(rec, "enc", "a"))
	old.SetSigned(rec, "sig", "b")

	req := roundTrip(rec)
	got, err := rotated.GetEncrypted(req, "enc")
	require.NoError(t, err)
	assert.Equal(t, "a", got)

	got, err = rotated.GetSigned(req, "sig")
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestManager_SignedTampered(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{"secret"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.SetSigned(rec, "sig", "alice")
	value := rec.Result().Cookies()[0].Value

	tests := []struct {
		name  string
		value string
		err   error
	}{
		{name: "no separator", value: "abc", err: cookie.ErrInvalidFormat},
		{name: "bad base64", value: "!!!.???", err: cookie.ErrInvalidFormat},
		{name: "swapped payload", value: "Ym9i." + strings.SplitN(value, ".", 2)[1], err: cookie.ErrInvalidSignature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: "sig", Value: tt.value})
			_, err := m.GetSigned(req, "sig")
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestManager_MissingAndDelete(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{"secret"}, cookie.WithSecure(true), cookie.WithSameSite(http.SameSiteStrictMode))
	require.NoError(t, err)

	_, err = m.GetEncrypted(httptest.NewRequest(http.MethodGet, "/", nil), "sid")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)

	rec := httptest.NewRecorder()
	m.Delete(rec, "sid")
	c := rec.Result().Cookies()[0]
	assert.Equal(t, "sid", c.Name)
	assert.Equal(t, -1, c.MaxAge)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig("secret", cookie.Config{Path: "/app", Secure: true})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.SetSigned(rec, "x", "y", cookie.WithMaxAge(60))
	c := rec.Result().Cookies()[0]
	assert.Equal(t, "/app", c.Path)
	assert.True(t, c.Secure)
	assert.Equal(t, 60, c.MaxAge)

	_, err = cookie.NewFromConfig("", cookie.Config{})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}

func TestGenerateSecret(t *testing.T) {
	t.Parallel()

	a, err := cookie.GenerateSecret()
	require.NoError(t, err)
	b, err := cookie.GenerateSecret()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43)
}
