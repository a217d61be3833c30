package binder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/presence/pkg/binder"
)

type pushBody struct {
	Push map[string]any `json:"push"`
}

func jsonRequest(body, contentType string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}

func TestJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		ct      string
		opts    []binder.JSONOption
		wantErr error
	}{
		{name: "valid", body: `{"push":{"alert":"hi"}}`, ct: "application/json"},
		{name: "charset param", body: `{"push":{}}`, ct: "application/json; charset=utf-8"},
		{name: "unknown field tolerated", body: `{"push":{},"x":1}`, ct: "application/json"},
		{name: "unknown field strict", body: `{"push":{},"x":1}`, ct: "application/json", opts: []binder.JSONOption{binder.DisallowUnknownFields()}, wantErr: binder.ErrFailedToParseJSON},
		{name: "missing content type", body: `{}`, wantErr: binder.ErrMissingContentType},
		{name: "wrong content type", body: `{}`, ct: "text/plain", wantErr: binder.ErrUnsupportedMediaType},
		{name: "ignored content type", body: `{"push":{}}`, ct: "text/plain", opts: []binder.JSONOption{binder.IgnoreContentType()}},
		{name: "empty body", body: ``, ct: "application/json", wantErr: binder.ErrFailedToParseJSON},
		{name: "malformed", body: `{"push":`, ct: "application/json", wantErr: binder.ErrFailedToParseJSON},
		{name: "trailing data", body: `{} {}`, ct: "application/json", wantErr: binder.ErrFailedToParseJSON},
		{name: "not an object", body: `[1,2]`, ct: "application/json", wantErr: binder.ErrFailedToParseJSON},
		{name: "too large", body: `{"push":{"a":"` + strings.Repeat("x", 64) + `"}}`, ct: "application/json", opts: []binder.JSONOption{binder.WithMaxSize(32)}, wantErr: binder.ErrBodyTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var v pushBody
			err := binder.JSON(tt.opts...)(jsonRequest(tt.body, tt.ct), &v)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, v.Push)
		})
	}
}

type pathRequest struct {
	Username string `path:"username"`
	Page     int    `path:"page"`
	Ignored  string `path:"-"`
	Plain    string
}

func TestPath(t *testing.T) {
	t.Parallel()

	params := map[string]string{"username": "alice", "page": "3"}
	extract := func(_ *http.Request, key string) string { return params[key] }

	var req pathRequest
	require.NoError(t, binder.Path(extract)(httptest.NewRequest(http.MethodGet, "/", nil), &req))
	assert.Equal(t, "alice", req.Username)
	assert.Equal(t, 3, req.Page)

	bad := func(_ *http.Request, key string) string {
		if key == "page" {
			return "x"
		}
		return ""
	}
	assert.ErrorIs(t, binder.Path(bad)(httptest.NewRequest(http.MethodGet, "/", nil), &req), binder.ErrInvalidPath)
	assert.ErrorIs(t, binder.Path(nil)(httptest.NewRequest(http.MethodGet, "/", nil), &req), binder.ErrInvalidPath)
	assert.ErrorIs(t, binder.Path(extract)(httptest.NewRequest(http.MethodGet, "/", nil), req), binder.ErrInvalidPath)
}

func TestPath_Chi(t *testing.T) {
	t.Parallel()

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("username", "bob")
	r := httptest.NewRequest(http.MethodPost, "/presence/bob", nil)
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	var req pathRequest
	require.NoError(t, binder.Path(chi.URLParam)(r, &req))
	assert.Equal(t, "bob", req.Username)
}
