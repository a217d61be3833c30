package handler

import (
	"encoding/json"
	"net/http"
)

type jsonResponse struct {
	status  int
	headers http.Header
	body    any
}

type JSONOption func(*jsonResponse)

func WithJSONStatus(status int) JSONOption {
	return func(j *jsonResponse) { j.status = status }
}

// WithJSONHeader sets an extra response header.
func WithJSONHeader(key, value string) JSONOption {
	return func(j *jsonResponse) { j.headers.Set(key, value) }
}

// JSON renders body as-is with status 200 unless overridden.
func JSON(body any, opts ...JSONOption) Response {
	j := &jsonResponse{status: http.StatusOK, headers: http.Header{}, body: body}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	data, err := json.Marshal(j.body)
	if err != nil {
		return err
	}
	for k, vs := range j.headers {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	_, err = w.Write(append(data, '\n'))
	return err
}
