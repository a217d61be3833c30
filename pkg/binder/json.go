package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxJSONSize caps request bodies at 1MB.
const DefaultMaxJSONSize = 1 << 20

type jsonConfig struct {
	maxSize           int64
	ignoreContentType bool
	strict            bool
}

type JSONOption func(*jsonConfig)

func WithMaxSize(n int64) JSONOption {
	return func(c *jsonConfig) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// IgnoreContentType decodes the body whatever Content-Type says.
func IgnoreContentType() JSONOption {
	return func(c *jsonConfig) { c.ignoreContentType = true }
}

// DisallowUnknownFields rejects keys that have no matching struct field.
func DisallowUnknownFields() JSONOption {
	return func(c *jsonConfig) { c.strict = true }
}

// JSON decodes exactly one JSON value from the body into v.
func JSON(opts ...JSONOption) func(r *http.Request, v any) error {
	cfg := jsonConfig{maxSize: DefaultMaxJSONSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(r *http.Request, v any) error {
		if !cfg.ignoreContentType {
			ct := r.Header.Get("Content-Type")
			if ct == "" {
				return ErrMissingContentType
			}
			mediaType, _, err := mime.ParseMediaType(ct)
			if err != nil || mediaType != "application/json" {
				return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, ct)
			}
		}
		if r.Body == nil {
			return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, cfg.maxSize+1))
		if err != nil {
			return errors.Join(ErrFailedToParseJSON, err)
		}
		if int64(len(body)) > cfg.maxSize {
			return ErrBodyTooLarge
		}

		dec := json.NewDecoder(bytes.NewReader(body))
		if cfg.strict {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
			}
			return errors.Join(ErrFailedToParseJSON, err)
		}
		if dec.More() {
			return fmt.Errorf("%w: unexpected data after JSON value", ErrFailedToParseJSON)
		}
		return nil
	}
}
