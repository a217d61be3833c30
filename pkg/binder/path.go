package binder

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
)

// Path binds `path:"name"` fields using extractor, e.g. chi.URLParam.
// Supported kinds are string, signed ints and bool; empty values are skipped.
func Path(extractor func(r *http.Request, key string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: nil extractor", ErrInvalidPath)
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrInvalidPath)
		}
		rv = rv.Elem()
		rt := rv.Type()

		for i := range rt.NumField() {
			sf := rt.Field(i)
			tag := sf.Tag.Get("path")
			if tag == "" || tag == "-" || !sf.IsExported() {
				continue
			}
			raw := extractor(r, tag)
			if raw == "" {
				continue
			}

			field := rv.Field(i)
			switch field.Kind() {
			case reflect.String:
				field.SetString(raw)
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
				if err != nil {
					return fmt.Errorf("%w: %s: %w", ErrInvalidPath, tag, err)
				}
				field.SetInt(n)
			case reflect.Bool:
				b, err := strconv.ParseBool(raw)
				if err != nil {
					return fmt.Errorf("%w: %s: %w", ErrInvalidPath, tag, err)
				}
				field.SetBool(b)
			default:
				return fmt.Errorf("%w: unsupported field type %s for %s", ErrInvalidPath, field.Type(), tag)
			}
		}
		return nil
	}
}
