// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a bound request value and returns a
// Response. Wrap runs the configured binders, applies decorators and renders
// the response, routing bind and render failures to an ErrorHandler:
//
//	type pushRequest struct {
//		Push map[string]any `json:"push"`
//	}
//
//	func push(ctx handler.Context, req pushRequest) handler.Response {
//		return handler.JSON(status{Server: "push sent", Code: "ok"})
//	}
//
//	r.Post("/push", handler.Wrap(push, handler.WithBinder[handler.Context, pushRequest](binder.JSON())))
package handler
