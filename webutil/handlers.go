package webutil

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// AppHandler represents a handler function that returns an error.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// MakeHandler adapts an AppHandler to the standard http.HandlerFunc signature.
// It executes the AppHandler and handles any returned error by logging appropriately
// and sending a standardized JSON error response.
func MakeHandler(handler AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		err := handler(ww, r)
		if err == nil {
			return
		}

		var httpErr *HTTPError
		var body ErrorBody

		if errors.As(err, &httpErr) {
			body = ErrorBody{Error: httpErr.Message, Required: httpErr.Required}
			logLevel := slog.LevelWarn // Treat client errors as warnings server-side
			if httpErr.Code >= 500 {
				logLevel = slog.LevelError
			}
			attrs := []any{
				"code", httpErr.Code,
				"msg", httpErr.Message,
				"path", r.URL.Path,
				"method", r.Method,
				"request_id", middleware.GetReqID(r.Context()),
			}
			// Log the underlying cause if present and different from the public message
			if cause := errors.Unwrap(httpErr); cause != nil && cause.Error() != httpErr.Message {
				attrs = append(attrs, "cause", cause)
			}
			slog.Log(r.Context(), logLevel, "Error response", attrs...)
			writeError(ww, r, httpErr.Code, body, err)
			return
		}

		// Any other error is an unexpected failure.
		slog.Error("Unhandled internal error",
			"path", r.URL.Path,
			"method", r.Method,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		writeError(ww, r, http.StatusInternalServerError, ErrorBody{Error: msgInternalServer}, err)
	}
}

func writeError(ww middleware.WrapResponseWriter, r *http.Request, status int, body ErrorBody, err error) {
	if ww.Status() != 0 {
		slog.Warn("Handler returned error after writing response header",
			"path", r.URL.Path,
			"method", r.Method,
			"error", err,
		)
		// Cannot send another response, just log.
		return
	}
	RespondWithJSON(ww, status, body)
}
