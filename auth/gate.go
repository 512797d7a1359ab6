// Package auth holds the hook that runs before every mutating request.
//
// There is no credential check yet: StubGate admits everything and records the
// access. A real policy replaces the Gate passed to the router; handlers do not change.
package auth

import (
	"log/slog"
	"net/http"

	"github.com/coreybb/shiftmate/webutil"
	"github.com/go-chi/chi/v5/middleware"
)

type Decision struct {
	allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

func (d Decision) Allowed() bool {
	return d.allowed
}

// Gate decides whether a request may proceed.
type Gate interface {
	Admit(r *http.Request) Decision
}

type GateFunc func(r *http.Request) Decision

func (f GateFunc) Admit(r *http.Request) Decision {
	return f(r)
}

// StubGate admits every request and logs it.
type StubGate struct{}

func (StubGate) Admit(r *http.Request) Decision {
	slog.InfoContext(r.Context(), "Auth stub",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
	)
	return Allow()
}

// Middleware runs g before next. Denied requests get a 401 JSON error.
func Middleware(g Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return webutil.MakeHandler(func(w http.ResponseWriter, r *http.Request) error {
			if d := g.Admit(r); !d.Allowed() {
				return webutil.ErrUnauthorized(d.Reason)
			}
			next.ServeHTTP(w, r)
			return nil
		})
	}
}
