package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/coreybb/shiftmate/auth"
	rh "github.com/coreybb/shiftmate/route-handlers"
	"github.com/coreybb/shiftmate/webutil"
)

const (
	usersBasePath     = "/users"
	shiftsBasePath    = "/shifts"
	moodBasePath      = "/mood"
	hydrationBasePath = "/hydration"
	healthPath        = "/healthz"
)

const defaultRequestTimeout = 60 * time.Second

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Users     *rh.UserHandler
	Health    *rh.HealthHandler
	Shifts    *rh.ResourceHandler
	Moods     *rh.ResourceHandler
	Hydration *rh.ResourceHandler
}

type Options struct {
	Gate           auth.Gate     // runs before every create; defaults to auth.StubGate
	RequestTimeout time.Duration // defaults to 60s
}

func SetupRoutes(h Handlers, opts Options) http.Handler {
	if opts.Gate == nil {
		opts.Gate = auth.StubGate{}
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(EchoRequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))

	// Unmapped verbs on mapped paths get the same 404 as unmapped paths.
	r.MethodNotAllowed(http.NotFound)

	r.Get("/", webutil.MakeHandler(h.Health.HandleRoot))
	r.Get(healthPath, webutil.MakeHandler(h.Health.HandleHealthz))
	r.Get(usersBasePath, webutil.MakeHandler(h.Users.HandleGetUsers))

	gate := auth.Middleware(opts.Gate)
	configureResourceRoutes(r, shiftsBasePath, h.Shifts, gate)
	configureResourceRoutes(r, moodBasePath, h.Moods, gate)
	configureResourceRoutes(r, hydrationBasePath, h.Hydration, gate)

	return r
}

// Helper for constructing paths with a parameter
func pathWithParam(basePath string, paramName string) string {
	if basePath == "" {
		return "/{" + paramName + "}"
	}
	return basePath + "/{" + paramName + "}"
}

// POST {base} creates, GET {base}/{user_id} lists newest first.
func configureResourceRoutes(r chi.Router, basePath string, handler *rh.ResourceHandler, gate func(http.Handler) http.Handler) {
	r.Route(basePath, func(r chi.Router) {
		r.With(gate).Post("/", webutil.MakeHandler(handler.HandleCreate))
		r.Get(pathWithParam("", rh.ParamUserID), webutil.MakeHandler(handler.HandleListByUser))
	})
}
