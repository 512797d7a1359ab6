package routehandlers

import (
	"context"
	"net/http"
	"time"

	"github.com/coreybb/shiftmate/datastore"
	"github.com/coreybb/shiftmate/webutil"
)

const (
	livenessMessage = "ShiftMate backend is running"
	pingTimeout     = 2 * time.Second
)

type HealthHandler struct {
	DB datastore.Pinger
}

func NewHealthHandler(db datastore.Pinger) *HealthHandler {
	return &HealthHandler{DB: db}
}

// HandleRoot answers the liveness probe without touching the database.
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) error {
	webutil.RespondWithText(w, http.StatusOK, livenessMessage)
	return nil
}

// HandleHealthz reports whether the database answers a ping.
func (h *HealthHandler) HandleHealthz(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		return webutil.NewHTTPErrorWrap(http.StatusServiceUnavailable, "Database unavailable", err)
	}
	webutil.RespondWithText(w, http.StatusOK, "OK")
	return nil
}
