package routehandlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/coreybb/shiftmate/datastore"
	"github.com/coreybb/shiftmate/models"
	"github.com/coreybb/shiftmate/validation"
	"github.com/coreybb/shiftmate/webutil"
	"github.com/go-chi/chi/v5"
)

const (
	ParamUserID  = "user_id"
	maxBodyBytes = 1 << 20
)

// Resource describes one kind of user event log.
type Resource struct {
	Key        string // envelope key of the created record
	Collection models.Collection
	OrderField string // listed newest first by this field
	Validate   validation.Validator
	Required   []string

	CreatedMessage      string
	CreateFailedMessage string
	ListFailedMessage   string
}

var (
	ShiftResource = Resource{
		Key:                 "shift",
		Collection:          models.CollectionShifts,
		OrderField:          "start_time",
		Validate:            validation.Shift,
		Required:            validation.RequiredFields[models.ShiftRequest](),
		CreatedMessage:      "Shift created successfully",
		CreateFailedMessage: "Failed to create shift",
		ListFailedMessage:   "Failed to fetch shifts",
	}

	MoodResource = Resource{
		Key:                 "mood",
		Collection:          models.CollectionMoods,
		OrderField:          "created_at",
		Validate:            validation.Mood,
		Required:            validation.RequiredFields[models.MoodRequest](),
		CreatedMessage:      "Mood logged successfully",
		CreateFailedMessage: "Failed to log mood",
		ListFailedMessage:   "Failed to fetch mood logs",
	}

	HydrationResource = Resource{
		Key:                 "hydration",
		Collection:          models.CollectionHydrationEvents,
		OrderField:          "created_at",
		Validate:            validation.Hydration,
		Required:            validation.RequiredFields[models.HydrationRequest](),
		CreatedMessage:      "Hydration event logged successfully",
		CreateFailedMessage: "Failed to log hydration event",
		ListFailedMessage:   "Failed to fetch hydration events",
	}
)

// Holds dependencies for the create/list routes of one Resource.
type ResourceHandler struct {
	Store    datastore.Gateway
	Resource Resource
}

func NewResourceHandler(store datastore.Gateway, res Resource) *ResourceHandler {
	return &ResourceHandler{Store: store, Resource: res}
}

func (h *ResourceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return webutil.ErrMissingFields(validation.MsgInvalidPayload, h.Resource.Required, err)
	}

	rec, err := h.Resource.Validate(body)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return webutil.ErrMissingFields(verr.Message, verr.Required, verr)
		}
		return fmt.Errorf("failed to validate %s: %w", h.Resource.Key, err)
	}

	stored, err := h.Store.Insert(r.Context(), h.Resource.Collection, rec)
	if err != nil {
		return webutil.NewHTTPErrorWrap(http.StatusInternalServerError, h.Resource.CreateFailedMessage, err)
	}

	slog.InfoContext(r.Context(), "Record created", "collection", h.Resource.Collection, "id", stored["id"])
	webutil.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"message":      h.Resource.CreatedMessage,
		h.Resource.Key: stored,
	})
	return nil
}

func (h *ResourceHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) error {
	userID := chi.URLParam(r, ParamUserID)

	records, err := h.Store.ListByUser(r.Context(), h.Resource.Collection, userID, h.Resource.OrderField, true)
	if err != nil {
		return webutil.NewHTTPErrorWrap(http.StatusInternalServerError, h.Resource.ListFailedMessage, err)
	}
	if records == nil {
		records = []models.Record{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, records)
	return nil
}
