package routehandlers

import (
	"net/http"

	"github.com/coreybb/shiftmate/datastore"
	"github.com/coreybb/shiftmate/models"
	"github.com/coreybb/shiftmate/webutil"
)

type UserHandler struct {
	Repo datastore.UserLister
}

func NewUserHandler(repo datastore.UserLister) *UserHandler {
	return &UserHandler{Repo: repo}
}

func (h *UserHandler) HandleGetUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := h.Repo.ListUsers(r.Context())
	if err != nil {
		return webutil.NewHTTPErrorWrap(http.StatusInternalServerError, "Failed to fetch users", err)
	}
	if users == nil {
		users = []models.Record{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, users)
	return nil
}
